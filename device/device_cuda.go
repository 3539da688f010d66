//go:build cuda

package device

import "fmt"

import "gorgonia.org/cu"

// CUDA returns the n-th CUDA device with its name and memory filled in
// from the driver.
func CUDA(n int) (Device, error) {
	count, err := cu.NumDevices()
	if err != nil {
		return Device{}, err
	}
	if n < 0 || n >= count {
		return Device{}, fmt.Errorf("device: cuda ordinal %d out of range, have %d devices", n, count)
	}
	name, err := cu.Device(n).Name()
	if err != nil {
		return Device{}, err
	}
	mem, err := cu.Device(n).TotalMem()
	if err != nil {
		return Device{}, err
	}
	return Device{typ: TypeCUDA, ordinal: n, name: name, mem: mem}, nil
}

// Count returns the number of visible CUDA devices.
func Count() (int, error) {
	return cu.NumDevices()
}
