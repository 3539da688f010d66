//go:build !cuda

package device

import "errors"

// CUDA reports that this build carries no CUDA support.
func CUDA(n int) (Device, error) {
	return Device{}, errors.New("device: built without cuda")
}

// Count returns the number of visible CUDA devices. Zero in this build.
func Count() (int, error) {
	return 0, nil
}
