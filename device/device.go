// Package device describes execution placement for graphs. It probes
// accelerator capability but owns no kernels; compute stays wherever the
// caller runs it.
package device

import "fmt"

// Type enumerates the supported placement kinds.
type Type int

const (
	TypeCPU Type = iota
	TypeCUDA
)

// Device is a placement target.
type Device struct {
	typ     Type
	ordinal int
	name    string
	mem     int64
}

// CPU returns the host device.
func CPU() Device {
	return Device{typ: TypeCPU, name: "cpu"}
}

// Default returns the device graphs are placed on when none is given.
func Default() Device {
	return CPU()
}

// Type returns the placement kind.
func (d Device) Type() Type { return d.typ }

// Ordinal returns the accelerator index. Zero for the CPU.
func (d Device) Ordinal() int { return d.ordinal }

// Name returns the device name as the driver reports it.
func (d Device) Name() string { return d.name }

// TotalMem returns the device memory in bytes, or 0 when unknown.
func (d Device) TotalMem() int64 { return d.mem }

func (d Device) String() string {
	if d.typ == TypeCPU {
		return "cpu"
	}
	return fmt.Sprintf("cuda:%d", d.ordinal)
}
