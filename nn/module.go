// Package nn provides the module and parameter primitives wrapped by the
// modelfit training API
package nn

import "github.com/neurlang/modelfit/tensor"

// Parameter is a named trainable tensor. A training step stores the
// gradient next to the value; an optimizer consumes and clears it.
type Parameter struct {
	Name  string
	Value *tensor.Dense
	Grad  *tensor.Dense
}

// Prefix joins prefix onto the name of every parameter and returns the
// slice. Composite modules call it once per layer at construction so
// every parameter keeps a unique name across the whole module.
func Prefix(prefix string, params []*Parameter) []*Parameter {
	for _, p := range params {
		p.Name = prefix + "." + p.Name
	}
	return params
}

// Module is anything with a forward pass over a batch of rows.
type Module interface {

	// Forward computes the module output for input x
	Forward(x *tensor.Dense) (*tensor.Dense, error)

	// Parameters lists the trainable parameters
	Parameters() []*Parameter
}
