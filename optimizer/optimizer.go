// Package optimizer implements the gradient application step of the
// modelfit training loop. A training step fills parameter gradients;
// Minimize consumes and clears them.
package optimizer

import "github.com/neurlang/modelfit/nn"

// Optimizer updates parameters from their stored gradients.
type Optimizer interface {

	// Minimize applies and clears the gradient of every parameter
	// that has one. Parameters without a gradient are untouched.
	Minimize(params []*nn.Parameter) error
}
