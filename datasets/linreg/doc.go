// Package linreg provides a synthetic noisy linear regression dataset
// and a least squares module for it. It is the runnable demo of the
// fit, checkpoint and callback machinery: the gradients are closed form,
// so training converges in a handful of steps.
package linreg
