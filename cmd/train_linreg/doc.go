// Package main provides a demo program for fitting a linear regression
// model on synthetic data. It demonstrates the fit loop, loss callbacks
// and periodic checkpoints on a problem that converges in seconds.
package main
