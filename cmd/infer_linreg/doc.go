// Package main provides a demo program for running a checkpointed
// linear regression model, both eagerly and through a compiled graph,
// and printing the two predictions side by side.
package main
