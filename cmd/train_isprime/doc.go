// Package main provides a demo program for training a primality
// classifier over bit features. The sieve builds the label table, the
// fit loop drives Adam, and the validation callback reports accuracy.
package main
