// Package isprime provides a primality dataset. The primes are streamed
// from a sieve once, the labels come from the resulting table, and the
// bit features feed a logistic regression module. Primality is not
// linearly separable in the bits, so this dataset exercises the loop,
// not the ceiling of the model.
package isprime
