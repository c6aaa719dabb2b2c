// Package random provides cryptographically secure randomness primitives
// for authkit packages.
//
// It wraps crypto/rand for byte, hex-string, and uniform integer
// generation plus an unbiased slice shuffle. math/rand is never used.
package random
