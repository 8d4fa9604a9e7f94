// Package utils provides shared helpers for pqlattice: SHA-3/SHAKE hashing,
// secure randomness, constant-time operations and zeroization.
package utils

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

var shake256Pool = sync.Pool{
	New: func() interface{} {
		return sha3.NewShake256()
	},
}

// NewShake128 returns a fresh SHAKE128 state for callers that need
// incremental squeezing (rejection sampling reads an unbounded stream).
// The state is not pooled; rejection samplers hold it across reads.
func NewShake128() sha3.ShakeHash {
	return sha3.NewShake128()
}

// NewShake256 returns a fresh SHAKE256 state for incremental squeezing.
func NewShake256() sha3.ShakeHash {
	return sha3.NewShake256()
}

// Shake256 computes the SHAKE256 extendable output function (XOF).
// It takes an input byte slice and generates an output of the specified length.
func Shake256(input []byte, outputLen int) []byte {
	output := make([]byte, outputLen)
	Shake256Into(output, input)
	return output
}

// Shake256Into absorbs the input slices in order and squeezes len(output)
// bytes of SHAKE256 into output.
func Shake256Into(output []byte, inputs ...[]byte) {
	h := shake256Pool.Get().(sha3.ShakeHash)
	defer func() {
		h.Reset()
		shake256Pool.Put(h)
	}()

	for _, in := range inputs {
		h.Write(in)
	}
	_, _ = h.Read(output)
}

// SHA3256 computes the SHA3-256 cryptographic hash of the concatenation of
// the inputs. It returns a 32-byte hash. ML-KEM uses this as the function H.
func SHA3256(inputs ...[]byte) []byte {
	h := sha3.New256()
	for _, in := range inputs {
		h.Write(in)
	}
	return h.Sum(nil)
}

// SHA3512 computes the SHA3-512 cryptographic hash of the concatenation of
// the inputs. It returns a 64-byte hash. ML-KEM uses this as the function G.
func SHA3512(inputs ...[]byte) []byte {
	h := sha3.New512()
	for _, in := range inputs {
		h.Write(in)
	}
	return h.Sum(nil)
}
