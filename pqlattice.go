// Package pqlattice implements the two NIST-standardized module-lattice
// algorithm families: the ML-KEM key encapsulation mechanism (FIPS 203) and
// the ML-DSA digital signature scheme (FIPS 204).
// This package provides high-level exports; the actual engines live in the
// kem and sign sub-packages, built on the ring arithmetic in lattice/kyber
// and lattice/dilithium.
package pqlattice

// Re-export commonly used functions through package-level wrappers.
// Users can also import specific sub-packages directly for more control.

// Version of the pqlattice Go implementation.
const Version = "1.0.0"

// API summary:
//
// Key Encapsulation (ML-KEM):
//   - kem.GenerateKeyPair(level) - Generate a key pair for the given security level
//   - kem.Encapsulate(pk) - Generate shared secret and ciphertext
//   - kem.Decapsulate(sk, ct) - Recover shared secret from ciphertext
//
// Digital Signatures (ML-DSA):
//   - sign.GenerateKeyPair(level) - Generate a signature key pair
//   - sign.Sign(sk, message) - Sign a message (deterministic)
//   - sign.SignRandomized(sk, message) - Sign with fresh randomness (hedged)
//   - sign.Verify(pk, message, signature) - Verify a signature
//
// Parameters:
//   - core.GetKEMParams(level) / core.GetSignParams(level)
//   - PQ128 - ML-KEM-512 / ML-DSA-44
//   - PQ192 - ML-KEM-768 / ML-DSA-65
