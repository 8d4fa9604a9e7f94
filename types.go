// Package pqlattice implements the ML-KEM key encapsulation mechanism and
// the ML-DSA digital signature scheme over module lattices.
//
// Both schemes share the polynomial ring Z_q[X]/(X^256+1), differing in the
// modulus q and in how small "noise" elements are sampled. All byte layouts
// produced by this module follow the FIPS 203 / FIPS 204 wire formats, so
// keys, ciphertexts and signatures interoperate with other conformant
// implementations.
package pqlattice

import "errors"

// SecurityLevel selects a parameter set for both algorithm families.
type SecurityLevel string

const (
	// PQ128 selects ML-KEM-512 and ML-DSA-44.
	PQ128 SecurityLevel = "PQ-128"
	// PQ192 selects ML-KEM-768 and ML-DSA-65.
	PQ192 SecurityLevel = "PQ-192"
	// Aliases with underscore for convenience
	PQ_128 SecurityLevel = PQ128
	PQ_192 SecurityLevel = PQ192
)

// Error taxonomy. Decapsulation and verification deliberately do NOT use
// these for tampered inputs: a bad ciphertext yields an implicit-rejection
// secret and a bad signature yields false, never an error.
var (
	// ErrInvalidParameterSet indicates an unsupported security level.
	ErrInvalidParameterSet = errors.New("pqlattice: invalid parameter set")

	// ErrMalformedInput indicates a key, ciphertext or signature whose byte
	// length or field encoding does not match the declared parameter set.
	ErrMalformedInput = errors.New("pqlattice: malformed input")

	// ErrRetryExhausted indicates the signing loop exceeded its iteration
	// bound. This must never occur under correct operation and points at an
	// entropy or implementation defect.
	ErrRetryExhausted = errors.New("pqlattice: signing retry limit exhausted")
)

// =============================================================================
// Parameter Types
// =============================================================================

// KEMParams is the complete ML-KEM parameter set for one security level.
// All byte sizes are derived from (K, Du, Dv); they are stored explicitly so
// that callers and validators can treat the struct as the single source of
// truth for wire-format lengths.
type KEMParams struct {
	Level SecurityLevel `json:"level"`
	K     int           `json:"k"`    // Module rank (vector length)
	Eta1  int           `json:"eta1"` // CBD width for secret/error vectors
	Eta2  int           `json:"eta2"` // CBD width for encryption noise
	Du    int           `json:"du"`   // Ciphertext compression bits for u
	Dv    int           `json:"dv"`   // Ciphertext compression bits for v

	PublicKeySize    int `json:"public_key_size"`
	PrivateKeySize   int `json:"private_key_size"`
	CiphertextSize   int `json:"ciphertext_size"`
	SharedSecretSize int `json:"shared_secret_size"`
	SeedSize         int `json:"seed_size"` // 64: d || z
}

// SignParams is the complete ML-DSA parameter set for one security level.
type SignParams struct {
	Level      SecurityLevel `json:"level"`
	K          int           `json:"k"`           // Rows of matrix A
	L          int           `json:"l"`           // Columns of matrix A
	Eta        int           `json:"eta"`         // Secret coefficient bound
	Gamma1Bits int           `json:"gamma1_bits"` // gamma1 = 1 << Gamma1Bits
	Gamma2     int           `json:"gamma2"`      // Low-order rounding range
	Tau        int           `json:"tau"`         // +-1s in the challenge
	Omega      int           `json:"omega"`       // Max 1s in the hint vector
	Lambda     int           `json:"lambda"`      // Collision strength of c-tilde, bits
	Beta       int           `json:"beta"`        // Tau * Eta

	PublicKeySize  int `json:"public_key_size"`
	PrivateKeySize int `json:"private_key_size"`
	SignatureSize  int `json:"signature_size"`
	SeedSize       int `json:"seed_size"` // 32
}

// Gamma1 returns the masking range 2^Gamma1Bits.
func (p SignParams) Gamma1() int {
	return 1 << p.Gamma1Bits
}
