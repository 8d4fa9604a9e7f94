// Package core provides parameter sets and validation for pqlattice.
package core

import (
	"errors"
	"fmt"

	pqlattice "github.com/BackendStack21/pqlattice-go"
)

// Ring constants shared by every parameter set.
const (
	// N is the polynomial degree of the ring X^256+1.
	N = 256
	// QKem is the ML-KEM modulus.
	QKem = 3329
	// QSign is the ML-DSA modulus.
	QSign = 8380417
	// D is the number of bits dropped from t in ML-DSA keys.
	D = 13
)

// KEM512Params is the ML-KEM-512 parameter set (PQ128).
var KEM512Params = pqlattice.KEMParams{
	Level: pqlattice.PQ128,
	K:     2,
	Eta1:  3,
	Eta2:  2,
	Du:    10,
	Dv:    4,

	PublicKeySize:    800,
	PrivateKeySize:   1632,
	CiphertextSize:   768,
	SharedSecretSize: 32,
	SeedSize:         64,
}

// KEM768Params is the ML-KEM-768 parameter set (PQ192).
var KEM768Params = pqlattice.KEMParams{
	Level: pqlattice.PQ192,
	K:     3,
	Eta1:  2,
	Eta2:  2,
	Du:    10,
	Dv:    4,

	PublicKeySize:    1184,
	PrivateKeySize:   2400,
	CiphertextSize:   1088,
	SharedSecretSize: 32,
	SeedSize:         64,
}

// DSA44Params is the ML-DSA-44 parameter set (PQ128).
var DSA44Params = pqlattice.SignParams{
	Level:      pqlattice.PQ128,
	K:          4,
	L:          4,
	Eta:        2,
	Gamma1Bits: 17,
	Gamma2:     (QSign - 1) / 88,
	Tau:        39,
	Omega:      80,
	Lambda:     128,
	Beta:       2 * 39,

	PublicKeySize:  1312,
	PrivateKeySize: 2560,
	SignatureSize:  2420,
	SeedSize:       32,
}

// DSA65Params is the ML-DSA-65 parameter set (PQ192).
var DSA65Params = pqlattice.SignParams{
	Level:      pqlattice.PQ192,
	K:          6,
	L:          5,
	Eta:        4,
	Gamma1Bits: 19,
	Gamma2:     (QSign - 1) / 32,
	Tau:        49,
	Omega:      55,
	Lambda:     192,
	Beta:       4 * 49,

	PublicKeySize:  1952,
	PrivateKeySize: 4032,
	SignatureSize:  3309,
	SeedSize:       32,
}

// GetKEMParams returns the ML-KEM parameter set for the given security level.
func GetKEMParams(level pqlattice.SecurityLevel) (pqlattice.KEMParams, error) {
	switch level {
	case pqlattice.PQ128:
		return KEM512Params, nil
	case pqlattice.PQ192:
		return KEM768Params, nil
	default:
		return pqlattice.KEMParams{}, fmt.Errorf("%w: unknown security level %q",
			pqlattice.ErrInvalidParameterSet, level)
	}
}

// GetSignParams returns the ML-DSA parameter set for the given security level.
func GetSignParams(level pqlattice.SecurityLevel) (pqlattice.SignParams, error) {
	switch level {
	case pqlattice.PQ128:
		return DSA44Params, nil
	case pqlattice.PQ192:
		return DSA65Params, nil
	default:
		return pqlattice.SignParams{}, fmt.Errorf("%w: unknown security level %q",
			pqlattice.ErrInvalidParameterSet, level)
	}
}

// ValidateKEMParams validates a KEM parameter set for internal consistency.
// The derived byte sizes must agree with (K, Du, Dv); a mismatch means the
// struct was built by hand rather than taken from GetKEMParams.
func ValidateKEMParams(p pqlattice.KEMParams) error {
	if p.K < 2 || p.K > 4 {
		return errors.New("kem rank k must be in [2,4]")
	}
	if p.Eta1 != 2 && p.Eta1 != 3 {
		return errors.New("eta1 must be 2 or 3")
	}
	if p.Eta2 != 2 {
		return errors.New("eta2 must be 2")
	}
	if p.PublicKeySize != 384*p.K+32 {
		return errors.New("public key size inconsistent with k")
	}
	if p.PrivateKeySize != 768*p.K+96 {
		return errors.New("private key size inconsistent with k")
	}
	if p.CiphertextSize != 32*(p.Du*p.K+p.Dv) {
		return errors.New("ciphertext size inconsistent with k, du, dv")
	}
	if p.SharedSecretSize != 32 || p.SeedSize != 64 {
		return errors.New("shared secret and seed sizes are fixed at 32 and 64")
	}
	return nil
}

// ValidateSignParams validates a signature parameter set for internal consistency.
func ValidateSignParams(p pqlattice.SignParams) error {
	if p.K <= 0 || p.L <= 0 || p.L > p.K {
		return errors.New("matrix dimensions must satisfy 0 < l <= k")
	}
	if p.Eta != 2 && p.Eta != 4 {
		return errors.New("eta must be 2 or 4")
	}
	if p.Gamma1Bits != 17 && p.Gamma1Bits != 19 {
		return errors.New("gamma1 must be 2^17 or 2^19")
	}
	if p.Gamma2 != (QSign-1)/88 && p.Gamma2 != (QSign-1)/32 {
		return errors.New("gamma2 must be (q-1)/88 or (q-1)/32")
	}
	if p.Beta != p.Tau*p.Eta {
		return errors.New("beta must equal tau*eta")
	}
	if p.PublicKeySize != 32+320*p.K {
		return errors.New("public key size inconsistent with k")
	}
	etaBytes := 96
	if p.Eta == 4 {
		etaBytes = 128
	}
	if p.PrivateKeySize != 128+(p.K+p.L)*etaBytes+416*p.K {
		return errors.New("private key size inconsistent with k, l, eta")
	}
	if p.SignatureSize != p.Lambda/4+32*(p.Gamma1Bits+1)*p.L+p.Omega+p.K {
		return errors.New("signature size inconsistent with parameters")
	}
	return nil
}
