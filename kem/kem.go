// Package kem implements the ML-KEM key encapsulation mechanism (FIPS 203):
// key generation, encapsulation and decapsulation with implicit rejection,
// on top of the K-PKE scheme in lattice/kyber.
package kem

import (
	"errors"
	"fmt"

	pqlattice "github.com/BackendStack21/pqlattice-go"
	"github.com/BackendStack21/pqlattice-go/core"
	"github.com/BackendStack21/pqlattice-go/lattice/kyber"
	"github.com/BackendStack21/pqlattice-go/utils"
)

// PublicKey is an ML-KEM encapsulation key.
type PublicKey struct {
	Params pqlattice.KEMParams

	ek  []byte // ByteEncode12(t-hat) || rho
	hpk []byte // H(ek), cached for encapsulation
}

// PrivateKey is an ML-KEM decapsulation key. It embeds the encapsulation
// key, its hash and the implicit-rejection secret z, per the FIPS 203
// dk layout.
type PrivateKey struct {
	Params pqlattice.KEMParams

	dk []byte // ByteEncode12(s-hat) || ek || H(ek) || z
}

// KeyPair bundles both halves of a generated key.
type KeyPair struct {
	PublicKey PublicKey
	SecretKey PrivateKey
}

// EncapsulationResult carries the ciphertext and the shared secret it
// encapsulates.
type EncapsulationResult struct {
	SharedSecret []byte
	Ciphertext   []byte
}

// GenerateKeyPair generates an ML-KEM key pair for the given security level.
func GenerateKeyPair(level pqlattice.SecurityLevel) (*KeyPair, error) {
	params, err := core.GetKEMParams(level)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateKEMParams(params); err != nil {
		return nil, err
	}

	seed, err := utils.SecureRandomBytes(params.SeedSize)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateSeedEntropy(seed); err != nil {
		return nil, err
	}

	kp, err := GenerateKeyPairFromSeed(params, seed)
	utils.Zeroize(seed)
	return kp, err
}

// GenerateKeyPairFromSeed deterministically derives a key pair from a
// 64-byte seed d || z. The caller owns the quality of the seed; no entropy
// screening is applied, so fixed test vectors reproduce exactly.
func GenerateKeyPairFromSeed(params pqlattice.KEMParams, seed []byte) (*KeyPair, error) {
	if len(seed) != params.SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d",
			pqlattice.ErrMalformedInput, params.SeedSize, len(seed))
	}
	d, z := seed[:32], seed[32:64]

	ekPKE, dkPKE := kyber.KeyGen(d, ringParams(params))
	hpk := utils.SHA3256(ekPKE)

	dk := make([]byte, 0, params.PrivateKeySize)
	dk = append(dk, dkPKE...)
	dk = append(dk, ekPKE...)
	dk = append(dk, hpk...)
	dk = append(dk, z...)
	utils.Zeroize(dkPKE)

	return &KeyPair{
		PublicKey: PublicKey{Params: params, ek: ekPKE, hpk: hpk},
		SecretKey: PrivateKey{Params: params, dk: dk},
	}, nil
}

// Encapsulate generates a fresh shared secret and the ciphertext that
// transports it.
func Encapsulate(pk *PublicKey) (*EncapsulationResult, error) {
	m, err := utils.SecureRandomBytes(32)
	if err != nil {
		return nil, err
	}
	result, err := EncapsulateDeterministic(pk, m)
	utils.Zeroize(m)
	return result, err
}

// EncapsulateDeterministic encapsulates with caller-supplied 32-byte
// message randomness m. Deterministic in (pk, m); used for test vectors.
// The shared secret and encryption randomness are bound to the key by
// (K, r) = G(m || H(ek)).
func EncapsulateDeterministic(pk *PublicKey, m []byte) (*EncapsulationResult, error) {
	if len(m) != 32 {
		return nil, errors.New("message randomness must be 32 bytes")
	}

	g := utils.SHA3512(m, pk.hpk)
	sharedSecret, r := g[:32], g[32:]

	ct := kyber.Encrypt(pk.ek, m, r, ringParams(pk.Params))
	utils.Zeroize(r)

	return &EncapsulationResult{
		SharedSecret: sharedSecret,
		Ciphertext:   ct,
	}, nil
}

// Decapsulate recovers the shared secret from a ciphertext. A tampered
// ciphertext is never reported as an error: the Fujisaki-Okamoto
// re-encryption check fails and the deterministic rejection secret
// SHAKE256(z || ct) is returned instead, selected in constant time.
// Only a ciphertext of the wrong length is an error.
func Decapsulate(sk *PrivateKey, ct []byte) ([]byte, error) {
	params := sk.Params
	if len(ct) != params.CiphertextSize {
		return nil, fmt.Errorf("%w: ciphertext must be %d bytes, got %d",
			pqlattice.ErrMalformedInput, params.CiphertextSize, len(ct))
	}

	k := params.K
	dkPKE := sk.dk[:384*k]
	ek := sk.dk[384*k : 768*k+32]
	hpk := sk.dk[768*k+32 : 768*k+64]
	z := sk.dk[768*k+64 : 768*k+96]

	m := kyber.Decrypt(dkPKE, ct, ringParams(params))
	g := utils.SHA3512(m, hpk)
	sharedSecret, r := g[:32], g[32:]

	rejectSecret := make([]byte, 32)
	utils.Shake256Into(rejectSecret, z, ct)

	ct2 := kyber.Encrypt(ek, m, r, ringParams(params))
	utils.Zeroize(m)
	utils.Zeroize(r)

	match := 0
	if utils.ConstantTimeEqual(ct, ct2) {
		match = 1
	}
	return utils.ConstantTimeSelect(match, sharedSecret, rejectSecret), nil
}

// Bytes returns the FIPS 203 encapsulation key encoding.
func (pk *PublicKey) Bytes() []byte {
	return append([]byte{}, pk.ek...)
}

// Bytes returns the FIPS 203 decapsulation key encoding.
func (sk *PrivateKey) Bytes() []byte {
	return append([]byte{}, sk.dk...)
}

// PublicKey extracts the encapsulation key embedded in the decapsulation key.
func (sk *PrivateKey) PublicKey() *PublicKey {
	k := sk.Params.K
	ek := append([]byte{}, sk.dk[384*k:768*k+32]...)
	hpk := append([]byte{}, sk.dk[768*k+32:768*k+64]...)
	return &PublicKey{Params: sk.Params, ek: ek, hpk: hpk}
}

// Destroy zeroizes the secret key material.
func (sk *PrivateKey) Destroy() {
	utils.Zeroize(sk.dk)
}

// ParsePublicKey deserializes an encapsulation key for the given security
// level. It enforces the exact length and the FIPS 203 modulus check that
// every 12-bit coefficient is canonical.
func ParsePublicKey(level pqlattice.SecurityLevel, data []byte) (*PublicKey, error) {
	params, err := core.GetKEMParams(level)
	if err != nil {
		return nil, err
	}
	if len(data) != params.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			pqlattice.ErrMalformedInput, params.PublicKeySize, len(data))
	}
	if !kyber.CheckCanonical(data, params.K) {
		return nil, fmt.Errorf("%w: non-canonical coefficient in public key",
			pqlattice.ErrMalformedInput)
	}
	ek := append([]byte{}, data...)
	return &PublicKey{Params: params, ek: ek, hpk: utils.SHA3256(ek)}, nil
}

// ParsePrivateKey deserializes a decapsulation key. Besides the length it
// checks the embedded key hash, which catches corrupted or spliced keys.
func ParsePrivateKey(level pqlattice.SecurityLevel, data []byte) (*PrivateKey, error) {
	params, err := core.GetKEMParams(level)
	if err != nil {
		return nil, err
	}
	if len(data) != params.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d",
			pqlattice.ErrMalformedInput, params.PrivateKeySize, len(data))
	}
	k := params.K
	ek := data[384*k : 768*k+32]
	hpk := data[768*k+32 : 768*k+64]
	if !utils.ConstantTimeEqual(hpk, utils.SHA3256(ek)) {
		return nil, fmt.Errorf("%w: embedded key hash mismatch",
			pqlattice.ErrMalformedInput)
	}
	return &PrivateKey{Params: params, dk: append([]byte{}, data...)}, nil
}

func ringParams(p pqlattice.KEMParams) kyber.Params {
	return kyber.Params{K: p.K, Eta1: p.Eta1, Eta2: p.Eta2, Du: p.Du, Dv: p.Dv}
}
