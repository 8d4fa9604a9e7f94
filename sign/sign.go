// Package sign implements the ML-DSA digital signature scheme (FIPS 204):
// key generation, Fiat-Shamir-with-aborts signing in deterministic and
// hedged variants, and verification, on top of the ring arithmetic in
// lattice/dilithium.
package sign

import (
	"fmt"

	pqlattice "github.com/BackendStack21/pqlattice-go"
	"github.com/BackendStack21/pqlattice-go/core"
	"github.com/BackendStack21/pqlattice-go/lattice/dilithium"
	"github.com/BackendStack21/pqlattice-go/utils"
)

// MaxSignAttempts bounds the rejection-sampling loop. The expected number
// of iterations is between 4 and 8 depending on the parameter set; hitting
// the bound indicates an implementation or entropy defect, not bad luck.
const MaxSignAttempts = 1000

// PublicKey is an ML-DSA verification key.
type PublicKey struct {
	Params pqlattice.SignParams

	pk []byte // rho || SimpleBitPack10(t1)
	tr []byte // SHAKE256(pk, 64), cached for message binding
}

// PrivateKey is an ML-DSA signing key.
type PrivateKey struct {
	Params pqlattice.SignParams

	sk []byte // rho || K || tr || BitPackEta(s1) || BitPackEta(s2) || BitPack13(t0)
}

// KeyPair bundles both halves of a generated key.
type KeyPair struct {
	PublicKey PublicKey
	SecretKey PrivateKey
}

// GenerateKeyPair generates an ML-DSA key pair for the given security level.
func GenerateKeyPair(level pqlattice.SecurityLevel) (*KeyPair, error) {
	params, err := core.GetSignParams(level)
	if err != nil {
		return nil, err
	}
	if err := core.ValidateSignParams(params); err != nil {
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
// 32-byte seed. The expanded seed is domain-separated by (k, l), so the
// same seed yields unrelated keys at different security levels. The caller
// owns the quality of the seed; no entropy screening is applied.
func GenerateKeyPairFromSeed(params pqlattice.SignParams, seed []byte) (*KeyPair, error) {
	if len(seed) != params.SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d",
			pqlattice.ErrMalformedInput, params.SeedSize, len(seed))
	}

	expanded := make([]byte, 128)
	utils.Shake256Into(expanded, seed, []byte{byte(params.K), byte(params.L)})
	rho := expanded[:32]
	rhoPrime := expanded[32:96]
	key := expanded[96:128]

	s1 := make([]dilithium.Poly, params.L)
	for i := range s1 {
		s1[i] = dilithium.SampleBounded(rhoPrime, params.Eta, uint16(i))
	}
	s2 := make([]dilithium.Poly, params.K)
	for i := range s2 {
		s2[i] = dilithium.SampleBounded(rhoPrime, params.Eta, uint16(params.L+i))
	}
	a := expandMatrix(rho, params.K, params.L)

	s1Hat := make([]dilithium.Poly, params.L)
	for i := range s1Hat {
		s1Hat[i] = s1[i]
		dilithium.NTT(&s1Hat[i])
	}

	// t = InvNTT(A * s1-hat) + s2, split into (t1, t0) by Power2Round.
	t1 := make([]dilithium.Poly, params.K)
	t0 := make([]dilithium.Poly, params.K)
	for i := 0; i < params.K; i++ {
		var acc dilithium.Poly
		for j := 0; j < params.L; j++ {
			dilithium.MulHatAcc(&acc, &a[i][j], &s1Hat[j])
		}
		dilithium.InvNTT(&acc)
		t := dilithium.Add(&acc, &s2[i])
		for n, c := range t {
			t1[i][n], t0[i][n] = dilithium.Power2Round(c)
		}
	}

	pk := make([]byte, 0, params.PublicKeySize)
	pk = append(pk, rho...)
	for i := range t1 {
		pk = dilithium.PackT1(pk, &t1[i])
	}
	tr := make([]byte, 64)
	utils.Shake256Into(tr, pk)

	sk := make([]byte, 0, params.PrivateKeySize)
	sk = append(sk, rho...)
	sk = append(sk, key...)
	sk = append(sk, tr...)
	for i := range s1 {
		sk = dilithium.PackEta(sk, &s1[i], params.Eta)
	}
	for i := range s2 {
		sk = dilithium.PackEta(sk, &s2[i], params.Eta)
	}
	for i := range t0 {
		sk = dilithium.PackT0(sk, &t0[i])
	}

	for i := range s1 {
		utils.ZeroizeUint32(s1[i][:])
		utils.ZeroizeUint32(s1Hat[i][:])
	}
	for i := range s2 {
		utils.ZeroizeUint32(s2[i][:])
	}
	utils.Zeroize(expanded)

	return &KeyPair{
		PublicKey: PublicKey{Params: params, pk: pk, tr: tr},
		SecretKey: PrivateKey{Params: params, sk: sk},
	}, nil
}

// Sign produces a deterministic signature over the message: the hedging
// randomness is fixed to 32 zero bytes, so the same key and message always
// yield the same signature.
func Sign(sk *PrivateKey, message []byte) ([]byte, error) {
	rnd := make([]byte, 32)
	return signInternal(sk, message, rnd)
}

// SignRandomized produces a hedged signature with fresh randomness folded
// into the mask seed. Verification is identical; hedging protects against
// fault attacks on the deterministic path.
func SignRandomized(sk *PrivateKey, message []byte) ([]byte, error) {
	rnd, err := utils.SecureRandomBytes(32)
	if err != nil {
		return nil, err
	}
	sig, err := signInternal(sk, message, rnd)
	utils.Zeroize(rnd)
	return sig, err
}

// signInternal runs the Fiat-Shamir-with-aborts loop. A candidate (z, h)
// is rejected when any of the four FIPS 204 conditions would leak secret
// information or break verification:
//
//	||z||inf >= gamma1 - beta
//	||LowBits(w - c*s2)||inf >= gamma2 - beta
//	||c*t0||inf >= gamma2
//	weight(h) > omega
func signInternal(sk *PrivateKey, message, rnd []byte) ([]byte, error) {
	p := sk.Params
	rho, key, tr, s1, s2, t0 := sk.decode()

	a := expandMatrix(rho, p.K, p.L)

	// mu = H(tr || M') with the pure-message framing M' = 0 || len(ctx) || msg
	// for an empty context string.
	mu := make([]byte, 64)
	utils.Shake256Into(mu, tr, []byte{0, 0}, message)

	maskSeed := make([]byte, 64)
	utils.Shake256Into(maskSeed, key, rnd, mu)

	s1Hat := nttVector(s1)
	s2Hat := nttVector(s2)
	t0Hat := nttVector(t0)
	defer func() {
		zeroVector(s1)
		zeroVector(s2)
		zeroVector(s1Hat)
		zeroVector(s2Hat)
		utils.Zeroize(maskSeed)
	}()

	gamma1 := uint32(p.Gamma1())
	gamma2 := uint32(p.Gamma2)
	beta := uint32(p.Beta)
	w1Bytes := 32 * 6
	if p.Gamma2 == (dilithium.Q-1)/32 {
		w1Bytes = 32 * 4
	}

	kappa := uint16(0)
	for attempt := 0; attempt < MaxSignAttempts; attempt++ {
		// Fresh mask vector y and commitment w = InvNTT(A * y-hat).
		y := make([]dilithium.Poly, p.L)
		yHat := make([]dilithium.Poly, p.L)
		for i := range y {
			y[i] = dilithium.ExpandMask(maskSeed, kappa, p.Gamma1Bits)
			kappa++
			yHat[i] = y[i]
			dilithium.NTT(&yHat[i])
		}

		w := make([]dilithium.Poly, p.K)
		w1Packed := make([]byte, 0, p.K*w1Bytes)
		for i := 0; i < p.K; i++ {
			var acc dilithium.Poly
			for j := 0; j < p.L; j++ {
				dilithium.MulHatAcc(&acc, &a[i][j], &yHat[j])
			}
			dilithium.InvNTT(&acc)
			w[i] = acc
			var w1 dilithium.Poly
			for n, c := range acc {
				w1[n] = dilithium.HighBits(c, gamma2)
			}
			w1Packed = dilithium.PackW1(w1Packed, &w1, gamma2)
		}

		cTilde := make([]byte, p.Lambda/4)
		utils.Shake256Into(cTilde, mu, w1Packed)
		c := dilithium.SampleChallenge(cTilde, p.Tau)
		cHat := c
		dilithium.NTT(&cHat)

		// z = y + c*s1
		z := make([]dilithium.Poly, p.L)
		normOK := true
		for i := 0; i < p.L; i++ {
			cs1 := dilithium.MulHat(&cHat, &s1Hat[i])
			dilithium.InvNTT(&cs1)
			z[i] = dilithium.Add(&y[i], &cs1)
			if z[i].MaxInfNorm() >= gamma1-beta {
				normOK = false
			}
		}
		zeroVector(y)
		if !normOK {
			continue
		}

		// r0 = LowBits(w - c*s2)
		wcs2 := make([]dilithium.Poly, p.K)
		for i := 0; i < p.K; i++ {
			cs2 := dilithium.MulHat(&cHat, &s2Hat[i])
			dilithium.InvNTT(&cs2)
			wcs2[i] = dilithium.Sub(&w[i], &cs2)
			for _, cf := range wcs2[i] {
				r0 := dilithium.LowBits(cf, gamma2)
				if r0 < 0 {
					r0 = -r0
				}
				if uint32(r0) >= gamma2-beta {
					normOK = false
				}
			}
		}
		if !normOK {
			continue
		}

		// c*t0 must stay small enough for the hint to compensate.
		ct0 := make([]dilithium.Poly, p.K)
		for i := 0; i < p.K; i++ {
			ct0[i] = dilithium.MulHat(&cHat, &t0Hat[i])
			dilithium.InvNTT(&ct0[i])
			if ct0[i].MaxInfNorm() >= gamma2 {
				normOK = false
			}
		}
		if !normOK {
			continue
		}

		hints := make([]dilithium.Poly, p.K)
		ones := 0
		for i := 0; i < p.K; i++ {
			for n := 0; n < dilithium.N; n++ {
				h := dilithium.MakeHint(ct0[i][n], wcs2[i][n], gamma2)
				hints[i][n] = h
				ones += int(h)
			}
		}
		if ones > p.Omega {
			continue
		}

		sig := make([]byte, 0, p.SignatureSize)
		sig = append(sig, cTilde...)
		for i := range z {
			sig = dilithium.PackZ(sig, &z[i], p.Gamma1Bits)
		}
		sig = dilithium.PackHint(sig, hints, p.Omega)
		return sig, nil
	}

	return nil, pqlattice.ErrRetryExhausted
}

// Verify reports whether the signature is valid for the message under the
// public key. It is a pure predicate: malformed signatures return false,
// never an error.
func Verify(pk *PublicKey, message, sig []byte) bool {
	p := pk.Params
	if len(sig) != p.SignatureSize {
		return false
	}

	lambdaBytes := p.Lambda / 4
	zBytes := 32 * (p.Gamma1Bits + 1)
	cTilde := sig[:lambdaBytes]

	gamma1 := uint32(p.Gamma1())
	gamma2 := uint32(p.Gamma2)
	beta := uint32(p.Beta)

	z := make([]dilithium.Poly, p.L)
	for i := range z {
		z[i] = dilithium.UnpackZ(sig[lambdaBytes+zBytes*i:lambdaBytes+zBytes*(i+1)], p.Gamma1Bits)
		if z[i].MaxInfNorm() >= gamma1-beta {
			return false
		}
	}
	hints, ok := dilithium.UnpackHint(sig[lambdaBytes+p.L*zBytes:], p.K, p.Omega)
	if !ok {
		return false
	}

	rho := pk.pk[:32]
	t1 := make([]dilithium.Poly, p.K)
	for i := range t1 {
		t1[i] = dilithium.UnpackT1(pk.pk[32+320*i : 32+320*(i+1)])
	}

	mu := make([]byte, 64)
	utils.Shake256Into(mu, pk.tr, []byte{0, 0}, message)

	a := expandMatrix(rho, p.K, p.L)
	c := dilithium.SampleChallenge(cTilde, p.Tau)
	cHat := c
	dilithium.NTT(&cHat)

	zHat := nttVector(z)

	w1Bytes := 32 * 6
	if p.Gamma2 == (dilithium.Q-1)/32 {
		w1Bytes = 32 * 4
	}
	w1Packed := make([]byte, 0, p.K*w1Bytes)

	// w' = A*z - c*t1*2^d, recovered to w1 via the hints.
	for i := 0; i < p.K; i++ {
		var acc dilithium.Poly
		for j := 0; j < p.L; j++ {
			dilithium.MulHatAcc(&acc, &a[i][j], &zHat[j])
		}
		var t1Shift dilithium.Poly
		for n, cf := range t1[i] {
			t1Shift[n] = uint32(uint64(cf) << dilithium.D % dilithium.Q)
		}
		dilithium.NTT(&t1Shift)
		ct1 := dilithium.MulHat(&cHat, &t1Shift)
		acc = dilithium.Sub(&acc, &ct1)
		dilithium.InvNTT(&acc)

		var w1 dilithium.Poly
		for n, cf := range acc {
			w1[n] = dilithium.UseHint(hints[i][n], cf, gamma2)
		}
		w1Packed = dilithium.PackW1(w1Packed, &w1, gamma2)
	}

	check := make([]byte, lambdaBytes)
	utils.Shake256Into(check, mu, w1Packed)
	return utils.ConstantTimeEqual(check, cTilde)
}

// Bytes returns the FIPS 204 public key encoding.
func (pk *PublicKey) Bytes() []byte {
	return append([]byte{}, pk.pk...)
}

// Bytes returns the FIPS 204 private key encoding.
func (sk *PrivateKey) Bytes() []byte {
	return append([]byte{}, sk.sk...)
}

// Destroy zeroizes the secret key material.
func (sk *PrivateKey) Destroy() {
	utils.Zeroize(sk.sk)
}

// ParsePublicKey deserializes a verification key for the given security level.
func ParsePublicKey(level pqlattice.SecurityLevel, data []byte) (*PublicKey, error) {
	params, err := core.GetSignParams(level)
	if err != nil {
		return nil, err
	}
	if len(data) != params.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d",
			pqlattice.ErrMalformedInput, params.PublicKeySize, len(data))
	}
	pk := append([]byte{}, data...)
	tr := make([]byte, 64)
	utils.Shake256Into(tr, pk)
	return &PublicKey{Params: params, pk: pk, tr: tr}, nil
}

// ParsePrivateKey deserializes a signing key. Beyond the length it
// range-checks the eta-packed secret vectors, which reject random garbage
// that happens to have the right size.
func ParsePrivateKey(level pqlattice.SecurityLevel, data []byte) (*PrivateKey, error) {
	params, err := core.GetSignParams(level)
	if err != nil {
		return nil, err
	}
	if len(data) != params.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d",
			pqlattice.ErrMalformedInput, params.PrivateKeySize, len(data))
	}
	etaBytes := 32 * 3
	if params.Eta == 4 {
		etaBytes = 32 * 4
	}
	off := 128
	for i := 0; i < params.L+params.K; i++ {
		f := dilithium.UnpackEta(data[off:off+etaBytes], params.Eta)
		if !dilithium.ValidEta(&f, params.Eta) {
			return nil, fmt.Errorf("%w: secret coefficient out of range",
				pqlattice.ErrMalformedInput)
		}
		off += etaBytes
	}
	return &PrivateKey{Params: params, sk: append([]byte{}, data...)}, nil
}

// decode unpacks the private key fields. Slices into the key for the byte
// fields, freshly decoded polynomials for the vectors.
func (sk *PrivateKey) decode() (rho, key, tr []byte, s1, s2, t0 []dilithium.Poly) {
	p := sk.Params
	rho = sk.sk[:32]
	key = sk.sk[32:64]
	tr = sk.sk[64:128]

	etaBytes := 32 * 3
	if p.Eta == 4 {
		etaBytes = 32 * 4
	}
	off := 128
	s1 = make([]dilithium.Poly, p.L)
	for i := range s1 {
		s1[i] = dilithium.UnpackEta(sk.sk[off:off+etaBytes], p.Eta)
		off += etaBytes
	}
	s2 = make([]dilithium.Poly, p.K)
	for i := range s2 {
		s2[i] = dilithium.UnpackEta(sk.sk[off:off+etaBytes], p.Eta)
		off += etaBytes
	}
	t0 = make([]dilithium.Poly, p.K)
	for i := range t0 {
		t0[i] = dilithium.UnpackT0(sk.sk[off : off+416])
		off += 416
	}
	return rho, key, tr, s1, s2, t0
}

// expandMatrix expands the k x l matrix A from rho in the NTT domain.
func expandMatrix(rho []byte, k, l int) [][]dilithium.Poly {
	a := make([][]dilithium.Poly, k)
	for i := 0; i < k; i++ {
		a[i] = make([]dilithium.Poly, l)
		for j := 0; j < l; j++ {
			a[i][j] = dilithium.SampleUniform(rho, byte(j), byte(i))
		}
	}
	return a
}

func nttVector(v []dilithium.Poly) []dilithium.Poly {
	out := make([]dilithium.Poly, len(v))
	for i := range v {
		out[i] = v[i]
		dilithium.NTT(&out[i])
	}
	return out
}

func zeroVector(v []dilithium.Poly) {
	for i := range v {
		utils.ZeroizeUint32(v[i][:])
	}
}
