package kyber

import (
	"github.com/BackendStack21/pqlattice-go/utils"
)

// K-PKE, the IND-CPA public-key encryption scheme underneath ML-KEM.
// Key and ciphertext layouts:
//
//	ekPKE = ByteEncode12(t-hat[0..k)) || rho           (384k + 32 bytes)
//	dkPKE = ByteEncode12(s-hat[0..k))                  (384k bytes)
//	ct    = Compress_du(u[0..k)) || Compress_dv(v)     (32(du*k + dv) bytes)

// KeyGen derives a K-PKE key pair from the 32-byte seed d. The domain
// separator k folded into G(d || k) ties the keys to their parameter set.
func KeyGen(d []byte, p Params) (ekPKE, dkPKE []byte) {
	g := utils.SHA3512(d, []byte{byte(p.K)})
	rho, sigma := g[:32], g[32:]

	a := expandMatrix(rho, p.K)

	nonce := byte(0)
	sHat := make([]poly, p.K)
	for i := range sHat {
		sHat[i] = sampleCBD(sigma, nonce, p.Eta1)
		nonce++
		ntt(&sHat[i])
	}
	eHat := make([]poly, p.K)
	for i := range eHat {
		eHat[i] = sampleCBD(sigma, nonce, p.Eta1)
		nonce++
		ntt(&eHat[i])
	}

	// t-hat = A * s-hat + e-hat, all in the NTT domain.
	ekPKE = make([]byte, 0, 384*p.K+32)
	for i := 0; i < p.K; i++ {
		var acc poly
		for j := 0; j < p.K; j++ {
			nttMulAcc(&acc, &a[i][j], &sHat[j])
		}
		acc = polyAdd(&acc, &eHat[i])
		ekPKE = byteEncode(ekPKE, &acc, 12)
	}
	ekPKE = append(ekPKE, rho...)

	dkPKE = make([]byte, 0, 384*p.K)
	for i := range sHat {
		dkPKE = byteEncode(dkPKE, &sHat[i], 12)
	}
	for i := range sHat {
		zeroPoly(&sHat[i])
	}
	return ekPKE, dkPKE
}

// Encrypt encrypts the 32-byte message m under ekPKE with encryption
// randomness r. Deterministic in (ekPKE, m, r); the caller guarantees the
// key has the right length and canonical coefficients.
func Encrypt(ekPKE, m, r []byte, p Params) []byte {
	tHat := make([]poly, p.K)
	for i := range tHat {
		tHat[i] = byteDecode(ekPKE[384*i:384*(i+1)], 12)
		reduce(&tHat[i])
	}
	rho := ekPKE[384*p.K:]
	a := expandMatrix(rho, p.K)

	nonce := byte(0)
	yHat := make([]poly, p.K)
	for i := range yHat {
		yHat[i] = sampleCBD(r, nonce, p.Eta1)
		nonce++
		ntt(&yHat[i])
	}
	e1 := make([]poly, p.K)
	for i := range e1 {
		e1[i] = sampleCBD(r, nonce, p.Eta2)
		nonce++
	}
	e2 := sampleCBD(r, nonce, p.Eta2)

	ct := make([]byte, 0, 32*(p.Du*p.K+p.Dv))

	// u = InvNTT(A^T * y-hat) + e1
	for i := 0; i < p.K; i++ {
		var acc poly
		for j := 0; j < p.K; j++ {
			nttMulAcc(&acc, &a[j][i], &yHat[j])
		}
		invNTT(&acc)
		acc = polyAdd(&acc, &e1[i])
		ct = compressPoly(ct, &acc, p.Du)
	}

	// v = InvNTT(t-hat * y-hat) + e2 + Decompress_1(m)
	var acc poly
	for j := 0; j < p.K; j++ {
		nttMulAcc(&acc, &tHat[j], &yHat[j])
	}
	invNTT(&acc)
	acc = polyAdd(&acc, &e2)
	mu := decompressPoly(m, 1)
	acc = polyAdd(&acc, &mu)
	ct = compressPoly(ct, &acc, p.Dv)
	return ct
}

// Decrypt recovers the 32-byte message from a ciphertext. Never fails:
// a mangled ciphertext decrypts to a wrong message, which the KEM layer
// detects by re-encryption.
func Decrypt(dkPKE, ct []byte, p Params) []byte {
	duBytes := 32 * p.Du

	// w = v - InvNTT(s-hat * NTT(u))
	var acc poly
	for j := 0; j < p.K; j++ {
		u := decompressPoly(ct[duBytes*j:duBytes*(j+1)], p.Du)
		ntt(&u)
		sHat := byteDecode(dkPKE[384*j:384*(j+1)], 12)
		nttMulAcc(&acc, &sHat, &u)
	}
	invNTT(&acc)
	v := decompressPoly(ct[duBytes*p.K:], p.Dv)
	w := polySub(&v, &acc)

	m := make([]byte, 32)
	for i, c := range w {
		m[i>>3] |= byte(compress(c, 1)) << (i & 7)
	}
	return m
}

// CheckCanonical reports whether every 12-bit coefficient encoding in ekPKE
// is below q, the modulus check FIPS 203 requires on encapsulation keys.
func CheckCanonical(ekPKE []byte, k int) bool {
	for i := 0; i < k; i++ {
		f := byteDecode(ekPKE[384*i:384*(i+1)], 12)
		for _, c := range f {
			if c >= Q {
				return false
			}
		}
	}
	return true
}

// expandMatrix expands the k x k matrix A from rho. a[i][j] is sampled from
// SHAKE128(rho || j || i), row index last.
func expandMatrix(rho []byte, k int) [][]poly {
	a := make([][]poly, k)
	for i := 0; i < k; i++ {
		a[i] = make([]poly, k)
		for j := 0; j < k; j++ {
			a[i][j] = sampleUniform(rho, byte(j), byte(i))
		}
	}
	return a
}

// reduce brings raw decoded coefficients into [0, q). Decoded 12-bit values
// can reach 4095; a single conditional subtraction is enough.
func reduce(f *poly) {
	for i, c := range f {
		if c >= Q {
			f[i] = c - Q
		}
	}
}

// zeroPoly clears secret coefficients once they are no longer needed.
func zeroPoly(f *poly) {
	for i := range f {
		f[i] = 0
	}
}
