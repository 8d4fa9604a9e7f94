package dilithium

// NTT transforms f in place into the NTT domain. Unlike the KEM ring, the
// transform here is complete: eight layers down to length-1 blocks, so
// NTT-domain multiplication is plain pointwise multiplication.
func NTT(f *Poly) {
	k := 1
	for length := 128; length >= 1; length >>= 1 {
		for start := 0; start < N; start += 2 * length {
			zeta := zetas[k]
			k++
			for j := start; j < start+length; j++ {
				t := fieldMul(zeta, f[j+length])
				f[j+length] = fieldSub(f[j], t)
				f[j] = fieldAdd(f[j], t)
			}
		}
	}
}

// InvNTT transforms f in place back to the coefficient domain.
func InvNTT(f *Poly) {
	k := 255
	for length := 1; length < N; length <<= 1 {
		for start := 0; start < N; start += 2 * length {
			zeta := zetas[k]
			k--
			for j := start; j < start+length; j++ {
				t := f[j]
				f[j] = fieldAdd(t, f[j+length])
				f[j+length] = fieldMul(zeta, fieldSub(f[j+length], t))
			}
		}
	}
	for i := range f {
		f[i] = fieldMul(f[i], invN)
	}
}

// MulHat multiplies two NTT-domain polynomials pointwise.
func MulHat(a, b *Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = fieldMul(a[i], b[i])
	}
	return r
}

// MulHatAcc accumulates MulHat(a, b) into acc, for matrix-vector products.
func MulHatAcc(acc, a, b *Poly) {
	for i := range acc {
		acc[i] = fieldAdd(acc[i], fieldMul(a[i], b[i]))
	}
}
