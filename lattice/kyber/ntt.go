package kyber

// ntt transforms f in place into the NTT domain. The Kyber NTT is
// incomplete: it stops at length-2 blocks, leaving 128 degree-one residues.
func ntt(f *poly) {
	k := 1
	for length := 128; length >= 2; length >>= 1 {
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

// invNTT transforms f in place back to the coefficient domain, walking the
// zeta table in reverse and folding in the 128^-1 scaling at the end.
func invNTT(f *poly) {
	k := 127
	for length := 2; length <= 128; length <<= 1 {
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

// nttMul multiplies two polynomials in the NTT domain: 128 products of
// degree-one residues modulo X^2 - gamma_i.
func nttMul(a, b *poly) poly {
	var r poly
	for i := 0; i < 128; i++ {
		a0, a1 := uint32(a[2*i]), uint32(a[2*i+1])
		b0, b1 := uint32(b[2*i]), uint32(b[2*i+1])
		g := uint32(gammas[i])
		r[2*i] = fieldElement((a0*b0%Q + a1 * b1 % Q * g % Q) % Q)
		r[2*i+1] = fieldElement((a0*b1%Q + a1*b0%Q) % Q)
	}
	return r
}

// nttMulAcc accumulates nttMul(a, b) into acc, for matrix-vector products.
func nttMulAcc(acc, a, b *poly) {
	m := nttMul(a, b)
	for i := range acc {
		acc[i] = fieldAdd(acc[i], m[i])
	}
}
