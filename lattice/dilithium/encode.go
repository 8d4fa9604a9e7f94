package dilithium

// BitPack appends the coefficients of f at the given bit width to out,
// little-endian bit order. Coefficients must already be reduced below
// 2^bits; the scheme-specific packers below handle the centering.
func BitPack(out []byte, f *Poly, bits int) []byte {
	var acc uint64
	nbits := 0
	for _, c := range f {
		acc |= uint64(c) << nbits
		nbits += bits
		for nbits >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			nbits -= 8
		}
	}
	return out
}

// BitUnpack parses 32*bits bytes into 256 raw values of the given width.
func BitUnpack(b []byte, bits int) Poly {
	var f Poly
	var acc uint64
	nbits := 0
	k := 0
	mask := uint64(1)<<bits - 1
	for i := 0; i < N; i++ {
		for nbits < bits {
			acc |= uint64(b[k]) << nbits
			k++
			nbits += 8
		}
		f[i] = uint32(acc & mask)
		acc >>= bits
		nbits -= bits
	}
	return f
}

// PackT1 appends the 10-bit packing of the high key part t1.
func PackT1(out []byte, f *Poly) []byte {
	return BitPack(out, f, 10)
}

// UnpackT1 parses a 320-byte t1 encoding.
func UnpackT1(b []byte) Poly {
	return BitUnpack(b, 10)
}

// PackEta appends the packing of a secret polynomial with coefficients in
// [-eta, eta], stored as eta - c at 3 bits (eta = 2) or 4 bits (eta = 4).
func PackEta(out []byte, f *Poly, eta int) []byte {
	e := uint32(eta)
	var t Poly
	for i, c := range f {
		t[i] = fieldSub(e, c) // in [0, 2*eta]
	}
	bits := 3
	if eta == 4 {
		bits = 4
	}
	return BitPack(out, &t, bits)
}

// UnpackEta parses an eta-packed polynomial back to canonical form.
// Raw values above 2*eta decode to out-of-range coefficients; ValidEta
// rejects such encodings.
func UnpackEta(b []byte, eta int) Poly {
	bits := 3
	if eta == 4 {
		bits = 4
	}
	e := uint32(eta)
	f := BitUnpack(b, bits)
	for i, v := range f {
		f[i] = fieldSub(e, v)
	}
	return f
}

// ValidEta reports whether every coefficient of an unpacked secret
// polynomial lies in [-eta, eta].
func ValidEta(f *Poly, eta int) bool {
	for _, c := range f {
		if InfNorm(c) > uint32(eta) {
			return false
		}
	}
	return true
}

// PackT0 appends the 13-bit packing of the low key part t0, stored as
// 2^(d-1) - c.
func PackT0(out []byte, f *Poly) []byte {
	const half = uint32(1) << (D - 1)
	var t Poly
	for i, c := range f {
		t[i] = fieldSub(half, c) & (1<<D - 1)
	}
	return BitPack(out, &t, D)
}

// UnpackT0 parses a 416-byte t0 encoding.
func UnpackT0(b []byte) Poly {
	const half = uint32(1) << (D - 1)
	f := BitUnpack(b, D)
	for i, v := range f {
		f[i] = fieldSub(half, v)
	}
	return f
}

// PackZ appends the gamma1Bits+1-bit packing of a response polynomial with
// coefficients in (-gamma1, gamma1], stored as gamma1 - c.
func PackZ(out []byte, f *Poly, gamma1Bits int) []byte {
	gamma1 := uint32(1) << gamma1Bits
	mask := uint32(1)<<(gamma1Bits+1) - 1
	var t Poly
	for i, c := range f {
		t[i] = fieldSub(gamma1, c) & mask
	}
	return BitPack(out, &t, gamma1Bits+1)
}

// UnpackZ parses a packed response polynomial back to canonical form.
func UnpackZ(b []byte, gamma1Bits int) Poly {
	gamma1 := uint32(1) << gamma1Bits
	f := BitUnpack(b, gamma1Bits+1)
	for i, v := range f {
		f[i] = fieldSub(gamma1, v)
	}
	return f
}

// PackW1 appends the packing of a high-bits commitment polynomial:
// 6 bits per coefficient for gamma2 = (q-1)/88, 4 bits for (q-1)/32.
func PackW1(out []byte, f *Poly, gamma2 uint32) []byte {
	bits := 6
	if gamma2 == (Q-1)/32 {
		bits = 4
	}
	return BitPack(out, f, bits)
}

// PackHint appends the FIPS 204 hint encoding: the positions of the set
// bits of each of the k hint polynomials in order, padded with zeros to
// omega bytes, followed by k running-count bytes.
func PackHint(out []byte, hints []Poly, omega int) []byte {
	base := len(out)
	out = append(out, make([]byte, omega+len(hints))...)
	idx := 0
	for i := range hints {
		for j := 0; j < N; j++ {
			if hints[i][j] != 0 {
				out[base+idx] = byte(j)
				idx++
			}
		}
		out[base+omega+i] = byte(idx)
	}
	return out
}

// UnpackHint parses a hint encoding into k hint polynomials. It enforces
// the canonical form: counts non-decreasing and bounded by omega, positions
// strictly increasing within each polynomial, zero padding. Returns false
// for any malleable encoding.
func UnpackHint(b []byte, k, omega int) ([]Poly, bool) {
	hints := make([]Poly, k)
	idx := 0
	for i := 0; i < k; i++ {
		limit := int(b[omega+i])
		if limit < idx || limit > omega {
			return nil, false
		}
		first := idx
		for idx < limit {
			pos := b[idx]
			if idx > first && b[idx-1] >= pos {
				return nil, false
			}
			hints[i][pos] = 1
			idx++
		}
	}
	for j := idx; j < omega; j++ {
		if b[j] != 0 {
			return nil, false
		}
	}
	return hints, true
}
