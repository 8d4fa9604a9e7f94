package kyber

// fieldElement is an element of Z_3329 in canonical form [0, q).
// Plain modular arithmetic over uint32 intermediates; q is small enough
// that no Montgomery or Barrett machinery is needed to stay in range.
type fieldElement uint16

// poly is a degree-255 polynomial with coefficients in Z_q, in either the
// coefficient or the NTT domain depending on context.
type poly [N]fieldElement

func fieldAdd(a, b fieldElement) fieldElement {
	s := uint32(a) + uint32(b)
	if s >= Q {
		s -= Q
	}
	return fieldElement(s)
}

func fieldSub(a, b fieldElement) fieldElement {
	s := uint32(a) + Q - uint32(b)
	if s >= Q {
		s -= Q
	}
	return fieldElement(s)
}

func fieldMul(a, b fieldElement) fieldElement {
	return fieldElement(uint32(a) * uint32(b) % Q)
}

// compress maps x to the d-bit value round(2^d/q * x) mod 2^d.
func compress(x fieldElement, d int) uint16 {
	return uint16((uint32(x)<<d + Q/2) / Q & (1<<d - 1))
}

// decompress maps a d-bit value y back to round(q/2^d * y). For all d < 12
// decompress(compress(x)) differs from x by at most round(q/2^(d+1)).
func decompress(y uint16, d int) fieldElement {
	return fieldElement((uint32(y)*Q + 1<<(d-1)) >> d)
}

func polyAdd(a, b *poly) poly {
	var r poly
	for i := range r {
		r[i] = fieldAdd(a[i], b[i])
	}
	return r
}

func polySub(a, b *poly) poly {
	var r poly
	for i := range r {
		r[i] = fieldSub(a[i], b[i])
	}
	return r
}
