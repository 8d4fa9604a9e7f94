package dilithium

func fieldAdd(a, b uint32) uint32 {
	s := a + b
	if s >= Q {
		s -= Q
	}
	return s
}

func fieldSub(a, b uint32) uint32 {
	s := a + Q - b
	if s >= Q {
		s -= Q
	}
	return s
}

func fieldMul(a, b uint32) uint32 {
	return uint32(uint64(a) * uint64(b) % Q)
}

// Add returns a + b coefficient-wise.
func Add(a, b *Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = fieldAdd(a[i], b[i])
	}
	return r
}

// Sub returns a - b coefficient-wise.
func Sub(a, b *Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = fieldSub(a[i], b[i])
	}
	return r
}

// InfNorm returns |c| for the centered representative of c, i.e.
// min(c, q-c).
func InfNorm(c uint32) uint32 {
	if c > Q/2 {
		return Q - c
	}
	return c
}

// MaxInfNorm returns the largest coefficient magnitude of f.
func (f *Poly) MaxInfNorm() uint32 {
	var m uint32
	for _, c := range f {
		if n := InfNorm(c); n > m {
			m = n
		}
	}
	return m
}

// Power2Round splits r into (r1, r0) with r = r1*2^d + r0 and
// r0 in (-2^(d-1), 2^(d-1)]. r0 is returned as a canonical field element.
func Power2Round(r uint32) (r1, r0 uint32) {
	low := r & (1<<D - 1)
	if low > 1<<(D-1) {
		// centered remainder is negative: low - 2^d
		r1 = (r + (1<<D - low)) >> D
		r0 = Q - (1<<D - low)
	} else {
		r1 = (r - low) >> D
		r0 = low
	}
	return r1, r0
}

// Decompose splits r into high and low parts relative to alpha = 2*gamma2,
// with the FIPS 204 boundary fix-up at r - r0 = q - 1. The low part is
// returned centered as a signed value.
func Decompose(r uint32, gamma2 uint32) (r1 uint32, r0 int32) {
	alpha := 2 * gamma2
	r0 = int32(r % alpha)
	if r0 > int32(gamma2) {
		r0 -= int32(alpha)
	}
	hi := int64(r) - int64(r0) // multiple of alpha, except at the wrap
	if hi == Q-1 {
		return 0, r0 - 1
	}
	return uint32(hi / int64(alpha)), r0
}

// HighBits returns the high part of Decompose.
func HighBits(r, gamma2 uint32) uint32 {
	r1, _ := Decompose(r, gamma2)
	return r1
}

// LowBits returns the centered low part of Decompose.
func LowBits(r, gamma2 uint32) int32 {
	_, r0 := Decompose(r, gamma2)
	return r0
}

// MakeHint reports whether adding z to r changes the high bits of r.
func MakeHint(z, r, gamma2 uint32) uint32 {
	if HighBits(fieldAdd(r, z), gamma2) != HighBits(r, gamma2) {
		return 1
	}
	return 0
}

// UseHint recovers the high bits of r + z from r and the one-bit hint.
func UseHint(h, r, gamma2 uint32) uint32 {
	m := (Q - 1) / (2 * gamma2)
	r1, r0 := Decompose(r, gamma2)
	if h == 0 {
		return r1
	}
	if r0 > 0 {
		return (r1 + 1) % m
	}
	return (r1 + m - 1) % m
}
