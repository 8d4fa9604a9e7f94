package kyber

import (
	"github.com/BackendStack21/pqlattice-go/utils"
)

// sampleUniform rejection-samples a uniform NTT-domain polynomial from
// SHAKE128(rho || j || i). Three squeezed bytes yield two 12-bit candidates;
// values >= q are discarded. The output is bit-identical across
// implementations for the same seed and indices.
func sampleUniform(rho []byte, j, i byte) poly {
	xof := utils.NewShake128()
	xof.Write(rho)
	xof.Write([]byte{j, i})

	var f poly
	var buf [504]byte // 3 * SHAKE128 rate
	n := 0
	for {
		_, _ = xof.Read(buf[:])
		for k := 0; k+3 <= len(buf); k += 3 {
			d1 := uint16(buf[k]) | uint16(buf[k+1]&0x0f)<<8
			d2 := uint16(buf[k+1])>>4 | uint16(buf[k+2])<<4
			if d1 < Q {
				f[n] = fieldElement(d1)
				n++
				if n == N {
					return f
				}
			}
			if d2 < Q {
				f[n] = fieldElement(d2)
				n++
				if n == N {
					return f
				}
			}
		}
	}
}

// sampleCBD samples a polynomial from the centered binomial distribution
// with parameter eta, using the PRF stream SHAKE256(sigma || nonce).
// Coefficients land in {-eta..eta}, represented canonically mod q.
func sampleCBD(sigma []byte, nonce byte, eta int) poly {
	buf := make([]byte, 64*eta)
	utils.Shake256Into(buf, sigma, []byte{nonce})

	bit := func(i int) uint32 {
		return uint32(buf[i>>3]>>(i&7)) & 1
	}

	var f poly
	for i := 0; i < N; i++ {
		var x, y uint32
		for j := 0; j < eta; j++ {
			x += bit(2*i*eta + j)
			y += bit(2*i*eta + eta + j)
		}
		f[i] = fieldSub(fieldElement(x), fieldElement(y))
	}
	return f
}
