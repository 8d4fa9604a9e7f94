package dilithium

import (
	"encoding/binary"

	"github.com/BackendStack21/pqlattice-go/utils"
)

// SampleUniform rejection-samples a uniform NTT-domain polynomial from
// SHAKE128(rho || s || r), the RejNTTPoly expansion of the public matrix A.
// Three squeezed bytes give one 23-bit candidate; values >= q are discarded.
func SampleUniform(rho []byte, s, r byte) Poly {
	xof := utils.NewShake128()
	xof.Write(rho)
	xof.Write([]byte{s, r})

	var f Poly
	var buf [504]byte // 3 * SHAKE128 rate
	n := 0
	for {
		_, _ = xof.Read(buf[:])
		for k := 0; k+3 <= len(buf); k += 3 {
			d := uint32(buf[k]) | uint32(buf[k+1])<<8 | uint32(buf[k+2]&0x7f)<<16
			if d < Q {
				f[n] = d
				n++
				if n == N {
					return f
				}
			}
		}
	}
}

// SampleBounded rejection-samples a polynomial with coefficients in
// [-eta, eta] from SHAKE256(seed || nonce), nonce little-endian 16-bit.
// Supports eta 2 (mod-5 folding) and eta 4 (direct rejection).
func SampleBounded(seed []byte, eta int, nonce uint16) Poly {
	xof := utils.NewShake256()
	xof.Write(seed)
	xof.Write([]byte{byte(nonce), byte(nonce >> 8)})

	var f Poly
	var buf [136]byte // SHAKE256 rate
	n := 0
	for {
		_, _ = xof.Read(buf[:])
		for _, b := range buf {
			for _, z := range [2]uint32{uint32(b) & 0x0f, uint32(b) >> 4} {
				var c uint32
				ok := false
				if eta == 2 {
					if z < 15 {
						c = fieldSub(2, z%5)
						ok = true
					}
				} else {
					if z <= 8 {
						c = fieldSub(4, z)
						ok = true
					}
				}
				if ok {
					f[n] = c
					n++
					if n == N {
						return f
					}
				}
			}
		}
	}
}

// SampleChallenge expands the commitment hash into the challenge polynomial
// with exactly tau coefficients in {-1, +1}, via the SampleInBall in-place
// Fisher-Yates shuffle driven by SHAKE256(cTilde).
func SampleChallenge(cTilde []byte, tau int) Poly {
	xof := utils.NewShake256()
	xof.Write(cTilde)

	var head [8]byte
	_, _ = xof.Read(head[:])
	signs := binary.LittleEndian.Uint64(head[:])

	var f Poly
	var b [1]byte
	for i := N - tau; i < N; i++ {
		var j int
		for {
			_, _ = xof.Read(b[:])
			j = int(b[0])
			if j <= i {
				break
			}
		}
		f[i] = f[j]
		if signs&1 == 0 {
			f[j] = 1
		} else {
			f[j] = Q - 1
		}
		signs >>= 1
	}
	return f
}

// ExpandMask derives the i-th masking polynomial y with coefficients in
// (-gamma1, gamma1] from SHAKE256(rhoPrime || kappa), unpacked at
// gamma1Bits+1 bits per coefficient.
func ExpandMask(rhoPrime []byte, kappa uint16, gamma1Bits int) Poly {
	buf := make([]byte, 32*(gamma1Bits+1))
	utils.Shake256Into(buf, rhoPrime, []byte{byte(kappa), byte(kappa >> 8)})

	gamma1 := uint32(1) << gamma1Bits
	f := BitUnpack(buf, gamma1Bits+1)
	for i, v := range f {
		f[i] = fieldSub(gamma1, v)
	}
	return f
}
