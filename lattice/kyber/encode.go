package kyber

// byteEncode serializes 256 d-bit values into 32*d bytes, little-endian bit
// order within each byte, appending to out. Coefficients must already be
// reduced below 2^d.
func byteEncode(out []byte, f *poly, d int) []byte {
	var acc uint32
	nbits := 0
	for _, c := range f {
		acc |= uint32(c) << nbits
		nbits += d
		for nbits >= 8 {
			out = append(out, byte(acc))
			acc >>= 8
			nbits -= 8
		}
	}
	return out
}

// byteDecode parses 32*d bytes into 256 d-bit values. The inverse of
// byteEncode; values are returned raw, without reduction mod q.
func byteDecode(b []byte, d int) poly {
	var f poly
	var acc uint32
	nbits := 0
	k := 0
	mask := uint32(1)<<d - 1
	for i := 0; i < N; i++ {
		for nbits < d {
			acc |= uint32(b[k]) << nbits
			k++
			nbits += 8
		}
		f[i] = fieldElement(acc & mask)
		acc >>= d
		nbits -= d
	}
	return f
}

// compressPoly encodes f at d bits per coefficient after lossy compression.
func compressPoly(out []byte, f *poly, d int) []byte {
	var c poly
	for i, x := range f {
		c[i] = fieldElement(compress(x, d))
	}
	return byteEncode(out, &c, d)
}

// decompressPoly decodes 32*d bytes and decompresses each coefficient.
func decompressPoly(b []byte, d int) poly {
	f := byteDecode(b, d)
	for i, y := range f {
		f[i] = decompress(uint16(y), d)
	}
	return f
}
