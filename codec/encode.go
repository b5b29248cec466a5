package codec

// EncodedLen returns the length of the encoding of n source bytes.
func (e *Engine) EncodedLen(n int) int {
	if e.config.EncodePadding {
		return (n + 2) / 3 * 4
	}
	return n/3*4 + (n%3*8+5)/6
}

// Encode writes the encoding of src to dst, which must hold EncodedLen(len(src)) bytes.
func (e *Engine) Encode(dst, src []byte) {
	if len(src) == 0 {
		return
	}
	sym := &e.alphabet.symbols

	di, si := 0, 0
	n := len(src) / 3 * 3
	for si < n {
		v := uint(src[si])<<16 | uint(src[si+1])<<8 | uint(src[si+2])

		dst[di+0] = sym[v>>18&0x3f]
		dst[di+1] = sym[v>>12&0x3f]
		dst[di+2] = sym[v>>6&0x3f]
		dst[di+3] = sym[v&0x3f]

		si += 3
		di += 4
	}

	remain := len(src) - si
	if remain == 0 {
		return
	}

	v := uint(src[si]) << 16
	if remain == 2 {
		v |= uint(src[si+1]) << 8
	}

	dst[di+0] = sym[v>>18&0x3f]
	dst[di+1] = sym[v>>12&0x3f]

	switch remain {
	case 2:
		dst[di+2] = sym[v>>6&0x3f]
		if e.config.EncodePadding {
			dst[di+3] = PadByte
		}
	case 1:
		if e.config.EncodePadding {
			dst[di+2] = PadByte
			dst[di+3] = PadByte
		}
	}
}

// AppendEncode appends the encoding of src to dst.
func (e *Engine) AppendEncode(dst, src []byte) []byte {
	n := e.EncodedLen(len(src))
	start := len(dst)
	if cap(dst)-start < n {
		grown := make([]byte, start, start+n)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:start+n]
	e.Encode(dst[start:], src)
	return dst
}

// EncodeToString returns the encoding of src.
func (e *Engine) EncodeToString(src []byte) string {
	buf := make([]byte, e.EncodedLen(len(src)))
	e.Encode(buf, src)
	return string(buf)
}
