package codec

import (
	"github.com/wippyai/wasm-base64/errors"
)

// tailBytes maps data length mod 4 to the bytes produced by the final group.
var tailBytes = [4]int{0, 0, 1, 2}

// DecodedLen returns the number of bytes produced by m data symbols
// (padding excluded). m mod 4 == 1 has no valid decoding and yields -1.
func DecodedLen(m int) int {
	if m%4 == 1 {
		return -1
	}
	return m/4*3 + tailBytes[m%4]
}

// DecodeString decodes s.
func (e *Engine) DecodeString(s string) ([]byte, error) {
	return e.Decode([]byte(s))
}

// Decode decodes src. Whitespace is not skipped.
func (e *Engine) Decode(src []byte) ([]byte, error) {
	m, padding, err := e.scan(src)
	if err != nil {
		return nil, err
	}

	remain := m % 4
	if remain == 1 {
		return nil, errors.InvalidLength(m)
	}

	expected := (4 - remain) % 4
	if !e.config.PaddingMode.accepts(padding, expected) {
		return nil, errors.InvalidPadding(padding, expected, e.config.PaddingMode.String())
	}

	dst := make([]byte, DecodedLen(m))
	table := &e.decodeTable

	di, si := 0, 0
	full := m / 4 * 4
	for si < full {
		v := uint(table[src[si]])<<18 |
			uint(table[src[si+1]])<<12 |
			uint(table[src[si+2]])<<6 |
			uint(table[src[si+3]])

		dst[di+0] = byte(v >> 16)
		dst[di+1] = byte(v >> 8)
		dst[di+2] = byte(v)

		si += 4
		di += 3
	}

	if remain == 0 {
		return dst, nil
	}

	last := src[m-1]
	lastVal := table[last]

	v := uint(table[src[si]])<<18 | uint(table[src[si+1]])<<12
	var unusedMask byte
	if remain == 3 {
		v |= uint(table[src[si+2]]) << 6
		unusedMask = 0x03
	} else {
		unusedMask = 0x0f
	}

	if lastVal&unusedMask != 0 && e.config.TrailingBits == TrailingBitsReject {
		return nil, errors.InvalidLastSymbol(m-1, last)
	}

	dst[di] = byte(v >> 16)
	if remain == 3 {
		dst[di+1] = byte(v >> 8)
	}
	return dst, nil
}

// scan validates every byte of src and returns the number of data symbols
// and the number of trailing padding bytes.
func (e *Engine) scan(src []byte) (data, padding int, err error) {
	padStart := -1
	for i, c := range src {
		if c == PadByte {
			if padStart < 0 {
				padStart = i
			}
			continue
		}
		if padStart >= 0 {
			return 0, 0, errors.InvalidByte(padStart, PadByte)
		}
		if e.decodeTable[c] == invalidSymbol {
			return 0, 0, errors.InvalidByte(i, c)
		}
	}
	if padStart < 0 {
		return len(src), 0, nil
	}
	return padStart, len(src) - padStart, nil
}
