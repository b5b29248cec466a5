package b64

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/wasm-base64/errors"
)

// Chunk splits encoded into consecutive pieces of width characters; the last
// piece may be shorter. An empty input yields no pieces.
func Chunk(encoded string, width int) ([]string, error) {
	if width <= 0 {
		return nil, errors.InvalidArgument(errors.PhaseFormat, "width", "must be a positive integer, got "+strconv.Itoa(width))
	}

	n := utf8.RuneCountInString(encoded)
	out := make([]string, 0, (n+width-1)/width)
	for len(encoded) > 0 {
		end, count := 0, 0
		for end < len(encoded) && count < width {
			_, size := utf8.DecodeRuneInString(encoded[end:])
			end += size
			count++
		}
		out = append(out, encoded[:end])
		encoded = encoded[end:]
	}
	return out, nil
}

// Wrap joins chunks with newline.
func Wrap(chunks []string, newline string) string {
	return strings.Join(chunks, newline)
}

// ChunkVectorized chunks every element; a missing element yields no pieces.
func ChunkVectorized(seq []Optional[string], width int) ([][]string, error) {
	out := make([][]string, len(seq))
	for i, v := range seq {
		if !v.Valid {
			out[i] = []string{}
			continue
		}
		c, err := Chunk(v.Value, width)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// WrapVectorized wraps every chunk list.
func WrapVectorized(lists [][]string, newline string) []string {
	out := make([]string, len(lists))
	for i, chunks := range lists {
		out[i] = Wrap(chunks, newline)
	}
	return out
}
