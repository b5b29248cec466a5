package b64

import (
	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/errors"
)

// EncodeVectorized encodes every present element; missing elements stay missing.
func EncodeVectorized[T ~string | ~[]byte](seq []Optional[T], e *codec.Engine) []Optional[string] {
	eng := engineOr(e)
	out := make([]Optional[string], len(seq))
	for i, v := range seq {
		if !v.Valid {
			continue
		}
		out[i] = Some(eng.EncodeToString([]byte(v.Value)))
	}
	return out
}

// DecodeVectorized decodes every present element; missing elements stay
// missing. It stops at the first failing element and returns its error
// tagged with the element index.
func DecodeVectorized(seq []Optional[string], e *codec.Engine) ([]Optional[[]byte], error) {
	eng := engineOr(e)
	out := make([]Optional[[]byte], len(seq))
	for i, v := range seq {
		if !v.Valid {
			continue
		}
		b, err := eng.DecodeString(v.Value)
		if err != nil {
			return nil, errors.AtIndex(err, i)
		}
		out[i] = Some(b)
	}
	return out, nil
}

// DecodeVectorizedLenient is DecodeVectorized that turns failing elements
// into missing ones.
func DecodeVectorizedLenient(seq []Optional[string], e *codec.Engine) []Optional[[]byte] {
	eng := engineOr(e)
	out := make([]Optional[[]byte], len(seq))
	for i, v := range seq {
		if !v.Valid {
			continue
		}
		if b, err := eng.DecodeString(v.Value); err == nil {
			out[i] = Some(b)
		}
	}
	return out
}
