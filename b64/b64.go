package b64

import (
	"github.com/wippyai/wasm-base64/codec"
)

// Optional is an element of a vectorised call. Valid is false for a missing element.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns a present element.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns a missing element.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func engineOr(e *codec.Engine) *codec.Engine {
	if e == nil {
		return codec.Standard
	}
	return e
}

// Encode returns the encoding of data.
func Encode(data []byte, e *codec.Engine) string {
	return engineOr(e).EncodeToString(data)
}

// EncodeString returns the encoding of the bytes of s.
func EncodeString(s string, e *codec.Engine) string {
	return engineOr(e).EncodeToString([]byte(s))
}

// Decode decodes text. Whitespace is not stripped.
func Decode(text string, e *codec.Engine) ([]byte, error) {
	return engineOr(e).DecodeString(text)
}
