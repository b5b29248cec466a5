package b64

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/errors"
)

// DecodeAsString decodes text and returns it as UTF-8 strings.
// With an empty split the result holds exactly one string. Otherwise the
// decoded bytes are split on split and every part is validated separately.
// InvalidUTF8 errors carry the offset into the decoded bytes.
func DecodeAsString(text string, e *codec.Engine, split []byte) ([]string, error) {
	decoded, err := engineOr(e).DecodeString(text)
	if err != nil {
		return nil, err
	}

	if len(split) == 0 {
		if err := validUTF8(decoded, 0); err != nil {
			return nil, err
		}
		return []string{string(decoded)}, nil
	}

	parts := bytes.Split(decoded, split)
	out := make([]string, len(parts))
	offset := 0
	for i, p := range parts {
		if err := validUTF8(p, offset); err != nil {
			return nil, err
		}
		out[i] = string(p)
		offset += len(p) + len(split)
	}
	return out, nil
}

// DecodeSplitEncoded splits text on sep before decoding and decodes each
// part separately. Errors carry the index of the failing part.
func DecodeSplitEncoded(text string, e *codec.Engine, sep string) ([]string, error) {
	if sep == "" {
		return DecodeAsString(text, e, nil)
	}

	parts := strings.Split(text, sep)
	out := make([]string, len(parts))
	for i, p := range parts {
		s, err := DecodeAsString(p, e, nil)
		if err != nil {
			return nil, errors.AtIndex(err, i)
		}
		out[i] = s[0]
	}
	return out, nil
}

func validUTF8(b []byte, base int) error {
	if utf8.Valid(b) {
		return nil
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return errors.InvalidUTF8(base+i, b[i:])
		}
		i += size
	}
	return errors.InvalidUTF8(base, b)
}
