package b64

import (
	"io"
	"os"

	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/errors"
)

// EncodeFile returns the encoding of the contents of the file at path.
func EncodeFile(path string, e *codec.Engine) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", err
	}
	return engineOr(e).EncodeToString(data), nil
}

// DecodeFile decodes the contents of the file at path after removing CR, LF,
// TAB and SPACE bytes. Decode error positions refer to the stripped contents.
func DecodeFile(path string, e *codec.Engine) ([]byte, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	out, err := engineOr(e).Decode(StripWhitespace(data))
	if err != nil {
		var ce *errors.Error
		if errors.As(err, &ce) {
			cp := *ce
			cp.Path = path
			return nil, &cp
		}
		return nil, err
	}
	return out, nil
}

// StripWhitespace removes CR, LF, TAB and SPACE bytes from data in place and
// returns the shortened slice.
func StripWhitespace(data []byte) []byte {
	n := 0
	for _, c := range data {
		switch c {
		case '\r', '\n', '\t', ' ':
			continue
		}
		data[n] = c
		n++
	}
	return data[:n]
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.IO(path, err)
	}
	return data, nil
}
