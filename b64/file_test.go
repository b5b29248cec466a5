package b64

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/errors"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEncodeFile(t *testing.T) {
	path := writeFile(t, "in.bin", []byte("foobar"))

	got, err := EncodeFile(path, nil)
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if got != "Zm9vYmFy" {
		t.Errorf("got %q, want Zm9vYmFy", got)
	}
}

func TestDecodeFileStripsWhitespace(t *testing.T) {
	path := writeFile(t, "in.b64", []byte("Zm9v\r\nYm Fy\n\t"))

	got, err := DecodeFile(path, codec.Standard)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if !bytes.Equal(got, []byte("foobar")) {
		t.Errorf("got %q, want foobar", got)
	}
}

func TestDecodeFileError(t *testing.T) {
	path := writeFile(t, "bad.b64", []byte("Zm9v\nYm*y\n"))

	_, err := DecodeFile(path, nil)
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindInvalidByte {
		t.Fatalf("expected invalid_byte, got %v", err)
	}
	if e.Position != 6 {
		t.Errorf("position = %d, want 6", e.Position)
	}
	if e.Path != path {
		t.Errorf("path = %q, want %q", e.Path, path)
	}
}

func TestFileMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	if _, err := EncodeFile(missing, nil); errors.KindOf(err) != errors.KindIO {
		t.Errorf("EncodeFile: expected io error, got %v", err)
	}
	if _, err := DecodeFile(missing, nil); errors.KindOf(err) != errors.KindIO {
		t.Errorf("DecodeFile: expected io error, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i * 7)
	}
	src := writeFile(t, "src.bin", data)

	enc, err := EncodeFile(src, codec.URLSafeNoPad)
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	chunks, err := Chunk(enc, 76)
	if err != nil {
		t.Fatalf("Chunk: %v", err)
	}
	dst := writeFile(t, "dst.b64", []byte(Wrap(chunks, "\r\n")))

	got, err := DecodeFile(dst, codec.URLSafeNoPad)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("round trip mismatch")
	}
}
