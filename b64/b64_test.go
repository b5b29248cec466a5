package b64

import (
	"bytes"
	"testing"

	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/errors"
)

func TestEncodeDefaultsToStandard(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"f", "Zg=="},
		{"fo", "Zm8="},
		{"foo", "Zm9v"},
		{"foob", "Zm9vYg=="},
		{"fooba", "Zm9vYmE="},
		{"foobar", "Zm9vYmFy"},
	}

	for _, tt := range tests {
		if got := Encode([]byte(tt.in), nil); got != tt.want {
			t.Errorf("Encode(%q, nil) = %q, want %q", tt.in, got, tt.want)
		}
		if got := EncodeString(tt.in, codec.Standard); got != tt.want {
			t.Errorf("EncodeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeEngines(t *testing.T) {
	data := []byte{0xfb, 0xff, 0xbf}
	tests := []struct {
		engine *codec.Engine
		want   string
	}{
		{codec.Standard, "+/+/"},
		{codec.URLSafe, "-_-_"},
	}

	for _, tt := range tests {
		if got := Encode(data, tt.engine); got != tt.want {
			t.Errorf("Encode with %s = %q, want %q", tt.engine.Name(), got, tt.want)
		}
	}

	if got := Encode([]byte("f"), codec.StandardNoPad); got != "Zg" {
		t.Errorf("no-pad encode = %q, want Zg", got)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	for _, name := range codec.EngineNames() {
		e, err := codec.EngineByName(name)
		if err != nil {
			t.Fatalf("EngineByName(%q): %v", name, err)
		}
		for n := 0; n <= 10; n++ {
			got, err := Decode(Encode(data[:n], e), e)
			if err != nil {
				t.Fatalf("%s: decode of %d bytes: %v", name, n, err)
			}
			if !bytes.Equal(got, data[:n]) {
				t.Errorf("%s: round trip of %d bytes = %x", name, n, got)
			}
		}
	}
}

func TestDecodeDoesNotStripWhitespace(t *testing.T) {
	_, err := Decode("Zm9v\nYmFy", nil)
	if errors.KindOf(err) != errors.KindInvalidByte {
		t.Fatalf("expected invalid_byte, got %v", err)
	}
}
