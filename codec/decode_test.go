package codec

import (
	"bytes"
	stderrors "errors"
	"math/rand"
	"testing"

	"github.com/wippyai/wasm-base64/errors"
)

func engineWith(mode PaddingMode, bits TrailingBits) *Engine {
	return MustNewEngine(StandardAlphabet, Config{
		EncodePadding: true,
		TrailingBits:  bits,
		PaddingMode:   mode,
	})
}

func TestDecodePaddingModes(t *testing.T) {
	modes := []PaddingMode{PaddingIndifferent, PaddingCanonical, PaddingRequireNone, PaddingRequireCanonical}

	// ok lists, per mode in the order above, whether the input decodes.
	tests := []struct {
		in       string
		want     string
		ok       [4]bool
		observed int
		expected int
	}{
		{in: "", want: "", ok: [4]bool{true, true, true, true}},
		{in: "Zg", want: "f", ok: [4]bool{true, false, true, false}, observed: 0, expected: 2},
		{in: "Zg=", ok: [4]bool{false, false, false, false}, observed: 1, expected: 2},
		{in: "Zg==", want: "f", ok: [4]bool{true, true, false, true}, observed: 2, expected: 2},
		{in: "Zg===", ok: [4]bool{false, false, false, false}, observed: 3, expected: 2},
		{in: "Zm8", want: "fo", ok: [4]bool{true, false, true, false}, observed: 0, expected: 1},
		{in: "Zm8=", want: "fo", ok: [4]bool{true, true, false, true}, observed: 1, expected: 1},
		{in: "Zm8==", ok: [4]bool{false, false, false, false}, observed: 2, expected: 1},
		{in: "Zm9v", want: "foo", ok: [4]bool{true, true, true, true}},
		{in: "Zm9v=", ok: [4]bool{false, false, false, false}, observed: 1, expected: 0},
		{in: "Zm9v===", ok: [4]bool{false, false, false, false}, observed: 3, expected: 0},
		{in: "Zm9vYmFy", want: "foobar", ok: [4]bool{true, true, true, true}},
	}

	for _, tt := range tests {
		for i, mode := range modes {
			t.Run(mode.String()+"/"+tt.in, func(t *testing.T) {
				got, err := engineWith(mode, TrailingBitsReject).DecodeString(tt.in)
				if tt.ok[i] {
					if err != nil {
						t.Fatalf("DecodeString(%q) error: %v", tt.in, err)
					}
					if string(got) != tt.want {
						t.Errorf("DecodeString(%q) = %q, want %q", tt.in, got, tt.want)
					}
					return
				}

				var e *errors.Error
				if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidPadding {
					t.Fatalf("DecodeString(%q) error = %v, want invalid padding", tt.in, err)
				}
				if e.Observed != tt.observed || e.Expected != tt.expected {
					t.Errorf("observed/expected = %d/%d, want %d/%d", e.Observed, e.Expected, tt.observed, tt.expected)
				}
				if e.Mode != mode.String() {
					t.Errorf("Mode = %q, want %q", e.Mode, mode.String())
				}
			})
		}
	}
}

func TestDecodeScenarioRequireCanonical(t *testing.T) {
	_, err := Standard.DecodeString("Zg")
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidPadding {
		t.Fatalf("error = %v, want invalid padding", err)
	}
	if e.Observed != 0 || e.Expected != 2 {
		t.Errorf("observed/expected = %d/%d, want 0/2", e.Observed, e.Expected)
	}

	got, err := engineWith(PaddingIndifferent, TrailingBitsReject).DecodeString("Zg")
	if err != nil || string(got) != "f" {
		t.Errorf("indifferent DecodeString(Zg) = %q, %v", got, err)
	}
}

func TestDecodeInvalidLength(t *testing.T) {
	for _, in := range []string{"Z", "Z=", "Z===", "Zm9vZ", "Zm9vZ==="} {
		for _, mode := range []PaddingMode{PaddingIndifferent, PaddingCanonical, PaddingRequireNone, PaddingRequireCanonical} {
			_, err := engineWith(mode, TrailingBitsReject).DecodeString(in)
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidLength {
				t.Errorf("%s DecodeString(%q) error = %v, want invalid length", mode, in, err)
				continue
			}
			if e.Observed%4 != 1 {
				t.Errorf("length = %d, want 1 mod 4", e.Observed)
			}
		}
	}
}

func TestDecodeInvalidByte(t *testing.T) {
	tests := []struct {
		name string
		in   string
		pos  int
		char byte
	}{
		{"space", "Zm 9v", 2, ' '},
		{"newline", "Zm9v\n", 4, '\n'},
		{"carriage return", "\rZm9v", 0, '\r'},
		{"tab", "Zm9v\tYmFy", 4, '\t'},
		{"high bit", "\xffZm9", 0, 0xff},
		{"non-ascii utf8", "Zm9vé", 4, 0xc3},
		{"url safe symbol", "-_8=", 0, '-'},
		{"concatenated groups", "Zg==Zg==", 2, '='},
		{"padding then data", "Zm9v=Y", 4, '='},
		{"invalid before padding", "Z*==", 1, '*'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Standard.DecodeString(tt.in)
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidByte {
				t.Fatalf("DecodeString(%q) error = %v, want invalid byte", tt.in, err)
			}
			if e.Position != tt.pos || e.Byte != tt.char {
				t.Errorf("position/byte = %d/%#x, want %d/%#x", e.Position, e.Byte, tt.pos, tt.char)
			}
		})
	}
}

func TestDecodeTrailingBits(t *testing.T) {
	tests := []struct {
		in   string
		pos  int
		char byte
		want string
	}{
		{"Zh==", 1, 'h', "f"},
		{"Zm9=", 2, '9', "fo"},
		{"Zh", 1, 'h', "f"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := engineWith(PaddingIndifferent, TrailingBitsReject).DecodeString(tt.in)
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidLastSymbol {
				t.Fatalf("reject: error = %v, want invalid last symbol", err)
			}
			if e.Position != tt.pos || e.Byte != tt.char {
				t.Errorf("position/byte = %d/%q, want %d/%q", e.Position, e.Byte, tt.pos, tt.char)
			}

			got, err := engineWith(PaddingIndifferent, TrailingBitsIgnore).DecodeString(tt.in)
			if err != nil {
				t.Fatalf("ignore: error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("ignore: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodedLen(t *testing.T) {
	tests := map[int]int{0: 0, 1: -1, 2: 1, 3: 2, 4: 3, 6: 4, 7: 5, 8: 6, 9: -1}
	for m, want := range tests {
		if got := DecodedLen(m); got != want {
			t.Errorf("DecodedLen(%d) = %d, want %d", m, got, want)
		}
	}
}

func TestCanonicalReencode(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	lenient := engineWith(PaddingIndifferent, TrailingBitsReject)

	for n := 0; n < 40; n++ {
		buf := make([]byte, n)
		rng.Read(buf)

		for _, text := range []string{StandardNoPad.EncodeToString(buf), Standard.EncodeToString(buf)} {
			dec, err := lenient.DecodeString(text)
			if err != nil {
				t.Fatalf("DecodeString(%q) error: %v", text, err)
			}
			if !bytes.Equal(dec, buf) {
				t.Fatalf("DecodeString(%q) = %x, want %x", text, dec, buf)
			}
			if got, want := Standard.EncodeToString(dec), Standard.EncodeToString(buf); got != want {
				t.Errorf("re-encode of %q = %q, want %q", text, got, want)
			}
		}
	}
}

func TestDecodeBytesEqualsDecodeString(t *testing.T) {
	got, err := Standard.Decode([]byte("Zm9vYg=="))
	if err != nil || string(got) != "foob" {
		t.Errorf("Decode = %q, %v", got, err)
	}
}
