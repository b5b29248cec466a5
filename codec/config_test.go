package codec

import (
	"strings"
	"testing"

	"github.com/wippyai/wasm-base64/errors"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		trailing string
		mode     string
		want     Config
	}{
		{"reject", "indifferent", Config{true, TrailingBitsReject, PaddingIndifferent}},
		{"ignore", "canonical", Config{true, TrailingBitsIgnore, PaddingCanonical}},
		{"reject", "requireNone", Config{true, TrailingBitsReject, PaddingRequireNone}},
		{"reject", "requireCanonical", Config{true, TrailingBitsReject, PaddingRequireCanonical}},
		{"true", "none", Config{true, TrailingBitsIgnore, PaddingRequireNone}},
		{"false", "require_canonical", Config{true, TrailingBitsReject, PaddingRequireCanonical}},
		{"allow", "RequireNone", Config{true, TrailingBitsIgnore, PaddingRequireNone}},
	}

	for _, tt := range tests {
		t.Run(tt.trailing+"/"+tt.mode, func(t *testing.T) {
			got, err := NewConfig(true, tt.trailing, tt.mode)
			if err != nil {
				t.Fatalf("NewConfig error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NewConfig = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewConfigInvalid(t *testing.T) {
	_, err := NewConfig(true, "maybe", "canonical")
	if errors.KindOf(err) != errors.KindInvalidConfig {
		t.Fatalf("kind = %v, want %v", errors.KindOf(err), errors.KindInvalidConfig)
	}
	if !strings.Contains(err.Error(), "decode_padding_trailing_bits") {
		t.Errorf("error %q should name the field", err)
	}

	_, err = NewConfig(false, "reject", "sometimes")
	if errors.KindOf(err) != errors.KindInvalidConfig {
		t.Fatalf("kind = %v, want %v", errors.KindOf(err), errors.KindInvalidConfig)
	}
	if !strings.Contains(err.Error(), "sometimes") {
		t.Errorf("error %q should name the value", err)
	}
}

func TestConfigString(t *testing.T) {
	s := PadConfig.String()
	for _, want := range []string{"encode_padding: true", "reject", "requireCanonical"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if s != PadConfig.String() {
		t.Error("String() is not stable")
	}
}

func TestConfigSelfConsistent(t *testing.T) {
	if !PadConfig.SelfConsistent() || !NoPadConfig.SelfConsistent() {
		t.Error("preset configs should be self consistent")
	}
	c := Config{EncodePadding: true, PaddingMode: PaddingRequireNone}
	if c.SelfConsistent() {
		t.Error("padding encoder with requireNone decoder is not self consistent")
	}
}

func TestPaddingModeAccepts(t *testing.T) {
	tests := []struct {
		mode     PaddingMode
		observed int
		expected int
		want     bool
	}{
		{PaddingIndifferent, 0, 2, true},
		{PaddingIndifferent, 2, 2, true},
		{PaddingIndifferent, 1, 2, false},
		{PaddingIndifferent, 3, 2, false},
		{PaddingIndifferent, 0, 0, true},
		{PaddingIndifferent, 1, 0, false},
		{PaddingCanonical, 2, 2, true},
		{PaddingCanonical, 0, 2, false},
		{PaddingCanonical, 0, 0, true},
		{PaddingRequireNone, 0, 1, true},
		{PaddingRequireNone, 1, 1, false},
		{PaddingRequireCanonical, 1, 1, true},
		{PaddingRequireCanonical, 0, 1, false},
		{PaddingRequireCanonical, 0, 0, true},
		{PaddingRequireCanonical, 3, 1, false},
	}
	for _, tt := range tests {
		if got := tt.mode.accepts(tt.observed, tt.expected); got != tt.want {
			t.Errorf("%v.accepts(%d, %d) = %v, want %v", tt.mode, tt.observed, tt.expected, got, tt.want)
		}
	}
}
