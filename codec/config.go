package codec

import (
	"fmt"
	"strings"

	"github.com/wippyai/wasm-base64/errors"
)

// TrailingBits is the decode policy for non-zero unused bits in the final
// partial group.
type TrailingBits uint8

const (
	// TrailingBitsReject fails the decode with InvalidLastSymbol.
	TrailingBitsReject TrailingBits = iota
	// TrailingBitsIgnore discards the unused bits.
	TrailingBitsIgnore
)

func (t TrailingBits) String() string {
	switch t {
	case TrailingBitsReject:
		return "reject"
	case TrailingBitsIgnore:
		return "ignore"
	default:
		return fmt.Sprintf("TrailingBits(%d)", uint8(t))
	}
}

// ParseTrailingBits accepts "reject" and "ignore". The boolean spellings
// "false" (reject) and "true"/"allow" (ignore) are accepted as well.
func ParseTrailingBits(s string) (TrailingBits, error) {
	switch strings.ToLower(s) {
	case "reject", "false":
		return TrailingBitsReject, nil
	case "ignore", "allow", "true":
		return TrailingBitsIgnore, nil
	}
	return 0, errors.InvalidConfig("decode_padding_trailing_bits", s)
}

// PaddingMode is the decode policy for the presence and count of padding bytes.
type PaddingMode uint8

const (
	// PaddingIndifferent accepts either no padding or the canonical count.
	PaddingIndifferent PaddingMode = iota
	// PaddingCanonical requires the canonical count.
	PaddingCanonical
	// PaddingRequireNone rejects any padding.
	PaddingRequireNone
	// PaddingRequireCanonical requires the canonical count; unpadded input
	// is rejected even when its length is otherwise valid.
	PaddingRequireCanonical
)

func (m PaddingMode) String() string {
	switch m {
	case PaddingIndifferent:
		return "indifferent"
	case PaddingCanonical:
		return "canonical"
	case PaddingRequireNone:
		return "requireNone"
	case PaddingRequireCanonical:
		return "requireCanonical"
	default:
		return fmt.Sprintf("PaddingMode(%d)", uint8(m))
	}
}

// ParsePaddingMode accepts the mode names case-insensitively, with or
// without an underscore ("require_none"). "none" is an alias of requireNone.
func ParsePaddingMode(s string) (PaddingMode, error) {
	switch strings.ReplaceAll(strings.ToLower(s), "_", "") {
	case "indifferent":
		return PaddingIndifferent, nil
	case "canonical":
		return PaddingCanonical, nil
	case "requirenone", "none":
		return PaddingRequireNone, nil
	case "requirecanonical":
		return PaddingRequireCanonical, nil
	}
	return 0, errors.InvalidConfig("decode_padding_mode", s)
}

// accepts reports whether observed padding bytes satisfy the mode given the
// canonical count.
func (m PaddingMode) accepts(observed, expected int) bool {
	switch m {
	case PaddingIndifferent:
		return observed == 0 || observed == expected
	case PaddingCanonical, PaddingRequireCanonical:
		return observed == expected
	case PaddingRequireNone:
		return observed == 0
	}
	return false
}

// Config holds the encode/decode policy of an Engine.
type Config struct {
	EncodePadding bool
	TrailingBits  TrailingBits
	PaddingMode   PaddingMode
}

var (
	// PadConfig pads on encode and requires canonical padding on decode.
	PadConfig = Config{
		EncodePadding: true,
		TrailingBits:  TrailingBitsReject,
		PaddingMode:   PaddingRequireCanonical,
	}

	// NoPadConfig omits padding on encode and rejects it on decode.
	NoPadConfig = Config{
		EncodePadding: false,
		TrailingBits:  TrailingBitsReject,
		PaddingMode:   PaddingRequireNone,
	}
)

// NewConfig builds a Config from enumerator names.
func NewConfig(encodePadding bool, trailingBits, paddingMode string) (Config, error) {
	tb, err := ParseTrailingBits(trailingBits)
	if err != nil {
		return Config{}, err
	}
	pm, err := ParsePaddingMode(paddingMode)
	if err != nil {
		return Config{}, err
	}
	return Config{
		EncodePadding: encodePadding,
		TrailingBits:  tb,
		PaddingMode:   pm,
	}, nil
}

// SelfConsistent reports whether the engine's own decoder accepts what its
// encoder emits. Padding on encode combined with requireNone is the one
// combination that fails.
func (c Config) SelfConsistent() bool {
	return !(c.EncodePadding && c.PaddingMode == PaddingRequireNone)
}

func (c Config) String() string {
	return fmt.Sprintf("Config{encode_padding: %t, decode_padding_trailing_bits: %s, decode_padding_mode: %s}",
		c.EncodePadding, c.TrailingBits, c.PaddingMode)
}
