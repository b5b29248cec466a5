package codec

import (
	"sort"
	"strconv"

	"github.com/wippyai/wasm-base64/errors"
)

// PadByte is the padding symbol shared by every alphabet.
const PadByte = '='

// AlphabetSize is the number of symbols in an alphabet.
const AlphabetSize = 64

// Alphabet maps the values 0..63 to distinct printable ASCII bytes.
// The zero value is not usable; obtain alphabets from NewAlphabet or the presets.
type Alphabet struct {
	name    string
	symbols [AlphabetSize]byte
}

// Preset alphabets.
var (
	StandardAlphabet  = mustAlphabet("standard", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")
	URLSafeAlphabet   = mustAlphabet("url_safe", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")
	CryptAlphabet     = mustAlphabet("crypt", "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")
	BcryptAlphabet    = mustAlphabet("bcrypt", "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")
	IMAPMUTF7Alphabet = mustAlphabet("imap_mutf7", "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+,")
	BinHexAlphabet    = mustAlphabet("bin_hex", "!\"#$%&'()*+,-012345689@ABCDEFGHIJKLMNPQRSTUVXYZ[`abcdefhijklmpqr")
)

var alphabets = map[string]Alphabet{
	"standard":   StandardAlphabet,
	"url_safe":   URLSafeAlphabet,
	"crypt":      CryptAlphabet,
	"bcrypt":     BcryptAlphabet,
	"imap_mutf7": IMAPMUTF7Alphabet,
	"bin_hex":    BinHexAlphabet,
}

// AlphabetByName returns a preset alphabet.
func AlphabetByName(name string) (Alphabet, error) {
	a, ok := alphabets[name]
	if !ok {
		return Alphabet{}, errors.UnknownAlphabet(name)
	}
	return a, nil
}

// AlphabetNames returns the preset alphabet names in sorted order.
func AlphabetNames() []string {
	names := make([]string, 0, len(alphabets))
	for name := range alphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewAlphabet validates chars and builds a custom alphabet.
// chars must be exactly 64 printable ASCII bytes, all distinct, none '='.
func NewAlphabet(chars string) (Alphabet, error) {
	return newAlphabet("custom", chars)
}

func newAlphabet(name, chars string) (Alphabet, error) {
	if len(chars) != AlphabetSize {
		return Alphabet{}, errors.InvalidAlphabet(
			"alphabet must contain exactly 64 bytes, got "+strconv.Itoa(len(chars)), -1, 0)
	}

	var a Alphabet
	a.name = name

	var seen [256]int16
	for i := range seen {
		seen[i] = -1
	}

	for i := 0; i < AlphabetSize; i++ {
		c := chars[i]
		switch {
		case c < 0x20 || c > 0x7e:
			return Alphabet{}, errors.InvalidAlphabet("unprintable symbol", i, c)
		case c == PadByte:
			return Alphabet{}, errors.InvalidAlphabet("reserved padding symbol", i, c)
		case seen[c] >= 0:
			return Alphabet{}, errors.InvalidAlphabet("duplicated symbol (first at position "+strconv.Itoa(int(seen[c]))+")", i, c)
		}
		seen[c] = int16(i)
		a.symbols[i] = c
	}
	return a, nil
}

func mustAlphabet(name, chars string) Alphabet {
	a, err := newAlphabet(name, chars)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the preset name, or "custom".
func (a Alphabet) Name() string {
	return a.name
}

// Symbols returns the 64 symbols in index order.
func (a Alphabet) Symbols() string {
	return string(a.symbols[:])
}

// Valid reports whether a was produced by NewAlphabet or a preset.
func (a Alphabet) Valid() bool {
	return a.name != ""
}

func (a Alphabet) String() string {
	return a.name + ": " + a.Symbols()
}
