package codec

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/wippyai/wasm-base64/errors"
)

const invalidSymbol = 0xff

// Engine combines an Alphabet and a Config with a precomputed decode table.
// Engines are immutable and safe for concurrent use.
type Engine struct {
	name        string
	alphabet    Alphabet
	config      Config
	decodeTable [256]byte
}

// Preset engines.
var (
	Standard      = newEngine("standard", StandardAlphabet, PadConfig)
	StandardNoPad = newEngine("standard_no_pad", StandardAlphabet, NoPadConfig)
	URLSafe       = newEngine("url_safe", URLSafeAlphabet, PadConfig)
	URLSafeNoPad  = newEngine("url_safe_no_pad", URLSafeAlphabet, NoPadConfig)
	Crypt         = newEngine("crypt", CryptAlphabet, NoPadConfig)
	Bcrypt        = newEngine("bcrypt", BcryptAlphabet, NoPadConfig)
	IMAPMUTF7     = newEngine("imap_mutf7", IMAPMUTF7Alphabet, NoPadConfig)
	BinHex        = newEngine("bin_hex", BinHexAlphabet, NoPadConfig)
)

var engines = map[string]*Engine{
	"standard":        Standard,
	"standard_no_pad": StandardNoPad,
	"url_safe":        URLSafe,
	"url_safe_no_pad": URLSafeNoPad,
	"crypt":           Crypt,
	"bcrypt":          Bcrypt,
	"imap_mutf7":      IMAPMUTF7,
	"bin_hex":         BinHex,
}

// EngineByName returns a preset engine.
func EngineByName(name string) (*Engine, error) {
	e, ok := engines[name]
	if !ok {
		return nil, errors.UnknownEngine(name)
	}
	return e, nil
}

// EngineNames returns the preset engine names in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEngine builds an engine from an alphabet and a config.
// An engine whose encoder pads while its decoder requires no padding is
// accepted, with a warning logged through Logger.
func NewEngine(a Alphabet, c Config) (*Engine, error) {
	if !a.Valid() {
		return nil, errors.InvalidAlphabet("alphabet is not initialized", -1, 0)
	}
	if c.TrailingBits > TrailingBitsIgnore {
		return nil, errors.InvalidConfig("decode_padding_trailing_bits", c.TrailingBits.String())
	}
	if c.PaddingMode > PaddingRequireCanonical {
		return nil, errors.InvalidConfig("decode_padding_mode", c.PaddingMode.String())
	}

	e := newEngine("custom", a, c)
	if !c.SelfConsistent() {
		Logger().Warn("engine pads on encode but its decoder rejects padding",
			zap.String("alphabet", a.Name()),
			zap.Stringer("config", c))
	}
	return e, nil
}

// MustNewEngine is NewEngine that panics on error.
func MustNewEngine(a Alphabet, c Config) *Engine {
	e, err := NewEngine(a, c)
	if err != nil {
		panic(err)
	}
	return e
}

func newEngine(name string, a Alphabet, c Config) *Engine {
	e := &Engine{
		name:     name,
		alphabet: a,
		config:   c,
	}
	for i := range e.decodeTable {
		e.decodeTable[i] = invalidSymbol
	}
	for i, s := range a.symbols {
		e.decodeTable[s] = byte(i)
	}
	return e
}

// Name returns the preset name, or "custom".
func (e *Engine) Name() string {
	return e.name
}

// Alphabet returns the engine's alphabet.
func (e *Engine) Alphabet() Alphabet {
	return e.alphabet
}

// Config returns the engine's config.
func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) String() string {
	return fmt.Sprintf("Engine{name: %s, alphabet: %q, config: %s}", e.name, e.alphabet.Symbols(), e.config)
}
