package api

import (
	"github.com/wippyai/wasm-base64/codec"
)

// resolve returns the engine selected by spec. A nil engine means standard.
func (spec *EngineSpec) resolve() (*codec.Engine, error) {
	if spec.Engine != "" {
		return codec.EngineByName(spec.Engine)
	}
	if spec.Alphabet == "" && spec.Symbols == "" && spec.Config == nil {
		return nil, nil
	}

	alphabet := codec.StandardAlphabet
	var err error
	switch {
	case spec.Symbols != "":
		alphabet, err = codec.NewAlphabet(spec.Symbols)
	case spec.Alphabet != "":
		alphabet, err = codec.AlphabetByName(spec.Alphabet)
	}
	if err != nil {
		return nil, err
	}

	cfg := codec.PadConfig
	if spec.Config != nil {
		pad := codec.PadConfig.EncodePadding
		if spec.Config.EncodePadding != nil {
			pad = *spec.Config.EncodePadding
		}
		tb, pm := spec.Config.TrailingBits, spec.Config.PaddingMode
		if tb == "" {
			tb = codec.PadConfig.TrailingBits.String()
		}
		if pm == "" {
			pm = codec.PadConfig.PaddingMode.String()
		}
		cfg, err = codec.NewConfig(pad, tb, pm)
		if err != nil {
			return nil, err
		}
	}
	return codec.NewEngine(alphabet, cfg)
}

func engineName(e *codec.Engine) string {
	if e == nil {
		return codec.Standard.Name()
	}
	return e.Name()
}

func configSpec(c codec.Config) ConfigSpec {
	pad := c.EncodePadding
	return ConfigSpec{
		EncodePadding: &pad,
		TrailingBits:  c.TrailingBits.String(),
		PaddingMode:   c.PaddingMode.String(),
	}
}
