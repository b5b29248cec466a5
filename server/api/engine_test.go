package api

import (
	"testing"

	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/errors"
)

func TestEngineSpecResolve(t *testing.T) {
	noPad := false
	tests := []struct {
		name     string
		spec     EngineSpec
		wantName string
		wantCfg  codec.Config
		wantErr  errors.Kind
	}{
		{
			name:     "empty is standard",
			spec:     EngineSpec{},
			wantName: "standard",
			wantCfg:  codec.PadConfig,
		},
		{
			name:     "preset",
			spec:     EngineSpec{Engine: "url_safe_no_pad"},
			wantName: "url_safe_no_pad",
			wantCfg:  codec.NoPadConfig,
		},
		{
			name:     "alphabet with default config",
			spec:     EngineSpec{Alphabet: "crypt"},
			wantName: "custom",
			wantCfg:  codec.PadConfig,
		},
		{
			name:     "config with defaults filled",
			spec:     EngineSpec{Config: &ConfigSpec{PaddingMode: "indifferent"}},
			wantName: "custom",
			wantCfg: codec.Config{
				EncodePadding: true,
				TrailingBits:  codec.TrailingBitsReject,
				PaddingMode:   codec.PaddingIndifferent,
			},
		},
		{
			name:     "empty config is pad config",
			spec:     EngineSpec{Config: &ConfigSpec{}},
			wantName: "custom",
			wantCfg:  codec.PadConfig,
		},
		{
			name:     "explicit no padding",
			spec:     EngineSpec{Alphabet: "url_safe", Config: &ConfigSpec{EncodePadding: &noPad, PaddingMode: "requireNone"}},
			wantName: "custom",
			wantCfg:  codec.NoPadConfig,
		},
		{
			name:    "unknown preset",
			spec:    EngineSpec{Engine: "nope"},
			wantErr: errors.KindUnknownEngine,
		},
		{
			name:    "unknown alphabet",
			spec:    EngineSpec{Alphabet: "nope"},
			wantErr: errors.KindUnknownAlphabet,
		},
		{
			name:    "short symbols",
			spec:    EngineSpec{Symbols: "abc"},
			wantErr: errors.KindInvalidAlphabet,
		},
		{
			name:    "bad mode",
			spec:    EngineSpec{Config: &ConfigSpec{PaddingMode: "sometimes"}},
			wantErr: errors.KindInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.spec.resolve()
			if tt.wantErr != "" {
				if errors.KindOf(err) != tt.wantErr {
					t.Fatalf("resolve() error = %v, want kind %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			if got := engineName(e); got != tt.wantName {
				t.Errorf("engine name = %q, want %q", got, tt.wantName)
			}
			cfg := codec.PadConfig
			if e != nil {
				cfg = e.Config()
			}
			if cfg != tt.wantCfg {
				t.Errorf("config = %s, want %s", cfg, tt.wantCfg)
			}
		})
	}
}
