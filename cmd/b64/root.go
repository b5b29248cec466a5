package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/host"
	"github.com/wippyai/wasm-base64/server"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	log *zap.Logger

	engine        string
	alphabet      string
	symbols       string
	encodePadding bool
	trailingBits  string
	paddingMode   string

	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:           "b64",
		Short:         "Configurable base64 codec",
		Long:          `Encode and decode base64 with selectable alphabets and padding policies, run guests against the b64 host binding, or serve the codec over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.log = server.SetupLogger(opts.logLevel, opts.logFormat)
			codec.SetLogger(opts.log.Named("codec"))
			host.SetLogger(opts.log.Named("host"))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.log.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.engine, "engine", "e", "standard", "Preset engine ("+joinNames(codec.EngineNames())+")")
	pf.StringVarP(&opts.alphabet, "alphabet", "a", "", "Preset alphabet for a custom engine ("+joinNames(codec.AlphabetNames())+")")
	pf.StringVar(&opts.symbols, "symbols", "", "64-symbol custom alphabet for a custom engine")
	pf.BoolVar(&opts.encodePadding, "encode-padding", true, "Custom engine: emit padding on encode")
	pf.StringVar(&opts.trailingBits, "trailing-bits", "reject", "Custom engine: trailing bits policy (reject, ignore)")
	pf.StringVar(&opts.paddingMode, "padding-mode", "requireCanonical", "Custom engine: padding mode (indifferent, canonical, requireNone, requireCanonical)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newDecodeTextCmd(opts),
		newChunkCmd(),
		newAlphabetCmd(),
		newEngineCmd(opts),
		newFuncsCmd(),
		newRunCmd(opts),
		newInteractiveCmd(opts),
		newServeCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}
