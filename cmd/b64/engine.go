package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/wasm-base64/codec"
)

var customEngineFlags = []string{"alphabet", "symbols", "encode-padding", "trailing-bits", "padding-mode"}

// resolveEngine returns the preset named by --engine, or a custom engine
// when any of the custom engine flags were set.
func resolveEngine(cmd *cobra.Command, opts *globalOptions) (*codec.Engine, error) {
	custom := false
	for _, name := range customEngineFlags {
		if cmd.Flags().Changed(name) {
			custom = true
			break
		}
	}
	if !custom {
		return codec.EngineByName(opts.engine)
	}
	if cmd.Flags().Changed("engine") {
		return nil, fmt.Errorf("--engine cannot be combined with custom engine flags")
	}

	alphabet := codec.StandardAlphabet
	var err error
	switch {
	case opts.symbols != "":
		alphabet, err = codec.NewAlphabet(opts.symbols)
	case opts.alphabet != "":
		alphabet, err = codec.AlphabetByName(opts.alphabet)
	}
	if err != nil {
		return nil, err
	}

	cfg, err := codec.NewConfig(opts.encodePadding, opts.trailingBits, opts.paddingMode)
	if err != nil {
		return nil, err
	}
	return codec.NewEngine(alphabet, cfg)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

func newAlphabetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alphabet [name]",
		Short: "List preset alphabets or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				a, err := codec.AlphabetByName(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, a.Symbols())
				return nil
			}
			for _, name := range codec.AlphabetNames() {
				a, _ := codec.AlphabetByName(name)
				fmt.Fprintf(out, "%-12s %s\n", name, a.Symbols())
			}
			return nil
		},
	}
}

func newEngineCmd(opts *globalOptions) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "engine [name]",
		Short: "Describe the selected engine, a preset, or list all presets",
		Example: `  b64 engine
  b64 engine url_safe_no_pad
  b64 engine --alphabet crypt --padding-mode indifferent
  b64 engine --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, name := range codec.EngineNames() {
					e, _ := codec.EngineByName(name)
					fmt.Fprintln(out, e)
				}
				return nil
			}

			var e *codec.Engine
			var err error
			if len(args) == 1 {
				e, err = codec.EngineByName(args[0])
			} else {
				e, err = resolveEngine(cmd, opts)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, e)
			if !e.Config().SelfConsistent() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: this engine cannot decode its own padded output")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every preset engine")
	return cmd
}
