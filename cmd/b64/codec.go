package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/wasm-base64/b64"
)

func newEncodeCmd(opts *globalOptions) *cobra.Command {
	var (
		file    string
		width   int
		newline string
	)

	cmd := &cobra.Command{
		Use:   "encode [text...]",
		Short: "Encode text, a file or stdin",
		Example: `  b64 encode hello
  b64 encode --file image.png --width 76
  printf 'hi' | b64 encode --engine url_safe_no_pad`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEngine(cmd, opts)
			if err != nil {
				return err
			}

			var encoded string
			if file != "" {
				encoded, err = b64.EncodeFile(file, e)
				if err != nil {
					return err
				}
			} else {
				data, err := readInput(cmd, args)
				if err != nil {
					return err
				}
				encoded = b64.Encode(data, e)
			}

			if width > 0 {
				chunks, err := b64.Chunk(encoded, width)
				if err != nil {
					return err
				}
				encoded = b64.Wrap(chunks, unescape(newline))
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read input from file")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap output at width characters (0 disables)")
	cmd.Flags().StringVar(&newline, "newline", `\n`, "Line separator used with --width")
	return cmd
}

func newDecodeCmd(opts *globalOptions) *cobra.Command {
	var (
		file  string
		strip bool
	)

	cmd := &cobra.Command{
		Use:   "decode [encoded...]",
		Short: "Decode to raw bytes on stdout",
		Long:  `Decode base64 input to raw bytes. Files are read with whitespace removed; other input is decoded as given unless --strip-whitespace is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEngine(cmd, opts)
			if err != nil {
				return err
			}

			var data []byte
			if file != "" {
				data, err = b64.DecodeFile(file, e)
			} else {
				var in []byte
				if in, err = readInput(cmd, args); err != nil {
					return err
				}
				in = trimNewline(in)
				if strip {
					in = b64.StripWhitespace(in)
				}
				data, err = b64.Decode(string(in), e)
			}
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read encoded input from file")
	cmd.Flags().BoolVarP(&strip, "strip-whitespace", "s", false, "Remove whitespace before decoding")
	return cmd
}

func newDecodeTextCmd(opts *globalOptions) *cobra.Command {
	var (
		split        string
		splitEncoded bool
	)

	cmd := &cobra.Command{
		Use:   "decode-text [encoded...]",
		Short: "Decode to UTF-8 text, optionally splitting it",
		Example: `  b64 decode-text YSxiLGM= --split ,
  b64 decode-text 'YQ==.Yg==' --split . --split-encoded`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := resolveEngine(cmd, opts)
			if err != nil {
				return err
			}
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text := string(trimNewline(in))
			sep := unescape(split)

			var parts []string
			switch {
			case splitEncoded:
				parts, err = b64.DecodeSplitEncoded(text, e, sep)
			case sep != "":
				parts, err = b64.DecodeAsString(text, e, []byte(sep))
			default:
				parts, err = b64.DecodeAsString(text, e, nil)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, p := range parts {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&split, "split", "", "Separator to split on (escapes \\n, \\t, \\r and \\0 allowed)")
	cmd.Flags().BoolVar(&splitEncoded, "split-encoded", false, "Split the encoded input before decoding instead of the decoded text")
	return cmd
}

func newChunkCmd() *cobra.Command {
	var (
		width   int
		newline string
	)

	cmd := &cobra.Command{
		Use:   "chunk [text...]",
		Short: "Split text into fixed-width lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			chunks, err := b64.Chunk(string(trimNewline(in)), width)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b64.Wrap(chunks, unescape(newline)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 76, "Characters per line")
	cmd.Flags().StringVar(&newline, "newline", `\n`, "Line separator")
	return cmd
}

var escapes = strings.NewReplacer(`\n`, "\n", `\r`, "\r", `\t`, "\t", `\0`, "\x00")

// unescape expands the escapes a shell makes awkward to type.
func unescape(s string) string {
	return escapes.Replace(s)
}
