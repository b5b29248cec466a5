package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/wasm-base64/host"
)

func newFuncsCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "funcs",
		Short: "List the functions of the b64 host module",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, fn := range host.NewBinding().Functions() {
				fmt.Fprintf(out, "%s.%s\n", host.ModuleName, fn.Signature())
				if verbose && fn.Doc != "" {
					fmt.Fprintf(out, "    %s\n", fn.Doc)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include descriptions")
	return cmd
}
