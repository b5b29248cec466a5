package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wippyai/wasm-base64/runtime"
)

type runOptions struct {
	funcName    string
	args        []string
	list        bool
	wasi        bool
	memoryPages uint32
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	ro := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <guest.wasm>",
		Short: "Run a guest module against the b64 host binding",
		Long: `Load a core wasm module, link it against the b64 host module and call one of its exports.
Guests importing from b64 must export "memory" and "cabi_realloc".`,
		Example: `  b64 run guest.wasm --list
  b64 run guest.wasm --func run
  b64 run guest.wasm --func add --arg 1 --arg 2
  b64 run guest.wasm --wasi --func _start`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGuest(cmd, opts, ro, args[0])
		},
	}

	cmd.Flags().StringVarP(&ro.funcName, "func", "f", "", "Export to call (default: _start, run or main)")
	cmd.Flags().StringArrayVar(&ro.args, "arg", nil, "Integer argument, repeatable")
	cmd.Flags().BoolVarP(&ro.list, "list", "l", false, "List exported functions and exit")
	cmd.Flags().BoolVar(&ro.wasi, "wasi", false, "Provide wasi_snapshot_preview1 to the guest")
	cmd.Flags().Uint32Var(&ro.memoryPages, "memory-limit-pages", 0, "Cap guest memory at this many 64KiB pages (0 = runtime default)")
	return cmd
}

func runGuest(cmd *cobra.Command, opts *globalOptions, ro *runOptions, path string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	wasm, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read guest: %w", err)
	}

	rtOpts := []runtime.Option{runtime.WithLogger(opts.log.Named("runtime"))}
	if ro.wasi {
		rtOpts = append(rtOpts, runtime.WithWASI())
	}
	if ro.memoryPages > 0 {
		rtOpts = append(rtOpts, runtime.WithMemoryLimitPages(ro.memoryPages))
	}

	rt, err := runtime.New(ctx, rtOpts...)
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	guest, err := rt.LoadGuest(ctx, wasm)
	if err != nil {
		return err
	}
	defer guest.Close(ctx)

	exports := guest.Exports()
	if ro.list {
		for _, name := range exports {
			fmt.Fprintln(out, name)
		}
		return nil
	}

	fn := ro.funcName
	if fn == "" {
		fn = entryPoint(exports)
		if fn == "" {
			return fmt.Errorf("no function specified and no _start, run or main export; use --func")
		}
	}

	params := make([]uint64, len(ro.args))
	for i, a := range ro.args {
		v, err := parseWord(a)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
		params[i] = v
	}

	results, err := guest.Call(ctx, fn, params...)
	if err != nil {
		return fmt.Errorf("call %s: %w", fn, err)
	}
	for _, r := range results {
		fmt.Fprintln(out, r)
	}
	return nil
}

func entryPoint(exports []string) string {
	for _, want := range []string{"_start", "run", "main"} {
		for _, name := range exports {
			if name == want {
				return name
			}
		}
	}
	if len(exports) == 1 {
		return exports[0]
	}
	return ""
}

// parseWord accepts unsigned or negative decimal integers.
func parseWord(s string) (uint64, error) {
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return v, nil
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, err
	}
	return uint64(v), nil
}
