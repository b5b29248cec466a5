package runtime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-base64/b64"
	"github.com/wippyai/wasm-base64/errors"
	"github.com/wippyai/wasm-base64/host"
	"github.com/wippyai/wasm-base64/internal/shim"
	"github.com/wippyai/wasm-base64/resource"
)

// Shim is a generated guest that re-exports every b64 host function. It
// lets Go code call the binding through a real guest boundary, with
// arguments and results passing through guest memory.
type Shim struct {
	guest *Guest
	mu    sync.Mutex
}

// Shim instantiates a fresh shim guest. Each shim has its own handle table.
func (r *Runtime) Shim(ctx context.Context) (*Shim, error) {
	compiled, err := r.compiledShim(ctx)
	if err != nil {
		return nil, err
	}

	name := r.nextName("shim")
	mod, err := r.rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	r.log.Debug("shim instantiated", zap.String("guest", name))
	return &Shim{guest: &Guest{r: r, mod: mod, name: name}}, nil
}

func (r *Runtime) compiledShim(ctx context.Context) (wazero.CompiledModule, error) {
	r.shimMu.Lock()
	defer r.shimMu.Unlock()

	if r.shim != nil {
		return r.shim, nil
	}

	b := shim.NewBuilder(host.ModuleName)
	for _, fn := range r.binding.Functions() {
		b.Add(shim.Func{Name: fn.Name, Params: fn.ABIParams(), Results: fn.ABIResults()})
	}
	compiled, err := r.rt.CompileModule(ctx, b.Build())
	if err != nil {
		return nil, errors.Instantiation(err)
	}
	r.shim = compiled
	return compiled, nil
}

// Guest returns the underlying guest.
func (s *Shim) Guest() *Guest {
	return s.guest
}

// Close releases the shim.
func (s *Shim) Close(ctx context.Context) error {
	return s.guest.Close(ctx)
}

// Invoke calls the named binding function. Arguments follow the parameter
// kinds: string or []byte for text and bytes, resource.Handle, uint32 or int
// for handles, bool, int for integers, and []b64.Optional[string] or
// []string for sequences. A failure reported by the binding is returned in
// Result.Err, not as an error.
func (s *Shim) Invoke(ctx context.Context, name string, args ...any) (host.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn, ok := s.guest.r.binding.Lookup(name)
	if !ok {
		return host.Result{}, errors.InvalidArgument(errors.PhaseHost, "function", "unknown function "+name)
	}
	if len(args) != len(fn.Params) {
		return host.Result{}, errors.InvalidArgument(errors.PhaseHost, "args",
			fmt.Sprintf("%s takes %d arguments, got %d", name, len(fn.Params), len(args)))
	}

	if _, err := s.guest.Call(ctx, shim.ExportReset); err != nil {
		return host.Result{}, err
	}

	alloc, err := host.NewAllocator(ctx, s.guest.mod)
	if err != nil {
		return host.Result{}, err
	}
	mem := s.guest.Memory()

	params := make([]uint64, 0, len(fn.ABIParams()))
	for i, p := range fn.Params {
		words, err := lower(mem, alloc, p, args[i])
		if err != nil {
			return host.Result{}, err
		}
		params = append(params, words...)
	}

	res, err := s.guest.Call(ctx, name, params...)
	if err != nil {
		return host.Result{}, err
	}
	return host.UnpackResult(mem, uint32(res[0]), fn.Result)
}

// Table returns the shim's handle table.
func (s *Shim) Table() *resource.Table {
	return s.guest.Table()
}

func lower(mem *host.Memory, alloc *host.Allocator, p host.Param, arg any) ([]uint64, error) {
	bad := func() ([]uint64, error) {
		return nil, errors.InvalidArgument(errors.PhaseHost, p.Name, fmt.Sprintf("unsupported value of type %T", arg))
	}

	switch p.Kind {
	case host.ParamString, host.ParamBytes:
		var data []byte
		switch v := arg.(type) {
		case string:
			data = []byte(v)
		case []byte:
			data = v
		default:
			return bad()
		}
		ptr, err := put(mem, alloc, data)
		if err != nil {
			return nil, err
		}
		return []uint64{uint64(ptr), uint64(len(data))}, nil

	case host.ParamHandle, host.ParamInt:
		switch v := arg.(type) {
		case resource.Handle:
			return []uint64{uint64(v)}, nil
		case uint32:
			return []uint64{uint64(v)}, nil
		case int32:
			return []uint64{uint64(uint32(v))}, nil
		case int:
			return []uint64{uint64(uint32(int32(v)))}, nil
		default:
			return bad()
		}

	case host.ParamBool:
		v, ok := arg.(bool)
		if !ok {
			return bad()
		}
		if v {
			return []uint64{1}, nil
		}
		return []uint64{0}, nil

	case host.ParamSequence:
		var items []b64.Optional[string]
		switch v := arg.(type) {
		case []b64.Optional[string]:
			items = v
		case []string:
			items = make([]b64.Optional[string], len(v))
			for i, s := range v {
				items[i] = b64.Some(s)
			}
		default:
			return bad()
		}
		return putSequence(mem, alloc, items)
	}
	return bad()
}

func put(mem *host.Memory, alloc *host.Allocator, data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, nil
	}
	ptr, err := alloc.Alloc(uint32(len(data)), 1)
	if err != nil {
		return 0, err
	}
	return ptr, mem.Write(ptr, data)
}

func putSequence(mem *host.Memory, alloc *host.Allocator, items []b64.Optional[string]) ([]uint64, error) {
	if len(items) == 0 {
		return []uint64{0, 0}, nil
	}
	arr, err := alloc.Alloc(uint32(8*len(items)), 4)
	if err != nil {
		return nil, err
	}
	for i, it := range items {
		at := arr + uint32(8*i)
		ptr, n := uint32(0), host.Missing
		if it.Valid {
			if ptr, err = put(mem, alloc, []byte(it.Value)); err != nil {
				return nil, err
			}
			n = uint32(len(it.Value))
		}
		if err := mem.WriteU32(at, ptr); err != nil {
			return nil, err
		}
		if err := mem.WriteU32(at+4, n); err != nil {
			return nil, err
		}
	}
	return []uint64{uint64(arr), uint64(len(items))}, nil
}

// ParseArgs converts textual arguments into values Invoke accepts, following
// the parameter kinds of fn. Sequences are split on commas; "-" marks a
// missing element.
func ParseArgs(fn *host.Function, text []string) ([]any, error) {
	if len(text) != len(fn.Params) {
		return nil, errors.InvalidArgument(errors.PhaseHost, "args",
			fmt.Sprintf("%s takes %d arguments, got %d", fn.Name, len(fn.Params), len(text)))
	}

	args := make([]any, len(text))
	for i, p := range fn.Params {
		s := text[i]
		switch p.Kind {
		case host.ParamString, host.ParamBytes:
			args[i] = s
		case host.ParamHandle:
			if s == "" {
				args[i] = uint32(0)
				continue
			}
			v, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return nil, errors.InvalidArgument(errors.PhaseHost, p.Name, err.Error())
			}
			args[i] = uint32(v)
		case host.ParamInt:
			v, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return nil, errors.InvalidArgument(errors.PhaseHost, p.Name, err.Error())
			}
			args[i] = int32(v)
		case host.ParamBool:
			v, err := strconv.ParseBool(s)
			if err != nil {
				return nil, errors.InvalidArgument(errors.PhaseHost, p.Name, err.Error())
			}
			args[i] = v
		case host.ParamSequence:
			var items []b64.Optional[string]
			if s != "" {
				for _, part := range strings.Split(s, ",") {
					if part == "-" {
						items = append(items, b64.None[string]())
					} else {
						items = append(items, b64.Some(part))
					}
				}
			}
			args[i] = items
		}
	}
	return args, nil
}

// FormatResult renders a result for display.
func FormatResult(fn *host.Function, res host.Result) string {
	if res.Err != nil {
		return "error: " + res.Err.Error()
	}
	switch fn.Result {
	case host.ResultHandle:
		return fmt.Sprintf("handle %d", res.Handle)
	case host.ResultBytes:
		if fn.ResultType != nil && host.TypeString(fn.ResultType) == "string" {
			return strconv.Quote(string(res.Bytes))
		}
		return fmt.Sprintf("%x", res.Bytes)
	case host.ResultSequence:
		parts := make([]string, len(res.Items))
		for i, it := range res.Items {
			if !it.Valid {
				parts[i] = "<missing>"
				continue
			}
			parts[i] = strconv.Quote(string(it.Value))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "ok"
	}
}
