package runtime

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-base64/errors"
	"github.com/wippyai/wasm-base64/host"
	"github.com/wippyai/wasm-base64/resource"
)

// Guest is an instantiated guest module. It is not safe for concurrent use.
type Guest struct {
	r    *Runtime
	mod  api.Module
	name string
}

// LoadGuest compiles and instantiates wasm. Modules importing from the b64
// host module must export memory and cabi_realloc.
func (r *Runtime) LoadGuest(ctx context.Context, wasm []byte) (*Guest, error) {
	compiled, err := r.rt.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	name := r.nextName("guest")
	if err := checkExports(name, compiled); err != nil {
		compiled.Close(ctx)
		return nil, err
	}

	mod, err := r.rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions())
	if err != nil {
		compiled.Close(ctx)
		return nil, errors.Instantiation(err)
	}

	r.log.Debug("guest loaded", zap.String("guest", name), zap.Int("exports", len(mod.ExportedFunctionDefinitions())))
	return &Guest{r: r, mod: mod, name: name}, nil
}

func checkExports(name string, compiled wazero.CompiledModule) error {
	usesBinding := false
	for _, def := range compiled.ImportedFunctions() {
		if mod, _, ok := def.Import(); ok && mod == host.ModuleName {
			usesBinding = true
			break
		}
	}
	if !usesBinding {
		return nil
	}

	var missing []string
	if _, ok := compiled.ExportedMemories()["memory"]; !ok {
		missing = append(missing, "memory")
	}
	if _, ok := compiled.ExportedFunctions()[host.ReallocExport]; !ok {
		missing = append(missing, host.ReallocExport)
	}
	if len(missing) > 0 {
		return errors.NewMissingExportsError(name, missing)
	}
	return nil
}

// Name returns the module name the guest was instantiated under.
func (g *Guest) Name() string {
	return g.name
}

// Exports returns the names of the exported functions, sorted.
func (g *Guest) Exports() []string {
	defs := g.mod.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes an exported function with raw core wasm parameters.
func (g *Guest) Call(ctx context.Context, fn string, params ...uint64) ([]uint64, error) {
	f := g.mod.ExportedFunction(fn)
	if f == nil {
		return nil, errors.NewMissingExportsError(g.name, []string{fn})
	}
	return f.Call(ctx, params...)
}

// Memory returns the guest memory, or nil when the guest has none.
func (g *Guest) Memory() *host.Memory {
	mem := host.ModuleMemory(g.mod)
	if mem == nil {
		return nil
	}
	return host.NewMemory(mem)
}

// Table returns the resource table holding this guest's handles.
func (g *Guest) Table() *resource.Table {
	return g.r.binding.Table(g.name)
}

// Close releases the guest's handles and its instance.
func (g *Guest) Close(ctx context.Context) error {
	g.r.binding.Release(g.name)
	return g.mod.Close(ctx)
}
