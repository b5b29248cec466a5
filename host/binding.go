package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	wasmbase64 "github.com/wippyai/wasm-base64"
	"github.com/wippyai/wasm-base64/errors"
	"github.com/wippyai/wasm-base64/resource"
)

// Unwind is a recovered host panic parked behind an unwind token.
type Unwind struct {
	Value any
	Func  string
}

// ResumedPanic is the value a resumed unwind panics with.
type ResumedPanic struct {
	Value any
	Func  string
}

func (p *ResumedPanic) Error() string {
	return fmt.Sprintf("b64.%s panicked: %v", p.Func, p.Value)
}

// Binding implements the b64 host module. One Binding serves every guest of
// a runtime; each guest module gets its own resource table.
type Binding struct {
	log    *zap.Logger
	byName map[string]*Function
	tables map[string]*resource.Table
	funcs  []*Function
	mu     sync.Mutex
}

// Option configures a Binding.
type Option func(*Binding)

// WithLogger sets the logger. The default is the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Binding) {
		b.log = l
	}
}

// NewBinding creates a binding with every b64 function registered.
func NewBinding(opts ...Option) *Binding {
	b := &Binding{
		log:    Logger(),
		byName: make(map[string]*Function),
		tables: make(map[string]*resource.Table),
	}
	for _, opt := range opts {
		opt(b)
	}
	for _, fn := range functions() {
		b.add(fn)
	}
	return b
}

func (b *Binding) add(fn *Function) {
	b.funcs = append(b.funcs, fn)
	b.byName[fn.Name] = fn
}

// Functions returns the exported functions in registration order.
func (b *Binding) Functions() []*Function {
	return b.funcs
}

// Lookup returns the function named name.
func (b *Binding) Lookup(name string) (*Function, bool) {
	fn, ok := b.byName[name]
	return fn, ok
}

// Table returns the resource table of the named guest, creating it on first use.
func (b *Binding) Table(guest string) *resource.Table {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tables[guest]
	if !ok {
		t = resource.NewTable()
		log := b.log.With(zap.String("guest", guest))
		t.Subscribe(resource.ObserverFunc(func(e resource.Event) {
			if e.Type == resource.EventCreated {
				log.Debug("handle created", zap.Uint32("handle", uint32(e.Handle)), zap.Stringer("kind", e.Kind))
			} else {
				log.Debug("handle dropped", zap.Uint32("handle", uint32(e.Handle)), zap.Stringer("kind", e.Kind))
			}
		}))
		b.tables[guest] = t
	}
	return t
}

// Release closes the resource table of the named guest.
func (b *Binding) Release(guest string) {
	b.mu.Lock()
	t, ok := b.tables[guest]
	delete(b.tables, guest)
	b.mu.Unlock()

	if ok {
		t.Close()
	}
}

// Call runs one binding function against guest memory and returns the
// result word. Codec failures come back as failure words; a non-nil error
// means no result could be produced and the guest should trap.
func (b *Binding) Call(name string, mem wasmbase64.Memory, alloc wasmbase64.Allocator, table *resource.Table, params []uint64) (word uint32, err error) {
	fn, ok := b.byName[name]
	if !ok {
		return 0, errors.InvalidArgument(errors.PhaseHost, "function", "unknown function "+name)
	}
	want := len(fn.ABIParams())
	if len(params) != want {
		return 0, errors.InvalidArgument(errors.PhaseHost, "params", fmt.Sprintf("%s takes %d words, got %d", name, want, len(params)))
	}

	p := make([]uint32, len(params))
	for i, v := range params {
		p[i] = uint32(v)
	}
	f := &frame{mem: mem, alloc: alloc, table: table}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, resumed := r.(*ResumedPanic); resumed {
			panic(r)
		}
		token := table.Insert(resource.KindUnwind, &Unwind{Func: name, Value: r})
		b.log.Warn("host function panicked",
			zap.String("func", name),
			zap.Any("panic", r),
			zap.Uint32("token", uint32(token)))
		word, err = f.unwind(token, CodePanic)
	}()

	word, err = fn.impl(f, p)
	if err == nil {
		return word, nil
	}
	if errors.KindOf(err) == errors.KindAllocation {
		b.log.Error("cannot write result", zap.String("func", name), zap.Error(err))
		return 0, err
	}

	b.log.Debug("host function failed", zap.String("func", name), zap.Error(err))
	return f.fail(err.Error())
}

// Instantiate registers the b64 host module in r.
func (b *Binding) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(ModuleName)
	for _, fn := range b.funcs {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(b.hostFunc(fn), fn.ABIParams(), fn.ABIResults()).
			WithName(fn.Name).
			Export(fn.Name)
	}
	return builder.Instantiate(ctx)
}

func (b *Binding) hostFunc(fn *Function) api.GoModuleFunc {
	n := len(fn.ABIParams())
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		mem := ModuleMemory(mod)
		if mem == nil {
			panic(errors.NewMissingExportsError(mod.Name(), []string{"memory"}))
		}
		alloc, err := NewAllocator(ctx, mod)
		if err != nil {
			panic(err)
		}

		word, err := b.Call(fn.Name, NewMemory(mem), alloc, b.Table(mod.Name()), stack[:n])
		if err != nil {
			panic(err)
		}
		stack[0] = uint64(word)
	}
}
