package runtime

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-base64/errors"
	"github.com/wippyai/wasm-base64/host"
)

// Runtime is a wazero runtime with the b64 host module instantiated.
type Runtime struct {
	rt      wazero.Runtime
	binding *host.Binding
	log     *zap.Logger
	shim    wazero.CompiledModule
	shimMu  sync.Mutex
	seq     atomic.Uint64
}

type config struct {
	log         *zap.Logger
	memoryPages uint32
	wasi        bool
}

// Option configures New.
type Option func(*config)

// WithLogger sets the logger for the runtime and its binding.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// WithWASI instantiates wasi_snapshot_preview1 so guests built by standard
// toolchains can start.
func WithWASI() Option {
	return func(c *config) {
		c.wasi = true
	}
}

// WithMemoryLimitPages caps guest memory at pages of 64 KiB.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *config) {
		c.memoryPages = pages
	}
}

// New creates a runtime and instantiates the b64 host module in it.
func New(ctx context.Context, opts ...Option) (*Runtime, error) {
	cfg := config{log: host.Logger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	rc := wazero.NewRuntimeConfig()
	if cfg.memoryPages > 0 {
		rc = rc.WithMemoryLimitPages(cfg.memoryPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, rc)

	if cfg.wasi {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			rt.Close(ctx)
			return nil, errors.Instantiation(fmt.Errorf("wasi_snapshot_preview1: %w", err))
		}
	}

	binding := host.NewBinding(host.WithLogger(cfg.log))
	if _, err := binding.Instantiate(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, errors.Instantiation(fmt.Errorf("%s host module: %w", host.ModuleName, err))
	}

	return &Runtime{
		rt:      rt,
		binding: binding,
		log:     cfg.log,
	}, nil
}

// Binding returns the host binding shared by every guest of this runtime.
func (r *Runtime) Binding() *host.Binding {
	return r.binding
}

// Close releases the runtime and every guest still open.
func (r *Runtime) Close(ctx context.Context) error {
	return r.rt.Close(ctx)
}

func (r *Runtime) nextName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, r.seq.Add(1))
}
