package host

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	wasmbase64 "github.com/wippyai/wasm-base64"
	"github.com/wippyai/wasm-base64/errors"
)

// ReallocExport is the guest export used to allocate result blocks.
const ReallocExport = "cabi_realloc"

// ModuleMemory returns the memory mod exports, or nil when it exports none.
// api.Module.Memory cannot be compared to nil for this: it returns a non-nil
// interface holding a nil instance for modules without memory.
func ModuleMemory(mod api.Module) api.Memory {
	if len(mod.ExportedMemoryDefinitions()) == 0 {
		return nil
	}
	return mod.Memory()
}

// Memory adapts wazero guest memory to wasmbase64.Memory.
type Memory struct {
	mem api.Memory
}

// NewMemory wraps mem.
func NewMemory(mem api.Memory) *Memory {
	return &Memory{mem: mem}
}

func (m *Memory) Read(offset, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(offset, length)
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(offset, uint32(len(data)))
	}
	return nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, errors.OutOfBounds(offset, 4)
	}
	return v, nil
}

func (m *Memory) WriteU32(offset, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return errors.OutOfBounds(offset, 4)
	}
	return nil
}

func (m *Memory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

// Allocator calls the guest's cabi_realloc export.
type Allocator struct {
	ctx   context.Context
	fn    api.Function
	stack [4]uint64
}

// NewAllocator resolves cabi_realloc on mod.
func NewAllocator(ctx context.Context, mod api.Module) (*Allocator, error) {
	fn := mod.ExportedFunction(ReallocExport)
	if fn == nil {
		return nil, errors.NewMissingExportsError(mod.Name(), []string{ReallocExport})
	}
	return &Allocator{ctx: ctx, fn: fn}, nil
}

func (a *Allocator) Alloc(size, align uint32) (uint32, error) {
	a.stack[0] = 0 // old ptr
	a.stack[1] = 0 // old size
	a.stack[2] = uint64(align)
	a.stack[3] = uint64(size)
	if err := a.fn.CallWithStack(a.ctx, a.stack[:]); err != nil {
		return 0, errors.AllocationFailed(size, align, err)
	}
	return uint32(a.stack[0]), nil
}

var (
	_ wasmbase64.Memory      = (*Memory)(nil)
	_ wasmbase64.MemorySizer = (*Memory)(nil)
	_ wasmbase64.Allocator   = (*Allocator)(nil)
)
