// Package shim generates a small guest module that exposes host functions
// back to the host.
//
// The module defines its own memory, a bump allocator exported as
// cabi_realloc, a reset export that rewinds the allocator, and for every
// host function an export of the same name that forwards its parameters to
// the import. The host can then drive its own functions across a real guest
// boundary without any compiled guest code.
package shim

import (
	"github.com/tetratelabs/wazero/api"
)

const (
	// HeapBase is the first address handed out by cabi_realloc.
	HeapBase = 1024

	// InitialPages is the initial memory size in 64 KiB pages. Memory grows on demand.
	InitialPages = 2

	ExportMemory  = "memory"
	ExportRealloc = "cabi_realloc"
	ExportReset   = "reset"
)

// Func describes one imported host function to forward.
type Func struct {
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

// Builder accumulates forwarded functions and emits the module binary.
type Builder struct {
	module string
	funcs  []Func
}

// NewBuilder creates a builder for functions imported from module.
func NewBuilder(module string) *Builder {
	return &Builder{module: module}
}

// Add forwards one host function.
func (b *Builder) Add(f Func) *Builder {
	b.funcs = append(b.funcs, f)
	return b
}

// Build returns the module binary.
func (b *Builder) Build() []byte {
	n := uint32(len(b.funcs))
	reallocIdx := 2 * n
	resetIdx := reallocIdx + 1

	wasm := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	wasm = appendSection(wasm, 0x01, b.typeSection())
	wasm = appendSection(wasm, 0x02, b.importSection())
	wasm = appendSection(wasm, 0x03, b.funcSection())
	wasm = appendSection(wasm, 0x05, []byte{0x01, 0x00, InitialPages})
	wasm = appendSection(wasm, 0x06, globalSection())
	wasm = appendSection(wasm, 0x07, b.exportSection(reallocIdx, resetIdx))
	wasm = appendSection(wasm, 0x0a, b.codeSection())
	return wasm
}

// typeSection holds one type per forwarded function, then cabi_realloc and reset.
func (b *Builder) typeSection() []byte {
	sec := appendULEB128(nil, uint32(len(b.funcs))+2)
	for _, f := range b.funcs {
		sec = appendFuncType(sec, f.Params, f.Results)
	}
	i32 := api.ValueTypeI32
	sec = appendFuncType(sec, []api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32})
	sec = appendFuncType(sec, nil, nil)
	return sec
}

func appendFuncType(dst []byte, params, results []api.ValueType) []byte {
	dst = append(dst, 0x60)
	dst = appendULEB128(dst, uint32(len(params)))
	for _, t := range params {
		dst = append(dst, valType(t))
	}
	dst = appendULEB128(dst, uint32(len(results)))
	for _, t := range results {
		dst = append(dst, valType(t))
	}
	return dst
}

func (b *Builder) importSection() []byte {
	sec := appendULEB128(nil, uint32(len(b.funcs)))
	for i, f := range b.funcs {
		sec = appendName(sec, b.module)
		sec = appendName(sec, f.Name)
		sec = append(sec, 0x00)
		sec = appendULEB128(sec, uint32(i))
	}
	return sec
}

func (b *Builder) funcSection() []byte {
	n := uint32(len(b.funcs))
	sec := appendULEB128(nil, n+2)
	for i := uint32(0); i < n; i++ {
		sec = appendULEB128(sec, i)
	}
	sec = appendULEB128(sec, n)
	sec = appendULEB128(sec, n+1)
	return sec
}

// globalSection declares the mutable heap pointer.
func globalSection() []byte {
	sec := []byte{0x01, 0x7f, 0x01, 0x41}
	sec = appendSLEB128(sec, HeapBase)
	return append(sec, 0x0b)
}

func (b *Builder) exportSection(reallocIdx, resetIdx uint32) []byte {
	n := uint32(len(b.funcs))
	sec := appendULEB128(nil, n+3)

	sec = appendName(sec, ExportMemory)
	sec = append(sec, 0x02, 0x00)
	sec = appendName(sec, ExportRealloc)
	sec = append(sec, 0x00)
	sec = appendULEB128(sec, reallocIdx)
	sec = appendName(sec, ExportReset)
	sec = append(sec, 0x00)
	sec = appendULEB128(sec, resetIdx)

	for i, f := range b.funcs {
		sec = appendName(sec, f.Name)
		sec = append(sec, 0x00)
		sec = appendULEB128(sec, n+uint32(i))
	}
	return sec
}

func (b *Builder) codeSection() []byte {
	sec := appendULEB128(nil, uint32(len(b.funcs))+2)
	for i, f := range b.funcs {
		sec = appendBody(sec, forwardBody(uint32(i), len(f.Params)))
	}
	sec = appendBody(sec, reallocBody)
	sec = appendBody(sec, resetBody())
	return sec
}

func appendBody(dst, body []byte) []byte {
	dst = appendULEB128(dst, uint32(len(body)))
	return append(dst, body...)
}

// forwardBody pushes every parameter and calls the import.
func forwardBody(importIdx uint32, params int) []byte {
	body := []byte{0x00}
	for i := 0; i < params; i++ {
		body = append(body, 0x20)
		body = appendULEB128(body, uint32(i))
	}
	body = append(body, 0x10)
	body = appendULEB128(body, importIdx)
	return append(body, 0x0b)
}

// reallocBody is cabi_realloc(old_ptr, old_size, align, size) as a bump
// allocator: it never frees and ignores old_ptr. Align must be a power of two.
var reallocBody = []byte{
	0x01, 0x01, 0x7f, // one i32 local: ptr
	0x23, 0x00, 0x20, 0x02, 0x6a, // heap + align
	0x41, 0x01, 0x6b, // - 1
	0x41, 0x00, 0x20, 0x02, 0x6b, 0x71, // & -align
	0x21, 0x04, // ptr =
	0x20, 0x04, 0x20, 0x03, 0x6a, 0x24, 0x00, // heap = ptr + size
	0x23, 0x00, 0x3f, 0x00, 0x41, 0x10, 0x74, 0x4b, // heap > memory.size << 16
	0x04, 0x40,
	0x23, 0x00, 0x3f, 0x00, 0x41, 0x10, 0x74, 0x6b, // heap - bytes
	0x41, 0x10, 0x76, 0x41, 0x01, 0x6a, // >> 16 + 1
	0x40, 0x00, 0x1a, // memory.grow, drop
	0x0b,
	0x20, 0x04,
	0x0b,
}

func resetBody() []byte {
	body := []byte{0x00, 0x41}
	body = appendSLEB128(body, HeapBase)
	return append(body, 0x24, 0x00, 0x0b)
}
