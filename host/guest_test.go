package host

import (
	"encoding/binary"
	"testing"

	"github.com/wippyai/wasm-base64/errors"
	"github.com/wippyai/wasm-base64/resource"
)

// fakeGuest is a byte slice standing in for guest linear memory with a bump allocator.
type fakeGuest struct {
	mem   []byte
	next  uint32
	limit uint32 // allocation fails past this offset when non-zero
}

func newFakeGuest() *fakeGuest {
	return &fakeGuest{mem: make([]byte, 1<<16), next: 16}
}

func (g *fakeGuest) Read(offset, length uint32) ([]byte, error) {
	if uint64(offset)+uint64(length) > uint64(len(g.mem)) {
		return nil, errors.OutOfBounds(offset, length)
	}
	return g.mem[offset : offset+length], nil
}

func (g *fakeGuest) Write(offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > uint64(len(g.mem)) {
		return errors.OutOfBounds(offset, uint32(len(data)))
	}
	copy(g.mem[offset:], data)
	return nil
}

func (g *fakeGuest) ReadU32(offset uint32) (uint32, error) {
	b, err := g.Read(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (g *fakeGuest) WriteU32(offset, value uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	return g.Write(offset, b[:])
}

func (g *fakeGuest) Alloc(size, align uint32) (uint32, error) {
	ptr := (g.next + align - 1) &^ (align - 1)
	if g.limit != 0 && ptr+size > g.limit {
		return 0, errors.AllocationFailed(size, align, nil)
	}
	g.next = ptr + size
	return ptr, nil
}

// put copies data into guest memory and returns (ptr, len) words.
func (g *fakeGuest) put(t *testing.T, data string) (uint64, uint64) {
	t.Helper()
	if data == "" {
		return 0, 0
	}
	ptr, _ := g.Alloc(uint32(len(data)), 1)
	if err := g.Write(ptr, []byte(data)); err != nil {
		t.Fatalf("put: %v", err)
	}
	return uint64(ptr), uint64(len(data))
}

// putSeq writes a pair array; nil entries are missing.
func (g *fakeGuest) putSeq(t *testing.T, items []*string) (uint64, uint64) {
	t.Helper()
	arr, _ := g.Alloc(uint32(8*len(items)), 4)
	for i, it := range items {
		at := arr + uint32(8*i)
		if it == nil {
			g.WriteU32(at, 0)
			g.WriteU32(at+4, Missing)
			continue
		}
		p, n := g.put(t, *it)
		g.WriteU32(at, uint32(p))
		g.WriteU32(at+4, uint32(n))
	}
	return uint64(arr), uint64(len(items))
}

type harness struct {
	t     *testing.T
	b     *Binding
	g     *fakeGuest
	table *resource.Table
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := NewBinding()
	return &harness{t: t, b: b, g: newFakeGuest(), table: b.Table(t.Name())}
}

func (h *harness) call(name string, kind ResultKind, params ...uint64) Result {
	h.t.Helper()
	word, err := h.b.Call(name, h.g, h.g, h.table, params)
	if err != nil {
		h.t.Fatalf("%s: %v", name, err)
	}
	res, err := UnpackResult(h.g, word, kind)
	if err != nil {
		h.t.Fatalf("%s: unpack: %v", name, err)
	}
	return res
}

func (h *harness) ok(name string, kind ResultKind, params ...uint64) Result {
	h.t.Helper()
	res := h.call(name, kind, params...)
	if res.Err != nil {
		h.t.Fatalf("%s failed: %v", name, res.Err)
	}
	return res
}

func (h *harness) handle(name, arg string) uint64 {
	h.t.Helper()
	p, n := h.g.put(h.t, arg)
	return uint64(h.ok(name, ResultHandle, p, n).Handle)
}

func strp(s string) *string { return &s }
