package host

import (
	"bytes"

	wasmbase64 "github.com/wippyai/wasm-base64"
	"github.com/wippyai/wasm-base64/b64"
	"github.com/wippyai/wasm-base64/errors"
	"github.com/wippyai/wasm-base64/resource"
)

// ModuleName is the import module guests use for every binding function.
const ModuleName = "b64"

// Result word layout.
const (
	// TagFailure is set in the result word when the call failed.
	TagFailure uint32 = 1

	// MarkerMessage starts a failure block carrying a UTF-8 message (ptr, len).
	MarkerMessage uint32 = 1

	// MarkerUnwind starts a failure block carrying an unwind token and a code.
	MarkerUnwind uint32 = 2

	// Missing is the length word of an absent sequence element.
	Missing uint32 = 0xFFFFFFFF

	// CodePanic is the unwind code for a recovered host panic.
	CodePanic uint32 = 1

	// BlockAlign is the alignment of every result block, which keeps the tag bit free.
	BlockAlign uint32 = 8
)

// frame carries one call's view of the guest.
type frame struct {
	mem   wasmbase64.Memory
	alloc wasmbase64.Allocator
	table *resource.Table
}

func (f *frame) readBytes(ptr, n uint32) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	data, err := f.mem.Read(ptr, n)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(data), nil
}

func (f *frame) readString(ptr, n uint32) (string, error) {
	if n == 0 {
		return "", nil
	}
	data, err := f.mem.Read(ptr, n)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readSequence reads count (ptr, len) pairs starting at ptr.
func (f *frame) readSequence(ptr, count uint32) ([]b64.Optional[string], error) {
	out := make([]b64.Optional[string], count)
	for i := uint32(0); i < count; i++ {
		at := ptr + 8*i
		p, err := f.mem.ReadU32(at)
		if err != nil {
			return nil, err
		}
		n, err := f.mem.ReadU32(at + 4)
		if err != nil {
			return nil, err
		}
		if n == Missing {
			continue
		}
		s, err := f.readString(p, n)
		if err != nil {
			return nil, errors.AtIndex(err, int(i))
		}
		out[i] = b64.Some(s)
	}
	return out, nil
}

func (f *frame) allocate(size, align uint32) (uint32, error) {
	ptr, err := f.alloc.Alloc(size, align)
	if err != nil {
		return 0, err
	}
	if ptr%align != 0 {
		return 0, errors.AllocationFailed(size, align, errors.New(errors.PhaseHost, errors.KindAllocation).
			Detail("misaligned pointer %#x", ptr).Build())
	}
	return ptr, nil
}

// writeData copies data into a fresh allocation. Empty data is (0, 0).
func (f *frame) writeData(data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, nil
	}
	ptr, err := f.allocate(uint32(len(data)), 1)
	if err != nil {
		return 0, err
	}
	if err := f.mem.Write(ptr, data); err != nil {
		return 0, errors.AllocationFailed(uint32(len(data)), 1, err)
	}
	return ptr, nil
}

// block writes words into a BlockAlign-aligned allocation.
func (f *frame) block(words ...uint32) (uint32, error) {
	size := uint32(4 * len(words))
	ptr, err := f.allocate(size, BlockAlign)
	if err != nil {
		return 0, err
	}
	for i, w := range words {
		if err := f.mem.WriteU32(ptr+uint32(4*i), w); err != nil {
			return 0, errors.AllocationFailed(size, BlockAlign, err)
		}
	}
	return ptr, nil
}

func (f *frame) returnHandle(h resource.Handle) (uint32, error) {
	if h == 0 {
		return 0, errors.New(errors.PhaseHost, errors.KindInvalidHandle).Detail("resource table closed").Build()
	}
	return f.block(uint32(h))
}

func (f *frame) returnBytes(data []byte) (uint32, error) {
	ptr, err := f.writeData(data)
	if err != nil {
		return 0, err
	}
	return f.block(ptr, uint32(len(data)))
}

func (f *frame) returnString(s string) (uint32, error) {
	return f.returnBytes([]byte(s))
}

// returnSequence writes the pair array followed by the [ptr][count] block.
func (f *frame) returnSequence(items []b64.Optional[[]byte]) (uint32, error) {
	pairs := make([]uint32, 0, 2*len(items))
	for _, it := range items {
		if !it.Valid {
			pairs = append(pairs, 0, Missing)
			continue
		}
		ptr, err := f.writeData(it.Value)
		if err != nil {
			return 0, err
		}
		pairs = append(pairs, ptr, uint32(len(it.Value)))
	}

	var arr uint32
	if len(pairs) > 0 {
		var err error
		if arr, err = f.block(pairs...); err != nil {
			return 0, err
		}
	}
	return f.block(arr, uint32(len(items)))
}

func (f *frame) returnStrings(items []string) (uint32, error) {
	seq := make([]b64.Optional[[]byte], len(items))
	for i, s := range items {
		seq[i] = b64.Some([]byte(s))
	}
	return f.returnSequence(seq)
}

func (f *frame) fail(msg string) (uint32, error) {
	ptr, err := f.writeData([]byte(msg))
	if err != nil {
		return 0, err
	}
	blk, err := f.block(MarkerMessage, ptr, uint32(len(msg)))
	if err != nil {
		return 0, err
	}
	return blk | TagFailure, nil
}

func (f *frame) unwind(token resource.Handle, code uint32) (uint32, error) {
	blk, err := f.block(MarkerUnwind, uint32(token), code)
	if err != nil {
		return 0, err
	}
	return blk | TagFailure, nil
}
