package host

import (
	"fmt"

	wasmbase64 "github.com/wippyai/wasm-base64"
	"github.com/wippyai/wasm-base64/b64"
	"github.com/wippyai/wasm-base64/resource"
)

// ResultKind is the shape of a success block.
type ResultKind uint8

const (
	ResultUnit     ResultKind = iota // no block, word is 0
	ResultHandle                     // [handle]
	ResultBytes                      // [ptr][len]
	ResultSequence                   // [ptr][count] of (ptr, len) pairs
)

func (k ResultKind) String() string {
	switch k {
	case ResultUnit:
		return "unit"
	case ResultHandle:
		return "handle"
	case ResultBytes:
		return "bytes"
	case ResultSequence:
		return "sequence"
	default:
		return fmt.Sprintf("ResultKind(%d)", k)
	}
}

// Result is an unpacked result word.
type Result struct {
	Items  []b64.Optional[[]byte]
	Bytes  []byte
	Err    *CallError
	Handle resource.Handle
}

// CallError is a failure reported through the result channel.
type CallError struct {
	Message string
	Token   resource.Handle // unwind token, 0 for message failures
	Code    uint32
}

func (e *CallError) Error() string {
	if e.Token != 0 {
		return fmt.Sprintf("host unwind pending (token %d, code %d)", e.Token, e.Code)
	}
	return e.Message
}

// Unwinding reports whether the failure carries an unwind token.
func (e *CallError) Unwinding() bool {
	return e.Token != 0
}

// UnpackResult decodes a result word read back from guest memory.
func UnpackResult(mem wasmbase64.Memory, word uint32, kind ResultKind) (Result, error) {
	if word&TagFailure != 0 {
		return unpackFailure(mem, word&^TagFailure)
	}

	switch kind {
	case ResultUnit:
		return Result{}, nil
	case ResultHandle:
		h, err := mem.ReadU32(word)
		if err != nil {
			return Result{}, err
		}
		return Result{Handle: resource.Handle(h)}, nil
	case ResultBytes:
		data, err := readPair(mem, word)
		if err != nil {
			return Result{}, err
		}
		return Result{Bytes: data}, nil
	case ResultSequence:
		arr, err := mem.ReadU32(word)
		if err != nil {
			return Result{}, err
		}
		count, err := mem.ReadU32(word + 4)
		if err != nil {
			return Result{}, err
		}
		items := make([]b64.Optional[[]byte], count)
		for i := uint32(0); i < count; i++ {
			n, err := mem.ReadU32(arr + 8*i + 4)
			if err != nil {
				return Result{}, err
			}
			if n == Missing {
				continue
			}
			data, err := readPair(mem, arr+8*i)
			if err != nil {
				return Result{}, err
			}
			items[i] = b64.Some(data)
		}
		return Result{Items: items}, nil
	default:
		return Result{}, fmt.Errorf("unknown result kind %d", kind)
	}
}

func unpackFailure(mem wasmbase64.Memory, blk uint32) (Result, error) {
	marker, err := mem.ReadU32(blk)
	if err != nil {
		return Result{}, err
	}
	a, err := mem.ReadU32(blk + 4)
	if err != nil {
		return Result{}, err
	}
	b, err := mem.ReadU32(blk + 8)
	if err != nil {
		return Result{}, err
	}

	switch marker {
	case MarkerMessage:
		msg := ""
		if b > 0 {
			data, err := mem.Read(a, b)
			if err != nil {
				return Result{}, err
			}
			msg = string(data)
		}
		return Result{Err: &CallError{Message: msg}}, nil
	case MarkerUnwind:
		return Result{Err: &CallError{Token: resource.Handle(a), Code: b}}, nil
	default:
		return Result{}, fmt.Errorf("unknown failure marker %d", marker)
	}
}

func readPair(mem wasmbase64.Memory, at uint32) ([]byte, error) {
	ptr, err := mem.ReadU32(at)
	if err != nil {
		return nil, err
	}
	n, err := mem.ReadU32(at + 4)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	data, err := mem.Read(ptr, n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, data)
	return out, nil
}
