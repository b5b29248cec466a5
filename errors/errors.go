package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAlphabet Phase = "alphabet" // alphabet lookup/construction
	PhaseConfig   Phase = "config"   // config construction
	PhaseEngine   Phase = "engine"   // engine lookup/construction
	PhaseEncode   Phase = "encode"   // bytes to base64
	PhaseDecode   Phase = "decode"   // base64 to bytes
	PhaseText     Phase = "text"     // decoded bytes to UTF-8 text
	PhaseFormat   Phase = "format"   // chunk/wrap helpers
	PhaseIO       Phase = "io"       // file access
	PhaseHost     Phase = "host"     // guest boundary marshalling
	PhaseLoad     Phase = "load"     // guest module loading
)

// Kind categorizes the error
type Kind string

const (
	KindUnknownAlphabet   Kind = "unknown_alphabet"
	KindUnknownEngine     Kind = "unknown_engine"
	KindInvalidAlphabet   Kind = "invalid_alphabet"
	KindInvalidConfig     Kind = "invalid_config"
	KindInvalidByte       Kind = "invalid_byte"
	KindInvalidLength     Kind = "invalid_length"
	KindInvalidLastSymbol Kind = "invalid_last_symbol"
	KindInvalidPadding    Kind = "invalid_padding"
	KindInvalidUTF8       Kind = "invalid_utf8"
	KindInvalidArgument   Kind = "invalid_argument"
	KindIO                Kind = "io"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindAllocation        Kind = "allocation"
	KindInvalidHandle     Kind = "invalid_handle"
	KindMissingExport     Kind = "missing_export"
	KindInstantiation     Kind = "instantiation"
)

// Error is the structured error type used throughout the module.
// Only the fields relevant to Kind are populated.
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Name     string // preset name, config field, argument name
	Path     string // file path
	Detail   string
	Mode     string // padding mode for KindInvalidPadding
	Position int    // byte offset in the input, -1 when not applicable
	Index    int    // element index in vectorised calls, -1 when not applicable
	Observed int
	Expected int
	Byte     byte
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Index >= 0 {
		fmt.Fprintf(&b, " at element %d", e.Index)
	}

	switch e.Kind {
	case KindInvalidByte, KindInvalidLastSymbol:
		fmt.Fprintf(&b, ": byte %#02x (%q) at position %d", e.Byte, rune(e.Byte), e.Position)
	case KindInvalidLength:
		fmt.Fprintf(&b, ": %d symbols", e.Observed)
	case KindInvalidPadding:
		fmt.Fprintf(&b, ": observed %d padding byte(s), expected %d (mode %s)", e.Observed, e.Expected, e.Mode)
	case KindInvalidUTF8:
		fmt.Fprintf(&b, ": at byte offset %d", e.Position)
	}

	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// An empty Phase on the target matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return (t.Phase == "" || e.Phase == t.Phase) && e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// As is errors.As, re-exported so callers importing this package under the
// name "errors" keep access to it.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:    phase,
			Kind:     kind,
			Position: -1,
			Index:    -1,
		},
	}
}

// Name sets the preset, field or argument name
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Path sets the file path
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Position sets the byte offset and offending byte
func (b *Builder) Position(pos int, c byte) *Builder {
	b.err.Position = pos
	b.err.Byte = c
	return b
}

// Index sets the element index
func (b *Builder) Index(i int) *Builder {
	b.err.Index = i
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors, one per error kind

// UnknownAlphabet creates a preset lookup miss for alphabets
func UnknownAlphabet(name string) *Error {
	return New(PhaseAlphabet, KindUnknownAlphabet).
		Name(name).
		Value(name).
		Detail("unknown alphabet %q", name).
		Build()
}

// UnknownEngine creates a preset lookup miss for engines
func UnknownEngine(name string) *Error {
	return New(PhaseEngine, KindUnknownEngine).
		Name(name).
		Value(name).
		Detail("unknown engine %q", name).
		Build()
}

// InvalidAlphabet creates an alphabet validation error. pos is -1 when the
// failure is not tied to a single symbol (e.g. wrong length).
func InvalidAlphabet(reason string, pos int, c byte) *Error {
	err := New(PhaseAlphabet, KindInvalidAlphabet).Detail("%s", reason).Build()
	if pos >= 0 {
		err.Position = pos
		err.Byte = c
		err.Detail = fmt.Sprintf("%s: byte %#02x at position %d", reason, c, pos)
	}
	return err
}

// InvalidConfig creates an unknown enumerator error
func InvalidConfig(field, value string) *Error {
	return New(PhaseConfig, KindInvalidConfig).
		Name(field).
		Value(value).
		Detail("invalid value %q for %s", value, field).
		Build()
}

// InvalidByte creates a decode error for a byte outside the alphabet
func InvalidByte(pos int, c byte) *Error {
	return New(PhaseDecode, KindInvalidByte).Position(pos, c).Build()
}

// InvalidLength creates a decode error for a symbol count that is 1 mod 4
func InvalidLength(length int) *Error {
	err := New(PhaseDecode, KindInvalidLength).Value(length).Build()
	err.Observed = length
	return err
}

// InvalidLastSymbol creates a decode error for non-zero trailing bits
func InvalidLastSymbol(pos int, c byte) *Error {
	return New(PhaseDecode, KindInvalidLastSymbol).Position(pos, c).Build()
}

// InvalidPadding creates a padding count violation
func InvalidPadding(observed, expected int, mode string) *Error {
	err := New(PhaseDecode, KindInvalidPadding).Build()
	err.Observed = observed
	err.Expected = expected
	err.Mode = mode
	return err
}

// InvalidUTF8 creates an invalid UTF-8 error at the given byte offset
func InvalidUTF8(offset int, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	err := New(PhaseText, KindInvalidUTF8).
		Detail("invalid UTF-8 sequence: %x", preview).
		Build()
	err.Position = offset
	return err
}

// InvalidArgument creates a generic caller-side validation error
func InvalidArgument(phase Phase, name, reason string) *Error {
	return New(phase, KindInvalidArgument).
		Name(name).
		Detail("%s: %s", name, reason).
		Build()
}

// IO creates a file access error
func IO(path string, cause error) *Error {
	return New(PhaseIO, KindIO).Path(path).Cause(cause).Build()
}

// AtIndex returns a copy of err tagged with the element index of a vectorised call.
// Errors not of type *Error are wrapped.
func AtIndex(err error, index int) *Error {
	var e *Error
	if errors.As(err, &e) {
		cp := *e
		cp.Index = index
		return &cp
	}
	return New(PhaseDecode, KindInvalidArgument).Index(index).Cause(err).Build()
}

// OutOfBounds creates a guest memory access error
func OutOfBounds(offset, length uint32) *Error {
	return New(PhaseHost, KindOutOfBounds).
		Detail("guest memory access out of bounds: offset=%d, length=%d", offset, length).
		Value(offset).
		Build()
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(size, align uint32, cause error) *Error {
	return New(PhaseHost, KindAllocation).
		Detail("failed to allocate %d bytes (align %d)", size, align).
		Cause(cause).
		Build()
}

// InvalidHandle creates an error for a handle that is unknown or of the wrong type
func InvalidHandle(handle uint32, want string) *Error {
	return New(PhaseHost, KindInvalidHandle).
		Value(handle).
		Detail("handle %d is not a live %s", handle, want).
		Build()
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return New(PhaseLoad, KindInstantiation).
		Detail("instantiate module").
		Cause(cause).
		Build()
}

// MissingExportsError is returned when a guest module lacks exports the host
// binding needs (linear memory and an allocator).
type MissingExportsError struct {
	Module  string
	Exports []string
}

// NewMissingExportsError creates an error listing the absent exports
func NewMissingExportsError(module string, exports []string) *MissingExportsError {
	return &MissingExportsError{Module: module, Exports: exports}
}

func (e *MissingExportsError) Error() string {
	if len(e.Exports) == 0 {
		return "[load] missing_export: no exports specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[load] missing_export: guest %q lacks %d export(s):", e.Module, len(e.Exports))
	for _, name := range e.Exports {
		b.WriteString("\n  - ")
		b.WriteString(name)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *MissingExportsError) Is(target error) bool {
	_, ok := target.(*MissingExportsError)
	return ok
}
