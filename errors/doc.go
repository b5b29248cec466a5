// Package errors provides structured error types for the wasm-base64 module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Kinds mirror the codec's failure taxonomy: unknown presets,
// invalid alphabets or configs, decode failures (byte, length, last symbol,
// padding), UTF-8 failures, argument validation and file I/O. The host
// binding adds out-of-bounds, allocation and handle errors.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidByte).
//		Position(2, '=').
//		Index(3).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidPadding(0, 2, "requireCanonical")
//	err := errors.IO(path, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind; a target with an empty Phase matches any phase:
//
//	if errors.Is(err, &errors.Error{Kind: errors.KindInvalidPadding}) { ... }
package errors
