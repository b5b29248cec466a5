// Package wasmbase64 is a configurable base64 codec that can be driven from
// Go and from WebAssembly guests.
//
// # Layout
//
//	wasmbase64/          Root package with the guest Memory and Allocator interfaces
//	├── codec/           Alphabets, configs and engines; the encode/decode core
//	├── b64/             Façade: scalar, text, vectorised, file, chunk and wrap operations
//	├── errors/          Structured error types shared by every package
//	├── resource/        Handle table for objects handed to guests
//	├── host/            The "b64" host module and its tagged-pointer result channel
//	├── runtime/         wazero runtime with the host module, guest loading and a shim guest
//	├── server/          HTTP API over the façade
//	├── internal/shim/   Generator for the shim guest module
//	└── cmd/b64/         Command line tool
//
// # Quick Start
//
//	s := b64.Encode([]byte("hello"), nil) // "aGVsbG8="
//
//	eng, err := codec.NewEngine(codec.URLSafeAlphabet, codec.NoPadConfig)
//	data, err := b64.Decode("aGVsbG8", eng)
//
// From a guest module:
//
//	rt, err := runtime.New(ctx)
//	defer rt.Close(ctx)
//
//	guest, err := rt.LoadGuest(ctx, wasmBytes)
//	results, err := guest.Call(ctx, "main")
//
// Guests import functions from the "b64" module. Every function returns one
// i32 word; the low bit tags failure. See package host for the layout.
//
// # Thread Safety
//
// Alphabets, configs and engines are immutable and safe to share. A Runtime
// is safe for concurrent use; a single guest instance is not.
package wasmbase64
