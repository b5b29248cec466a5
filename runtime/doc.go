// Package runtime runs WebAssembly guests against the b64 host module.
//
//	ctx := context.Background()
//	rt, err := runtime.New(ctx, runtime.WithWASI())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close(ctx)
//
//	guest, err := rt.LoadGuest(ctx, wasmBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer guest.Close(ctx)
//
//	results, err := guest.Call(ctx, "run")
//
// Guests that import from "b64" must export their memory as "memory" and an
// allocator as "cabi_realloc"; LoadGuest rejects them otherwise.
//
// # Shim
//
// Shim instantiates a generated guest that forwards every b64 function, so
// the binding can be exercised from Go without a compiled guest:
//
//	s, err := rt.Shim(ctx)
//	res, err := s.Invoke(ctx, "encode", []byte("foo"), uint32(0))
//	fmt.Println(string(res.Bytes)) // "Zm9v"
//
// The command line tool uses the shim for its function listing and the
// interactive mode.
package runtime
