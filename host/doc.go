// Package host implements the "b64" host module that WebAssembly guests
// import to use the codec.
//
// # Calling convention
//
// Text and bytes are passed as (ptr, len) pairs into guest memory. Alphabets,
// configs and engines live on the host and are passed as u32 handles; engine
// handle 0 selects the standard engine. Sequences are passed as (ptr, count)
// pointing at count (ptr, len) pairs, with len 0xFFFFFFFF marking a missing
// element.
//
// Every function returns a single i32 word. The host allocates result blocks
// through the guest's cabi_realloc export with 8-byte alignment, so the low
// bit of a block pointer is always clear and is used as a tag:
//
//	word & 1 == 0   success, word points at the result block (0 for unit results)
//	word & 1 == 1   failure, word &^ 1 points at [marker][a][b]
//
// Success blocks are [handle], [ptr][len] or [ptr][count]. A failure with
// marker 1 carries a UTF-8 message at (a, b). Marker 2 carries an unwind
// token in a and a code in b: the host function panicked, the panic was
// recovered and parked. The guest runs its own cleanup and then calls
// resume(token), which re-raises the panic on the host and traps the guest,
// or drop(token) to discard it.
//
// UnpackResult decodes a result word on the Go side.
package host
