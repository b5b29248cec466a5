// Package b64 is the user-facing façade over codec engines.
//
// Every operation takes an optional *codec.Engine; nil selects codec.Standard.
// The façade never retains the engine past the call.
//
//	s := b64.Encode([]byte("foo"), nil)            // "Zm9v"
//	b, err := b64.Decode("Zm9v", codec.Standard)
//	parts, err := b64.DecodeAsString(s, nil, []byte(","))
//
// Vectorised operations work on []Optional[T] so missing elements survive the
// round trip. DecodeVectorized fails on the first bad element and reports its
// index; DecodeVectorizedLenient turns bad elements into missing ones instead.
//
// File operations read the whole file into memory. DecodeFile strips ASCII
// whitespace (CR, LF, TAB, SPACE) before decoding so wrapped files decode;
// the in-memory Decode does not.
//
// Chunk and Wrap split encoded text into fixed-width lines and join them back:
//
//	b64.Wrap(b64.Chunk("YWJjZGVmZ2hpag==", 4), "\n")
//	// "YWJj\nZGVm\nZ2hp\nag=="
package b64
