// Package codec implements a configurable base64 engine.
//
// An Engine is the immutable composition of an Alphabet (64 symbols plus the
// '=' padding byte) and a Config (encode padding, trailing-bit policy and
// padding mode on decode). Engines precompute a 256-entry decode table and
// are safe for concurrent use.
//
//	eng := codec.MustNewEngine(codec.URLSafeAlphabet, codec.NoPadConfig)
//	s := eng.EncodeToString([]byte{0xfb, 0xff}) // "-_8"
//	b, err := eng.DecodeString(s)
//
// # Presets
//
// Alphabets: standard, url_safe, crypt, bcrypt, imap_mutf7, bin_hex.
// Engines: standard, standard_no_pad, url_safe, url_safe_no_pad, crypt,
// bcrypt, imap_mutf7, bin_hex.
//
// # Decoding rules
//
// The decode primitive never skips whitespace. Padding is only legal at the
// very end; a padding byte followed by data is reported as an invalid byte at
// the first padding position. After padding is stripped, a data length of
// 1 mod 4 is an invalid length. The padding count is then checked against the
// canonical count (4 - len mod 4) mod 4 according to the PaddingMode, and the
// unused low bits of the final symbol are checked according to TrailingBits.
package codec
