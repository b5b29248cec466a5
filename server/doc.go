// Package server exposes the codec over HTTP.
//
// Routes (JSON bodies, byte fields base64-encoded with the standard alphabet):
//
//	GET  /health
//	GET  /alphabets            preset alphabets
//	GET  /alphabets/{name}
//	GET  /engines              preset engines and their configs
//	POST /encode               {engine|alphabet|symbols|config, data|text}
//	POST /decode               {..., encoded}
//	POST /decode-text          {..., encoded, split, split_encoded}
//	POST /encode-batch         {..., items: [string|null]}
//	POST /decode-batch         {..., items, lenient}
//	POST /chunk                {text, width, newline}
//	POST /wrap                 {chunks, newline}
//
// Codec failures answer 400 with {error, code, index, position}; unknown
// presets answer 404.
package server
