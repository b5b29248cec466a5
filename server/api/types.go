package api

import (
	"time"
)

// ==== Engine selection ====

// EngineSpec selects the engine a request runs with. Engine names a preset;
// otherwise Alphabet (a preset name) or Symbols (a custom alphabet) combine
// with Config. All empty means the standard engine.
type EngineSpec struct {
	Engine   string      `json:"engine,omitempty"`
	Alphabet string      `json:"alphabet,omitempty"`
	Symbols  string      `json:"symbols,omitempty"`
	Config   *ConfigSpec `json:"config,omitempty"`
}

// ConfigSpec mirrors codec.Config with enumerators spelled by name. Omitted
// fields take their codec.PadConfig values.
type ConfigSpec struct {
	EncodePadding *bool  `json:"encode_padding,omitempty"`
	TrailingBits  string `json:"decode_padding_trailing_bits,omitempty"`
	PaddingMode   string `json:"decode_padding_mode,omitempty"`
}

// ==== Request/Response Types ====

// EncodeRequest carries either raw bytes (base64 in JSON) or text.
type EncodeRequest struct {
	EngineSpec
	Data []byte  `json:"data,omitempty"`
	Text *string `json:"text,omitempty"`
}

type EncodeResponse struct {
	Encoded string `json:"encoded"`
	Engine  string `json:"engine"`
}

type DecodeRequest struct {
	EngineSpec
	Encoded string `json:"encoded"`
}

type DecodeResponse struct {
	Data   []byte `json:"data"`
	Engine string `json:"engine"`
}

// DecodeTextRequest decodes to UTF-8 text. With SplitEncoded the encoded
// input is split on Split first; otherwise the decoded bytes are.
type DecodeTextRequest struct {
	EngineSpec
	Encoded      string `json:"encoded"`
	Split        string `json:"split,omitempty"`
	SplitEncoded bool   `json:"split_encoded,omitempty"`
}

type DecodeTextResponse struct {
	Parts []string `json:"parts"`
	Count int      `json:"count"`
}

// BatchRequest holds a sequence in which null marks a missing element.
type BatchRequest struct {
	EngineSpec
	Items   []*string `json:"items"`
	Lenient bool      `json:"lenient,omitempty"`
}

type EncodeBatchResponse struct {
	Items []*string `json:"items"`
}

type DecodeBatchResponse struct {
	Items []*[]byte `json:"items"`
}

type ChunkRequest struct {
	Text    string  `json:"text"`
	Width   int     `json:"width"`
	Newline *string `json:"newline,omitempty"`
}

type ChunkResponse struct {
	Chunks  []string `json:"chunks"`
	Wrapped string   `json:"wrapped,omitempty"`
}

type WrapRequest struct {
	Chunks  []string `json:"chunks"`
	Newline string   `json:"newline"`
}

type WrapResponse struct {
	Text string `json:"text"`
}

type AlphabetResponse struct {
	Name    string `json:"name"`
	Symbols string `json:"symbols"`
}

type AlphabetListResponse struct {
	Alphabets []AlphabetResponse `json:"alphabets"`
	Count     int                `json:"count"`
}

type EngineResponse struct {
	Name     string     `json:"name"`
	Alphabet string     `json:"alphabet"`
	Config   ConfigSpec `json:"config"`
}

type EngineListResponse struct {
	Engines []EngineResponse `json:"engines"`
	Count   int              `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Index     *int      `json:"index,omitempty"`
	Position  *int      `json:"position,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
