package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-base64/b64"
	"github.com/wippyai/wasm-base64/codec"
	"github.com/wippyai/wasm-base64/errors"
)

// Server handles HTTP requests for codec operations
type Server struct {
	log *zap.Logger
}

// NewServer creates a new HTTP server
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log}
}

// ==== Handlers ====

// HandleHealth handles health check requests
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// HandleListAlphabets lists the preset alphabets
func (s *Server) HandleListAlphabets(w http.ResponseWriter, r *http.Request) {
	names := codec.AlphabetNames()
	resp := AlphabetListResponse{
		Alphabets: make([]AlphabetResponse, 0, len(names)),
		Count:     len(names),
	}
	for _, name := range names {
		a, _ := codec.AlphabetByName(name)
		resp.Alphabets = append(resp.Alphabets, AlphabetResponse{Name: name, Symbols: a.Symbols()})
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleGetAlphabet returns one preset alphabet
func (s *Server) HandleGetAlphabet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, err := codec.AlphabetByName(name)
	if err != nil {
		s.respondCodecError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, AlphabetResponse{Name: name, Symbols: a.Symbols()})
}

// HandleListEngines lists the preset engines
func (s *Server) HandleListEngines(w http.ResponseWriter, r *http.Request) {
	names := codec.EngineNames()
	resp := EngineListResponse{
		Engines: make([]EngineResponse, 0, len(names)),
		Count:   len(names),
	}
	for _, name := range names {
		e, _ := codec.EngineByName(name)
		resp.Engines = append(resp.Engines, EngineResponse{
			Name:     name,
			Alphabet: e.Alphabet().Name(),
			Config:   configSpec(e.Config()),
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleEncode encodes bytes or text
func (s *Server) HandleEncode(w http.ResponseWriter, r *http.Request) {
	var req EncodeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	eng, err := req.resolve()
	if err != nil {
		s.respondCodecError(w, err)
		return
	}

	var encoded string
	if req.Text != nil {
		encoded = b64.EncodeString(*req.Text, eng)
	} else {
		encoded = b64.Encode(req.Data, eng)
	}
	respondJSON(w, http.StatusOK, EncodeResponse{Encoded: encoded, Engine: engineName(eng)})
}

// HandleDecode decodes to raw bytes
func (s *Server) HandleDecode(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	eng, err := req.resolve()
	if err != nil {
		s.respondCodecError(w, err)
		return
	}

	data, err := b64.Decode(req.Encoded, eng)
	if err != nil {
		s.respondCodecError(w, err)
		return
	}
	if data == nil {
		data = []byte{}
	}
	respondJSON(w, http.StatusOK, DecodeResponse{Data: data, Engine: engineName(eng)})
}

// HandleDecodeText decodes to UTF-8 text, optionally split
func (s *Server) HandleDecodeText(w http.ResponseWriter, r *http.Request) {
	var req DecodeTextRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	eng, err := req.resolve()
	if err != nil {
		s.respondCodecError(w, err)
		return
	}

	var parts []string
	switch {
	case req.SplitEncoded:
		parts, err = b64.DecodeSplitEncoded(req.Encoded, eng, req.Split)
	case req.Split != "":
		parts, err = b64.DecodeAsString(req.Encoded, eng, []byte(req.Split))
	default:
		parts, err = b64.DecodeAsString(req.Encoded, eng, nil)
	}
	if err != nil {
		s.respondCodecError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, DecodeTextResponse{Parts: parts, Count: len(parts)})
}

// HandleEncodeBatch encodes a sequence of texts, keeping missing elements
func (s *Server) HandleEncodeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	eng, err := req.resolve()
	if err != nil {
		s.respondCodecError(w, err)
		return
	}

	out := b64.EncodeVectorized(optionals(req.Items), eng)
	items := make([]*string, len(out))
	for i, v := range out {
		if v.Valid {
			items[i] = &v.Value
		}
	}
	respondJSON(w, http.StatusOK, EncodeBatchResponse{Items: items})
}

// HandleDecodeBatch decodes a sequence. Lenient requests turn failing
// elements into nulls instead of failing the call.
func (s *Server) HandleDecodeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	eng, err := req.resolve()
	if err != nil {
		s.respondCodecError(w, err)
		return
	}

	seq := optionals(req.Items)
	var out []b64.Optional[[]byte]
	if req.Lenient {
		out = b64.DecodeVectorizedLenient(seq, eng)
	} else if out, err = b64.DecodeVectorized(seq, eng); err != nil {
		s.respondCodecError(w, err)
		return
	}

	items := make([]*[]byte, len(out))
	for i, v := range out {
		if v.Valid {
			data := v.Value
			if data == nil {
				data = []byte{}
			}
			items[i] = &data
		}
	}
	respondJSON(w, http.StatusOK, DecodeBatchResponse{Items: items})
}

// HandleChunk splits text into fixed-width chunks
func (s *Server) HandleChunk(w http.ResponseWriter, r *http.Request) {
	var req ChunkRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	chunks, err := b64.Chunk(req.Text, req.Width)
	if err != nil {
		s.respondCodecError(w, err)
		return
	}
	resp := ChunkResponse{Chunks: chunks}
	if req.Newline != nil {
		resp.Wrapped = b64.Wrap(chunks, *req.Newline)
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleWrap joins chunks with a separator
func (s *Server) HandleWrap(w http.ResponseWriter, r *http.Request) {
	var req WrapRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	respondJSON(w, http.StatusOK, WrapResponse{Text: b64.Wrap(req.Chunks, req.Newline)})
}

// ==== Helpers ====

func optionals(items []*string) []b64.Optional[string] {
	seq := make([]b64.Optional[string], len(items))
	for i, v := range items {
		if v != nil {
			seq[i] = b64.Some(*v)
		}
	}
	return seq
}

// decodeRequest parses the JSON body, answering 400 on failure.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid request body: "+err.Error())
		return false
	}
	return true
}

// respondCodecError maps a structured error to a status code and body.
func (s *Server) respondCodecError(w http.ResponseWriter, err error) {
	var e *errors.Error
	if !errors.As(err, &e) {
		s.log.Error("unexpected handler error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	status := http.StatusBadRequest
	switch e.Kind {
	case errors.KindUnknownAlphabet, errors.KindUnknownEngine:
		status = http.StatusNotFound
	case errors.KindIO, errors.KindAllocation:
		status = http.StatusInternalServerError
	}

	resp := ErrorResponse{
		Error:     e.Error(),
		Code:      string(e.Kind),
		Timestamp: time.Now(),
	}
	if e.Index >= 0 {
		idx := e.Index
		resp.Index = &idx
	}
	if e.Position >= 0 {
		pos := e.Position
		resp.Position = &pos
	}
	s.log.Debug("request rejected", zap.String("code", resp.Code), zap.Error(err))
	respondJSON(w, status, resp)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	})
}
