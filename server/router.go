package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-base64/server/api"
)

// NewRouter returns the HTTP handler with middleware and every route mounted.
func NewRouter(cfg *ServeConfig, log *zap.Logger) *chi.Mux {
	srv := api.NewServer(log)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(loggerMiddleware(log))
	r.Use(middleware.Recoverer)
	if cfg.WriteTimeout > 0 {
		r.Use(middleware.Timeout(cfg.WriteTimeout))
	}
	if cfg.MaxRequestSize > 0 {
		r.Use(middleware.RequestSize(cfg.MaxRequestSize))
	}

	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Use(middleware.Compress(5))

	r.Get("/health", srv.HandleHealth)

	r.Get("/alphabets", srv.HandleListAlphabets)
	r.Get("/alphabets/{name}", srv.HandleGetAlphabet)
	r.Get("/engines", srv.HandleListEngines)

	r.Post("/encode", srv.HandleEncode)
	r.Post("/decode", srv.HandleDecode)
	r.Post("/decode-text", srv.HandleDecodeText)
	r.Post("/encode-batch", srv.HandleEncodeBatch)
	r.Post("/decode-batch", srv.HandleDecodeBatch)
	r.Post("/chunk", srv.HandleChunk)
	r.Post("/wrap", srv.HandleWrap)

	if cfg.EnablePprof {
		r.Mount("/debug", middleware.Profiler())
	}

	return r
}
