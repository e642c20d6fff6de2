// Package web serves the question form UI and health probes.
package web

import (
	"errors"
	"log/slog"
	"net/http"
)

// Server is the HTTP server for the intervention UI.
type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger
}

// ServerConfig contains configuration for creating a server.
type ServerConfig struct {
	Logger   *slog.Logger     // Required
	Answerer QuestionAnswerer // Required: the answering pipeline
	Ready    func() bool      // Optional readiness probe; nil means always ready
}

// NewServer creates a server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Answerer == nil {
		return nil, errors.New("answerer is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	mux := http.NewServeMux()

	pages := NewPages(cfg.Answerer, cfg.Logger)
	health := NewHealth(cfg.Ready)

	// Probes carry no middleware.
	mux.HandleFunc("GET /health", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)

	mux.HandleFunc("GET /", pages.Index)
	mux.HandleFunc("POST /process", pages.Process)

	return &Server{mux: mux, logger: cfg.Logger}, nil
}

// ServeHTTP implements http.Handler with the middleware stack:
// Recovery → RequestID → Logging → routes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.setSecurityHeaders(w)

	var handler http.Handler = s.mux
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware(handler)
	handler = RecoveryMiddleware(s.logger)(handler)

	handler.ServeHTTP(w, r)
}

func (s *Server) setSecurityHeaders(w http.ResponseWriter) {
	// Page styling is inline in the template; no external assets.
	w.Header().Set("Content-Security-Policy",
		"default-src 'self'; style-src 'self' 'unsafe-inline'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}
