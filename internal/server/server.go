// Package server exposes the pixel engine to a presentation layer over HTTP.
// Every operation is a single JSON round trip carrying whole buffers; there
// is no session state on the server side.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/darrenk196/image-analyzer/internal/codec"
	"github.com/darrenk196/image-analyzer/internal/engine"
	"github.com/darrenk196/image-analyzer/internal/palette"
)

// Server routes presentation-layer requests to the engine and codec.
type Server struct {
	cfg    Config
	router *chi.Mux
}

// New builds a server with all routes registered.
func New(cfg Config) *Server {
	cfg.defaults()

	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/v1/healthz", s.handleHealthz)
	r.Post("/v1/load", s.handleLoad)
	r.Post("/v1/analyze", s.handleAnalyze)
	r.Post("/v1/brightness", s.handleBrightness)
	r.Post("/v1/contrast", s.handleContrast)
	r.Post("/v1/grayscale", s.handleGrayscale)
	r.Post("/v1/save", s.handleSave)
	r.Post("/v1/palette", s.handlePalette)

	s.router = r
	return s
}

// Handler returns the root http.Handler, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.router}

	errc := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.cfg.Logger.Info("shutting down")
		return srv.Shutdown(context.Background())
	}
}

// decodeBody unmarshals a JSON request body into dst, enforcing the size cap.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON marshals before touching the response so an encode failure can
// still surface as a 500 instead of an empty 200.
func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	out, err := json.Marshal(v)
	if err != nil {
		s.cfg.Logger.Error("response encode failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(out)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// LoadRequest is the body for POST /v1/load.
type LoadRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		http.Error(w, "path required", http.StatusBadRequest)
		return
	}

	buf, err := codec.Decode(req.Path)
	if err != nil {
		s.cfg.Logger.Error("load failed", "path", req.Path, "error", err)
		http.Error(w, fmt.Sprintf("Failed to load image: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.writeJSON(w, buf)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var buf engine.PixelBuffer
	if !s.decodeBody(w, r, &buf) {
		return
	}
	s.writeJSON(w, engine.Analyze(&buf))
}

// AdjustRequest is the body for the brightness and contrast endpoints.
type AdjustRequest struct {
	Image  engine.PixelBuffer `json:"image"`
	Amount float64            `json:"amount"`
}

func (s *Server) handleBrightness(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeJSON(w, engine.AdjustBrightness(&req.Image, req.Amount))
}

func (s *Server) handleContrast(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	s.writeJSON(w, engine.AdjustContrast(&req.Image, req.Amount))
}

func (s *Server) handleGrayscale(w http.ResponseWriter, r *http.Request) {
	var buf engine.PixelBuffer
	if !s.decodeBody(w, r, &buf) {
		return
	}
	s.writeJSON(w, engine.Grayscale(&buf))
}

// SaveRequest is the body for POST /v1/save.
type SaveRequest struct {
	Image engine.PixelBuffer `json:"image"`
	Path  string             `json:"path"`
}

// SaveResponse acknowledges a completed save.
type SaveResponse struct {
	Saved bool   `json:"saved"`
	Path  string `json:"path"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		http.Error(w, "path required", http.StatusBadRequest)
		return
	}

	err := codec.Encode(&req.Image, req.Path, codec.EncodeOptions{JPEGQuality: s.cfg.JPEGQuality})
	switch {
	case errors.Is(err, codec.ErrBadBuffer):
		http.Error(w, "Failed to create image from data", http.StatusUnprocessableEntity)
		return
	case err != nil:
		s.cfg.Logger.Error("save failed", "path", req.Path, "error", err)
		http.Error(w, fmt.Sprintf("Failed to save image: %v", err), http.StatusUnprocessableEntity)
		return
	}
	s.writeJSON(w, SaveResponse{Saved: true, Path: req.Path})
}

// PaletteRequest is the body for POST /v1/palette.
type PaletteRequest struct {
	Image engine.PixelBuffer `json:"image"`
	Count int                `json:"count"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	var req PaletteRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if req.Count <= 0 {
		req.Count = 5
	}
	colors := palette.Extract(&req.Image, req.Count)
	if colors == nil {
		colors = []engine.ColorSample{}
	}
	s.writeJSON(w, colors)
}
