// Package http exposes the model service as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/sample"
	"github.com/aretw0/ostia/pkg/service"
)

// Server holds the HTTP handlers.
type Server struct {
	Service *service.Service
}

// TranslateRequest is the body of POST /models/{id}/translate.
type TranslateRequest struct {
	Input string `json:"input"`
}

// TranslateResponse carries a string transduction.
type TranslateResponse struct {
	Output  string `json:"output"`
	Defined bool   `json:"defined"`
}

// ApplyRequest is the body of POST /models/{id}/apply.
type ApplyRequest struct {
	Input domain.Sequence `json:"input"`
}

// ApplyResponse carries a symbol transduction.
type ApplyResponse struct {
	Output  domain.Sequence `json:"output"`
	Defined bool            `json:"defined"`
}

type handlerConfig struct {
	gatherer   prometheus.Gatherer
	validation bool
}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

// WithMetrics mounts the Prometheus exposition endpoint at /metrics.
func WithMetrics(g prometheus.Gatherer) HandlerOption {
	return func(c *handlerConfig) {
		c.gatherer = g
	}
}

// WithRequestValidation checks requests against the OpenAPI document.
func WithRequestValidation() HandlerOption {
	return func(c *handlerConfig) {
		c.validation = true
	}
}

// NewHandler creates the HTTP handler for svc.
func NewHandler(svc *service.Service, opts ...HandlerOption) (http.Handler, error) {
	var cfg handlerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{Service: svc}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if cfg.validation {
		validator, err := NewRequestValidator()
		if err != nil {
			return nil, err
		}
		r.Use(validator)
	}

	r.Get("/openapi.yaml", serveSpec)
	r.Get("/swagger", serveSwagger)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Route("/models", func(r chi.Router) {
		r.Get("/", s.ListModels)
		r.Post("/", s.LearnModel)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetModel)
			r.Delete("/", s.DeleteModel)
			r.Get("/export", s.ExportModel)
			r.Get("/graph", s.GetGraph)
			r.Post("/translate", s.Translate)
			r.Post("/apply", s.Apply)
		})
	})
	if cfg.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "ostia",
		"version": strings.TrimSpace(ostia.Version),
	})
}

// ListModels handles GET /models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Service.List(r.Context())
	if err != nil {
		writeError(w, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"models": ids})
}

// LearnModel handles POST /models with a sample set body.
func (s *Server) LearnModel(w http.ResponseWriter, r *http.Request) {
	var set sample.Set
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("LearnModel: Invalid request body", "error", err)
		return
	}
	summary, err := s.Service.Learn(r.Context(), &set)
	if err != nil {
		writeError(w, "LearnModel", err)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

// GetModel handles GET /models/{id}.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Service.Describe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "GetModel", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ExportModel handles GET /models/{id}/export.
func (s *Server) ExportModel(w http.ResponseWriter, r *http.Request) {
	t, err := s.Service.Transducer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "ExportModel", err)
		return
	}
	writeJSON(w, http.StatusOK, t.Model())
}

// DeleteModel handles DELETE /models/{id}.
func (s *Server) DeleteModel(w http.ResponseWriter, r *http.Request) {
	if err := s.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, "DeleteModel", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGraph handles GET /models/{id}/graph?trace=...
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	mermaid, err := s.Service.Graph(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("trace"))
	if err != nil {
		writeError(w, "GetGraph", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(mermaid))
}

// Translate handles POST /models/{id}/translate.
func (s *Server) Translate(w http.ResponseWriter, r *http.Request) {
	var body TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Translate: Invalid request body", "error", err)
		return
	}
	out, ok, err := s.Service.Translate(r.Context(), chi.URLParam(r, "id"), body.Input)
	if err != nil {
		writeError(w, "Translate", err)
		return
	}
	writeJSON(w, http.StatusOK, TranslateResponse{Output: out, Defined: ok})
}

// Apply handles POST /models/{id}/apply.
func (s *Server) Apply(w http.ResponseWriter, r *http.Request) {
	var body ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Apply: Invalid request body", "error", err)
		return
	}
	out, ok, err := s.Service.Apply(r.Context(), chi.URLParam(r, "id"), body.Input)
	if err != nil {
		writeError(w, "Apply", err)
		return
	}
	if out == nil {
		out = domain.Sequence{}
	}
	writeJSON(w, http.StatusOK, ApplyResponse{Output: out, Defined: ok})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSampleConflict),
		errors.Is(err, domain.ErrAlphabetRange),
		errors.Is(err, domain.ErrInvalidAlphabetSize),
		errors.Is(err, domain.ErrUnknownToken),
		errors.Is(err, sample.ErrEmptySet),
		errors.Is(err, service.ErrInputTooLarge),
		errors.Is(err, service.ErrInvalidUTF8),
		errors.Is(err, ostia.ErrNoAlphabet):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err)
	} else {
		slog.Debug(op+" rejected", "error", err, "status", status)
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
