// Package http exposes a Waymark portal over a small JSON API: resolved
// per-user views, progress writes, fact updates and introspection of the
// loaded definition. All rendering happens client-side; this surface only
// moves the engine's inputs and outputs.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/waymarkhq/waymark/pkg/journey"
)

// FactSink accepts replacement fact sets for a user. The in-memory fact
// source implements it; deployments backed by an external eligibility
// service typically leave it nil and the endpoint answers 501.
type FactSink interface {
	Set(userID string, facts journey.Facts)
}

// Portal is the slice of the waymark.Portal API the server needs.
type Portal interface {
	View(ctx context.Context, userID string) (*journey.ViewModel, []journey.Diagnostic, error)
	ViewUnlocked(ctx context.Context, userID string) (*journey.ViewModel, []journey.Diagnostic, error)
	Record(ctx context.Context, userID, nodeID string, state journey.State) error
	Reset(ctx context.Context, userID string) error
	Definition() *journey.Definition
}

// Server serves a single journey portal.
type Server struct {
	portal  Portal
	facts   FactSink
	logger  *slog.Logger
	metrics *metrics

	// debug enables the unlock_all query parameter. Never turn it on in
	// production deployments.
	debug bool
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithLogger sets a structured logger for request handling.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithFactSink enables the facts endpoint.
func WithFactSink(sink FactSink) ServerOption {
	return func(s *Server) {
		s.facts = sink
	}
}

// WithDebug enables the unlock_all query parameter on view requests.
func WithDebug(on bool) ServerOption {
	return func(s *Server) {
		s.debug = on
	}
}

// NewHandler creates the HTTP handler for a portal.
func NewHandler(portal Portal, opts ...ServerOption) http.Handler {
	s := &Server{
		portal:  portal,
		logger:  slog.Default(),
		metrics: newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.requestID)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/definition", s.handleDefinition)
		r.Get("/view/{userID}", s.handleView)
		r.Post("/progress/{userID}", s.handleRecord)
		r.Delete("/progress/{userID}", s.handleReset)
		r.Put("/facts/{userID}", s.handleFacts)
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestID tags every request with a fresh id for log correlation.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) requestLogger(r *http.Request) *slog.Logger {
	id, _ := r.Context().Value(requestIDKey).(string)
	return s.logger.With("request_id", id, "path", r.URL.Path)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDefinition(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.portal.Definition())
}

// viewResponse wraps the resolved tree with its diagnostics so admin
// tooling can show authoring defects next to the journey.
type viewResponse struct {
	View        *journey.ViewModel   `json:"view"`
	Diagnostics []journey.Diagnostic `json:"diagnostics,omitempty"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	logger := s.requestLogger(r)

	start := time.Now()
	var (
		vm    *journey.ViewModel
		diags []journey.Diagnostic
		err   error
	)
	if s.debug && r.URL.Query().Get("unlock_all") == "1" {
		vm, diags, err = s.portal.ViewUnlocked(r.Context(), userID)
	} else {
		vm, diags, err = s.portal.View(r.Context(), userID)
	}
	if err != nil {
		logger.Error("view resolution failed", "error", err, "user", userID)
		http.Error(w, "failed to resolve view", http.StatusInternalServerError)
		return
	}

	s.metrics.resolutions.Inc()
	s.metrics.resolutionDuration.Observe(time.Since(start).Seconds())
	for _, d := range diags {
		s.metrics.diagnostics.WithLabelValues(string(d.Code)).Inc()
	}

	writeJSON(w, http.StatusOK, viewResponse{View: vm, Diagnostics: diags})
}

type recordRequest struct {
	NodeID string        `json:"node_id"`
	State  journey.State `json:"state"`
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	logger := s.requestLogger(r)

	var body recordRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := s.portal.Record(r.Context(), userID, body.NodeID, body.State)
	switch {
	case errors.Is(err, journey.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, journey.ErrUnknownNode):
		http.Error(w, err.Error(), http.StatusNotFound)
	case err != nil:
		logger.Error("progress write failed", "error", err, "user", userID)
		http.Error(w, "failed to record progress", http.StatusInternalServerError)
	default:
		s.metrics.progressWrites.Inc()
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := s.portal.Reset(r.Context(), userID); err != nil {
		s.requestLogger(r).Error("progress reset failed", "error", err, "user", userID)
		http.Error(w, "failed to reset progress", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type factsRequest struct {
	Facts []string `json:"facts"`
}

func (s *Server) handleFacts(w http.ResponseWriter, r *http.Request) {
	if s.facts == nil {
		http.Error(w, "fact updates not supported by this deployment", http.StatusNotImplemented)
		return
	}

	var body factsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	facts := make(journey.Facts, len(body.Facts))
	for _, f := range body.Facts {
		facts[f] = true
	}
	s.facts.Set(chi.URLParam(r, "userID"), facts)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
