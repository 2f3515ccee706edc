// Package httpapi exposes the content generator and gamification engine
// over JSON HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/njia-ai/njia-bot/internal/ai"
	"github.com/njia-ai/njia-bot/internal/analytics"
	"github.com/njia-ai/njia-bot/internal/content"
	"github.com/njia-ai/njia-bot/internal/notify"
	"github.com/njia-ai/njia-bot/internal/progress"
)

// Server holds the handler dependencies.
type Server struct {
	gen    *content.Generator
	engine *progress.Engine
	store  progress.SessionStore
	hub    *notify.Hub
	events analytics.EventLogger
	usage  ai.UsageTracker
	checks map[string]ReadinessCheck
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(r *http.Request) error

// Option configures the server.
type Option func(*Server)

// WithEvents sets the analytics event logger.
func WithEvents(logger analytics.EventLogger) Option {
	return func(s *Server) { s.events = logger }
}

// WithUsage sets the token usage tracker reported in exports.
func WithUsage(tracker ai.UsageTracker) Option {
	return func(s *Server) { s.usage = tracker }
}

// WithHub sets the notification hub behind the events endpoint.
func WithHub(hub *notify.Hub) Option {
	return func(s *Server) { s.hub = hub }
}

// WithReadinessCheck registers a named dependency check for /readyz.
func WithReadinessCheck(name string, check ReadinessCheck) Option {
	return func(s *Server) { s.checks[name] = check }
}

// New creates the API server.
func New(gen *content.Generator, engine *progress.Engine, store progress.SessionStore, opts ...Option) *Server {
	s := &Server{
		gen:    gen,
		engine: engine,
		store:  store,
		hub:    notify.NewHub(),
		events: analytics.NopEventLogger{},
		checks: map[string]ReadinessCheck{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hub returns the notification hub so callers can publish externally.
func (s *Server) Hub() *notify.Hub {
	return s.hub
}

// Routes builds the HTTP router.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("POST /v1/activities", s.handleActivity)
	mux.HandleFunc("POST /v1/quests", s.handleQuest)
	mux.HandleFunc("POST /v1/pathways", s.handlePathways)
	mux.HandleFunc("POST /v1/careers", s.handleCareers)
	mux.HandleFunc("POST /v1/mentors", s.handleMentors)

	mux.HandleFunc("POST /v1/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /v1/sessions/{id}/progress", s.handleProgress)
	mux.HandleFunc("POST /v1/sessions/{id}/answers", s.handleAnswer)
	mux.HandleFunc("POST /v1/sessions/{id}/end", s.handleEndSession)
	mux.HandleFunc("GET /v1/sessions/{id}/events", s.handleEvents)

	mux.HandleFunc("GET /v1/export/progress.xlsx", s.handleExport)

	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	for name, check := range s.checks {
		if err := check(r); err != nil {
			slog.Warn("readiness check failed", "check", name, "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"check":  name,
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// errorBody is the uniform JSON error shape.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writing response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	writeJSON(w, status, errorBody{Error: msg, Kind: kind})
}

// writeContentError maps generator failures to HTTP statuses.
func writeContentError(w http.ResponseWriter, err error) {
	if kind, ok := content.KindOf(err); ok {
		switch kind {
		case content.KindInvalidInput:
			writeError(w, http.StatusBadRequest, err.Error(), kind.String())
		default:
			writeError(w, http.StatusBadGateway, err.Error(), kind.String())
		}
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error(), "")
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

