// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/mas6446/ai-adjutant-system/internal/macro"
	"github.com/mas6446/ai-adjutant-system/internal/metrics"
	"github.com/mas6446/ai-adjutant-system/internal/notifier"
	"github.com/mas6446/ai-adjutant-system/internal/recorder"
	"github.com/mas6446/ai-adjutant-system/internal/sizing"
	"github.com/mas6446/ai-adjutant-system/internal/strategy"
)

// SizingDefaults are the capital settings applied when an analyze request
// does not carry its own.
type SizingDefaults struct {
	Capital float64
	RiskPct float64
	Policy  sizing.LotPolicy
}

// Server wires the macro cache, the tactical engine, and the persistence and
// notification sinks behind a JSON API.
type Server struct {
	engine   *strategy.Engine
	cache    *macro.Cache
	recorder recorder.Recorder
	notifier *notifier.TelegramNotifier
	sizing   SizingDefaults
	validate *validator.Validate
	log      zerolog.Logger
	router   *mux.Router
}

// New builds a Server and registers its routes.
func New(engine *strategy.Engine, cache *macro.Cache, rec recorder.Recorder, tn *notifier.TelegramNotifier, sz SizingDefaults, log zerolog.Logger) *Server {
	s := &Server{
		engine:   engine,
		cache:    cache,
		recorder: rec,
		notifier: tn,
		sizing:   sz,
		validate: validator.New(),
		log:      log,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/macro", s.handleMacroCurrent).Methods(http.MethodGet)
	s.router.HandleFunc("/api/macro/refresh", s.handleMacroRefresh).Methods(http.MethodPost)
	s.router.HandleFunc("/api/analyze", s.handleAnalyze).Methods(http.MethodPost)
	s.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
}

// Router returns the configured handler for use by an http.Server.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
