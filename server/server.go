// Package server exposes trend analysis over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/darkmode/weathertrend"
	"github.com/darkmode/weathertrend/chart"
	"github.com/goccy/go-json"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

const missingCityMessage = "Missing city name"

// Analyzer produces a trend report for a city
type Analyzer interface {
	Analyze(ctx context.Context, city string) (*weathertrend.Report, error)
}

// Options configures the HTTP facade
type Options struct {
	// AllowedOrigins lists the origins permitted by CORS. Empty allows any origin.
	AllowedOrigins []string
}

// NewDefaultOptions allows requests from any origin
func NewDefaultOptions() *Options {
	return &Options{}
}

// Server routes city queries into the analyzer and serializes the result
type Server struct {
	analyzer Analyzer
	opt      *Options
	router   *mux.Router
}

// New creates a Server backed by the analyzer. If no options are provided a default is used.
func New(analyzer Analyzer, opt *Options) (*Server, error) {
	if analyzer == nil {
		return nil, weathertrend.ErrNoSource
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	s := &Server{
		analyzer: analyzer,
		opt:      opt,
		router:   mux.NewRouter(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Use(logRequests)

	s.router.HandleFunc("/api/analyze", s.handleAnalyze).Methods(http.MethodGet)
	s.router.HandleFunc("/api/chart", s.handleChart).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(handleNotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
}

// Handler returns the routed handler wrapped with CORS and panic recovery
func (s *Server) Handler() http.Handler {
	corsOpts := []handlers.CORSOption{
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	}
	if len(s.opt.AllowedOrigins) > 0 {
		corsOpts = append(corsOpts, handlers.AllowedOrigins(s.opt.AllowedOrigins))
	}

	var h http.Handler = s.router
	h = handlers.CORS(corsOpts...)(h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return h
}

// analyze runs the analysis for the city query parameter and writes the failure response
// itself, returning nil, when the request cannot be served
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) *weathertrend.Report {
	city := r.URL.Query().Get("city")
	if city == "" {
		writeJSON(w, http.StatusBadRequest, weathertrend.ErrorReport{Error: missingCityMessage})
		return nil
	}

	report, err := s.analyzer.Analyze(r.Context(), city)
	if errors.Is(err, weathertrend.ErrMissingCity) {
		writeJSON(w, http.StatusBadRequest, weathertrend.ErrorReport{Error: missingCityMessage})
		return nil
	}
	if err != nil {
		slog.Warn("trend analysis failed", "city", city, "error", err.Error())
		writeJSON(w, http.StatusNotFound, weathertrend.NewErrorReport(err))
		return nil
	}
	return report
}

// GET /api/analyze?city=
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	report := s.analyze(w, r)
	if report == nil {
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GET /api/chart?city=
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	report := s.analyze(w, r)
	if report == nil {
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, report); err != nil {
		slog.Error("unable to render chart", "city", report.City, "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, weathertrend.NewErrorReport(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("unable to write chart", "error", err.Error())
	}
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, weathertrend.ErrorReport{Error: http.StatusText(http.StatusNotFound)})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, weathertrend.ErrorReport{Error: r.Method + " not allowed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("unable to encode response", "error", err.Error())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
