// Package server exposes the day schedule and feasibility check over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/dayline/internal/app"
	"github.com/alexanderramin/dayline/internal/domain"
	"github.com/alexanderramin/dayline/internal/service"
	"github.com/alexanderramin/dayline/internal/timeline"
)

const maxBodyBytes = 64 << 10

type Server struct {
	schedule service.ScheduleService
	metrics  *Metrics
	logger   zerolog.Logger
	router   chi.Router

	httpServer *http.Server
}

// New builds the router. metrics may be nil, in which case /metrics is not
// mounted.
func New(addr string, schedule service.ScheduleService, metrics *Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		schedule: schedule,
		metrics:  metrics,
		logger:   logger.With().Str("component", "http").Logger(),
		router:   chi.NewRouter(),
	}
	s.configureRoutes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) configureRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Route("/api/days/{day}", func(r chi.Router) {
		r.Get("/schedule", s.handleSchedule)
		r.Post("/can-place", s.handleCanPlace)
	})
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Addr() string { return s.httpServer.Addr }

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http_listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		ev := s.logger.Debug()
		if ww.Status() >= http.StatusInternalServerError {
			ev = s.logger.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http_request")
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")
	if err := checkDay(day); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	now, err := nowOnDay(day, r.URL.Query().Get("now"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.schedule.DaySchedule(r.Context(), app.DayScheduleRequest{Day: day, Now: now})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toScheduleJSON(resp))
}

func (s *Server) handleCanPlace(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")
	if err := checkDay(day); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	now, err := nowOnDay(day, r.URL.Query().Get("now"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var body candidateJSON
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding task: %w", err))
		return
	}
	if err := checkCandidate(body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := s.schedule.CanPlace(r.Context(), app.CanPlaceRequest{
		Day:       day,
		Candidate: body.toDomain(day),
		Now:       now,
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toCanPlaceJSON(resp))
}

// checkCandidate rejects requests the scheduler would refuse outright.
// Malformed clock strings are left to the scheduler, which reports them as
// issues.
func checkCandidate(c candidateJSON) error {
	if strings.TrimSpace(c.Description) == "" {
		return errors.New("description is required")
	}
	if c.EstimatedMin <= 0 {
		return fmt.Errorf("estimated_min must be positive, got %d", c.EstimatedMin)
	}
	if c.Priority != nil && *c.Priority < 0 {
		return errors.New("priority must not be negative")
	}
	if _, ok := domain.ParseQuality(c.Quality); !ok {
		return fmt.Errorf("quality %q must be one of A, B, C, D", c.Quality)
	}
	return nil
}

func checkDay(day string) error {
	if _, err := time.Parse(domain.DayLayout, day); err != nil {
		return fmt.Errorf("day %q must be YYYY-MM-DD", day)
	}
	return nil
}

// nowOnDay turns ?now=HH:MM into a timestamp on day, which makes the
// service apply it as the cutoff. An empty value schedules the whole day.
func nowOnDay(day, clock string) (*time.Time, error) {
	if clock == "" {
		return nil, nil
	}
	m, err := timeline.ParseClock(clock)
	if err != nil {
		return nil, fmt.Errorf("now: %w", err)
	}
	if m >= timeline.MinutesPerDay {
		return nil, fmt.Errorf("now: %w: must be before 24:00", timeline.ErrInvalidClock)
	}
	d, err := time.Parse(domain.DayLayout, day)
	if err != nil {
		return nil, err
	}
	ts := d.Add(time.Duration(m) * time.Minute)
	return &ts, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
