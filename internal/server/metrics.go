package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/dayline/internal/scheduler"
	"github.com/alexanderramin/dayline/internal/service"
)

// Metrics owns a private registry so tests and multiple servers never
// collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	ScheduleRuns        *prometheus.CounterVec
	TasksPlaced         prometheus.Counter
	TasksUnscheduled    *prometheus.CounterVec
	ScheduleDuration    *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ScheduleRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayline_schedule_runs_total",
			Help: "Scheduler use case executions by use case and outcome.",
		}, []string{"use_case", "outcome"}),
		TasksPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dayline_tasks_placed_total",
			Help: "Tasks placed by day schedule runs.",
		}),
		TasksUnscheduled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayline_tasks_unscheduled_total",
			Help: "Tasks left unscheduled by day schedule runs, by issue kind.",
		}, []string{"kind"}),
		ScheduleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dayline_schedule_duration_seconds",
			Help:    "Duration of scheduler use cases.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"use_case"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayline_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dayline_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.registry.MustRegister(
		m.ScheduleRuns,
		m.TasksPlaced,
		m.TasksUnscheduled,
		m.ScheduleDuration,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveUseCase turns service events into scheduler metrics. It is meant
// to be passed to the service constructors next to the log observer.
func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	switch event.Name {
	case "day-schedule", "can-place", "auto-fill":
	default:
		return
	}
	outcome := "ok"
	if !event.Success {
		outcome = "error"
	}
	m.ScheduleRuns.WithLabelValues(event.Name, outcome).Inc()
	m.ScheduleDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	if event.Name != "day-schedule" || !event.Success {
		return
	}
	if placed, ok := event.Fields["placed"].(int); ok {
		m.TasksPlaced.Add(float64(placed))
	}
	kinds, _ := event.Fields["issue_kinds"].(map[string]int)
	for kind, n := range kinds {
		// A relocated task is still placed.
		if kind == string(scheduler.IssueWindowRelocated) {
			continue
		}
		m.TasksUnscheduled.WithLabelValues(kind).Add(float64(n))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if !rw.written {
		rw.status = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware counts requests by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routePattern(r)
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
