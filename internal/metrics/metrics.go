// Package metrics exposes Questboard counters and HTTP timings to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "questboard"

// Metrics implements engine.Recorder and feeds the HTTP middleware.
type Metrics struct {
	tasksCreated       *prometheus.CounterVec
	tasksCompleted     *prometheus.CounterVec
	achievementsMinted prometheus.Counter
	deletes            *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tasksCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_created_total",
			Help:      "Tasks created, by category.",
		}, []string{"category"}),
		tasksCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_completed_total",
			Help:      "Tasks completed, by category.",
		}, []string{"category"}),
		achievementsMinted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievements_minted_total",
			Help:      "Achievements created by defeating a boss.",
		}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_total",
			Help:      "Explicit deletes, by entity.",
		}, []string{"entity"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.tasksCreated,
		m.tasksCompleted,
		m.achievementsMinted,
		m.deletes,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) TaskCreated(category string) {
	m.tasksCreated.WithLabelValues(category).Inc()
}

func (m *Metrics) TaskCompleted(category string, achievementMinted bool) {
	m.tasksCompleted.WithLabelValues(category).Inc()
	if achievementMinted {
		m.achievementsMinted.Inc()
	}
}

func (m *Metrics) TaskDeleted() {
	m.deletes.WithLabelValues("task").Inc()
}

func (m *Metrics) AchievementDeleted() {
	m.deletes.WithLabelValues("achievement").Inc()
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	m.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
