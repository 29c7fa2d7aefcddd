// Package metrics defines the Prometheus collectors the service exports.
// All methods are safe on a nil receiver so components can run without
// metrics (tests, the admin CLI).
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "skillup"

type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request collectors on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{requests: requests, duration: duration}
}

func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	route = normalizeLabel(route)
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// DomainMetrics counts checklist lifecycle events.
type DomainMetrics struct {
	generated     *prometheus.CounterVec
	statusUpdates *prometheus.CounterVec
	seeded        *prometheus.CounterVec
}

func NewDomainMetrics(reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		return &DomainMetrics{}
	}
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checklists_generated_total",
		Help:      "Checklists created, by career path slug.",
	}, []string{"career_path"})
	statusUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checklist_item_status_updates_total",
		Help:      "Checklist item status changes, by new status.",
	}, []string{"status"})
	seeded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "career_paths_seeded_total",
		Help:      "Career path upserts, by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(generated, statusUpdates, seeded)
	return &DomainMetrics{generated: generated, statusUpdates: statusUpdates, seeded: seeded}
}

func (m *DomainMetrics) ChecklistGenerated(careerPath string) {
	if m == nil || m.generated == nil {
		return
	}
	m.generated.WithLabelValues(normalizeLabel(careerPath)).Inc()
}

func (m *DomainMetrics) ItemStatusUpdated(status string) {
	if m == nil || m.statusUpdates == nil {
		return
	}
	m.statusUpdates.WithLabelValues(normalizeLabel(status)).Inc()
}

func (m *DomainMetrics) CareerPathSeeded(outcome string) {
	if m == nil || m.seeded == nil {
		return
	}
	m.seeded.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
