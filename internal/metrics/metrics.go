// Package metrics owns the Prometheus registry exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Booking outcomes recorded by the reservation service.
const (
	OutcomeCreated        = "created"
	OutcomeDuplicate      = "duplicate"
	OutcomePast           = "past"
	OutcomeTimeNotFound   = "time_not_found"
	OutcomeThemeNotFound  = "theme_not_found"
	OutcomeError          = "error"
	OutcomeDeleted        = "deleted"
	OutcomeDeleteNotFound = "delete_not_found"
)

type Metrics struct {
	reg          *prometheus.Registry
	reservations *prometheus.CounterVec
	rateLimited  prometheus.Counter
	events       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		reg: reg,
		reservations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_requests_total",
			Help: "Total number of reservation create and delete attempts by outcome.",
		}, []string{"outcome"}),
		rateLimited: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter.",
		}),
		events: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_events_published_total",
			Help: "Total number of reservation events handed to the broker by result.",
		}, []string{"result"}),
	}
}

// ObserveReservation counts one booking attempt.
func (m *Metrics) ObserveReservation(outcome string) {
	m.reservations.WithLabelValues(outcome).Inc()
}

// ObserveRateLimited counts one rejected request.
func (m *Metrics) ObserveRateLimited() { m.rateLimited.Inc() }

// ObserveEvent counts one publish attempt; ok reports whether it succeeded.
func (m *Metrics) ObserveEvent(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.events.WithLabelValues(result).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{
		// Opt into OpenMetrics e.g. to support exemplars.
		EnableOpenMetrics: true,
	})
}
