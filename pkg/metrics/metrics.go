// Package metrics exposes prometheus counters for events, generations and emails.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors
type Metrics struct {
	eventsPublished *prometheus.CounterVec
	eventsHandled   *prometheus.CounterVec
	generations     *prometheus.CounterVec
	generationTime  *prometheus.HistogramVec
	emailsSent      *prometheus.CounterVec
}

// New registers service collectors with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		eventsPublished: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalist_events_published_total",
				Help: "Total number of published events",
			},
			[]string{"event", "status"},
		),
		eventsHandled: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalist_events_handled_total",
				Help: "Total number of event handler runs",
			},
			[]string{"event", "status"},
		),
		generations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalist_generations_total",
				Help: "Total number of content generations",
			},
			[]string{"format", "status"},
		),
		generationTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signalist_generation_duration_seconds",
				Help:    "Duration of content generation in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		emailsSent: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalist_emails_sent_total",
				Help: "Total number of sent emails",
			},
			[]string{"layout", "status"},
		),
	}
}

// EventPublished records a publish attempt
func (m *Metrics) EventPublished(event string, err error) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(event, status(err)).Inc()
}

// EventHandled records a handler run, skipped duplicates are recorded with status "duplicate"
func (m *Metrics) EventHandled(event, st string) {
	if m == nil {
		return
	}
	m.eventsHandled.WithLabelValues(event, st).Inc()
}

// Generation records a generation call and its duration
func (m *Metrics) Generation(format string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(format, status(err)).Inc()
	m.generationTime.WithLabelValues(format).Observe(d.Seconds())
}

// EmailSent records a send attempt
func (m *Metrics) EmailSent(layout string, err error) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(layout, status(err)).Inc()
}

// Handler serves metrics collected by g. A nil g uses the default gatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
