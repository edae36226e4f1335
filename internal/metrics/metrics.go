package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels that are not scrape error kinds.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
)

// Metrics holds the Prometheus collectors for the scrape pipeline.
type Metrics struct {
	// ScrapesTotal counts pipeline invocations, labeled by outcome
	// ("ok", "transport", or a scrape error kind such as "table_not_found").
	ScrapesTotal *prometheus.CounterVec

	// FetchDuration observes the profile page round trip in seconds.
	FetchDuration prometheus.Histogram
}

// NewMetrics registers the collectors against reg.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ScrapesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "scrapes_total",
				Help:      "Total number of profile scrapes by outcome.",
			},
			[]string{"outcome"},
		),
		FetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "fetch_duration_seconds",
				Help:      "Duration of profile page fetches in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// RecordScrape increments the outcome counter. Safe on a nil receiver.
func (m *Metrics) RecordScrape(outcome string) {
	if m == nil {
		return
	}
	m.ScrapesTotal.WithLabelValues(outcome).Inc()
}

// ObserveFetch records a fetch duration. Safe on a nil receiver.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.Observe(d.Seconds())
}
