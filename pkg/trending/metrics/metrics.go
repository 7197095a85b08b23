// Package metrics defines the Prometheus collectors for a trend run and
// exports them in the node-exporter textfile format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Skip reasons used as label values.
const (
	ReasonLanguage = "language"
	ReasonFilename = "filename"
	ReasonRead     = "read"
)

// Metrics holds all collectors for one run on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsTotal   prometheus.Counter
	DocumentsSkipped *prometheus.CounterVec
	TokensTotal      prometheus.Counter
	PhrasesTotal     prometheus.Counter
	MonthsRendered   prometheus.Counter
	MonthsEmpty      prometheus.Counter
	TermsPerMonth    prometheus.Histogram
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trending_documents_total",
			Help: "Documents merged into a month bucket.",
		}),
		DocumentsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trending_documents_skipped_total",
			Help: "Documents skipped before processing, by reason.",
		}, []string{"reason"}),
		TokensTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trending_tokens_total",
			Help: "Tokens surviving filtering across all documents.",
		}),
		PhrasesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trending_phrases_total",
			Help: "Distinct phrases kept per document, summed.",
		}),
		MonthsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trending_months_rendered_total",
			Help: "Months handed to the renderer.",
		}),
		MonthsEmpty: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trending_months_empty_total",
			Help: "Months with nothing left after output filtering.",
		}),
		TermsPerMonth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trending_month_terms",
			Help:    "Distinct terms per published month.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 6),
		}),
	}

	m.registry.MustRegister(
		m.DocumentsTotal,
		m.DocumentsSkipped,
		m.TokensTotal,
		m.PhrasesTotal,
		m.MonthsRendered,
		m.MonthsEmpty,
		m.TermsPerMonth,
	)
	return m
}

// Registry exposes the private registry, e.g. for tests or an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveDocument records one processed document. Safe on a nil receiver.
func (m *Metrics) ObserveDocument(tokens, phrases int) {
	if m == nil {
		return
	}
	m.DocumentsTotal.Inc()
	m.TokensTotal.Add(float64(tokens))
	m.PhrasesTotal.Add(float64(phrases))
}

// Skip records a skipped document. Safe on a nil receiver.
func (m *Metrics) Skip(reason string) {
	if m == nil {
		return
	}
	m.DocumentsSkipped.WithLabelValues(reason).Inc()
}

// ObserveMonth records a published month. Safe on a nil receiver.
func (m *Metrics) ObserveMonth(terms int, rendered bool) {
	if m == nil {
		return
	}
	if !rendered {
		m.MonthsEmpty.Inc()
		return
	}
	m.MonthsRendered.Inc()
	m.TermsPerMonth.Observe(float64(terms))
}

// WriteTextfile writes the current values to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
