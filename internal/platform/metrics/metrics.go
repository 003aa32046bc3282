// Package metrics holds the Prometheus collectors for the price and
// translation caches.
package metrics

import (
	"errors"
	"time"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "property_market"

// Outcome labels for per-item counters.
const (
	OutcomeProcessed = "processed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
	OutcomeSuccess   = "success"
	OutcomeFallback  = "fallback"

	// OutcomeSuperseded marks a translation blob dropped because its source
	// text changed while it was being translated.
	OutcomeSuperseded = "superseded"
)

// Metrics groups every collector the services report to. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	recalcRuns          *prometheus.CounterVec
	recalcListings      *prometheus.CounterVec
	recalcDuration      prometheus.Histogram
	translationCalls    *prometheus.CounterVec
	translationDuration prometheus.Histogram
	translationPersist  *prometheus.CounterVec
}

// New creates the collectors and registers them with registerer.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		recalcRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recalculation_runs_total",
			Help:      "Price recalculation runs by result.",
		}, []string{"result"}),
		recalcListings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recalculation_listings_total",
			Help:      "Listings visited by price recalculation, by outcome.",
		}, []string{"outcome"}),
		recalcDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recalculation_duration_seconds",
			Help:      "Wall time of one price recalculation run.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		translationCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_calls_total",
			Help:      "Translator calls by target language and outcome.",
		}, []string{"language", "outcome"}),
		translationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "translation_call_duration_seconds",
			Help:      "Latency of single translator calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		translationPersist: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_persist_total",
			Help:      "Translation blob writes by entity type and result.",
		}, []string{"entity_type", "result"}),
	}

	registerer.MustRegister(
		m.recalcRuns,
		m.recalcListings,
		m.recalcDuration,
		m.translationCalls,
		m.translationDuration,
		m.translationPersist,
	)
	return m
}

// ObserveRecalculation records a finished recalculation run.
func (m *Metrics) ObserveRecalculation(report domain.RecalculationReport, err error) {
	if m == nil {
		return
	}
	m.recalcRuns.WithLabelValues(resultLabel(err)).Inc()
	m.recalcListings.WithLabelValues(OutcomeProcessed).Add(float64(report.Processed))
	m.recalcListings.WithLabelValues(OutcomeSkipped).Add(float64(report.Skipped))
	m.recalcListings.WithLabelValues(OutcomeFailed).Add(float64(report.Failed))
	m.recalcDuration.Observe(report.Duration.Seconds())
}

// ObserveTranslationCall records a single translator call.
func (m *Metrics) ObserveTranslationCall(lang domain.Language, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.translationCalls.WithLabelValues(string(lang), outcome).Inc()
	m.translationDuration.Observe(took.Seconds())
}

// ObserveTranslationPersist records a translation blob write.
func (m *Metrics) ObserveTranslationPersist(entityType domain.EntityType, err error) {
	if m == nil {
		return
	}
	result := resultLabel(err)
	if errors.Is(err, apperrors.ErrConflict) {
		result = OutcomeSuperseded
	}
	m.translationPersist.WithLabelValues(string(entityType), result).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
