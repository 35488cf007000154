// Package metrics provides Prometheus metrics for candidate searches and
// interaction check cycles. It exports:
//   - medcheck_search_total: Counter with category and result labels
//   - medcheck_search_duration_seconds: Histogram with a category label
//   - medcheck_check_total: Counter with mode and state labels
//   - medcheck_check_duration_seconds: Histogram with a mode label
//   - medcheck_check_interactions: Counter of interactions found, by severity
//
// Metrics live on a private registry so several observers can coexist in
// tests; Handler exposes them for scraping.
package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
)

// Ensure Observer implements the interface.
var _ driven.CheckObserver = (*Observer)(nil)

// Observer records search and check measurements.
type Observer struct {
	registry *prometheus.Registry

	searchTotal    *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	checkTotal     *prometheus.CounterVec
	checkDuration  *prometheus.HistogramVec
	interactions   *prometheus.CounterVec
}

// NewObserver creates an observer with its own registry.
func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		searchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medcheck_search_total",
				Help: "Total candidate searches",
			},
			[]string{"category", "result"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "medcheck_search_duration_seconds",
				Help:    "Candidate search latency",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"category"},
		),
		checkTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medcheck_check_total",
				Help: "Total completed interaction check cycles",
			},
			[]string{"mode", "state"},
		),
		checkDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "medcheck_check_duration_seconds",
				Help:    "Interaction check latency",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"mode"},
		),
		interactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "medcheck_check_interactions",
				Help: "Interactions returned by successful checks",
			},
			[]string{"severity"},
		),
	}

	o.registry.MustRegister(
		o.searchTotal,
		o.searchDuration,
		o.checkTotal,
		o.checkDuration,
		o.interactions,
	)
	return o
}

// SearchCompleted records one index query.
func (o *Observer) SearchCompleted(category domain.Category, hits int, err error, took time.Duration) {
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case hits == 0:
		result = "empty"
	}
	o.searchTotal.WithLabelValues(category.String(), result).Inc()
	o.searchDuration.WithLabelValues(category.String()).Observe(took.Seconds())
}

// CheckCompleted records one check cycle. Deficiency bounces are counted
// under the "rejected" state and have no duration sample.
func (o *Observer) CheckCompleted(outcome domain.CheckOutcome) {
	mode := outcome.Mode.String()
	if outcome.Deficiency {
		o.checkTotal.WithLabelValues(mode, "rejected").Inc()
		return
	}

	o.checkTotal.WithLabelValues(mode, outcome.State.String()).Inc()
	o.checkDuration.WithLabelValues(mode).Observe(outcome.Duration().Seconds())

	if outcome.State != domain.CheckSuccess || outcome.Result == nil {
		return
	}
	counts := outcome.Result.SeverityCounts()
	o.addInteractions(domain.SeverityMajor, counts.Major)
	o.addInteractions(domain.SeverityModerate, counts.Moderate)
	o.addInteractions(domain.SeverityMinor, counts.Minor)
	o.addInteractions(domain.SeverityUnknown, counts.Unknown)
}

func (o *Observer) addInteractions(severity domain.Severity, n int) {
	if n > 0 {
		o.interactions.WithLabelValues(strings.ToLower(severity.String())).Add(float64(n))
	}
}

// Registry returns the registry holding the observer's metrics.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}
