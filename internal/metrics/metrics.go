// Package metrics provides Prometheus metrics for the aggregation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the pipeline's Prometheus metrics.
type Collector struct {
	// RunsTotal counts pipeline runs by outcome.
	RunsTotal *prometheus.CounterVec
	// SourceFetches counts per-source fetch outcomes.
	SourceFetches *prometheus.CounterVec
	// RecordsRejected counts records dropped by sanitation and validation.
	RecordsRejected prometheus.Counter
	// CatalogDeals is the size of the last published catalog.
	CatalogDeals prometheus.Gauge
	// RunDuration observes pipeline run durations.
	RunDuration prometheus.Histogram
}

// NewCollector creates the pipeline metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "godeals",
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"status"}),
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "godeals",
			Name:      "source_fetches_total",
			Help:      "Source fetches by collector and outcome.",
		}, []string{"source", "status"}),
		RecordsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "godeals",
			Name:      "records_rejected_total",
			Help:      "Candidate records dropped by sanitation and validation.",
		}),
		CatalogDeals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "godeals",
			Name:      "catalog_deals",
			Help:      "Deals in the last published catalog.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "godeals",
			Name:      "run_duration_seconds",
			Help:      "Pipeline run duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg != nil {
		reg.MustRegister(
			c.RunsTotal,
			c.SourceFetches,
			c.RecordsRejected,
			c.CatalogDeals,
			c.RunDuration,
		)
	}

	return c
}
