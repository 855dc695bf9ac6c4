// internal/services/metrics.go
package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeFound             = "found"
	outcomeNotFound          = "not_found"
	outcomeFailed            = "failed"
	outcomeMissingIdentifier = "missing_identifier"
)

var (
	productLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certview_product_lookups_total",
			Help: "Product lookups by outcome",
		},
		[]string{"outcome"},
	)

	productLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "certview_product_lookup_duration_seconds",
			Help:    "Latency of product lookups against the public view",
			Buckets: prometheus.DefBuckets,
		},
	)

	documentDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certview_document_deliveries_total",
			Help: "Document downloads by delivery method",
		},
		[]string{"method"},
	)
)

func observeLookup(outcome string, elapsed time.Duration) {
	productLookupsTotal.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		productLookupDuration.Observe(elapsed.Seconds())
	}
}
