// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncRuns counts per-category sync runs by outcome.
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "showcase_sync_runs_total",
		Help: "Per-category index rebuild runs by outcome.",
	}, []string{"category", "outcome"})

	// SyncDocuments counts documents by per-document import outcome.
	SyncDocuments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "showcase_sync_documents_total",
		Help: "Documents processed during index rebuilds.",
	}, []string{"category", "outcome"})

	// SyncDuration observes full multi-category run duration.
	SyncDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "showcase_sync_duration_seconds",
		Help:    "Wall-clock duration of full sync runs.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	// SearchRequests counts query gateway requests by endpoint and outcome.
	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "showcase_search_requests_total",
		Help: "Query gateway requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
)
