package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counts how many comment batches have been processed in total.
var BatchesProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "commentguard_batches_processed_total",
	Help: "Total number of comment batches processed successfully",
})

// Counts individual comments run through the analysis pipeline.
var CommentsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "commentguard_comments_analyzed_total",
	Help: "Total number of comments analyzed",
})

// Counts comments flagged by the URL spam verdict.
var SpamCommentsDetected = promauto.NewCounter(prometheus.CounterOpts{
	Name: "commentguard_spam_comments_detected_total",
	Help: "Total number of comments flagged as spam",
})

// Counts reported duplicate groups (exact and similarity clusters).
var DuplicateGroupsDetected = promauto.NewCounter(prometheus.CounterOpts{
	Name: "commentguard_duplicate_groups_detected_total",
	Help: "Total number of duplicate/similarity groups reported",
})

// Counts comments matched against the cross-run known-spam store.
var KnownSpamHits = promauto.NewCounter(prometheus.CounterOpts{
	Name: "commentguard_known_spam_hits_total",
	Help: "Total number of comments matching a previously stored spam signature",
})

// Measures end-to-end batch analysis time.
var AnalysisLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "commentguard_analysis_latency_seconds",
	Help:    "Time taken to analyze one comment batch",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // from 1ms to ~4s
})

var LanguageDetectionFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "commentguard_language_detection_failures_total",
	Help: "Total number of comments whose language could not be detected",
})

// Report sink metrics
var (
	ReportsShipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commentguard_reports_shipped_total",
		Help: "Total number of report documents flushed to the sink",
	})

	BulkFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commentguard_bulk_flushes_total",
		Help: "Total number of bulk flushes to the report sink",
	})

	BulkFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "commentguard_bulk_failures_total",
		Help: "Total number of bulk requests that failed",
	})

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "commentguard_circuit_breaker_state",
			Help: "Current state of circuit breakers (0=closed, 1=half-open, 2=open)",
		},
		[]string{"service"},
	)
)
