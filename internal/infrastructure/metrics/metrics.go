package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Messaging-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worklink",
			Subsystem: "messaging_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "worklink",
			Subsystem: "messaging_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Messages appended to the ledger
	MessagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worklink",
			Subsystem: "messaging_api",
			Name:      "messages_sent_total",
			Help:      "Total messages accepted into the ledger",
		},
		[]string{"kind"},
	)

	// Attachment ingest outcomes
	AttachmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "worklink",
			Subsystem: "messaging_api",
			Name:      "attachments_total",
			Help:      "Attachment ingest attempts by outcome",
		},
		[]string{"kind", "outcome"},
	)

	// Read-state transitions
	ReadTransitionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "worklink",
			Subsystem: "messaging_api",
			Name:      "read_transitions_total",
			Help:      "Messages transitioned from unread to read",
		},
	)

	// DB query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "worklink",
			Subsystem: "messaging_api",
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"query_type"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordMessageSent records an accepted message append
func RecordMessageSent(kind string) {
	MessagesSentTotal.WithLabelValues(kind).Inc()
}

// RecordAttachmentIngest records an attachment ingest attempt
func RecordAttachmentIngest(kind, outcome string) {
	AttachmentsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordReadTransitions records read-state transitions
func RecordReadTransitions(count int64) {
	if count > 0 {
		ReadTransitionsTotal.Add(float64(count))
	}
}

// RecordDBQuery records a database query
func RecordDBQuery(queryType string, durationSec float64) {
	DBQueryDuration.WithLabelValues(queryType).Observe(durationSec)
}

// TimeDBQuery starts a query timer. The returned stop function observes the
// elapsed time under the given label; defer it at the top of a repository
// method.
func TimeDBQuery(queryType string) func() {
	start := time.Now()
	return func() {
		RecordDBQuery(queryType, time.Since(start).Seconds())
	}
}
