package prometheus

import (
	"time"

	"github.com/krizhnx/internyx/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Application record metrics
	ApplicationOperationsCounter prometheus.CounterVec

	// Tag lifecycle metrics
	TagOperationsCounter prometheus.CounterVec

	// Tag deletion cascades that stopped partway
	CascadeFailuresCounter prometheus.Counter

	// Attachment storage metrics
	AttachmentOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ApplicationOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_application_operations_total",
			Help: "Total number of application record operations",
		},
		[]string{"operation"},
	)

	TagOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tag_operations_total",
			Help: "Total number of tag operations",
		},
		[]string{"operation"},
	)

	CascadeFailuresCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_tag_cascade_failures_total",
			Help: "Total number of tag deletions that failed partway through the cascade",
		},
	)

	AttachmentOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_attachment_operations_total",
			Help: "Total number of attachment storage operations",
		},
		[]string{"operation"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordApplicationOperation increments the counter for application record operations
func RecordApplicationOperation(operation string) {
	ApplicationOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTagOperation increments the counter for tag operations
func RecordTagOperation(operation string) {
	TagOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordAttachmentOperation increments the counter for attachment operations
func RecordAttachmentOperation(operation string) {
	AttachmentOperationsCounter.WithLabelValues(operation).Inc()
}
