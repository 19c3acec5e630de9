// Package metrics provides Prometheus metrics for the pixvault server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marmos91/pixvault/internal/logger"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixvault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pixvault_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixvault_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"success"},
	)

	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixvault_uploads_total",
			Help: "Total number of object uploads",
		},
		[]string{"status"},
	)

	uploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pixvault_upload_bytes_total",
			Help: "Total bytes uploaded to object storage",
		},
	)

	cascadeFoldersDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pixvault_cascade_folders_deleted_total",
			Help: "Total folder records removed by cascade deletions",
		},
	)

	cascadeFilesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pixvault_cascade_files_deleted_total",
			Help: "Total file records removed by cascade deletions",
		},
	)

	treeAssemblyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pixvault_tree_assembly_duration_seconds",
			Help:    "Time to assemble an owner's tree from flat records",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAuthAttempt records a login or token validation outcome.
func RecordAuthAttempt(success bool) {
	authAttemptsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// RecordUpload records an object upload outcome and size.
func RecordUpload(ok bool, bytes int) {
	status := "ok"
	if !ok {
		status = "error"
	}
	uploadsTotal.WithLabelValues(status).Inc()
	if ok {
		uploadBytesTotal.Add(float64(bytes))
	}
}

// RecordCascade records what a cascade deletion removed.
func RecordCascade(folders, files int) {
	cascadeFoldersDeleted.Add(float64(folders))
	cascadeFilesDeleted.Add(float64(files))
}

// RecordTreeAssembly records the duration of one tree assembly.
func RecordTreeAssembly(duration time.Duration) {
	treeAssemblyDuration.Observe(duration.Seconds())
}

// Serve exposes /metrics on its own listener. It blocks, so callers run it
// in a goroutine; errors are logged, not fatal.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("metrics listener started on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener failed: %v", err)
	}
}
