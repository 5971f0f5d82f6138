package apiclient

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ereport_admin",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Запросы к API системы отчётности",
		},
		[]string{"method", "resource", "status"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ereport_admin",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Длительность запросов к API системы отчётности",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "resource"},
	)
)

// resourceLabel берёт первый сегмент пути, чтобы id не раздували кардинальность.
func resourceLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "root"
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
