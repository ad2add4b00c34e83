package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path"},
	)

	// RoutesPlanned counts cleaning plans by source (computed or cache).
	RoutesPlanned = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cleaning_routes_planned_total", Help: "Cleaning routes planned."},
		[]string{"source"},
	)
	RouteDistanceKm = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "cleaning_route_distance_km", Help: "Total distance of optimized cleaning routes.", Buckets: []float64{1, 5, 10, 25, 50, 100, 250}},
	)
	ROIAssessments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cleaning_roi_assessments_total", Help: "Cleaning ROI estimates by outcome."},
		[]string{"outcome"},
	)
	// OpDuration records operation timings reported through Time.
	OpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Duration of timed operations.", Buckets: prometheus.DefBuckets},
		[]string{"op", "outcome"},
	)
)

var regOnce sync.Once

// RegisterMetrics registers all collectors on Registry. Safe to call repeatedly.
func RegisterMetrics() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			RoutesPlanned,
			RouteDistanceKm,
			ROIAssessments,
			OpDuration,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}
