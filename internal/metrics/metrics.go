package metrics

import (
	"net/http"

	"github.com/kmmndr/motion_analyzer/internal/motion"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	videoProcessed   *prometheus.CounterVec
	processingTime   prometheus.Histogram
	videoDuration    prometheus.Histogram
	movementDetected prometheus.Counter
	activeRequests   prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers the analyzer metrics on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	return NewMetricsWithRegistry(registry, registry)
}

func NewMetricsWithRegistry(registerer prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		videoProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "video_processed_total",
			Help: "Total number of videos processed",
		}, []string{"status"}),
		processingTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "video_processing_time_seconds",
			Help:    "Time spent processing videos",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		}),
		videoDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "video_duration_seconds",
			Help:    "Duration of processed videos",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		}),
		movementDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "movement_detected_total",
			Help: "Total number of videos with movement detected",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_requests",
			Help: "Number of active requests being processed",
		}),
		gatherer: gatherer,
	}

	registerer.MustRegister(m.videoProcessed, m.processingTime, m.videoDuration, m.movementDetected, m.activeRequests)
	return m
}

// Begin marks a request as active until the matching End.
func (m *Metrics) Begin() {
	m.activeRequests.Inc()
}

func (m *Metrics) End() {
	m.activeRequests.Dec()
}

// Record stores the outcome of one analysis.
func (m *Metrics) Record(result motion.Result) {
	m.videoProcessed.WithLabelValues(string(result.Status)).Inc()
	m.processingTime.Observe(result.ProcessingTime)
	m.videoDuration.Observe(result.Duration)

	if result.HasMovement {
		m.movementDetected.Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
