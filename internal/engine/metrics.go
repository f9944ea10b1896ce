package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	outstandingWork = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "offload_outstanding_work",
			Help: "Number of reserved asynchronous work units not yet released.",
		},
	)

	activationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offload_activations_total",
			Help: "Total number of source activations fired.",
		},
	)

	runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "offload_run_seconds",
			Help:    "End-to-end run duration from activation to drain, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	pathDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "offload_path_seconds",
			Help:    "Per-path kernel duration for one activation, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
)

func init() {
	prometheus.MustRegister(outstandingWork)
	prometheus.MustRegister(activationsTotal)
	prometheus.MustRegister(runDuration)
	prometheus.MustRegister(pathDuration)
}
