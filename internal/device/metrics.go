package device

import "github.com/prometheus/client_golang/prometheus"

// Metric label values for submission outcomes.
const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

var (
	submissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offload_device_submissions_total",
			Help: "Total number of kernel submissions processed per device.",
		},
		[]string{"device", "status"},
	)

	kernelDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "offload_device_kernel_seconds",
			Help:    "Kernel execution time from dequeue to host-visible completion, in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"device"},
	)

	elementsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offload_device_elements_total",
			Help: "Total number of output elements written per device.",
		},
		[]string{"device"},
	)
)

func init() {
	prometheus.MustRegister(submissionsTotal)
	prometheus.MustRegister(kernelDuration)
	prometheus.MustRegister(elementsProcessed)

	// Pre-initialize label combinations for the built-in backend so they
	// appear in /metrics with value 0 from startup.
	submissionsTotal.WithLabelValues(SimName, statusCompleted)
	submissionsTotal.WithLabelValues(SimName, statusFailed)
}
