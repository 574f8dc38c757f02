// Package metrics exposes Prometheus instrumentation for codec
// invocations and worker-pool task execution. Registration happens
// once per process via sync.Once, the same guard
// buildbarn-bb-playground's scheduler package uses around its own
// package-level counter/histogram vars.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce sync.Once

	codecInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gesa",
			Subsystem: "codec",
			Name:      "invocations_total",
			Help:      "Number of codec encode/decode invocations, by algorithm and operation.",
		},
		[]string{"algorithm", "operation"})

	codecBytesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gesa",
			Subsystem: "codec",
			Name:      "bytes_processed_total",
			Help:      "Original bytes processed by codec invocations, by algorithm and operation.",
		},
		[]string{"algorithm", "operation"})

	poolTasksSubmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gesa",
			Subsystem: "workerpool",
			Name:      "tasks_submitted_total",
			Help:      "Number of tasks submitted to a worker pool.",
		},
		[]string{"outcome"})

	poolTaskDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gesa",
			Subsystem: "workerpool",
			Name:      "task_duration_seconds",
			Help:      "Wall-clock time a worker pool task spent executing.",
			Buckets:   prometheus.DefBuckets,
		})
)

func register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(codecInvocationsTotal)
		prometheus.MustRegister(codecBytesProcessedTotal)
		prometheus.MustRegister(poolTasksSubmittedTotal)
		prometheus.MustRegister(poolTaskDurationSeconds)
	})
}

func init() {
	register()
}

// RecordCodecInvocation increments the invocation and bytes-processed
// counters for one encode or decode call.
func RecordCodecInvocation(algorithm, operation string, originalSize uint64) {
	codecInvocationsTotal.WithLabelValues(algorithm, operation).Inc()
	codecBytesProcessedTotal.WithLabelValues(algorithm, operation).Add(float64(originalSize))
}

// RecordPoolTaskSubmitted increments the submitted-tasks counter,
// labeled by "accepted" or "rejected" (pool already stopped).
func RecordPoolTaskSubmitted(accepted bool) {
	outcome := "accepted"
	if !accepted {
		outcome = "rejected"
	}
	poolTasksSubmittedTotal.WithLabelValues(outcome).Inc()
}

// RecordPoolTaskDuration records how long a task spent executing once
// a worker dequeued it.
func RecordPoolTaskDuration(d time.Duration) {
	poolTaskDurationSeconds.Observe(d.Seconds())
}

// Handler returns the Prometheus exposition HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
