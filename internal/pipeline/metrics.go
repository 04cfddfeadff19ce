package pipeline

//
// Metrics definitions
//

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsSummaryObjectives returns the summary objectives for promauto.NewSummaryVec.
func metricsSummaryObjectives() map[float64]float64 {
	return map[float64]float64{
		0.5:  0.010,
		0.9:  0.010,
		0.99: 0.001,
	}
}

var (
	// metricCallsCount counts the backend calls by operation and outcome.
	metricCallsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "asdp_pipeline_calls_count",
		Help: "Total number of backend calls",
	}, []string{"operation", "outcome"})

	// metricCallsInflight gauges the number of backend calls currently inflight.
	metricCallsInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "asdp_pipeline_calls_inflight_gauge",
		Help: "The number of backend calls currently inflight",
	})

	// metricCallDurationSeconds summarizes the duration of backend calls.
	metricCallDurationSeconds = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "asdp_pipeline_call_duration_seconds",
		Help:       "Summarizes the time to complete a backend call (in seconds)",
		Objectives: metricsSummaryObjectives(),
	}, []string{"operation"})
)

// measure starts measuring a call of the given operation and returns
// the function to call with the final error once the call is done.
func measure(operation string) func(err error) {
	metricCallsInflight.Inc()
	t0 := time.Now()
	return func(err error) {
		metricCallsInflight.Dec()
		metricCallDurationSeconds.WithLabelValues(operation).Observe(time.Since(t0).Seconds())
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		metricCallsCount.WithLabelValues(operation, outcome).Inc()
	}
}
