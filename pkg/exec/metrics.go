package exec

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of an executor.
type Metrics struct {
	Passes     *prometheus.CounterVec
	Partitions prometheus.Counter
	Rows       prometheus.Counter
	Failures   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	passes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "frameops_executor_passes_total",
		Help: "Total number of passes run by the executor",
	}, []string{"kind"})

	partitions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "frameops_executor_partitions_total",
		Help: "Total number of partitions processed by parallel passes",
	})

	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "frameops_executor_rows_total",
		Help: "Total number of input rows processed",
	})

	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "frameops_executor_failures_total",
		Help: "Total number of failed passes",
	})

	reg.MustRegister(passes, partitions, rows, failures)

	return &Metrics{
		Passes:     passes,
		Partitions: partitions,
		Rows:       rows,
		Failures:   failures,
	}
}
