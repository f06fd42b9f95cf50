package pipeline

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

type Metrics struct {
	Registry *prometheus.Registry

	RecordsGenerated *prometheus.CounterVec
	BytesWritten     *prometheus.CounterVec
	ExportFailures   *prometheus.CounterVec
	DatasetDuration  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		RecordsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cityflow_datagen_records_generated_total",
			Help: "Total number of synthetic records generated",
		}, []string{"dataset"}),
		BytesWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cityflow_datagen_bytes_written_total",
			Help: "Total number of bytes written to dataset files",
		}, []string{"dataset"}),
		ExportFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cityflow_datagen_export_failures_total",
			Help: "Total number of failed dataset exports",
		}, []string{"exporter"}),
		DatasetDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cityflow_datagen_dataset_duration_seconds",
			Help:    "Time spent generating, writing and exporting one dataset",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"dataset"}),
	}
}

// Push sends the current values to a Prometheus Pushgateway.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return errors.Wrapf(err, "push metrics to %s", url)
	}
	return nil
}
