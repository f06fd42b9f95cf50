package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	datasetBytesDesc = prometheus.NewDesc(
		"cityflow_datagen_dataset_bytes",
		"Size of the dataset file on disk",
		[]string{"dataset", "format"}, nil,
	)
	datasetGeneratedDesc = prometheus.NewDesc(
		"cityflow_datagen_dataset_generated_timestamp_seconds",
		"Unix time the dataset file was last written",
		[]string{"dataset", "format"}, nil,
	)
)

// DatasetCollector reports the dataset files present in an output
// directory. The directory is scanned on every collection, so files
// written by a separate generate run show up without a restart.
type DatasetCollector struct {
	dir    string
	errors prometheus.Counter
}

func NewDatasetCollector(dir string) *DatasetCollector {
	return &DatasetCollector{
		dir: dir,
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cityflow_datagen_dataset_scan_errors_total",
			Help: "Output directory scans that failed",
		}),
	}
}

func (c *DatasetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- datasetBytesDesc
	ch <- datasetGeneratedDesc
	c.errors.Describe(ch)
}

func (c *DatasetCollector) Collect(ch chan<- prometheus.Metric) {
	infos, err := Scan(c.dir)
	if err != nil {
		c.errors.Inc()
	}
	for _, info := range infos {
		ch <- prometheus.MustNewConstMetric(datasetBytesDesc, prometheus.GaugeValue,
			float64(info.Bytes), info.Name, info.Format)
		ch <- prometheus.MustNewConstMetric(datasetGeneratedDesc, prometheus.GaugeValue,
			float64(info.GeneratedAt.UnixNano())/1e9, info.Name, info.Format)
	}
	ch <- c.errors
}
