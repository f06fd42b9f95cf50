package services

import (
	"context"
	"time"

	"cityflow/datagen/config"
	"cityflow/datagen/pipeline"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const influxBatch = 5000

// InfluxExporter writes time-stamped datasets as points, one measurement per
// dataset. String columns become tags and numeric columns fields.
type InfluxExporter struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      *zap.Logger
}

func NewInfluxExporter(ctx context.Context, cfg config.InfluxDBConfig, log *zap.Logger) (*InfluxExporter, error) {
	if cfg.URL == "" {
		return nil, pipeline.Missing("influxdb", "set INFLUX_URL or [influxdb] url", nil)
	}
	client := influxdb2.NewClient(cfg.URL, cfg.Token)

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := client.Health(healthCtx); err != nil {
		client.Close()
		return nil, pipeline.Missing("influxdb", "start InfluxDB at "+cfg.URL+" or set INFLUX_URL", err)
	}
	log.Info("influxdb connected", zap.String("url", cfg.URL), zap.String("bucket", cfg.Bucket))
	return &InfluxExporter{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      log,
	}, nil
}

func (e *InfluxExporter) Name() string { return "influxdb" }

func (e *InfluxExporter) Export(ctx context.Context, t pipeline.Table) error {
	points := Points(t)
	if points == nil {
		e.log.Debug("skipping dataset without timestamps", zap.String("dataset", t.Name))
		return nil
	}
	for start := 0; start < len(points); start += influxBatch {
		end := min(start+influxBatch, len(points))
		if err := e.writeAPI.WritePoint(ctx, points[start:end]...); err != nil {
			return errors.Wrapf(err, "write %s points", t.Name)
		}
	}
	e.log.Info("wrote dataset to influxdb", zap.String("measurement", t.Name), zap.Int("points", len(points)))
	return nil
}

func (e *InfluxExporter) Close() error {
	e.client.Close()
	return nil
}

// Points converts t into one point per row, or nil when t has no time column.
func Points(t pipeline.Table) []*write.Point {
	tc := t.TimeColumn()
	if tc < 0 {
		return nil
	}
	points := make([]*write.Point, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := row.Values()
		tags := make(map[string]string)
		fields := make(map[string]interface{})
		var ts time.Time
		for i, col := range t.Columns {
			switch v := values[i].(type) {
			case time.Time:
				if i == tc {
					ts = v
				}
			case string:
				tags[col] = v
			default:
				fields[col] = v
			}
		}
		points = append(points, write.NewPoint(t.Name, tags, fields, ts))
	}
	return points
}
