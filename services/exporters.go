package services

import (
	"context"

	"cityflow/datagen/config"
	"cityflow/datagen/pipeline"

	"go.uber.org/zap"
)

// NewExporters connects every integration enabled in cfg. If one of them
// cannot be reached, the ones already opened are closed again.
func NewExporters(ctx context.Context, cfg *config.Config, log *zap.Logger) ([]pipeline.Exporter, error) {
	var exporters []pipeline.Exporter
	fail := func(err error) ([]pipeline.Exporter, error) {
		for _, e := range exporters {
			_ = e.Close()
		}
		return nil, err
	}

	if cfg.Database.Enabled {
		store, err := NewStore(ctx, cfg.Database, log.Named("postgres"))
		if err != nil {
			return fail(err)
		}
		exporters = append(exporters, store)

		zones, err := NewZoneRepository(cfg.Database, log.Named("postgres"))
		if err != nil {
			return fail(err)
		}
		exporters = append(exporters, zones)
	}
	if cfg.Redis.Enabled {
		n, err := NewNotifier(ctx, cfg.Redis, log.Named("redis"))
		if err != nil {
			return fail(err)
		}
		exporters = append(exporters, n)
	}
	if cfg.MQTT.Enabled {
		r, err := NewTrafficReplayer(cfg.MQTT, log.Named("mqtt"))
		if err != nil {
			return fail(err)
		}
		exporters = append(exporters, r)
	}
	if cfg.Kafka.Enabled {
		k, err := NewKafkaExporter(ctx, cfg.Kafka, log.Named("kafka"))
		if err != nil {
			return fail(err)
		}
		exporters = append(exporters, k)
	}
	if cfg.InfluxDB.Enabled {
		e, err := NewInfluxExporter(ctx, cfg.InfluxDB, log.Named("influxdb"))
		if err != nil {
			return fail(err)
		}
		exporters = append(exporters, e)
	}

	names := make([]string, len(exporters))
	for i, e := range exporters {
		names[i] = e.Name()
	}
	log.Info("exporters ready", zap.Strings("exporters", names))
	return exporters, nil
}
