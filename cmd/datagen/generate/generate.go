package generate

import (
	"context"
	"time"

	"cityflow/datagen/cmd/datagen/options"
	"cityflow/datagen/config"
	"cityflow/datagen/generator"
	"cityflow/datagen/logging"
	"cityflow/datagen/pipeline"
	"cityflow/datagen/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var generate_examples = `  datagen generate
  datagen generate --days 1 --seed 42 --output-dir /tmp/iot
  DB_DSN=postgres://cityflow@localhost/cityflow datagen generate`

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "generate",
		Short:   "generate the synthetic IoT datasets",
		Long:    "Generates the traffic, air quality, weather, energy and zone datasets and exports them to every enabled integration.",
		Example: generate_examples,
		Args:    cobra.NoArgs,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), cmd)
		},
	}
}

func Run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := options.LoadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	exporters, err := services.NewExporters(ctx, cfg, log)
	if err != nil {
		return err
	}

	gen := generator.New(
		generator.NewRandom(uint64(cfg.Seed)),
		generator.LastDays(time.Now(), cfg.Days),
		cfg.Bounds,
	)
	metrics := pipeline.NewMetrics()
	runner := pipeline.NewRunner(gen, cfg.OutputDir, log, metrics, exporters...)
	defer func() { _ = runner.Close() }()

	_, runErr := runner.Run(ctx)
	pushMetrics(metrics, cfg.Metrics, log)
	return runErr
}

// pushMetrics runs on its own deadline so an interrupted run still
// reports what it generated.
func pushMetrics(m *pipeline.Metrics, cfg config.MetricsConfig, log *zap.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.Push(ctx, cfg.PushgatewayURL, cfg.Job); err != nil {
		log.Warn("metrics push failed", zap.Error(err))
	}
}
