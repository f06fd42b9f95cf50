package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"cityflow/datagen/cmd/datagen/options"
	"cityflow/datagen/handlers"
	"cityflow/datagen/logging"
	"cityflow/datagen/pipeline"
	"cityflow/datagen/services"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serve_examples = `  datagen serve
  SERVER_PORT=9000 datagen serve --output-dir /tmp/iot`

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "serve the generated datasets over HTTP",
		Long:    "Serves the output directory read-only, with a dataset listing, health check and Prometheus metrics.",
		Example: serve_examples,
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

	var manifest handlers.ManifestSource
	if cfg.Redis.Enabled {
		n, err := services.NewNotifier(ctx, cfg.Redis, log.Named("redis"))
		if err != nil {
			return err
		}
		defer n.Close()
		manifest = n
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		pipeline.NewDatasetCollector(cfg.OutputDir),
	)

	gin.SetMode(gin.ReleaseMode)
	router := handlers.NewRouter(cfg.Server, handlers.NewDatasetHandler(cfg.OutputDir, manifest, log), reg, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return errors.Wrap(err, "http server")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", zap.String("addr", ln.Addr().String()), zap.String("dir", cfg.OutputDir))
		if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
