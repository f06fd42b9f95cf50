package handlers

import (
	"net/http"

	"cityflow/datagen/config"
	"cityflow/datagen/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter exposes the output directory read-only:
//
//	GET /health
//	GET /datasets
//	GET /datasets/:name
//	GET /files/*filepath
//	GET /metrics
func NewRouter(cfg config.ServerConfig, datasets *DatasetHandler, gatherer prometheus.Gatherer, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.SetupCORS(cfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "UP",
			"message": "CityFlow dataset server is running",
		})
	})

	router.GET("/datasets", datasets.List)
	router.GET("/datasets/:name", datasets.Get)
	router.StaticFS("/files", gin.Dir(datasets.dir, false))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}
