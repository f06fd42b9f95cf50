package handlers

import (
	"context"
	"net/http"

	"cityflow/datagen/models"
	"cityflow/datagen/pipeline"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ManifestSource supplies record counts that cannot be read back from disk.
type ManifestSource interface {
	Manifest(ctx context.Context) ([]models.DatasetInfo, error)
}

type DatasetHandler struct {
	dir      string
	manifest ManifestSource
	log      *zap.Logger
}

// NewDatasetHandler serves the datasets in dir. manifest may be nil.
func NewDatasetHandler(dir string, manifest ManifestSource, log *zap.Logger) *DatasetHandler {
	return &DatasetHandler{dir: dir, manifest: manifest, log: log}
}

func (h *DatasetHandler) List(c *gin.Context) {
	infos, err := h.datasets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"directory": h.dir,
		"datasets":  infos,
		"count":     len(infos),
	})
}

func (h *DatasetHandler) Get(c *gin.Context) {
	name := c.Param("name")
	infos, err := h.datasets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for _, info := range infos {
		if info.Name == name {
			c.JSON(http.StatusOK, info)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
}

func (h *DatasetHandler) datasets(ctx context.Context) ([]models.DatasetInfo, error) {
	infos, err := pipeline.Scan(h.dir)
	if err != nil {
		return nil, err
	}
	if infos == nil {
		infos = []models.DatasetInfo{}
	}
	if h.manifest == nil {
		return infos, nil
	}

	entries, err := h.manifest.Manifest(ctx)
	if err != nil {
		// Counts are optional; the listing still works without them.
		h.log.Warn("manifest unavailable", zap.Error(err))
		return infos, nil
	}
	records := make(map[string]models.DatasetInfo, len(entries))
	for _, e := range entries {
		records[e.Name] = e
	}
	for i := range infos {
		if e, ok := records[infos[i].Name]; ok && e.Bytes == infos[i].Bytes {
			infos[i].Records = e.Records
			infos[i].GeneratedAt = e.GeneratedAt
		}
	}
	return infos, nil
}
