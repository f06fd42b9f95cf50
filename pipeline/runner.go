package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cityflow/datagen/generator"
	"cityflow/datagen/models"
	"cityflow/datagen/writer"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Dataset is one entry of the fixed generation order.
type Dataset struct {
	Name    string
	Format  writer.Format
	Columns []string
}

func (d Dataset) File() string {
	return writer.FileName(d.Name, d.Format)
}

// Datasets lists every dataset in the order a run produces them.
var Datasets = []Dataset{
	{models.TrafficDataset, writer.CSV, models.TrafficColumns},
	{models.AirQualityDataset, writer.JSON, models.AirQualityColumns},
	{models.WeatherDataset, writer.Parquet, models.WeatherColumns},
	{models.EnergyDataset, writer.CSV, models.EnergyColumns},
	{models.ZonesDataset, writer.CSV, models.ZoneColumns},
}

type Runner struct {
	gen       *generator.Generator
	dir       string
	log       *zap.Logger
	metrics   *Metrics
	exporters []Exporter
	now       func() time.Time
	runID     string
}

func NewRunner(gen *generator.Generator, dir string, log *zap.Logger, metrics *Metrics, exporters ...Exporter) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Runner{
		gen:       gen,
		dir:       dir,
		log:       log,
		metrics:   metrics,
		exporters: exporters,
		now:       time.Now,
	}
}

// Run generates, writes and exports every dataset in order. The first
// failure stops the run; files already written are left in place.
func (r *Runner) Run(ctx context.Context) ([]models.DatasetInfo, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create output directory %s", r.dir)
	}

	r.runID = uuid.NewString()
	w := r.gen.Window()
	r.log.Info("generating synthetic IoT datasets",
		zap.String("run_id", r.runID),
		zap.String("output_dir", r.dir),
		zap.Time("start", w.Start),
		zap.Time("end", w.End),
		zap.Uint64("seed", r.gen.Seed()),
	)

	infos := make([]models.DatasetInfo, 0, len(Datasets))
	for _, d := range Datasets {
		if err := ctx.Err(); err != nil {
			return infos, errors.Wrap(err, "generation aborted")
		}
		info, err := r.runDataset(ctx, d)
		if err != nil {
			return infos, errors.Wrapf(err, "dataset %s", d.Name)
		}
		infos = append(infos, info)
	}

	r.log.Info("all datasets saved", zap.String("output_dir", r.dir))
	for _, info := range infos {
		r.log.Info("dataset file",
			zap.String("file", info.File),
			zap.String("size", fmt.Sprintf("%.2f MB", float64(info.Bytes)/1024/1024)),
		)
	}
	return infos, nil
}

func (r *Runner) runDataset(ctx context.Context, d Dataset) (models.DatasetInfo, error) {
	start := time.Now()
	path := filepath.Join(r.dir, d.File())
	r.log.Info("generating", zap.String("dataset", d.Name))

	rows, err := r.write(d, path)
	if err != nil {
		return models.DatasetInfo{}, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return models.DatasetInfo{}, errors.Wrapf(err, "stat %s", path)
	}

	info := models.DatasetInfo{
		RunID:       r.runID,
		Name:        d.Name,
		File:        d.File(),
		Format:      d.Format.String(),
		Records:     len(rows),
		Bytes:       st.Size(),
		GeneratedAt: r.now().UTC(),
	}
	r.metrics.RecordsGenerated.WithLabelValues(d.Name).Add(float64(info.Records))
	r.metrics.BytesWritten.WithLabelValues(d.Name).Add(float64(info.Bytes))
	r.log.Info("wrote dataset",
		zap.String("dataset", d.Name),
		zap.String("path", path),
		zap.Int("records", info.Records),
	)

	t := Table{Name: d.Name, Format: d.Format, Columns: d.Columns, Rows: rows, Info: info}
	for _, e := range r.exporters {
		if err := e.Export(ctx, t); err != nil {
			r.metrics.ExportFailures.WithLabelValues(e.Name()).Inc()
			return info, errors.Wrapf(err, "export to %s", e.Name())
		}
		r.log.Debug("exported dataset", zap.String("dataset", d.Name), zap.String("exporter", e.Name()))
	}

	r.metrics.DatasetDuration.WithLabelValues(d.Name).Observe(time.Since(start).Seconds())
	return info, nil
}

func (r *Runner) write(d Dataset, path string) ([]models.Row, error) {
	g := r.gen
	switch d.Name {
	case models.TrafficDataset:
		rows := g.Traffic()
		return models.Rows(rows), writer.WriteCSV(path, d.Columns, rows)
	case models.AirQualityDataset:
		rows := g.AirQuality()
		return models.Rows(rows), writer.WriteJSON(path, rows)
	case models.WeatherDataset:
		rows := g.Weather()
		return models.Rows(rows), writer.WriteParquet(path, rows)
	case models.EnergyDataset:
		rows := g.Energy()
		return models.Rows(rows), writer.WriteCSV(path, d.Columns, rows)
	case models.ZonesDataset:
		rows := generator.CityZones()
		return models.Rows(rows), writer.WriteCSV(path, d.Columns, rows)
	default:
		return nil, errors.Errorf("unknown dataset %q", d.Name)
	}
}

// Close releases every exporter, returning the first error.
func (r *Runner) Close() error {
	var first error
	for _, e := range r.exporters {
		if err := e.Close(); err != nil {
			r.log.Warn("closing exporter", zap.String("exporter", e.Name()), zap.Error(err))
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Scan reports the dataset files currently present in dir. Record counts are
// not recoverable from disk and stay zero.
func Scan(dir string) ([]models.DatasetInfo, error) {
	var infos []models.DatasetInfo
	for _, d := range Datasets {
		st, err := os.Stat(filepath.Join(dir, d.File()))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", d.File())
		}
		infos = append(infos, models.DatasetInfo{
			Name:        d.Name,
			File:        d.File(),
			Format:      d.Format.String(),
			Bytes:       st.Size(),
			GeneratedAt: st.ModTime().UTC(),
		})
	}
	return infos, nil
}
