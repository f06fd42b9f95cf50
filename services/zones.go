package services

import (
	"context"

	"cityflow/datagen/config"
	"cityflow/datagen/models"
	"cityflow/datagen/pipeline"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ZoneRepository keeps the city_zones reference table in sync through gorm.
type ZoneRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewZoneRepository(cfg config.DatabaseConfig, log *zap.Logger) (*ZoneRepository, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, pipeline.Missing("postgres", "start PostgreSQL or set DB_DSN", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql db handle")
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, pipeline.Missing("postgres", "start PostgreSQL or set DB_DSN", err)
	}
	return &ZoneRepository{db: db, log: log}, nil
}

func (r *ZoneRepository) Name() string { return "postgres-zones" }

func (r *ZoneRepository) Export(ctx context.Context, t pipeline.Table) error {
	if t.Name != models.ZonesDataset {
		return nil
	}
	zones, err := ZonesFromTable(t)
	if err != nil {
		return err
	}
	return r.Upsert(ctx, zones)
}

// Upsert creates the table if needed and inserts or replaces every zone.
func (r *ZoneRepository) Upsert(ctx context.Context, zones []models.Zone) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.Zone{}); err != nil {
		return errors.Wrap(err, "migrate city_zones")
	}
	if len(zones) == 0 {
		return nil
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&zones).Error; err != nil {
		return errors.Wrap(err, "upsert city_zones")
	}
	r.log.Info("upserted zones", zap.Int("zones", len(zones)))
	return nil
}

func (r *ZoneRepository) List(ctx context.Context) ([]models.Zone, error) {
	var zones []models.Zone
	if err := r.db.WithContext(ctx).Order("zone_id").Find(&zones).Error; err != nil {
		return nil, errors.Wrap(err, "list city_zones")
	}
	return zones, nil
}

func (r *ZoneRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func ZonesFromTable(t pipeline.Table) ([]models.Zone, error) {
	zones := make([]models.Zone, 0, len(t.Rows))
	for i, row := range t.Rows {
		z, ok := row.(models.Zone)
		if !ok {
			return nil, errors.Errorf("row %d of %s is %T, not a zone", i, t.Name, row)
		}
		zones = append(zones, z)
	}
	return zones, nil
}
