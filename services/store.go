package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cityflow/datagen/config"
	"cityflow/datagen/models"
	"cityflow/datagen/pipeline"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Store bulk-loads reading tables into PostgreSQL with COPY. Each export
// replaces the previous contents of the table.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewStore(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		return nil, pipeline.Missing("postgres", "check DB_DSN or the [database] section", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, pipeline.Missing("postgres", "start PostgreSQL/TimescaleDB or set DB_DSN", err)
	}
	log.Info("postgres connected", zap.String("host", pool.Config().ConnConfig.Host))
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Name() string { return "postgres" }

func (s *Store) Export(ctx context.Context, t pipeline.Table) error {
	// Zones go through ZoneRepository.
	if t.Name == models.ZonesDataset || len(t.Rows) == 0 {
		return nil
	}

	ddl, err := CreateTableSQL(t)
	if err != nil {
		return err
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, ddl); err != nil {
		return errors.Wrapf(err, "create table %s", t.Name)
	}
	if _, err := tx.Exec(ctx, "TRUNCATE "+pgx.Identifier{t.Name}.Sanitize()); err != nil {
		return errors.Wrapf(err, "truncate %s", t.Name)
	}

	rows := t.Rows
	n, err := tx.CopyFrom(ctx, pgx.Identifier{t.Name}, t.Columns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return rows[i].Values(), nil
		}),
	)
	if err != nil {
		return errors.Wrapf(err, "copy into %s", t.Name)
	}
	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit")
	}
	s.log.Info("copied rows into postgres", zap.String("table", t.Name), zap.Int64("rows", n))
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// CreateTableSQL derives a CREATE TABLE IF NOT EXISTS statement from the
// value types of the first row.
func CreateTableSQL(t pipeline.Table) (string, error) {
	if len(t.Rows) == 0 {
		return "", errors.Errorf("table %s has no rows to infer a schema from", t.Name)
	}
	values := t.Rows[0].Values()
	if len(values) != len(t.Columns) {
		return "", errors.Errorf("table %s: %d columns, %d values", t.Name, len(t.Columns), len(values))
	}

	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		typ, err := ColumnType(values[i])
		if err != nil {
			return "", errors.Wrapf(err, "column %s", col)
		}
		defs[i] = pgx.Identifier{col}.Sanitize() + " " + typ + " NOT NULL"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{t.Name}.Sanitize(), strings.Join(defs, ", ")), nil
}

func ColumnType(v any) (string, error) {
	switch v.(type) {
	case string:
		return "TEXT", nil
	case int:
		return "INTEGER", nil
	case int64:
		return "BIGINT", nil
	case float64:
		return "DOUBLE PRECISION", nil
	case time.Time:
		return "TIMESTAMPTZ", nil
	default:
		return "", errors.Errorf("unsupported value type %T", v)
	}
}
