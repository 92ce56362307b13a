// pkg/sink/postgres.go
package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/model"
)

const (
	workforceTable = "workforce_clean"
	capacityTable  = "capacity_clean"

	insertTimeout = 30 * time.Second
)

// PostgresSink writes canonical records into Postgres tables. Each
// write truncates and reloads its table so a re-run replaces the
// previous load instead of appending to it.
type PostgresSink struct {
	db        *sqlx.DB
	logger    *zap.Logger
	batchSize int
}

// NewPostgresSink connects to Postgres, verifies the connection, and
// ensures the target tables exist.
func NewPostgresSink(ctx context.Context, dsn string, batchSize int, logger *zap.Logger) (*PostgresSink, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	s := &PostgresSink{db: db, logger: logger, batchSize: batchSize}
	if err := s.ensureTables(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Connected to PostgreSQL sink", zap.Int("batchSize", batchSize))
	return s, nil
}

func (s *PostgresSink) ensureTables(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + workforceTable + ` (
			year integer NOT NULL,
			sector text NOT NULL,
			profession text NOT NULL,
			count integer NOT NULL,
			specialist_category text,
			nurse_type text,
			source_table text NOT NULL,
			outlier_flag boolean NOT NULL,
			has_missing_values boolean NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + capacityTable + ` (
			year integer NOT NULL,
			institution_type text NOT NULL,
			sector text,
			institution_category text NOT NULL,
			num_facilities integer NOT NULL,
			num_beds integer,
			source_table text NOT NULL,
			outlier_flag boolean NOT NULL,
			has_missing_values boolean NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create sink table: %w", err)
		}
	}
	return nil
}

// WriteWorkforce truncates and reloads the workforce table.
func (s *PostgresSink) WriteWorkforce(ctx context.Context, records []model.WorkforceRecord) error {
	query := `INSERT INTO ` + workforceTable + `
		(year, sector, profession, count, specialist_category, nurse_type, source_table, outlier_flag, has_missing_values)
		VALUES (:year, :sector, :profession, :count, :specialist_category, :nurse_type, :source_table, :outlier_flag, :has_missing_values)`
	return load(ctx, s, workforceTable, query, records)
}

// WriteCapacity truncates and reloads the capacity table.
func (s *PostgresSink) WriteCapacity(ctx context.Context, records []model.CapacityRecord) error {
	query := `INSERT INTO ` + capacityTable + `
		(year, institution_type, sector, institution_category, num_facilities, num_beds, source_table, outlier_flag, has_missing_values)
		VALUES (:year, :institution_type, :sector, :institution_category, :num_facilities, :num_beds, :source_table, :outlier_flag, :has_missing_values)`
	return load(ctx, s, capacityTable, query, records)
}

// Close closes the database connection.
func (s *PostgresSink) Close() error {
	s.logger.Info("Closing PostgreSQL sink")
	return s.db.Close()
}

func load[T any](ctx context.Context, s *PostgresSink, tableName, query string, records []T) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE "+tableName); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", tableName, err)
	}

	for i := 0; i < len(records); i += s.batchSize {
		end := i + s.batchSize
		if end > len(records) {
			end = len(records)
		}

		batchCtx, cancel := context.WithTimeout(ctx, insertTimeout)
		_, err := tx.NamedExecContext(batchCtx, query, records[i:end])
		cancel()
		if err != nil {
			return fmt.Errorf("batch insert into %s failed at row %d: %w", tableName, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load of %s: %w", tableName, err)
	}

	s.logger.Info("Loaded table",
		zap.String("table", tableName),
		zap.Int("records", len(records)))
	return nil
}
