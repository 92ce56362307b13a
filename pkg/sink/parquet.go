// pkg/sink/parquet.go
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/model"
)

// Output file names under the sink directory.
const (
	WorkforceFile = "workforce_clean.parquet"
	CapacityFile  = "capacity_clean.parquet"
)

// ParquetSink writes the canonical tables as parquet files into a
// single output directory.
type ParquetSink struct {
	dir    string
	logger *zap.Logger
}

// NewParquetSink creates the output directory if needed and returns a
// sink writing into it.
func NewParquetSink(dir string, logger *zap.Logger) (*ParquetSink, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &ParquetSink{dir: dir, logger: logger}, nil
}

// WriteWorkforce persists the workforce records to workforce_clean.parquet.
func (s *ParquetSink) WriteWorkforce(ctx context.Context, records []model.WorkforceRecord) error {
	return writeParquet(ctx, s.logger, filepath.Join(s.dir, WorkforceFile), records)
}

// WriteCapacity persists the capacity records to capacity_clean.parquet.
func (s *ParquetSink) WriteCapacity(ctx context.Context, records []model.CapacityRecord) error {
	return writeParquet(ctx, s.logger, filepath.Join(s.dir, CapacityFile), records)
}

// Close is a no-op; each write closes its own file.
func (s *ParquetSink) Close() error {
	return nil
}

func writeParquet[T any](ctx context.Context, logger *zap.Logger, path string, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	logger.Info("Wrote parquet file",
		zap.String("path", path),
		zap.Int("records", len(records)))
	return nil
}
