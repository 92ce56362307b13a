// pkg/sink/sink.go

// Package sink persists the canonical cleaned tables. Parquet is the
// primary columnar output; Postgres is an optional secondary sink
// enabled by configuring a DSN.
package sink

import (
	"context"

	"workforce-capacity-etl/pkg/model"
)

// Sink writes canonical records to a persistent store.
type Sink interface {
	// WriteWorkforce persists the cleaned workforce records
	WriteWorkforce(ctx context.Context, records []model.WorkforceRecord) error

	// WriteCapacity persists the cleaned capacity records
	WriteCapacity(ctx context.Context, records []model.CapacityRecord) error

	// Close releases any resources held by the sink
	Close() error
}
