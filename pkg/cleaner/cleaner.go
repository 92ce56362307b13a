// pkg/cleaner/cleaner.go

// Package cleaner implements the table transformation stages of the
// cleaning pipeline: column normalization, table unification, category
// standardization, missing-value handling, duplicate removal and
// outlier flagging. Every stage consumes a table and returns a new one;
// value-level anomalies are counted and surfaced, never silently
// dropped.
package cleaner

import (
	"errors"

	"go.uber.org/zap"
)

// Cleaner runs the individual cleaning stages.
type Cleaner struct {
	logger *zap.Logger
}

// New creates a Cleaner.
func New(logger *zap.Logger) (*Cleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Cleaner{logger: logger}, nil
}
