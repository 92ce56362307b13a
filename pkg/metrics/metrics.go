// pkg/metrics/metrics.go

// Package metrics is the downstream analytics consumer of the cleaned
// tables. It joins workforce and capacity records to compute alignment
// ratios, growth rates, and mismatch indices, and compares them against
// international benchmarks. It only reads canonical records and never
// participates in cleaning.
package metrics

import (
	"errors"

	"go.uber.org/zap"
)

// Analyzer computes workforce-capacity metrics over canonical records.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Analyzer{logger: logger}, nil
}
