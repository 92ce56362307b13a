// pkg/cleaner/missing.go
package cleaner

import (
	"fmt"

	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/config"
	"workforce-capacity-etl/pkg/table"
)

// HasMissingColumn is the boolean column added by the flag strategy.
const HasMissingColumn = "has_missing_values"

// MissingStrategy selects how rows or columns with nulls are handled.
type MissingStrategy int

const (
	// StrategyFlag adds a has_missing_values column; non-destructive.
	StrategyFlag MissingStrategy = iota
	// StrategyDropRows removes every row containing at least one null.
	StrategyDropRows
	// StrategyDropCols removes columns whose null percentage exceeds
	// the drop threshold.
	StrategyDropCols
)

// String returns the configuration name of the strategy.
func (s MissingStrategy) String() string {
	switch s {
	case StrategyFlag:
		return "flag"
	case StrategyDropRows:
		return "drop_rows"
	case StrategyDropCols:
		return "drop_cols"
	default:
		return "unknown"
	}
}

// ParseMissingStrategy converts a configuration name into a strategy.
// Unknown names are a configuration error, never a silent default.
func ParseMissingStrategy(name string) (MissingStrategy, error) {
	switch name {
	case "flag":
		return StrategyFlag, nil
	case "drop_rows":
		return StrategyDropRows, nil
	case "drop_cols":
		return StrategyDropCols, nil
	default:
		return StrategyFlag, config.NewConfigError("cleaning_strategies.missing_values.strategy",
			"invalid strategy %q (valid: flag, drop_rows, drop_cols)", name)
	}
}

// ColumnStats summarizes null occurrence for one column.
type ColumnStats struct {
	Type           table.Type
	NullCount      int
	NullPercentage float64
	NonNullCount   int
}

// MissingAnalysis is the per-column null summary plus the overall
// cell-level completeness percentage.
type MissingAnalysis struct {
	Columns      map[string]ColumnStats
	TotalRows    int
	Completeness float64
}

// AnalyzeMissing computes per-column null statistics. Purely
// observational; the table is not modified.
func (c *Cleaner) AnalyzeMissing(t *table.Table) MissingAnalysis {
	c.logger.Info("Analyzing missing value patterns")

	totalRows := t.NumRows()
	analysis := MissingAnalysis{
		Columns:   make(map[string]ColumnStats, t.NumCols()),
		TotalRows: totalRows,
	}

	totalNulls := 0
	for _, s := range t.Series() {
		nulls := s.NullCount()
		totalNulls += nulls
		pct := 0.0
		if totalRows > 0 {
			pct = float64(nulls) / float64(totalRows) * 100
		}
		analysis.Columns[s.Name] = ColumnStats{
			Type:           s.Type,
			NullCount:      nulls,
			NullPercentage: pct,
			NonNullCount:   totalRows - nulls,
		}
		if nulls > 0 {
			c.logger.Warn("Column contains nulls",
				zap.String("column", s.Name),
				zap.Int("nullCount", nulls),
				zap.Float64("nullPct", pct))
		}
	}

	totalCells := totalRows * t.NumCols()
	analysis.Completeness = 100.0
	if totalCells > 0 {
		analysis.Completeness = float64(totalCells-totalNulls) / float64(totalCells) * 100
	}
	c.logger.Info("Missing value analysis complete",
		zap.Float64("completenessPct", analysis.Completeness))
	return analysis
}

// HandleMissing applies the chosen missing-value strategy. The flag
// strategy never changes row or column counts; drop_rows removes rows
// with any null; drop_cols removes columns whose null percentage
// exceeds dropThreshold, but never all of them.
func (c *Cleaner) HandleMissing(t *table.Table, strategy MissingStrategy, dropThreshold float64) (*table.Table, error) {
	c.logger.Info("Handling missing values", zap.String("strategy", strategy.String()))

	totalRows := t.NumRows()

	switch strategy {
	case StrategyFlag:
		flags := make([]any, totalRows)
		flagged := 0
		for i := 0; i < totalRows; i++ {
			hasNull := false
			for _, s := range t.Series() {
				if s.IsNull(i) {
					hasNull = true
					break
				}
			}
			flags[i] = hasNull
			if hasNull {
				flagged++
			}
		}
		out, err := t.WithSeries(table.NewSeries(HasMissingColumn, table.TypeBool, flags))
		if err != nil {
			return nil, err
		}
		c.logger.Info("Flagged rows with missing values", zap.Int("flagged", flagged))
		return out, nil

	case StrategyDropRows:
		keep := make([]bool, totalRows)
		for i := 0; i < totalRows; i++ {
			keep[i] = true
			for _, s := range t.Series() {
				if s.IsNull(i) {
					keep[i] = false
					break
				}
			}
		}
		out := t.FilterRows(keep)
		dropped := totalRows - out.NumRows()
		dropPct := 0.0
		if totalRows > 0 {
			dropPct = float64(dropped) / float64(totalRows) * 100
		}
		c.logger.Warn("Dropped rows with null values",
			zap.Int("dropped", dropped),
			zap.Float64("droppedPct", dropPct))
		return out, nil

	case StrategyDropCols:
		var toDrop []string
		for _, s := range t.Series() {
			pct := 0.0
			if totalRows > 0 {
				pct = float64(s.NullCount()) / float64(totalRows) * 100
			}
			if pct > dropThreshold {
				toDrop = append(toDrop, s.Name)
				c.logger.Warn("Dropping column over null threshold",
					zap.String("column", s.Name),
					zap.Float64("nullPct", pct),
					zap.Float64("threshold", dropThreshold))
			}
		}
		if len(toDrop) == 0 {
			c.logger.Info("No columns exceed null threshold", zap.Float64("threshold", dropThreshold))
			return t, nil
		}
		// Dropping every column would collapse the table to zero rows.
		if len(toDrop) == t.NumCols() {
			return nil, fmt.Errorf("every column exceeds the %.1f%% null threshold, refusing to drop all %d columns",
				dropThreshold, t.NumCols())
		}
		return t.Drop(toDrop...), nil

	default:
		return nil, config.NewConfigError("cleaning_strategies.missing_values.strategy",
			"invalid strategy %d (valid: flag, drop_rows, drop_cols)", strategy)
	}
}
