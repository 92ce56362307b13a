// pkg/cleaner/outliers.go
package cleaner

import (
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"workforce-capacity-etl/pkg/config"
	"workforce-capacity-etl/pkg/table"
)

// OutlierFlagColumn is the combined boolean flag added by FlagOutliers.
const OutlierFlagColumn = "outlier_flag"

// OutlierMethod selects the outlier detection method.
type OutlierMethod int

const (
	// MethodZScore flags values more than threshold standard
	// deviations from the column mean.
	MethodZScore OutlierMethod = iota
	// MethodIQR flags values outside [Q1 - threshold*IQR, Q3 + threshold*IQR].
	MethodIQR
)

// String returns the configuration name of the method.
func (m OutlierMethod) String() string {
	switch m {
	case MethodZScore:
		return "zscore"
	case MethodIQR:
		return "iqr"
	default:
		return "unknown"
	}
}

// ParseOutlierMethod converts a configuration name into a method.
func ParseOutlierMethod(name string) (OutlierMethod, error) {
	switch name {
	case "zscore":
		return MethodZScore, nil
	case "iqr":
		return MethodIQR, nil
	default:
		return MethodZScore, config.NewConfigError("cleaning_strategies.outliers.method",
			"invalid method %q (valid: zscore, iqr)", name)
	}
}

// OutlierColumnName returns the per-column flag name for col.
func OutlierColumnName(col string) string { return col + "_outlier" }

// FlagOutliers adds one boolean {col}_outlier column per numeric input
// column, plus a combined outlier_flag column that is the logical OR
// across them. Statistics are computed over the entire column. A column
// with zero spread flags nothing. Columns absent from the table are
// skipped with a warning; they indicate a stage input mismatch, not a
// structural schema violation. Null cells are never flagged.
func (c *Cleaner) FlagOutliers(t *table.Table, numericColumns []string, threshold float64, method OutlierMethod) (*table.Table, error) {
	c.logger.Info("Detecting outliers",
		zap.Strings("columns", numericColumns),
		zap.Float64("threshold", threshold),
		zap.String("method", method.String()))

	out := t
	var flagColumns []string

	for _, col := range numericColumns {
		s, ok := out.Column(col)
		if !ok {
			c.logger.Warn("Column not found, skipping outlier detection", zap.String("column", col))
			continue
		}

		isOutlier, err := c.outlierMask(s, threshold, method)
		if err != nil {
			return nil, err
		}

		flagCol := OutlierColumnName(col)
		flags := make([]any, len(isOutlier))
		count := 0
		for i, v := range isOutlier {
			flags[i] = v
			if v {
				count++
			}
		}
		out, err = out.WithSeries(table.NewSeries(flagCol, table.TypeBool, flags))
		if err != nil {
			return nil, err
		}
		flagColumns = append(flagColumns, flagCol)

		if count > 0 {
			pct := float64(count) / float64(t.NumRows()) * 100
			c.logger.Info("Flagged outliers",
				zap.String("column", col),
				zap.Int("outliers", count),
				zap.Float64("outlierPct", pct))
		}
	}

	// Combined flag: OR across all per-column flags.
	if len(flagColumns) > 0 {
		combined := make([]any, out.NumRows())
		total := 0
		for i := 0; i < out.NumRows(); i++ {
			flagged := false
			for _, flagCol := range flagColumns {
				s, _ := out.Column(flagCol)
				if v, ok := s.Value(i).(bool); ok && v {
					flagged = true
					break
				}
			}
			combined[i] = flagged
			if flagged {
				total++
			}
		}
		var err error
		out, err = out.WithSeries(table.NewSeries(OutlierFlagColumn, table.TypeBool, combined))
		if err != nil {
			return nil, err
		}
		c.logger.Info("Combined outlier flag computed", zap.Int("flaggedRows", total))
	}

	return out, nil
}

// outlierMask computes the per-row outlier decision for one column.
func (c *Cleaner) outlierMask(s *table.Series, threshold float64, method OutlierMethod) ([]bool, error) {
	values := s.Floats()
	mask := make([]bool, s.Len())
	if len(values) == 0 {
		return mask, nil
	}

	var lower, upper float64
	switch method {
	case MethodZScore:
		mean := stat.Mean(values, nil)
		sigma := stat.StdDev(values, nil)
		if sigma == 0 || math.IsNaN(sigma) {
			c.logger.Warn("Column has zero standard deviation, flagging nothing",
				zap.String("column", s.Name))
			return mask, nil
		}
		lower = mean - threshold*sigma
		upper = mean + threshold*sigma

	case MethodIQR:
		sorted := make([]float64, len(values))
		copy(sorted, values)
		sort.Float64s(sorted)
		q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
		q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
		iqr := q3 - q1
		if iqr == 0 {
			c.logger.Warn("Column has zero IQR, flagging nothing",
				zap.String("column", s.Name))
			return mask, nil
		}
		lower = q1 - threshold*iqr
		upper = q3 + threshold*iqr

	default:
		return nil, config.NewConfigError("cleaning_strategies.outliers.method",
			"invalid method %d (valid: zscore, iqr)", method)
	}

	for i := 0; i < s.Len(); i++ {
		switch v := s.Value(i).(type) {
		case int64:
			mask[i] = float64(v) < lower || float64(v) > upper
		case float64:
			mask[i] = v < lower || v > upper
		}
	}
	return mask, nil
}
