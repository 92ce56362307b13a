// pkg/cleaner/dedupe.go
package cleaner

import (
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/config"
	"workforce-capacity-etl/pkg/table"
)

// Keep selects which member of a duplicate group survives.
type Keep int

const (
	// KeepFirst retains the first row of each duplicate group.
	KeepFirst Keep = iota
	// KeepLast retains the last row of each duplicate group.
	KeepLast
	// KeepNone removes every member of a duplicate group; only rows
	// that were unique to begin with survive.
	KeepNone
)

// String returns the configuration name of the policy.
func (k Keep) String() string {
	switch k {
	case KeepFirst:
		return "first"
	case KeepLast:
		return "last"
	case KeepNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseKeep converts a configuration name into a Keep policy.
func ParseKeep(name string) (Keep, error) {
	switch name {
	case "first":
		return KeepFirst, nil
	case "last":
		return KeepLast, nil
	case "none":
		return KeepNone, nil
	default:
		return KeepFirst, config.NewConfigError("cleaning_strategies.duplicates.keep",
			"invalid keep policy %q (valid: first, last, none)", name)
	}
}

// Dedupe removes exact-duplicate rows over the subset columns (all
// columns when subset is empty) and reports the count removed. Row
// order among survivors is preserved.
func (c *Cleaner) Dedupe(t *table.Table, subset []string, keep Keep) (int, *table.Table, error) {
	if len(subset) == 0 {
		subset = t.Columns()
	} else if missing := t.MissingColumns(subset); len(missing) > 0 {
		return 0, nil, table.NewSchemaError("dedupe", missing)
	}

	c.logger.Info("Detecting duplicates",
		zap.Strings("subset", subset),
		zap.String("keep", keep.String()))

	totalRows := t.NumRows()
	groupSize := make(map[string]int, totalRows)
	for i := 0; i < totalRows; i++ {
		groupSize[t.RowKey(i, subset)]++
	}

	keepRow := make([]bool, totalRows)
	switch keep {
	case KeepFirst:
		seen := make(map[string]bool, len(groupSize))
		for i := 0; i < totalRows; i++ {
			key := t.RowKey(i, subset)
			if !seen[key] {
				seen[key] = true
				keepRow[i] = true
			}
		}
	case KeepLast:
		seen := make(map[string]bool, len(groupSize))
		for i := totalRows - 1; i >= 0; i-- {
			key := t.RowKey(i, subset)
			if !seen[key] {
				seen[key] = true
				keepRow[i] = true
			}
		}
	case KeepNone:
		for i := 0; i < totalRows; i++ {
			keepRow[i] = groupSize[t.RowKey(i, subset)] == 1
		}
	}

	deduped := t.FilterRows(keepRow)
	removed := totalRows - deduped.NumRows()

	if removed > 0 {
		pct := float64(removed) / float64(totalRows) * 100
		c.logger.Warn("Removed duplicate rows",
			zap.Int("removed", removed),
			zap.Float64("removedPct", pct))
	} else {
		c.logger.Info("No duplicate rows found")
	}

	return removed, deduped, nil
}
