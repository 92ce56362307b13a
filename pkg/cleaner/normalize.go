// pkg/cleaner/normalize.go
package cleaner

import (
	"sort"

	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/table"
)

// Rename renames raw columns to their canonical names. Every key in the
// mapping must exist in the table; a stale mapping entry fails with a
// SchemaError naming the missing columns. Row order and all other
// columns are untouched.
func (c *Cleaner) Rename(t *table.Table, mapping map[string]string) (*table.Table, error) {
	c.logger.Info("Standardizing column names", zap.Int("mappings", len(mapping)))

	renamed, err := t.Rename(mapping)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Renamed columns", zap.Strings("columns", renamed.Columns()))
	return renamed, nil
}

// RenamePresent applies only the mapping entries whose source column
// exists in the table. Used when one shared mapping covers several
// source files with differing schemas.
func (c *Cleaner) RenamePresent(t *table.Table, mapping map[string]string) (*table.Table, error) {
	present := make(map[string]string)
	for old, canonical := range mapping {
		if t.HasColumn(old) {
			present[old] = canonical
		}
	}
	if len(present) == 0 {
		return t, nil
	}
	return c.Rename(t, present)
}

// Cast converts columns to the given target types. Casting is
// non-strict: a value that cannot convert becomes null rather than
// failing, and the number of nulled values is reported per column for
// the quality report. An entirely absent column is a SchemaError.
func (c *Cleaner) Cast(t *table.Table, types map[string]table.Type) (*table.Table, map[string]int, error) {
	c.logger.Info("Converting data types", zap.Int("columns", len(types)))

	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)

	if missing := t.MissingColumns(names); len(missing) > 0 {
		return nil, nil, table.NewSchemaError("cast", missing)
	}

	failed := make(map[string]int)
	out := t
	for _, name := range names {
		target := types[name]
		s, _ := out.Column(name)

		values := make([]any, s.Len())
		for i := 0; i < s.Len(); i++ {
			v, err := table.Coerce(s.Value(i), target)
			if err != nil {
				failed[name]++
				continue // leave null
			}
			values[i] = v
		}

		var err error
		out, err = out.WithSeries(table.NewSeries(name, target, values))
		if err != nil {
			return nil, nil, err
		}

		if n := failed[name]; n > 0 {
			c.logger.Warn("Values failed conversion and were nulled",
				zap.String("column", name),
				zap.String("targetType", target.String()),
				zap.Int("failed", n))
		} else {
			c.logger.Debug("Converted column",
				zap.String("column", name),
				zap.String("targetType", target.String()))
		}
	}

	return out, failed, nil
}
