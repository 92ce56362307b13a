// pkg/cleaner/standardize.go
package cleaner

import (
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/table"
)

// StandardizeCategories maps free-text category values to a canonical
// vocabulary. Values present as keys in valueMap are replaced; values
// absent from the map pass through unchanged (the validator rejects
// illegal leftovers downstream). The column is coerced to a categorical
// representation afterwards. Returns the number of values actually
// changed.
func (c *Cleaner) StandardizeCategories(t *table.Table, column string, valueMap map[string]string) (*table.Table, int, error) {
	c.logger.Info("Standardizing category values", zap.String("column", column))

	s, ok := t.Column(column)
	if !ok {
		return nil, 0, table.NewSchemaError("standardize", []string{column})
	}

	changed := 0
	values := make([]any, s.Len())
	for i := 0; i < s.Len(); i++ {
		v := s.Value(i)
		if v == nil {
			continue
		}
		raw, isString := v.(string)
		if !isString {
			values[i] = v
			continue
		}
		if canonical, mapped := valueMap[raw]; mapped && canonical != raw {
			values[i] = canonical
			changed++
		} else {
			values[i] = raw
		}
	}

	out, err := t.WithSeries(table.NewSeries(column, table.TypeCategory, values))
	if err != nil {
		return nil, 0, err
	}

	c.logger.Info("Standardized category values",
		zap.String("column", column),
		zap.Int("changed", changed))
	return out, changed, nil
}
