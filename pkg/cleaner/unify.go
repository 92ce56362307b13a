// pkg/cleaner/unify.go
package cleaner

import (
	"fmt"

	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/table"
)

// SourceTableColumn is the provenance column injected during
// unification, recording which raw table each row came from.
const SourceTableColumn = "source_table"

// UnifyInput is one table entering unification, together with its
// discriminator value (profession or institution category) and its
// provenance identifier.
type UnifyInput struct {
	Table         *table.Table
	Discriminator string
	Source        string
}

// Unify concatenates the inputs into one long table. Each input gains a
// literal discriminator column and a source_table provenance column;
// columns present in some inputs but not others are padded with nulls,
// typed to match their first occurrence. Row order is preserved within
// each input and inputs are concatenated in list order.
func (c *Cleaner) Unify(discriminatorColumn string, inputs []UnifyInput) (*table.Table, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("unify: no input tables")
	}

	totalInput := 0
	for _, in := range inputs {
		totalInput += in.Table.NumRows()
	}
	c.logger.Info("Unifying tables",
		zap.String("discriminator", discriminatorColumn),
		zap.Int("tables", len(inputs)),
		zap.Int("inputRows", totalInput))

	// Column union across all inputs, in first-seen order, with the
	// discriminator and provenance columns appended last.
	var unionOrder []string
	unionType := make(map[string]table.Type)
	for _, in := range inputs {
		for _, s := range in.Table.Series() {
			if _, seen := unionType[s.Name]; !seen {
				unionOrder = append(unionOrder, s.Name)
				unionType[s.Name] = s.Type
			}
		}
	}
	unionOrder = append(unionOrder, discriminatorColumn, SourceTableColumn)
	unionType[discriminatorColumn] = table.TypeString
	unionType[SourceTableColumn] = table.TypeString

	// Build output column by column, concatenating per input.
	columns := make(map[string][]any, len(unionOrder))
	for _, name := range unionOrder {
		columns[name] = make([]any, 0, totalInput)
	}
	for _, in := range inputs {
		n := in.Table.NumRows()
		for _, name := range unionOrder {
			switch name {
			case discriminatorColumn:
				for i := 0; i < n; i++ {
					columns[name] = append(columns[name], in.Discriminator)
				}
			case SourceTableColumn:
				for i := 0; i < n; i++ {
					columns[name] = append(columns[name], in.Source)
				}
			default:
				if s, ok := in.Table.Column(name); ok {
					for i := 0; i < n; i++ {
						columns[name] = append(columns[name], s.Value(i))
					}
				} else {
					for i := 0; i < n; i++ {
						columns[name] = append(columns[name], nil)
					}
				}
			}
		}
	}

	series := make([]*table.Series, len(unionOrder))
	for i, name := range unionOrder {
		series[i] = table.NewSeries(name, unionType[name], columns[name])
	}
	unified, err := table.New(series...)
	if err != nil {
		return nil, fmt.Errorf("unify: %w", err)
	}

	// A row count mismatch here is a concatenation bug, not bad data.
	if unified.NumRows() != totalInput {
		return nil, fmt.Errorf("unify: row count mismatch: input=%d output=%d", totalInput, unified.NumRows())
	}

	c.logger.Info("Unified tables",
		zap.Int("rows", unified.NumRows()),
		zap.Int("columns", unified.NumCols()))
	return unified, nil
}
