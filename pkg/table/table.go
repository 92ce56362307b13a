// pkg/table/table.go

// Package table implements the in-memory column-oriented table the
// cleaning pipeline operates on. Tables are immutable: every operation
// returns a new table and leaves its input untouched.
package table

import (
	"fmt"
	"sort"
	"strings"
)

// Table is an ordered collection of equal-length series.
type Table struct {
	series []*Series
	byName map[string]int
}

// New creates a table from the given series. All series must have the
// same length and unique names.
func New(series ...*Series) (*Table, error) {
	t := &Table{
		series: make([]*Series, 0, len(series)),
		byName: make(map[string]int, len(series)),
	}
	for _, s := range series {
		if _, exists := t.byName[s.Name]; exists {
			return nil, fmt.Errorf("duplicate column name %q", s.Name)
		}
		if len(t.series) > 0 && s.Len() != t.series[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", s.Name, s.Len(), t.series[0].Len())
		}
		t.byName[s.Name] = len(t.series)
		t.series = append(t.series, s)
	}
	return t, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.series) == 0 {
		return 0
	}
	return t.series[0].Len()
}

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.series) }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.series))
	for i, s := range t.series {
		names[i] = s.Name
	}
	return names
}

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column returns the series for a column name.
func (t *Table) Column(name string) (*Series, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.series[i], true
}

// Series returns the underlying series in column order.
func (t *Table) Series() []*Series { return t.series }

// MissingColumns returns the subset of names absent from the table,
// preserving input order.
func (t *Table) MissingColumns(names []string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	series := make([]*Series, len(t.series))
	for i, s := range t.series {
		series[i] = s.clone()
	}
	out, _ := New(series...)
	return out
}

// WithSeries returns a new table with s appended, or replacing an
// existing column of the same name in place.
func (t *Table) WithSeries(s *Series) (*Table, error) {
	if t.NumCols() > 0 && s.Len() != t.NumRows() {
		return nil, fmt.Errorf("column %q has %d rows, expected %d", s.Name, s.Len(), t.NumRows())
	}
	series := make([]*Series, len(t.series))
	copy(series, t.series)
	if i, exists := t.byName[s.Name]; exists {
		series[i] = s
		return New(series...)
	}
	return New(append(series, s)...)
}

// Drop returns a new table without the named columns. Unknown names are
// ignored.
func (t *Table) Drop(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	kept := make([]*Series, 0, len(t.series))
	for _, s := range t.series {
		if !drop[s.Name] {
			kept = append(kept, s)
		}
	}
	out, _ := New(kept...)
	return out
}

// Rename returns a new table with columns renamed per mapping. Every key
// must name an existing column; a stale mapping entry is a SchemaError,
// never silently ignored.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	keys := make([]string, 0, len(mapping))
	for old := range mapping {
		keys = append(keys, old)
	}
	if missing := t.MissingColumns(sorted(keys)); len(missing) > 0 {
		return nil, NewSchemaError("rename", missing)
	}
	series := make([]*Series, len(t.series))
	for i, s := range t.series {
		if newName, ok := mapping[s.Name]; ok {
			series[i] = s.withName(newName)
		} else {
			series[i] = s
		}
	}
	return New(series...)
}

// FilterRows returns a new table keeping only rows where keep[i] is true.
func (t *Table) FilterRows(keep []bool) *Table {
	series := make([]*Series, len(t.series))
	for i, s := range t.series {
		series[i] = s.filter(keep)
	}
	out, _ := New(series...)
	return out
}

// RowKey builds a composite key over the named columns for row i. Values
// are tagged with their type so "1" (string) and 1 (int) never collide,
// and null is distinct from every value. Strings are length-prefixed so
// a value containing the separator cannot bleed into the next column.
func (t *Table) RowKey(i int, columns []string) string {
	var sb strings.Builder
	for _, name := range columns {
		s, ok := t.Column(name)
		if !ok {
			continue
		}
		v := s.Value(i)
		switch val := v.(type) {
		case nil:
			sb.WriteString("~|")
		case int64:
			fmt.Fprintf(&sb, "i%d|", val)
		case float64:
			fmt.Fprintf(&sb, "f%v|", val)
		case bool:
			fmt.Fprintf(&sb, "b%t|", val)
		case string:
			fmt.Fprintf(&sb, "s%d:%s|", len(val), val)
		default:
			fmt.Fprintf(&sb, "?%v|", val)
		}
	}
	return sb.String()
}

func sorted(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}
