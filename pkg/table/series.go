// pkg/table/series.go
package table

// Series is a single named column. Values are held as any with nil
// marking a null; non-null payloads are int64, float64, bool or string
// according to the series type.
type Series struct {
	Name   string
	Type   Type
	values []any
}

// NewSeries creates a series from a value slice. The slice is used as-is;
// callers must not retain it.
func NewSeries(name string, t Type, values []any) *Series {
	return &Series{Name: name, Type: t, values: values}
}

// NewNullSeries creates a series of n nulls, typed to match a column
// present in another table (used when padding schemas during unification).
func NewNullSeries(name string, t Type, n int) *Series {
	return &Series{Name: name, Type: t, values: make([]any, n)}
}

// Len returns the number of values including nulls.
func (s *Series) Len() int { return len(s.values) }

// Value returns the value at index i (nil for null).
func (s *Series) Value(i int) any { return s.values[i] }

// IsNull reports whether the value at index i is null.
func (s *Series) IsNull(i int) bool { return s.values[i] == nil }

// NullCount returns the number of null values.
func (s *Series) NullCount() int {
	n := 0
	for _, v := range s.values {
		if v == nil {
			n++
		}
	}
	return n
}

// Floats returns the non-null values converted to float64, in row order.
// Only valid for int and float series.
func (s *Series) Floats() []float64 {
	out := make([]float64, 0, len(s.values))
	for _, v := range s.values {
		switch val := v.(type) {
		case int64:
			out = append(out, float64(val))
		case float64:
			out = append(out, val)
		}
	}
	return out
}

// clone returns a deep copy of the series.
func (s *Series) clone() *Series {
	values := make([]any, len(s.values))
	copy(values, s.values)
	return &Series{Name: s.Name, Type: s.Type, values: values}
}

// withName returns a copy of the series under a new name.
func (s *Series) withName(name string) *Series {
	c := s.clone()
	c.Name = name
	return c
}

// filter returns a copy containing only rows where keep[i] is true.
func (s *Series) filter(keep []bool) *Series {
	values := make([]any, 0, len(s.values))
	for i, v := range s.values {
		if keep[i] {
			values = append(values, v)
		}
	}
	return &Series{Name: s.Name, Type: s.Type, values: values}
}
