// pkg/table/table_test.go
package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(
		NewSeries("year", TypeInt, []any{int64(2018)}),
		NewSeries("year", TypeInt, []any{int64(2019)}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "year")
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	_, err := New(
		NewSeries("a", TypeInt, []any{int64(1), int64(2)}),
		NewSeries("b", TypeInt, []any{int64(1)}),
	)
	require.Error(t, err)
}

func TestRenameMissingColumn(t *testing.T) {
	tbl, err := New(NewSeries("a", TypeString, []any{"x"}))
	require.NoError(t, err)

	_, err = tbl.Rename(map[string]string{"nope": "b"})
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"nope"}, schemaErr.Missing)
}

func TestRenamePreservesData(t *testing.T) {
	tbl, err := New(
		NewSeries("old", TypeInt, []any{int64(1), nil, int64(3)}),
		NewSeries("keep", TypeString, []any{"a", "b", "c"}),
	)
	require.NoError(t, err)

	renamed, err := tbl.Rename(map[string]string{"old": "new"})
	require.NoError(t, err)

	assert.False(t, renamed.HasColumn("old"))
	s, ok := renamed.Column("new")
	require.True(t, ok)
	assert.Equal(t, int64(1), s.Value(0))
	assert.True(t, s.IsNull(1))

	// The original is untouched.
	assert.True(t, tbl.HasColumn("old"))
}

func TestMissingColumnsPreservesOrder(t *testing.T) {
	tbl, err := New(NewSeries("b", TypeString, []any{"x"}))
	require.NoError(t, err)

	missing := tbl.MissingColumns([]string{"c", "b", "a"})
	assert.Equal(t, []string{"c", "a"}, missing)
}

func TestRowKeyDistinguishesTypes(t *testing.T) {
	tbl, err := New(
		NewSeries("v", TypeString, []any{"1"}),
	)
	require.NoError(t, err)
	tbl2, err := New(
		NewSeries("v", TypeInt, []any{int64(1)}),
	)
	require.NoError(t, err)

	// The string "1" and the integer 1 must never produce the same key.
	assert.NotEqual(t, tbl.RowKey(0, []string{"v"}), tbl2.RowKey(0, []string{"v"}))
}

func TestRowKeyNulls(t *testing.T) {
	tbl, err := New(
		NewSeries("a", TypeString, []any{nil, ""}),
	)
	require.NoError(t, err)
	assert.NotEqual(t, tbl.RowKey(0, []string{"a"}), tbl.RowKey(1, []string{"a"}))
}

func TestRowKeySeparatorInValues(t *testing.T) {
	// Values containing the separator must not shift content across
	// column boundaries: ("x|sy","z") and ("x","y|sz") are distinct rows.
	tbl, err := New(
		NewSeries("a", TypeString, []any{"x|sy", "x"}),
		NewSeries("b", TypeString, []any{"z", "y|sz"}),
	)
	require.NoError(t, err)
	assert.NotEqual(t, tbl.RowKey(0, []string{"a", "b"}), tbl.RowKey(1, []string{"a", "b"}))
}

func TestFilterRows(t *testing.T) {
	tbl, err := New(
		NewSeries("n", TypeInt, []any{int64(1), int64(2), int64(3)}),
	)
	require.NoError(t, err)

	filtered := tbl.FilterRows([]bool{true, false, true})
	require.Equal(t, 2, filtered.NumRows())
	s, _ := filtered.Column("n")
	assert.Equal(t, int64(1), s.Value(0))
	assert.Equal(t, int64(3), s.Value(1))
}

func TestWithSeriesReplacesInPlace(t *testing.T) {
	tbl, err := New(
		NewSeries("a", TypeInt, []any{int64(1)}),
		NewSeries("b", TypeInt, []any{int64(2)}),
	)
	require.NoError(t, err)

	replaced, err := tbl.WithSeries(NewSeries("a", TypeString, []any{"x"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, replaced.Columns())
	s, _ := replaced.Column("a")
	assert.Equal(t, TypeString, s.Type)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		target  Type
		want    any
		wantErr bool
	}{
		{"nil stays nil", nil, TypeInt, nil, false},
		{"string to int", "2,018", TypeInt, int64(2018), false},
		{"integral float to int", 42.0, TypeInt, int64(42), false},
		{"fractional float to int", 42.5, TypeInt, nil, true},
		{"garbage to int", "n.a.", TypeInt, nil, true},
		{"string to float", "3.14", TypeFloat, 3.14, false},
		{"yes to bool", "Yes", TypeBool, true, false},
		{"zero to bool", "0", TypeBool, false, false},
		{"int to category", int64(7), TypeCategory, "7", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.in, tt.target)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeriesFloats(t *testing.T) {
	s := NewSeries("v", TypeInt, []any{int64(1), nil, 2.5, int64(3)})
	assert.Equal(t, []float64{1, 2.5, 3}, s.Floats())
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("category")
	require.NoError(t, err)
	assert.Equal(t, TypeCategory, typ)

	_, err = ParseType("decimal")
	require.Error(t, err)
}
