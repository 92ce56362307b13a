// pkg/cleaner/standardize_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-capacity-etl/pkg/table"
)

var sectorMap = map[string]string{
	"Public Sector":  "Public",
	"Private Sector": "Private",
}

func TestStandardizeCategoriesMapsKnownValues(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, table.NewSeries("sector", table.TypeString,
		[]any{"Public Sector", "Private Sector", "Public", nil}))

	out, changed, err := c.StandardizeCategories(in, "sector", sectorMap)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	s, _ := out.Column("sector")
	assert.Equal(t, table.TypeCategory, s.Type)
	assert.Equal(t, "Public", s.Value(0))
	assert.Equal(t, "Private", s.Value(1))
	assert.Equal(t, "Public", s.Value(2))
	assert.True(t, s.IsNull(3))
}

func TestStandardizeCategoriesUnmappedPassThrough(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, table.NewSeries("sector", table.TypeString,
		[]any{"Not-for-Profit", "Mixed"}))

	out, changed, err := c.StandardizeCategories(in, "sector", sectorMap)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	s, _ := out.Column("sector")
	assert.Equal(t, "Not-for-Profit", s.Value(0))
	assert.Equal(t, "Mixed", s.Value(1))
}

func TestStandardizeCategoriesIdempotent(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, table.NewSeries("sector", table.TypeString,
		[]any{"Public Sector", "Private Sector"}))

	once, changed, err := c.StandardizeCategories(in, "sector", sectorMap)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	twice, changed, err := c.StandardizeCategories(once, "sector", sectorMap)
	require.NoError(t, err)
	assert.Equal(t, 0, changed)

	s1, _ := once.Column("sector")
	s2, _ := twice.Column("sector")
	for i := 0; i < s1.Len(); i++ {
		assert.Equal(t, s1.Value(i), s2.Value(i))
	}
}

func TestStandardizeCategoriesMissingColumn(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, table.NewSeries("year", table.TypeInt, []any{int64(2018)}))

	_, _, err := c.StandardizeCategories(in, "sector", sectorMap)
	var schemaErr *table.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, "sector")
}
