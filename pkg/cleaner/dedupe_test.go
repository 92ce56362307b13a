// pkg/cleaner/dedupe_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-capacity-etl/pkg/config"
	"workforce-capacity-etl/pkg/table"
)

func dedupeFixture(t *testing.T) *table.Table {
	t.Helper()
	// Rows 0 and 2 duplicate each other on every column; row 1 is unique.
	return mustTable(t,
		table.NewSeries("year", table.TypeInt, []any{int64(2018), int64(2018), int64(2018)}),
		table.NewSeries("sector", table.TypeCategory, []any{"Public", "Private", "Public"}),
		table.NewSeries("count", table.TypeInt, []any{int64(100), int64(100), int64(100)}),
	)
}

func TestDedupeKeepFirst(t *testing.T) {
	c := newTestCleaner(t)

	removed, out, err := c.Dedupe(dedupeFixture(t), []string{"year", "sector", "count"}, KeepFirst)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Equal(t, 2, out.NumRows())

	sector, _ := out.Column("sector")
	assert.Equal(t, "Public", sector.Value(0))
	assert.Equal(t, "Private", sector.Value(1))

	// Second pass finds nothing.
	removed, out, err = c.Dedupe(out, []string{"year", "sector", "count"}, KeepFirst)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, out.NumRows())
}

func TestDedupeKeepLast(t *testing.T) {
	c := newTestCleaner(t)

	in := mustTable(t,
		table.NewSeries("year", table.TypeInt, []any{int64(2018), int64(2018), int64(2019)}),
		table.NewSeries("count", table.TypeInt, []any{int64(100), int64(200), int64(300)}),
	)
	removed, out, err := c.Dedupe(in, []string{"year"}, KeepLast)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	require.Equal(t, 2, out.NumRows())

	count, _ := out.Column("count")
	assert.Equal(t, int64(200), count.Value(0), "keep=last retains the later 2018 row")
	assert.Equal(t, int64(300), count.Value(1))
}

func TestDedupeKeepNone(t *testing.T) {
	c := newTestCleaner(t)

	removed, out, err := c.Dedupe(dedupeFixture(t), []string{"year", "sector", "count"}, KeepNone)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	require.Equal(t, 1, out.NumRows())

	sector, _ := out.Column("sector")
	assert.Equal(t, "Private", sector.Value(0))
}

func TestDedupeEmptySubsetUsesAllColumns(t *testing.T) {
	c := newTestCleaner(t)

	removed, out, err := c.Dedupe(dedupeFixture(t), nil, KeepFirst)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, out.NumRows())
}

func TestDedupeMissingSubsetColumn(t *testing.T) {
	c := newTestCleaner(t)

	_, _, err := c.Dedupe(dedupeFixture(t), []string{"year", "profession"}, KeepFirst)
	var schemaErr *table.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"profession"}, schemaErr.Missing)
}

func TestDedupeSeparatorValuesStayDistinct(t *testing.T) {
	c := newTestCleaner(t)

	// Composite keys over values containing the key separator must not
	// collide across columns; both rows are distinct and must survive.
	in := mustTable(t,
		table.NewSeries("institution_type", table.TypeString, []any{"x|sy", "x"}),
		table.NewSeries("sector", table.TypeString, []any{"z", "y|sz"}),
	)
	removed, out, err := c.Dedupe(in, []string{"institution_type", "sector"}, KeepFirst)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, out.NumRows())
}

func TestDedupeNullsCompareEqual(t *testing.T) {
	c := newTestCleaner(t)

	in := mustTable(t,
		table.NewSeries("year", table.TypeInt, []any{int64(2018), int64(2018)}),
		table.NewSeries("nurse_type", table.TypeCategory, []any{nil, nil}),
	)
	removed, out, err := c.Dedupe(in, []string{"year", "nurse_type"}, KeepFirst)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, out.NumRows())
}

func TestParseKeep(t *testing.T) {
	for _, name := range []string{"first", "last", "none"} {
		keep, err := ParseKeep(name)
		require.NoError(t, err)
		assert.Equal(t, name, keep.String())
	}

	_, err := ParseKeep("any")
	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
