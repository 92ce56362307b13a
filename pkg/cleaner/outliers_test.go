// pkg/cleaner/outliers_test.go
package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-capacity-etl/pkg/config"
	"workforce-capacity-etl/pkg/table"
)

func countColumn(values ...any) *table.Series {
	return table.NewSeries("count", table.TypeInt, values)
}

func flagsOf(t *testing.T, tbl *table.Table, column string) []bool {
	t.Helper()
	s, ok := tbl.Column(column)
	require.True(t, ok, "column %s", column)
	out := make([]bool, s.Len())
	for i := range out {
		v, isBool := s.Value(i).(bool)
		require.True(t, isBool)
		out[i] = v
	}
	return out
}

func TestFlagOutliersZScore(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, countColumn(int64(100), int64(110), int64(105), int64(500), int64(115)))

	// Sample stddev is ~175.6, so 500 sits ~1.79 sigma out; threshold
	// 2.0 would flag nothing, 1.5 flags exactly the one extreme value.
	out, err := c.FlagOutliers(in, []string{"count"}, 1.5, MethodZScore)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, false, true, false}, flagsOf(t, out, OutlierColumnName("count")))
	assert.Equal(t, []bool{false, false, false, true, false}, flagsOf(t, out, OutlierFlagColumn))
}

func TestFlagOutliersIQR(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, countColumn(int64(100), int64(110), int64(105), int64(500), int64(115)))

	out, err := c.FlagOutliers(in, []string{"count"}, 1.5, MethodIQR)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, false, true, false}, flagsOf(t, out, OutlierColumnName("count")))
}

func TestFlagOutliersZeroSpreadFlagsNothing(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, countColumn(int64(42), int64(42), int64(42), int64(42)))

	for _, method := range []OutlierMethod{MethodZScore, MethodIQR} {
		out, err := c.FlagOutliers(in, []string{"count"}, 3.0, method)
		require.NoError(t, err)
		assert.Equal(t, []bool{false, false, false, false},
			flagsOf(t, out, OutlierColumnName("count")), "method %s", method)
	}
}

func TestFlagOutliersNullsNeverFlagged(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, countColumn(int64(100), nil, int64(105), int64(500), int64(115)))

	out, err := c.FlagOutliers(in, []string{"count"}, 1.0, MethodZScore)
	require.NoError(t, err)

	flags := flagsOf(t, out, OutlierColumnName("count"))
	assert.False(t, flags[1], "null cell must never be flagged")
	assert.True(t, flags[3])
}

func TestFlagOutliersCombinesAcrossColumns(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t,
		table.NewSeries("num_facilities", table.TypeInt, []any{int64(10), int64(12), int64(11), int64(900), int64(13)}),
		table.NewSeries("num_beds", table.TypeInt, []any{int64(5000), int64(200), int64(210), int64(205), int64(215)}),
	)

	out, err := c.FlagOutliers(in, []string{"num_facilities", "num_beds"}, 1.5, MethodZScore)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, false, true, false}, flagsOf(t, out, OutlierColumnName("num_facilities")))
	assert.Equal(t, []bool{true, false, false, false, false}, flagsOf(t, out, OutlierColumnName("num_beds")))
	assert.Equal(t, []bool{true, false, false, true, false}, flagsOf(t, out, OutlierFlagColumn))
}

func TestFlagOutliersSkipsAbsentColumn(t *testing.T) {
	c := newTestCleaner(t)
	in := mustTable(t, countColumn(int64(1), int64(2)))

	out, err := c.FlagOutliers(in, []string{"num_beds"}, 3.0, MethodZScore)
	require.NoError(t, err)
	_, hasFlag := out.Column(OutlierFlagColumn)
	assert.False(t, hasFlag, "no numeric columns processed, no combined flag")
}

func TestParseOutlierMethod(t *testing.T) {
	for _, name := range []string{"zscore", "iqr"} {
		method, err := ParseOutlierMethod(name)
		require.NoError(t, err)
		assert.Equal(t, name, method.String())
	}

	_, err := ParseOutlierMethod("mad")
	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
