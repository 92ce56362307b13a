// pkg/source/csv_test.go
package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/table"
)

func newTestReader(t *testing.T) *CSVReader {
	t.Helper()
	r, err := NewCSVReader(zap.NewNop())
	require.NoError(t, err)
	return r
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewCSVReaderRequiresLogger(t *testing.T) {
	_, err := NewCSVReader(nil)
	require.Error(t, err)
}

func TestReadParsesHeaderAndNulls(t *testing.T) {
	r := newTestReader(t)
	path := writeCSV(t, t.TempDir(), "raw.csv",
		"year,sector,count\n2018,Public Sector,100\n2019,,n.a.\n")

	tbl, err := r.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"year", "sector", "count"}, tbl.Columns())

	sector, _ := tbl.Column("sector")
	assert.Equal(t, table.TypeString, sector.Type)
	assert.Equal(t, "Public Sector", sector.Value(0))
	assert.True(t, sector.IsNull(1), "empty cell becomes null")

	count, _ := tbl.Column("count")
	assert.Equal(t, "n.a.", count.Value(1), "values stay raw strings until the cast stage")
}

func TestReadQuotedFieldsWithCommas(t *testing.T) {
	r := newTestReader(t)
	path := writeCSV(t, t.TempDir(), "raw.csv",
		"year,count\n2018,\"1,250\"\n")

	tbl, err := r.Read(path)
	require.NoError(t, err)
	count, _ := tbl.Column("count")
	assert.Equal(t, "1,250", count.Value(0))
}

func TestReadMissingFile(t *testing.T) {
	r := newTestReader(t)
	_, err := r.Read(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestReadEmptyFile(t *testing.T) {
	r := newTestReader(t)
	path := writeCSV(t, t.TempDir(), "empty.csv", "")
	_, err := r.Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a header row")
}

func TestReadRaggedRowsRejected(t *testing.T) {
	r := newTestReader(t)
	path := writeCSV(t, t.TempDir(), "ragged.csv", "year,count\n2018\n")
	_, err := r.Read(path)
	require.Error(t, err)
}

func TestLoadWorkforceAndCapacity(t *testing.T) {
	r := newTestReader(t)
	dir := t.TempDir()
	writeCSV(t, dir, FileDoctors, "year,count\n2018,50\n")
	writeCSV(t, dir, FileNurses, "year,count\n2018,200\n")
	writeCSV(t, dir, FilePharmacists, "year,count\n2018,30\n")
	writeCSV(t, dir, FileHospitalBeds, "year,no_of_hospital_beds\n2018,5000\n")
	writeCSV(t, dir, FilePrimaryCare, "year,no_of_facilities\n2018,20\n")

	workforce, err := r.LoadWorkforce(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, workforce.Doctors.NumRows())
	assert.Equal(t, 1, workforce.Nurses.NumRows())
	assert.Equal(t, 1, workforce.Pharmacists.NumRows())

	capacity, err := r.LoadCapacity(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, capacity.HospitalBeds.NumRows())
	assert.Equal(t, 1, capacity.PrimaryCare.NumRows())
}

func TestLoadWorkforceMissingExtract(t *testing.T) {
	r := newTestReader(t)
	dir := t.TempDir()
	writeCSV(t, dir, FileDoctors, "year,count\n2018,50\n")

	_, err := r.LoadWorkforce(dir)
	require.Error(t, err)
}
