// pkg/metrics/metrics_test.go
package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/model"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(zap.NewNop())
	require.NoError(t, err)
	return a
}

func strPtr(s string) *string { return &s }
func i32Ptr(v int32) *int32   { return &v }

func workforceRecord(year int32, sector, profession string, count int32) model.WorkforceRecord {
	return model.WorkforceRecord{Year: year, Sector: sector, Profession: profession, Count: count}
}

func hospitalRecord(year int32, sector string, beds int32) model.CapacityRecord {
	return model.CapacityRecord{
		Year:                year,
		InstitutionType:     "Acute Hospitals",
		Sector:              strPtr(sector),
		InstitutionCategory: model.InstitutionHospital,
		NumFacilities:       10,
		NumBeds:             i32Ptr(beds),
	}
}

func TestNewAnalyzerRequiresLogger(t *testing.T) {
	_, err := NewAnalyzer(nil)
	require.Error(t, err)
}

func TestWorkforceToBedRatios(t *testing.T) {
	a := newTestAnalyzer(t)

	workforce := []model.WorkforceRecord{
		workforceRecord(2018, model.SectorPublic, model.ProfessionDoctor, 100),
		workforceRecord(2018, model.SectorPublic, model.ProfessionNurse, 900),
	}
	capacity := []model.CapacityRecord{
		hospitalRecord(2018, model.SectorPublic, 300),
		hospitalRecord(2018, model.SectorPublic, 200),
		// Primary care never contributes beds.
		{
			Year:                2018,
			InstitutionType:     "Polyclinics",
			Sector:              strPtr(model.SectorPublic),
			InstitutionCategory: model.InstitutionPrimaryCare,
			NumFacilities:       20,
		},
	}

	ratios, err := a.WorkforceToBedRatios(workforce, capacity)
	require.NoError(t, err)
	require.Len(t, ratios, 1)

	r := ratios[0]
	assert.Equal(t, int32(2018), r.Year)
	assert.Equal(t, int64(1000), r.TotalWorkforce)
	assert.Equal(t, int64(500), r.TotalBeds)
	assert.InDelta(t, 2.0, r.Ratio, 1e-9)
	assert.Equal(t, StatusWithinRange, r.Status)
	assert.InDelta(t, 0.0, r.DeviationFromMidpoint, 1e-9)
}

func TestWorkforceToBedRatiosNoOverlap(t *testing.T) {
	a := newTestAnalyzer(t)

	workforce := []model.WorkforceRecord{
		workforceRecord(2018, model.SectorPublic, model.ProfessionDoctor, 100),
	}
	capacity := []model.CapacityRecord{
		hospitalRecord(2018, model.SectorPrivate, 500),
	}

	_, err := a.WorkforceToBedRatios(workforce, capacity)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching year-sector pairs")
}

func TestDoctorToNurseRatios(t *testing.T) {
	a := newTestAnalyzer(t)

	workforce := []model.WorkforceRecord{
		workforceRecord(2018, model.SectorPublic, model.ProfessionDoctor, 100),
		workforceRecord(2018, model.SectorPublic, model.ProfessionNurse, 900),
		workforceRecord(2019, model.SectorPublic, model.ProfessionDoctor, 300),
		workforceRecord(2019, model.SectorPublic, model.ProfessionNurse, 900),
		// Pharmacists never enter the ratio.
		workforceRecord(2018, model.SectorPublic, model.ProfessionPharmacist, 50),
	}

	ratios := a.DoctorToNurseRatios(workforce)
	require.Len(t, ratios, 2)

	assert.InDelta(t, 100.0/900.0, ratios[0].Ratio, 1e-9)
	assert.False(t, ratios[0].WithinBenchmark)
	assert.InDelta(t, 300.0/900.0, ratios[1].Ratio, 1e-9)
	assert.True(t, ratios[1].WithinBenchmark)
}

func TestGrowthRates(t *testing.T) {
	a := newTestAnalyzer(t)

	// Deliberately out of order to confirm sorting.
	obs := []Observation{
		{Year: 2017, Group: "Public", Value: 99},
		{Year: 2015, Group: "Public", Value: 100},
		{Year: 2016, Group: "Public", Value: 110},
		{Year: 2015, Group: "Private", Value: 50},
	}

	rates := a.GrowthRates(obs)
	require.Len(t, rates, 4)

	// Sorted by group then year: Private 2015, then Public 2015..2017.
	assert.Nil(t, rates[0].GrowthRate, "first year of a group has no growth")
	assert.Nil(t, rates[1].GrowthRate)
	require.NotNil(t, rates[2].GrowthRate)
	assert.InDelta(t, 10.0, *rates[2].GrowthRate, 1e-9)
	require.NotNil(t, rates[3].GrowthRate)
	assert.InDelta(t, -10.0, *rates[3].GrowthRate, 1e-9)
}

func TestIndexedGrowth(t *testing.T) {
	a := newTestAnalyzer(t)

	obs := []Observation{
		{Year: 2015, Group: "Public", Value: 200},
		{Year: 2016, Group: "Public", Value: 220},
		// No 2015 observation, dropped with a warning.
		{Year: 2016, Group: "Private", Value: 75},
	}

	indexed, err := a.IndexedGrowth(obs, 2015)
	require.NoError(t, err)
	require.Len(t, indexed, 2)
	assert.InDelta(t, 100.0, indexed[0].IndexedValue, 1e-9)
	assert.InDelta(t, 110.0, indexed[1].IndexedValue, 1e-9)

	_, err = a.IndexedGrowth(obs, 1990)
	require.Error(t, err)
}

func TestMismatchIndexAndMisalignments(t *testing.T) {
	a := newTestAnalyzer(t)

	// Public workforce grows 10% a year against flat bed capacity;
	// Private grows in lockstep with its capacity.
	var workforce []model.WorkforceRecord
	var capacity []model.CapacityRecord
	publicCounts := map[int32]int32{2015: 1000, 2016: 1100, 2017: 1210, 2018: 1331}
	for year, count := range publicCounts {
		workforce = append(workforce, workforceRecord(year, model.SectorPublic, model.ProfessionNurse, count))
		capacity = append(capacity, hospitalRecord(year, model.SectorPublic, 500))
		workforce = append(workforce, workforceRecord(year, model.SectorPrivate, model.ProfessionNurse, count))
		capacity = append(capacity, hospitalRecord(year, model.SectorPrivate, count))
	}

	points := a.MismatchIndex(workforce, capacity)
	require.Len(t, points, 8)

	assert.Nil(t, points[4].Index, "first year has no growth differential")
	for _, p := range points[5:] {
		require.Equal(t, model.SectorPublic, p.Sector)
		require.NotNil(t, p.Index)
		assert.InDelta(t, 10.0, *p.Index, 1e-9)
	}
	for _, p := range points[1:4] {
		require.Equal(t, model.SectorPrivate, p.Sector)
		require.NotNil(t, p.Index)
		assert.InDelta(t, 0.0, *p.Index, 1e-9)
	}

	misalignments := a.DetectMisalignments(points, 0, 0)
	require.Len(t, misalignments, 1)

	m := misalignments[0]
	assert.Equal(t, model.SectorPublic, m.Sector)
	assert.Equal(t, []int32{2016, 2017, 2018}, m.YearsAffected)
	assert.InDelta(t, 10.0, m.AvgMismatch, 1e-9)
	assert.Equal(t, SeverityHigh, m.Severity)
	assert.InDelta(t, 30.0, m.CumulativeMismatch, 1e-9)
}

func TestDetectMisalignmentsRequiresSustainedYears(t *testing.T) {
	a := newTestAnalyzer(t)

	idx := 5.0
	points := []MismatchPoint{
		{Year: 2016, Sector: "Public", Index: &idx},
		{Year: 2017, Sector: "Public", Index: &idx},
	}

	assert.Empty(t, a.DetectMisalignments(points, 1.0, 3))
	assert.Len(t, a.DetectMisalignments(points, 1.0, 2), 1)
}

func TestCompareGrowth(t *testing.T) {
	a := newTestAnalyzer(t)

	result, err := a.CompareGrowth(
		[]float64{1, 2, 3, 4, 5},
		[]float64{2, 4, 6, 8, 10},
		0.05,
	)
	require.NoError(t, err)
	assert.InDelta(t, -1.897, result.Statistic, 0.001)
	assert.InDelta(t, 5.882, result.DegreesOfFreedom, 0.001)
	assert.InDelta(t, 0.107, result.PValue, 0.01)
	assert.False(t, result.Significant)
	assert.Contains(t, result.Conclusion, "No significant difference")
}

func TestCompareGrowthIdenticalSamples(t *testing.T) {
	a := newTestAnalyzer(t)

	result, err := a.CompareGrowth([]float64{1, 2, 3}, []float64{1, 2, 3}, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, result.Statistic, 1e-9)
	assert.InDelta(t, 1.0, result.PValue, 1e-9)
}

func TestCompareGrowthErrors(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.CompareGrowth([]float64{1}, []float64{2, 3}, 0.05)
	require.Error(t, err)

	_, err = a.CompareGrowth([]float64{5, 5}, []float64{5, 5}, 0.05)
	require.Error(t, err)
}

func TestCorrelationPerfectPositive(t *testing.T) {
	a := newTestAnalyzer(t)

	result, err := a.Correlation([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8}, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Correlation, 1e-9)
	assert.InDelta(t, 0.0, result.PValue, 1e-9)
	assert.True(t, result.Significant)
	assert.Equal(t, "strong", result.Strength)
	assert.Equal(t, "positive", result.Direction)
	assert.Equal(t, 4, result.SampleSize)
}

func TestCorrelationModerate(t *testing.T) {
	a := newTestAnalyzer(t)

	result, err := a.Correlation([]float64{1, 2, 3}, []float64{1, 3, 2}, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result.Correlation, 1e-9)
	assert.Equal(t, "moderate", result.Strength)
	assert.False(t, result.Significant)
}

func TestCorrelationErrors(t *testing.T) {
	a := newTestAnalyzer(t)

	_, err := a.Correlation([]float64{1, 2}, []float64{1, 2, 3}, 0.05)
	require.Error(t, err)

	_, err = a.Correlation([]float64{1, 2}, []float64{3, 4}, 0.05)
	require.Error(t, err)
}

func TestBenchmarkRange(t *testing.T) {
	assert.Equal(t, StatusWithinRange, WorkforceToBedBenchmark.Status(2.0))
	assert.Equal(t, StatusBelowRange, WorkforceToBedBenchmark.Status(1.0))
	assert.Equal(t, StatusAboveRange, WorkforceToBedBenchmark.Status(3.0))
	assert.InDelta(t, 2.0, WorkforceToBedBenchmark.Midpoint(), 1e-9)
	assert.True(t, DoctorToNurseBenchmark.Contains(0.3))
	assert.False(t, DoctorToNurseBenchmark.Contains(0.6))
}
