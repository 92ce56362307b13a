// pkg/metrics/ratios.go
package metrics

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/model"
)

// WorkforceBedRatio is total workforce per hospital bed for one year
// and sector.
type WorkforceBedRatio struct {
	Year                  int32
	Sector                string
	TotalWorkforce        int64
	TotalBeds             int64
	Ratio                 float64
	Status                BenchmarkStatus
	DeviationFromMidpoint float64
}

// DoctorNurseRatio is the doctor-to-nurse headcount ratio for one year
// and sector.
type DoctorNurseRatio struct {
	Year            int32
	Sector          string
	Doctors         int64
	Nurses          int64
	Ratio           float64
	WithinBenchmark bool
}

type yearSector struct {
	year   int32
	sector string
}

// WorkforceToBedRatios joins workforce headcounts against hospital bed
// counts on year and sector. Only hospital capacity contributes beds;
// year-sector pairs present in only one dataset are dropped, matching
// an inner join.
func (a *Analyzer) WorkforceToBedRatios(workforce []model.WorkforceRecord, capacity []model.CapacityRecord) ([]WorkforceBedRatio, error) {
	workforceTotals := make(map[yearSector]int64)
	for _, r := range workforce {
		workforceTotals[yearSector{r.Year, r.Sector}] += int64(r.Count)
	}

	bedTotals := make(map[yearSector]int64)
	for _, r := range capacity {
		if r.InstitutionCategory != model.InstitutionHospital || r.NumBeds == nil || r.Sector == nil {
			continue
		}
		bedTotals[yearSector{r.Year, *r.Sector}] += int64(*r.NumBeds)
	}

	var out []WorkforceBedRatio
	for key, totalWorkforce := range workforceTotals {
		totalBeds, ok := bedTotals[key]
		if !ok || totalBeds == 0 {
			continue
		}
		ratio := float64(totalWorkforce) / float64(totalBeds)
		out = append(out, WorkforceBedRatio{
			Year:                  key.year,
			Sector:                key.sector,
			TotalWorkforce:        totalWorkforce,
			TotalBeds:             totalBeds,
			Ratio:                 ratio,
			Status:                WorkforceToBedBenchmark.Status(ratio),
			DeviationFromMidpoint: ratio - WorkforceToBedBenchmark.Midpoint(),
		})
	}
	if len(out) == 0 {
		return nil, errors.New("no matching year-sector pairs between workforce and capacity data")
	}
	sortByYearSector(out, func(r WorkforceBedRatio) (int32, string) { return r.Year, r.Sector })

	within := 0
	for _, r := range out {
		if r.Status == StatusWithinRange {
			within++
		}
	}
	a.logger.Info("Calculated workforce-to-bed ratios",
		zap.Int("observations", len(out)),
		zap.Int("withinBenchmark", within))
	return out, nil
}

// DoctorToNurseRatios computes doctor-to-nurse ratios per year and
// sector. Pairs with no nurses are dropped.
func (a *Analyzer) DoctorToNurseRatios(workforce []model.WorkforceRecord) []DoctorNurseRatio {
	doctors := make(map[yearSector]int64)
	nurses := make(map[yearSector]int64)
	for _, r := range workforce {
		key := yearSector{r.Year, r.Sector}
		switch r.Profession {
		case model.ProfessionDoctor:
			doctors[key] += int64(r.Count)
		case model.ProfessionNurse:
			nurses[key] += int64(r.Count)
		}
	}

	var out []DoctorNurseRatio
	for key, d := range doctors {
		n, ok := nurses[key]
		if !ok || n == 0 {
			continue
		}
		ratio := float64(d) / float64(n)
		out = append(out, DoctorNurseRatio{
			Year:            key.year,
			Sector:          key.sector,
			Doctors:         d,
			Nurses:          n,
			Ratio:           ratio,
			WithinBenchmark: DoctorToNurseBenchmark.Contains(ratio),
		})
	}
	sortByYearSector(out, func(r DoctorNurseRatio) (int32, string) { return r.Year, r.Sector })

	a.logger.Info("Calculated doctor-to-nurse ratios", zap.Int("observations", len(out)))
	return out
}

func sortByYearSector[T any](items []T, key func(T) (int32, string)) {
	sort.Slice(items, func(i, j int) bool {
		yi, si := key(items[i])
		yj, sj := key(items[j])
		if yi != yj {
			return yi < yj
		}
		return si < sj
	})
}
