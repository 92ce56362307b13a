// pkg/metrics/mismatch.go
package metrics

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/model"
)

// MismatchPoint is the growth differential between workforce and
// hospital capacity for one year and sector. Index is workforce growth
// minus capacity growth in percentage points; nil for a sector's first
// observed year.
type MismatchPoint struct {
	Year            int32
	Sector          string
	TotalWorkforce  int64
	TotalBeds       int64
	WorkforceGrowth *float64
	CapacityGrowth  *float64
	Index           *float64
}

// Severity grades a sustained misalignment.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Misalignment describes a sector whose workforce and capacity growth
// diverged beyond the threshold for enough years.
type Misalignment struct {
	Sector             string
	YearsAffected      []int32
	AvgMismatch        float64
	MaxMismatch        float64
	CumulativeMismatch float64
	Severity           Severity
}

// MismatchIndex joins workforce and hospital-bed totals per year and
// sector and computes the growth-rate differential.
func (a *Analyzer) MismatchIndex(workforce []model.WorkforceRecord, capacity []model.CapacityRecord) []MismatchPoint {
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

	var points []MismatchPoint
	for key, w := range workforceTotals {
		b, ok := bedTotals[key]
		if !ok {
			continue
		}
		points = append(points, MismatchPoint{
			Year:           key.year,
			Sector:         key.sector,
			TotalWorkforce: w,
			TotalBeds:      b,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Sector != points[j].Sector {
			return points[i].Sector < points[j].Sector
		}
		return points[i].Year < points[j].Year
	})

	for i := range points {
		if i == 0 || points[i-1].Sector != points[i].Sector {
			continue
		}
		prev := points[i-1]
		if prev.TotalWorkforce > 0 {
			g := float64(points[i].TotalWorkforce-prev.TotalWorkforce) / float64(prev.TotalWorkforce) * 100
			points[i].WorkforceGrowth = &g
		}
		if prev.TotalBeds > 0 {
			g := float64(points[i].TotalBeds-prev.TotalBeds) / float64(prev.TotalBeds) * 100
			points[i].CapacityGrowth = &g
		}
		if points[i].WorkforceGrowth != nil && points[i].CapacityGrowth != nil {
			idx := *points[i].WorkforceGrowth - *points[i].CapacityGrowth
			points[i].Index = &idx
		}
	}

	significant := 0
	for _, p := range points {
		if p.Index != nil && math.Abs(*p.Index) > SignificantDivergence {
			significant++
		}
	}
	a.logger.Info("Calculated mismatch index",
		zap.Int("observations", len(points)),
		zap.Int("significant", significant))
	return points
}

// DetectMisalignments flags sectors whose mismatch index exceeded the
// threshold in at least minYears years. Severity grades on the average
// mismatch across the exceeding years.
func (a *Analyzer) DetectMisalignments(points []MismatchPoint, threshold float64, minYears int) []Misalignment {
	if threshold <= 0 {
		threshold = SignificantDivergence
	}
	if minYears <= 0 {
		minYears = MinYearsSustained
	}

	bySector := make(map[string][]MismatchPoint)
	for _, p := range points {
		if p.Index == nil {
			continue
		}
		bySector[p.Sector] = append(bySector[p.Sector], p)
	}

	sectors := make([]string, 0, len(bySector))
	for s := range bySector {
		sectors = append(sectors, s)
	}
	sort.Strings(sectors)

	var results []Misalignment
	for _, sector := range sectors {
		sectorPoints := bySector[sector]

		var years []int32
		var exceeded []float64
		cumulative := 0.0
		for _, p := range sectorPoints {
			cumulative += *p.Index
			if math.Abs(*p.Index) > threshold {
				years = append(years, p.Year)
				exceeded = append(exceeded, *p.Index)
			}
		}
		if len(years) < minYears {
			continue
		}

		sum, worst := 0.0, 0.0
		for _, v := range exceeded {
			sum += v
			if math.Abs(v) > math.Abs(worst) {
				worst = v
			}
		}
		avg := sum / float64(len(exceeded))

		severity := SeverityLow
		switch {
		case math.Abs(avg) > SevereDivergence:
			severity = SeverityHigh
		case math.Abs(avg) > SignificantDivergence:
			severity = SeverityMedium
		}

		results = append(results, Misalignment{
			Sector:             sector,
			YearsAffected:      years,
			AvgMismatch:        avg,
			MaxMismatch:        worst,
			CumulativeMismatch: cumulative,
			Severity:           severity,
		})
		a.logger.Warn("Sustained workforce-capacity misalignment detected",
			zap.String("sector", sector),
			zap.String("severity", string(severity)),
			zap.Int("yearsAffected", len(years)))
	}

	if len(results) == 0 {
		a.logger.Info("No significant sustained misalignments detected")
	}
	return results
}
