// pkg/metrics/growth.go
package metrics

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Observation is one value in a grouped time series, such as total
// workforce for a sector in a year.
type Observation struct {
	Year  int32
	Group string
	Value float64
}

// GrowthObservation is an observation with its year-over-year growth
// rate in percent. GrowthRate is nil for a group's first year.
type GrowthObservation struct {
	Observation
	GrowthRate *float64
}

// IndexedObservation is an observation indexed to a base year, where
// the base year equals 100.
type IndexedObservation struct {
	Observation
	IndexedValue float64
}

// GrowthRates computes year-over-year growth within each group. Input
// order does not matter; output is sorted by group then year.
func (a *Analyzer) GrowthRates(obs []Observation) []GrowthObservation {
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Group != sorted[j].Group {
			return sorted[i].Group < sorted[j].Group
		}
		return sorted[i].Year < sorted[j].Year
	})

	out := make([]GrowthObservation, 0, len(sorted))
	for i, o := range sorted {
		g := GrowthObservation{Observation: o}
		if i > 0 && sorted[i-1].Group == o.Group && sorted[i-1].Value != 0 {
			rate := (o.Value - sorted[i-1].Value) / sorted[i-1].Value * 100
			g.GrowthRate = &rate
		}
		out = append(out, g)
	}

	a.logger.Info("Calculated growth rates", zap.Int("observations", len(out)))
	return out
}

// IndexedGrowth rescales every group so its base-year value is 100.
// Groups without a base-year observation are dropped with a warning.
func (a *Analyzer) IndexedGrowth(obs []Observation, baseYear int32) ([]IndexedObservation, error) {
	base := make(map[string]float64)
	for _, o := range obs {
		if o.Year == baseYear {
			base[o.Group] = o.Value
		}
	}
	if len(base) == 0 {
		return nil, fmt.Errorf("base year %d not found in data", baseYear)
	}

	var out []IndexedObservation
	for _, o := range obs {
		baseValue, ok := base[o.Group]
		if !ok || baseValue == 0 {
			a.logger.Warn("Group has no usable base-year value",
				zap.String("group", o.Group),
				zap.Int32("baseYear", baseYear))
			continue
		}
		out = append(out, IndexedObservation{
			Observation:  o,
			IndexedValue: o.Value / baseValue * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Year < out[j].Year
	})
	return out, nil
}
