// pkg/metrics/stats.go
package metrics

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTestResult is the outcome of a two-sample Welch t-test comparing
// growth rates between groups.
type TTestResult struct {
	Statistic        float64
	DegreesOfFreedom float64
	PValue           float64
	Significant      bool
	Conclusion       string
}

// CorrelationResult is the outcome of a Pearson correlation test.
type CorrelationResult struct {
	Correlation float64
	PValue      float64
	Significant bool
	Strength    string
	Direction   string
	Conclusion  string
	SampleSize  int
}

// CompareGrowth runs a Welch t-test on two samples of growth rates.
// Welch's form is used because sector samples are small and their
// variances cannot be assumed equal.
func (a *Analyzer) CompareGrowth(groupA, groupB []float64, alpha float64) (*TTestResult, error) {
	if len(groupA) < 2 || len(groupB) < 2 {
		return nil, errors.New("each group needs at least two observations")
	}

	meanA, varA := stat.MeanVariance(groupA, nil)
	meanB, varB := stat.MeanVariance(groupB, nil)
	na, nb := float64(len(groupA)), float64(len(groupB))

	se := math.Sqrt(varA/na + varB/nb)
	if se == 0 {
		return nil, errors.New("zero variance in both groups")
	}
	t := (meanA - meanB) / se

	// Welch-Satterthwaite degrees of freedom.
	num := math.Pow(varA/na+varB/nb, 2)
	den := math.Pow(varA/na, 2)/(na-1) + math.Pow(varB/nb, 2)/(nb-1)
	df := num / den

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))

	significant := p < alpha
	conclusion := fmt.Sprintf("No significant difference in growth rates (p=%.4f >= %.2f)", p, alpha)
	if significant {
		conclusion = fmt.Sprintf("Growth rates differ significantly (p=%.4f < %.2f)", p, alpha)
	}

	a.logger.Info("Growth comparison complete",
		zap.Float64("statistic", t),
		zap.Float64("pValue", p),
		zap.Bool("significant", significant))

	return &TTestResult{
		Statistic:        t,
		DegreesOfFreedom: df,
		PValue:           p,
		Significant:      significant,
		Conclusion:       conclusion,
	}, nil
}

// Correlation runs a Pearson correlation test between two paired
// samples, typically workforce totals against bed totals.
func (a *Analyzer) Correlation(x, y []float64, alpha float64) (*CorrelationResult, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("sample length mismatch: %d vs %d", len(x), len(y))
	}
	if len(x) < 3 {
		return nil, errors.New("correlation needs at least three paired observations")
	}

	r := stat.Correlation(x, y, nil)
	n := float64(len(x))

	// Significance via the t transform of r.
	var p float64
	if math.Abs(r) >= 1 {
		p = 0
	} else {
		t := r * math.Sqrt((n-2)/(1-r*r))
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 2}
		p = 2 * dist.Survival(math.Abs(t))
	}

	strength := "weak"
	switch {
	case math.Abs(r) >= 0.7:
		strength = "strong"
	case math.Abs(r) >= 0.4:
		strength = "moderate"
	}
	direction := "positive"
	if r < 0 {
		direction = "negative"
	}

	significant := p < alpha
	conclusion := fmt.Sprintf("%s %s correlation (r=%.3f, p=%.4f)", strength, direction, r, p)
	if significant {
		conclusion += fmt.Sprintf(", statistically significant at alpha=%.2f", alpha)
	} else {
		conclusion += fmt.Sprintf(", not statistically significant at alpha=%.2f", alpha)
	}

	a.logger.Info("Correlation test complete",
		zap.Float64("correlation", r),
		zap.Float64("pValue", p),
		zap.Bool("significant", significant))

	return &CorrelationResult{
		Correlation: r,
		PValue:      p,
		Significant: significant,
		Strength:    strength,
		Direction:   direction,
		Conclusion:  conclusion,
		SampleSize:  len(x),
	}, nil
}
