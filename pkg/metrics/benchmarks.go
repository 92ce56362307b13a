// pkg/metrics/benchmarks.go
package metrics

// BenchmarkSource records where a benchmark range came from.
type BenchmarkSource struct {
	Organization string
	Year         int
	URL          string
	Notes        string
}

// BenchmarkRange is a typical range for a healthcare ratio, drawn from
// WHO, OECD, and workforce-planning literature.
type BenchmarkRange struct {
	TypicalMin float64
	TypicalMax float64
	Source     BenchmarkSource
}

// BenchmarkStatus classifies a ratio against its benchmark range.
type BenchmarkStatus string

const (
	StatusWithinRange BenchmarkStatus = "Within Range"
	StatusBelowRange  BenchmarkStatus = "Below Range"
	StatusAboveRange  BenchmarkStatus = "Above Range"
)

// Status classifies a value against the range.
func (b BenchmarkRange) Status(v float64) BenchmarkStatus {
	switch {
	case v < b.TypicalMin:
		return StatusBelowRange
	case v > b.TypicalMax:
		return StatusAboveRange
	default:
		return StatusWithinRange
	}
}

// Midpoint returns the center of the benchmark range.
func (b BenchmarkRange) Midpoint() float64 {
	return (b.TypicalMin + b.TypicalMax) / 2
}

// Contains reports whether a value falls within the typical range.
func (b BenchmarkRange) Contains(v float64) bool {
	return v >= b.TypicalMin && v <= b.TypicalMax
}

// WorkforceToBedBenchmark is the typical FTE-per-bed range. Ranges vary
// by healthcare system model (acute care vs. integrated care).
var WorkforceToBedBenchmark = BenchmarkRange{
	TypicalMin: 1.5,
	TypicalMax: 2.5,
	Source: BenchmarkSource{
		Organization: "Healthcare Workforce Planning Literature",
		Year:         2025,
		Notes:        "Ranges vary by healthcare system model",
	},
}

// DoctorToNurseBenchmark is the typical doctor-to-nurse ratio range,
// between 1:4 and 1:2.
var DoctorToNurseBenchmark = BenchmarkRange{
	TypicalMin: 0.25,
	TypicalMax: 0.50,
	Source: BenchmarkSource{
		Organization: "Healthcare Workforce Planning Literature",
		Year:         2025,
		Notes:        "Nursing-intensive care models sit at the low end",
	},
}

// Workforce density benchmarks per 1,000 population.
const (
	WHOMinimumWorkersPer1000 = 4.45
	OECDDoctorsPer1000       = 3.5
	OECDNursesPer1000        = 8.0
)

// Mismatch detection thresholds, in growth-rate percentage points.
const (
	SignificantDivergence = 1.0
	SevereDivergence      = 3.0
	MinYearsSustained     = 3
)
