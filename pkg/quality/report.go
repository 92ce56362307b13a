// pkg/quality/report.go

// Package quality accumulates per-table statistics across the pipeline
// and renders them as markdown documents: a data quality report and a
// data dictionary for the persisted outputs.
package quality

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"workforce-capacity-etl/pkg/table"
	"workforce-capacity-etl/pkg/validator"
)

// ColumnSummary captures null statistics for one column of the final
// table.
type ColumnSummary struct {
	Name           string
	Type           table.Type
	NullCount      int
	NullPercentage float64
}

// TableReport collects everything the quality report surfaces for one
// dataset: what the cleaning stages counted plus the validation
// verdicts. Stages record into it as they run; nothing is dropped
// silently without showing up here.
type TableReport struct {
	Dataset           string
	GeneratedAt       time.Time
	Rows              int
	RawRows           int
	Columns           []ColumnSummary
	CastFailures      map[string]int
	CategoryChanges   int
	RowsDroppedByNull int
	DuplicatesRemoved int
	OutlierRows       int
	OutlierPercentage float64
	Completeness      float64
	YearMin           int64
	YearMax           int64
	Sectors           []ValueCount
	Professions       []ValueCount
	Checks            []validator.CheckResult
}

// ValueCount pairs a categorical value with its row count.
type ValueCount struct {
	Value string
	Count int
}

// NewTableReport seeds a report with the final table's shape and null
// statistics. Counters for the intermediate stages are filled in by the
// pipeline as each stage completes.
func NewTableReport(dataset string, t *table.Table) *TableReport {
	r := &TableReport{
		Dataset:      dataset,
		GeneratedAt:  time.Now(),
		Rows:         t.NumRows(),
		CastFailures: make(map[string]int),
	}
	for _, s := range t.Series() {
		pct := 0.0
		if t.NumRows() > 0 {
			pct = 100 * float64(s.NullCount()) / float64(t.NumRows())
		}
		r.Columns = append(r.Columns, ColumnSummary{
			Name:           s.Name,
			Type:           s.Type,
			NullCount:      s.NullCount(),
			NullPercentage: pct,
		})
	}
	if s, ok := t.Column("year"); ok {
		r.YearMin, r.YearMax = yearRange(s)
	}
	if s, ok := t.Column("sector"); ok {
		r.Sectors = countValues(s)
	}
	if s, ok := t.Column("profession"); ok {
		r.Professions = countValues(s)
	}
	return r
}

func yearRange(s *table.Series) (min, max int64) {
	first := true
	for i := 0; i < s.Len(); i++ {
		v, ok := s.Value(i).(int64)
		if !ok {
			continue
		}
		if first || v < min {
			min = v
		}
		if first || v > max {
			max = v
		}
		first = false
	}
	return min, max
}

// countValues tallies non-null values, most frequent first with ties
// broken alphabetically so the rendering is deterministic.
func countValues(s *table.Series) []ValueCount {
	counts := make(map[string]int)
	for i := 0; i < s.Len(); i++ {
		v, ok := s.Value(i).(string)
		if !ok {
			continue
		}
		counts[v]++
	}
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// RecordValidation attaches the validation outcome to the report.
func (r *TableReport) RecordValidation(result *validator.Result) {
	r.Checks = result.Checks
}

// Passed reports whether every validation check attached to this report
// succeeded.
func (r *TableReport) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Markdown renders the report for one dataset.
func (r *TableReport) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Data Validation Report: %s\n\n", r.Dataset)
	fmt.Fprintf(&sb, "**Generated**: %s  \n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**Total Records**: %d  \n", r.Rows)
	fmt.Fprintf(&sb, "**Total Columns**: %d\n\n", len(r.Columns))

	sb.WriteString("## Validation Results\n\n")
	sb.WriteString("| Check | Status |\n")
	sb.WriteString("|-------|--------|\n")
	for _, c := range r.Checks {
		status := "PASS"
		if !c.Passed {
			status = fmt.Sprintf("FAIL (%v)", c.Err)
		}
		fmt.Fprintf(&sb, "| %s | %s |\n", c.Name, status)
	}

	sb.WriteString("\n## Schema Summary\n\n")
	sb.WriteString("| Column | Data Type | Null Count | Null % |\n")
	sb.WriteString("|--------|-----------|------------|--------|\n")
	for _, c := range r.Columns {
		fmt.Fprintf(&sb, "| %s | %s | %d | %.2f%% |\n", c.Name, c.Type, c.NullCount, c.NullPercentage)
	}

	sb.WriteString("\n## Key Column Statistics\n\n")
	if r.YearMax > 0 {
		fmt.Fprintf(&sb, "**Year Range**: %d - %d\n\n", r.YearMin, r.YearMax)
	}
	if len(r.Sectors) > 0 {
		sb.WriteString("**Sector Distribution**:\n\n")
		for _, vc := range r.Sectors {
			fmt.Fprintf(&sb, "- %s: %d\n", vc.Value, vc.Count)
		}
		sb.WriteString("\n")
	}
	if len(r.Professions) > 0 {
		sb.WriteString("**Profession Distribution**:\n\n")
		for _, vc := range r.Professions {
			fmt.Fprintf(&sb, "- %s: %d\n", vc.Value, vc.Count)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Cleaning Summary\n\n")
	if r.RawRows > 0 {
		fmt.Fprintf(&sb, "- Raw rows ingested: %d\n", r.RawRows)
	}
	if len(r.CastFailures) > 0 {
		cols := make([]string, 0, len(r.CastFailures))
		for col := range r.CastFailures {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			fmt.Fprintf(&sb, "- Cast failures in %s: %d value(s) nulled\n", col, r.CastFailures[col])
		}
	} else {
		sb.WriteString("- Cast failures: none\n")
	}
	fmt.Fprintf(&sb, "- Category values standardized: %d\n", r.CategoryChanges)
	fmt.Fprintf(&sb, "- Rows dropped for missing values: %d\n", r.RowsDroppedByNull)
	fmt.Fprintf(&sb, "- Exact duplicates removed: %d\n", r.DuplicatesRemoved)
	fmt.Fprintf(&sb, "- Rows flagged as outliers: %d (%.2f%%)\n", r.OutlierRows, r.OutlierPercentage)
	fmt.Fprintf(&sb, "- Overall cell completeness: %.2f%%\n", r.Completeness)

	return sb.String()
}

// Render joins per-dataset reports into one document.
func Render(reports ...*TableReport) string {
	parts := make([]string, 0, len(reports))
	for _, r := range reports {
		parts = append(parts, r.Markdown())
	}
	return strings.Join(parts, "\n\n---\n\n")
}
