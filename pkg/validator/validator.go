// pkg/validator/validator.go

// Package validator is the assertion layer run once per canonical table
// after all transformations. It is stateless: every check reads the
// table, never mutates it, and all failures are accumulated so a run
// report can surface every violation rather than only the first.
package validator

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/config"
	"workforce-capacity-etl/pkg/model"
	"workforce-capacity-etl/pkg/table"
)

// ColumnRule declares a required column and its expected type.
type ColumnRule struct {
	Name string
	Type table.Type
}

// RangeRule bounds the non-null values of a numeric column. Use
// math.Inf for an open end.
type RangeRule struct {
	Column string
	Min    float64
	Max    float64
}

// DomainRule restricts the non-null values of a categorical column to a
// closed vocabulary.
type DomainRule struct {
	Column  string
	Allowed []string
}

// CompletenessRule declares the critical columns that must meet the
// completeness target, expressed as a percentage of non-null cells.
type CompletenessRule struct {
	Columns []string
	Target  float64
}

// RuleSet is the full contract one canonical table is validated
// against.
type RuleSet struct {
	Name         string
	Columns      []ColumnRule
	Ranges       []RangeRule
	Domains      []DomainRule
	UniqueKey    []string
	Completeness CompletenessRule
}

// CheckResult records the outcome of a single validation check for the
// quality report.
type CheckResult struct {
	Name   string
	Passed bool
	Err    error
}

// Result aggregates every check outcome for one table.
type Result struct {
	RuleSet string
	Checks  []CheckResult
}

// Passed reports whether every check succeeded.
func (r *Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Err joins every check failure into one error, or returns nil when the
// table passed.
func (r *Result) Err() error {
	var errs []error
	for _, c := range r.Checks {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed for %s: %w", r.RuleSet, errors.Join(errs...))
}

// Validator runs rule sets against canonical tables.
type Validator struct {
	logger *zap.Logger
}

// New creates a validator.
func New(logger *zap.Logger) (*Validator, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Validator{logger: logger}, nil
}

// Validate runs every check in order: schema shape and types, value
// ranges, categorical domains, uniqueness, completeness. All checks run
// even after earlier failures; the caller decides whether a failed
// Result aborts the run.
func (v *Validator) Validate(t *table.Table, rules RuleSet) *Result {
	result := &Result{RuleSet: rules.Name}

	result.Checks = append(result.Checks, v.checkSchema(t, rules)...)
	result.Checks = append(result.Checks, v.checkRanges(t, rules)...)
	result.Checks = append(result.Checks, v.checkDomains(t, rules)...)
	result.Checks = append(result.Checks, v.checkUniqueness(t, rules))
	result.Checks = append(result.Checks, v.checkCompleteness(t, rules))

	if result.Passed() {
		v.logger.Info("Validation passed",
			zap.String("ruleSet", rules.Name),
			zap.Int("checks", len(result.Checks)),
			zap.Int("rows", t.NumRows()))
	} else {
		failed := 0
		for _, c := range result.Checks {
			if !c.Passed {
				failed++
			}
		}
		v.logger.Error("Validation failed",
			zap.String("ruleSet", rules.Name),
			zap.Int("checks", len(result.Checks)),
			zap.Int("failed", failed))
	}
	return result
}

func (v *Validator) checkSchema(t *table.Table, rules RuleSet) []CheckResult {
	var checks []CheckResult

	names := make([]string, 0, len(rules.Columns))
	for _, c := range rules.Columns {
		names = append(names, c.Name)
	}
	missing := t.MissingColumns(names)
	schema := CheckResult{Name: "schema", Passed: true}
	if len(missing) > 0 {
		schema.Passed = false
		schema.Err = table.NewSchemaError(rules.Name, missing)
		v.logger.Warn("Schema check failed",
			zap.String("ruleSet", rules.Name),
			zap.Strings("missing", missing))
	}
	checks = append(checks, schema)

	types := CheckResult{Name: "types", Passed: true}
	var mismatches []error
	for _, c := range rules.Columns {
		s, ok := t.Column(c.Name)
		if !ok {
			continue
		}
		if s.Type != c.Type {
			mismatches = append(mismatches, &TypeMismatchError{Column: c.Name, Want: c.Type, Got: s.Type})
		}
	}
	if len(mismatches) > 0 {
		types.Passed = false
		types.Err = errors.Join(mismatches...)
		v.logger.Warn("Type check failed",
			zap.String("ruleSet", rules.Name),
			zap.Int("mismatches", len(mismatches)))
	}
	checks = append(checks, types)
	return checks
}

func (v *Validator) checkRanges(t *table.Table, rules RuleSet) []CheckResult {
	var checks []CheckResult
	for _, rule := range rules.Ranges {
		check := CheckResult{Name: "range:" + rule.Column, Passed: true}
		s, ok := t.Column(rule.Column)
		if !ok {
			// The schema check already reported the absence.
			checks = append(checks, check)
			continue
		}

		violations := 0
		worst := 0.0
		worstDist := -1.0
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				continue
			}
			f, ok := asFloat(s.Value(i))
			if !ok {
				continue
			}
			if f < rule.Min || f > rule.Max {
				violations++
				dist := math.Min(math.Abs(f-rule.Min), math.Abs(f-rule.Max))
				if dist > worstDist {
					worstDist = dist
					worst = f
				}
			}
		}
		if violations > 0 {
			check.Passed = false
			check.Err = &RangeError{
				Column:     rule.Column,
				Violations: violations,
				Worst:      worst,
				Min:        rule.Min,
				Max:        rule.Max,
			}
			v.logger.Warn("Range check failed",
				zap.String("ruleSet", rules.Name),
				zap.String("column", rule.Column),
				zap.Int("violations", violations),
				zap.Float64("worst", worst))
		}
		checks = append(checks, check)
	}
	return checks
}

func (v *Validator) checkDomains(t *table.Table, rules RuleSet) []CheckResult {
	var checks []CheckResult
	for _, rule := range rules.Domains {
		check := CheckResult{Name: "domain:" + rule.Column, Passed: true}
		s, ok := t.Column(rule.Column)
		if !ok {
			checks = append(checks, check)
			continue
		}

		allowed := make(map[string]bool, len(rule.Allowed))
		for _, a := range rule.Allowed {
			allowed[a] = true
		}
		seen := make(map[string]bool)
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				continue
			}
			val, ok := s.Value(i).(string)
			if !ok {
				val = fmt.Sprintf("%v", s.Value(i))
			}
			if !allowed[val] {
				seen[val] = true
			}
		}
		if len(seen) > 0 {
			invalid := make([]string, 0, len(seen))
			for val := range seen {
				invalid = append(invalid, val)
			}
			sort.Strings(invalid)
			check.Passed = false
			check.Err = &DomainError{Column: rule.Column, Invalid: invalid}
			v.logger.Warn("Domain check failed",
				zap.String("ruleSet", rules.Name),
				zap.String("column", rule.Column),
				zap.Strings("invalid", invalid))
		}
		checks = append(checks, check)
	}
	return checks
}

func (v *Validator) checkUniqueness(t *table.Table, rules RuleSet) CheckResult {
	check := CheckResult{Name: "uniqueness", Passed: true}
	if len(rules.UniqueKey) == 0 || t.NumRows() == 0 {
		return check
	}
	if missing := t.MissingColumns(rules.UniqueKey); len(missing) > 0 {
		return check
	}

	seen := make(map[string]bool, t.NumRows())
	duplicates := 0
	for i := 0; i < t.NumRows(); i++ {
		key := t.RowKey(i, rules.UniqueKey)
		if seen[key] {
			duplicates++
		}
		seen[key] = true
	}
	if duplicates > 0 {
		check.Passed = false
		check.Err = &DuplicateError{
			Columns:    rules.UniqueKey,
			Count:      duplicates,
			Percentage: 100 * float64(duplicates) / float64(t.NumRows()),
		}
		v.logger.Warn("Uniqueness check failed",
			zap.String("ruleSet", rules.Name),
			zap.Strings("key", rules.UniqueKey),
			zap.Int("duplicates", duplicates))
	}
	return check
}

func (v *Validator) checkCompleteness(t *table.Table, rules RuleSet) CheckResult {
	check := CheckResult{Name: "completeness", Passed: true}
	if len(rules.Completeness.Columns) == 0 || t.NumRows() == 0 {
		return check
	}

	var offending []ColumnCompleteness
	for _, name := range rules.Completeness.Columns {
		s, ok := t.Column(name)
		if !ok {
			continue
		}
		pct := 100 * float64(s.Len()-s.NullCount()) / float64(s.Len())
		if pct < rules.Completeness.Target {
			offending = append(offending, ColumnCompleteness{Column: name, Completeness: pct})
		}
	}
	if len(offending) > 0 {
		check.Passed = false
		check.Err = &CompletenessError{Target: rules.Completeness.Target, Columns: offending}
		v.logger.Warn("Completeness check failed",
			zap.String("ruleSet", rules.Name),
			zap.Float64("target", rules.Completeness.Target),
			zap.Int("columns", len(offending)))
	}
	return check
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// WorkforceRules builds the validation contract for the canonical
// workforce table from the loaded cleaning rules.
func WorkforceRules(rules *config.CleaningRules) RuleSet {
	bounds := rules.ValueConstraints.Workforce
	return RuleSet{
		Name: "workforce",
		Columns: []ColumnRule{
			{Name: model.ColumnYear, Type: table.TypeInt},
			{Name: model.ColumnSector, Type: table.TypeCategory},
			{Name: model.ColumnProfession, Type: table.TypeCategory},
			{Name: model.ColumnCount, Type: table.TypeInt},
			{Name: model.ColumnSpecialistCategory, Type: table.TypeCategory},
			{Name: model.ColumnNurseType, Type: table.TypeCategory},
			{Name: model.ColumnSourceTable, Type: table.TypeString},
			{Name: model.ColumnOutlierFlag, Type: table.TypeBool},
			{Name: model.ColumnHasMissingValues, Type: table.TypeBool},
		},
		Ranges: []RangeRule{
			{Column: model.ColumnYear, Min: float64(bounds.YearMin), Max: float64(bounds.YearMax)},
			{Column: model.ColumnCount, Min: float64(bounds.MinCount), Max: math.Inf(1)},
		},
		Domains: []DomainRule{
			{Column: model.ColumnSector, Allowed: rules.ValidValues.Sectors},
			{Column: model.ColumnProfession, Allowed: rules.ValidValues.Professions},
		},
		UniqueKey: []string{
			model.ColumnYear, model.ColumnSector, model.ColumnProfession,
			model.ColumnSpecialistCategory, model.ColumnNurseType,
		},
		Completeness: CompletenessRule{
			Columns: []string{model.ColumnYear, model.ColumnSector, model.ColumnProfession, model.ColumnCount},
			Target:  rules.QualityThresholds.CompletenessTarget,
		},
	}
}

// CapacityRules builds the validation contract for the canonical
// capacity table from the loaded cleaning rules.
func CapacityRules(rules *config.CleaningRules) RuleSet {
	bounds := rules.ValueConstraints.Capacity
	return RuleSet{
		Name: "capacity",
		Columns: []ColumnRule{
			{Name: model.ColumnYear, Type: table.TypeInt},
			{Name: model.ColumnInstitutionType, Type: table.TypeString},
			{Name: model.ColumnSector, Type: table.TypeCategory},
			{Name: model.ColumnInstitutionCategory, Type: table.TypeString},
			{Name: model.ColumnNumFacilities, Type: table.TypeInt},
			{Name: model.ColumnNumBeds, Type: table.TypeInt},
			{Name: model.ColumnSourceTable, Type: table.TypeString},
			{Name: model.ColumnOutlierFlag, Type: table.TypeBool},
			{Name: model.ColumnHasMissingValues, Type: table.TypeBool},
		},
		Ranges: []RangeRule{
			{Column: model.ColumnYear, Min: float64(bounds.YearMin), Max: float64(bounds.YearMax)},
			{Column: model.ColumnNumFacilities, Min: float64(bounds.MinCount), Max: math.Inf(1)},
			{Column: model.ColumnNumBeds, Min: float64(bounds.MinCount), Max: math.Inf(1)},
		},
		Domains: []DomainRule{
			{Column: model.ColumnSector, Allowed: rules.ValidValues.Sectors},
		},
		UniqueKey: []string{
			model.ColumnYear, model.ColumnInstitutionType, model.ColumnSector, model.ColumnSourceTable,
		},
		Completeness: CompletenessRule{
			Columns: []string{model.ColumnYear, model.ColumnInstitutionType, model.ColumnNumFacilities},
			Target:  rules.QualityThresholds.CompletenessTarget,
		},
	}
}
