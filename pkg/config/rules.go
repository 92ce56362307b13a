// pkg/config/rules.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CleaningRules is the configuration object driving the cleaning and
// validation pipeline, loaded from a YAML rules file.
type CleaningRules struct {
	WorkforceColumnMappings map[string]string  `yaml:"workforce_column_mappings"`
	CapacityColumnMappings  map[string]string  `yaml:"capacity_column_mappings"`
	SectorStandardization   map[string]string  `yaml:"sector_standardization"`
	CleaningStrategies      CleaningStrategies `yaml:"cleaning_strategies"`
	ValueConstraints        ValueConstraints   `yaml:"value_constraints"`
	ValidValues             ValidValues        `yaml:"valid_values"`
	QualityThresholds       QualityThresholds  `yaml:"quality_thresholds"`
}

// CleaningStrategies selects policies for value-level anomaly handling.
type CleaningStrategies struct {
	MissingValues MissingValuesStrategy `yaml:"missing_values"`
}

// MissingValuesStrategy names the missing-value policy and its column
// drop threshold.
type MissingValuesStrategy struct {
	Strategy      string  `yaml:"strategy"`
	DropThreshold float64 `yaml:"drop_threshold"`
}

// ValueConstraints holds numeric bounds per dataset plus the outlier
// detection threshold.
type ValueConstraints struct {
	OutlierThresholdStdev float64         `yaml:"outlier_threshold_stdev"`
	Workforce             DatasetBounds   `yaml:"workforce"`
	Capacity              DatasetBounds   `yaml:"capacity"`
}

// DatasetBounds declares the legal value ranges for one dataset.
type DatasetBounds struct {
	YearMin  int `yaml:"year_min"`
	YearMax  int `yaml:"year_max"`
	MinCount int `yaml:"min_count"`
}

// ValidValues declares the closed categorical vocabularies.
type ValidValues struct {
	Sectors     []string `yaml:"sectors"`
	Professions []string `yaml:"professions"`
}

// QualityThresholds declares the data-quality acceptance bar.
type QualityThresholds struct {
	CompletenessTarget   float64 `yaml:"completeness_target"`
	MaxOutlierPercentage float64 `yaml:"max_outlier_percentage"`
}

// LoadRules reads and validates a cleaning-rules YAML file. Unknown keys
// are rejected so a typo surfaces here, not as a mysteriously inert rule.
func LoadRules(path string) (*CleaningRules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var rules CleaningRules
	if err := dec.Decode(&rules); err != nil {
		return nil, NewConfigError("", "failed to parse rules file %s: %v", path, err)
	}

	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &rules, nil
}

// Validate ensures every key the pipeline depends on is present and sane.
func (r *CleaningRules) Validate() error {
	if len(r.WorkforceColumnMappings) == 0 {
		return NewConfigError("workforce_column_mappings", "is required and cannot be empty")
	}
	if len(r.CapacityColumnMappings) == 0 {
		return NewConfigError("capacity_column_mappings", "is required and cannot be empty")
	}
	if len(r.SectorStandardization) == 0 {
		return NewConfigError("sector_standardization", "is required and cannot be empty")
	}
	switch r.CleaningStrategies.MissingValues.Strategy {
	case "flag", "drop_rows", "drop_cols":
	case "":
		return NewConfigError("cleaning_strategies.missing_values.strategy", "is required")
	default:
		return NewConfigError("cleaning_strategies.missing_values.strategy",
			"unknown strategy %q (valid: flag, drop_rows, drop_cols)", r.CleaningStrategies.MissingValues.Strategy)
	}
	if r.ValueConstraints.OutlierThresholdStdev <= 0 {
		return NewConfigError("value_constraints.outlier_threshold_stdev", "must be positive")
	}
	for name, b := range map[string]DatasetBounds{
		"value_constraints.workforce": r.ValueConstraints.Workforce,
		"value_constraints.capacity":  r.ValueConstraints.Capacity,
	} {
		if b.YearMin == 0 || b.YearMax == 0 {
			return NewConfigError(name, "year_min and year_max are required")
		}
		if b.YearMin > b.YearMax {
			return NewConfigError(name, "year_min %d exceeds year_max %d", b.YearMin, b.YearMax)
		}
		if b.MinCount < 0 {
			return NewConfigError(name, "min_count cannot be negative")
		}
	}
	if len(r.ValidValues.Sectors) == 0 {
		return NewConfigError("valid_values.sectors", "is required and cannot be empty")
	}
	if len(r.ValidValues.Professions) == 0 {
		return NewConfigError("valid_values.professions", "is required and cannot be empty")
	}
	if r.QualityThresholds.CompletenessTarget <= 0 || r.QualityThresholds.CompletenessTarget > 100 {
		return NewConfigError("quality_thresholds.completeness_target", "must be in (0, 100]")
	}
	if r.QualityThresholds.MaxOutlierPercentage < 0 || r.QualityThresholds.MaxOutlierPercentage > 100 {
		return NewConfigError("quality_thresholds.max_outlier_percentage", "must be in [0, 100]")
	}
	if r.CleaningStrategies.MissingValues.DropThreshold < 0 || r.CleaningStrategies.MissingValues.DropThreshold > 100 {
		return NewConfigError("cleaning_strategies.missing_values.drop_threshold", "must be in [0, 100]")
	}
	return nil
}

// DropThresholdOrDefault returns the configured column-drop threshold,
// defaulting to 50 percent when unset.
func (r *CleaningRules) DropThresholdOrDefault() float64 {
	if r.CleaningStrategies.MissingValues.DropThreshold == 0 {
		return 50.0
	}
	return r.CleaningStrategies.MissingValues.DropThreshold
}
