// pkg/pipeline/pipeline.go

// Package pipeline drives the full cleaning run: load raw extracts,
// clean each dataset through the staged transformations, validate,
// persist, and report. Each stage consumes an input table and produces
// a new one; a fatal error at any stage aborts the whole run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/cleaner"
	"workforce-capacity-etl/pkg/config"
	"workforce-capacity-etl/pkg/model"
	"workforce-capacity-etl/pkg/quality"
	"workforce-capacity-etl/pkg/sink"
	"workforce-capacity-etl/pkg/source"
	"workforce-capacity-etl/pkg/table"
	"workforce-capacity-etl/pkg/validator"
)

// DatasetResult is the outcome of cleaning one dataset.
type DatasetResult struct {
	Table      *table.Table
	Report     *quality.TableReport
	Validation *validator.Result
}

// RunResult is the outcome of a full pipeline run.
type RunResult struct {
	RunID      string
	Workforce  *DatasetResult
	Capacity   *DatasetResult
	ReportPath string
	Metrics    *RunMetrics
}

// Pipeline wires the cleaning stages together under one rule set.
type Pipeline struct {
	logger    *zap.Logger
	rules     *config.CleaningRules
	cleaner   *cleaner.Cleaner
	validator *validator.Validator
	strategy  cleaner.MissingStrategy
	method    cleaner.OutlierMethod
}

// New builds a pipeline from loaded cleaning rules. The missing-value
// strategy named in the rules is parsed here so a bad strategy fails
// before any data is touched.
func New(logger *zap.Logger, rules *config.CleaningRules) (*Pipeline, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if rules == nil {
		return nil, errors.New("cleaning rules are required")
	}

	c, err := cleaner.New(logger)
	if err != nil {
		return nil, err
	}
	v, err := validator.New(logger)
	if err != nil {
		return nil, err
	}
	strategy, err := cleaner.ParseMissingStrategy(rules.CleaningStrategies.MissingValues.Strategy)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		logger:    logger,
		rules:     rules,
		cleaner:   c,
		validator: v,
		strategy:  strategy,
		method:    cleaner.MethodZScore,
	}, nil
}

// Run executes the complete pipeline: load, clean, validate, persist,
// report. Validation failure is fatal; the quality report is still
// written so the failures are inspectable.
func (p *Pipeline) Run(ctx context.Context, reader *source.CSVReader, sinks []sink.Sink, settings *config.Settings) (*RunResult, error) {
	runID := uuid.New().String()
	metrics := NewRunMetrics(runID, p.logger)
	p.logger.Info("Starting data cleaning pipeline",
		zap.String("runID", runID),
		zap.String("dataDir", settings.DataDir))

	rawWorkforce, err := reader.LoadWorkforce(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load workforce data: %w", err)
	}
	rawCapacity, err := reader.LoadCapacity(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load capacity data: %w", err)
	}

	workforce, err := p.CleanWorkforce(rawWorkforce, metrics)
	if err != nil {
		return nil, fmt.Errorf("workforce cleaning failed: %w", err)
	}
	capacity, err := p.CleanCapacity(rawCapacity, metrics)
	if err != nil {
		return nil, fmt.Errorf("capacity cleaning failed: %w", err)
	}

	result := &RunResult{
		RunID:     runID,
		Workforce: workforce,
		Capacity:  capacity,
		Metrics:   metrics,
	}

	reportPath, reportErr := p.writeReports(workforce, capacity, settings)
	result.ReportPath = reportPath
	if reportErr != nil {
		p.logger.Warn("Failed to write quality report", zap.Error(reportErr))
	}

	if err := workforce.Validation.Err(); err != nil {
		return result, err
	}
	if err := capacity.Validation.Err(); err != nil {
		return result, err
	}

	if err := p.persist(ctx, workforce.Table, capacity.Table, sinks); err != nil {
		return result, err
	}

	metrics.Complete()
	return result, nil
}

// CleanWorkforce runs the staged transformations over the three
// profession extracts and validates the unified result.
func (p *Pipeline) CleanWorkforce(raw *source.RawWorkforce, metrics *RunMetrics) (*DatasetResult, error) {
	const dataset = "workforce"
	report := &quality.TableReport{}

	doctors, err := p.cleaner.RenamePresent(raw.Doctors, p.rules.WorkforceColumnMappings)
	if err != nil {
		return nil, err
	}
	nurses, err := p.cleaner.RenamePresent(raw.Nurses, p.rules.WorkforceColumnMappings)
	if err != nil {
		return nil, err
	}
	pharmacists, err := p.cleaner.RenamePresent(raw.Pharmacists, p.rules.WorkforceColumnMappings)
	if err != nil {
		return nil, err
	}

	rawRows := doctors.NumRows() + nurses.NumRows() + pharmacists.NumRows()
	sm := metrics.StartStage(dataset, "unify", rawRows)
	t, err := p.cleaner.Unify(model.ColumnProfession, []cleaner.UnifyInput{
		{Table: doctors, Discriminator: model.ProfessionDoctor, Source: "workforce_doctors"},
		{Table: nurses, Discriminator: model.ProfessionNurse, Source: "workforce_nurses"},
		{Table: pharmacists, Discriminator: model.ProfessionPharmacist, Source: "workforce_pharmacists"},
	})
	if err != nil {
		return nil, err
	}
	metrics.EndStage(sm, t.NumRows())

	types := map[string]table.Type{
		model.ColumnYear:       table.TypeInt,
		model.ColumnCount:      table.TypeInt,
		model.ColumnSector:     table.TypeCategory,
		model.ColumnProfession: table.TypeCategory,
	}
	if t.HasColumn(model.ColumnNurseType) {
		types[model.ColumnNurseType] = table.TypeCategory
	}
	if t.HasColumn(model.ColumnSpecialistCategory) {
		types[model.ColumnSpecialistCategory] = table.TypeCategory
	}

	t, err = p.cleanCommon(t, dataset, types, []string{model.ColumnCount}, []string{
		model.ColumnYear, model.ColumnSector, model.ColumnProfession,
		model.ColumnSpecialistCategory, model.ColumnNurseType,
	}, metrics, report)
	if err != nil {
		return nil, err
	}

	return p.finish(t, dataset, rawRows, validator.WorkforceRules(p.rules), report)
}

// CleanCapacity runs the staged transformations over the two
// institution extracts and validates the unified result.
func (p *Pipeline) CleanCapacity(raw *source.RawCapacity, metrics *RunMetrics) (*DatasetResult, error) {
	const dataset = "capacity"
	report := &quality.TableReport{}

	beds, err := p.cleaner.RenamePresent(raw.HospitalBeds, p.rules.CapacityColumnMappings)
	if err != nil {
		return nil, err
	}
	primary, err := p.cleaner.RenamePresent(raw.PrimaryCare, p.rules.CapacityColumnMappings)
	if err != nil {
		return nil, err
	}

	rawRows := beds.NumRows() + primary.NumRows()
	sm := metrics.StartStage(dataset, "unify", rawRows)
	t, err := p.cleaner.Unify(model.ColumnInstitutionCategory, []cleaner.UnifyInput{
		{Table: beds, Discriminator: model.InstitutionHospital, Source: "capacity_hospital_beds"},
		{Table: primary, Discriminator: model.InstitutionPrimaryCare, Source: "capacity_primary_care"},
	})
	if err != nil {
		return nil, err
	}
	metrics.EndStage(sm, t.NumRows())

	types := map[string]table.Type{
		model.ColumnYear:          table.TypeInt,
		model.ColumnNumFacilities: table.TypeInt,
	}
	if t.HasColumn(model.ColumnNumBeds) {
		types[model.ColumnNumBeds] = table.TypeInt
	}
	if t.HasColumn(model.ColumnSector) {
		types[model.ColumnSector] = table.TypeCategory
	}

	outlierCols := []string{model.ColumnNumFacilities}
	if t.HasColumn(model.ColumnNumBeds) {
		outlierCols = append(outlierCols, model.ColumnNumBeds)
	}

	t, err = p.cleanCommon(t, dataset, types, outlierCols, []string{
		model.ColumnYear, model.ColumnInstitutionType, model.ColumnSector, model.ColumnSourceTable,
	}, metrics, report)
	if err != nil {
		return nil, err
	}

	return p.finish(t, dataset, rawRows, validator.CapacityRules(p.rules), report)
}

// cleanCommon applies the shared stage sequence after unification:
// cast, sector standardization, missing-value handling, dedupe, and
// outlier flagging.
func (p *Pipeline) cleanCommon(t *table.Table, dataset string, types map[string]table.Type, outlierCols, dedupeKey []string, metrics *RunMetrics, report *quality.TableReport) (*table.Table, error) {
	sm := metrics.StartStage(dataset, "cast", t.NumRows())
	t, failed, err := p.cleaner.Cast(t, types)
	if err != nil {
		return nil, err
	}
	report.CastFailures = failed
	metrics.EndStage(sm, t.NumRows())

	if t.HasColumn(model.ColumnSector) {
		sm = metrics.StartStage(dataset, "standardize", t.NumRows())
		var changed int
		t, changed, err = p.cleaner.StandardizeCategories(t, model.ColumnSector, p.rules.SectorStandardization)
		if err != nil {
			return nil, err
		}
		report.CategoryChanges = changed
		metrics.EndStage(sm, t.NumRows())
	}

	analysis := p.cleaner.AnalyzeMissing(t)
	report.Completeness = analysis.Completeness

	sm = metrics.StartStage(dataset, "missing", t.NumRows())
	before := t.NumRows()
	t, err = p.cleaner.HandleMissing(t, p.strategy, p.rules.DropThresholdOrDefault())
	if err != nil {
		return nil, err
	}
	report.RowsDroppedByNull = before - t.NumRows()
	metrics.EndStage(sm, t.NumRows())

	sm = metrics.StartStage(dataset, "dedupe", t.NumRows())
	removed, t, err := p.cleaner.Dedupe(t, dedupeKey, cleaner.KeepFirst)
	if err != nil {
		return nil, err
	}
	report.DuplicatesRemoved = removed
	metrics.EndStage(sm, t.NumRows())

	sm = metrics.StartStage(dataset, "outliers", t.NumRows())
	t, err = p.cleaner.FlagOutliers(t, outlierCols, p.rules.ValueConstraints.OutlierThresholdStdev, p.method)
	if err != nil {
		return nil, err
	}
	metrics.EndStage(sm, t.NumRows())

	return t, nil
}

// finish snapshots the final table into the report, runs validation,
// and assembles the dataset result.
func (p *Pipeline) finish(t *table.Table, dataset string, rawRows int, rules validator.RuleSet, partial *quality.TableReport) (*DatasetResult, error) {
	report := quality.NewTableReport(dataset, t)
	report.RawRows = rawRows
	report.CastFailures = partial.CastFailures
	report.CategoryChanges = partial.CategoryChanges
	report.RowsDroppedByNull = partial.RowsDroppedByNull
	report.DuplicatesRemoved = partial.DuplicatesRemoved
	report.Completeness = partial.Completeness

	if s, ok := t.Column(cleaner.OutlierFlagColumn); ok {
		flagged := 0
		for i := 0; i < s.Len(); i++ {
			if v, _ := s.Value(i).(bool); v {
				flagged++
			}
		}
		report.OutlierRows = flagged
		if t.NumRows() > 0 {
			report.OutlierPercentage = 100 * float64(flagged) / float64(t.NumRows())
		}
		if report.OutlierPercentage > p.rules.QualityThresholds.MaxOutlierPercentage {
			p.logger.Warn("Outlier percentage exceeds quality threshold",
				zap.String("dataset", dataset),
				zap.Float64("outlierPercentage", report.OutlierPercentage),
				zap.Float64("threshold", p.rules.QualityThresholds.MaxOutlierPercentage))
		}
	}

	result := p.validator.Validate(t, rules)
	report.RecordValidation(result)

	return &DatasetResult{Table: t, Report: report, Validation: result}, nil
}

// persist converts the canonical tables to records and writes them
// through every configured sink.
func (p *Pipeline) persist(ctx context.Context, workforce, capacity *table.Table, sinks []sink.Sink) error {
	workforceRecords, err := model.WorkforceFromTable(workforce)
	if err != nil {
		return fmt.Errorf("workforce conversion failed: %w", err)
	}
	capacityRecords, err := model.CapacityFromTable(capacity)
	if err != nil {
		return fmt.Errorf("capacity conversion failed: %w", err)
	}

	for _, s := range sinks {
		if err := s.WriteWorkforce(ctx, workforceRecords); err != nil {
			return err
		}
		if err := s.WriteCapacity(ctx, capacityRecords); err != nil {
			return err
		}
	}
	return nil
}

// writeReports renders the quality report and the data dictionary.
func (p *Pipeline) writeReports(workforce, capacity *DatasetResult, settings *config.Settings) (string, error) {
	if err := os.MkdirAll(settings.ReportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	workforce.Report.Dataset = "Cleaned Workforce Data"
	capacity.Report.Dataset = "Cleaned Capacity Data"

	timestamp := time.Now().Format("20060102_150405")
	reportPath := filepath.Join(settings.ReportDir, fmt.Sprintf("data_quality_report_%s.md", timestamp))
	if err := os.WriteFile(reportPath, []byte(quality.Render(workforce.Report, capacity.Report)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write quality report: %w", err)
	}
	p.logger.Info("Saved quality report", zap.String("path", reportPath))

	if err := os.MkdirAll(settings.OutDir, 0o755); err != nil {
		return reportPath, fmt.Errorf("failed to create output directory: %w", err)
	}
	dictPath := filepath.Join(settings.OutDir, "README.md")
	dictionary := quality.DataDictionary(workforce.Table, capacity.Table)
	if err := os.WriteFile(dictPath, []byte(dictionary), 0o644); err != nil {
		return reportPath, fmt.Errorf("failed to write data dictionary: %w", err)
	}
	p.logger.Info("Saved data dictionary", zap.String("path", dictPath))

	return reportPath, nil
}
