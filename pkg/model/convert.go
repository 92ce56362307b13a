// pkg/model/convert.go
package model

import (
	"fmt"

	"workforce-capacity-etl/pkg/table"
)

// WorkforceFromTable converts a validated canonical workforce table
// into records. Required columns must be present and non-null; the
// validator guarantees this for tables that passed validation, so a
// failure here indicates the caller skipped validation.
func WorkforceFromTable(t *table.Table) ([]WorkforceRecord, error) {
	required := []string{
		ColumnYear, ColumnSector, ColumnProfession, ColumnCount,
		ColumnSourceTable, ColumnOutlierFlag, ColumnHasMissingValues,
	}
	if missing := t.MissingColumns(required); len(missing) > 0 {
		return nil, table.NewSchemaError("workforce records", missing)
	}

	records := make([]WorkforceRecord, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		year, err := intCell(t, ColumnYear, i)
		if err != nil {
			return nil, err
		}
		count, err := intCell(t, ColumnCount, i)
		if err != nil {
			return nil, err
		}
		sector, err := stringCell(t, ColumnSector, i)
		if err != nil {
			return nil, err
		}
		profession, err := stringCell(t, ColumnProfession, i)
		if err != nil {
			return nil, err
		}
		source, err := stringCell(t, ColumnSourceTable, i)
		if err != nil {
			return nil, err
		}
		records = append(records, WorkforceRecord{
			Year:               year,
			Sector:             sector,
			Profession:         profession,
			Count:              count,
			SpecialistCategory: optionalStringCell(t, ColumnSpecialistCategory, i),
			NurseType:          optionalStringCell(t, ColumnNurseType, i),
			SourceTable:        source,
			OutlierFlag:        boolCell(t, ColumnOutlierFlag, i),
			HasMissingValues:   boolCell(t, ColumnHasMissingValues, i),
		})
	}
	return records, nil
}

// CapacityFromTable converts a validated canonical capacity table into
// records.
func CapacityFromTable(t *table.Table) ([]CapacityRecord, error) {
	required := []string{
		ColumnYear, ColumnInstitutionType, ColumnInstitutionCategory,
		ColumnNumFacilities, ColumnSourceTable, ColumnOutlierFlag, ColumnHasMissingValues,
	}
	if missing := t.MissingColumns(required); len(missing) > 0 {
		return nil, table.NewSchemaError("capacity records", missing)
	}

	records := make([]CapacityRecord, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		year, err := intCell(t, ColumnYear, i)
		if err != nil {
			return nil, err
		}
		facilities, err := intCell(t, ColumnNumFacilities, i)
		if err != nil {
			return nil, err
		}
		institutionType, err := stringCell(t, ColumnInstitutionType, i)
		if err != nil {
			return nil, err
		}
		category, err := stringCell(t, ColumnInstitutionCategory, i)
		if err != nil {
			return nil, err
		}
		source, err := stringCell(t, ColumnSourceTable, i)
		if err != nil {
			return nil, err
		}
		records = append(records, CapacityRecord{
			Year:                year,
			InstitutionType:     institutionType,
			Sector:              optionalStringCell(t, ColumnSector, i),
			InstitutionCategory: category,
			NumFacilities:       facilities,
			NumBeds:             optionalIntCell(t, ColumnNumBeds, i),
			SourceTable:         source,
			OutlierFlag:         boolCell(t, ColumnOutlierFlag, i),
			HasMissingValues:    boolCell(t, ColumnHasMissingValues, i),
		})
	}
	return records, nil
}

func intCell(t *table.Table, column string, row int) (int32, error) {
	s, _ := t.Column(column)
	v, ok := s.Value(row).(int64)
	if !ok {
		return 0, fmt.Errorf("row %d: column %s: expected non-null integer, got %v", row, column, s.Value(row))
	}
	return int32(v), nil
}

func stringCell(t *table.Table, column string, row int) (string, error) {
	s, _ := t.Column(column)
	v, ok := s.Value(row).(string)
	if !ok {
		return "", fmt.Errorf("row %d: column %s: expected non-null string, got %v", row, column, s.Value(row))
	}
	return v, nil
}

func boolCell(t *table.Table, column string, row int) bool {
	s, _ := t.Column(column)
	v, _ := s.Value(row).(bool)
	return v
}

func optionalStringCell(t *table.Table, column string, row int) *string {
	s, ok := t.Column(column)
	if !ok {
		return nil
	}
	v, ok := s.Value(row).(string)
	if !ok {
		return nil
	}
	return &v
}

func optionalIntCell(t *table.Table, column string, row int) *int32 {
	s, ok := t.Column(column)
	if !ok {
		return nil
	}
	v, ok := s.Value(row).(int64)
	if !ok {
		return nil
	}
	out := int32(v)
	return &out
}
