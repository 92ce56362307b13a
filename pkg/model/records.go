// pkg/model/records.go

// Package model defines the canonical record types the pipeline
// produces and the closed vocabularies their categorical fields draw
// from.
package model

// Canonical column names shared by both datasets.
const (
	ColumnYear             = "year"
	ColumnSector           = "sector"
	ColumnSourceTable      = "source_table"
	ColumnOutlierFlag      = "outlier_flag"
	ColumnHasMissingValues = "has_missing_values"
)

// Workforce-specific canonical columns.
const (
	ColumnProfession         = "profession"
	ColumnCount              = "count"
	ColumnSpecialistCategory = "specialist_category"
	ColumnNurseType          = "nurse_type"
)

// Capacity-specific canonical columns.
const (
	ColumnInstitutionType     = "institution_type"
	ColumnInstitutionCategory = "institution_category"
	ColumnNumFacilities       = "num_facilities"
	ColumnNumBeds             = "num_beds"
)

// Canonical profession values.
const (
	ProfessionDoctor     = "Doctor"
	ProfessionNurse      = "Nurse"
	ProfessionPharmacist = "Pharmacist"
)

// Canonical sector values.
const (
	SectorPublic       = "Public"
	SectorPrivate      = "Private"
	SectorNotForProfit = "Not-for-Profit"
	SectorInactive     = "Inactive"
)

// Canonical institution categories.
const (
	InstitutionHospital    = "Hospital"
	InstitutionPrimaryCare = "Primary Care"
)

// WorkforceRecord is one cleaned workforce observation.
// specialist_category is populated only for doctors, nurse_type only
// for nurses.
type WorkforceRecord struct {
	Year               int32   `parquet:"year" db:"year"`
	Sector             string  `parquet:"sector,dict" db:"sector"`
	Profession         string  `parquet:"profession,dict" db:"profession"`
	Count              int32   `parquet:"count" db:"count"`
	SpecialistCategory *string `parquet:"specialist_category,optional,dict" db:"specialist_category"`
	NurseType          *string `parquet:"nurse_type,optional,dict" db:"nurse_type"`
	SourceTable        string  `parquet:"source_table,dict" db:"source_table"`
	OutlierFlag        bool    `parquet:"outlier_flag" db:"outlier_flag"`
	HasMissingValues   bool    `parquet:"has_missing_values" db:"has_missing_values"`
}

// CapacityRecord is one cleaned capacity observation. num_beds is
// populated only for hospitals; sector may be null because some
// facility types carry no sector in the raw data.
type CapacityRecord struct {
	Year                int32   `parquet:"year" db:"year"`
	InstitutionType     string  `parquet:"institution_type,dict" db:"institution_type"`
	Sector              *string `parquet:"sector,optional,dict" db:"sector"`
	InstitutionCategory string  `parquet:"institution_category,dict" db:"institution_category"`
	NumFacilities       int32   `parquet:"num_facilities" db:"num_facilities"`
	NumBeds             *int32  `parquet:"num_beds,optional" db:"num_beds"`
	SourceTable         string  `parquet:"source_table,dict" db:"source_table"`
	OutlierFlag         bool    `parquet:"outlier_flag" db:"outlier_flag"`
	HasMissingValues    bool    `parquet:"has_missing_values" db:"has_missing_values"`
}
