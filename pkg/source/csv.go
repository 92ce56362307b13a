// pkg/source/csv.go

// Package source reads the raw CSV extracts into tables. Every column
// comes in as a string series; the cleaning pipeline owns all type
// casting so a malformed cell is counted there, not lost here.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"workforce-capacity-etl/pkg/table"
)

// Raw file names produced by the extraction step.
const (
	FileDoctors      = "workforce_doctors.csv"
	FileNurses       = "workforce_nurses.csv"
	FilePharmacists  = "workforce_pharmacists.csv"
	FileHospitalBeds = "capacity_hospital_beds.csv"
	FilePrimaryCare  = "capacity_primary_care.csv"
)

// CSVReader loads raw CSV files from a data directory.
type CSVReader struct {
	logger *zap.Logger
}

// NewCSVReader creates a reader.
func NewCSVReader(logger *zap.Logger) (*CSVReader, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &CSVReader{logger: logger}, nil
}

// Read parses one CSV file into a table. The first record is the
// header; empty cells become nulls.
func (r *CSVReader) Read(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file %s is empty, expected a header row", path)
	}

	header := records[0]
	columns := make([][]any, len(header))
	for i := range columns {
		columns[i] = make([]any, 0, len(records)-1)
	}
	for _, row := range records[1:] {
		for i, cell := range row {
			if cell == "" {
				columns[i] = append(columns[i], nil)
			} else {
				columns[i] = append(columns[i], cell)
			}
		}
	}

	series := make([]*table.Series, len(header))
	for i, name := range header {
		series[i] = table.NewSeries(name, table.TypeString, columns[i])
	}
	t, err := table.New(series...)
	if err != nil {
		return nil, fmt.Errorf("invalid table in %s: %w", path, err)
	}

	r.logger.Info("Loaded raw file",
		zap.String("path", path),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumCols()))
	return t, nil
}

// RawWorkforce holds the three profession-specific raw tables.
type RawWorkforce struct {
	Doctors     *table.Table
	Nurses      *table.Table
	Pharmacists *table.Table
}

// RawCapacity holds the two institution-specific raw tables.
type RawCapacity struct {
	HospitalBeds *table.Table
	PrimaryCare  *table.Table
}

// LoadWorkforce reads the three workforce extracts from dir.
func (r *CSVReader) LoadWorkforce(dir string) (*RawWorkforce, error) {
	doctors, err := r.Read(filepath.Join(dir, FileDoctors))
	if err != nil {
		return nil, err
	}
	nurses, err := r.Read(filepath.Join(dir, FileNurses))
	if err != nil {
		return nil, err
	}
	pharmacists, err := r.Read(filepath.Join(dir, FilePharmacists))
	if err != nil {
		return nil, err
	}
	return &RawWorkforce{Doctors: doctors, Nurses: nurses, Pharmacists: pharmacists}, nil
}

// LoadCapacity reads the two capacity extracts from dir.
func (r *CSVReader) LoadCapacity(dir string) (*RawCapacity, error) {
	beds, err := r.Read(filepath.Join(dir, FileHospitalBeds))
	if err != nil {
		return nil, err
	}
	primary, err := r.Read(filepath.Join(dir, FilePrimaryCare))
	if err != nil {
		return nil, err
	}
	return &RawCapacity{HospitalBeds: beds, PrimaryCare: primary}, nil
}
