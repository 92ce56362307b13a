// pkg/validator/errors.go
package validator

import (
	"fmt"
	"strings"

	"workforce-capacity-etl/pkg/table"
)

// TypeMismatchError reports a column present with the wrong type.
type TypeMismatchError struct {
	Column string
	Want   table.Type
	Got    table.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %s: expected type %s, got %s", e.Column, e.Want, e.Got)
}

// RangeError reports numeric values outside a declared bound.
type RangeError struct {
	Column     string
	Violations int
	Worst      float64
	Min        float64
	Max        float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("column %s: %d value(s) outside [%v, %v], worst offender %v",
		e.Column, e.Violations, e.Min, e.Max, e.Worst)
}

// DomainError reports categorical values outside a declared vocabulary.
type DomainError struct {
	Column  string
	Invalid []string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("column %s: illegal values not in vocabulary: %s",
		e.Column, strings.Join(e.Invalid, ", "))
}

// DuplicateError reports a uniqueness violation on a key subset.
type DuplicateError struct {
	Columns    []string
	Count      int
	Percentage float64
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("uniqueness violated on [%s]: %d duplicate row(s) (%.2f%%)",
		strings.Join(e.Columns, ", "), e.Count, e.Percentage)
}

// ColumnCompleteness pairs a column with its observed completeness
// percentage.
type ColumnCompleteness struct {
	Column       string
	Completeness float64
}

// CompletenessError reports critical columns whose completeness fell
// below the configured target.
type CompletenessError struct {
	Target  float64
	Columns []ColumnCompleteness
}

func (e *CompletenessError) Error() string {
	parts := make([]string, 0, len(e.Columns))
	for _, c := range e.Columns {
		parts = append(parts, fmt.Sprintf("%s (%.2f%%)", c.Column, c.Completeness))
	}
	return fmt.Sprintf("completeness below target %.2f%%: %s", e.Target, strings.Join(parts, ", "))
}
