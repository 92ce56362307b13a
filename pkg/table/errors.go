// pkg/table/errors.go
package table

import (
	"fmt"
	"strings"
)

// SchemaError reports columns that are absent from a table when an
// operation required them to exist.
type SchemaError struct {
	Op      string   // operation that failed (e.g. "rename", "cast")
	Missing []string // columns that were expected but not found
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: columns not found in table: %s", e.Op, strings.Join(e.Missing, ", "))
}

// NewSchemaError creates a SchemaError for the given operation and columns.
func NewSchemaError(op string, missing []string) *SchemaError {
	return &SchemaError{Op: op, Missing: missing}
}
