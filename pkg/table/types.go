// pkg/table/types.go
package table

import "fmt"

// Type is the closed set of column types the pipeline supports.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeCategory
)

// String returns the configuration name of the type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeCategory:
		return "category"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// ParseType converts a configuration name into a Type.
func ParseType(name string) (Type, error) {
	switch name {
	case "string":
		return TypeString, nil
	case "int":
		return TypeInt, nil
	case "float":
		return TypeFloat, nil
	case "bool":
		return TypeBool, nil
	case "category":
		return TypeCategory, nil
	default:
		return TypeString, fmt.Errorf("unknown column type %q (valid: string, int, float, bool, category)", name)
	}
}
