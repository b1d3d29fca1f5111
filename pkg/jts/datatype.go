package jts

import "fmt"

// DataType is the coarse value kind recorded per column. Every field placed
// into a column must share the column's recorded type.
type DataType uint8

const (
	TypeUnknown DataType = iota
	TypeNumber
	TypeText
	TypeTime
	TypeCoordinates
	TypeMetrics
)

func (d DataType) String() string {
	switch d {
	case TypeNumber:
		return "NUMBER"
	case TypeText:
		return "TEXT"
	case TypeTime:
		return "TIME"
	case TypeCoordinates:
		return "COORDINATES"
	case TypeMetrics:
		return "METRICS"
	default:
		return "UNKNOWN"
	}
}

// ParseDataType maps a wire name to a DataType. Unknown names and the empty
// string map to TypeUnknown without error; header columns may omit the type.
func ParseDataType(s string) DataType {
	switch s {
	case "NUMBER":
		return TypeNumber
	case "TEXT":
		return TypeText
	case "TIME":
		return TypeTime
	case "COORDINATES":
		return TypeCoordinates
	case "METRICS":
		return TypeMetrics
	default:
		return TypeUnknown
	}
}

// checkTypes returns ErrTypeMismatch when both types are known and differ.
// TypeUnknown is compatible with anything: a column's type binds on the
// first typed field and an explicitly null value carries no type.
func checkTypes(recorded, incoming DataType) error {
	if recorded == TypeUnknown || incoming == TypeUnknown {
		return nil
	}
	if recorded != incoming {
		return fmt.Errorf("%w: column is %s, field is %s", ErrTypeMismatch, recorded, incoming)
	}
	return nil
}
