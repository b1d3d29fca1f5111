package jts

import "errors"

// Sentinel errors returned by the package. Callers distinguish recoverable
// write conflicts from caller contract violations with errors.Is.
var (
	// ErrTypeMismatch indicates a field's data type conflicts with the type
	// already recorded for its column.
	ErrTypeMismatch = errors.New("data type mismatch")

	// ErrExistingRecords indicates a fail-on-existing write mode found
	// records already present. This is an expected conflict, not a
	// programming error; callers may retry with a different mode.
	ErrExistingRecords = errors.New("existing records")

	// ErrUnsupportedValue indicates a raw value of a type the field
	// coercion rules do not accept.
	ErrUnsupportedValue = errors.New("unsupported value type")

	// ErrValueType indicates a typed accessor was called on a field whose
	// stored value is of a different type.
	ErrValueType = errors.New("value is of a different type")

	// ErrQualityRange indicates a user quality outside 0-65535.
	ErrQualityRange = errors.New("invalid user quality, must be between 0 and 65535")

	// ErrCoordinateRange indicates a latitude outside +/-90 or a longitude
	// outside +/-180.
	ErrCoordinateRange = errors.New("coordinate out of range")

	// ErrWriteMode indicates an unknown write mode value.
	ErrWriteMode = errors.New("unknown write mode")

	// ErrDelimiterCollision indicates a document format whose delimiters or
	// text qualifier collide with each other.
	ErrDelimiterCollision = errors.New("delimiter collision")
)
