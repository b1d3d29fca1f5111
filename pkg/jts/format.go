package jts

import "fmt"

// FormatType identifies a document output encoding.
type FormatType uint8

const (
	FormatTypeJSONStandard FormatType = iota
	FormatTypeJSON
	FormatTypeCSV
	FormatTypeFixedWidth
)

func (ft FormatType) String() string {
	switch ft {
	case FormatTypeJSONStandard:
		return "JSON_STANDARD"
	case FormatTypeJSON:
		return "JSON"
	case FormatTypeCSV:
		return "CSV"
	case FormatTypeFixedWidth:
		return "FIXED_WIDTH"
	default:
		return "UNKNOWN"
	}
}

// Extension returns the conventional file extension for the format type.
func (ft FormatType) Extension() string {
	switch ft {
	case FormatTypeCSV:
		return "csv"
	case FormatTypeFixedWidth:
		return "dat"
	default:
		return "json"
	}
}

// AttributeStyle controls how a quality or annotation attribute is laid
// out in delimited text: appended to the value cell behind its own
// delimiter, or written as a separate cell.
type AttributeStyle uint8

const (
	AttributeDisabled AttributeStyle = iota
	AttributeDelimitedWithValue
	AttributeSeparateValue
)

func (s AttributeStyle) String() string {
	switch s {
	case AttributeDelimitedWithValue:
		return "DELIMITED_WITH_VALUE"
	case AttributeSeparateValue:
		return "SEPARATE_VALUE"
	default:
		return "DISABLED"
	}
}

// DocumentFormat holds the output settings consumed by the document
// codecs and the text renderers. Values are copied freely; presets below
// are starting points callers adjust per output.
type DocumentFormat struct {
	Type               FormatType
	TimeFormat         string
	HeaderEnabled      bool
	QualityEnabled     bool
	AnnotationsEnabled bool

	// Delimited text settings.
	Delimiter           string
	TextQualifier       string
	QualityStyle        AttributeStyle
	QualityDelimiter    string
	AnnotationStyle     AttributeStyle
	AnnotationDelimiter string
}

// FormatCSV renders delimited text with quoted cells, annotations appended
// behind ";" and quality omitted unless enabled.
var FormatCSV = DocumentFormat{
	Type:                FormatTypeCSV,
	TimeFormat:          DefaultTimeFormat,
	HeaderEnabled:       true,
	QualityEnabled:      false,
	AnnotationsEnabled:  true,
	Delimiter:           ",",
	TextQualifier:       `"`,
	QualityStyle:        AttributeDelimitedWithValue,
	QualityDelimiter:    ":",
	AnnotationStyle:     AttributeDelimitedWithValue,
	AnnotationDelimiter: ";",
}

// FormatFixedWidth renders aligned 30 character columns, values only.
var FormatFixedWidth = DocumentFormat{
	Type:          FormatTypeFixedWidth,
	TimeFormat:    DefaultTimeFormat,
	HeaderEnabled: true,
}

// FormatJSON is the human readable JSON flavor: indented, one record per
// line, timestamps as zoned ISO strings.
var FormatJSON = DocumentFormat{
	Type:               FormatTypeJSON,
	TimeFormat:         DefaultTimeFormat,
	HeaderEnabled:      true,
	AnnotationsEnabled: true,
}

// FormatJSONStandard is the interchange JSON flavor: compact, timestamps
// as epoch millisecond objects.
var FormatJSONStandard = DocumentFormat{
	Type:               FormatTypeJSONStandard,
	TimeFormat:         DefaultTimeFormat,
	HeaderEnabled:      true,
	AnnotationsEnabled: true,
}

// Pretty reports whether the format is the human readable JSON flavor.
func (f DocumentFormat) Pretty() bool { return f.Type == FormatTypeJSON }

// Validate checks the delimited text settings for collisions. The field
// delimiter, the text qualifier and every enabled attribute delimiter
// must be pairwise distinct, otherwise output cannot be parsed back.
func (f DocumentFormat) Validate() error {
	if f.Type != FormatTypeCSV {
		return nil
	}
	type delim struct{ role, value string }
	active := []delim{
		{"delimiter", f.Delimiter},
		{"text qualifier", f.TextQualifier},
	}
	if f.QualityEnabled && f.QualityStyle == AttributeDelimitedWithValue {
		active = append(active, delim{"quality delimiter", f.QualityDelimiter})
	}
	if f.AnnotationsEnabled && f.AnnotationStyle == AttributeDelimitedWithValue {
		active = append(active, delim{"annotation delimiter", f.AnnotationDelimiter})
	}
	seen := make(map[string]string, len(active))
	for _, a := range active {
		if a.value == "" {
			continue
		}
		if prev, ok := seen[a.value]; ok {
			return fmt.Errorf("%w: %s %q equals %s", ErrDelimiterCollision, a.role, a.value, prev)
		}
		seen[a.value] = a.role
	}
	return nil
}
