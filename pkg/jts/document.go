package jts

import (
	"fmt"
	"strings"
	"time"
)

// Envelope identifiers of the interchange format.
const (
	DocType    = "jts"
	SubType    = "TIMESERIES"
	DocVersion = "1.0"
)

// Document pairs a table with an optional header under the fixed envelope
// identifiers. The zero header means the document carries data only.
type Document[K comparable] struct {
	DocType string
	SubType string
	Version string
	Header  *DocumentHeader
	Table   *Table[K]
}

// NewDocument wraps the table under the current envelope identifiers,
// without a header. A nil table is replaced by an empty one.
func NewDocument[K comparable](t *Table[K]) *Document[K] {
	return NewDocumentWithHeader(t, nil)
}

// NewDocumentWithHeader wraps table and header together under the current
// envelope identifiers.
func NewDocumentWithHeader[K comparable](t *Table[K], h *DocumentHeader) *Document[K] {
	if t == nil {
		t = NewTable[K]()
	}
	return &Document[K]{
		DocType: DocType,
		SubType: SubType,
		Version: DocVersion,
		Header:  h,
		Table:   t,
	}
}

// WithHeader returns a copy of the document carrying the given header.
func (d *Document[K]) WithHeader(h *DocumentHeader) *Document[K] {
	out := *d
	out.Header = h
	return &out
}

// WithoutHeader returns a copy of the document with no header.
func (d *Document[K]) WithoutHeader() *Document[K] {
	return d.WithHeader(nil)
}

// HasName reports whether the document header carries a name.
func (d *Document[K]) HasName() bool {
	return d.Header != nil && d.Header.Name != ""
}

// Name returns the header name, or the empty string without a header.
func (d *Document[K]) Name() string {
	if d.Header == nil {
		return ""
	}
	return d.Header.Name
}

// IsEmpty reports whether the document holds no fields.
func (d *Document[K]) IsEmpty() bool {
	return d.Table == nil || d.Table.IsEmpty()
}

// Count returns the number of records in the data section.
func (d *Document[K]) Count() int {
	if d.Table == nil {
		return 0
	}
	return d.Table.RecordCount()
}

// Duration returns the span between the first and last record.
func (d *Document[K]) Duration() time.Duration {
	if d.Table == nil {
		return 0
	}
	return d.Table.Duration()
}

// FirstTimestamp returns the timestamp of the earliest record.
func (d *Document[K]) FirstTimestamp() (time.Time, bool) {
	if d.Table == nil {
		return time.Time{}, false
	}
	return d.Table.FirstTimestamp()
}

// LastTimestamp returns the timestamp of the latest record.
func (d *Document[K]) LastTimestamp() (time.Time, bool) {
	if d.Table == nil {
		return time.Time{}, false
	}
	return d.Table.LastTimestamp()
}

// DelimitedText renders the document as delimited text under the given
// format.
func (d *Document[K]) DelimitedText(format DocumentFormat) (string, error) {
	var sb strings.Builder
	if err := WriteDelimited(&sb, d.Table, d.Header, format); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// CSV renders the document with the CSV preset.
func (d *Document[K]) CSV() (string, error) {
	return d.DelimitedText(FormatCSV)
}

// FixedWidth renders the document with the fixed width preset.
func (d *Document[K]) FixedWidth() (string, error) {
	var sb strings.Builder
	if err := WriteFixedWidth(&sb, d.Table, d.Header, FormatFixedWidth); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Equal reports whether two documents carry the same envelope, header and
// data.
func (d *Document[K]) Equal(other *Document[K]) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.DocType != other.DocType || d.SubType != other.SubType ||
		d.Version != other.Version || !d.Header.Equal(other.Header) {
		return false
	}
	if d.Table == nil || other.Table == nil {
		return d.Table == other.Table
	}
	return d.Table.Equal(other.Table)
}

func (d *Document[K]) String() string {
	out, err := EncodeJSON(d, FormatJSON)
	if err != nil {
		return fmt.Sprintf("jts document (%v)", err)
	}
	return string(out)
}
