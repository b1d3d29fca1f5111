package jts

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	fixedCellWidth    = 30
	fixedCellTruncate = 24
)

// WriteDelimited writes the table as delimited text, one line per record:
// the rendered timestamp, then one cell per column index from zero through
// the highest populated index. Absent fields render as the bare delimiter
// so cells stay aligned. When enabled and a header with columns is
// supplied, three header lines (ids, timestamp plus names, units) are
// written first.
func WriteDelimited[K comparable](w io.Writer, t *Table[K], header *DocumentHeader, format DocumentFormat) error {
	if err := format.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if format.HeaderEnabled && header != nil && len(header.Columns) > 0 {
		writeDelimitedHeader(bw, header, format)
	}
	if indexes := t.ColumnIndexes(); len(indexes) > 0 {
		last := indexes[len(indexes)-1]
		loc := t.Zone()
		for _, key := range t.rowKeys() {
			fields := t.fieldsAtKey(key)
			bw.WriteString(formatTimestamp(keyTime(key, loc), format.TimeFormat))
			for i := 0; i <= last; i++ {
				bw.WriteString(format.Delimiter)
				field := fields[i]
				if v := field.Value(); v != nil {
					bw.WriteString(renderValue(v, columnFormat(header, i), format, loc))
				}
				if format.QualityEnabled {
					bw.WriteString(renderQualityCell(field, format))
				}
				if format.AnnotationsEnabled {
					bw.WriteString(renderAnnotationCell(field, format))
				}
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// WriteFixedWidth writes the table as aligned 30 character cells, one line
// per record with an ISO timestamp cell first. Cell content longer than 24
// characters is truncated with an ellipsis.
func WriteFixedWidth[K comparable](w io.Writer, t *Table[K], header *DocumentHeader, format DocumentFormat) error {
	bw := bufio.NewWriter(w)
	if format.HeaderEnabled && header != nil && len(header.Columns) > 0 {
		writeFixedWidthHeader(bw, header)
	}
	if indexes := t.ColumnIndexes(); len(indexes) > 0 {
		last := indexes[len(indexes)-1]
		loc := t.Zone()
		for _, key := range t.rowKeys() {
			fields := t.fieldsAtKey(key)
			fmt.Fprintf(bw, "%-*s", fixedCellWidth, formatISO(keyTime(key, loc)))
			for i := 0; i <= last; i++ {
				var cell strings.Builder
				if field, ok := fields[i]; ok {
					if v := field.Value(); v != nil {
						cell.WriteString(renderValue(v, columnFormat(header, i), format, loc))
					}
					if format.QualityEnabled {
						cell.WriteString(renderQualityCell(field, format))
					}
					if format.AnnotationsEnabled {
						cell.WriteString(renderAnnotationCell(field, format))
					}
				}
				fmt.Fprintf(bw, "%-*s", fixedCellWidth, truncateCell(cell.String()))
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func writeDelimitedHeader(bw *bufio.Writer, h *DocumentHeader, f DocumentFormat) {
	q, d := f.TextQualifier, f.Delimiter
	var idLine, nameLine, unitsLine strings.Builder
	idLine.WriteString(q + "Id" + q)
	nameLine.WriteString(q + "Timestamp" + q)
	unitsLine.WriteString(q + "Units" + q)
	for i := 0; i <= h.lastColumnIndex(); i++ {
		col := h.Columns[i]
		id, name := col.ID, col.Name
		var quality, annotation string
		if f.QualityEnabled {
			switch f.QualityStyle {
			case AttributeDelimitedWithValue:
				id += f.QualityDelimiter + "Quality"
				name += f.QualityDelimiter + "Quality"
			case AttributeSeparateValue:
				quality = d + q + name + " [Quality]" + q
			}
		}
		if f.AnnotationsEnabled {
			switch f.AnnotationStyle {
			case AttributeDelimitedWithValue:
				id += f.AnnotationDelimiter + "Annotation"
				name += f.AnnotationDelimiter + "Annotation"
			case AttributeSeparateValue:
				annotation = d + q + name + " [Annotation]" + q
			}
		}
		idLine.WriteString(d + q + id + q + quality + annotation)
		nameLine.WriteString(d + q + name + q + quality + annotation)
		unitsLine.WriteString(d + q + col.Units + q)
	}
	bw.WriteString(idLine.String())
	bw.WriteByte('\n')
	bw.WriteString(nameLine.String())
	bw.WriteByte('\n')
	bw.WriteString(unitsLine.String())
	bw.WriteByte('\n')
}

func writeFixedWidthHeader(bw *bufio.Writer, h *DocumentHeader) {
	fmt.Fprintf(bw, "%-*s", fixedCellWidth, "Timestamp")
	for i := 0; i <= h.lastColumnIndex(); i++ {
		fmt.Fprintf(bw, "%-*s", fixedCellWidth, h.Columns[i].Name)
	}
	bw.WriteByte('\n')
}

// renderValue renders a single value for text output: numbers through the
// column's decimal pattern, times through the column's time pattern in the
// given zone, text wrapped in the qualifier, complex values in their
// textual form.
func renderValue(v Value, pattern string, format DocumentFormat, loc *time.Location) string {
	switch val := v.(type) {
	case Number:
		return formatNumber(float64(val), pattern)
	case Time:
		return formatTimestamp(val.Value().In(loc), pattern)
	case Text:
		return format.TextQualifier + string(val) + format.TextQualifier
	default:
		return fmt.Sprint(v)
	}
}

// renderQualityCell renders the quality attribute behind its delimiter, or
// in its own cell, per the configured style. A missing quality still
// produces the bare delimiter so cells stay aligned.
func renderQualityCell(f Field, format DocumentFormat) string {
	q, ok := f.CombinedQuality()
	var lead string
	switch format.QualityStyle {
	case AttributeDelimitedWithValue:
		lead = format.QualityDelimiter
	case AttributeSeparateValue:
		lead = format.Delimiter
	default:
		return ""
	}
	if !ok {
		return lead
	}
	return lead + strconv.FormatInt(int64(q), 10)
}

func renderAnnotationCell(f Field, format DocumentFormat) string {
	a, ok := f.Annotation()
	var lead string
	switch format.AnnotationStyle {
	case AttributeDelimitedWithValue:
		lead = format.AnnotationDelimiter
	case AttributeSeparateValue:
		lead = format.Delimiter
	default:
		return ""
	}
	if !ok {
		return lead
	}
	return lead + a
}

func columnFormat(h *DocumentHeader, index int) string {
	if h == nil {
		return ""
	}
	return h.ColumnFormat(index)
}

func truncateCell(s string) string {
	if len(s) > fixedCellTruncate {
		return s[:fixedCellTruncate] + "..."
	}
	return s
}
