package jts

import (
	"fmt"
	"strings"
)

// Change summarizes the effect of a merge: how many records were inserted,
// modified or deleted, and which attributes the insertions and
// modifications carried. Changes compose by addition.
type Change struct {
	InsertedRecords     int
	InsertedValues      int
	InsertedQuality     int
	InsertedAnnotations int
	ModifiedRecords     int
	ModifiedValues      int
	ModifiedQuality     int
	ModifiedAnnotations int
	DeletedRecords      int
}

// Add returns the per-field sum of two changes.
func (c Change) Add(other Change) Change {
	return Change{
		InsertedRecords:     c.InsertedRecords + other.InsertedRecords,
		InsertedValues:      c.InsertedValues + other.InsertedValues,
		InsertedQuality:     c.InsertedQuality + other.InsertedQuality,
		InsertedAnnotations: c.InsertedAnnotations + other.InsertedAnnotations,
		ModifiedRecords:     c.ModifiedRecords + other.ModifiedRecords,
		ModifiedValues:      c.ModifiedValues + other.ModifiedValues,
		ModifiedQuality:     c.ModifiedQuality + other.ModifiedQuality,
		ModifiedAnnotations: c.ModifiedAnnotations + other.ModifiedAnnotations,
		DeletedRecords:      c.DeletedRecords + other.DeletedRecords,
	}
}

// HasChanged reports whether any counter is non-zero.
func (c Change) HasChanged() bool { return c != Change{} }

// noteInsert counts an insertion. Attribute counters follow presence: an
// explicitly null attribute on the inserted field still counts.
func (c *Change) noteInsert(f Field) {
	c.InsertedRecords++
	if f.HasValue() {
		c.InsertedValues++
	}
	if f.HasQuality() {
		c.InsertedQuality++
	}
	if f.HasAnnotation() {
		c.InsertedAnnotations++
	}
}

// noteModify counts a modification of existing by incoming. An attribute
// counts as modified when the incoming field carries it and either sets it
// to a non-null or clears one the existing field actually had; clearing an
// attribute that was never present does not count.
func (c *Change) noteModify(existing, incoming Field) {
	c.ModifiedRecords++
	if incoming.vp == set || (incoming.vp == null && existing.vp != absent) {
		c.ModifiedValues++
	}
	if incoming.qp == set || (incoming.qp == null && existing.qp != absent) {
		c.ModifiedQuality++
	}
	if incoming.ap == set || (incoming.ap == null && existing.ap != absent) {
		c.ModifiedAnnotations++
	}
}

// noteDelete counts a deletion. Deletions carry no attribute detail.
func (c *Change) noteDelete() { c.DeletedRecords++ }

// String renders a human-readable change report, for example:
//
//	457 records inserted [776 values], 6 modified [3 values, 6 quality, 1 annotation], 5 deleted
//
// The first segment carries the word "records"; empty segments are omitted;
// the zero change renders as the empty string.
func (c Change) String() string {
	var segments []string

	if c.InsertedRecords > 0 {
		detail := attributeDetail(c.InsertedValues, c.InsertedQuality, c.InsertedAnnotations)
		segments = append(segments, fmt.Sprintf("%d inserted%s", c.InsertedRecords, detail))
	}
	if c.ModifiedRecords > 0 {
		detail := attributeDetail(c.ModifiedValues, c.ModifiedQuality, c.ModifiedAnnotations)
		segments = append(segments, fmt.Sprintf("%d modified%s", c.ModifiedRecords, detail))
	}
	if c.DeletedRecords > 0 {
		segments = append(segments, fmt.Sprintf("%d deleted", c.DeletedRecords))
	}
	if len(segments) == 0 {
		return ""
	}

	// The leading segment reads "N records inserted ...", the rest drop
	// the noun.
	first := segments[0]
	idx := strings.Index(first, " ")
	segments[0] = first[:idx] + " records" + first[idx:]
	return strings.Join(segments, ", ")
}

func attributeDetail(values, quality, annotations int) string {
	var parts []string
	switch {
	case values > 1:
		parts = append(parts, fmt.Sprintf("%d values", values))
	case values == 1:
		parts = append(parts, "1 value")
	}
	if quality > 0 {
		parts = append(parts, fmt.Sprintf("%d quality", quality))
	}
	switch {
	case annotations > 1:
		parts = append(parts, fmt.Sprintf("%d annotations", annotations))
	case annotations == 1:
		parts = append(parts, "1 annotation")
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ", ") + "]"
}
