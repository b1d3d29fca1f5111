package jts

import (
	"fmt"
	"maps"
	"sort"
	"strings"
	"time"
)

// Sample is a single timestamped field, the point-wise projection of one
// column.
type Sample struct {
	Timestamp time.Time
	Field     Field
}

func (s Sample) String() string {
	return fmt.Sprintf("%s %s", formatISO(s.Timestamp), s.Field)
}

// Record is a read-oriented row: one timestamp with the fields of every
// column populated at it, optionally carrying the column identity map of
// its source table for identity-based lookup.
type Record[K comparable] struct {
	ts     time.Time
	fields map[int]Field
	index  map[int]K
}

// NewRecord builds a row from a timestamp and its fields by column index.
func NewRecord[K comparable](ts time.Time, fields map[int]Field) Record[K] {
	return Record[K]{
		ts:     ts.Truncate(time.Millisecond),
		fields: maps.Clone(fields),
	}
}

// WithIndex returns a copy carrying a column identity map for FieldByID.
func (r Record[K]) WithIndex(index map[int]K) Record[K] {
	r.index = maps.Clone(index)
	return r
}

// Timestamp returns the record's timestamp.
func (r Record[K]) Timestamp() time.Time { return r.ts }

// Fields returns a copy of the record's fields keyed by column index.
func (r Record[K]) Fields() map[int]Field {
	return maps.Clone(r.fields)
}

// FieldAt returns the field at the given column index.
func (r Record[K]) FieldAt(column int) (Field, bool) {
	f, ok := r.fields[column]
	return f, ok
}

// FieldByID returns the field of the column bound to id. It requires the
// record to carry an identity map.
func (r Record[K]) FieldByID(id K) (Field, bool) {
	for column, bound := range r.index {
		if bound == id {
			return r.FieldAt(column)
		}
	}
	var zero Field
	return zero, false
}

// Index returns a copy of the record's column identity map, nil when the
// record carries none.
func (r Record[K]) Index() map[int]K {
	return maps.Clone(r.index)
}

// Columns returns the populated column indexes in ascending order.
func (r Record[K]) Columns() []int {
	var cols []int
	for col := range r.fields {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	return cols
}

func (r Record[K]) String() string {
	var sb strings.Builder
	sb.WriteString(formatISO(r.ts))
	for _, col := range r.Columns() {
		fmt.Fprintf(&sb, " %d=%s", col, r.fields[col])
	}
	return sb.String()
}
