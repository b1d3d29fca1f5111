package jts

import (
	"fmt"
	"maps"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ColumnHeader describes one column of a document: identity, display name,
// recorded data type and the formatting hints consumed by the text
// renderers. Zero values mean unset; unset attributes are omitted from
// encoded documents.
type ColumnHeader struct {
	ID         string
	Name       string
	DataType   DataType
	Aggregate  string
	Interval   string
	BaseTime   string
	Format     string
	RenderType string
	Units      string
}

// DocumentHeader carries document level metadata: identity, the time range
// and record count of the data section, and per column headers keyed by
// column index. The data model itself holds no column metadata; headers
// travel alongside a table inside a Document.
type DocumentHeader struct {
	ID          string
	Name        string
	StartTime   time.Time
	EndTime     time.Time
	RecordCount int
	Columns     map[int]ColumnHeader
}

// NewDocumentHeader derives a header from the table: time range, record
// count and one ColumnHeader per populated column carrying the recorded
// data type. Column ids are taken from the table's identity map where
// bound. The header id is a fresh uuid.
func NewDocumentHeader[K comparable](name string, t *Table[K]) *DocumentHeader {
	h := &DocumentHeader{
		ID:      uuid.NewString(),
		Name:    name,
		Columns: make(map[int]ColumnHeader),
	}
	if t == nil {
		return h
	}
	h.RecordCount = t.RecordCount()
	if start, end, ok := t.Range(); ok {
		h.StartTime = start
		h.EndTime = end
	}
	for _, index := range t.ColumnIndexes() {
		col := ColumnHeader{DataType: t.ColumnType(index)}
		if id, ok := t.ColumnID(index); ok {
			col.ID = fmt.Sprint(id)
		}
		h.Columns[index] = col
	}
	return h
}

// Clone returns a deep copy of the header.
func (h *DocumentHeader) Clone() *DocumentHeader {
	if h == nil {
		return nil
	}
	out := *h
	out.Columns = maps.Clone(h.Columns)
	return &out
}

// Equal reports whether two headers carry the same metadata.
func (h *DocumentHeader) Equal(other *DocumentHeader) bool {
	if h == nil || other == nil {
		return h == other
	}
	return h.ID == other.ID && h.Name == other.Name &&
		h.StartTime.Equal(other.StartTime) && h.EndTime.Equal(other.EndTime) &&
		h.RecordCount == other.RecordCount && maps.Equal(h.Columns, other.Columns)
}

// HasColumn reports whether a column header exists for the given index.
func (h *DocumentHeader) HasColumn(index int) bool {
	_, ok := h.Columns[index]
	return ok
}

// Column returns the column header for the given index.
func (h *DocumentHeader) Column(index int) (ColumnHeader, bool) {
	col, ok := h.Columns[index]
	return col, ok
}

// PutColumn sets the column header for the given index.
func (h *DocumentHeader) PutColumn(index int, col ColumnHeader) {
	if h.Columns == nil {
		h.Columns = make(map[int]ColumnHeader)
	}
	h.Columns[index] = col
}

// ColumnFormat returns the render format expression of the given column,
// or the empty string when the column has none.
func (h *DocumentHeader) ColumnFormat(index int) string {
	return h.Columns[index].Format
}

// ColumnIndexes returns the described column indexes in ascending order.
func (h *DocumentHeader) ColumnIndexes() []int {
	indexes := make([]int, 0, len(h.Columns))
	for index := range h.Columns {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	return indexes
}

// lastColumnIndex returns the highest described column index, or -1 when
// no columns are described. Renderers iterate 0..lastColumnIndex so that
// gaps in the column map still produce empty cells.
func (h *DocumentHeader) lastColumnIndex() int {
	last := -1
	for index := range h.Columns {
		if index > last {
			last = index
		}
	}
	return last
}
