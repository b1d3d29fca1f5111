// Package jts implements the JSON Time Series document model in memory.
// A Table maps (timestamp, column) pairs to typed fields carrying value,
// quality, and annotation attributes; a Document wraps a table with a
// header and renders to JSON, MessagePack, CSV, or fixed-width text.
package jts

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"
)

// Table is the sparse time-series table: a mapping from (timestamp, column
// index) to Field. Columns are addressed by a small non-negative index and
// optionally by a caller-chosen identity of type K through a bijective
// identity map. A per-column type registry guarantees every field within a
// column shares one data type.
//
// Timestamps are handled at millisecond precision. Both iteration orders
// are served from one representation: per-column ordered series, with row
// views derived by merging the column series.
//
// A Table is not safe for concurrent mutation. Accessors return snapshot
// copies, so a snapshot taken between mutations remains stable, but callers
// interleaving mutation with mutation must synchronize externally.
type Table[K comparable] struct {
	columns map[int]*series
	types   map[int]DataType
	ids     map[int]K
	rids    map[K]int
	loc     *time.Location
}

// NewTable returns an empty table with UTC rendering zone.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{
		columns: make(map[int]*series),
		types:   make(map[int]DataType),
		ids:     make(map[int]K),
		rids:    make(map[K]int),
		loc:     time.UTC,
	}
}

// NewTableWithIndex returns an empty table with column identities bound up
// front.
func NewTableWithIndex[K comparable](index map[int]K) *Table[K] {
	t := NewTable[K]()
	for column, id := range index {
		t.AssignID(column, id)
	}
	return t
}

// Clone returns a deep copy sharing nothing with the receiver.
func (t *Table[K]) Clone() *Table[K] {
	c := &Table[K]{
		columns: make(map[int]*series, len(t.columns)),
		types:   maps.Clone(t.types),
		ids:     maps.Clone(t.ids),
		rids:    maps.Clone(t.rids),
		loc:     t.loc,
	}
	for column, s := range t.columns {
		c.columns[column] = s.clone()
	}
	return c
}

// Zone returns the zone used when materializing timestamps.
func (t *Table[K]) Zone() *time.Location { return t.loc }

// WithZone returns a copy of the table whose timestamps materialize in loc.
func (t *Table[K]) WithZone(loc *time.Location) *Table[K] {
	c := t.Clone()
	if loc != nil {
		c.loc = loc
	}
	return c
}

// WithIndex returns a copy of the table with the identity map replaced.
func (t *Table[K]) WithIndex(index map[int]K) *Table[K] {
	c := t.Clone()
	c.ids = make(map[int]K, len(index))
	c.rids = make(map[K]int, len(index))
	for column, id := range index {
		c.AssignID(column, id)
	}
	return c
}

// WithIndexEnumerated returns a copy whose columns are renumbered 0..n-1 in
// ascending index order, identity bindings following their columns.
func (t *Table[K]) WithIndexEnumerated() *Table[K] {
	c := NewTable[K]()
	c.loc = t.loc
	for i, column := range t.ColumnIndexes() {
		if s, ok := t.columns[column]; ok {
			c.columns[i] = s.clone()
		}
		if dt, ok := t.types[column]; ok {
			c.types[i] = dt
		}
		if id, ok := t.ids[column]; ok {
			c.AssignID(i, id)
		}
	}
	return c
}

// AssignID binds id to the given column, dropping any previous binding of
// either the id or the column.
func (t *Table[K]) AssignID(column int, id K) {
	if prev, ok := t.rids[id]; ok {
		delete(t.ids, prev)
	}
	if prevID, ok := t.ids[column]; ok {
		delete(t.rids, prevID)
	}
	t.ids[column] = id
	t.rids[id] = column
}

// ColumnID returns the identity bound to a column.
func (t *Table[K]) ColumnID(column int) (K, bool) {
	id, ok := t.ids[column]
	return id, ok
}

// ColumnIndex returns the column bound to an identity.
func (t *Table[K]) ColumnIndex(id K) (int, bool) {
	column, ok := t.rids[id]
	return column, ok
}

// Index returns a copy of the column identity map.
func (t *Table[K]) Index() map[int]K { return maps.Clone(t.ids) }

// ensureIndex returns the column bound to id, binding the next free index
// when the id is new.
func (t *Table[K]) ensureIndex(id K) int {
	if column, ok := t.rids[id]; ok {
		return column
	}
	column := t.nextColumnIndex()
	t.AssignID(column, id)
	return column
}

// nextColumnIndex returns one past the highest known column, counting both
// populated columns and bound identities.
func (t *Table[K]) nextColumnIndex() int {
	next := 0
	for column := range t.columns {
		if column >= next {
			next = column + 1
		}
	}
	for column := range t.types {
		if column >= next {
			next = column + 1
		}
	}
	for column := range t.ids {
		if column >= next {
			next = column + 1
		}
	}
	return next
}

// seriesFor returns the live backing series for a column, creating it when
// missing. Internal mutation paths only.
func (t *Table[K]) seriesFor(column int) *series {
	s, ok := t.columns[column]
	if !ok {
		s = &series{}
		t.columns[column] = s
	}
	return s
}

// setType validates and records the column type. The type binds on the
// first typed field; null-value fields record the column without a type.
func (t *Table[K]) setType(column int, dt DataType) error {
	recorded := t.types[column]
	if err := checkTypes(recorded, dt); err != nil {
		return fmt.Errorf("column %d: %w", column, err)
	}
	if recorded == TypeUnknown {
		t.types[column] = dt
	}
	return nil
}

// Put inserts field at (ts, column), replacing any existing field there.
// The column's data type is validated and recorded.
func (t *Table[K]) Put(ts time.Time, column int, field Field) error {
	if ts.IsZero() {
		return fmt.Errorf("put: timestamp required")
	}
	if column < 0 {
		return fmt.Errorf("put: negative column %d", column)
	}
	if err := t.setType(column, field.DataType()); err != nil {
		return err
	}
	t.seriesFor(column).put(tsKey(ts), field)
	return nil
}

// PutByID inserts field into the column bound to id, binding id to the
// next free column first if it is new.
func (t *Table[K]) PutByID(ts time.Time, id K, field Field) error {
	return t.Put(ts, t.ensureIndex(id), field)
}

// PutColumn replaces the column's contents with the given samples. Types
// are validated up front so a mismatch leaves the column untouched.
func (t *Table[K]) PutColumn(column int, samples []Sample) error {
	recorded := t.types[column]
	for _, s := range samples {
		dt := s.Field.DataType()
		if err := checkTypes(recorded, dt); err != nil {
			return fmt.Errorf("column %d: %w", column, err)
		}
		if recorded == TypeUnknown {
			recorded = dt
		}
	}
	t.ClearColumn(column)
	for _, s := range samples {
		if err := t.Put(s.Timestamp, column, s.Field); err != nil {
			return err
		}
	}
	return nil
}

// PutColumnByID replaces the contents of the column bound to id.
func (t *Table[K]) PutColumnByID(id K, samples []Sample) error {
	return t.PutColumn(t.ensureIndex(id), samples)
}

// PutFields replaces the whole record at ts with the given fields. Fields
// previously present at ts but absent from the new set are discarded.
func (t *Table[K]) PutFields(ts time.Time, fields map[int]Field) error {
	if ts.IsZero() {
		return fmt.Errorf("put fields: timestamp required")
	}
	for column, f := range fields {
		if err := checkTypes(t.types[column], f.DataType()); err != nil {
			return fmt.Errorf("column %d: %w", column, err)
		}
	}
	key := tsKey(ts)
	for _, s := range t.columns {
		s.remove(key)
	}
	for column, f := range fields {
		if err := t.Put(ts, column, f); err != nil {
			return err
		}
	}
	return nil
}

// PutRecord replaces the whole record at the record's timestamp, addressing
// columns by index.
func (t *Table[K]) PutRecord(rec Record[K]) error {
	return t.PutFields(rec.Timestamp(), rec.Fields())
}

// PutRecordByID replaces the whole record at the record's timestamp,
// addressing columns through the identities shared by the record's index
// and the table's.
func (t *Table[K]) PutRecordByID(rec Record[K]) error {
	key := tsKey(rec.Timestamp())
	for _, s := range t.columns {
		s.remove(key)
	}
	for column, id := range rec.Index() {
		if _, bound := t.rids[id]; !bound {
			continue
		}
		if f, ok := rec.FieldAt(column); ok {
			if err := t.PutByID(rec.Timestamp(), id, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// PutRecords replaces whole records by column index.
func (t *Table[K]) PutRecords(recs []Record[K]) error {
	for _, rec := range recs {
		if err := t.PutRecord(rec); err != nil {
			return err
		}
	}
	return nil
}

// PutRecordsByID replaces whole records through shared identities.
func (t *Table[K]) PutRecordsByID(recs []Record[K]) error {
	for _, rec := range recs {
		if err := t.PutRecordByID(rec); err != nil {
			return err
		}
	}
	return nil
}

// MergeRecord puts the record's fields without discarding other fields
// already present at the timestamp.
func (t *Table[K]) MergeRecord(rec Record[K]) error {
	for column, f := range rec.Fields() {
		if err := t.Put(rec.Timestamp(), column, f); err != nil {
			return err
		}
	}
	return nil
}

// MergeRecordByID puts the record's fields through its identity map
// without discarding other fields already present at the timestamp.
func (t *Table[K]) MergeRecordByID(rec Record[K]) error {
	for column, id := range rec.Index() {
		if f, ok := rec.FieldAt(column); ok {
			if err := t.PutByID(rec.Timestamp(), id, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// PutSample puts a single sample into a column.
func (t *Table[K]) PutSample(column int, s Sample) error {
	return t.Put(s.Timestamp, column, s.Field)
}

// PutSamples puts samples into a column, replacing on timestamp collision.
func (t *Table[K]) PutSamples(column int, samples ...Sample) error {
	for _, s := range samples {
		if err := t.PutSample(column, s); err != nil {
			return err
		}
	}
	return nil
}

// AddColumn appends the samples as a new column at the next free index,
// returning the index.
func (t *Table[K]) AddColumn(samples []Sample) (int, error) {
	column := t.nextColumnIndex()
	return column, t.PutColumn(column, samples)
}

// AddColumnWithID appends a new column bound to id at the next free index.
func (t *Table[K]) AddColumnWithID(id K, samples []Sample) (int, error) {
	column := t.nextColumnIndex()
	t.AssignID(column, id)
	return column, t.PutColumn(column, samples)
}

// AddTable appends every column of other as a new column of t, carrying
// identity bindings across.
func (t *Table[K]) AddTable(other *Table[K]) error {
	for _, column := range other.ColumnIndexes() {
		var err error
		if id, ok := other.ColumnID(column); ok {
			_, err = t.AddColumnWithID(id, other.Column(column))
		} else {
			_, err = t.AddColumn(other.Column(column))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every record from every column. Types and identities
// remain.
func (t *Table[K]) Clear() {
	for _, s := range t.columns {
		s.entries = nil
	}
}

// ClearAfter removes all records strictly after end across all columns.
func (t *Table[K]) ClearAfter(end time.Time) {
	key := tsKey(end)
	for _, s := range t.columns {
		s.clearAfter(key)
	}
}

// ClearBefore removes all records strictly before start across all
// columns.
func (t *Table[K]) ClearBefore(start time.Time) {
	key := tsKey(start)
	for _, s := range t.columns {
		s.clearBefore(key)
	}
}

// ClearBeforeIndex removes all records prior to the given record position
// (exclusive), counted over the union of all columns' timestamps.
func (t *Table[K]) ClearBeforeIndex(index int) error {
	if index <= 0 {
		return fmt.Errorf("clear before index: position must be positive, got %d", index)
	}
	keys := t.rowKeys()
	if index >= len(keys) {
		t.Clear()
		return nil
	}
	for _, s := range t.columns {
		s.clearBefore(keys[index])
	}
	return nil
}

// ClearColumn removes every record from a column; the column keeps its
// recorded type.
func (t *Table[K]) ClearColumn(column int) {
	if s, ok := t.columns[column]; ok {
		s.entries = nil
	}
}

// ClearColumnByID removes every record from the column bound to id.
func (t *Table[K]) ClearColumnByID(id K) {
	if column, ok := t.rids[id]; ok {
		t.ClearColumn(column)
	}
}

// ClearColumnAfter removes a column's records strictly after end.
func (t *Table[K]) ClearColumnAfter(column int, end time.Time) {
	if s, ok := t.columns[column]; ok {
		s.clearAfter(tsKey(end))
	}
}

// ClearColumnBefore removes a column's records strictly before start.
func (t *Table[K]) ClearColumnBefore(column int, start time.Time) {
	if s, ok := t.columns[column]; ok {
		s.clearBefore(tsKey(start))
	}
}

// ClearColumnBetween removes a column's records in [start, end).
func (t *Table[K]) ClearColumnBetween(column int, start, end time.Time) {
	if s, ok := t.columns[column]; ok {
		s.removeBetween(tsKey(start), tsKey(end)-1)
	}
}

// RemoveColumn removes a column entirely, its recorded type and identity
// binding included.
func (t *Table[K]) RemoveColumn(column int) {
	delete(t.columns, column)
	delete(t.types, column)
	if id, ok := t.ids[column]; ok {
		delete(t.ids, column)
		delete(t.rids, id)
	}
}

// RemoveColumnByID removes the column bound to id entirely.
func (t *Table[K]) RemoveColumnByID(id K) {
	if column, ok := t.rids[id]; ok {
		t.RemoveColumn(column)
	}
}

// RemoveFirst removes the earliest record across all columns and returns
// it.
func (t *Table[K]) RemoveFirst() (Record[K], bool) {
	keys := t.rowKeys()
	if len(keys) == 0 {
		var zero Record[K]
		return zero, false
	}
	rec := t.recordAtKey(keys[0])
	for _, s := range t.columns {
		s.remove(keys[0])
	}
	return rec, true
}

// RetainFirst keeps only the first n records, counted over the union of
// all columns' timestamps. Zero clears the table; n beyond the record
// count is a no-op.
func (t *Table[K]) RetainFirst(n int) error {
	if n < 0 {
		return fmt.Errorf("retain first: negative count %d", n)
	}
	if n == 0 {
		t.Clear()
		return nil
	}
	keys := t.rowKeys()
	if len(keys) <= n {
		return nil
	}
	// Records strictly after the n-th timestamp go.
	t.ClearAfter(keyTime(keys[n-1], t.loc))
	return nil
}

// RetainLast keeps only the last n records, counted over the union of all
// columns' timestamps.
func (t *Table[K]) RetainLast(n int) error {
	if n < 0 {
		return fmt.Errorf("retain last: negative count %d", n)
	}
	if n == 0 {
		t.Clear()
		return nil
	}
	keys := t.rowKeys()
	if len(keys) <= n {
		return nil
	}
	t.ClearBefore(keyTime(keys[len(keys)-n], t.loc))
	return nil
}

// RetainColumnFirst keeps only a column's first n records.
func (t *Table[K]) RetainColumnFirst(column int, n int) error {
	if n < 0 {
		return fmt.Errorf("retain column first: negative count %d", n)
	}
	if s, ok := t.columns[column]; ok {
		s.retainFirst(n)
	}
	return nil
}

// RetainColumnLast keeps only a column's last n records.
func (t *Table[K]) RetainColumnLast(column int, n int) error {
	if n < 0 {
		return fmt.Errorf("retain column last: negative count %d", n)
	}
	if s, ok := t.columns[column]; ok {
		s.retainLast(n)
	}
	return nil
}

// RetainColumnFirstByID keeps only the first n records of the column bound
// to id.
func (t *Table[K]) RetainColumnFirstByID(id K, n int) error {
	if column, ok := t.rids[id]; ok {
		return t.RetainColumnFirst(column, n)
	}
	return nil
}

// RetainColumnLastByID keeps only the last n records of the column bound
// to id.
func (t *Table[K]) RetainColumnLastByID(id K, n int) error {
	if column, ok := t.rids[id]; ok {
		return t.RetainColumnLast(column, n)
	}
	return nil
}

// Slice returns a copy containing only records in [start, end], both
// bounds inclusive.
func (t *Table[K]) Slice(start, end time.Time) *Table[K] {
	c := t.Clone()
	c.ClearBefore(start)
	c.ClearAfter(end)
	return c
}

// SliceRange returns a copy containing length records starting at record
// position offset. Length overruns clamp to the available records; zero
// length returns an empty table.
func (t *Table[K]) SliceRange(offset, length int) (*Table[K], error) {
	count := t.RecordCount()
	if offset < 0 || offset >= count {
		return nil, fmt.Errorf("slice: offset %d out of range [0,%d)", offset, count)
	}
	if length < 0 {
		return nil, fmt.Errorf("slice: negative length %d", length)
	}
	c := t.Clone()
	if length == 0 {
		c.Clear()
		return c, nil
	}
	keys := t.rowKeys()
	start := keys[offset]
	endIdx := offset + length
	end := keys[len(keys)-1]
	if endIdx < len(keys) {
		end = keys[endIdx-1]
	}
	c.ClearBefore(keyTime(start, t.loc))
	c.ClearAfter(keyTime(end, t.loc))
	return c, nil
}

// CopyRecords copies the first count records of t into dst as whole
// records. The source is left untouched.
func (t *Table[K]) CopyRecords(dst *Table[K], count int) error {
	if count < 0 {
		return fmt.Errorf("copy records: negative count %d", count)
	}
	keys := t.rowKeys()
	if count < len(keys) {
		keys = keys[:count]
	}
	for _, key := range keys {
		if err := dst.PutFields(keyTime(key, t.loc), t.fieldsAtKey(key)); err != nil {
			return err
		}
	}
	return nil
}

// CopyColumn deep-copies one column of from into to, validating the
// destination column type.
func CopyColumn[K comparable](from *Table[K], fromColumn int, to *Table[K], toColumn int) error {
	for _, s := range from.Column(fromColumn) {
		if err := to.Put(s.Timestamp, toColumn, s.Field); err != nil {
			return err
		}
	}
	return nil
}

// Column returns an ordered snapshot of a column's samples.
func (t *Table[K]) Column(column int) []Sample {
	s, ok := t.columns[column]
	if !ok {
		return nil
	}
	return t.samples(s.entries)
}

// ColumnByID returns an ordered snapshot of the column bound to id.
func (t *Table[K]) ColumnByID(id K) []Sample {
	if column, ok := t.rids[id]; ok {
		return t.Column(column)
	}
	return nil
}

// ColumnAfter returns a column's samples strictly after ts.
func (t *Table[K]) ColumnAfter(column int, ts time.Time) []Sample {
	s, ok := t.columns[column]
	if !ok {
		return nil
	}
	return t.samples(s.after(tsKey(ts)))
}

// ColumnAfterByID returns the bound column's samples strictly after ts.
func (t *Table[K]) ColumnAfterByID(id K, ts time.Time) []Sample {
	if column, ok := t.rids[id]; ok {
		return t.ColumnAfter(column, ts)
	}
	return nil
}

// ColumnBefore returns a column's samples strictly before ts.
func (t *Table[K]) ColumnBefore(column int, ts time.Time) []Sample {
	s, ok := t.columns[column]
	if !ok {
		return nil
	}
	return t.samples(s.before(tsKey(ts)))
}

// ColumnBeforeByID returns the bound column's samples strictly before ts.
func (t *Table[K]) ColumnBeforeByID(id K, ts time.Time) []Sample {
	if column, ok := t.rids[id]; ok {
		return t.ColumnBefore(column, ts)
	}
	return nil
}

// ColumnBetween returns a column's samples in [start, end).
func (t *Table[K]) ColumnBetween(column int, start, end time.Time) []Sample {
	s, ok := t.columns[column]
	if !ok {
		return nil
	}
	return t.samples(s.between(tsKey(start), tsKey(end)))
}

// ColumnBetweenByID returns the bound column's samples in [start, end).
func (t *Table[K]) ColumnBetweenByID(id K, start, end time.Time) []Sample {
	if column, ok := t.rids[id]; ok {
		return t.ColumnBetween(column, start, end)
	}
	return nil
}

// ColumnFirst returns a column's earliest sample.
func (t *Table[K]) ColumnFirst(column int) (Sample, bool) {
	if s, ok := t.columns[column]; ok {
		if e, found := s.first(); found {
			return t.sample(e), true
		}
	}
	return Sample{}, false
}

// ColumnLast returns a column's latest sample.
func (t *Table[K]) ColumnLast(column int) (Sample, bool) {
	if s, ok := t.columns[column]; ok {
		if e, found := s.last(); found {
			return t.sample(e), true
		}
	}
	return Sample{}, false
}

// ColumnFirstByID returns the bound column's earliest sample.
func (t *Table[K]) ColumnFirstByID(id K) (Sample, bool) {
	if column, ok := t.rids[id]; ok {
		return t.ColumnFirst(column)
	}
	return Sample{}, false
}

// ColumnLastByID returns the bound column's latest sample.
func (t *Table[K]) ColumnLastByID(id K) (Sample, bool) {
	if column, ok := t.rids[id]; ok {
		return t.ColumnLast(column)
	}
	return Sample{}, false
}

// ColumnType returns the recorded data type of a column, TypeUnknown when
// the column is unknown or has only held null values.
func (t *Table[K]) ColumnType(column int) DataType { return t.types[column] }

// ColumnTypeByID returns the recorded data type of the column bound to id.
func (t *Table[K]) ColumnTypeByID(id K) DataType {
	if column, ok := t.rids[id]; ok {
		return t.types[column]
	}
	return TypeUnknown
}

// ColumnIndexes returns the known column indexes in ascending order:
// columns holding records plus columns with a recorded type.
func (t *Table[K]) ColumnIndexes() []int {
	seen := make(map[int]struct{}, len(t.columns)+len(t.types))
	for column := range t.columns {
		seen[column] = struct{}{}
	}
	for column := range t.types {
		seen[column] = struct{}{}
	}
	indexes := make([]int, 0, len(seen))
	for column := range seen {
		indexes = append(indexes, column)
	}
	sort.Ints(indexes)
	return indexes
}

// ColumnCount returns the number of known columns.
func (t *Table[K]) ColumnCount() int { return len(t.ColumnIndexes()) }

// HasColumn reports whether the column is known to the table.
func (t *Table[K]) HasColumn(column int) bool {
	if _, ok := t.columns[column]; ok {
		return true
	}
	_, ok := t.types[column]
	return ok
}

// Columns returns ordered snapshots of the requested columns.
func (t *Table[K]) Columns(columns ...int) map[int][]Sample {
	out := make(map[int][]Sample, len(columns))
	for _, column := range columns {
		out[column] = t.Column(column)
	}
	return out
}

// FieldAt returns the field at (ts, column).
func (t *Table[K]) FieldAt(ts time.Time, column int) (Field, bool) {
	if s, ok := t.columns[column]; ok {
		return s.get(tsKey(ts))
	}
	return Field{}, false
}

// FieldByID returns the field at ts in the column bound to id.
func (t *Table[K]) FieldByID(ts time.Time, id K) (Field, bool) {
	if column, ok := t.rids[id]; ok {
		return t.FieldAt(ts, column)
	}
	return Field{}, false
}

// HasField reports whether a field exists at (ts, column).
func (t *Table[K]) HasField(ts time.Time, column int) bool {
	_, ok := t.FieldAt(ts, column)
	return ok
}

// FieldBefore returns the nearest sample strictly before ts in a column.
func (t *Table[K]) FieldBefore(column int, ts time.Time) (Sample, bool) {
	if s, ok := t.columns[column]; ok {
		if e, found := s.firstBefore(tsKey(ts)); found {
			return t.sample(e), true
		}
	}
	return Sample{}, false
}

// SampleAt returns the sample at (column, ts); when no field exists there
// the sample carries the timestamp with an empty field.
func (t *Table[K]) SampleAt(column int, ts time.Time) Sample {
	f, _ := t.FieldAt(ts, column)
	return Sample{Timestamp: ts.Truncate(time.Millisecond), Field: f}
}

// SampleBefore returns the nearest sample strictly before ts in a column.
func (t *Table[K]) SampleBefore(column int, ts time.Time) (Sample, bool) {
	return t.FieldBefore(column, ts)
}

// SampleAfter returns the nearest sample strictly after ts in a column.
func (t *Table[K]) SampleAfter(column int, ts time.Time) (Sample, bool) {
	if s, ok := t.columns[column]; ok {
		if e, found := s.firstAfter(tsKey(ts)); found {
			return t.sample(e), true
		}
	}
	return Sample{}, false
}

// Values returns a column's values in timestamp order. Absent and null
// values appear as nil.
func (t *Table[K]) Values(column int) []Value {
	s, ok := t.columns[column]
	if !ok {
		return nil
	}
	values := make([]Value, 0, len(s.entries))
	for _, e := range s.entries {
		values = append(values, e.field.Value())
	}
	return values
}

// rowKeys returns the sorted union of all columns' timestamp keys.
func (t *Table[K]) rowKeys() []int64 {
	seen := make(map[int64]struct{})
	for _, s := range t.columns {
		for _, e := range s.entries {
			seen[e.ts] = struct{}{}
		}
	}
	keys := make([]int64, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// fieldsAtKey collects the fields of every column populated at key.
func (t *Table[K]) fieldsAtKey(key int64) map[int]Field {
	fields := make(map[int]Field)
	for column, s := range t.columns {
		if f, ok := s.get(key); ok {
			fields[column] = f
		}
	}
	return fields
}

func (t *Table[K]) recordAtKey(key int64) Record[K] {
	rec := NewRecord[K](keyTime(key, t.loc), t.fieldsAtKey(key))
	if len(t.ids) > 0 {
		rec = rec.WithIndex(t.ids)
	}
	return rec
}

func (t *Table[K]) sample(e seriesEntry) Sample {
	return Sample{Timestamp: keyTime(e.ts, t.loc), Field: e.field}
}

func (t *Table[K]) samples(entries []seriesEntry) []Sample {
	out := make([]Sample, 0, len(entries))
	for _, e := range entries {
		out = append(out, t.sample(e))
	}
	return out
}

// Records returns every record in timestamp order.
func (t *Table[K]) Records() []Record[K] {
	keys := t.rowKeys()
	records := make([]Record[K], 0, len(keys))
	for _, key := range keys {
		records = append(records, t.recordAtKey(key))
	}
	return records
}

// RecordAt returns the record at position i in timestamp order.
func (t *Table[K]) RecordAt(i int) (Record[K], bool) {
	keys := t.rowKeys()
	if i < 0 || i >= len(keys) {
		var zero Record[K]
		return zero, false
	}
	return t.recordAtKey(keys[i]), true
}

// RecordAfter returns the earliest record at or after ts; with inclusive
// false, strictly after.
func (t *Table[K]) RecordAfter(ts time.Time, inclusive bool) (Record[K], bool) {
	key := tsKey(ts)
	for _, k := range t.rowKeys() {
		if k > key || (inclusive && k == key) {
			return t.recordAtKey(k), true
		}
	}
	var zero Record[K]
	return zero, false
}

// RecordBefore returns the latest record at or before ts; with inclusive
// false, strictly before.
func (t *Table[K]) RecordBefore(ts time.Time, inclusive bool) (Record[K], bool) {
	key := tsKey(ts)
	keys := t.rowKeys()
	for i := len(keys) - 1; i >= 0; i-- {
		if keys[i] < key || (inclusive && keys[i] == key) {
			return t.recordAtKey(keys[i]), true
		}
	}
	var zero Record[K]
	return zero, false
}

// RecordsAfter returns the records at or after ts; with inclusive false,
// strictly after.
func (t *Table[K]) RecordsAfter(ts time.Time, inclusive bool) []Record[K] {
	key := tsKey(ts)
	var records []Record[K]
	for _, k := range t.rowKeys() {
		if k > key || (inclusive && k == key) {
			records = append(records, t.recordAtKey(k))
		}
	}
	return records
}

// RecordsBefore returns the records at or before ts; with inclusive false,
// strictly before.
func (t *Table[K]) RecordsBefore(ts time.Time, inclusive bool) []Record[K] {
	key := tsKey(ts)
	var records []Record[K]
	for _, k := range t.rowKeys() {
		if k < key || (inclusive && k == key) {
			records = append(records, t.recordAtKey(k))
		}
	}
	return records
}

// RecordsBetween returns the records in [start, end). A start after end
// yields nothing.
func (t *Table[K]) RecordsBetween(start, end time.Time) []Record[K] {
	lo, hi := tsKey(start), tsKey(end)
	var records []Record[K]
	for _, k := range t.rowKeys() {
		if k >= lo && k < hi {
			records = append(records, t.recordAtKey(k))
		}
	}
	return records
}

// FirstRecord returns the earliest record.
func (t *Table[K]) FirstRecord() (Record[K], bool) {
	keys := t.rowKeys()
	if len(keys) == 0 {
		var zero Record[K]
		return zero, false
	}
	return t.recordAtKey(keys[0]), true
}

// LastRecord returns the latest record.
func (t *Table[K]) LastRecord() (Record[K], bool) {
	keys := t.rowKeys()
	if len(keys) == 0 {
		var zero Record[K]
		return zero, false
	}
	return t.recordAtKey(keys[len(keys)-1]), true
}

// FirstTimestamp returns the earliest timestamp across all columns.
func (t *Table[K]) FirstTimestamp() (time.Time, bool) {
	first := int64(0)
	found := false
	for _, s := range t.columns {
		if e, ok := s.first(); ok && (!found || e.ts < first) {
			first = e.ts
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}
	return keyTime(first, t.loc), true
}

// LastTimestamp returns the latest timestamp across all columns.
func (t *Table[K]) LastTimestamp() (time.Time, bool) {
	last := int64(0)
	found := false
	for _, s := range t.columns {
		if e, ok := s.last(); ok && (!found || e.ts > last) {
			last = e.ts
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}
	return keyTime(last, t.loc), true
}

// Range returns the first and last timestamps.
func (t *Table[K]) Range() (start, end time.Time, ok bool) {
	start, ok = t.FirstTimestamp()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, _ = t.LastTimestamp()
	return start, end, true
}

// HasRecord reports whether any column holds a field at ts.
func (t *Table[K]) HasRecord(ts time.Time) bool {
	key := tsKey(ts)
	for _, s := range t.columns {
		if s.has(key) {
			return true
		}
	}
	return false
}

// RecordCount returns the number of distinct timestamps.
func (t *Table[K]) RecordCount() int { return len(t.rowKeys()) }

// FieldCount returns the total number of stored fields.
func (t *Table[K]) FieldCount() int {
	n := 0
	for _, s := range t.columns {
		n += s.len()
	}
	return n
}

// IsEmpty reports whether the table holds no fields.
func (t *Table[K]) IsEmpty() bool { return t.FieldCount() == 0 }

// Duration returns the span between the first and last timestamps.
func (t *Table[K]) Duration() time.Duration {
	start, end, ok := t.Range()
	if !ok {
		return 0
	}
	return end.Sub(start)
}

// Resolution returns the table's span divided by its record count, a rough
// sampling interval.
func (t *Table[K]) Resolution() time.Duration {
	count := t.RecordCount()
	if count == 0 {
		return 0
	}
	return t.Duration() / time.Duration(count)
}

// Encapsulates reports whether ts falls within the table's time range,
// both ends inclusive.
func (t *Table[K]) Encapsulates(ts time.Time) bool {
	start, end, ok := t.Range()
	if !ok {
		return false
	}
	key := tsKey(ts)
	return key >= tsKey(start) && key <= tsKey(end)
}

// Equal compares table contents: same columns holding equal fields at
// equal timestamps. Identity bindings and rendering zones do not
// participate.
func (t *Table[K]) Equal(other *Table[K]) bool {
	if other == nil {
		return false
	}
	populated := func(tab *Table[K]) map[int]*series {
		out := make(map[int]*series)
		for column, s := range tab.columns {
			if !s.isEmpty() {
				out[column] = s
			}
		}
		return out
	}
	a, b := populated(t), populated(other)
	if len(a) != len(b) {
		return false
	}
	for column, sa := range a {
		sb, ok := b[column]
		if !ok || sa.len() != sb.len() {
			return false
		}
		for i := range sa.entries {
			if sa.entries[i].ts != sb.entries[i].ts || !sa.entries[i].field.Equal(sb.entries[i].field) {
				return false
			}
		}
	}
	return true
}

// Summary returns a one-line description of the table's shape.
func (t *Table[K]) Summary() string {
	first, last := "none", "none"
	if ts, ok := t.FirstTimestamp(); ok {
		first = formatISO(ts)
	}
	if ts, ok := t.LastTimestamp(); ok {
		last = formatISO(ts)
	}
	return fmt.Sprintf("records: %d fields: %d columns: %d first: %s last: %s",
		t.RecordCount(), t.FieldCount(), t.ColumnCount(), first, last)
}

// String renders the summary plus up to ten records, eliding the middle of
// longer tables.
func (t *Table[K]) String() string {
	const maxRows = 10
	var sb strings.Builder
	sb.WriteString(t.Summary())
	if len(t.ids) > 0 {
		fmt.Fprintf(&sb, "\nindex: %v", t.ids)
	}
	records := t.Records()
	if len(records) <= maxRows {
		for _, rec := range records {
			sb.WriteString("\n" + rec.String())
		}
		return sb.String()
	}
	half := maxRows / 2
	for _, rec := range records[:half] {
		sb.WriteString("\n" + rec.String())
	}
	sb.WriteString("\n...")
	for _, rec := range records[len(records)-half:] {
		sb.WriteString("\n" + rec.String())
	}
	return sb.String()
}
