package jts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

// at returns a test timestamp offset in seconds from a fixed base.
func at(sec int) time.Time { return base.Add(time.Duration(sec) * time.Second) }

func TestPutAndGet(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))
	require.NoError(t, tab.Put(at(1), 0, NumberField(2)))

	f, ok := tab.FieldAt(at(1), 0)
	require.True(t, ok)
	assert.Equal(t, Number(2), f.Value())

	_, ok = tab.FieldAt(at(2), 0)
	assert.False(t, ok)
	assert.True(t, tab.HasField(at(0), 0))
	assert.Equal(t, 2, tab.RecordCount())
	assert.Equal(t, 2, tab.FieldCount())
	assert.False(t, tab.IsEmpty())

	// Re-putting a timestamp replaces.
	require.NoError(t, tab.Put(at(1), 0, NumberField(9)))
	assert.Equal(t, 2, tab.RecordCount())
	f, _ = tab.FieldAt(at(1), 0)
	assert.Equal(t, Number(9), f.Value())
}

func TestPutValidation(t *testing.T) {
	tab := NewTable[string]()
	err := tab.Put(time.Time{}, 0, NumberField(1))
	assert.ErrorContains(t, err, "timestamp required")

	err = tab.Put(at(0), -1, NumberField(1))
	assert.ErrorContains(t, err, "negative column")
}

func TestColumnTypeBinding(t *testing.T) {
	tab := NewTable[string]()
	assert.Equal(t, TypeUnknown, tab.ColumnType(0))

	// Null fields record the column but bind no type.
	require.NoError(t, tab.Put(at(0), 0, NullField()))
	assert.Equal(t, TypeUnknown, tab.ColumnType(0))

	require.NoError(t, tab.Put(at(1), 0, NumberField(1)))
	assert.Equal(t, TypeNumber, tab.ColumnType(0))

	err := tab.Put(at(2), 0, TextField("x"))
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorContains(t, err, "column 0")

	// The failed put leaves the column untouched.
	assert.Equal(t, 2, tab.FieldCount())
}

func TestPutByID(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.PutByID(at(0), "temp", NumberField(21.5)))
	require.NoError(t, tab.PutByID(at(0), "humidity", NumberField(60)))

	// New identities bind to consecutive free columns.
	col, ok := tab.ColumnIndex("temp")
	require.True(t, ok)
	assert.Equal(t, 0, col)
	col, ok = tab.ColumnIndex("humidity")
	require.True(t, ok)
	assert.Equal(t, 1, col)

	f, ok := tab.FieldByID(at(0), "temp")
	require.True(t, ok)
	assert.Equal(t, Number(21.5), f.Value())

	_, ok = tab.FieldByID(at(0), "pressure")
	assert.False(t, ok)
}

func TestAssignID(t *testing.T) {
	tab := NewTable[string]()
	tab.AssignID(0, "a")
	tab.AssignID(1, "b")

	// Rebinding an id moves it; the old column loses its identity.
	tab.AssignID(1, "a")
	_, ok := tab.ColumnID(0)
	assert.False(t, ok)
	col, ok := tab.ColumnIndex("a")
	require.True(t, ok)
	assert.Equal(t, 1, col)
	_, ok = tab.ColumnIndex("b")
	assert.False(t, ok)

	assert.Equal(t, map[int]string{1: "a"}, tab.Index())
}

func TestColumnIndexes(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 2, NumberField(1)))
	require.NoError(t, tab.Put(at(0), 0, TextField("x")))

	assert.Equal(t, []int{0, 2}, tab.ColumnIndexes())
	assert.Equal(t, 2, tab.ColumnCount())
	assert.True(t, tab.HasColumn(2))
	assert.False(t, tab.HasColumn(1))

	// A cleared column keeps its recorded type and stays known.
	tab.ClearColumn(2)
	assert.Equal(t, []int{0, 2}, tab.ColumnIndexes())
	assert.Equal(t, TypeNumber, tab.ColumnType(2))
}

func TestColumnSnapshots(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 4; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
	}

	col := tab.Column(0)
	require.Len(t, col, 4)
	assert.Equal(t, at(0), col[0].Timestamp)
	assert.Equal(t, Number(0), col[0].Field.Value())

	// Between is half-open, before and after strict.
	between := tab.ColumnBetween(0, at(1), at(3))
	require.Len(t, between, 2)
	assert.Equal(t, at(1), between[0].Timestamp)
	assert.Equal(t, at(2), between[1].Timestamp)

	after := tab.ColumnAfter(0, at(2))
	require.Len(t, after, 1)
	assert.Equal(t, at(3), after[0].Timestamp)

	before := tab.ColumnBefore(0, at(1))
	require.Len(t, before, 1)
	assert.Equal(t, at(0), before[0].Timestamp)

	first, ok := tab.ColumnFirst(0)
	require.True(t, ok)
	assert.Equal(t, at(0), first.Timestamp)
	last, ok := tab.ColumnLast(0)
	require.True(t, ok)
	assert.Equal(t, at(3), last.Timestamp)

	assert.Nil(t, tab.Column(7))
}

func TestColumnByIDAccessors(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.PutByID(at(0), "temp", NumberField(1)))
	require.NoError(t, tab.PutByID(at(1), "temp", NumberField(2)))

	col := tab.ColumnByID("temp")
	require.Len(t, col, 2)

	after := tab.ColumnAfterByID("temp", at(0))
	require.Len(t, after, 1)
	assert.Equal(t, at(1), after[0].Timestamp)

	first, ok := tab.ColumnFirstByID("temp")
	require.True(t, ok)
	assert.Equal(t, Number(1), first.Field.Value())

	assert.Equal(t, TypeNumber, tab.ColumnTypeByID("temp"))
	assert.Equal(t, TypeUnknown, tab.ColumnTypeByID("nope"))
	assert.Nil(t, tab.ColumnByID("nope"))
}

func TestValues(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))
	require.NoError(t, tab.Put(at(1), 0, NullField()))
	require.NoError(t, tab.Put(at(2), 0, NumberField(3)))

	assert.Equal(t, []Value{Number(1), nil, Number(3)}, tab.Values(0))
	assert.Nil(t, tab.Values(5))
}

func TestRecords(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))
	require.NoError(t, tab.Put(at(2), 0, NumberField(3)))
	require.NoError(t, tab.Put(at(1), 1, TextField("mid")))

	// Rows are the union of all columns' timestamps.
	recs := tab.Records()
	require.Len(t, recs, 3)
	assert.Equal(t, at(0), recs[0].Timestamp())
	assert.Equal(t, at(1), recs[1].Timestamp())
	assert.Equal(t, at(2), recs[2].Timestamp())

	assert.Equal(t, []int{1}, recs[1].Columns())
	f, ok := recs[1].FieldAt(1)
	require.True(t, ok)
	assert.Equal(t, Text("mid"), f.Value())

	rec, ok := tab.RecordAt(1)
	require.True(t, ok)
	assert.Equal(t, at(1), rec.Timestamp())
	_, ok = tab.RecordAt(3)
	assert.False(t, ok)
	_, ok = tab.RecordAt(-1)
	assert.False(t, ok)

	first, ok := tab.FirstRecord()
	require.True(t, ok)
	assert.Equal(t, at(0), first.Timestamp())
	last, ok := tab.LastRecord()
	require.True(t, ok)
	assert.Equal(t, at(2), last.Timestamp())
}

func TestRecordsCarryIndex(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.PutByID(at(0), "temp", NumberField(1)))

	rec, ok := tab.FirstRecord()
	require.True(t, ok)
	f, ok := rec.FieldByID("temp")
	require.True(t, ok)
	assert.Equal(t, Number(1), f.Value())
}

func TestRecordsBetween(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 4; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
	}

	recs := tab.RecordsBetween(at(1), at(3))
	require.Len(t, recs, 2)
	assert.Equal(t, at(1), recs[0].Timestamp())
	assert.Equal(t, at(2), recs[1].Timestamp())

	assert.Empty(t, tab.RecordsBetween(at(3), at(1)))

	after := tab.RecordsAfter(at(2), false)
	require.Len(t, after, 1)
	assert.Equal(t, at(3), after[0].Timestamp())
	assert.Len(t, tab.RecordsAfter(at(2), true), 2)

	before := tab.RecordsBefore(at(1), false)
	require.Len(t, before, 1)
	assert.Len(t, tab.RecordsBefore(at(1), true), 2)

	rec, ok := tab.RecordAfter(at(0), false)
	require.True(t, ok)
	assert.Equal(t, at(1), rec.Timestamp())
	rec, ok = tab.RecordBefore(at(3), true)
	require.True(t, ok)
	assert.Equal(t, at(3), rec.Timestamp())
	_, ok = tab.RecordBefore(at(0), false)
	assert.False(t, ok)
}

func TestPutFieldsReplacesRecord(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))
	require.NoError(t, tab.Put(at(0), 1, TextField("x")))

	require.NoError(t, tab.PutFields(at(0), map[int]Field{0: NumberField(2)}))
	_, ok := tab.FieldAt(at(0), 1)
	assert.False(t, ok, "column 1 should be dropped by the replace")
	f, _ := tab.FieldAt(at(0), 0)
	assert.Equal(t, Number(2), f.Value())
}

func TestMergeRecordKeepsOtherColumns(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))
	require.NoError(t, tab.Put(at(0), 1, TextField("x")))

	rec := NewRecord[string](at(0), map[int]Field{0: NumberField(2)})
	require.NoError(t, tab.MergeRecord(rec))

	f, ok := tab.FieldAt(at(0), 1)
	require.True(t, ok)
	assert.Equal(t, Text("x"), f.Value())
	f, _ = tab.FieldAt(at(0), 0)
	assert.Equal(t, Number(2), f.Value())
}

func TestPutColumnValidatesUpFront(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))

	err := tab.PutColumn(0, []Sample{
		{Timestamp: at(1), Field: NumberField(2)},
		{Timestamp: at(2), Field: TextField("bad")},
	})
	require.ErrorIs(t, err, ErrTypeMismatch)

	// The mismatch leaves the column as it was.
	f, ok := tab.FieldAt(at(0), 0)
	require.True(t, ok)
	assert.Equal(t, Number(1), f.Value())
	assert.Equal(t, 1, tab.FieldCount())

	require.NoError(t, tab.PutColumn(0, []Sample{
		{Timestamp: at(5), Field: NumberField(5)},
	}))
	assert.Equal(t, 1, tab.FieldCount())
	_, ok = tab.FieldAt(at(0), 0)
	assert.False(t, ok)
}

func TestAddColumn(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))

	col, err := tab.AddColumn([]Sample{{Timestamp: at(0), Field: TextField("x")}})
	require.NoError(t, err)
	assert.Equal(t, 1, col)

	col, err = tab.AddColumnWithID("extra", []Sample{{Timestamp: at(0), Field: NumberField(2)}})
	require.NoError(t, err)
	assert.Equal(t, 2, col)
	bound, ok := tab.ColumnIndex("extra")
	require.True(t, ok)
	assert.Equal(t, 2, bound)
}

func TestAddTable(t *testing.T) {
	dst := NewTable[string]()
	require.NoError(t, dst.PutByID(at(0), "a", NumberField(1)))

	src := NewTable[string]()
	require.NoError(t, src.PutByID(at(0), "b", NumberField(2)))
	require.NoError(t, src.Put(at(0), 1, TextField("anon")))

	require.NoError(t, dst.AddTable(src))
	assert.Equal(t, 3, dst.ColumnCount())
	col, ok := dst.ColumnIndex("b")
	require.True(t, ok)
	assert.Equal(t, 1, col)
	f, ok := dst.FieldAt(at(0), 2)
	require.True(t, ok)
	assert.Equal(t, Text("anon"), f.Value())
}

func TestClears(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 4; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
		require.NoError(t, tab.Put(at(i), 1, TextField("x")))
	}

	tab.ClearBefore(at(1))
	assert.Equal(t, 3, tab.RecordCount())
	tab.ClearAfter(at(2))
	assert.Equal(t, 2, tab.RecordCount())

	tab.ClearColumn(1)
	assert.Equal(t, 2, tab.RecordCount())
	assert.Empty(t, tab.Column(1))

	tab.Clear()
	assert.True(t, tab.IsEmpty())
	assert.Equal(t, TypeNumber, tab.ColumnType(0), "types survive a clear")
}

func TestClearBeforeIndex(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 4; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
	}

	require.NoError(t, tab.ClearBeforeIndex(2))
	assert.Equal(t, 2, tab.RecordCount())
	first, _ := tab.FirstTimestamp()
	assert.Equal(t, at(2), first)

	err := tab.ClearBeforeIndex(0)
	assert.ErrorContains(t, err, "position must be positive")

	// An index beyond the record count clears everything.
	require.NoError(t, tab.ClearBeforeIndex(10))
	assert.True(t, tab.IsEmpty())
}

func TestClearColumnRanges(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 5; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
	}

	tab.ClearColumnBefore(0, at(1))
	tab.ClearColumnAfter(0, at(3))
	require.Len(t, tab.Column(0), 3)

	tab.ClearColumnBetween(0, at(2), at(3))
	col := tab.Column(0)
	require.Len(t, col, 2)
	assert.Equal(t, at(1), col[0].Timestamp)
	assert.Equal(t, at(3), col[1].Timestamp)
}

func TestRemoveColumn(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.PutByID(at(0), "temp", NumberField(1)))

	tab.RemoveColumn(0)
	assert.False(t, tab.HasColumn(0))
	assert.Equal(t, TypeUnknown, tab.ColumnType(0))
	_, ok := tab.ColumnIndex("temp")
	assert.False(t, ok)

	// The freed identity can be bound again.
	require.NoError(t, tab.PutByID(at(0), "temp", TextField("re")))
	assert.Equal(t, TypeText, tab.ColumnTypeByID("temp"))
}

func TestRemoveFirst(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))
	require.NoError(t, tab.Put(at(1), 0, NumberField(2)))

	rec, ok := tab.RemoveFirst()
	require.True(t, ok)
	assert.Equal(t, at(0), rec.Timestamp())
	assert.Equal(t, 1, tab.RecordCount())

	tab.RemoveFirst()
	_, ok = tab.RemoveFirst()
	assert.False(t, ok)
}

func TestRetain(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 5; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
	}

	require.NoError(t, tab.RetainFirst(3))
	assert.Equal(t, 3, tab.RecordCount())
	require.NoError(t, tab.RetainLast(2))
	assert.Equal(t, 2, tab.RecordCount())
	first, _ := tab.FirstTimestamp()
	assert.Equal(t, at(1), first)

	assert.Error(t, tab.RetainFirst(-1))
	assert.Error(t, tab.RetainLast(-1))

	require.NoError(t, tab.RetainFirst(0))
	assert.True(t, tab.IsEmpty())
}

func TestRetainColumn(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 4; i++ {
		require.NoError(t, tab.PutByID(at(i), "a", NumberField(float64(i))))
	}

	require.NoError(t, tab.RetainColumnFirstByID("a", 3))
	require.NoError(t, tab.RetainColumnLastByID("a", 2))
	col := tab.ColumnByID("a")
	require.Len(t, col, 2)
	assert.Equal(t, at(1), col[0].Timestamp)
	assert.Equal(t, at(2), col[1].Timestamp)
}

func TestSlice(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 5; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
	}

	// Both bounds are inclusive.
	s := tab.Slice(at(1), at(3))
	assert.Equal(t, 3, s.RecordCount())
	first, _ := s.FirstTimestamp()
	last, _ := s.LastTimestamp()
	assert.Equal(t, at(1), first)
	assert.Equal(t, at(3), last)

	// The source is untouched.
	assert.Equal(t, 5, tab.RecordCount())
}

func TestSliceRange(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 5; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
	}

	s, err := tab.SliceRange(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.RecordCount())
	first, _ := s.FirstTimestamp()
	assert.Equal(t, at(1), first)

	// Length overruns clamp.
	s, err = tab.SliceRange(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, s.RecordCount())

	s, err = tab.SliceRange(0, 0)
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())

	_, err = tab.SliceRange(5, 1)
	assert.ErrorContains(t, err, "out of range")
	_, err = tab.SliceRange(-1, 1)
	assert.ErrorContains(t, err, "out of range")
	_, err = tab.SliceRange(0, -1)
	assert.ErrorContains(t, err, "negative length")
}

func TestCopyRecords(t *testing.T) {
	src := NewTable[string]()
	for i := 0; i < 4; i++ {
		require.NoError(t, src.Put(at(i), 0, NumberField(float64(i))))
	}

	dst := NewTable[string]()
	require.NoError(t, src.CopyRecords(dst, 2))
	assert.Equal(t, 2, dst.RecordCount())
	assert.Equal(t, 4, src.RecordCount())

	assert.Error(t, src.CopyRecords(dst, -1))
}

func TestCopyColumn(t *testing.T) {
	src := NewTable[string]()
	require.NoError(t, src.Put(at(0), 0, NumberField(1)))

	dst := NewTable[string]()
	require.NoError(t, CopyColumn(src, 0, dst, 3))
	f, ok := dst.FieldAt(at(0), 3)
	require.True(t, ok)
	assert.Equal(t, Number(1), f.Value())

	bad := NewTable[string]()
	require.NoError(t, bad.Put(at(0), 3, TextField("x")))
	assert.ErrorIs(t, CopyColumn(src, 0, bad, 3), ErrTypeMismatch)
}

func TestCloneIsDeep(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.PutByID(at(0), "a", NumberField(1)))

	c := tab.Clone()
	require.NoError(t, c.Put(at(1), 0, NumberField(2)))
	c.AssignID(0, "renamed")

	assert.Equal(t, 1, tab.RecordCount())
	id, _ := tab.ColumnID(0)
	assert.Equal(t, "a", id)
}

func TestWithZone(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))

	melbourne, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)

	z := tab.WithZone(melbourne)
	assert.Equal(t, melbourne, z.Zone())
	first, _ := z.FirstTimestamp()
	assert.Equal(t, melbourne, first.Location())
	assert.True(t, first.Equal(at(0)))

	// The source keeps UTC.
	assert.Equal(t, time.UTC, tab.Zone())
}

func TestWithIndexEnumerated(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 3, NumberField(1)))
	require.NoError(t, tab.PutByID(at(0), "a", TextField("x")))
	bound, _ := tab.ColumnIndex("a")
	assert.Equal(t, 4, bound)

	e := tab.WithIndexEnumerated()
	assert.Equal(t, []int{0, 1}, e.ColumnIndexes())
	assert.Equal(t, TypeNumber, e.ColumnType(0))
	col, ok := e.ColumnIndex("a")
	require.True(t, ok)
	assert.Equal(t, 1, col)
}

func TestRangeAndDuration(t *testing.T) {
	tab := NewTable[string]()
	assert.Equal(t, time.Duration(0), tab.Duration())
	_, _, ok := tab.Range()
	assert.False(t, ok)

	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))
	require.NoError(t, tab.Put(at(10), 1, NumberField(2)))

	start, end, ok := tab.Range()
	require.True(t, ok)
	assert.Equal(t, at(0), start)
	assert.Equal(t, at(10), end)
	assert.Equal(t, 10*time.Second, tab.Duration())
	assert.Equal(t, 5*time.Second, tab.Resolution())

	assert.True(t, tab.Encapsulates(at(5)))
	assert.True(t, tab.Encapsulates(at(0)))
	assert.True(t, tab.Encapsulates(at(10)))
	assert.False(t, tab.Encapsulates(at(11)))
	assert.True(t, tab.HasRecord(at(10)))
	assert.False(t, tab.HasRecord(at(5)))
}

func TestTableEqual(t *testing.T) {
	a := NewTable[string]()
	b := NewTable[string]()
	require.NoError(t, a.Put(at(0), 0, NumberField(1)))
	require.NoError(t, b.Put(at(0), 0, NumberField(1)))
	assert.True(t, a.Equal(b))

	// Identity bindings do not participate.
	b.AssignID(0, "named")
	assert.True(t, a.Equal(b))

	// Emptied columns do not participate either.
	require.NoError(t, b.Put(at(0), 1, NumberField(2)))
	b.ClearColumn(1)
	assert.True(t, a.Equal(b))

	require.NoError(t, b.Put(at(1), 0, NumberField(2)))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}

func TestSummary(t *testing.T) {
	tab := NewTable[string]()
	assert.Equal(t, "records: 0 fields: 0 columns: 0 first: none last: none", tab.Summary())

	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))
	require.NoError(t, tab.Put(at(1), 0, NumberField(2)))
	require.NoError(t, tab.Put(at(1), 1, TextField("x")))

	assert.Equal(t,
		"records: 2 fields: 3 columns: 2 first: 2024-05-06T00:00:00.000Z last: 2024-05-06T00:00:01.000Z",
		tab.Summary())
}

func TestTableString(t *testing.T) {
	tab := NewTable[string]()
	for i := 0; i < 12; i++ {
		require.NoError(t, tab.Put(at(i), 0, NumberField(float64(i))))
	}

	s := tab.String()
	assert.Contains(t, s, "records: 12")
	assert.Contains(t, s, "\n...")

	small := NewTable[string]()
	require.NoError(t, small.Put(at(0), 0, NumberField(1)))
	assert.NotContains(t, small.String(), "...")
}
