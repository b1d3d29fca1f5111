package jts

import (
	"fmt"
	"sort"
)

// MergeColumn applies the update to a column under the given write mode
// and reports what changed. The update's field types are validated against
// the column's recorded type before any mutation; an empty update is a
// zero-change no-op.
func (t *Table[K]) MergeColumn(column int, update []Sample, mode WriteMode) (Change, error) {
	if len(update) == 0 {
		return Change{}, nil
	}
	if _, known := writeModeNames[mode]; !known {
		return Change{}, fmt.Errorf("merge column %d: %w: %d", column, ErrWriteMode, uint8(mode))
	}

	recorded := t.types[column]
	bind := recorded
	for _, s := range update {
		if s.Field.IsDeleted() {
			continue
		}
		dt := s.Field.DataType()
		if err := checkTypes(bind, dt); err != nil {
			return Change{}, fmt.Errorf("merge column %d: %w", column, err)
		}
		if bind == TypeUnknown {
			bind = dt
		}
	}

	upd := &series{}
	for _, s := range update {
		if s.Timestamp.IsZero() {
			return Change{}, fmt.Errorf("merge column %d: timestamp required", column)
		}
		upd.put(tsKey(s.Timestamp), s.Field)
	}

	change, err := mergeSeries(t.seriesFor(column), upd, mode)
	if err != nil {
		return Change{}, fmt.Errorf("merge column %d: %w", column, err)
	}
	if recorded == TypeUnknown && bind != TypeUnknown && change.InsertedRecords+change.ModifiedRecords > 0 {
		t.types[column] = bind
	}
	return change, nil
}

// MergeColumnByID applies the update to the column bound to id, binding id
// to the next free column first if it is new.
func (t *Table[K]) MergeColumnByID(id K, update []Sample, mode WriteMode) (Change, error) {
	return t.MergeColumn(t.ensureIndex(id), update, mode)
}

// MergeTableByColumn merges every column of other into the same column
// index of t. Data type compatibility is asserted across all shared
// columns before any mutation.
func (t *Table[K]) MergeTableByColumn(other *Table[K], mode WriteMode) (Change, error) {
	for _, column := range other.ColumnIndexes() {
		if err := checkTypes(t.types[column], other.types[column]); err != nil {
			return Change{}, fmt.Errorf("merge tables: column %d: %w", column, err)
		}
	}
	var change Change
	for _, column := range other.ColumnIndexes() {
		c, err := t.MergeColumn(column, other.Column(column), mode)
		if err != nil {
			return change, err
		}
		change = change.Add(c)
	}
	return change, nil
}

// MergeTableByID merges every identity-bound column of other into the
// column of t bound to the same identity, binding new identities to fresh
// columns. Data type compatibility is asserted across all shared
// identities before any mutation. Columns of other without an identity are
// skipped.
func (t *Table[K]) MergeTableByID(other *Table[K], mode WriteMode) (Change, error) {
	for column, id := range other.ids {
		if mine, ok := t.rids[id]; ok {
			if err := checkTypes(t.types[mine], other.types[column]); err != nil {
				return Change{}, fmt.Errorf("merge tables: id %v: %w", id, err)
			}
		}
	}
	columns := make([]int, 0, len(other.ids))
	for column := range other.ids {
		columns = append(columns, column)
	}
	sort.Ints(columns)
	var change Change
	for _, column := range columns {
		id := other.ids[column]
		c, err := t.MergeColumnByID(id, other.Column(column), mode)
		if err != nil {
			return change, err
		}
		change = change.Add(c)
	}
	return change, nil
}

// mergeSeries is the write-mode state machine over one column's backing
// series. The update series is ordered and deduplicated by construction.
func mergeSeries(s, update *series, mode WriteMode) (Change, error) {
	var change Change
	if update.isEmpty() {
		return change, nil
	}
	first, _ := update.first()
	last, _ := update.last()

	switch mode {
	case WriteModeInsertDeleteExisting:
		// Walk the ordered union of the existing window and the update:
		// existing records are replaced or dropped, fresh update entries
		// inserted, markers honored as deletions.
		existing := s.keysBetween(first.ts, last.ts)
		for _, ts := range unionKeys(existing, update) {
			cur, have := s.get(ts)
			upd, haveUpd := update.get(ts)
			switch {
			case have && haveUpd && !upd.IsDeleted():
				change.noteModify(cur, upd)
				s.put(ts, upd)
			case have:
				change.noteDelete()
				s.remove(ts)
			case haveUpd && !upd.IsDeleted():
				change.noteInsert(upd)
				s.put(ts, upd)
			}
		}

	case WriteModeInsertFailOnExisting:
		if n := s.countBetween(first.ts, last.ts); n > 0 {
			return change, fmt.Errorf("insert failed: %w in range", ErrExistingRecords)
		}
		for _, e := range update.entries {
			if e.field.IsDeleted() {
				continue
			}
			change.noteInsert(e.field)
			s.put(e.ts, e.field)
		}

	case WriteModeMergeOverwriteExisting:
		for _, e := range update.entries {
			if e.field.IsDeleted() {
				if s.remove(e.ts) {
					change.noteDelete()
				}
				continue
			}
			if cur, ok := s.get(e.ts); ok {
				change.noteModify(cur, e.field)
			} else {
				change.noteInsert(e.field)
			}
			s.put(e.ts, e.field)
		}

	case WriteModeMergePreserveExisting:
		for _, e := range update.entries {
			if e.field.IsDeleted() || s.has(e.ts) {
				continue
			}
			change.noteInsert(e.field)
			s.put(e.ts, e.field)
		}

	case WriteModeMergeUpdateExisting:
		for _, e := range update.entries {
			if e.field.IsDeleted() {
				if s.remove(e.ts) {
					change.noteDelete()
				}
				continue
			}
			if cur, ok := s.get(e.ts); ok {
				change.noteModify(cur, e.field)
				s.put(e.ts, cur.Merge(e.field))
			} else {
				change.noteInsert(e.field)
				s.put(e.ts, e.field)
			}
		}

	case WriteModeMergeFailOnExisting:
		// Existence is checked across the whole update before mutating.
		for _, e := range update.entries {
			if s.has(e.ts) {
				return change, fmt.Errorf("merge failed: %w", ErrExistingRecords)
			}
		}
		for _, e := range update.entries {
			if e.field.IsDeleted() {
				continue
			}
			change.noteInsert(e.field)
			s.put(e.ts, e.field)
		}

	case WriteModeDeleteRange:
		change.DeletedRecords += s.removeBetween(first.ts, last.ts)

	case WriteModeDelete:
		for _, e := range update.entries {
			if s.remove(e.ts) {
				change.noteDelete()
			}
		}

	case WriteModeDiscard:

	default:
		return change, fmt.Errorf("%w: %d", ErrWriteMode, uint8(mode))
	}

	return change, nil
}

// unionKeys merges the sorted existing keys with the update's keys into
// one ascending sequence without duplicates.
func unionKeys(existing []int64, update *series) []int64 {
	keys := make([]int64, 0, len(existing)+update.len())
	i, j := 0, 0
	for i < len(existing) && j < update.len() {
		a, b := existing[i], update.entries[j].ts
		switch {
		case a < b:
			keys = append(keys, a)
			i++
		case a > b:
			keys = append(keys, b)
			j++
		default:
			keys = append(keys, a)
			i++
			j++
		}
	}
	for ; i < len(existing); i++ {
		keys = append(keys, existing[i])
	}
	for ; j < update.len(); j++ {
		keys = append(keys, update.entries[j].ts)
	}
	return keys
}
