package jts

import (
	"slices"
	"time"
)

// seriesEntry pairs an epoch-millisecond key with its field.
type seriesEntry struct {
	ts    int64
	field Field
}

// series is the backing store for one column: entries sorted by timestamp,
// timestamps unique. All range bounds are expressed on the millisecond key
// space.
type series struct {
	entries []seriesEntry
}

func tsKey(t time.Time) int64 { return t.UnixMilli() }

func keyTime(k int64, loc *time.Location) time.Time {
	return time.UnixMilli(k).In(loc)
}

// search returns the index of ts and whether it is present; absent keys
// return the insertion index.
func (s *series) search(ts int64) (int, bool) {
	return slices.BinarySearchFunc(s.entries, ts, func(e seriesEntry, key int64) int {
		switch {
		case e.ts < key:
			return -1
		case e.ts > key:
			return 1
		default:
			return 0
		}
	})
}

// put inserts or replaces the entry at ts. Appends are O(1); the common
// ingest pattern is monotonically increasing timestamps.
func (s *series) put(ts int64, f Field) {
	if n := len(s.entries); n == 0 || s.entries[n-1].ts < ts {
		s.entries = append(s.entries, seriesEntry{ts: ts, field: f})
		return
	}
	i, ok := s.search(ts)
	if ok {
		s.entries[i].field = f
		return
	}
	s.entries = slices.Insert(s.entries, i, seriesEntry{ts: ts, field: f})
}

func (s *series) get(ts int64) (Field, bool) {
	if i, ok := s.search(ts); ok {
		return s.entries[i].field, true
	}
	return Field{}, false
}

func (s *series) has(ts int64) bool {
	_, ok := s.search(ts)
	return ok
}

// remove deletes the entry at ts, reporting whether one existed.
func (s *series) remove(ts int64) bool {
	i, ok := s.search(ts)
	if !ok {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

func (s *series) len() int { return len(s.entries) }

func (s *series) isEmpty() bool { return len(s.entries) == 0 }

func (s *series) first() (seriesEntry, bool) {
	if len(s.entries) == 0 {
		return seriesEntry{}, false
	}
	return s.entries[0], true
}

func (s *series) last() (seriesEntry, bool) {
	if len(s.entries) == 0 {
		return seriesEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// rangeIndexes returns the half-open index window covering keys in
// [start, end).
func (s *series) rangeIndexes(start, end int64) (int, int) {
	lo, _ := s.search(start)
	hi, _ := s.search(end)
	return lo, hi
}

// countBetween counts entries with keys in [start, end].
func (s *series) countBetween(start, end int64) int {
	lo, hi := s.rangeIndexes(start, end+1)
	return hi - lo
}

// removeBetween deletes entries with keys in [start, end], returning how
// many were removed.
func (s *series) removeBetween(start, end int64) int {
	lo, hi := s.rangeIndexes(start, end+1)
	n := hi - lo
	if n > 0 {
		s.entries = slices.Delete(s.entries, lo, hi)
	}
	return n
}

// keysBetween returns the keys in [start, end].
func (s *series) keysBetween(start, end int64) []int64 {
	lo, hi := s.rangeIndexes(start, end+1)
	keys := make([]int64, 0, hi-lo)
	for _, e := range s.entries[lo:hi] {
		keys = append(keys, e.ts)
	}
	return keys
}

// clearBefore removes entries strictly before ts.
func (s *series) clearBefore(ts int64) {
	i, _ := s.search(ts)
	if i > 0 {
		s.entries = slices.Delete(s.entries, 0, i)
	}
}

// clearAfter removes entries strictly after ts.
func (s *series) clearAfter(ts int64) {
	i, ok := s.search(ts)
	if ok {
		i++
	}
	if i < len(s.entries) {
		s.entries = slices.Delete(s.entries, i, len(s.entries))
	}
}

// after returns copies of entries strictly after ts.
func (s *series) after(ts int64) []seriesEntry {
	i, ok := s.search(ts)
	if ok {
		i++
	}
	return slices.Clone(s.entries[i:])
}

// before returns copies of entries strictly before ts.
func (s *series) before(ts int64) []seriesEntry {
	i, _ := s.search(ts)
	return slices.Clone(s.entries[:i])
}

// between returns copies of entries with keys in [start, end).
func (s *series) between(start, end int64) []seriesEntry {
	lo, hi := s.rangeIndexes(start, end)
	return slices.Clone(s.entries[lo:hi])
}

// firstBefore returns the nearest entry strictly before ts.
func (s *series) firstBefore(ts int64) (seriesEntry, bool) {
	i, _ := s.search(ts)
	if i == 0 {
		return seriesEntry{}, false
	}
	return s.entries[i-1], true
}

// firstAfter returns the nearest entry strictly after ts.
func (s *series) firstAfter(ts int64) (seriesEntry, bool) {
	i, ok := s.search(ts)
	if ok {
		i++
	}
	if i >= len(s.entries) {
		return seriesEntry{}, false
	}
	return s.entries[i], true
}

func (s *series) clone() *series {
	return &series{entries: slices.Clone(s.entries)}
}

// retainFirst keeps only the first n entries.
func (s *series) retainFirst(n int) {
	if n < len(s.entries) {
		s.entries = slices.Delete(s.entries, n, len(s.entries))
	}
}

// retainLast keeps only the last n entries.
func (s *series) retainLast(n int) {
	if n < len(s.entries) {
		s.entries = slices.Delete(s.entries, 0, len(s.entries)-n)
	}
}
