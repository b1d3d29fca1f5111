package jts

import (
	"fmt"
	"strings"
)

// WriteMode selects the conflict policy applied when merging incoming
// records into existing column data.
type WriteMode uint8

const (
	WriteModeUnknown WriteMode = iota

	// WriteModeMergePreserveExisting inserts only where no record exists.
	WriteModeMergePreserveExisting

	// WriteModeMergeOverwriteExisting replaces records unconditionally.
	WriteModeMergeOverwriteExisting

	// WriteModeMergeUpdateExisting merges into existing records attribute
	// by attribute, preserving attributes the update leaves absent.
	WriteModeMergeUpdateExisting

	// WriteModeMergeFailOnExisting fails if any update timestamp collides
	// with an existing record.
	WriteModeMergeFailOnExisting

	// WriteModeInsertDeleteExisting deletes every existing record within
	// the update's time range, then inserts the update.
	WriteModeInsertDeleteExisting

	// WriteModeInsertFailOnExisting fails if any existing record falls
	// within the update's time range.
	WriteModeInsertFailOnExisting

	// WriteModeDeleteRange deletes every existing record within the
	// update's time range; update contents are ignored.
	WriteModeDeleteRange

	// WriteModeDelete deletes existing records at exactly the update's
	// timestamps.
	WriteModeDelete

	// WriteModeDiscard applies nothing.
	WriteModeDiscard
)

var writeModeNames = map[WriteMode]string{
	WriteModeMergePreserveExisting:  "MERGE_PRESERVE_EXISTING",
	WriteModeMergeOverwriteExisting: "MERGE_OVERWRITE_EXISTING",
	WriteModeMergeUpdateExisting:    "MERGE_UPDATE_EXISTING",
	WriteModeMergeFailOnExisting:    "MERGE_FAIL_ON_EXISTING",
	WriteModeInsertDeleteExisting:   "INSERT_DELETE_EXISTING",
	WriteModeInsertFailOnExisting:   "INSERT_FAIL_ON_EXISTING",
	WriteModeDeleteRange:            "DELETE_RANGE",
	WriteModeDelete:                 "DELETE",
	WriteModeDiscard:                "DISCARD",
}

func (m WriteMode) String() string {
	if name, ok := writeModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("WriteMode(%d)", uint8(m))
}

// ParseWriteMode accepts mode names case-insensitively, for example
// "merge_overwrite_existing".
func ParseWriteMode(s string) (WriteMode, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for mode, name := range writeModeNames {
		if name == want {
			return mode, nil
		}
	}
	return WriteModeUnknown, fmt.Errorf("%w: %q", ErrWriteMode, s)
}

// IsDelete reports whether the mode honors delete markers in the update.
func (m WriteMode) IsDelete() bool {
	switch m {
	case WriteModeDelete, WriteModeDeleteRange, WriteModeMergeUpdateExisting:
		return true
	default:
		return false
	}
}

// IsOverwrite reports whether the mode replaces existing records.
func (m WriteMode) IsOverwrite() bool {
	switch m {
	case WriteModeMergeOverwriteExisting, WriteModeInsertDeleteExisting, WriteModeMergeUpdateExisting:
		return true
	default:
		return false
	}
}

// IsPreserve reports whether the mode leaves existing records untouched.
func (m WriteMode) IsPreserve() bool {
	switch m {
	case WriteModeMergePreserveExisting, WriteModeInsertFailOnExisting, WriteModeMergeFailOnExisting:
		return true
	default:
		return false
	}
}

// IsDiscard reports whether the mode applies nothing.
func (m WriteMode) IsDiscard() bool { return m == WriteModeDiscard }
