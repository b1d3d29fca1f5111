package jts

import (
	"fmt"
	"strings"
	"time"
)

// presence distinguishes an attribute that was never set from one that was
// explicitly set to null. Merges treat the two differently: an absent
// attribute leaves the existing value untouched, an explicit null clears it.
type presence uint8

const (
	absent presence = iota
	null
	set
)

// Field is the atomic sample: a typed value plus optional quality code,
// annotation and last-modified time. Value, quality and annotation each
// track presence independently. Fields are values; mutators return copies.
type Field struct {
	value      Value
	quality    int32
	annotation string
	modified   time.Time

	vp presence
	qp presence
	ap presence
}

// NewField coerces raw into a field value. Nil and non-finite floats
// produce an explicit null value; unsupported types fail with
// ErrUnsupportedValue.
func NewField(raw any) (Field, error) {
	v, err := coerceValue(raw)
	if err != nil {
		return Field{}, err
	}
	f := Field{value: v, vp: set}
	if v == nil {
		f.vp = null
	}
	return f, nil
}

// NumberField returns a field holding a numeric value.
func NumberField(v float64) Field {
	f, _ := NewField(v)
	return f
}

// TextField returns a field holding a text value.
func TextField(s string) Field {
	return Field{value: Text(s), vp: set}
}

// TimeField returns a field holding an embedded timestamp value.
func TimeField(t time.Time) Field {
	return Field{value: NewTime(t), vp: set}
}

// NullField returns a field whose value is explicitly null.
func NullField() Field {
	return Field{vp: null}
}

// DeleteField returns a delete marker: a field whose quality is the DELETE
// sentinel and whose value and annotation are absent. Merges interpret it
// as a removal instruction rather than a stored value.
func DeleteField() Field {
	return Field{quality: int32(SystemQualityDelete), qp: set}
}

// SystemQualityField returns a valueless field carrying the given system
// quality code verbatim.
func SystemQualityField(s SystemQuality) Field {
	return Field{quality: int32(s), qp: set}
}

// HasValue reports whether the value attribute is present, explicitly null
// included.
func (f Field) HasValue() bool { return f.vp != absent }

// IsValueNull reports whether the value attribute is an explicit null.
func (f Field) IsValueNull() bool { return f.vp == null }

// Value returns the field's value, or nil when the value is absent or
// explicitly null.
func (f Field) Value() Value {
	if f.vp != set {
		return nil
	}
	return f.value
}

// DataType returns the data type of the field's value, or TypeUnknown when
// no typed value is set.
func (f Field) DataType() DataType {
	if f.vp != set || f.value == nil {
		return TypeUnknown
	}
	return f.value.Type()
}

// HasQuality reports whether the quality attribute is present, explicitly
// null included.
func (f Field) HasQuality() bool { return f.qp != absent }

// Quality returns the caller-visible quality: negative sentinel codes
// verbatim, otherwise the low 16 user bits. ok is false when the quality is
// absent or explicitly null.
func (f Field) Quality() (q int32, ok bool) {
	if f.qp != set {
		return 0, false
	}
	return userQuality(f.quality), true
}

// CombinedQuality returns the raw packed 32-bit quality code.
func (f Field) CombinedQuality() (q int32, ok bool) {
	if f.qp != set {
		return 0, false
	}
	return f.quality, true
}

// HasAnnotation reports whether the annotation attribute is present,
// explicitly null included.
func (f Field) HasAnnotation() bool { return f.ap != absent }

// Annotation returns the annotation text; ok is false when the annotation
// is absent or explicitly null.
func (f Field) Annotation() (a string, ok bool) {
	if f.ap != set {
		return "", false
	}
	return f.annotation, true
}

// ModifiedTime returns the last-write time, zero when unset.
func (f Field) ModifiedTime() time.Time { return f.modified }

// IsDeleted reports whether the field is a delete marker.
func (f Field) IsDeleted() bool {
	return f.qp == set && f.quality == int32(SystemQualityDelete)
}

// WithValue returns a copy with the value attribute set to the coercion of
// raw.
func (f Field) WithValue(raw any) (Field, error) {
	v, err := coerceValue(raw)
	if err != nil {
		return Field{}, err
	}
	f.value = v
	f.vp = set
	if v == nil {
		f.vp = null
	}
	return f, nil
}

// WithNullValue returns a copy whose value attribute is an explicit null.
func (f Field) WithNullValue() Field {
	f.value = nil
	f.vp = null
	return f
}

// WithUserQuality returns a copy with the user quality bits set and the
// system flag cleared. Qualities outside 0-65535 fail with ErrQualityRange.
func (f Field) WithUserQuality(q int32) (Field, error) {
	base := int32(0)
	if f.qp == set {
		base = f.quality
	}
	packed, err := packUserQuality(base, q)
	if err != nil {
		return Field{}, err
	}
	f.quality = packed
	f.qp = set
	return f, nil
}

// WithSystemQuality returns a copy carrying the given system code with the
// system flag raised. Negative sentinel codes pass through verbatim.
func (f Field) WithSystemQuality(s SystemQuality) Field {
	base := int32(0)
	if f.qp == set {
		base = f.quality
	}
	f.quality = packSystemQuality(base, s)
	f.qp = set
	return f
}

// WithCombinedQuality returns a copy with the raw packed quality assigned
// directly, no bit manipulation applied.
func (f Field) WithCombinedQuality(q int32) Field {
	f.quality = q
	f.qp = set
	return f
}

// WithNullQuality returns a copy whose quality attribute is an explicit
// null.
func (f Field) WithNullQuality() Field {
	f.quality = 0
	f.qp = null
	return f
}

// WithAnnotation returns a copy with the annotation set.
func (f Field) WithAnnotation(a string) Field {
	f.annotation = a
	f.ap = set
	return f
}

// WithNullAnnotation returns a copy whose annotation attribute is an
// explicit null.
func (f Field) WithNullAnnotation() Field {
	f.annotation = ""
	f.ap = null
	return f
}

// WithModifiedTime returns a copy with the last-write time set.
func (f Field) WithModifiedTime(t time.Time) Field {
	f.modified = t.Truncate(time.Millisecond)
	return f
}

// Merge overlays other onto f attribute by attribute: where other's value,
// quality or annotation is present (explicit null included) it replaces
// f's; absent attributes leave f's untouched. The modified time becomes the
// later of the two.
func (f Field) Merge(other Field) Field {
	if other.vp != absent {
		f.value = other.value
		f.vp = other.vp
	}
	if other.qp != absent {
		f.quality = other.quality
		f.qp = other.qp
	}
	if other.ap != absent {
		f.annotation = other.annotation
		f.ap = other.ap
	}
	if other.modified.After(f.modified) {
		f.modified = other.modified
	}
	return f
}

// Equal compares value, quality and annotation, presence included. The
// modified time does not participate.
func (f Field) Equal(other Field) bool {
	if f.vp != other.vp || f.qp != other.qp || f.ap != other.ap {
		return false
	}
	if f.vp == set && !valueEqual(f.value, other.value) {
		return false
	}
	if f.qp == set && f.quality != other.quality {
		return false
	}
	if f.ap == set && f.annotation != other.annotation {
		return false
	}
	return true
}

// ValueAsNumber returns the value as a float64, failing with ErrValueType
// when the stored value is not a Number.
func (f Field) ValueAsNumber() (float64, error) {
	if n, ok := f.Value().(Number); ok {
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: have %s, want %s", ErrValueType, f.DataType(), TypeNumber)
}

// ValueAsText returns the value as a string, failing with ErrValueType when
// the stored value is not Text.
func (f Field) ValueAsText() (string, error) {
	if t, ok := f.Value().(Text); ok {
		return string(t), nil
	}
	return "", fmt.Errorf("%w: have %s, want %s", ErrValueType, f.DataType(), TypeText)
}

// ValueAsTime returns the embedded timestamp, failing with ErrValueType
// when the stored value is not a Time.
func (f Field) ValueAsTime() (time.Time, error) {
	if t, ok := f.Value().(Time); ok {
		return t.t, nil
	}
	return time.Time{}, fmt.Errorf("%w: have %s, want %s", ErrValueType, f.DataType(), TypeTime)
}

// ValueAsCoordinates returns the value as Coordinates, failing with
// ErrValueType on any other stored type.
func (f Field) ValueAsCoordinates() (Coordinates, error) {
	if c, ok := f.Value().(Coordinates); ok {
		return c, nil
	}
	return Coordinates{}, fmt.Errorf("%w: have %s, want %s", ErrValueType, f.DataType(), TypeCoordinates)
}

// ValueAsMetrics returns the value as a Metrics vector, failing with
// ErrValueType on any other stored type.
func (f Field) ValueAsMetrics() (Metrics, error) {
	if m, ok := f.Value().(Metrics); ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: have %s, want %s", ErrValueType, f.DataType(), TypeMetrics)
}

func (f Field) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	switch f.vp {
	case set:
		fmt.Fprintf(&sb, "v=%v", f.value)
	case null:
		sb.WriteString("v=null")
	}
	if f.qp != absent {
		if sb.Len() > 1 {
			sb.WriteString(" ")
		}
		if f.qp == null {
			sb.WriteString("q=null")
		} else {
			fmt.Fprintf(&sb, "q=%d", f.quality)
		}
	}
	if f.ap != absent {
		if sb.Len() > 1 {
			sb.WriteString(" ")
		}
		if f.ap == null {
			sb.WriteString("a=null")
		} else {
			fmt.Fprintf(&sb, "a=%q", f.annotation)
		}
	}
	sb.WriteString("}")
	return sb.String()
}
