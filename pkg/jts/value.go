package jts

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is a field's typed payload: one of Number, Text, Time, Coordinates
// or Metrics. The set is closed; the codec relies on exhaustive switches
// over these variants.
type Value interface {
	// Type returns the data type of the value.
	Type() DataType

	isValue()
}

// ComplexValue is a structured Value identified on the wire by a dollar-key
// type tag, for example {"$coords": [-37.8, 144.9]}.
type ComplexValue interface {
	Value

	// Tag returns the wire type tag, including the leading dollar sign.
	Tag() string
}

// Wire type tags for complex values.
const (
	TagCoords = "$coords"
	TagMetric = "$metrics"
	TagTime   = "$time"
	TagMillis = "$millis"
)

// Number is a numeric sample value. All numeric inputs, including booleans,
// coerce to Number.
type Number float64

func (Number) Type() DataType { return TypeNumber }
func (Number) isValue()       {}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Text is a free-text sample value.
type Text string

func (Text) Type() DataType { return TypeText }
func (Text) isValue()       {}

func (t Text) String() string { return string(t) }

// Time is an embedded timestamp value. It serializes either as an ISO
// string ({"$time": ...}) or as epoch milliseconds ({"$millis": ...}).
// Precision is milliseconds.
type Time struct {
	t time.Time
}

// NewTime wraps t as a Time value, truncated to millisecond precision.
func NewTime(t time.Time) Time {
	return Time{t: t.Truncate(time.Millisecond)}
}

func (Time) Type() DataType { return TypeTime }
func (Time) isValue()       {}
func (Time) Tag() string    { return TagTime }

// Value returns the wrapped timestamp.
func (t Time) Value() time.Time { return t.t }

// Millis returns the timestamp as epoch milliseconds.
func (t Time) Millis() int64 { return t.t.UnixMilli() }

func (t Time) String() string { return formatISO(t.t) }

// Coordinates is a geographic position value.
type Coordinates struct {
	lat float64
	lng float64
}

// coordinatesDelimiter separates latitude from longitude in the textual
// form; delimited-text output must not collide with it.
const coordinatesDelimiter = "/"

// NewCoordinates validates the position against +/-90 latitude and +/-180
// longitude.
func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("%w: latitude %v", ErrCoordinateRange, lat)
	}
	if lng < -180 || lng > 180 {
		return Coordinates{}, fmt.Errorf("%w: longitude %v", ErrCoordinateRange, lng)
	}
	return Coordinates{lat: lat, lng: lng}, nil
}

func (Coordinates) Type() DataType { return TypeCoordinates }
func (Coordinates) isValue()       {}
func (Coordinates) Tag() string    { return TagCoords }

// Latitude returns the latitude in degrees.
func (c Coordinates) Latitude() float64 { return c.lat }

// Longitude returns the longitude in degrees.
func (c Coordinates) Longitude() float64 { return c.lng }

func (c Coordinates) String() string {
	return formatFloat(c.lat) + coordinatesDelimiter + formatFloat(c.lng)
}

// Metrics is an ordered vector of numbers.
type Metrics []float64

func (Metrics) Type() DataType { return TypeMetrics }
func (Metrics) isValue()       {}
func (Metrics) Tag() string    { return TagMetric }

// Compare orders metrics lexicographically, element by element, with the
// shorter vector first on a shared prefix.
func (m Metrics) Compare(other Metrics) int {
	for i := 0; i < len(m) && i < len(other); i++ {
		switch {
		case m[i] < other[i]:
			return -1
		case m[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(m) < len(other):
		return -1
	case len(m) > len(other):
		return 1
	default:
		return 0
	}
}

func (m Metrics) String() string {
	parts := make([]string, len(m))
	for i, v := range m {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// valueEqual compares two values structurally. Either may be nil.
func valueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Time:
		bv, ok := b.(Time)
		return ok && av.t.Equal(bv.t)
	case Coordinates:
		bv, ok := b.(Coordinates)
		return ok && av == bv
	case Metrics:
		bv, ok := b.(Metrics)
		return ok && av.Compare(bv) == 0
	default:
		return false
	}
}

// coerceValue normalizes a raw input into a Value per the field coercion
// rules. A nil result with a nil error is an explicit null: nil inputs and
// non-finite floats coerce to null rather than failing.
func coerceValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case Value:
		return v, nil
	case string:
		return Text(v), nil
	case bool:
		if v {
			return Number(1), nil
		}
		return Number(0), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil
		}
		return Number(v), nil
	case float32:
		return coerceValue(float64(v))
	case int:
		return Number(v), nil
	case int8:
		return Number(v), nil
	case int16:
		return Number(v), nil
	case int32:
		return Number(v), nil
	case int64:
		return Number(v), nil
	case uint:
		return Number(v), nil
	case uint8:
		return Number(v), nil
	case uint16:
		return Number(v), nil
	case uint32:
		return Number(v), nil
	case uint64:
		return Number(v), nil
	case time.Time:
		return NewTime(v), nil
	case map[string]any:
		return decodeTagged(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, raw)
	}
}

// decodeTagged dispatches a structured map to a ComplexValue variant by its
// reserved dollar-key tag.
func decodeTagged(m map[string]any) (Value, error) {
	if len(m) != 1 {
		return nil, fmt.Errorf("%w: tagged value must have exactly one key", ErrUnsupportedValue)
	}
	for tag, payload := range m {
		switch tag {
		case TagCoords:
			nums, err := toFloats(payload)
			if err != nil || len(nums) != 2 {
				return nil, fmt.Errorf("%w: %s payload", ErrUnsupportedValue, TagCoords)
			}
			return NewCoordinates(nums[0], nums[1])
		case TagMetric:
			nums, err := toFloats(payload)
			if err != nil {
				return nil, fmt.Errorf("%w: %s payload", ErrUnsupportedValue, TagMetric)
			}
			return Metrics(nums), nil
		case TagTime:
			s, ok := payload.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s payload", ErrUnsupportedValue, TagTime)
			}
			t, err := parseTimestamp(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %s payload: %v", ErrUnsupportedValue, TagTime, err)
			}
			return NewTime(t), nil
		case TagMillis:
			ms, err := toInt64(payload)
			if err != nil {
				return nil, fmt.Errorf("%w: %s payload", ErrUnsupportedValue, TagMillis)
			}
			return NewTime(time.UnixMilli(ms).UTC()), nil
		default:
			return nil, fmt.Errorf("%w: unrecognized tag %q", ErrUnsupportedValue, tag)
		}
	}
	return nil, fmt.Errorf("%w: empty tagged value", ErrUnsupportedValue)
}

func toFloats(payload any) ([]float64, error) {
	items, ok := payload.([]any)
	if !ok {
		if f, fok := payload.([]float64); fok {
			return f, nil
		}
		return nil, fmt.Errorf("not an array")
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func toInt64(v any) (int64, error) {
	f, err := toFloat64(v)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
