package jts

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceNumbers(t *testing.T) {
	inputs := []any{
		float64(42), float32(42), int(42), int8(42), int16(42), int32(42), int64(42),
		uint(42), uint8(42), uint16(42), uint32(42), uint64(42),
	}
	for _, raw := range inputs {
		f, err := NewField(raw)
		require.NoError(t, err, "input %T", raw)
		assert.Equal(t, Number(42), f.Value(), "input %T", raw)
		assert.Equal(t, TypeNumber, f.DataType())
	}
}

func TestCoerceBool(t *testing.T) {
	f, err := NewField(true)
	require.NoError(t, err)
	assert.Equal(t, Number(1), f.Value())

	f, err = NewField(false)
	require.NoError(t, err)
	assert.Equal(t, Number(0), f.Value())
}

func TestCoerceText(t *testing.T) {
	f, err := NewField("reading")
	require.NoError(t, err)
	assert.Equal(t, Text("reading"), f.Value())
	assert.Equal(t, TypeText, f.DataType())
}

func TestCoerceTime(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	f, err := NewField(ts)
	require.NoError(t, err)

	// Embedded timestamps truncate to millisecond precision.
	v, err := f.ValueAsTime()
	require.NoError(t, err)
	assert.Equal(t, ts.Truncate(time.Millisecond), v)
	assert.Equal(t, TypeTime, f.DataType())
}

func TestCoerceNulls(t *testing.T) {
	for _, raw := range []any{nil, math.NaN(), math.Inf(1), math.Inf(-1)} {
		f, err := NewField(raw)
		require.NoError(t, err, "input %v", raw)
		assert.True(t, f.IsValueNull(), "input %v", raw)
		assert.Nil(t, f.Value())
	}
}

func TestCoerceUnsupported(t *testing.T) {
	_, err := NewField([]byte("nope"))
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = NewField(struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestCoerceTaggedValues(t *testing.T) {
	f, err := NewField(map[string]any{TagCoords: []any{-37.8, 144.9}})
	require.NoError(t, err)
	c, err := f.ValueAsCoordinates()
	require.NoError(t, err)
	assert.Equal(t, -37.8, c.Latitude())
	assert.Equal(t, 144.9, c.Longitude())

	f, err = NewField(map[string]any{TagMetric: []any{1, 2.5, 3}})
	require.NoError(t, err)
	m, err := f.ValueAsMetrics()
	require.NoError(t, err)
	assert.Equal(t, Metrics{1, 2.5, 3}, m)

	f, err = NewField(map[string]any{TagTime: "2024-05-06T07:08:09.123Z"})
	require.NoError(t, err)
	ts, err := f.ValueAsTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC), ts.UTC())

	f, err = NewField(map[string]any{TagMillis: int64(1700000000000)})
	require.NoError(t, err)
	ts, err = f.ValueAsTime()
	require.NoError(t, err)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), ts.UTC())
}

func TestCoerceTaggedErrors(t *testing.T) {
	cases := []map[string]any{
		{"$bogus": 1},
		{TagCoords: []any{1.0}},
		{TagCoords: []any{1.0, 2.0, 3.0}},
		{TagCoords: "not numbers"},
		{TagTime: 42},
		{TagTime: "not a timestamp"},
		{TagMillis: "soon"},
		{TagCoords: []any{1.0, 2.0}, TagMetric: []any{1.0}},
	}
	for _, raw := range cases {
		_, err := NewField(raw)
		assert.ErrorIs(t, err, ErrUnsupportedValue, "input %v", raw)
	}
}

func TestNewCoordinates(t *testing.T) {
	c, err := NewCoordinates(-37.8, 144.9)
	require.NoError(t, err)
	assert.Equal(t, "-37.8/144.9", c.String())
	assert.Equal(t, TypeCoordinates, c.Type())
	assert.Equal(t, TagCoords, c.Tag())

	_, err = NewCoordinates(90.1, 0)
	assert.ErrorIs(t, err, ErrCoordinateRange)
	_, err = NewCoordinates(-90.1, 0)
	assert.ErrorIs(t, err, ErrCoordinateRange)
	_, err = NewCoordinates(0, 180.5)
	assert.ErrorIs(t, err, ErrCoordinateRange)
	_, err = NewCoordinates(0, -181)
	assert.ErrorIs(t, err, ErrCoordinateRange)

	// The poles and the antimeridian are inside the range.
	_, err = NewCoordinates(90, 180)
	assert.NoError(t, err)
	_, err = NewCoordinates(-90, -180)
	assert.NoError(t, err)
}

func TestMetricsCompare(t *testing.T) {
	tests := []struct {
		a, b Metrics
		want int
	}{
		{Metrics{1, 2}, Metrics{1, 2}, 0},
		{Metrics{1, 2}, Metrics{1, 3}, -1},
		{Metrics{2}, Metrics{1, 9}, 1},
		{Metrics{1}, Metrics{1, 0}, -1},
		{Metrics{1, 0}, Metrics{1}, 1},
		{nil, nil, 0},
		{nil, Metrics{0}, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%v vs %v", tt.a, tt.b)
	}
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, "3", Number(3).String())
	assert.Equal(t, "-0.25", Number(-0.25).String())
	assert.Equal(t, "reading", Text("reading").String())
	assert.Equal(t, "[1, 2.5]", Metrics{1, 2.5}.String())
	assert.Equal(t, "[]", Metrics{}.String())

	ts := NewTime(time.Date(2024, 5, 6, 7, 8, 9, 123000000, time.UTC))
	assert.Equal(t, "2024-05-06T07:08:09.123Z", ts.String())
	assert.Equal(t, int64(1714979289123), ts.Millis())
}
