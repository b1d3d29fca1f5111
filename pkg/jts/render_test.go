package jts

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDelimitedCSV(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1.5)))
	require.NoError(t, tab.Put(at(0), 1, TextField("ok")))
	require.NoError(t, tab.Put(at(1), 1, TextField("warm").WithAnnotation("checked")))

	header := &DocumentHeader{Columns: map[int]ColumnHeader{
		0: {ID: "temp", Name: "Temperature", Units: "degC", Format: "0.0"},
		1: {ID: "state", Name: "State"},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteDelimited(&buf, tab, header, FormatCSV))

	want := `"Id","temp;Annotation","state;Annotation"
"Timestamp","Temperature;Annotation","State;Annotation"
"Units","degC",""
2024-05-06T00:00:00.000+00:00,1.5;,"ok";
2024-05-06T00:00:01.000+00:00,;,"warm";checked
`
	assert.Equal(t, want, buf.String())
}

func TestWriteDelimitedSeparateQuality(t *testing.T) {
	format := FormatCSV
	format.QualityEnabled = true
	format.QualityStyle = AttributeSeparateValue
	format.AnnotationsEnabled = false

	qualified, err := NumberField(1.5).WithUserQuality(192)
	require.NoError(t, err)

	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, qualified))
	require.NoError(t, tab.Put(at(1), 0, NumberField(2)))

	header := &DocumentHeader{Columns: map[int]ColumnHeader{
		0: {ID: "temp", Name: "Temperature", Units: "degC"},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteDelimited(&buf, tab, header, format))

	want := `"Id","temp","Temperature [Quality]"
"Timestamp","Temperature","Temperature [Quality]"
"Units","degC"
2024-05-06T00:00:00.000+00:00,1.5,192
2024-05-06T00:00:01.000+00:00,2,
`
	assert.Equal(t, want, buf.String())
}

func TestWriteDelimitedNoHeader(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1)))

	var buf bytes.Buffer
	require.NoError(t, WriteDelimited(&buf, tab, nil, FormatCSV))
	assert.Equal(t, "2024-05-06T00:00:00.000+00:00,1;\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteDelimited(&buf, NewTable[string](), nil, FormatCSV))
	assert.Empty(t, buf.String())
}

func TestWriteDelimitedComplexValues(t *testing.T) {
	format := FormatCSV
	format.AnnotationsEnabled = false

	coords, err := NewCoordinates(-37.8, 144.9)
	require.NoError(t, err)
	coordsField, err := NewField(coords)
	require.NoError(t, err)
	metricsField, err := NewField(Metrics{1, 2.5})
	require.NoError(t, err)

	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, coordsField))
	require.NoError(t, tab.Put(at(0), 1, metricsField))
	require.NoError(t, tab.Put(at(0), 2, TimeField(at(2))))

	var buf bytes.Buffer
	require.NoError(t, WriteDelimited(&buf, tab, nil, format))
	assert.Equal(t, "2024-05-06T00:00:00.000+00:00,-37.8/144.9,[1, 2.5],2024-05-06T00:00:02.000Z\n", buf.String())
}

func TestWriteDelimitedValidates(t *testing.T) {
	format := FormatCSV
	format.AnnotationDelimiter = ","

	var buf bytes.Buffer
	err := WriteDelimited(&buf, NewTable[string](), nil, format)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelimiterCollision)
	assert.Empty(t, buf.String())
}

func TestWriteFixedWidth(t *testing.T) {
	tab := NewTable[string]()
	require.NoError(t, tab.Put(at(0), 0, NumberField(1.5)))
	require.NoError(t, tab.Put(at(0), 2, TextField("a very long annotation style cell")))
	require.NoError(t, tab.Put(at(1), 0, NumberField(2)))

	header := &DocumentHeader{Columns: map[int]ColumnHeader{
		0: {Name: "Temperature"},
		2: {Name: "Notes"},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteFixedWidth(&buf, tab, header, FormatFixedWidth))

	want := fmt.Sprintf("%-30s%-30s%-30s%-30s\n", "Timestamp", "Temperature", "", "Notes") +
		fmt.Sprintf("%-30s%-30s%-30s%-30s\n", "2024-05-06T00:00:00.000Z", "1.5", "", "a very long annotation s...") +
		fmt.Sprintf("%-30s%-30s%-30s%-30s\n", "2024-05-06T00:00:01.000Z", "2", "", "")
	assert.Equal(t, want, buf.String())
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "short", truncateCell("short"))
	assert.Equal(t, "123456789012345678901234", truncateCell("123456789012345678901234"))
	assert.Equal(t, "123456789012345678901234...", truncateCell("1234567890123456789012345"))
}
