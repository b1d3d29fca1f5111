package jts

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// Codec encodes and decodes documents as JSON. The zero value encodes the
// compact interchange flavor; set Format for the pretty flavor or to
// strip headers. Presence of the v, q and a attributes survives both
// directions: an attribute missing from the wire stays absent, JSON null
// decodes as an explicit null.
type Codec[K comparable] struct {
	Format DocumentFormat

	// NullAttributes emits explicitly null attributes as JSON null instead
	// of omitting them, so null presence survives re-encoding.
	NullAttributes bool

	// Index is bound to decoded tables, mapping column index to identity.
	// When nil and K is string, column ids from the document header are
	// bound instead.
	Index map[int]K
}

// EncodeJSON encodes the document under the given format.
func EncodeJSON[K comparable](d *Document[K], format DocumentFormat) ([]byte, error) {
	return Codec[K]{Format: format}.Encode(d)
}

// DecodeJSON decodes a document, binding header column ids as the table
// index.
func DecodeJSON(data []byte) (*Document[string], error) {
	return Codec[string]{}.Decode(data)
}

type fieldDTO struct {
	V json.RawMessage `json:"v,omitempty"`
	Q json.RawMessage `json:"q,omitempty"`
	A json.RawMessage `json:"a,omitempty"`
}

type columnDTO struct {
	ID         string `json:"id,omitempty" msgpack:"id,omitempty"`
	Name       string `json:"name,omitempty" msgpack:"name,omitempty"`
	DataType   string `json:"dataType,omitempty" msgpack:"dataType,omitempty"`
	Aggregate  string `json:"aggregate,omitempty" msgpack:"aggregate,omitempty"`
	Interval   string `json:"interval,omitempty" msgpack:"interval,omitempty"`
	BaseTime   string `json:"baseTime,omitempty" msgpack:"baseTime,omitempty"`
	Format     string `json:"format,omitempty" msgpack:"format,omitempty"`
	RenderType string `json:"renderType,omitempty" msgpack:"renderType,omitempty"`
	Units      string `json:"units,omitempty" msgpack:"units,omitempty"`
}

type headerDTO struct {
	ID          string               `json:"id,omitempty" msgpack:"id,omitempty"`
	Name        string               `json:"name,omitempty" msgpack:"name,omitempty"`
	StartTime   string               `json:"startTime,omitempty" msgpack:"startTime,omitempty"`
	EndTime     string               `json:"endTime,omitempty" msgpack:"endTime,omitempty"`
	RecordCount int                  `json:"recordCount" msgpack:"recordCount"`
	Columns     map[string]columnDTO `json:"columns,omitempty" msgpack:"columns,omitempty"`
}

type recordDTO struct {
	TS json.RawMessage     `json:"ts"`
	F  map[string]fieldDTO `json:"f"`
}

type documentDTO struct {
	DocType string      `json:"docType"`
	SubType string      `json:"subType"`
	Version string      `json:"version"`
	Header  *headerDTO  `json:"header,omitempty"`
	Data    []recordDTO `json:"data"`
}

type documentEncodeDTO struct {
	DocType string            `json:"docType"`
	SubType string            `json:"subType"`
	Version string            `json:"version"`
	Header  *headerDTO        `json:"header,omitempty"`
	Data    []json.RawMessage `json:"data"`
}

var nullRaw = json.RawMessage("null")

// Encode returns the document as JSON bytes.
func (c Codec[K]) Encode(d *Document[K]) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.EncodeTo(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo writes the document as JSON to w.
func (c Codec[K]) EncodeTo(w io.Writer, d *Document[K]) error {
	format := c.format()
	t := d.Table
	if t == nil {
		t = NewTable[K]()
	}
	var hdr *headerDTO
	if d.Header != nil && format.HeaderEnabled {
		hdr = encodeHeader(d.Header)
	}
	rows, err := c.encodeRecords(t, format)
	if err != nil {
		return err
	}
	if format.Pretty() {
		return writePretty(w, d, hdr, rows)
	}
	out, err := json.Marshal(documentEncodeDTO{
		DocType: d.DocType,
		SubType: d.SubType,
		Version: d.Version,
		Header:  hdr,
		Data:    rows,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func (c Codec[K]) format() DocumentFormat {
	if c.Format == (DocumentFormat{}) {
		return FormatJSONStandard
	}
	return c.Format
}

func (c Codec[K]) encodeRecords(t *Table[K], format DocumentFormat) ([]json.RawMessage, error) {
	rows := make([]json.RawMessage, 0, t.RecordCount())
	loc := t.Zone()
	for _, key := range t.rowKeys() {
		row, err := c.encodeRecord(t, key, format, loc)
		if err != nil {
			return nil, fmt.Errorf("encode record at %s: %w", formatISO(keyTime(key, loc)), err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// encodeRecord assembles one record by hand so field objects keep column
// order on the wire.
func (c Codec[K]) encodeRecord(t *Table[K], key int64, format DocumentFormat, loc *time.Location) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"ts":`)
	if format.Pretty() {
		ts, err := json.Marshal(formatISO(keyTime(key, loc)))
		if err != nil {
			return nil, err
		}
		buf.Write(ts)
	} else {
		fmt.Fprintf(&buf, `{"%s":%d}`, TagMillis, key)
	}
	buf.WriteString(`,"f":{`)
	fields := t.fieldsAtKey(key)
	columns := make([]int, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Ints(columns)
	for i, column := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `"%d":`, column)
		dto, err := c.encodeField(fields[column], format, loc)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", column, err)
		}
		out, err := json.Marshal(dto)
		if err != nil {
			return nil, err
		}
		buf.Write(out)
	}
	buf.WriteString("}}")
	return json.RawMessage(buf.Bytes()), nil
}

func (c Codec[K]) encodeField(f Field, format DocumentFormat, loc *time.Location) (fieldDTO, error) {
	var dto fieldDTO
	switch {
	case f.vp == set:
		raw, err := encodeValue(f.value, format, loc)
		if err != nil {
			return dto, err
		}
		dto.V = raw
	case f.vp == null && c.NullAttributes:
		dto.V = nullRaw
	}
	switch {
	case f.qp == set:
		dto.Q = json.RawMessage(strconv.FormatInt(int64(f.quality), 10))
	case f.qp == null && c.NullAttributes:
		dto.Q = nullRaw
	}
	switch {
	case f.ap == set:
		out, err := json.Marshal(f.annotation)
		if err != nil {
			return dto, err
		}
		dto.A = out
	case f.ap == null && c.NullAttributes:
		dto.A = nullRaw
	}
	return dto, nil
}

func encodeValue(v Value, format DocumentFormat, loc *time.Location) (json.RawMessage, error) {
	switch val := v.(type) {
	case Time:
		if format.Pretty() {
			return json.Marshal(map[string]string{TagTime: formatISO(val.Value().In(loc))})
		}
		return json.Marshal(map[string]int64{TagMillis: val.Millis()})
	case Coordinates:
		return json.Marshal(map[string][2]float64{TagCoords: {val.Latitude(), val.Longitude()}})
	case Metrics:
		return json.Marshal(map[string][]float64{TagMetric: val})
	case Number:
		return json.Marshal(float64(val))
	case Text:
		return json.Marshal(string(val))
	default:
		return nil, fmt.Errorf("%w: cannot encode %T", ErrUnsupportedValue, v)
	}
}

func encodeHeader(h *DocumentHeader) *headerDTO {
	dto := &headerDTO{
		ID:          h.ID,
		Name:        h.Name,
		RecordCount: h.RecordCount,
	}
	if !h.StartTime.IsZero() {
		dto.StartTime = formatISO(h.StartTime)
	}
	if !h.EndTime.IsZero() {
		dto.EndTime = formatISO(h.EndTime)
	}
	if len(h.Columns) > 0 {
		dto.Columns = make(map[string]columnDTO, len(h.Columns))
		for index, col := range h.Columns {
			var dataType string
			if col.DataType != TypeUnknown {
				dataType = col.DataType.String()
			}
			dto.Columns[strconv.Itoa(index)] = columnDTO{
				ID:         col.ID,
				Name:       col.Name,
				DataType:   dataType,
				Aggregate:  col.Aggregate,
				Interval:   col.Interval,
				BaseTime:   col.BaseTime,
				Format:     col.Format,
				RenderType: col.RenderType,
				Units:      col.Units,
			}
		}
	}
	return dto
}

// writePretty lays the envelope out by hand: indented header, then each
// record compact on its own line.
func writePretty[K comparable](w io.Writer, d *Document[K], hdr *headerDTO, rows []json.RawMessage) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	fmt.Fprintf(&buf, "  %q: %q,\n", "docType", d.DocType)
	fmt.Fprintf(&buf, "  %q: %q,\n", "subType", d.SubType)
	fmt.Fprintf(&buf, "  %q: %q,\n", "version", d.Version)
	if hdr != nil {
		out, err := json.MarshalIndent(hdr, "  ", "  ")
		if err != nil {
			return err
		}
		buf.WriteString(`  "header": `)
		buf.Write(out)
		buf.WriteString(",\n")
	}
	buf.WriteString(`  "data": [`)
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		buf.Write(row)
	}
	if len(rows) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("]\n}\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// Decode parses a JSON document. Records arrive through the usual insert
// path, so duplicate timestamps replace and column types bind as data is
// read.
func (c Codec[K]) Decode(data []byte) (*Document[K], error) {
	var dto documentDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return c.decodeDocument(&dto)
}

// DecodeFrom parses a JSON document from r.
func (c Codec[K]) DecodeFrom(r io.Reader) (*Document[K], error) {
	var dto documentDTO
	if err := json.NewDecoder(r).Decode(&dto); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return c.decodeDocument(&dto)
}

func (c Codec[K]) decodeDocument(dto *documentDTO) (*Document[K], error) {
	if dto.DocType != "" && dto.DocType != DocType {
		return nil, fmt.Errorf("unsupported document type %q", dto.DocType)
	}
	t := NewTable[K]()
	for i, row := range dto.Data {
		ts, err := decodeTimestamp(row.TS)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		columns := make([]int, 0, len(row.F))
		byColumn := make(map[int]fieldDTO, len(row.F))
		for key, field := range row.F {
			column, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("record %d: column key %q: %w", i, key, err)
			}
			columns = append(columns, column)
			byColumn[column] = field
		}
		sort.Ints(columns)
		for _, column := range columns {
			field, err := decodeField(byColumn[column])
			if err != nil {
				return nil, fmt.Errorf("record %d column %d: %w", i, column, err)
			}
			if err := t.Put(ts, column, field); err != nil {
				return nil, fmt.Errorf("record %d column %d: %w", i, column, err)
			}
		}
	}
	header := decodeHeader(dto.Header)
	c.bindIndex(t, header)
	d := NewDocumentWithHeader(t, header)
	if dto.DocType != "" {
		d.DocType = dto.DocType
	}
	if dto.SubType != "" {
		d.SubType = dto.SubType
	}
	if dto.Version != "" {
		d.Version = dto.Version
	}
	return d, nil
}

// bindIndex assigns column identities on the decoded table, either from
// the configured index or, for string keyed tables, from header ids.
func (c Codec[K]) bindIndex(t *Table[K], header *DocumentHeader) {
	if c.Index != nil {
		for index, id := range c.Index {
			t.AssignID(index, id)
		}
		return
	}
	if header == nil {
		return
	}
	for index, col := range header.Columns {
		if col.ID == "" {
			continue
		}
		if id, ok := any(col.ID).(K); ok {
			t.AssignID(index, id)
		}
	}
}

func decodeTimestamp(raw json.RawMessage) (time.Time, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return time.Time{}, fmt.Errorf("missing ts")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return time.Time{}, err
		}
		return parseTimestamp(s)
	case '{':
		var obj struct {
			Millis *int64  `json:"$millis"`
			Time   *string `json:"$time"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return time.Time{}, err
		}
		switch {
		case obj.Millis != nil:
			return time.UnixMilli(*obj.Millis).UTC(), nil
		case obj.Time != nil:
			return parseTimestamp(*obj.Time)
		default:
			return time.Time{}, fmt.Errorf("unrecognized ts object %s", trimmed)
		}
	default:
		return time.Time{}, fmt.Errorf("unrecognized ts %s", trimmed)
	}
}

func decodeField(dto fieldDTO) (Field, error) {
	var field Field
	if dto.V != nil {
		var raw any
		if err := json.Unmarshal(dto.V, &raw); err != nil {
			return Field{}, fmt.Errorf("parse v: %w", err)
		}
		f, err := NewField(raw)
		if err != nil {
			return Field{}, err
		}
		field = f
	}
	if dto.Q != nil {
		if isJSONNull(dto.Q) {
			field = field.WithNullQuality()
		} else {
			var q int32
			if err := json.Unmarshal(dto.Q, &q); err != nil {
				return Field{}, fmt.Errorf("parse q: %w", err)
			}
			field = field.WithCombinedQuality(q)
		}
	}
	if dto.A != nil {
		if isJSONNull(dto.A) {
			field = field.WithNullAnnotation()
		} else {
			var a string
			if err := json.Unmarshal(dto.A, &a); err != nil {
				return Field{}, fmt.Errorf("parse a: %w", err)
			}
			field = field.WithAnnotation(a)
		}
	}
	return field, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func decodeHeader(dto *headerDTO) *DocumentHeader {
	if dto == nil {
		return nil
	}
	h := &DocumentHeader{
		ID:          dto.ID,
		Name:        dto.Name,
		RecordCount: dto.RecordCount,
		Columns:     make(map[int]ColumnHeader, len(dto.Columns)),
	}
	if ts, err := parseTimestamp(dto.StartTime); err == nil {
		h.StartTime = ts
	}
	if ts, err := parseTimestamp(dto.EndTime); err == nil {
		h.EndTime = ts
	}
	for key, col := range dto.Columns {
		index, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		h.Columns[index] = ColumnHeader{
			ID:         col.ID,
			Name:       col.Name,
			DataType:   ParseDataType(col.DataType),
			Aggregate:  col.Aggregate,
			Interval:   col.Interval,
			BaseTime:   col.BaseTime,
			Format:     col.Format,
			RenderType: col.RenderType,
			Units:      col.Units,
		}
	}
	return h
}
