package jts

import (
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackCodec encodes and decodes documents as MessagePack for compact
// interchange. The logical shape mirrors the JSON wire: the same envelope
// and header, tagged complex values, presence-faithful v/q/a attributes
// and bit exact quality codes. Timestamps ride as native epoch
// millisecond integers.
type MsgpackCodec[K comparable] struct {
	// NullAttributes emits explicitly null attributes as msgpack nil
	// instead of omitting them.
	NullAttributes bool

	// Index is bound to decoded tables, mapping column index to identity.
	// When nil and K is string, column ids from the document header are
	// bound instead.
	Index map[int]K
}

// EncodeMsgpack encodes the document as MessagePack.
func EncodeMsgpack[K comparable](d *Document[K]) ([]byte, error) {
	return MsgpackCodec[K]{}.Encode(d)
}

// DecodeMsgpack decodes a MessagePack document, binding header column ids
// as the table index.
func DecodeMsgpack(data []byte) (*Document[string], error) {
	return MsgpackCodec[string]{}.Decode(data)
}

type msgpackField struct {
	V msgpack.RawMessage `msgpack:"v,omitempty"`
	Q msgpack.RawMessage `msgpack:"q,omitempty"`
	A msgpack.RawMessage `msgpack:"a,omitempty"`
}

type msgpackRecord struct {
	TS int64                `msgpack:"ts"`
	F  map[int]msgpackField `msgpack:"f"`
}

type msgpackDocument struct {
	DocType string          `msgpack:"docType"`
	SubType string          `msgpack:"subType"`
	Version string          `msgpack:"version"`
	Header  *headerDTO      `msgpack:"header,omitempty"`
	Data    []msgpackRecord `msgpack:"data"`
}

// msgpackNil is the wire encoding of an explicit null attribute.
var msgpackNil = msgpack.RawMessage{0xc0}

// Encode returns the document as MessagePack bytes.
func (c MsgpackCodec[K]) Encode(d *Document[K]) ([]byte, error) {
	doc, err := c.encodeDocument(d)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(doc)
}

// EncodeTo writes the document as MessagePack to w.
func (c MsgpackCodec[K]) EncodeTo(w io.Writer, d *Document[K]) error {
	doc, err := c.encodeDocument(d)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(doc)
}

func (c MsgpackCodec[K]) encodeDocument(d *Document[K]) (*msgpackDocument, error) {
	t := d.Table
	if t == nil {
		t = NewTable[K]()
	}
	doc := &msgpackDocument{
		DocType: d.DocType,
		SubType: d.SubType,
		Version: d.Version,
		Data:    make([]msgpackRecord, 0, t.RecordCount()),
	}
	if d.Header != nil {
		doc.Header = encodeHeader(d.Header)
	}
	for _, key := range t.rowKeys() {
		fields := t.fieldsAtKey(key)
		rec := msgpackRecord{TS: key, F: make(map[int]msgpackField, len(fields))}
		for column, field := range fields {
			dto, err := c.encodeField(field)
			if err != nil {
				return nil, fmt.Errorf("encode record at %s column %d: %w", formatISO(keyTime(key, t.Zone())), column, err)
			}
			rec.F[column] = dto
		}
		doc.Data = append(doc.Data, rec)
	}
	return doc, nil
}

func (c MsgpackCodec[K]) encodeField(f Field) (msgpackField, error) {
	var dto msgpackField
	switch {
	case f.vp == set:
		raw, err := encodeMsgpackValue(f.value)
		if err != nil {
			return dto, err
		}
		dto.V = raw
	case f.vp == null && c.NullAttributes:
		dto.V = msgpackNil
	}
	switch {
	case f.qp == set:
		raw, err := msgpack.Marshal(f.quality)
		if err != nil {
			return dto, err
		}
		dto.Q = raw
	case f.qp == null && c.NullAttributes:
		dto.Q = msgpackNil
	}
	switch {
	case f.ap == set:
		raw, err := msgpack.Marshal(f.annotation)
		if err != nil {
			return dto, err
		}
		dto.A = raw
	case f.ap == null && c.NullAttributes:
		dto.A = msgpackNil
	}
	return dto, nil
}

func encodeMsgpackValue(v Value) (msgpack.RawMessage, error) {
	switch val := v.(type) {
	case Time:
		return msgpack.Marshal(map[string]int64{TagMillis: val.Millis()})
	case Coordinates:
		return msgpack.Marshal(map[string][2]float64{TagCoords: {val.Latitude(), val.Longitude()}})
	case Metrics:
		return msgpack.Marshal(map[string][]float64{TagMetric: val})
	case Number:
		return msgpack.Marshal(float64(val))
	case Text:
		return msgpack.Marshal(string(val))
	default:
		return nil, fmt.Errorf("%w: cannot encode %T", ErrUnsupportedValue, v)
	}
}

// Decode parses a MessagePack document.
func (c MsgpackCodec[K]) Decode(data []byte) (*Document[K], error) {
	var doc msgpackDocument
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return c.decodeDocument(&doc)
}

// DecodeFrom parses a MessagePack document from r.
func (c MsgpackCodec[K]) DecodeFrom(r io.Reader) (*Document[K], error) {
	var doc msgpackDocument
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return c.decodeDocument(&doc)
}

func (c MsgpackCodec[K]) decodeDocument(doc *msgpackDocument) (*Document[K], error) {
	if doc.DocType != "" && doc.DocType != DocType {
		return nil, fmt.Errorf("unsupported document type %q", doc.DocType)
	}
	t := NewTable[K]()
	for i, rec := range doc.Data {
		ts := time.UnixMilli(rec.TS).UTC()
		for column, dto := range rec.F {
			field, err := decodeMsgpackField(dto)
			if err != nil {
				return nil, fmt.Errorf("record %d column %d: %w", i, column, err)
			}
			if err := t.Put(ts, column, field); err != nil {
				return nil, fmt.Errorf("record %d column %d: %w", i, column, err)
			}
		}
	}
	header := decodeHeader(doc.Header)
	c.bindIndex(t, header)
	d := NewDocumentWithHeader(t, header)
	if doc.DocType != "" {
		d.DocType = doc.DocType
	}
	if doc.SubType != "" {
		d.SubType = doc.SubType
	}
	if doc.Version != "" {
		d.Version = doc.Version
	}
	return d, nil
}

func (c MsgpackCodec[K]) bindIndex(t *Table[K], header *DocumentHeader) {
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

func decodeMsgpackField(dto msgpackField) (Field, error) {
	var field Field
	if len(dto.V) > 0 {
		var raw any
		if err := msgpack.Unmarshal(dto.V, &raw); err != nil {
			return Field{}, fmt.Errorf("parse v: %w", err)
		}
		f, err := NewField(raw)
		if err != nil {
			return Field{}, err
		}
		field = f
	}
	if len(dto.Q) > 0 {
		if isMsgpackNil(dto.Q) {
			field = field.WithNullQuality()
		} else {
			var q int32
			if err := msgpack.Unmarshal(dto.Q, &q); err != nil {
				return Field{}, fmt.Errorf("parse q: %w", err)
			}
			field = field.WithCombinedQuality(q)
		}
	}
	if len(dto.A) > 0 {
		if isMsgpackNil(dto.A) {
			field = field.WithNullAnnotation()
		} else {
			var a string
			if err := msgpack.Unmarshal(dto.A, &a); err != nil {
				return Field{}, fmt.Errorf("parse a: %w", err)
			}
			field = field.WithAnnotation(a)
		}
	}
	return field, nil
}

func isMsgpackNil(raw msgpack.RawMessage) bool {
	return len(raw) == 1 && raw[0] == 0xc0
}
