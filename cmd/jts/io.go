package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jtsdata/jts/internal/config"
	"github.com/jtsdata/jts/pkg/jts"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// outputFormat names the encodings the convert and merge subcommands can
// produce.
type outputFormat uint8

const (
	formatJSON outputFormat = iota
	formatJSONPretty
	formatCSV
	formatFixed
	formatMsgpack
)

func parseFormat(name string) (outputFormat, error) {
	switch strings.ToLower(name) {
	case "json", "json-standard":
		return formatJSON, nil
	case "json-pretty", "pretty":
		return formatJSONPretty, nil
	case "csv":
		return formatCSV, nil
	case "fixed", "fixed-width", "dat":
		return formatFixed, nil
	case "msgpack", "mp":
		return formatMsgpack, nil
	default:
		return 0, fmt.Errorf("unknown format %q", name)
	}
}

func (f outputFormat) extension() string {
	switch f {
	case formatCSV:
		return "csv"
	case formatFixed:
		return "dat"
	case formatMsgpack:
		return "msgpack"
	default:
		return "json"
	}
}

// formatForPath infers the output format from a path's extension, with any
// compression suffix stripped first.
func formatForPath(path string) (outputFormat, bool) {
	switch strings.ToLower(filepath.Ext(stripCompressExt(path))) {
	case ".json":
		return formatJSON, true
	case ".csv":
		return formatCSV, true
	case ".dat", ".txt":
		return formatFixed, true
	case ".msgpack", ".mp":
		return formatMsgpack, true
	}
	return 0, false
}

// resolveFormat picks the output format from the -format flag, the
// convert.format config default, or the output path's extension. Standard
// JSON is the fallback when a single document goes to stdout.
func resolveFormat(flagName, cfgName, outPath string, multi bool) (outputFormat, error) {
	name := flagName
	if name == "" {
		name = cfgName
	}
	if name != "" {
		return parseFormat(name)
	}
	if multi {
		return 0, fmt.Errorf("-format required with multiple inputs")
	}
	if outPath != "" {
		of, ok := formatForPath(outPath)
		if !ok {
			return 0, fmt.Errorf("cannot infer output format from %q, use -format", outPath)
		}
		return of, nil
	}
	return formatJSON, nil
}

func stripCompressExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".zst":
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	return path
}

// readDocument loads a document from a JSON, msgpack, or CSV file,
// decompressing by extension. CSV inputs get a generated header named after
// the file.
func readDocument(path string) (*jts.Document[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, closeStream, err := decompressReader(f, path)
	if err != nil {
		return nil, err
	}
	defer closeStream()

	switch strings.ToLower(filepath.Ext(stripCompressExt(path))) {
	case ".csv":
		table, err := jts.TableFromCSV(r)
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		name := strings.TrimSuffix(filepath.Base(stripCompressExt(path)), ".csv")
		return jts.NewDocumentWithHeader(table, jts.NewDocumentHeader(name, table)), nil
	case ".msgpack", ".mp":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		doc, err := jts.DecodeMsgpack(data)
		if err != nil {
			return nil, fmt.Errorf("decode msgpack: %w", err)
		}
		return doc, nil
	default:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		doc, err := jts.DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return doc, nil
	}
}

func decompressReader(f *os.File, path string) (io.Reader, func() error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return zr, zr.Close, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("open zstd stream: %w", err)
		}
		return zr, func() error { zr.Close(); return nil }, nil
	}
	return f, func() error { return nil }, nil
}

// writeDocument encodes the document to path, compressing by extension.
// An empty path writes to stdout.
func writeDocument(doc *jts.Document[string], path string, format outputFormat, cfg *config.ConvertConfig) error {
	var w io.Writer = os.Stdout
	var closers []io.Closer

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		closers = append(closers, f)
		w = f
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zw, err := gzip.NewWriterLevel(w, cfg.GzipLevel)
		if err != nil {
			return fmt.Errorf("open gzip stream: %w", err)
		}
		// Compressor closes before the file so the trailer is flushed.
		closers = append([]io.Closer{zw}, closers...)
		w = zw
	case ".zst":
		zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(cfg.ZstdLevel)))
		if err != nil {
			return fmt.Errorf("open zstd stream: %w", err)
		}
		closers = append([]io.Closer{zw}, closers...)
		w = zw
	}

	if err := encodeDocument(w, doc, format, cfg); err != nil {
		for _, c := range closers {
			c.Close()
		}
		return err
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

func encodeDocument(w io.Writer, doc *jts.Document[string], format outputFormat, cfg *config.ConvertConfig) error {
	switch format {
	case formatJSON:
		return jts.Codec[string]{Format: jts.FormatJSONStandard}.EncodeTo(w, doc)
	case formatJSONPretty:
		return jts.Codec[string]{Format: jts.FormatJSON}.EncodeTo(w, doc)
	case formatCSV:
		f := jts.FormatCSV
		if cfg.TimeFormat != "" {
			f.TimeFormat = cfg.TimeFormat
		}
		return jts.WriteDelimited(w, doc.Table, doc.Header, f)
	case formatFixed:
		return jts.WriteFixedWidth(w, doc.Table, doc.Header, jts.FormatFixedWidth)
	case formatMsgpack:
		return jts.MsgpackCodec[string]{}.EncodeTo(w, doc)
	default:
		return fmt.Errorf("unsupported output format %d", format)
	}
}
