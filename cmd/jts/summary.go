package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jtsdata/jts/internal/logger"
	"github.com/jtsdata/jts/pkg/jts"
)

func runSummary(args []string) {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	in := fs.String("in", "", "Input file: .json, .csv, or .msgpack, optionally .gz/.zst")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to parse flags: %v\n", err)
		os.Exit(1)
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, "error: -in file required")
		os.Exit(1)
	}

	setup()
	log := logger.Get("summary")

	doc, err := readDocument(*in)
	if err != nil {
		log.Fatal().Err(err).Str("file", *in).Msg("Failed to read document")
	}

	printSummary(os.Stdout, *in, doc)
}

func printSummary(w io.Writer, path string, doc *jts.Document[string]) {
	fmt.Fprintf(w, "file:     %s\n", path)
	fmt.Fprintf(w, "document: %s %s %s\n", doc.DocType, doc.SubType, doc.Version)
	if h := doc.Header; h != nil {
		if h.Name != "" {
			fmt.Fprintf(w, "name:     %s\n", h.Name)
		}
		if h.ID != "" {
			fmt.Fprintf(w, "id:       %s\n", h.ID)
		}
	}
	fmt.Fprintf(w, "table:    %s\n", doc.Table.Summary())

	if h := doc.Header; h != nil && len(h.Columns) > 0 {
		fmt.Fprintln(w, "columns:")
		for _, i := range h.ColumnIndexes() {
			col, _ := h.Column(i)
			parts := []string{fmt.Sprintf("[%d]", i)}
			if col.Name != "" {
				parts = append(parts, col.Name)
			}
			if col.DataType != jts.TypeUnknown {
				parts = append(parts, col.DataType.String())
			}
			if col.Units != "" {
				parts = append(parts, col.Units)
			}
			fmt.Fprintln(w, "  "+strings.Join(parts, " "))
		}
		return
	}

	// No header: report what the table itself recorded.
	indexes := doc.Table.ColumnIndexes()
	if len(indexes) == 0 {
		return
	}
	fmt.Fprintln(w, "columns:")
	for _, i := range indexes {
		parts := []string{fmt.Sprintf("[%d]", i)}
		if id, ok := doc.Table.ColumnID(i); ok && id != "" {
			parts = append(parts, id)
		}
		if dt := doc.Table.ColumnType(i); dt != jts.TypeUnknown {
			parts = append(parts, dt.String())
		}
		fmt.Fprintln(w, "  "+strings.Join(parts, " "))
	}
}
