package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jtsdata/jts/internal/logger"
	"github.com/jtsdata/jts/pkg/jts"
)

func runMerge(args []string) {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	var inputs multiFlag
	fs.Var(&inputs, "in", "Input file (repeatable, merged left to right)")
	mode := fs.String("mode", "merge_overwrite_existing", "Write mode applied where records collide")
	out := fs.String("out", "", "Output file (default: stdout)")
	format := fs.String("format", "", "Output format (default: by output extension, else json)")
	byID := fs.Bool("by-id", false, "Align columns by id instead of index")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to parse flags: %v\n", err)
		os.Exit(1)
	}
	if len(inputs) < 2 {
		fmt.Fprintln(os.Stderr, "error: at least two -in files required")
		os.Exit(1)
	}

	cfg := setup()
	log := logger.Get("merge")

	wm, err := jts.ParseWriteMode(*mode)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid write mode")
	}
	of, err := resolveFormat(*format, cfg.Convert.Format, *out, false)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot resolve output format")
	}

	base, err := readDocument(inputs[0])
	if err != nil {
		log.Fatal().Err(err).Str("file", inputs[0]).Msg("Failed to read document")
	}

	var total jts.Change
	for _, in := range inputs[1:] {
		doc, err := readDocument(in)
		if err != nil {
			log.Fatal().Err(err).Str("file", in).Msg("Failed to read document")
		}
		var change jts.Change
		if *byID {
			change, err = base.Table.MergeTableByID(doc.Table, wm)
		} else {
			change, err = base.Table.MergeTableByColumn(doc.Table, wm)
		}
		if err != nil {
			log.Fatal().Err(err).Str("file", in).Msg("Merge failed")
		}
		log.Info().Str("file", in).Str("change", change.String()).Msg("Merged")
		total = total.Add(change)
	}

	// The header's range and count describe the pre-merge table.
	if base.Header != nil {
		h := base.Header.Clone()
		if start, end, ok := base.Table.Range(); ok {
			h.StartTime, h.EndTime = start, end
		}
		h.RecordCount = base.Table.RecordCount()
		base = base.WithHeader(h)
	}

	if err := writeDocument(base, *out, of, &cfg.Convert); err != nil {
		log.Fatal().Err(err).Str("file", *out).Msg("Failed to write document")
	}
	log.Info().
		Int("inputs", len(inputs)).
		Str("mode", wm.String()).
		Str("change", total.String()).
		Int("records", base.Count()).
		Msg("Merge complete")
}
