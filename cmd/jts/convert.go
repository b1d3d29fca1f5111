package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jtsdata/jts/internal/logger"
	"golang.org/x/sync/errgroup"
)

func runConvert(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var inputs multiFlag
	fs.Var(&inputs, "in", "Input file: .json, .csv, or .msgpack, optionally .gz/.zst (repeatable)")
	out := fs.String("out", "", "Output file, or directory with multiple inputs (default: stdout)")
	format := fs.String("format", "", "Output format: json, json-pretty, csv, fixed, msgpack (default: by output extension)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to parse flags: %v\n", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "error: at least one -in file required")
		os.Exit(1)
	}

	cfg := setup()
	log := logger.Get("convert")

	multi := len(inputs) > 1
	of, err := resolveFormat(*format, cfg.Convert.Format, *out, multi)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot resolve output format")
	}

	if multi && *out != "" {
		if err := os.MkdirAll(*out, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", *out).Msg("Cannot create output directory")
		}
	}

	workers := cfg.Convert.Workers
	if workers < 1 {
		workers = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			outPath := outputPath(in, *out, multi, of)
			if outPath == in {
				return fmt.Errorf("%s: output would overwrite input", in)
			}
			doc, err := readDocument(in)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			if err := writeDocument(doc, outPath, of, &cfg.Convert); err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			dest := outPath
			if dest == "" {
				dest = "stdout"
			}
			log.Info().
				Str("in", in).
				Str("out", dest).
				Int("records", doc.Count()).
				Msg("Converted")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
	}
}

// outputPath names the destination for one input. Single-input runs use the
// -out value as given (empty means stdout). Multi-input runs derive the name
// from the input, swapping its extension for the format's, in the -out
// directory or beside the input.
func outputPath(in, out string, multi bool, format outputFormat) string {
	if !multi {
		return out
	}
	base := filepath.Base(stripCompressExt(in))
	name := strings.TrimSuffix(base, filepath.Ext(base)) + "." + format.extension()
	if out != "" {
		return filepath.Join(out, name)
	}
	return filepath.Join(filepath.Dir(in), name)
}
