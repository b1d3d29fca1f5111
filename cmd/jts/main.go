package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jtsdata/jts/internal/config"
	"github.com/jtsdata/jts/internal/logger"
)

// Version is set at build time
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "convert":
		runConvert(os.Args[2:])
	case "summary":
		runSummary(os.Args[2:])
	case "merge":
		runMerge(os.Args[2:])
	case "version":
		fmt.Println(Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `jts %s - JSON time series converter

Usage:
  jts convert -in <file> [-in <file> ...] [-out <path>] [-format <format>]
  jts summary -in <file>
  jts merge -in <file> -in <file> [-mode <mode>] [-out <path>]
  jts version

Formats: json, json-pretty, csv, fixed, msgpack.
Files ending in .gz or .zst are compressed and decompressed transparently.
`, Version)
}

// setup loads configuration and wires the global logger. Called by every
// subcommand after flag parsing.
func setup() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	return cfg
}

// multiFlag collects a repeatable flag value.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(value string) error {
	*m = append(*m, value)
	return nil
}
