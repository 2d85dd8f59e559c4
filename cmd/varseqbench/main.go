// Command varseqbench compares the push and decode speed of the SimpleUnary and
// GroupBinary encodings on a random posting list.
//
// Usage:
//
//	varseqbench [-size n] [-seed n] [-compression none|zstd|s2|lz4] [-verify] [-log-level level] [-log-json]
//
// The input is size random values in [1, size), sorted and deduplicated
// through a roaring bitmap. The report lists push and decode times per codec,
// a plain slice scan as reference, and the encoded, blob and roaring sizes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/varseq/format"
)

type config struct {
	size        int
	seed        uint64
	compression format.CompressionType
	verify      bool
	logLevel    slog.Level
	logJSON     bool
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	fs := flag.NewFlagSet("varseqbench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfg         config
		compression string
		logLevel    string
	)
	fs.IntVar(&cfg.size, "size", 20_000_000, "number of random values to generate before deduplication")
	fs.Uint64Var(&cfg.seed, "seed", 1, "random seed")
	fs.StringVar(&compression, "compression", "none", "blob payload compression: none, zstd, s2 or lz4")
	fs.BoolVar(&cfg.verify, "verify", true, "check every decoded value against the input")
	fs.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "log in JSON instead of text")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.size < 2 {
		return config{}, fmt.Errorf("-size must be at least 2, got %d", cfg.size)
	}

	ct, ok := format.ParseCompressionType(compression)
	if !ok {
		return config{}, fmt.Errorf("unknown -compression %q", compression)
	}
	cfg.compression = ct

	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return config{}, fmt.Errorf("invalid -log-level: %w", err)
	}

	return cfg, nil
}

func newLogger(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, cfg.logLevel, cfg.logJSON)
	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}
