// Package droll parses CLI flags and rolls dice notation.
package droll

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/erikjuhani/droll/internal/notation"
	entrypoint "github.com/erikjuhani/droll/internal/platform/cmd"
	"github.com/erikjuhani/droll/internal/roller"
)

// Config holds CLI configuration.
type Config struct {
	Verbose  bool `env:"DROLL_VERBOSE"`
	Seed     int64
	SeedSet  bool
	Notation string
}

// ParseConfig parses environment and flags into a Config. The dice
// notation is the first positional argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Print the parsed expression tree")
	fs.Int64Var(&cfg.Seed, "seed", 0, "Seed the random source for reproducible rolls")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.SeedSet = true
		}
	})
	cfg.Notation = strings.TrimSpace(fs.Arg(0))
	return cfg, nil
}

// Run rolls the configured notation, writing the total to out and
// diagnostics to errOut.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if cfg.Notation == "" {
		return errors.New("usage: droll [flags] <notation>")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDroll, func(context.Context) error {
		expr, err := notation.Parse(cfg.Notation)
		if err != nil {
			return err
		}

		if cfg.Verbose {
			fmt.Fprintln(errOut, expr.String())
		}

		source := roller.Default()
		if cfg.SeedSet {
			source = roller.Seeded(cfg.Seed)
		}

		fmt.Fprintln(out, notation.Eval(source)(expr))
		return nil
	})
}
