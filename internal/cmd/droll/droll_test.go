package droll

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("droll", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"3d6+10"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Notation != "3d6+10" {
		t.Fatalf("expected notation 3d6+10, got %q", cfg.Notation)
	}
	if cfg.SeedSet {
		t.Fatal("expected seed unset by default")
	}
	if cfg.Verbose {
		t.Fatal("expected verbose off by default")
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("droll", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-seed", "42", "-verbose", "1d20"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.SeedSet || cfg.Seed != 42 {
		t.Fatalf("expected seed 42, got set=%v seed=%d", cfg.SeedSet, cfg.Seed)
	}
	if !cfg.Verbose {
		t.Fatal("expected verbose on")
	}
	if cfg.Notation != "1d20" {
		t.Fatalf("expected notation 1d20, got %q", cfg.Notation)
	}
}

func TestRunRequiresNotation(t *testing.T) {
	err := Run(context.Background(), Config{}, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected usage error for missing notation")
	}
	if !strings.Contains(err.Error(), "usage:") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRunSeededIsReproducible(t *testing.T) {
	cfg := Config{Notation: "10d20", Seed: 42, SeedSet: true}

	var first, second bytes.Buffer
	if err := Run(context.Background(), cfg, &first, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := Run(context.Background(), cfg, &second, &bytes.Buffer{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if first.String() != second.String() {
		t.Fatalf("seeded runs differ: %q vs %q", first.String(), second.String())
	}
}

func TestRunVerbosePrintsExpression(t *testing.T) {
	cfg := Config{Notation: "3d6+10", Verbose: true}

	var out, errOut bytes.Buffer
	if err := Run(context.Background(), cfg, &out, &errOut); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := strings.TrimSpace(errOut.String()); got != "(+ (d 3 6) 10)" {
		t.Fatalf("expected rendered expression, got %q", got)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatal("expected a roll total on stdout")
	}
}

func TestRunReportsParseError(t *testing.T) {
	cfg := Config{Notation: "1d20*2"}

	err := Run(context.Background(), cfg, &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "unexpected character '*'") {
		t.Fatalf("expected unexpected character error, got %v", err)
	}
}
