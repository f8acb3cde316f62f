package server

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.DBPath != "droll.db" {
		t.Fatalf("expected default db path droll.db, got %q", cfg.DBPath)
	}
	if cfg.Issuer != "droll" {
		t.Fatalf("expected default issuer droll, got %q", cfg.Issuer)
	}
	if cfg.Audience != "droll-api" {
		t.Fatalf("expected default audience droll-api, got %q", cfg.Audience)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-addr", "127.0.0.1:9999", "-db", "/tmp/rolls.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected addr override, got %q", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/rolls.db" {
		t.Fatalf("expected db path override, got %q", cfg.DBPath)
	}
}

func TestParseConfigEnv(t *testing.T) {
	t.Setenv("DROLL_SERVER_ADDR", "127.0.0.1:7777")
	t.Setenv("DROLL_API_HMAC_KEY", "abcd")

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7777" {
		t.Fatalf("expected env addr, got %q", cfg.Addr)
	}
	if cfg.HMACKey != "abcd" {
		t.Fatalf("expected env hmac key, got %q", cfg.HMACKey)
	}
}
