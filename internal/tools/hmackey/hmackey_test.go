package hmackey

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("hmackey", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Bytes != 32 {
		t.Fatalf("expected default bytes 32, got %d", cfg.Bytes)
	}
	if cfg.Token {
		t.Fatal("expected token mode off by default")
	}
	if cfg.TTL != time.Hour {
		t.Fatalf("expected default ttl 1h, got %s", cfg.TTL)
	}
}

func TestParseConfigOverride(t *testing.T) {
	fs := flag.NewFlagSet("hmackey", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-bytes", "16", "-token", "-key", "abcd", "-ttl", "30m"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Bytes != 16 {
		t.Fatalf("expected bytes 16, got %d", cfg.Bytes)
	}
	if !cfg.Token {
		t.Fatal("expected token mode on")
	}
	if cfg.Key != "abcd" {
		t.Fatalf("expected key abcd, got %q", cfg.Key)
	}
	if cfg.TTL != 30*time.Minute {
		t.Fatalf("expected ttl 30m, got %s", cfg.TTL)
	}
}

func TestRunRejectsInvalidBytes(t *testing.T) {
	if err := Run(Config{Bytes: 0}, &bytes.Buffer{}, bytes.NewReader(nil)); err == nil {
		t.Fatal("expected error for non-positive bytes")
	}
}

func TestRunWritesHex(t *testing.T) {
	buf := &bytes.Buffer{}
	reader := bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04})
	if err := Run(Config{Bytes: 4}, buf, reader); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "DROLL_API_HMAC_KEY=01020304" {
		t.Fatalf("expected env output, got %q", got)
	}
}

func TestRunNilOutput(t *testing.T) {
	if err := Run(Config{Bytes: 4}, nil, nil); err == nil {
		t.Fatal("expected error for nil output")
	}
}

func TestRunDefaultReader(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := Run(Config{Bytes: 4}, buf, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	const prefix = "DROLL_API_HMAC_KEY="
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("expected env prefix, got %q", got)
	}
	if len(strings.TrimPrefix(got, prefix)) != 8 {
		t.Fatalf("expected 8 hex chars, got %d: %q", len(strings.TrimPrefix(got, prefix)), got)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, fmt.Errorf("read error") }

func TestRunReaderError(t *testing.T) {
	if err := Run(Config{Bytes: 4}, &bytes.Buffer{}, errReader{}); err == nil {
		t.Fatal("expected error from failing reader")
	}
}

func TestRunMintsToken(t *testing.T) {
	key := bytes.Repeat([]byte{0xAB}, 32)
	cfg := Config{
		Token:    true,
		Key:      hex.EncodeToString(key),
		TTL:      time.Hour,
		Issuer:   "droll",
		Audience: "droll-api",
	}

	buf := &bytes.Buffer{}
	if err := Run(cfg, buf, nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	tokenString := strings.TrimSpace(buf.String())
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer("droll"),
		jwt.WithAudience("droll-api"),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		t.Fatalf("minted token does not verify: %v", err)
	}
	if remaining := time.Until(claims.ExpiresAt.Time); remaining <= 0 || remaining > time.Hour {
		t.Fatalf("unexpected token lifetime: %s", remaining)
	}
}

func TestRunMintTokenErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing key", cfg: Config{Token: true, TTL: time.Hour}},
		{name: "not hex", cfg: Config{Token: true, Key: "zz", TTL: time.Hour}},
		{name: "non-positive ttl", cfg: Config{Token: true, Key: "abcd", TTL: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Run(tt.cfg, &bytes.Buffer{}, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
