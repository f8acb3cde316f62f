// Package hmackey generates API HMAC keys and mints bearer tokens for
// the droll server.
package hmackey

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds configuration for key generation and token minting.
type Config struct {
	Bytes    int
	Token    bool
	Key      string
	TTL      time.Duration
	Issuer   string
	Audience string
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		Bytes:    32,
		TTL:      time.Hour,
		Issuer:   "droll",
		Audience: "droll-api",
	}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of random bytes (default: 32)")
	fs.BoolVar(&cfg.Token, "token", cfg.Token, "mint a bearer token instead of generating a key")
	fs.StringVar(&cfg.Key, "key", cfg.Key, "hex-encoded HMAC key used to sign the token")
	fs.DurationVar(&cfg.TTL, "ttl", cfg.TTL, "token lifetime (default: 1h)")
	fs.StringVar(&cfg.Issuer, "issuer", cfg.Issuer, "token issuer claim")
	fs.StringVar(&cfg.Audience, "audience", cfg.Audience, "token audience claim")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates a key or mints a token and writes it to out.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if out == nil {
		return errors.New("output is required")
	}
	if cfg.Token {
		return mintToken(cfg, out)
	}
	return generateKey(cfg, out, reader)
}

func generateKey(cfg Config, out io.Writer, reader io.Reader) error {
	if cfg.Bytes <= 0 {
		return errors.New("bytes must be greater than zero")
	}
	if reader == nil {
		reader = rand.Reader
	}

	buf := make([]byte, cfg.Bytes)
	if _, err := io.ReadFull(reader, buf); err != nil {
		return fmt.Errorf("generate random bytes: %w", err)
	}
	_, err := fmt.Fprintf(out, "DROLL_API_HMAC_KEY=%s\n", hex.EncodeToString(buf))
	return err
}

func mintToken(cfg Config, out io.Writer) error {
	if cfg.Key == "" {
		return errors.New("key is required to mint a token")
	}
	key, err := hex.DecodeString(cfg.Key)
	if err != nil {
		return fmt.Errorf("decode key: %w", err)
	}
	if cfg.TTL <= 0 {
		return errors.New("ttl must be greater than zero")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  jwt.ClaimStrings{cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	_, err = fmt.Fprintln(out, token)
	return err
}
