// Package server parses server command flags and starts the roll API.
package server

import (
	"context"
	"flag"

	entrypoint "github.com/erikjuhani/droll/internal/platform/cmd"
	"github.com/erikjuhani/droll/internal/server"
)

// Config holds server command configuration.
type Config struct {
	Addr     string `env:"DROLL_SERVER_ADDR" envDefault:":8080"`
	DBPath   string `env:"DROLL_DB_PATH" envDefault:"droll.db"`
	HMACKey  string `env:"DROLL_API_HMAC_KEY"`
	Issuer   string `env:"DROLL_API_TOKEN_ISSUER" envDefault:"droll"`
	Audience string `env:"DROLL_API_TOKEN_AUDIENCE" envDefault:"droll-api"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The server listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the roll history database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the roll API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		s, err := server.New(server.Config{
			Addr:     cfg.Addr,
			DBPath:   cfg.DBPath,
			HMACKey:  cfg.HMACKey,
			Issuer:   cfg.Issuer,
			Audience: cfg.Audience,
		})
		if err != nil {
			return err
		}
		return s.Run(ctx)
	})
}
