// Package mcp parses MCP command flags and starts the MCP server.
package mcp

import (
	"context"
	"flag"
	"fmt"

	"github.com/erikjuhani/droll/internal/mcp"
	entrypoint "github.com/erikjuhani/droll/internal/platform/cmd"
	"github.com/erikjuhani/droll/internal/roller"
)

// Transport kinds supported by the MCP command.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds MCP command configuration.
type Config struct {
	Transport string `env:"DROLL_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr  string `env:"DROLL_MCP_HTTP_ADDR" envDefault:":8081"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "The MCP transport (stdio or http)")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The MCP HTTP listen address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server on the configured transport.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		server := mcp.New(roller.Default())
		switch cfg.Transport {
		case TransportStdio:
			return server.Serve(ctx)
		case TransportHTTP:
			return server.ServeHTTP(ctx, cfg.HTTPAddr)
		default:
			return fmt.Errorf("transport %q is not supported", cfg.Transport)
		}
	})
}
