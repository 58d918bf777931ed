// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"

	"github.com/louisbranch/nums/internal/gaps/storage/sqlite"
	platformcmd "github.com/louisbranch/nums/internal/platform/cmd"
	"github.com/louisbranch/nums/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr  string `env:"MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"MCP_TRANSPORT" envDefault:"stdio"`
	DBPath    string `env:"MCP_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "optional sqlite database gap runs are saved to")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server with telemetry.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		serviceCfg := service.Config{
			Transport: service.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
		}
		if cfg.DBPath != "" {
			store, err := sqlite.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open gap store: %w", err)
			}
			defer store.Close()
			serviceCfg.Store = store
		}
		return service.Run(ctx, serviceCfg)
	})
}
