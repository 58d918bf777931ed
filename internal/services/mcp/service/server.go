package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/nums/internal/gaps/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "nums"
	serverVersion = "0.1.0"
)

// TransportKind selects how the MCP server talks to clients.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves MCP over streamable HTTP.
	TransportHTTP TransportKind = "http"
)

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for TransportHTTP.
	HTTPAddr string
	// Store receives every gap run when set.
	Store storage.RunStore
}

// Server hosts the solver tools.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer creates an MCP server with every solver tool registered.
func NewServer(store storage.RunStore) (*Server, error) {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	if err := registerTools(mcpServerRegistrationAdapter{server: mcpServer}, store); err != nil {
		return nil, err
	}
	return &Server{mcpServer: mcpServer}, nil
}

// Run serves MCP on the configured transport and blocks until ctx is
// cancelled or the client disconnects.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	server, err := NewServer(cfg.Store)
	if err != nil {
		return err
	}

	switch cfg.Transport {
	case TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
