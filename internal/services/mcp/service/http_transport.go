package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/louisbranch/nums/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultHTTPAddr binds to localhost only.
const defaultHTTPAddr = "localhost:8081"

var listenTCP = net.Listen

// httpHandler returns the streamable HTTP handler serving s to every session.
func (s *Server) httpHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)
}

// serveHTTP listens on addr and serves MCP until ctx is cancelled.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = defaultHTTPAddr
	}
	listener, err := listenTCP("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.serveHTTPListener(ctx, listener)
}

func (s *Server) serveHTTPListener(ctx context.Context, listener net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", s.httpHandler())
	httpServer := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("mcp listening on http://%s/mcp", listener.Addr())
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP over HTTP: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown MCP HTTP server: %w", err)
	}
	return nil
}
