package service

import (
	"context"
	"encoding/json"
	"net"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/nums/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func connectInMemory(t *testing.T) (*mcp.ClientSession, <-chan error, context.CancelFunc) {
	t.Helper()

	server, err := NewServer(nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		cancel()
		t.Fatalf("connect client: %v", err)
	}
	return session, serveErr, cancel
}

func decodeStructured[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()

	var out T
	data, err := json.Marshal(result.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode structured content: %v", err)
	}
	return out
}

func TestServerListsTools(t *testing.T) {
	session, _, cancel := connectInMemory(t)
	defer cancel()
	defer session.Close()

	tools, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	slices.Sort(names)
	want := []string{"dice_gaps", "dice_reachable", "dice_solve"}
	if !slices.Equal(names, want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
}

func TestServerCallsSolveTool(t *testing.T) {
	session, _, cancel := connectInMemory(t)
	defer cancel()
	defer session.Close()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "dice_solve",
		Arguments: map[string]any{"faces": []int{1, 2, 3}, "target": 6},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error: %+v", result.Content)
	}
	solved := decodeStructured[domain.SolveResult](t, result)
	if solved.Count == 0 || !slices.Contains(solved.Expressions, "((3 * 2) * 1)") {
		t.Fatalf("unexpected result %+v", solved)
	}
}

func TestServerReportsToolErrors(t *testing.T) {
	session, _, cancel := connectInMemory(t)
	defer cancel()
	defer session.Close()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "dice_reachable",
		Arguments: map[string]any{"faces": []int{1, 2}},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for two dice")
	}
}

func TestServeWithTransportStopsOnCancel(t *testing.T) {
	session, serveErr, cancel := connectInMemory(t)
	defer session.Close()

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServeHTTP(t *testing.T) {
	server, err := NewServer(nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveHTTPListener(ctx, listener)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, &mcp.StreamableClientTransport{
		Endpoint: "http://" + listener.Addr().String() + "/mcp",
	}, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	result, err := session.CallTool(clientCtx, &mcp.CallToolParams{
		Name:      "dice_reachable",
		Arguments: map[string]any{"faces": []int{6, 6, 6}, "max": 50},
	})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	reachable := decodeStructured[domain.ReachableResult](t, result)
	if reachable.Max != 50 || !slices.Contains(reachable.Values, 18) {
		t.Fatalf("unexpected result %+v", reachable)
	}
	_ = session.Close()

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestRunUnsupportedTransport(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected 'not supported' in error, got: %v", err)
	}
}

func TestAddMCPToolRejectsUnknownHandler(t *testing.T) {
	t.Parallel()

	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "v0"}, nil)
	err := addMCPTool(server, &mcp.Tool{Name: "bad"}, func() {})
	if err == nil || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("expected unsupported handler error, got %v", err)
	}
}
