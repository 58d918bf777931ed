package service

import (
	"fmt"

	"github.com/louisbranch/nums/internal/gaps/storage"
	"github.com/louisbranch/nums/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mcpRegistrationTarget interface {
	AddTool(*mcp.Tool, any) error
}

type mcpServerRegistrationAdapter struct {
	server *mcp.Server
}

func (r mcpServerRegistrationAdapter) AddTool(tool *mcp.Tool, handler any) error {
	return addMCPTool(r.server, tool, handler)
}

type mcpToolRegistrar struct {
	matches func(any) bool
	add     func(*mcp.Server, *mcp.Tool, any)
}

func newMCPToolRegistrar[I any, O any]() mcpToolRegistrar {
	return mcpToolRegistrar{
		matches: func(handler any) bool {
			_, ok := handler.(mcp.ToolHandlerFor[I, O])
			return ok
		},
		add: func(server *mcp.Server, tool *mcp.Tool, handler any) {
			mcp.AddTool(server, tool, handler.(mcp.ToolHandlerFor[I, O]))
		},
	}
}

var mcpToolRegistrars = []mcpToolRegistrar{
	newMCPToolRegistrar[domain.SolveInput, domain.SolveResult](),
	newMCPToolRegistrar[domain.ReachableInput, domain.ReachableResult](),
	newMCPToolRegistrar[domain.GapsInput, domain.GapsResult](),
}

func addMCPTool(server *mcp.Server, tool *mcp.Tool, handler any) error {
	for _, registrar := range mcpToolRegistrars {
		if registrar.matches(handler) {
			registrar.add(server, tool, handler)
			return nil
		}
	}
	toolName := "<nil>"
	if tool != nil {
		toolName = tool.Name
	}
	return fmt.Errorf("register tool %s: unsupported handler type %T", toolName, handler)
}

func registerTools(registrar mcpRegistrationTarget, store storage.RunStore) error {
	registrations := []struct {
		tool    *mcp.Tool
		handler any
	}{
		{tool: domain.SolveTool(), handler: domain.SolveHandler()},
		{tool: domain.ReachableTool(), handler: domain.ReachableHandler()},
		{tool: domain.GapsTool(), handler: domain.GapsHandler(store)},
	}
	for _, registration := range registrations {
		if err := registrar.AddTool(registration.tool, registration.handler); err != nil {
			return err
		}
	}
	return nil
}
