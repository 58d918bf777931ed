// Package service wires MCP transports to the solver tool handlers.
//
// It knows how to serve MCP over stdio or streamable HTTP and delegates tool
// meaning to the handlers in the domain package.
package service
