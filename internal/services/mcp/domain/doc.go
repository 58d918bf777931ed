// Package domain holds the MCP tool schemas and handlers of the dice solver.
//
// Handlers take typed inputs and return typed results; the SDK derives the
// JSON schemas from the struct tags.
package domain
