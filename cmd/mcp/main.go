// Package main serves the dice solver tools over MCP.
package main

import (
	"flag"
	"log"
	"os"

	mcpcmd "github.com/louisbranch/nums/internal/cmd/mcp"
	"github.com/louisbranch/nums/internal/platform/cmd"
)

// main starts the MCP server on stdio or HTTP.
func main() {
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[MCP] ")

	ctx, stop := cmd.SignalContext()
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve MCP: %v", err)
	}
}
