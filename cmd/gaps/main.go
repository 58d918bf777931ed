// Package main runs the gap analysis for three or four dice.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/louisbranch/nums/internal/platform/cmd"
	"github.com/louisbranch/nums/internal/platform/config"
	"github.com/louisbranch/nums/internal/solver"
	"github.com/louisbranch/nums/internal/tools/gapreport"
)

func main() {
	cfg, err := gapreport.ParseConfig(flag.CommandLine, os.Args[1:])
	if errors.Is(err, gapreport.ErrUsage) {
		if errors.Is(err, solver.ErrInvalidDiceCount) {
			fmt.Fprintln(os.Stderr, solver.ErrInvalidDiceCount)
		}
		config.ExitUsage(gapreport.Usage)
	}
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := cmd.SignalContext()
	defer stop()

	if err := cmd.RunWithTelemetry(ctx, cmd.ServiceGaps, func(ctx context.Context) error {
		return gapreport.Run(ctx, cfg, os.Stdout)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}
