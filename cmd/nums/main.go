// Package main runs the interactive dice game.
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
	"github.com/louisbranch/nums/internal/tools/nums"
)

func main() {
	cfg, err := nums.ParseConfig(flag.CommandLine, os.Args[1:])
	if errors.Is(err, nums.ErrUsage) {
		if errors.Is(err, solver.ErrInvalidDiceCount) {
			fmt.Fprintln(os.Stderr, solver.ErrInvalidDiceCount)
		}
		config.ExitUsage(nums.Usage(cfg.Lang))
	}
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := cmd.SignalContext()
	defer stop()

	if err := cmd.RunWithTelemetry(ctx, cmd.ServiceNums, func(ctx context.Context) error {
		return nums.Run(ctx, cfg, os.Stdin, os.Stdout)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}
