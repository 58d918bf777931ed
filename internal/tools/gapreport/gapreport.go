// Package gapreport runs the gap analysis for one dice count and writes the
// resulting report.
package gapreport

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/louisbranch/nums/internal/gaps"
	"github.com/louisbranch/nums/internal/gaps/storage"
	"github.com/louisbranch/nums/internal/gaps/storage/sqlite"
	"github.com/louisbranch/nums/internal/platform/config"
	"github.com/louisbranch/nums/internal/solver"
)

// ErrUsage indicates the positional arguments were missing or invalid.
var ErrUsage = errors.New("invalid arguments")

// Usage describes the command line.
const Usage = `Usage: gaps [flags] <dice>
  <dice>  3 or 4`

// Config holds gap report configuration.
type Config struct {
	Dice        int
	Min         uint
	Max         uint
	Workers     int
	OutDir      string
	DBPath      string
	Expressions bool
}

type envConfig struct {
	Min     uint   `env:"GAPS_MIN"`
	Max     uint   `env:"GAPS_MAX"`
	Workers int    `env:"GAPS_WORKERS"`
	OutDir  string `env:"GAPS_OUT_DIR" envDefault:"."`
	DBPath  string `env:"GAPS_DB_PATH"`
}

// ParseConfig parses environment and flags into a Config. A missing or
// unsupported dice count is reported as ErrUsage; a dice argument that is not
// a number is a plain error.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := config.ParseEnv(&envCfg); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Min:     envCfg.Min,
		Max:     envCfg.Max,
		Workers: envCfg.Workers,
		OutDir:  envCfg.OutDir,
		DBPath:  envCfg.DBPath,
	}
	fs.UintVar(&cfg.Min, "min", cfg.Min, "first value of the scan range (default: NUMS_GAPS_MIN or 0)")
	fs.UintVar(&cfg.Max, "max", cfg.Max, "end of the scan range, exclusive (default: NUMS_GAPS_MAX, or 100 for 3 dice and 1000 for 4)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent probes (default: NUMS_GAPS_WORKERS or number of CPUs)")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "directory the report is written to (default: NUMS_GAPS_OUT_DIR or .)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "optional sqlite database to store the run in (default: NUMS_GAPS_DB_PATH)")
	fs.BoolVar(&cfg.Expressions, "expressions", false, "append the simplest expression for each closest value")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() != 1 {
		return Config{}, ErrUsage
	}
	dice, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return Config{}, fmt.Errorf("dice must be a number: %q", fs.Arg(0))
	}
	if dice < solver.MinDice || dice > solver.MaxDice {
		return Config{}, fmt.Errorf("%w: %w", ErrUsage, solver.ErrInvalidDiceCount)
	}
	cfg.Dice = dice
	if cfg.Max == 0 {
		_, max := gaps.DefaultRange(dice)
		cfg.Max = uint(max)
	}
	return cfg, nil
}

// Run analyses every multiset, prints progress to out and writes the report
// file, plus the sqlite run when DBPath is set.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.Max > math.MaxUint32 {
		return fmt.Errorf("max %d does not fit in 32 bits", cfg.Max)
	}
	if cfg.Min >= cfg.Max {
		return fmt.Errorf("%w: [%d,%d)", solver.ErrInvalidRange, cfg.Min, cfg.Max)
	}

	total := len(gaps.Multisets(cfg.Dice))
	done := 0
	fmt.Fprintf(out, "Finding distances for %d dice...\n", cfg.Dice)
	start := time.Now()
	records, err := gaps.Analyze(ctx, gaps.Config{
		Dice:        cfg.Dice,
		Min:         solver.Value(cfg.Min),
		Max:         solver.Value(cfg.Max),
		Workers:     cfg.Workers,
		Expressions: cfg.Expressions,
		Progress: func(rec gaps.Record) {
			done++
			fmt.Fprintf(out, "[%d/%d] %s margin %d\n", done, total, gaps.FormatList(rec.Faces), rec.Distance)
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Elapsed time: %s\n", time.Since(start).Round(time.Millisecond))

	path := filepath.Join(cfg.OutDir, gaps.ReportFileName(cfg.Dice))
	if err := writeReportFile(path, records, cfg.Expressions); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)

	if cfg.DBPath == "" {
		return nil
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open gap store: %w", err)
	}
	defer store.Close()
	id, err := store.SaveRun(ctx, storage.Run{
		Dice:    cfg.Dice,
		Min:     solver.Value(cfg.Min),
		Max:     solver.Value(cfg.Max),
		Records: records,
	})
	if err != nil {
		return fmt.Errorf("save gap run: %w", err)
	}
	fmt.Fprintf(out, "Saved run %d to %s\n", id, cfg.DBPath)
	return nil
}

func writeReportFile(path string, records []gaps.Record, expressions bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := gaps.WriteReport(f, records, expressions); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}
