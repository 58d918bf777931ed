package gaps

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/louisbranch/nums/internal/solver"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/louisbranch/nums/internal/gaps"

// Config controls one gap analysis run.
type Config struct {
	// Dice is the pool size, 3 or 4.
	Dice int
	// Min and Max bound the scan range [Min, Max).
	Min solver.Value
	Max solver.Value
	// Workers is the number of concurrent probes. Zero uses runtime.NumCPU.
	Workers int
	// Expressions enumerates one expression for each record's closest value.
	Expressions bool
	// Progress, when set, is called once per finished multiset. Calls are
	// serialized.
	Progress func(Record)
}

// Record is the result of analysing one multiset.
type Record struct {
	Faces []solver.Face
	Margin
	Reachable []solver.Value
	// Expression is the simplest expression reaching Closest, or empty when
	// expressions were not requested or Closest is an unreachable boundary.
	Expression string
}

// DefaultRange returns the scan range used when none is configured: [0,100)
// for three dice and [0,1000) for four.
func DefaultRange(dice int) (min, max solver.Value) {
	if dice == solver.MaxDice {
		return 0, 1000
	}
	return 0, 100
}

// Analyze probes every multiset for cfg.Dice dice and returns one record per
// multiset, widest margin first. Each worker owns a single engine that it
// reuses for all of its multisets.
func Analyze(ctx context.Context, cfg Config) ([]Record, error) {
	if cfg.Dice < solver.MinDice || cfg.Dice > solver.MaxDice {
		return nil, solver.ErrInvalidDiceCount
	}
	if cfg.Min >= cfg.Max || cfg.Max-cfg.Min > solver.MaxScanWidth {
		return nil, fmt.Errorf("%w: [%d,%d)", solver.ErrInvalidRange, cfg.Min, cfg.Max)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	sets := Multisets(cfg.Dice)
	jobs := make(chan []solver.Face)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for _, faces := range sets {
			select {
			case jobs <- faces:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	records := make([]Record, 0, len(sets))
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			engine, err := solver.NewEngine(cfg.Dice)
			if err != nil {
				return err
			}
			for faces := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec, err := analyzeOne(gctx, engine, faces, cfg)
				if err != nil {
					return err
				}
				mu.Lock()
				records = append(records, rec)
				if cfg.Progress != nil {
					cfg.Progress(rec)
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	SortRecords(records)
	return records, nil
}

func analyzeOne(ctx context.Context, engine *solver.Engine, faces []solver.Face, cfg Config) (Record, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "gaps.analyze_multiset",
		trace.WithAttributes(
			attribute.String("gaps.faces", FormatList(faces)),
			attribute.Int64("gaps.min", int64(cfg.Min)),
			attribute.Int64("gaps.max", int64(cfg.Max)),
		),
	)
	defer span.End()

	fail := func(err error) (Record, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Record{}, fmt.Errorf("analyze %s: %w", FormatList(faces), err)
	}

	reachable, err := engine.Probe(cfg.Min, cfg.Max, faces)
	if err != nil {
		return fail(err)
	}
	margin, err := FindMargin(reachable, cfg.Min, cfg.Max)
	if err != nil {
		return fail(err)
	}
	rec := Record{Faces: faces, Margin: margin, Reachable: reachable}

	if cfg.Expressions {
		rec.Expression, err = simplest(engine, faces, margin.Closest)
		if err != nil {
			return fail(err)
		}
	}

	span.SetAttributes(
		attribute.Int("gaps.reachable", len(reachable)),
		attribute.Int64("gaps.margin", int64(margin.Distance)),
		attribute.Int64("gaps.midpoint", int64(margin.Midpoint)),
	)
	return rec, nil
}

func simplest(engine *solver.Engine, faces []solver.Face, target solver.Value) (string, error) {
	exprs, err := engine.Enumerate(target, faces)
	if err != nil {
		return "", err
	}
	if len(exprs) == 0 {
		return "", nil
	}
	solver.SortBySimpleScore(exprs)
	return exprs[0].String(), nil
}

// SortRecords orders records by margin, widest first, then by faces.
func SortRecords(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) int {
		if a.Distance != b.Distance {
			if a.Distance > b.Distance {
				return -1
			}
			return 1
		}
		return slices.Compare(a.Faces, b.Faces)
	})
}

