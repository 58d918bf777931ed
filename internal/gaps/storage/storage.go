// Package storage defines persistence contracts for finished gap reports.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/nums/internal/gaps"
	"github.com/louisbranch/nums/internal/solver"
)

var (
	// ErrNotFound indicates a requested run is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a run with the same id was already saved.
	ErrAlreadyExists = errors.New("record already exists")
)

// Run stores one finished gap analysis.
type Run struct {
	ID        int64
	Dice      int
	Min       solver.Value
	Max       solver.Value
	CreatedAt time.Time
	// Records are kept in report order, widest margin first.
	Records []gaps.Record
}

// RunStore persists gap analysis runs.
type RunStore interface {
	SaveRun(ctx context.Context, run Run) (int64, error)
	GetRun(ctx context.Context, id int64) (Run, error)
	LatestRun(ctx context.Context, dice int) (Run, error)
}
