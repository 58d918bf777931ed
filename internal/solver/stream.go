package solver

import (
	"context"
	"log"
)

// Stream searches for expressions reaching target on a separate goroutine and
// sends each one on the returned channel as soon as it is found. The same
// expression may arrive more than once because a four-dice solution can be
// found from both the pair-pair and the single-triple split; use Collect to
// deduplicate. The channel is closed when the search ends. Cancelling ctx
// stops the search early.
func Stream(ctx context.Context, dice int, target Value, faces []Face) (<-chan *Expr, error) {
	engine, err := NewEngine(dice)
	if err != nil {
		return nil, err
	}
	if err := ValidateFaces(dice, faces); err != nil {
		return nil, err
	}
	faces = append([]Face(nil), faces...)

	out := make(chan *Expr)
	go func() {
		defer close(out)
		err := engine.search(ctx, faces, func(m1, m2 ValueMap) {
			if ctx.Err() != nil {
				return
			}
			matchTarget(m1, m2, target, func(e *Expr) {
				select {
				case out <- e:
				case <-ctx.Done():
				}
			})
		})
		if err != nil {
			log.Printf("solver: stream for target %d stopped: %v", target, err)
		}
	}()
	return out, nil
}

// Collect drains ch until it is closed and returns the distinct expressions,
// simplest first.
func Collect(ch <-chan *Expr) []*Expr {
	set := newSolutionSet()
	for e := range ch {
		set.add(e)
	}
	return set.sorted()
}
