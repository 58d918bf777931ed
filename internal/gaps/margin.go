// Package gaps sweeps every dice multiset and finds, for each one, the value
// in the scan range that sits furthest from anything the dice can reach.
package gaps

import (
	"errors"

	"github.com/louisbranch/nums/internal/solver"
)

// ErrNoReachableValues indicates a multiset reached nothing inside the scan
// range, so no margin can be measured.
var ErrNoReachableValues = errors.New("no reachable values in scan range")

// Margin describes the widest gap found in a reachability set.
type Margin struct {
	// Distance is half the width of the gap, rounded down.
	Distance solver.Value
	// Midpoint is the value in the middle of the gap.
	Midpoint solver.Value
	// Closest is the gap end nearest the midpoint. The lower end wins only
	// when strictly nearer, so an even gap resolves to its upper end.
	Closest solver.Value
}

// FindMargin returns the widest gap in set, an ascending reachability set
// over [min, max). Adjacent pairs are considered first, then the gap between
// min and the first value, then the gap between the last value and max. The
// first gap seen wins ties.
func FindMargin(set []solver.Value, min, max solver.Value) (Margin, error) {
	if len(set) == 0 {
		return Margin{}, ErrNoReachableValues
	}

	var (
		best  Margin
		found bool
	)
	consider := func(a, b solver.Value) {
		m := gap(a, b)
		if !found || m.Distance > best.Distance {
			best = m
			found = true
		}
	}

	for i := 1; i < len(set); i++ {
		consider(set[i-1], set[i])
	}
	consider(min, set[0])
	consider(set[len(set)-1], max)
	return best, nil
}

func gap(a, b solver.Value) Margin {
	mid := a + (b-a)/2
	closest := b
	if mid-a < b-mid {
		closest = a
	}
	return Margin{Distance: (b - a) / 2, Midpoint: mid, Closest: closest}
}
