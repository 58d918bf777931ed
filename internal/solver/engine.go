package solver

import (
	"context"
	"errors"
	"fmt"
)

const (
	// MinFace and MaxFace bound the faces of a six-sided die.
	MinFace Face = 1
	MaxFace Face = 6

	// MinDice and MaxDice bound the size of a dice pool.
	MinDice = 3
	MaxDice = 4

	// MaxScanWidth bounds max-min for a single probe.
	MaxScanWidth = 1 << 24
)

var (
	// ErrInvalidDiceCount indicates a pool size other than three or four dice.
	ErrInvalidDiceCount = errors.New("dice count must be 3 or 4")
	// ErrFaceCount indicates the faces do not match the engine's pool size.
	ErrFaceCount = errors.New("one face per die is required")
	// ErrInvalidFace indicates a face outside 1..6.
	ErrInvalidFace = errors.New("faces must be between 1 and 6")
	// ErrInvalidRange indicates an empty or oversized scan range.
	ErrInvalidRange = errors.New("scan range must satisfy min < max and span at most MaxScanWidth values")
)

// Engine runs the subset search for one pool size. It owns the scratch maps of
// the search and a pool to recycle them, so reusing an engine across many
// calls avoids most allocation. An Engine is not safe for concurrent use.
type Engine struct {
	dice int
	pool MapPool
	dp   map[SubsetKey]ValueMap

	// found is Probe's hit bitmap, resliced and cleared per call.
	found []bool
}

// NewEngine returns an engine for pools of dice dice.
func NewEngine(dice int) (*Engine, error) {
	if dice < MinDice || dice > MaxDice {
		return nil, ErrInvalidDiceCount
	}
	return &Engine{dice: dice, dp: make(map[SubsetKey]ValueMap)}, nil
}

// Dice returns the pool size the engine was built for.
func (e *Engine) Dice() int {
	return e.dice
}

// ValidateFaces checks that faces holds exactly dice faces between 1 and 6.
func ValidateFaces(dice int, faces []Face) error {
	if dice < MinDice || dice > MaxDice {
		return ErrInvalidDiceCount
	}
	if len(faces) != dice {
		return fmt.Errorf("%w: got %d faces for %d dice", ErrFaceCount, len(faces), dice)
	}
	for i, f := range faces {
		if f < MinFace || f > MaxFace {
			return fmt.Errorf("%w: die %d shows %d", ErrInvalidFace, i, f)
		}
	}
	return nil
}

// Probe returns, in ascending order, every value in [min, max) that some
// expression over all of faces reaches. No expressions are kept.
func (e *Engine) Probe(min, max Value, faces []Face) ([]Value, error) {
	if err := ValidateFaces(e.dice, faces); err != nil {
		return nil, err
	}
	if min >= max || max-min > MaxScanWidth {
		return nil, fmt.Errorf("%w: [%d,%d)", ErrInvalidRange, min, max)
	}

	n := int(max - min)
	if cap(e.found) < n {
		e.found = make([]bool, n)
	}
	found := e.found[:n]
	clear(found)
	err := e.search(context.Background(), faces, func(m1, m2 ValueMap) {
		forEachResult(m1, m2, func(v Value, _ Op, _, _ *Expr) {
			if v >= min && v < max {
				found[v-min] = true
			}
		})
	})
	if err != nil {
		return nil, err
	}

	var out []Value
	for i, ok := range found {
		if ok {
			out = append(out, min+Value(i))
		}
	}
	return out, nil
}

// Enumerate returns every distinct expression over all of faces that evaluates
// to target, simplest first. Expressions equal under Equal are reported once.
func (e *Engine) Enumerate(target Value, faces []Face) ([]*Expr, error) {
	if err := ValidateFaces(e.dice, faces); err != nil {
		return nil, err
	}
	set := newSolutionSet()
	err := e.search(context.Background(), faces, func(m1, m2 ValueMap) {
		matchTarget(m1, m2, target, set.add)
	})
	if err != nil {
		return nil, err
	}
	return set.sorted(), nil
}

// search builds the subset maps stage by stage and hands every pair of maps
// that together cover all dice to full.
func (e *Engine) search(ctx context.Context, faces []Face, full func(m1, m2 ValueMap)) error {
	e.reset()
	defer e.reset()

	k := DieIndex(e.dice)
	for i := DieIndex(0); i < k; i++ {
		m := e.pool.Get()
		LeafMap(m, i, faces[i])
		e.dp[OneCube(i)] = m
	}

	var twos []SubsetKey
	for i := DieIndex(1); i < k; i++ {
		for j := DieIndex(0); j < i; j++ {
			key := TwoCubes(i, j)
			if err := e.combine(key, OneCube(i), OneCube(j)); err != nil {
				return err
			}
			twos = append(twos, key)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if k == 3 {
		for c1 := DieIndex(0); c1 < k; c1++ {
			one := OneCube(c1)
			for _, two := range twos {
				if one.Disjoint(two) {
					full(e.dp[one], e.dp[two])
				}
			}
		}
		return ctx.Err()
	}

	// 2+2: each way of splitting four dice into two pairs.
	for a := 0; a < len(twos); a++ {
		for b := a + 1; b < len(twos); b++ {
			if twos[a].Disjoint(twos[b]) {
				full(e.dp[twos[a]], e.dp[twos[b]])
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var threes []SubsetKey
	for c1 := DieIndex(0); c1 < k; c1++ {
		one := OneCube(c1)
		for _, two := range twos {
			if !one.Disjoint(two) {
				continue
			}
			idx := two.Indices()
			key := ThreeCubes(c1, idx[0], idx[1])
			if err := e.combine(key, one, two); err != nil {
				return err
			}
			threes = append(threes, key)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// 1+3: a single die against the other three.
	for c1 := DieIndex(0); c1 < k; c1++ {
		one := OneCube(c1)
		for _, three := range threes {
			if one.Disjoint(three) {
				full(e.dp[one], e.dp[three])
			}
		}
	}
	return ctx.Err()
}

func (e *Engine) combine(key, a, b SubsetKey) error {
	m := e.pool.Get()
	if err := Combine(m, e.dp[a], e.dp[b]); err != nil {
		e.pool.Put(m)
		return fmt.Errorf("combine %s: %w", key, err)
	}
	e.dp[key] = m
	return nil
}

// reset hands every scratch map back to the pool.
func (e *Engine) reset() {
	for key, m := range e.dp {
		e.pool.Put(m)
		delete(e.dp, key)
	}
}

// matchTarget calls found for each combination of m1 and m2 equal to target.
func matchTarget(m1, m2 ValueMap, target Value, found func(*Expr)) {
	forEachResult(m1, m2, func(v Value, op Op, l, r *Expr) {
		if v == target {
			found(node(op, v, l, r))
		}
	})
}

// solutionSet keeps expressions unique under Equal.
type solutionSet struct {
	seen  map[string]struct{}
	items []*Expr
}

func newSolutionSet() *solutionSet {
	return &solutionSet{seen: make(map[string]struct{})}
}

func (s *solutionSet) add(e *Expr) {
	key := e.Key()
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, e)
}

func (s *solutionSet) sorted() []*Expr {
	SortByScore(s.items)
	return s.items
}
