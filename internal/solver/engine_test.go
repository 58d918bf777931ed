package solver

import (
	"errors"
	"math"
	"math/bits"
	"slices"
	"testing"
)

// reachableByBruteForce computes reachable values over every nonempty subset
// of dice with an independent bitmask recursion.
func reachableByBruteForce(faces []Face, min, max Value) []Value {
	n := len(faces)
	sets := make([]map[uint64]struct{}, 1<<n)
	for i, f := range faces {
		s := make(map[uint64]struct{})
		v := uint64(f)
		for p := 0; p <= maxScale; p++ {
			s[v] = struct{}{}
			v *= 10
		}
		sets[1<<i] = s
	}
	for mask := 1; mask < 1<<n; mask++ {
		if bits.OnesCount(uint(mask)) < 2 {
			continue
		}
		s := make(map[uint64]struct{})
		for sub := (mask - 1) & mask; sub > 0; sub = (sub - 1) & mask {
			other := mask ^ sub
			if sub < other {
				continue
			}
			for a := range sets[sub] {
				for b := range sets[other] {
					for _, v := range bruteForceOps(a, b) {
						s[v] = struct{}{}
					}
				}
			}
		}
		sets[mask] = s
	}

	var out []Value
	for v := range sets[1<<n-1] {
		if v >= uint64(min) && v < uint64(max) {
			out = append(out, Value(v))
		}
	}
	slices.Sort(out)
	return out
}

func bruteForceOps(a, b uint64) []uint64 {
	const limit = math.MaxUint32
	var out []uint64
	if a+b <= limit {
		out = append(out, a+b)
	}
	if a >= b {
		out = append(out, a-b)
	} else {
		out = append(out, b-a)
	}
	if a*b <= limit {
		out = append(out, a*b)
	}
	if a > 0 && b > 0 && a%10 == 0 && b%10 == 0 {
		return out
	}
	if b > 0 && a%b == 0 {
		out = append(out, a/b)
	}
	if a > 0 && b%a == 0 {
		out = append(out, b/a)
	}
	return out
}

func TestNewEngineRejectsDiceCount(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 2, 5} {
		if _, err := NewEngine(n); !errors.Is(err, ErrInvalidDiceCount) {
			t.Fatalf("NewEngine(%d) error = %v, want %v", n, err, ErrInvalidDiceCount)
		}
	}
}

func TestProbeValidatesInput(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(3)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	tests := []struct {
		name     string
		min, max Value
		faces    []Face
		want     error
	}{
		{"too few faces", 0, 10, []Face{1, 2}, ErrFaceCount},
		{"too many faces", 0, 10, []Face{1, 2, 3, 4}, ErrFaceCount},
		{"zero face", 0, 10, []Face{0, 2, 3}, ErrInvalidFace},
		{"seven face", 0, 10, []Face{1, 7, 3}, ErrInvalidFace},
		{"empty range", 10, 10, []Face{1, 2, 3}, ErrInvalidRange},
		{"inverted range", 10, 5, []Face{1, 2, 3}, ErrInvalidRange},
		{"wide range", 0, MaxScanWidth + 1, []Face{1, 2, 3}, ErrInvalidRange},
	}
	for _, tc := range tests {
		if _, err := e.Probe(tc.min, tc.max, tc.faces); !errors.Is(err, tc.want) {
			t.Errorf("%s: error = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestProbeMatchesBruteForce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		faces    []Face
		min, max Value
	}{
		{[]Face{1, 2, 3}, 0, 100},
		{[]Face{6, 6, 6}, 0, 100},
		{[]Face{5, 3, 1}, 0, 1000},
		{[]Face{1, 1, 1, 1}, 0, 1000},
		{[]Face{6, 5, 4, 2}, 0, 1000},
	}
	for _, tc := range tests {
		e, err := NewEngine(len(tc.faces))
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		got, err := e.Probe(tc.min, tc.max, tc.faces)
		if err != nil {
			t.Fatalf("Probe(%v): %v", tc.faces, err)
		}
		want := reachableByBruteForce(tc.faces, tc.min, tc.max)
		if !slices.Equal(got, want) {
			t.Fatalf("Probe(%v) = %v\nwant %v", tc.faces, got, want)
		}
	}
}

func TestProbeIsRepeatable(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(4)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	faces := []Face{2, 3, 5, 6}
	first, err := e.Probe(0, 1000, faces)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if _, err := e.Probe(0, 1000, []Face{1, 1, 1, 1}); err != nil {
		t.Fatalf("Probe: %v", err)
	}
	second, err := e.Probe(0, 1000, faces)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if !slices.Equal(first, second) {
		t.Fatalf("second probe differs:\n%v\n%v", first, second)
	}
}

func TestProbeOffsetRange(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(3)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	faces := []Face{4, 5, 6}
	got, err := e.Probe(100, 200, faces)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if want := reachableByBruteForce(faces, 100, 200); !slices.Equal(got, want) {
		t.Fatalf("Probe = %v, want %v", got, want)
	}
}

func TestEngineReusesHitBitmap(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(3)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	wide := []Face{1, 2, 3}
	narrow := []Face{5, 5, 6}

	if _, err := e.Probe(0, 1000, wide); err != nil {
		t.Fatalf("Probe: %v", err)
	}
	backing := &e.found[0]

	got, err := e.Probe(40, 60, narrow)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if want := reachableByBruteForce(narrow, 40, 60); !slices.Equal(got, want) {
		t.Fatalf("narrow range after wide = %v, want %v", got, want)
	}
	if &e.found[0] != backing {
		t.Fatal("narrow range reallocated the hit bitmap")
	}

	got, err = e.Probe(0, 1000, wide)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if want := reachableByBruteForce(wide, 0, 1000); !slices.Equal(got, want) {
		t.Fatalf("wide range after narrow = %v, want %v", got, want)
	}
}

func TestEnumerateOneTwoThree(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(3)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	got, err := e.Enumerate(6, []Face{1, 2, 3})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected solutions for 6")
	}

	product := node(OpMul, 6, node(OpMul, 6, Leaf(2, 3), Leaf(1, 2)), Leaf(0, 1))
	var sawProduct, sawSum bool
	for _, expr := range got {
		if Equal(expr, product) {
			sawProduct = true
		}
		if onlyOp(expr, OpAdd) {
			sawSum = true
		}
	}
	if !sawProduct {
		t.Errorf("missing %s in %v", product, got)
	}
	if !sawSum {
		t.Errorf("missing an all-addition solution in %v", got)
	}
}

func TestEnumerateSolutionsAreValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		faces  []Face
		target Value
	}{
		{[]Face{1, 2, 3}, 6},
		{[]Face{2, 4, 6}, 17},
		{[]Face{1, 3, 4, 6}, 24},
		{[]Face{2, 2, 5, 5}, 100},
	}
	for _, tc := range tests {
		e, err := NewEngine(len(tc.faces))
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		got, err := e.Enumerate(tc.target, tc.faces)
		if err != nil {
			t.Fatalf("Enumerate(%d, %v): %v", tc.target, tc.faces, err)
		}
		if len(got) == 0 {
			t.Fatalf("Enumerate(%d, %v) found nothing", tc.target, tc.faces)
		}
		seen := make(map[string]bool)
		for _, expr := range got {
			if v, ok := expr.Eval(); !ok || v != tc.target {
				t.Fatalf("%s evaluates to %d, %v, want %d", expr, v, ok, tc.target)
			}
			dice := expr.Dice()
			slices.Sort(dice)
			for i, d := range dice {
				if int(d) != i || len(dice) != len(tc.faces) {
					t.Fatalf("%s uses dice %v", expr, dice)
				}
			}
			if seen[expr.Key()] {
				t.Fatalf("duplicate solution %s", expr)
			}
			seen[expr.Key()] = true
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].Score() > got[i].Score() {
				t.Fatalf("solutions not sorted by score: %s before %s", got[i-1], got[i])
			}
		}
	}
}

func TestEnumerateAgreesWithProbe(t *testing.T) {
	t.Parallel()

	tests := [][]Face{
		{2, 3, 4},
		{1, 5, 6},
		{1, 2, 3, 4},
	}
	for _, faces := range tests {
		e, err := NewEngine(len(faces))
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		reachable, err := e.Probe(0, 60, faces)
		if err != nil {
			t.Fatalf("Probe: %v", err)
		}
		for target := Value(0); target < 60; target++ {
			got, err := e.Enumerate(target, faces)
			if err != nil {
				t.Fatalf("Enumerate: %v", err)
			}
			_, inProbe := slices.BinarySearch(reachable, target)
			if inProbe != (len(got) > 0) {
				t.Fatalf("%v target %d: probe says %v, enumerate found %d", faces, target, inProbe, len(got))
			}
		}
	}
}

func TestEnumerateUnreachable(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(3)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	faces := []Face{1, 1, 1}
	reachable, err := e.Probe(0, 100, faces)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	var missing Value
	for v := Value(0); v < 100; v++ {
		if _, ok := slices.BinarySearch(reachable, v); !ok {
			missing = v
			break
		}
	}
	if missing == 0 {
		t.Fatalf("expected a gap in %v", reachable)
	}
	got, err := e.Enumerate(missing, faces)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Enumerate(%d) = %v, want none", missing, got)
	}
}

func onlyOp(e *Expr, op Op) bool {
	if e.Op == OpLeaf {
		return true
	}
	return e.Op == op && onlyOp(e.Left, op) && onlyOp(e.Right, op)
}
