package gaps

import (
	"errors"
	"testing"

	"github.com/louisbranch/nums/internal/solver"
)

func TestFindMargin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		set      []solver.Value
		min, max solver.Value
		want     Margin
	}{
		{
			name: "interior gap beats boundaries",
			set:  []solver.Value{30, 70},
			min:  0, max: 100,
			want: Margin{Distance: 20, Midpoint: 50, Closest: 70},
		},
		{
			name: "trailing boundary",
			set:  []solver.Value{5},
			min:  0, max: 100,
			want: Margin{Distance: 47, Midpoint: 52, Closest: 5},
		},
		{
			name: "leading boundary",
			set:  []solver.Value{90, 95},
			min:  0, max: 100,
			want: Margin{Distance: 45, Midpoint: 45, Closest: 90},
		},
		{
			name: "first of equal gaps wins",
			set:  []solver.Value{10, 30, 50},
			min:  0, max: 60,
			want: Margin{Distance: 10, Midpoint: 20, Closest: 30},
		},
		{
			name: "odd gap rounds down",
			set:  []solver.Value{0, 7},
			min:  0, max: 8,
			want: Margin{Distance: 3, Midpoint: 3, Closest: 0},
		},
		{
			name: "offset range",
			set:  []solver.Value{104, 110},
			min:  100, max: 112,
			want: Margin{Distance: 3, Midpoint: 107, Closest: 110},
		},
		{
			name: "odd leading boundary keeps min",
			set:  []solver.Value{95},
			min:  0, max: 100,
			want: Margin{Distance: 47, Midpoint: 47, Closest: 0},
		},
	}
	for _, tc := range tests {
		got, err := FindMargin(tc.set, tc.min, tc.max)
		if err != nil {
			t.Fatalf("%s: FindMargin: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: FindMargin = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestFindMarginEmptySet(t *testing.T) {
	t.Parallel()

	if _, err := FindMargin(nil, 0, 100); !errors.Is(err, ErrNoReachableValues) {
		t.Fatalf("error = %v, want %v", err, ErrNoReachableValues)
	}
}
