package gaps

import "github.com/louisbranch/nums/internal/solver"

// Multisets returns every multiset of dice faces as a non-decreasing slice, in
// lexicographic order. There are 56 for three dice and 126 for four.
func Multisets(dice int) [][]solver.Face {
	if dice <= 0 {
		return nil
	}
	var out [][]solver.Face
	cur := make([]solver.Face, 0, dice)
	var walk func(from solver.Face)
	walk = func(from solver.Face) {
		if len(cur) == dice {
			out = append(out, append([]solver.Face(nil), cur...))
			return
		}
		for f := from; f <= solver.MaxFace; f++ {
			cur = append(cur, f)
			walk(f)
			cur = cur[:len(cur)-1]
		}
	}
	walk(solver.MinFace)
	return out
}
