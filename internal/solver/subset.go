package solver

import "fmt"

// SubsetKey names the dice a value map was built from. TwoCubes keeps its
// indices in descending order; ThreeCubes records the single die first and the
// pair it was joined to after it, so the three ways of splitting the same three
// dice are distinct keys.
type SubsetKey struct {
	size uint8
	idx  [3]DieIndex
}

// OneCube is the subset holding only die i.
func OneCube(i DieIndex) SubsetKey {
	return SubsetKey{size: 1, idx: [3]DieIndex{i}}
}

// TwoCubes is the subset {i, j}; i must be greater than j.
func TwoCubes(i, j DieIndex) SubsetKey {
	return SubsetKey{size: 2, idx: [3]DieIndex{i, j}}
}

// ThreeCubes is die c1 joined to the pair {c2, c3}.
func ThreeCubes(c1, c2, c3 DieIndex) SubsetKey {
	return SubsetKey{size: 3, idx: [3]DieIndex{c1, c2, c3}}
}

// Size is the number of dice in the subset.
func (k SubsetKey) Size() int {
	return int(k.size)
}

// Indices returns the dice in the subset in key order.
func (k SubsetKey) Indices() []DieIndex {
	out := make([]DieIndex, k.size)
	copy(out, k.idx[:k.size])
	return out
}

// Mask returns the subset as a bit set over die indices.
func (k SubsetKey) Mask() uint8 {
	var m uint8
	for _, i := range k.idx[:k.size] {
		m |= 1 << i
	}
	return m
}

// Disjoint reports whether k and o share no die.
func (k SubsetKey) Disjoint(o SubsetKey) bool {
	return k.Mask()&o.Mask() == 0
}

func (k SubsetKey) String() string {
	switch k.size {
	case 1:
		return fmt.Sprintf("OneCube(%d)", k.idx[0])
	case 2:
		return fmt.Sprintf("TwoCubes(%d,%d)", k.idx[0], k.idx[1])
	case 3:
		return fmt.Sprintf("ThreeCubes(%d,%d,%d)", k.idx[0], k.idx[1], k.idx[2])
	default:
		return "EmptySubset"
	}
}
