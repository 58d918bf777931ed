package solver

import (
	"errors"
	"math/bits"
)

// maxScale is the largest power of ten a face may be multiplied by.
const maxScale = 7

// ErrMapNotEmpty is returned by Combine when the destination map still holds
// entries from an earlier use.
var ErrMapNotEmpty = errors.New("destination value map must be empty")

// ValueMap maps each value reachable from one subset of dice to a single
// expression producing it. When several expressions reach the same value only
// the last one written is kept.
type ValueMap map[Value]*Expr

// LeafMap fills dst with every scaled form of face: face, face*10, ...,
// face*10^7, each as a leaf for die.
func LeafMap(dst ValueMap, die DieIndex, face Face) {
	v := Value(face)
	for p := 0; p <= maxScale; p++ {
		dst[v] = Leaf(die, v)
		v *= 10
	}
}

// Combine stores in dst every value obtainable by applying one operator to a
// value of m1 and a value of m2. The maps must come from disjoint sets of dice.
func Combine(dst, m1, m2 ValueMap) error {
	if len(dst) != 0 {
		return ErrMapNotEmpty
	}
	for r1, e1 := range m1 {
		for r2, e2 := range m2 {
			combinePair(r1, e1, r2, e2, func(v Value, op Op, l, r *Expr) {
				dst[v] = node(op, v, l, r)
			})
		}
	}
	return nil
}

// forEachResult calls emit for every result of combining one value of m1 with
// one value of m2, following the same rules as Combine but without storing.
func forEachResult(m1, m2 ValueMap, emit func(v Value, op Op, l, r *Expr)) {
	for r1, e1 := range m1 {
		for r2, e2 := range m2 {
			combinePair(r1, e1, r2, e2, emit)
		}
	}
}

func combinePair(r1 Value, e1 *Expr, r2 Value, e2 *Expr, emit func(Value, Op, *Expr, *Expr)) {
	big, small := e1, e2
	if r1 < r2 {
		big, small = e2, e1
	}

	if v, ok := add(r1, r2); ok {
		emit(v, OpAdd, big, small)
	}

	if r1 >= r2 {
		emit(r1-r2, OpSub, e1, e2)
	}
	if r2 >= r1 {
		emit(r2-r1, OpSub, e2, e1)
	}

	if v, ok := mul(r1, r2); ok {
		emit(v, OpMul, big, small)
	}

	// Two scaled faces divided by each other only cancel padding zeros.
	if r1 > 0 && r2 > 0 && r1%10 == 0 && r2%10 == 0 {
		return
	}
	if v, ok := div(r1, r2); ok {
		emit(v, OpDiv, e1, e2)
	}
	if v, ok := div(r2, r1); ok {
		emit(v, OpDiv, e2, e1)
	}
}

func add(a, b Value) (Value, bool) {
	sum, carry := bits.Add32(uint32(a), uint32(b), 0)
	return Value(sum), carry == 0
}

func mul(a, b Value) (Value, bool) {
	hi, lo := bits.Mul32(uint32(a), uint32(b))
	return Value(lo), hi == 0
}

func div(a, b Value) (Value, bool) {
	if b == 0 || a%b != 0 {
		return 0, false
	}
	return a / b, true
}
