// Package solver searches for arithmetic expressions that combine every die of a
// small dice pool exactly once to reach a target number.
//
// A die face may be scaled by a power of ten before it is used, which models
// writing faces next to each other as a multi-digit number. Results are built
// bottom-up over subsets of dice: single dice, pairs, triples and finally the
// whole pool.
package solver

import (
	"sort"
	"strconv"
	"strings"
)

// Face is the value shown by one die.
type Face uint8

// DieIndex identifies the position of a die inside the pool.
type DieIndex uint8

// Value is a non-negative intermediate or final result. Arithmetic that would
// leave the 32-bit range is not performed.
type Value uint32

// Op tags the kind of an expression node.
type Op uint8

const (
	OpLeaf Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (o Op) String() string {
	switch o {
	case OpLeaf:
		return "leaf"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// Expr is an immutable expression tree. Leaves carry the die they were built
// from and its scaled face value; other nodes carry both operands and the value
// of the whole subtree. Nodes are shared between parents and must not be
// modified after construction.
type Expr struct {
	Op    Op
	Die   DieIndex
	Value Value
	Left  *Expr
	Right *Expr
}

// Leaf returns a leaf for die with the given (already scaled) value.
func Leaf(die DieIndex, value Value) *Expr {
	return &Expr{Op: OpLeaf, Die: die, Value: value}
}

func node(op Op, value Value, left, right *Expr) *Expr {
	return &Expr{Op: op, Value: value, Left: left, Right: right}
}

// Equal reports whether a and b describe the same computation. Addition and
// multiplication ignore operand order; leaves compare by value only, so two dice
// showing the same face are interchangeable.
func Equal(a, b *Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Op != b.Op {
		return false
	}
	switch a.Op {
	case OpLeaf:
		return a.Value == b.Value
	case OpAdd, OpMul:
		return (Equal(a.Left, b.Left) && Equal(a.Right, b.Right)) ||
			(Equal(a.Left, b.Right) && Equal(a.Right, b.Left))
	default:
		return Equal(a.Left, b.Left) && Equal(a.Right, b.Right)
	}
}

// Key returns a canonical form of e. Two expressions have the same key exactly
// when Equal reports true for them.
func (e *Expr) Key() string {
	var b strings.Builder
	e.writeKey(&b)
	return b.String()
}

func (e *Expr) writeKey(b *strings.Builder) {
	if e.Op == OpLeaf {
		b.WriteString(strconv.FormatUint(uint64(e.Value), 10))
		return
	}
	left, right := e.Left.Key(), e.Right.Key()
	if (e.Op == OpAdd || e.Op == OpMul) && right < left {
		left, right = right, left
	}
	b.WriteByte('(')
	b.WriteString(left)
	b.WriteString(e.Op.String())
	b.WriteString(right)
	b.WriteByte(')')
}

// Score rates how hard e is to find by hand; lower is simpler. Long numbers
// and division cost the most.
func (e *Expr) Score() int {
	switch e.Op {
	case OpAdd:
		return 20 + e.Left.Score() + e.Right.Score()
	case OpSub:
		return 21 + e.Left.Score() + e.Right.Score()
	case OpMul:
		return 30 + e.Left.Score() + e.Right.Score()
	case OpDiv:
		return 34 + e.Left.Score() + e.Right.Score()
	default:
		return 10 + 2*log10(e.Value)
	}
}

// SimpleScore is a coarser variant of Score that only counts operators.
func (e *Expr) SimpleScore() int {
	switch e.Op {
	case OpAdd, OpSub:
		return 2 + e.Left.SimpleScore() + e.Right.SimpleScore()
	case OpMul, OpDiv:
		return 3 + e.Left.SimpleScore() + e.Right.SimpleScore()
	default:
		return 1
	}
}

func log10(v Value) int {
	n := 0
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}

// Eval recomputes e from its leaves. It reports false when a step breaks the
// combination rules: overflow, a negative difference or an inexact division.
func (e *Expr) Eval() (Value, bool) {
	if e.Op == OpLeaf {
		return e.Value, true
	}
	l, ok := e.Left.Eval()
	if !ok {
		return 0, false
	}
	r, ok := e.Right.Eval()
	if !ok {
		return 0, false
	}
	switch e.Op {
	case OpAdd:
		return add(l, r)
	case OpSub:
		if l < r {
			return 0, false
		}
		return l - r, true
	case OpMul:
		return mul(l, r)
	case OpDiv:
		return div(l, r)
	}
	return 0, false
}

// Dice returns the die indices of e's leaves from left to right.
func (e *Expr) Dice() []DieIndex {
	var out []DieIndex
	var walk func(*Expr)
	walk = func(n *Expr) {
		if n.Op == OpLeaf {
			out = append(out, n.Die)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(e)
	return out
}

// String renders e as a fully parenthesised infix expression.
func (e *Expr) String() string {
	if e.Op == OpLeaf {
		return strconv.FormatUint(uint64(e.Value), 10)
	}
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// SortByScore orders exprs from simplest to hardest, breaking ties by their
// rendering so the order is stable across runs.
func SortByScore(exprs []*Expr) {
	sortBy(exprs, (*Expr).Score)
}

// SortBySimpleScore is SortByScore using SimpleScore.
func SortBySimpleScore(exprs []*Expr) {
	sortBy(exprs, (*Expr).SimpleScore)
}

func sortBy(exprs []*Expr, score func(*Expr) int) {
	sort.SliceStable(exprs, func(i, j int) bool {
		si, sj := score(exprs[i]), score(exprs[j])
		if si != sj {
			return si < sj
		}
		return exprs[i].String() < exprs[j].String()
	})
}
