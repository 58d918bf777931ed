// Package luaeval evaluates rendered solver expressions with an embedded Lua
// interpreter. It gives an evaluation path that shares no code with the
// solver, which makes it useful for checking printed solutions.
package luaeval

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Shopify/go-lua"
)

// ErrNotInteger indicates the expression evaluated to a non-integral number.
var ErrNotInteger = errors.New("expression did not evaluate to an integer")

// allowed lists the characters a rendered expression may contain.
const allowed = "0123456789+-*/() "

// Evaluator runs expressions in one Lua state. It is not safe for concurrent
// use.
type Evaluator struct {
	state *lua.State
}

// New returns an evaluator with a fresh Lua state. No standard libraries are
// opened; expressions only need arithmetic.
func New() *Evaluator {
	return &Evaluator{state: lua.NewState()}
}

// Eval evaluates expr, as produced by solver.Expr.String, and returns the
// integral result.
func (e *Evaluator) Eval(expr string) (int64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, errors.New("expression is required")
	}
	if i := strings.IndexFunc(expr, func(r rune) bool { return !strings.ContainsRune(allowed, r) }); i >= 0 {
		return 0, fmt.Errorf("unexpected character %q at %d", expr[i], i)
	}

	l := e.state
	top := l.Top()
	defer l.SetTop(top)

	if err := lua.LoadString(l, "return "+expr); err != nil {
		return 0, fmt.Errorf("load lua: %w", err)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return 0, fmt.Errorf("run lua: %w", err)
	}
	n, ok := l.ToNumber(-1)
	if !ok {
		return 0, fmt.Errorf("expression returned %s", lua.TypeNameOf(l, -1))
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, n)
	}
	return int64(n), nil
}

// Check reports an error unless expr evaluates to want.
func (e *Evaluator) Check(expr string, want int64) error {
	got, err := e.Eval(expr)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("%s = %d, want %d", expr, got, want)
	}
	return nil
}
