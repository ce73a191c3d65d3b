// Package verify double checks a solution outside the exact arithmetic
// used by the search: the rendered text is evaluated by expr-lang in
// floating point, and the leaves are compared against the input operands.
package verify

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/expr-lang/expr"

	"exprsolve/rat"
	"exprsolve/tree"
)

var (
	ErrMismatch = errors.New("expression does not evaluate to target")
	ErrOperands = errors.New("expression operands differ from input")
)

// Tolerance is the largest accepted difference between the floating point
// value of a rendered expression and its target, scaled by the target's
// magnitude when that exceeds 1.
const Tolerance = 1e-6

// Eval evaluates rendered with expr-lang in float64 arithmetic. Integer
// literals are read as floats, so operands beyond int64 neither overflow
// nor fail to compile.
func Eval(rendered string) (float64, error) {
	prg, err := expr.Compile(floatLiterals(rendered))
	if err != nil {
		return 0, fmt.Errorf("compiling %q: %w", rendered, err)
	}
	out, err := expr.Run(prg, nil)
	if err != nil {
		return 0, fmt.Errorf("running %q: %w", rendered, err)
	}
	switch v := out.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%q evaluates to %T, not a number", rendered, out)
	}
}

// Check reports whether rendered evaluates to target within Tolerance.
func Check(rendered string, target rat.Rat) error {
	got, err := Eval(rendered)
	if err != nil {
		return err
	}
	want := target.Float64()
	if math.IsNaN(got) || math.Abs(got-want) > Tolerance*max(1, math.Abs(want)) {
		return fmt.Errorf("%w: %s = %g, want %s", ErrMismatch, rendered, got, target)
	}
	return nil
}

// floatLiterals appends ".0" to every bare integer literal in s.
func floatLiterals(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		c := s[i]
		if !isDigit(c) {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		b.WriteString(s[i:j])
		partOfWord := i > 0 && (isWord(s[i-1]) || s[i-1] == '.')
		partOfFloat := j < len(s) && (s[j] == '.' || s[j] == 'e' || s[j] == 'E')
		if !partOfWord && !partOfFloat {
			b.WriteString(".0")
		}
		i = j
	}
	return b.String()
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isWord(c byte) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// floatExact reports whether r's numerator and denominator are integers
// float64 holds exactly.
func floatExact(r rat.Rat) bool {
	return r.Num().BitLen() <= 53 && r.Den().BitLen() <= 53
}

// Solution checks a search answer: its leaves are the operands, its exact
// value is target, and, when every operand and the target fit float64
// exactly, the rendered text agrees under expr-lang. Outside that range
// float rounding can make a correct answer look wrong, so the exact value
// alone decides.
func Solution(e *tree.Expr, operands []rat.Rat, target rat.Rat) error {
	if err := SameOperands(e, operands); err != nil {
		return err
	}
	v, err := e.Eval()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMismatch, e, err)
	}
	if !v.Equal(target) {
		return fmt.Errorf("%w: %s = %s, want %s", ErrMismatch, e, v, target)
	}
	if !floatExact(target) {
		return nil
	}
	for _, o := range operands {
		if !floatExact(o) {
			return nil
		}
	}
	return Check(e.String(), target)
}

// SameOperands reports whether the leaves of e are exactly the operands,
// counted with multiplicity and in any order.
func SameOperands(e *tree.Expr, operands []rat.Rat) error {
	got := keys(e.Operands())
	want := keys(operands)
	if !slices.Equal(got, want) {
		return fmt.Errorf("%w: have %v, want %v", ErrOperands, got, want)
	}
	return nil
}

func keys(vals []rat.Rat) []string {
	res := make([]string, len(vals))
	for i, v := range vals {
		res[i] = v.String()
	}
	slices.Sort(res)
	return res
}
