// Package tree holds arithmetic expression trees over exact rationals.
//
// An Expr is either a leaf carrying an operand value or a binary node
// applying one of the four operators to two sub-expressions. Nodes are
// immutable; a binary node computes its value once, when it is built.
package tree

import (
	"strings"

	"exprsolve/rat"
)

// Op is one of the four binary operators.
type Op uint8

const (
	Plus Op = iota
	Minus
	Divide
	Multiply
)

// Ops lists every operator in search order.
var Ops = [...]Op{Plus, Minus, Divide, Multiply}

func (o Op) Symbol() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Divide:
		return "/"
	default:
		return "*"
	}
}

func (o Op) String() string {
	switch o {
	case Plus:
		return "PLUS"
	case Minus:
		return "MINUS"
	case Divide:
		return "DIVIDE"
	default:
		return "MULTIPLY"
	}
}

// Commutative reports whether swapping operands leaves the value unchanged.
func (o Op) Commutative() bool {
	return o == Plus || o == Multiply
}

func (o Op) additive() bool {
	return o == Plus || o == Minus
}

func (o Op) apply(l, r rat.Rat) (rat.Rat, error) {
	switch o {
	case Plus:
		return l.Add(r), nil
	case Minus:
		return l.Sub(r), nil
	case Divide:
		return l.Quo(r)
	default:
		return l.Mul(r), nil
	}
}

// Expr is a leaf or a binary node. Leaves have nil children.
type Expr struct {
	op          Op
	left, right *Expr

	val rat.Rat
	err error
}

func Leaf(v rat.Rat) *Expr {
	return &Expr{val: v}
}

// Binary combines left and right under op. A division by zero is not
// reported here; it becomes the error returned by Eval.
func Binary(op Op, left, right *Expr) *Expr {
	e := &Expr{op: op, left: left, right: right}
	switch {
	case left.err != nil:
		e.err = left.err
	case right.err != nil:
		e.err = right.err
	default:
		e.val, e.err = op.apply(left.val, right.val)
	}
	return e
}

// FromValues returns one leaf per value, in order.
func FromValues(vals []rat.Rat) []*Expr {
	res := make([]*Expr, len(vals))
	for i, v := range vals {
		res[i] = Leaf(v)
	}
	return res
}

func (e *Expr) IsLeaf() bool { return e.left == nil }

// Op returns the operator of a binary node; ok is false for leaves.
func (e *Expr) Op() (op Op, ok bool) {
	if e.IsLeaf() {
		return 0, false
	}
	return e.op, true
}

func (e *Expr) Left() *Expr  { return e.left }
func (e *Expr) Right() *Expr { return e.right }

// Eval returns the value of e. The error wraps rat.ErrDivisionByZero when
// some node below divides by zero.
func (e *Expr) Eval() (rat.Rat, error) {
	if e.err != nil {
		return rat.Rat{}, e.err
	}
	return e.val, nil
}

// Operands returns the leaf values of e from left to right.
func (e *Expr) Operands() []rat.Rat {
	var res []rat.Rat
	e.walkLeaves(func(v rat.Rat) { res = append(res, v) })
	return res
}

func (e *Expr) walkLeaves(f func(rat.Rat)) {
	if e.IsLeaf() {
		f(e.val)
		return
	}
	e.left.walkLeaves(f)
	e.right.walkLeaves(f)
}

// Depth is 0 for a leaf.
func (e *Expr) Depth() int {
	if e.IsLeaf() {
		return 0
	}
	return 1 + max(e.left.Depth(), e.right.Depth())
}

func (e *Expr) String() string {
	var b strings.Builder
	e.render(&b)
	return b.String()
}

func (e *Expr) render(b *strings.Builder) {
	if e.IsLeaf() {
		b.WriteString(e.val.String())
		return
	}
	writeChild(b, e.left, e.leftParens())
	b.WriteByte(' ')
	b.WriteString(e.op.Symbol())
	b.WriteByte(' ')
	writeChild(b, e.right, e.rightParens())
}

func writeChild(b *strings.Builder, c *Expr, parens bool) {
	if parens {
		b.WriteByte('(')
	}
	c.render(b)
	if parens {
		b.WriteByte(')')
	}
}

// leftParens only looks at the left child's operator: an additive child
// under * or /.
func (e *Expr) leftParens() bool {
	if e.left.IsLeaf() {
		return false
	}
	switch e.op {
	case Multiply, Divide:
		return e.left.op.additive()
	default:
		return false
	}
}

// rightParens: any binary child under /, and an additive child under *
// or -.
func (e *Expr) rightParens() bool {
	if e.right.IsLeaf() {
		return false
	}
	switch e.op {
	case Divide:
		return true
	case Multiply, Minus:
		return e.right.op.additive()
	default:
		return false
	}
}
