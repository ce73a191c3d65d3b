// Package rat implements exact rational numbers kept in lowest terms.
package rat

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrSyntax         = errors.New("invalid number")
)

// Rat is an immutable fraction num/den with den > 0 and gcd(|num|, den) = 1.
// The zero value is 0.
type Rat struct {
	num, den *big.Int
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

func FromInt(n int64) Rat {
	return Rat{num: big.NewInt(n), den: big.NewInt(1)}
}

func FromBigInt(n *big.Int) Rat {
	return Rat{num: new(big.Int).Set(n), den: big.NewInt(1)}
}

// FromRatio returns n/d in lowest terms.
func FromRatio(n, d int64) (Rat, error) {
	return FromBigRatio(big.NewInt(n), big.NewInt(d))
}

// FromBigRatio returns n/d in lowest terms. n and d are not retained.
func FromBigRatio(n, d *big.Int) (Rat, error) {
	if d.Sign() == 0 {
		return Rat{}, fmt.Errorf("%w: %s/0", ErrDivisionByZero, n)
	}
	return simplify(new(big.Int).Set(n), new(big.Int).Set(d)), nil
}

// simplify takes ownership of n and d.
func simplify(n, d *big.Int) Rat {
	if n.Sign() == 0 {
		return Rat{num: n, den: d.SetInt64(1)}
	}
	g := new(big.Int).GCD(nil, nil, n, d)
	if g.Cmp(bigOne) != 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return Rat{num: n, den: d}
}

func (r Rat) n() *big.Int {
	if r.num == nil {
		return bigZero
	}
	return r.num
}

func (r Rat) d() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// Num returns a copy of the numerator.
func (r Rat) Num() *big.Int { return new(big.Int).Set(r.n()) }

// Den returns a copy of the denominator, always positive.
func (r Rat) Den() *big.Int { return new(big.Int).Set(r.d()) }

func (r Rat) Sign() int    { return r.n().Sign() }
func (r Rat) IsZero() bool { return r.Sign() == 0 }
func (r Rat) IsInt() bool  { return r.d().Cmp(bigOne) == 0 }

// Simplify reduces r again. Values built by this package are already
// reduced, so this returns an equal value.
func (r Rat) Simplify() Rat {
	return simplify(r.Num(), r.Den())
}

func (r Rat) Add(o Rat) Rat {
	// a/b + c/d = (ad + cb) / bd
	n := new(big.Int).Mul(r.n(), o.d())
	n.Add(n, new(big.Int).Mul(o.n(), r.d()))
	return simplify(n, new(big.Int).Mul(r.d(), o.d()))
}

func (r Rat) Sub(o Rat) Rat {
	n := new(big.Int).Mul(r.n(), o.d())
	n.Sub(n, new(big.Int).Mul(o.n(), r.d()))
	return simplify(n, new(big.Int).Mul(r.d(), o.d()))
}

func (r Rat) Mul(o Rat) Rat {
	return simplify(
		new(big.Int).Mul(r.n(), o.n()),
		new(big.Int).Mul(r.d(), o.d()))
}

// Quo returns r / o, or ErrDivisionByZero when o is zero.
func (r Rat) Quo(o Rat) (Rat, error) {
	if o.IsZero() {
		return Rat{}, fmt.Errorf("%w: %s / 0", ErrDivisionByZero, r)
	}
	return simplify(
		new(big.Int).Mul(r.n(), o.d()),
		new(big.Int).Mul(r.d(), o.n())), nil
}

// Equal reports whether r and o have the same numerator and denominator.
func (r Rat) Equal(o Rat) bool {
	return r.n().Cmp(o.n()) == 0 && r.d().Cmp(o.d()) == 0
}

// Cmp compares r and o and returns -1, 0 or +1.
func (r Rat) Cmp(o Rat) int {
	a := new(big.Int).Mul(r.n(), o.d())
	b := new(big.Int).Mul(o.n(), r.d())
	return a.Cmp(b)
}

// Float64 returns the nearest float64 value.
func (r Rat) Float64() float64 {
	f, _ := new(big.Rat).SetFrac(r.n(), r.d()).Float64()
	return f
}

func (r Rat) String() string {
	if r.IsInt() {
		return r.n().String()
	}
	return r.n().String() + "/" + r.d().String()
}

// Parse reads "n" or "n/d" in base 10.
func Parse(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	ns, ds, ok := strings.Cut(s, "/")
	if !ok {
		return ParseInt(s)
	}
	n, err := parseBig(strings.TrimSpace(ns), s)
	if err != nil {
		return Rat{}, err
	}
	d, err := parseBig(strings.TrimSpace(ds), s)
	if err != nil {
		return Rat{}, err
	}
	if d.Sign() == 0 {
		return Rat{}, fmt.Errorf("%w %q: %w", ErrSyntax, s, ErrDivisionByZero)
	}
	return simplify(n, d), nil
}

// ParseInt reads a whole number in base 10.
func ParseInt(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	n, err := parseBig(s, s)
	if err != nil {
		return Rat{}, err
	}
	return Rat{num: n, den: big.NewInt(1)}, nil
}

func parseBig(s, whole string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, whole)
	}
	return n, nil
}
