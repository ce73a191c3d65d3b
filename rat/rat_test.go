package rat_test

import (
	"errors"
	"math/big"
	"testing"

	"exprsolve/rat"
)

func mustRatio(t *testing.T, n, d int64) rat.Rat {
	t.Helper()
	r, err := rat.FromRatio(n, d)
	if err != nil {
		t.Fatalf("FromRatio(%d, %d): %v", n, d, err)
	}
	return r
}

func TestFromRatioNormalForm(t *testing.T) {
	for n := int64(-12); n <= 12; n++ {
		for d := int64(-12); d <= 12; d++ {
			if d == 0 {
				continue
			}
			r := mustRatio(t, n, d)
			den := r.Den()
			if den.Sign() <= 0 {
				t.Errorf("%d/%d: denominator %s not positive", n, d, den)
			}
			g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(r.Num()), den)
			if g.Cmp(big.NewInt(1)) != 0 {
				t.Errorf("%d/%d: %s not in lowest terms", n, d, r)
			}
			if n == 0 && den.Cmp(big.NewInt(1)) != 0 {
				t.Errorf("0/%d: want denominator 1, got %s", d, den)
			}
		}
	}
}

func TestFromRatioZeroDenominator(t *testing.T) {
	_, err := rat.FromRatio(3, 0)
	if !errors.Is(err, rat.ErrDivisionByZero) {
		t.Errorf("want ErrDivisionByZero, got %v", err)
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	for _, c := range [][2]int64{{6, 4}, {-6, 4}, {6, -4}, {0, -9}, {7, 1}, {-10, -25}} {
		r := mustRatio(t, c[0], c[1])
		s := r.Simplify()
		if !s.Equal(r) {
			t.Errorf("%s.Simplify() = %s", r, s)
		}
		if !s.Simplify().Equal(s) {
			t.Errorf("simplify of %s not idempotent", s)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		n, d int64
		want string
	}{
		{4, 2, "2"},
		{1, 3, "1/3"},
		{2, -6, "-1/3"},
		{-2, -6, "1/3"},
		{0, 5, "0"},
	}
	for _, tt := range tests {
		if got := mustRatio(t, tt.n, tt.d).String(); got != tt.want {
			t.Errorf("%d/%d: want %s, got %s", tt.n, tt.d, tt.want, got)
		}
	}
	if got := (rat.Rat{}).String(); got != "0" {
		t.Errorf("zero value: want 0, got %s", got)
	}
}

func TestArithmetic(t *testing.T) {
	half := mustRatio(t, 1, 2)
	third := mustRatio(t, 1, 3)

	tests := []struct {
		name string
		got  rat.Rat
		want string
	}{
		{"add", half.Add(third), "5/6"},
		{"sub", third.Sub(half), "-1/6"},
		{"mul", half.Mul(third), "1/6"},
		{"add to int", half.Add(half), "1"},
		{"mul by zero", half.Mul(rat.FromInt(0)), "0"},
		{"zero value", rat.Rat{}.Add(rat.FromInt(3)), "3"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("%s: want %s, got %s", tt.name, tt.want, tt.got)
		}
	}

	q, err := half.Quo(third)
	if err != nil {
		t.Fatal(err)
	}
	if q.String() != "3/2" {
		t.Errorf("quo: want 3/2, got %s", q)
	}
	q, err = rat.FromInt(-4).Quo(rat.FromInt(6))
	if err != nil {
		t.Fatal(err)
	}
	if q.String() != "-2/3" {
		t.Errorf("quo: want -2/3, got %s", q)
	}
}

func TestQuoByZero(t *testing.T) {
	_, err := rat.FromInt(7).Quo(rat.FromInt(0))
	if !errors.Is(err, rat.ErrDivisionByZero) {
		t.Errorf("want ErrDivisionByZero, got %v", err)
	}
	_, err = rat.FromInt(7).Quo(rat.Rat{})
	if !errors.Is(err, rat.ErrDivisionByZero) {
		t.Errorf("zero value divisor: want ErrDivisionByZero, got %v", err)
	}
}

func TestOperandsNotMutated(t *testing.T) {
	a := mustRatio(t, 2, 3)
	b := mustRatio(t, 5, 7)
	_ = a.Add(b)
	_ = a.Mul(b)
	_, _ = a.Quo(b)
	if a.String() != "2/3" || b.String() != "5/7" {
		t.Errorf("operands changed: %s %s", a, b)
	}
	n := a.Num()
	n.SetInt64(100)
	if a.String() != "2/3" {
		t.Errorf("Num() aliases internal state: %s", a)
	}
}

func TestEqualAndCmp(t *testing.T) {
	if !mustRatio(t, 2, 4).Equal(mustRatio(t, -1, -2)) {
		t.Error("2/4 != -1/-2")
	}
	if rat.FromInt(0).Equal(rat.FromInt(1)) {
		t.Error("0 == 1")
	}
	if !(rat.Rat{}).Equal(rat.FromInt(0)) {
		t.Error("zero value != 0")
	}
	if c := mustRatio(t, 1, 3).Cmp(mustRatio(t, 1, 2)); c != -1 {
		t.Errorf("1/3 cmp 1/2: want -1, got %d", c)
	}
	if c := mustRatio(t, -1, 3).Cmp(mustRatio(t, -1, 2)); c != 1 {
		t.Errorf("-1/3 cmp -1/2: want 1, got %d", c)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{"-3", "-3"},
		{"+4", "4"},
		{" 1/3 ", "1/3"},
		{"2/-4", "-1/2"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
	}
	for _, tt := range tests {
		r, err := rat.Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if r.String() != tt.want {
			t.Errorf("Parse(%q): want %s, got %s", tt.in, tt.want, r)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "1.5", "1/", "/2", "1/0", "3x"} {
		if _, err := rat.Parse(in); !errors.Is(err, rat.ErrSyntax) {
			t.Errorf("Parse(%q): want ErrSyntax, got %v", in, err)
		}
	}
	if _, err := rat.ParseInt("1/3"); !errors.Is(err, rat.ErrSyntax) {
		t.Errorf("ParseInt(1/3): want ErrSyntax, got %v", err)
	}
}
