// Package search looks for an arithmetic expression over a multiset of
// operands that evaluates exactly to a target.
//
// The search is exhaustive and depth first. At every step two distinct
// elements of the working sequence are combined under one operator into
// a new binary node, which is placed first, followed by the remaining
// elements in their original order. Operators are tried in the order of
// tree.Ops, then pairs (i, j) in row-major order. For commutative
// operators only i < j is explored. The first expression found in this
// order is returned.
package search

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"exprsolve/rat"
	"exprsolve/tree"
)

var ErrNoOperands = errors.New("no operands")

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithWorkers searches top level branches on up to n goroutines. The
// result is the same expression the sequential search returns; if the
// context ends before every earlier branch is exhausted, the context
// error is returned even when a later branch has a match.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = max(n, 1) }
}

// WithoutCommutativePruning explores both operand orders for + and *.
func WithoutCommutativePruning() Option {
	return func(e *Engine) { e.prune = false }
}

type Engine struct {
	log     *slog.Logger
	workers int
	prune   bool
}

func New(opts ...Option) *Engine {
	e := &Engine{
		log:     slog.Default(),
		workers: 1,
		prune:   true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Result struct {
	// Expr is nil when no expression reaches the target.
	Expr *tree.Expr
	// Visited counts the search steps taken.
	Visited int64
}

func (r *Result) Found() bool { return r.Expr != nil }

// Solve returns the first expression over items equal to target. Items
// are not modified. The context is checked at every step; on
// cancellation its error is returned.
func (e *Engine) Solve(ctx context.Context, target rat.Rat, items []*tree.Expr) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrNoOperands
	}
	start := time.Now()
	e.log.Debug("search start", "target", target, "operands", len(items), "workers", e.workers)

	var (
		res *Result
		err error
	)
	if e.workers > 1 && len(items) > 2 {
		res, err = e.solveParallel(ctx, target, items)
	} else {
		s := e.newState(ctx, target)
		res = &Result{Expr: s.find(items)}
		res.Visited = s.visited
		if !res.Found() {
			err = ctx.Err()
		}
	}
	if err != nil {
		e.log.Debug("search aborted", "error", err, "elapsed", time.Since(start))
		return nil, err
	}
	e.log.Debug("search done", "found", res.Found(), "visited", res.Visited, "elapsed", time.Since(start))
	return res, nil
}

// SolveAll continues past each success and returns distinct expressions
// (by rendered form) in discovery order, at most limit of them when limit
// is positive. It always runs sequentially.
func (e *Engine) SolveAll(ctx context.Context, target rat.Rat, items []*tree.Expr, limit int) ([]*tree.Expr, error) {
	if len(items) == 0 {
		return nil, ErrNoOperands
	}
	start := time.Now()
	var (
		res  []*tree.Expr
		seen = map[string]struct{}{}
	)
	s := e.newState(ctx, target)
	s.onMatch = func(x *tree.Expr) bool {
		key := x.String()
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			res = append(res, x)
		}
		return limit > 0 && len(res) >= limit
	}
	s.find(items)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.log.Debug("enumeration done", "solutions", len(res), "visited", s.visited, "elapsed", time.Since(start))
	return res, nil
}

type state struct {
	target rat.Rat
	prune  bool

	// stop reports whether this search should give up.
	stop func() bool
	// onMatch, when set, is told about every match and returns whether
	// the search is over; without it the first match ends the search.
	onMatch func(*tree.Expr) bool

	visited int64
}

func (e *Engine) newState(ctx context.Context, target rat.Rat) *state {
	s := &state{target: target, prune: e.prune}
	s.stop = func() bool { return ctx.Err() != nil }
	return s
}

func (s *state) skip(op tree.Op, i, j int) bool {
	return i == j || (s.prune && op.Commutative() && i > j)
}

// find returns the expression that ended the search, or nil.
func (s *state) find(items []*tree.Expr) *tree.Expr {
	if s.stop() {
		return nil
	}
	s.visited++
	if len(items) == 1 {
		v, err := items[0].Eval()
		if err != nil || !v.Equal(s.target) {
			return nil
		}
		if s.onMatch == nil || s.onMatch(items[0]) {
			return items[0]
		}
		return nil
	}
	for _, op := range tree.Ops {
		for i := range items {
			for j := range items {
				if s.skip(op, i, j) {
					continue
				}
				if r := s.find(combine(items, op, i, j)); r != nil {
					return r
				}
			}
		}
	}
	return nil
}

// combine returns a new sequence: items[i] op items[j] first, then the
// rest of items in order.
func combine(items []*tree.Expr, op tree.Op, i, j int) []*tree.Expr {
	res := make([]*tree.Expr, 0, len(items)-1)
	res = append(res, tree.Binary(op, items[i], items[j]))
	for k, x := range items {
		if k == i || k == j {
			continue
		}
		res = append(res, x)
	}
	return res
}

type branch struct {
	op   tree.Op
	i, j int
}

// branches lists the top level choices in sequential search order.
func (s *state) branches(n int) []branch {
	var res []branch
	for _, op := range tree.Ops {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if s.skip(op, i, j) {
					continue
				}
				res = append(res, branch{op: op, i: i, j: j})
			}
		}
	}
	return res
}

// solveParallel runs each top level branch as its own sequential search.
// A branch stops once an earlier branch has succeeded, and the earliest
// success wins, so the answer matches the sequential one.
func (e *Engine) solveParallel(ctx context.Context, target rat.Rat, items []*tree.Expr) (*Result, error) {
	root := e.newState(ctx, target)
	root.visited = 1
	brs := root.branches(len(items))
	found := make([]*tree.Expr, len(brs))
	// exhausted[k] is set when branch k ran to the end without a match.
	exhausted := make([]bool, len(brs))

	var (
		best    atomic.Int64
		visited atomic.Int64
	)
	best.Store(math.MaxInt64)
	visited.Store(root.visited)

	g := new(errgroup.Group)
	g.SetLimit(e.workers)
	for k, br := range brs {
		g.Go(func() error {
			idx := int64(k)
			if best.Load() < idx || ctx.Err() != nil {
				return nil
			}
			s := e.newState(ctx, target)
			s.stop = func() bool {
				return best.Load() < idx || ctx.Err() != nil
			}
			r := s.find(combine(items, br.op, br.i, br.j))
			visited.Add(s.visited)
			if r == nil {
				exhausted[k] = best.Load() >= idx && ctx.Err() == nil
				return nil
			}
			found[k] = r
			for {
				cur := best.Load()
				if cur <= idx || best.CompareAndSwap(cur, idx) {
					return nil
				}
			}
		})
	}
	_ = g.Wait()
	res := &Result{Visited: visited.Load()}
	b := best.Load()
	if b == math.MaxInt64 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	} else {
		// a branch before b that the context cut short could hold the
		// sequential answer
		for k := range b {
			if !exhausted[k] {
				return nil, ctx.Err()
			}
		}
		res.Expr = found[b]
	}
	e.log.Debug("parallel branches", "count", len(brs))
	return res, nil
}
