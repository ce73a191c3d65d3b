package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"exprsolve/rat"
	"exprsolve/report"
	"exprsolve/search"
	"exprsolve/tree"
	"exprsolve/verify"
)

func solveMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			theLog.Warn("gops agent failed", "error", err)
		} else {
			defer agent.Close()
		}
	}
	ctx := cc.Go
	if ctx == nil {
		ctx = context.Background()
	}
	return run(ctx, cfg, cc.Out, cfg.colors(cc.Out), args)
}

// parseArgs reads the target, which may be a fraction, and the whole
// number operands. The "--" that ends option parsing, so that negative
// numbers can follow, is kept in args by cli and dropped here.
func parseArgs(args []string) (rat.Rat, []rat.Rat, error) {
	if i := slices.Index(args, "--"); i >= 0 {
		args = slices.Delete(slices.Clone(args), i, i+1)
	}
	if len(args) < 2 {
		return rat.Rat{}, nil, fmt.Errorf("%w: need a target and at least one operand", cli.ErrUsage)
	}
	target, err := rat.Parse(args[0])
	if err != nil {
		return rat.Rat{}, nil, fmt.Errorf("%w: target: %w", cli.ErrUsage, err)
	}
	operands := make([]rat.Rat, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := rat.ParseInt(a)
		if err != nil {
			return rat.Rat{}, nil, fmt.Errorf("%w: operand: %w", cli.ErrUsage, err)
		}
		operands = append(operands, v)
	}
	return target, operands, nil
}

func run(ctx context.Context, cfg *MainConfig, w io.Writer, colors *report.Colors, args []string) error {
	target, operands, err := parseArgs(args)
	if err != nil {
		return err
	}
	if d := cfg.timeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	rep := &report.Report{Target: target.String()}
	for _, v := range operands {
		rep.Operands = append(rep.Operands, v.String())
	}

	engine := search.New(cfg.searchOpts()...)
	var exprs []*tree.Expr
	if cfg.Limit == 1 {
		res, err := engine.Solve(ctx, target, tree.FromValues(operands))
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		rep.Visited = res.Visited
		if res.Found() {
			exprs = append(exprs, res.Expr)
		}
	} else {
		exprs, err = engine.SolveAll(ctx, target, tree.FromValues(operands), cfg.Limit)
		if err != nil {
			return fmt.Errorf("searching: %w", err)
		}
		for _, x := range exprs {
			rep.Solutions = append(rep.Solutions, x.String())
		}
	}

	for _, x := range exprs {
		theLog.Debug("solution", "expression", x.String(), "depth", x.Depth())
		if !cfg.Verify {
			continue
		}
		if err := verify.Solution(x, operands, target); err != nil {
			return err
		}
	}
	if len(exprs) > 0 {
		rep.Found = true
		rep.Expression = exprs[0].String()
	}
	return report.Write(w, cfg.Format, rep, colors)
}
