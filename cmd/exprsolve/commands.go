package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := defaultConfig()
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "f",
		Aliases:     []string{"format"},
		Description: "output format: plain/p, classic/c, yaml/y, json/j (default classic)",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.formatOpt), "(format)"),
	})

	return cli.NewCommandAt(&cfg.Main, "exprsolve").
		WithSynopsis("exprsolve [opts] [--] target operand...").
		WithDescription("exprsolve finds an expression using each operand once with + - * / that equals target. Use -- before negative numbers.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return solveMain(cfg, cc, args)
		})
}
