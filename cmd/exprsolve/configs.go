package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"exprsolve/report"
	"exprsolve/search"
)

type MainConfig struct {
	Limit   int  `cli:"name=limit desc='list up to this many distinct solutions, 0 for all'"`
	Workers int  `cli:"name=workers desc='number of goroutines searching top level branches'"`
	NoPrune bool `cli:"name=noprune desc='also try b+a and b*a after a+b and a*b'"`
	Timeout int  `cli:"name=timeout desc='give up after this many seconds, 0 for never'"`
	Verify  bool `cli:"name=verify desc='re-evaluate answers with expr-lang and check operands'"`

	Color   bool `cli:"name=color desc='color output even when not on a terminal'"`
	NoColor bool `cli:"name=nocolor desc='never color output'"`
	Verbose bool `cli:"name=v desc='debug logging on stderr'"`
	Gops    bool `cli:"name=gops desc='run a gops agent while searching'"`

	Format report.Format

	Main *cli.Command
}

func defaultConfig() *MainConfig {
	return &MainConfig{
		Limit:   1,
		Workers: 1,
		Format:  report.Classic,
	}
}

func (cfg *MainConfig) formatOpt(_ *cli.Context, v string) (any, error) {
	f, err := report.ParseFormat(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Format = f
	return f, nil
}

func (cfg *MainConfig) searchOpts() []search.Option {
	opts := []search.Option{
		search.WithLogger(theLog),
		search.WithWorkers(cfg.Workers),
	}
	if cfg.NoPrune {
		opts = append(opts, search.WithoutCommutativePruning())
	}
	return opts
}

func (cfg *MainConfig) timeout() time.Duration {
	return time.Duration(cfg.Timeout) * time.Second
}

// colors returns nil unless w is a terminal or -color was given.
func (cfg *MainConfig) colors(w io.Writer) *report.Colors {
	switch {
	case cfg.NoColor:
		return nil
	case cfg.Color:
		return report.NewColors()
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return report.NewColors()
	}
	return nil
}
