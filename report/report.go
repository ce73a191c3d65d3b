// Package report writes the outcome of a solve in one of several formats.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
)

type Format int

const (
	// Plain prints the expression, or "none".
	Plain Format = iota
	// Classic prints "<operands> --> <expression> = <target>".
	Classic
	YAML
	JSON
)

var formatNames = map[string]Format{
	"plain": Plain, "p": Plain,
	"classic": Classic, "c": Classic,
	"yaml": YAML, "y": YAML,
	"json": JSON, "j": JSON,
}

func ParseFormat(s string) (Format, error) {
	f, ok := formatNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown format %q (want plain, classic, yaml or json)", s)
	}
	return f, nil
}

func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case Classic:
		return "classic"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// None stands in for the expression when nothing reaches the target.
const None = "none"

type Report struct {
	Target     string   `yaml:"target"`
	Operands   []string `yaml:"operands"`
	Found      bool     `yaml:"found"`
	Expression string   `yaml:"expression,omitempty"`
	// Solutions holds every listed expression when more than one was
	// asked for.
	Solutions []string `yaml:"solutions,omitempty"`
	Visited   int64    `yaml:"visited,omitempty"`
}

// Lines returns the expressions to print, one per line.
func (r *Report) Lines() []string {
	switch {
	case !r.Found:
		return []string{None}
	case len(r.Solutions) > 0:
		return r.Solutions
	default:
		return []string{r.Expression}
	}
}

type Colors struct {
	Expr    func(string, ...any) string
	None    func(string, ...any) string
	Target  func(string, ...any) string
	Operand func(string, ...any) string
}

// NewColors returns colors that are on regardless of color.NoColor.
func NewColors() *Colors {
	sprint := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return &Colors{
		Expr:    sprint(color.FgGreen),
		None:    sprint(color.FgRed, color.Bold),
		Target:  sprint(color.FgCyan),
		Operand: sprint(color.FgHiBlack),
	}
}

func paint(f func(string, ...any) string, s string) string {
	if f == nil {
		return s
	}
	return f("%s", s)
}

// Write writes r to w. Colors only apply to the text formats and may be
// nil.
func Write(w io.Writer, f Format, r *Report, c *Colors) error {
	if c == nil {
		c = &Colors{}
	}
	switch f {
	case YAML, JSON:
		var opts []yaml.EncodeOption
		if f == JSON {
			opts = append(opts, yaml.JSON())
		}
		d, err := yaml.MarshalWithOptions(r, opts...)
		if err != nil {
			return fmt.Errorf("encoding %s report: %w", f, err)
		}
		if len(d) == 0 || d[len(d)-1] != '\n' {
			d = append(d, '\n')
		}
		_, err = w.Write(d)
		return err
	case Classic:
		operands := paint(c.Operand, strings.Join(r.Operands, " "))
		target := paint(c.Target, r.Target)
		for _, line := range r.Lines() {
			if _, err := fmt.Fprintf(w, "%s --> %s = %s\n", operands, exprColor(c, r, line), target); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, line := range r.Lines() {
			if _, err := fmt.Fprintln(w, exprColor(c, r, line)); err != nil {
				return err
			}
		}
		return nil
	}
}

func exprColor(c *Colors, r *Report, s string) string {
	if !r.Found {
		return paint(c.None, s)
	}
	return paint(c.Expr, s)
}
