// Command unitcalc evaluates unit-aware expressions given as arguments, or
// reads them interactively when started without any.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"unitcalc/app/config"
	"unitcalc/app/lang"
	"unitcalc/app/rates"
)

var cli struct {
	Expr    []string `arg:"" optional:"" help:"Expression to evaluate. Starts an interactive session when omitted."`
	Config  string   `help:"Config file." type:"path"`
	Offline bool     `help:"Use cached exchange rates only."`
	Exact   bool     `help:"Print rationals as num/den."`
	AST     bool     `name:"ast" help:"Print the parsed expression instead of its value."`
	Dump    bool     `help:"Dump the parsed tree structure."`
}

func main() {
	log.SetFlags(0)
	ctx := kong.Parse(&cli,
		kong.Name("unitcalc"),
		kong.Description("Calculator with exact rationals, units and currencies."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	ctx.FatalIfErrorf(err)
	if cli.Offline {
		cfg.Rates.Offline = true
	}
	if cli.Exact {
		cfg.Display.Exact = true
	}

	c := &calc{
		ev:    lang.NewEvaluator(rates.New(cfg.Rates)),
		out:   os.Stdout,
		exact: cfg.Display.Exact,
		ast:   cli.AST,
		dump:  cli.Dump,
	}
	if len(cli.Expr) == 0 {
		repl(c, cfg.REPL)
		return
	}
	os.Exit(c.once(strings.Join(cli.Expr, " ")))
}

// calc prints parsed expressions in the selected mode.
type calc struct {
	ev    *lang.Evaluator
	out   io.Writer
	exact bool
	ast   bool
	dump  bool
}

// once evaluates a single expression and returns the exit status: 0 when a
// value was printed, 1 when the input does not parse or evaluation failed.
func (c *calc) once(expr string) int {
	node, ok := lang.ParseLine(expr)
	if !ok {
		return 1
	}
	if err := c.show(node); err != nil {
		return 1
	}
	return 0
}

// show prints node's value, or its tree in --ast and --dump modes. Evaluation
// errors are printed in place of the value and returned.
func (c *calc) show(node lang.Node) error {
	switch {
	case c.dump:
		repr.New(c.out).Println(node)
		return nil
	case c.ast:
		fmt.Fprintln(c.out, node)
		return nil
	}
	v, err := c.ev.Eval(node)
	if err != nil {
		fmt.Fprintln(c.out, err)
		return err
	}
	if c.exact {
		fmt.Fprintln(c.out, v.Exact())
	} else {
		fmt.Fprintln(c.out, v)
	}
	return nil
}
