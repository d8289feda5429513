package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/rpncalc"
	"github.com/zephyrtronium/rpncalc/internal/batch"
	"github.com/zephyrtronium/rpncalc/internal/observ"
	"github.com/zephyrtronium/rpncalc/internal/render"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [flags] [--] [EXPR...]",
		Short: "Evaluate expressions",
		Long: `Eval evaluates each argument as a separate expression. With no arguments,
each non-blank line of stdin is an expression. With more than one expression,
each result is labeled with its expression.

An expression that starts with a minus sign must follow "--" so that it is
not read as a flag.`,
		Example: `  rpncalc eval "2 + 3 * 4"
  rpncalc eval -- "-2 + 3"
  echo "-2 ^ 2" | rpncalc eval`,
		RunE: runEval,
	}
}

func runEval(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	srcs := args
	if len(srcs) == 0 {
		lines, err := batch.ReadLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		for _, line := range lines {
			if strings.TrimSpace(line) != "" {
				srcs = append(srcs, line)
			}
		}
		if len(srcs) == 0 {
			return errors.New("no expressions given")
		}
	}
	failed := 0
	for _, arg := range srcs {
		src := e.input(arg)
		var t *observ.Timer
		if e.timings {
			t = observ.NewTimer()
		}
		v, err := timedCompute(t, src, e.opts())
		switch {
		case err != nil:
			e.p.Error(src, err)
			failed++
		case len(srcs) == 1:
			e.p.Result(v)
		default:
			e.p.Labeled(src, v)
		}
		if t != nil {
			if err := e.reportTimings(t); err != nil {
				return err
			}
		}
	}
	if failed > 0 {
		return errReported
	}
	return nil
}

// reportTimings writes t to the diagnostic stream in the selected format.
func (e *env) reportTimings(t *observ.Timer) error {
	if e.timingsFormat == "json" {
		return json.NewEncoder(e.p.Err).Encode(t.Report())
	}
	_, err := fmt.Fprint(e.p.Err, t.Summary())
	return err
}

// timedCompute runs each stage of the pipeline separately so that t can
// record them. t may be nil.
func timedCompute(t *observ.Timer, src string, opts []rpncalc.Option) (float64, error) {
	if t == nil {
		return rpncalc.ComputeString(src, opts...)
	}
	idx := t.Begin("lex")
	toks, err := rpncalc.Tokenize(src)
	t.End(idx, fmt.Sprintf("%d tokens", len(toks)))
	if err != nil {
		return 0, err
	}
	idx = t.Begin("rpn")
	rpn := rpncalc.ToRPN(toks, opts...)
	t.End(idx, "")
	idx = t.Begin("eval")
	v, err := rpncalc.Eval(rpn, opts...)
	t.End(idx, "")
	return v, err
}

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] [--] EXPR",
		Short: "Print the tokens of an expression",
		Long: `Tokenize breaks an expression into numbers, operators and parentheses.
Arguments are joined with spaces. An expression that starts with a minus sign
must follow "--".`,
		Example: `  rpncalc tokenize "2 ^ -3"
  rpncalc tokenize --format json -- "-(1 + 2)"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	src := e.input(strings.Join(args, " "))
	toks, err := rpncalc.Tokenize(src)
	if err != nil {
		e.p.Error(src, err)
		return errReported
	}
	if format == "json" {
		return render.TokensJSON(e.p.Out, toks)
	}
	return render.Tokens(e.p.Out, toks)
}

func newRPNCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rpn [--] EXPR",
		Short: "Print the postfix form of an expression",
		Long: `Rpn converts an expression to postfix notation without evaluating it.
Arguments are joined with spaces. An expression that starts with a minus sign
must follow "--".`,
		Example: `  rpncalc rpn "2 + 3 * 4"
  rpncalc rpn -- "-2 ^ 2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			src := e.input(strings.Join(args, " "))
			p, err := rpncalc.Compile(src, e.opts()...)
			if err != nil {
				e.p.Error(src, err)
				return errReported
			}
			fmt.Fprintln(e.p.Out, p)
			return nil
		},
	}
}
