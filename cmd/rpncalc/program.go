package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/rpncalc"
	"github.com/zephyrtronium/rpncalc/internal/progfile"
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile -o FILE [--] EXPR",
		Short: "Compile an expression to a program file",
		Long: `Compile converts an expression to postfix form and writes it to a program
file which "rpncalc run" evaluates. Arguments are joined with spaces. An
expression that starts with a minus sign must follow "--".`,
		Example: `  rpncalc compile -o area.rpn "3.14159 * 2 ^ 2"
  rpncalc compile -o neg.rpn -- "-4 * 2"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCompile,
	}
	cmd.Flags().StringP("output", "o", "", "program file to write (conventionally "+progfile.Ext+")")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
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
	if err := progfile.WriteFile(out, progfile.File{Source: src, Program: p}); err != nil {
		return err
	}
	fmt.Fprintln(e.p.Out, p)
	return nil
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE...",
		Short: "Evaluate compiled program files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPrograms,
	}
}

func runPrograms(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	failed := 0
	for _, path := range args {
		f, err := progfile.ReadFile(path)
		if err != nil {
			return err
		}
		v, err := f.Program.Eval(e.opts()...)
		switch {
		case err != nil:
			e.p.Error(f.Source, fmt.Errorf("%s: %w", path, err))
			failed++
		case len(args) == 1:
			e.p.Result(v)
		default:
			e.p.Labeled(f.Source, v)
		}
	}
	if failed > 0 {
		return errReported
	}
	return nil
}
