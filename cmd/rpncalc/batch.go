package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/rpncalc/internal/batch"
	"github.com/zephyrtronium/rpncalc/internal/repl"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [flags] [FILE]",
		Short: "Evaluate one expression per line",
		Long: `Batch evaluates each line of FILE, or stdin if FILE is absent or "-", as a
separate expression. Lines are evaluated concurrently and results are printed
in input order. Blank lines and lines starting with # are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBatch,
	}
	cmd.Flags().Int("jobs", 0, "maximum concurrent evaluations (default from config, else GOMAXPROCS)")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	jobs := e.cfg.Jobs
	if f := cmd.Flags().Lookup("jobs"); f != nil && f.Changed {
		jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if jobs < 0 {
		return fmt.Errorf("--jobs must not be negative, got %d", jobs)
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	lines, err := batch.ReadLines(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	for i, line := range lines {
		lines[i] = e.input(line)
	}

	results, err := batch.Run(cmd.Context(), lines, jobs, e.opts()...)
	if err != nil {
		return err
	}
	for _, r := range results {
		switch {
		case r.Skipped:
		case r.Err != nil:
			e.p.Error(r.Source, fmt.Errorf("line %d: %w", r.Line, r.Err))
		default:
			e.p.Result(r.Value)
		}
	}
	if batch.Failed(results) > 0 {
		return errReported
	}
	return nil
}

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, _ := cmd.Flags().GetBool("plain")
			return runRepl(cmd, plain)
		},
	}
	cmd.Flags().Bool("plain", false, "use a line prompt instead of the terminal interface")
	return cmd
}

func runRepl(cmd *cobra.Command, plain bool) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	s := &repl.Session{Opts: e.opts(), Normalize: e.normalize}
	in := cmd.InOrStdin()
	if plain || !interactive(in) {
		return repl.RunPlain(cmd.Context(), in, e.p, s)
	}
	return repl.Run(cmd.Context(), in, cmd.OutOrStdout(), s, e.cfg.Format)
}
