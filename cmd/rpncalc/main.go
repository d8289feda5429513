package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"github.com/zephyrtronium/rpncalc"
	"github.com/zephyrtronium/rpncalc/internal/config"
	"github.com/zephyrtronium/rpncalc/internal/render"
	"github.com/zephyrtronium/rpncalc/internal/version"
)

// errReported is returned by commands whose failures have already been
// printed as diagnostics.
var errReported = errors.New("errors reported")

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			log.Print(err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpncalc",
		Short: "Evaluate arithmetic expressions",
		Long: `rpncalc evaluates infix arithmetic expressions with + - * / % ^ and
parentheses by converting them to postfix form.

With no subcommand, rpncalc starts an interactive session when stdin is a
terminal and evaluates one expression per line of stdin otherwise.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive(cmd.InOrStdin()) {
				return runRepl(cmd, false)
			}
			return runBatch(cmd, nil)
		},
	}
	root.Version = version.Version

	root.AddCommand(newEvalCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newRPNCmd())
	root.AddCommand(newCompileCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newReplCmd())
	root.AddCommand(newVersionCmd())

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.String("config", "", "configuration file (default: nearest "+config.FileName+")")
	pf.Bool("timings", false, "show timing information")
	pf.String("timings-format", "pretty", "timing output format (pretty|json)")
	pf.Bool("strict-parens", false, "report an unmatched ) instead of ignoring it")
	pf.Bool("lenient", false, "allow leftover operands and use the last value")
	pf.String("fmt", "%g", "result formatting verb")
	pf.Bool("nfkc", false, "apply Unicode NFKC normalization to input")
	return root
}

// env is the configuration resolved for one command invocation.
type env struct {
	cfg   config.Config
	p     *render.Printer
	color bool

	timings bool
	// timingsFormat is pretty or json.
	timingsFormat string

	normalize func(string) string
}

// setup resolves the configuration file and flags. Flags set on the command
// line take precedence over the file.
func setup(cmd *cobra.Command) (*env, error) {
	flags := cmd.Flags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	if flags.Changed("color") {
		c, _ := flags.GetString("color")
		if cfg.Color, err = config.ParseColor(c); err != nil {
			return nil, err
		}
	}
	if flags.Changed("fmt") {
		cfg.Format, _ = flags.GetString("fmt")
	}
	if flags.Changed("strict-parens") {
		cfg.StrictParens, _ = flags.GetBool("strict-parens")
	}
	if flags.Changed("lenient") {
		cfg.Lenient, _ = flags.GetBool("lenient")
	}

	e := &env{cfg: cfg}
	e.timings, _ = flags.GetBool("timings")
	e.timingsFormat, _ = flags.GetString("timings-format")
	switch e.timingsFormat {
	case "pretty", "json":
	default:
		return nil, fmt.Errorf("unknown timings format: %s", e.timingsFormat)
	}
	if nfkc, _ := flags.GetBool("nfkc"); nfkc {
		e.normalize = norm.NFKC.String
	}
	out, _ := cmd.OutOrStdout().(*os.File)
	errw, _ := cmd.ErrOrStderr().(*os.File)
	e.color = render.UseColor(cfg.Color, out)
	e.p = render.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Format, e.color, render.UseColor(cfg.Color, errw))
	return e, nil
}

func (e *env) opts() []rpncalc.Option {
	return e.cfg.Options()
}

// input applies the normalization selected by --nfkc.
func (e *env) input(s string) string {
	if e.normalize == nil {
		return s
	}
	return e.normalize(s)
}

// interactive reports whether r is a terminal.
func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
