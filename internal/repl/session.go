// Package repl implements the interactive calculator loop.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/zephyrtronium/rpncalc"
	"github.com/zephyrtronium/rpncalc/internal/render"
)

// Entry is one evaluated line.
type Entry struct {
	Src   string
	Value float64
	Err   error
	// Info is set instead of Value for commands which print text.
	Info string
}

// Session holds the state shared by the terminal UI and the plain loop. A
// Session is not safe for concurrent use.
type Session struct {
	// Opts are passed to every evaluation.
	Opts []rpncalc.Option
	// Normalize, if not nil, rewrites each input line before evaluation.
	Normalize func(string) string

	history []Entry
	quit    bool
}

// maxLineSize is the longest input line RunPlain accepts.
const maxLineSize = 16 << 20

const helpText = `enter an expression to evaluate it, or a command:
  :rpn EXPR   show the postfix form of EXPR
  :tok EXPR   show the tokens of EXPR
  :help       show this help
  :q          quit`

// Exec evaluates a line and records it in the history. Blank lines produce no
// entry and return false.
func (s *Session) Exec(line string) (Entry, bool) {
	if s.Normalize != nil {
		line = s.Normalize(line)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, false
	}
	e := Entry{Src: line}
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case ":q", ":quit", ":exit":
		s.quit = true
		return Entry{}, false
	case ":help", ":h":
		e.Info = helpText
	case ":rpn":
		p, err := rpncalc.Compile(arg, s.Opts...)
		if err != nil {
			e.Err = err
		} else {
			e.Info = p.String()
		}
	case ":tok":
		toks, err := rpncalc.Tokenize(arg)
		if err != nil {
			e.Err = err
		} else {
			e.Info = rpncalc.Program(toks).String()
		}
	default:
		if strings.HasPrefix(cmd, ":") {
			e.Err = fmt.Errorf("unknown command %s (try :help)", cmd)
			break
		}
		e.Value, e.Err = rpncalc.ComputeString(line, s.Opts...)
	}
	s.history = append(s.history, e)
	return e, true
}

// Done reports whether the user asked to quit.
func (s *Session) Done() bool {
	return s.quit
}

// History returns the entries evaluated so far, oldest first.
func (s *Session) History() []Entry {
	return s.history
}

// RunPlain runs a line-oriented loop without terminal control, printing a
// prompt before each line. It returns at EOF, on :q, or when ctx is done.
func RunPlain(ctx context.Context, in io.Reader, p *render.Printer, s *Session) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(nil, maxLineSize)
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(p.Out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(p.Out)
			break
		}
		e, ok := s.Exec(sc.Text())
		if !ok {
			continue
		}
		switch {
		case e.Err != nil:
			p.Error(e.Src, e.Err)
		case e.Info != "":
			fmt.Fprintln(p.Out, e.Info)
		default:
			p.Result(e.Value)
		}
	}
	return sc.Err()
}
