// Package render formats results, errors, and tokens for the terminal.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/zephyrtronium/rpncalc"
)

// UseColor resolves a color mode against the file output goes to.
func UseColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return f != nil && term.IsTerminal(int(f.Fd()))
	}
}

// Printer writes results and diagnostics.
type Printer struct {
	Out io.Writer
	Err io.Writer
	// Format is the fmt verb for results.
	Format string

	value *color.Color
	fail  *color.Color
	caret *color.Color
	dim   *color.Color
}

// NewPrinter creates a printer. Results written to out are colored only if
// outColor is set, and diagnostics written to errw only if errColor is set,
// independent of the global color.NoColor.
func NewPrinter(out, errw io.Writer, format string, outColor, errColor bool) *Printer {
	p := &Printer{
		Out:    out,
		Err:    errw,
		Format: format,
		value:  color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		caret:  color.New(color.FgYellow, color.Bold),
		dim:    color.New(color.FgHiBlack),
	}
	setColor(outColor, p.value, p.dim)
	setColor(errColor, p.fail, p.caret)
	return p
}

func setColor(on bool, cs ...*color.Color) {
	for _, c := range cs {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Value formats a result with the printer's verb.
func (p *Printer) Value(v float64) string {
	return fmt.Sprintf(p.Format, v)
}

// Result prints a result on its own line.
func (p *Printer) Result(v float64) {
	p.value.Fprintln(p.Out, p.Value(v))
}

// Labeled prints a result prefixed with its source expression, for output
// covering several expressions.
func (p *Printer) Labeled(label string, v float64) {
	fmt.Fprintf(p.Out, "%s %s %s\n", label, p.dim.Sprint("="), p.value.Sprint(p.Value(v)))
}

// Error prints an error for the expression src. Lexing errors additionally
// show the expression with a caret under the bad literal.
func (p *Printer) Error(src string, err error) {
	fmt.Fprintf(p.Err, "%s %v\n", p.fail.Sprint("error:"), err)
	var le *rpncalc.LexError
	if !errors.As(err, &le) || strings.ContainsAny(src, "\n\r") {
		return
	}
	fmt.Fprintf(p.Err, "  %s\n  %s\n", src, p.caret.Sprint(Caret(src, le.Col, le.Text)))
}

// Caret returns spaces and carets which underline text starting at the
// 1-based rune column col of src, accounting for wide characters.
func Caret(src string, col int, text string) string {
	runes := []rune(src)
	if col < 1 || col > len(runes)+1 {
		return ""
	}
	pad := runewidth.StringWidth(string(runes[:col-1]))
	n := runewidth.StringWidth(text)
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", pad) + strings.Repeat("^", n)
}

// Tokens writes a table of tokens.
func Tokens(w io.Writer, toks []rpncalc.Token) error {
	kindWidth := 0
	for _, tok := range toks {
		kindWidth = max(kindWidth, runewidth.StringWidth(tok.Kind.String()))
	}
	for i, tok := range toks {
		kind := runewidth.FillRight(tok.Kind.String(), kindWidth)
		if _, err := fmt.Fprintf(w, "%4d  %s  %s\n", i, kind, tok); err != nil {
			return err
		}
	}
	return nil
}

type jsonToken struct {
	Kind string   `json:"kind"`
	Text string   `json:"text"`
	Num  *float64 `json:"num,omitempty"`
	Prec int      `json:"prec,omitempty"`
}

// TokensJSON writes tokens as a JSON array.
func TokensJSON(w io.Writer, toks []rpncalc.Token) error {
	out := make([]jsonToken, len(toks))
	for i, tok := range toks {
		out[i] = jsonToken{Kind: tok.Kind.String(), Text: tok.String()}
		switch tok.Kind {
		case rpncalc.KindNumber:
			v := tok.Num
			out[i].Num = &v
		case rpncalc.KindOperator:
			out[i].Prec = tok.Op.Precedence()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
