package rpncalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// lexer scans runes from src into a token slice.
type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	toks []Token
}

// Tokenize scans an expression into tokens. Whitespace and any runes which
// are not digits, '.', operators, or parentheses are skipped. The only error
// is a *LexError for a numeric literal that does not parse as a float64, such
// as "1.2.3".
func Tokenize(src string) ([]Token, error) {
	return Lex(strings.NewReader(src))
}

// Lex scans tokens from src until EOF. It returns a *LexError for malformed
// numeric literals, or any error other than io.EOF from src.
func Lex(src io.RuneScanner) ([]Token, error) {
	l := lexer{src: src}
	if err := l.scan(); err != nil {
		return nil, err
	}
	return l.toks, nil
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

func (l *lexer) emit(tok Token) {
	l.toks = append(l.toks, tok)
}

// unaryContext reports whether a '-' at the current position is negation,
// i.e. whether it begins an operand. That is the case at the start of input
// and after an operator or open paren.
func (l *lexer) unaryContext() bool {
	if len(l.toks) == 0 {
		return true
	}
	switch l.toks[len(l.toks)-1].Kind {
	case KindOperator, KindLeftParen:
		return true
	}
	return false
}

func (l *lexer) scan() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch r {
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return err
			}
		case '+':
			l.emit(Op(Add))
		case '-':
			if l.unaryContext() {
				l.emit(Op(UnaryMinus))
			} else {
				l.emit(Op(Subtract))
			}
		case '*':
			l.emit(Op(Multiply))
		case '/':
			l.emit(Op(Divide))
		case '%':
			l.emit(Op(Modulus))
		case '^':
			l.emit(Op(Power))
		case '(':
			l.emit(LeftParen)
		case ')':
			l.emit(RightParen)
		default:
			// Whitespace and unknown runes are dropped.
		}
	}
}

// scanNum accumulates digits and dots into a literal and emits it.
func (l *lexer) scanNum() error {
	defer l.buf.Reset()
	col := l.rune + 1
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if ('0' <= r && r <= '9') || r == '.' {
			l.buf.WriteRune(r)
			continue
		}
		l.unreadRune()
		break
	}
	text := l.buf.String()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return &LexError{Text: text, Col: col, Err: err}
	}
	l.emit(Number(v))
	return nil
}

// LexError indicates a numeric literal which does not denote a float64. It
// implements InputError and unwraps to both ErrUnacceptableToken and the
// error from strconv.
type LexError struct {
	// Text is the literal as it appeared in the input.
	Text string
	// Col is the 1-based rune position at which the literal starts.
	Col int
	// Err is the parse failure, usually a *strconv.NumError.
	Err error
}

func (err *LexError) Error() string {
	msg := "invalid number " + strconv.Quote(err.Text)
	var ne *strconv.NumError
	if errors.As(err.Err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
		msg = "number out of range " + strconv.Quote(err.Text)
	}
	return errpos(err.Col, msg)
}

func (err *LexError) Unwrap() []error {
	return []error{ErrUnacceptableToken, err.Err}
}

func (err *LexError) Pos() int {
	return err.Col
}
