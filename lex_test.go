package rpncalc

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLex(t *testing.T) {
	var (
		neg = Op(UnaryMinus)
		sub = Op(Subtract)
		add = Op(Add)
		mul = Op(Multiply)
		div = Op(Divide)
		mod = Op(Modulus)
		pow = Op(Power)
		n   = Number
		lp  = LeftParen
		rp  = RightParen
	)
	cases := []struct {
		name string
		src  string
		want []Token
	}{
		// spaces
		{"empty", "", nil},
		{"blank", " \t \r\n ", nil},
		// numbers
		{"zero", "0", []Token{n(0)}},
		{"digits", "9876543210", []Token{n(9876543210)}},
		{"two", "1 0", []Token{n(1), n(0)}},
		{"real", "1.5", []Token{n(1.5)}},
		{"lead-dot", ".25", []Token{n(0.25)}},
		{"trail-dot", "3.", []Token{n(3)}},
		// operators
		{"add", "1+2", []Token{n(1), add, n(2)}},
		{"all", "1+2*3/4%5^6", []Token{n(1), add, n(2), mul, n(3), div, n(4), mod, n(5), pow, n(6)}},
		{"parens", "(1)", []Token{lp, n(1), rp}},
		// minus
		{"neg-first", "-2 + 3", []Token{neg, n(2), add, n(3)}},
		{"neg-after-op", "4 * -2", []Token{n(4), mul, neg, n(2)}},
		{"neg-after-paren", "(-1)", []Token{lp, neg, n(1), rp}},
		{"sub", "4 - 2", []Token{n(4), sub, n(2)}},
		{"sub-after-paren", "(1) - 2", []Token{lp, n(1), rp, sub, n(2)}},
		{"sub-neg", "4--2", []Token{n(4), sub, neg, n(2)}},
		{"neg-neg", "--2", []Token{neg, neg, n(2)}},
		{"pow-neg", "2 ^ -3", []Token{n(2), pow, neg, n(3)}},
		// skipped runes
		{"letters", "x1y+z2", []Token{n(1), add, n(2)}},
		{"symbols", "$1 # 2 @", []Token{n(1), n(2)}},
		{"unicode", "π×2", []Token{n(2)}},
		{"split", "1 2.5", []Token{n(1), n(2.5)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("tokenizing %q: unexpected error %v", c.src, err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("tokenizing %q: (-want +got)\n%s", c.src, diff)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		text string
		col  int
		rng  bool
	}{
		{"dots", "1.2.3", "1.2.3", 1, false},
		{"lone-dot", ".", ".", 1, false},
		{"later", "2 + 1..5", "1..5", 5, false},
		{"after-unicode", "π 3.3.3", "3.3.3", 3, false},
		{"range", "1" + strings.Repeat("0", 400), "1" + strings.Repeat("0", 400), 1, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err == nil {
				t.Fatalf("tokenizing %q gave no error, tokens %v", c.src, toks)
			}
			if toks != nil {
				t.Errorf("tokenizing %q gave tokens %v with error", c.src, toks)
			}
			var le *LexError
			if !errors.As(err, &le) {
				t.Fatalf("%#v is not *LexError", err)
			}
			if le.Text != c.text {
				t.Errorf("wrong text: want %q, got %q", c.text, le.Text)
			}
			if le.Pos() != c.col {
				t.Errorf("wrong column: want %d, got %d", c.col, le.Pos())
			}
			if !errors.Is(err, ErrUnacceptableToken) {
				t.Errorf("%v does not unwrap to ErrUnacceptableToken", err)
			}
			if got := errors.Is(err, strconv.ErrRange); got != c.rng {
				t.Errorf("errors.Is(%v, strconv.ErrRange) = %t, want %t", err, got, c.rng)
			}
			if !strings.HasPrefix(err.Error(), strconv.Itoa(c.col)+": ") {
				t.Errorf("message %q lacks position", err.Error())
			}
		})
	}
}

func TestLexReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Lex(&scanner{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("want %v, got %v", boom, err)
	}
}

func TestLexDeterministic(t *testing.T) {
	const src = "3 + 5 * (2 ^ 3) - -4 / 2 % 7"
	a, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("tokenizing twice differs: (-first +second)\n%s", diff)
	}
}

// scanner is a RuneScanner which fails with err after its first rune.
type scanner struct {
	err  error
	read bool
}

func (s *scanner) ReadRune() (rune, int, error) {
	if s.read {
		return 0, 0, s.err
	}
	s.read = true
	return '1', 1, nil
}

func (s *scanner) UnreadRune() error {
	s.read = false
	return nil
}
