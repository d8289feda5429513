package rpncalc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToRPN(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"num", "1", "1"},
		{"add", "2 + 3", "2 3 +"},
		{"left-assoc", "1 - 2 - 3", "1 2 - 3 -"},
		{"right-assoc", "2 ^ 3 ^ 2", "2 3 2 ^ ^"},
		{"prec", "2 + 3 * 4", "2 3 4 * +"},
		{"prec-pow-mod", "2 ^ 3 % 3", "2 3 ^ 3 %"},
		{"parens", "(2 + 3) * 4", "2 3 + 4 *"},
		{"nested", "((1 + 2) * (3 - 4)) / 5", "1 2 + 3 4 - * 5 /"},
		{"neg", "-2 + 3", "2 neg 3 +"},
		{"neg-operand", "4 * -2", "4 2 neg *"},
		{"neg-pow", "-2 ^ 2", "2 neg 2 ^"},
		{"pow-neg", "2 ^ -3", "2 3 neg ^"},
		{"neg-neg", "--2", "neg 2 neg"},
		{"complex", "3 + 5 * (2 ^ 3) - 4 / 2", "3 5 2 3 ^ * + 4 2 / -"},
		{"unclosed", "(2 + 3 * 4", "2 3 4 * + ("},
		{"stray-close", "2 + 3)", "2 3 +"},
		{"stray-close-mid", "2) * 3", "2 3 *"},
		{"no-operator", "2 3", "2 3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("tokenizing %q: %v", c.src, err)
			}
			got := Program(ToRPN(toks)).String()
			if got != c.want {
				t.Errorf("converting %q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestToRPNStrictParens(t *testing.T) {
	cases := []struct {
		name string
		in   []Token
		want []Token
	}{
		{"stray", []Token{Number(2), Op(Add), Number(3), RightParen}, []Token{Number(2), Number(3), Op(Add), RightParen}},
		{"balanced", []Token{LeftParen, Number(2), RightParen}, []Token{Number(2)}},
		{"second", []Token{LeftParen, Number(1), RightParen, RightParen}, []Token{Number(1), RightParen}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ToRPN(c.in, StrictParens())
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("(-want +got)\n%s", diff)
			}
		})
	}
}

func TestToRPNKeepsInput(t *testing.T) {
	in := []Token{LeftParen, Number(1), Op(Add), Number(2), RightParen, Op(Multiply), Number(3)}
	orig := append([]Token(nil), in...)
	out := ToRPN(in)
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Errorf("input modified: (-before +after)\n%s", diff)
	}
	for _, tok := range out {
		if tok.Kind == KindLeftParen || tok.Kind == KindRightParen {
			t.Errorf("balanced input left paren in output %v", out)
		}
	}
}

func TestToRPNUnknownToken(t *testing.T) {
	in := []Token{Number(1), Op(Add), {}}
	want := []Token{Number(1), {}, Op(Add)}
	if diff := cmp.Diff(want, ToRPN(in)); diff != "" {
		t.Errorf("(-want +got)\n%s", diff)
	}
}

func TestOperatorTable(t *testing.T) {
	cases := []struct {
		op    Operator
		sym   string
		prec  int
		right bool
	}{
		{UnaryMinus, "-", 40, false},
		{Power, "^", 30, true},
		{Multiply, "*", 20, false},
		{Divide, "/", 20, false},
		{Modulus, "%", 20, false},
		{Add, "+", 10, false},
		{Subtract, "-", 10, false},
	}
	for _, c := range cases {
		t.Run(c.op.String(), func(t *testing.T) {
			if got := c.op.Symbol(); got != c.sym {
				t.Errorf("symbol: want %q, got %q", c.sym, got)
			}
			if got := c.op.Precedence(); got != c.prec {
				t.Errorf("precedence: want %d, got %d", c.prec, got)
			}
			if got := c.op.RightAssoc(); got != c.right {
				t.Errorf("right assoc: want %t, got %t", c.right, got)
			}
			if got := c.op.Unary(); got != (c.op == UnaryMinus) {
				t.Errorf("unary: got %t", got)
			}
		})
	}
	if bad := Operator(numOperators); bad.Valid() || bad.Precedence() != 0 || bad.RightAssoc() {
		t.Errorf("%v should be invalid", bad)
	}
}
