package rpncalc

import (
	"math"
	"strconv"
)

// Token is a lexical unit of an expression: a number, an operator, or a
// parenthesis. Tokens are plain values and may be compared with ==.
type Token struct {
	// Kind is the variant of the token.
	Kind TokenKind
	// Op is the operator if Kind is KindOperator.
	Op Operator
	// Num is the value if Kind is KindNumber.
	Num float64
}

// TokenKind discriminates the variants of Token.
type TokenKind uint8

const (
	// KindNone is the zero Kind. The lexer never produces it.
	KindNone TokenKind = iota
	// KindNumber is a numeric literal.
	KindNumber
	// KindOperator is a unary or binary operator.
	KindOperator
	// KindLeftParen is (.
	KindLeftParen
	// KindRightParen is ).
	KindRightParen
)

func (k TokenKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindOperator:
		return "Operator"
	case KindLeftParen:
		return "LeftParen"
	case KindRightParen:
		return "RightParen"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Number returns a number token.
func Number(v float64) Token {
	return Token{Kind: KindNumber, Num: v}
}

// Op returns an operator token.
func Op(op Operator) Token {
	return Token{Kind: KindOperator, Op: op}
}

// Parenthesis tokens.
var (
	LeftParen  = Token{Kind: KindLeftParen}
	RightParen = Token{Kind: KindRightParen}
)

func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case KindOperator:
		return t.Op.String()
	case KindLeftParen:
		return "("
	case KindRightParen:
		return ")"
	default:
		return "$" + t.Kind.String()
	}
}

// Operator is an arithmetic operator.
type Operator uint8

const (
	UnaryMinus Operator = iota
	Power
	Multiply
	Divide
	Modulus
	Add
	Subtract

	numOperators = iota
)

// optab holds the fixed properties of each operator, indexed by Operator.
var optab = [numOperators]struct {
	sym   string
	name  string
	prec  int
	right bool
}{
	UnaryMinus: {"-", "neg", 40, false},
	Power:      {"^", "^", 30, true},
	Multiply:   {"*", "*", 20, false},
	Divide:     {"/", "/", 20, false},
	Modulus:    {"%", "%", 20, false},
	Add:        {"+", "+", 10, false},
	Subtract:   {"-", "-", 10, false},
}

// Valid reports whether op is one of the defined operators.
func (op Operator) Valid() bool {
	return op < numOperators
}

// Precedence returns the binding strength of op. Higher binds tighter.
func (op Operator) Precedence() int {
	if !op.Valid() {
		return 0
	}
	return optab[op].prec
}

// RightAssoc reports whether op groups right to left. Only Power does.
func (op Operator) RightAssoc() bool {
	return op.Valid() && optab[op].right
}

// Unary reports whether op takes a single operand.
func (op Operator) Unary() bool {
	return op == UnaryMinus
}

// Symbol returns the source text of op. UnaryMinus and Subtract share "-".
func (op Operator) Symbol() string {
	if !op.Valid() {
		return "?"
	}
	return optab[op].sym
}

// String returns a name for op which is unique among operators. It is the
// symbol for every operator except UnaryMinus, which is "neg".
func (op Operator) String() string {
	if !op.Valid() {
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
	return optab[op].name
}

// Apply computes a op b. For UnaryMinus, b is ignored and the result is -a.
// Results follow IEEE 754 semantics and may be infinite or NaN; Eval is
// responsible for rejecting those. Apply panics if op is not Valid.
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case UnaryMinus:
		return -a
	case Power:
		return math.Pow(a, b)
	case Multiply:
		return a * b
	case Divide:
		return a / b
	case Modulus:
		return math.Mod(a, b)
	case Add:
		return a + b
	case Subtract:
		return a - b
	default:
		panic("rpncalc: invalid operator " + op.String())
	}
}
