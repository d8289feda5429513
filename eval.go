package rpncalc

import (
	"io"
	"math"
	"strings"
)

// Eval evaluates a postfix token sequence, such as one produced by ToRPN.
// Each number is pushed onto a value stack and each operator replaces its
// operands with its result. Exactly one value must remain at the end unless
// the Lenient option is given.
//
// Errors are *EvalError values wrapping ErrInsufficientOperands,
// ErrDivisionByZero for any non-finite result, ErrMismatchedParentheses for a
// parenthesis token, ErrUnacceptableToken for a zero or invalid token, or
// ErrMalformedExpression for leftover operands. There is no partial result.
func Eval(rpn []Token, opts ...Option) (float64, error) {
	s := collect(opts)
	stack := make([]float64, 0, len(rpn)/2+1)
	pop := func() (float64, bool) {
		if len(stack) == 0 {
			return 0, false
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, true
	}
	for i, tok := range rpn {
		switch tok.Kind {
		case KindNumber:
			stack = append(stack, tok.Num)
		case KindOperator:
			if !tok.Op.Valid() {
				return 0, &EvalError{Err: ErrUnacceptableToken, Index: i, Token: tok}
			}
			if tok.Op.Unary() {
				a, ok := pop()
				if !ok {
					return 0, &EvalError{Err: ErrInsufficientOperands, Index: i, Token: tok}
				}
				stack = append(stack, tok.Op.Apply(a, 0))
				continue
			}
			b, ok := pop()
			if !ok {
				return 0, &EvalError{Err: ErrInsufficientOperands, Index: i, Token: tok}
			}
			a, ok := pop()
			if !ok {
				return 0, &EvalError{Err: ErrInsufficientOperands, Index: i, Token: tok}
			}
			r := tok.Op.Apply(a, b)
			if math.IsInf(r, 0) || math.IsNaN(r) {
				return 0, &EvalError{Err: ErrDivisionByZero, Index: i, Token: tok}
			}
			stack = append(stack, r)
		case KindLeftParen, KindRightParen:
			return 0, &EvalError{Err: ErrMismatchedParentheses, Index: i, Token: tok}
		default:
			return 0, &EvalError{Err: ErrUnacceptableToken, Index: i, Token: tok}
		}
	}
	switch {
	case len(stack) == 0:
		return 0, &EvalError{Err: ErrInsufficientOperands, Index: len(rpn)}
	case len(stack) > 1 && !s.lenient:
		return 0, &EvalError{Err: ErrMalformedExpression, Index: len(rpn)}
	}
	return stack[len(stack)-1], nil
}

// Program is a compiled expression in postfix order.
type Program []Token

// Compile tokenizes and converts an expression without evaluating it.
func Compile(src string, opts ...Option) (Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Program(ToRPN(toks, opts...)), nil
}

// Eval evaluates the program. It is equivalent to Eval([]Token(p), opts...).
func (p Program) Eval(opts ...Option) (float64, error) {
	return Eval(p, opts...)
}

// String formats the program as space-separated postfix tokens, e.g.
// "2 3 4 * +".
func (p Program) String() string {
	var b strings.Builder
	for i, tok := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}

// Compute is a shortcut to lex, convert, and evaluate an expression.
func Compute(src io.RuneScanner, opts ...Option) (float64, error) {
	toks, err := Lex(src)
	if err != nil {
		return 0, err
	}
	return Eval(ToRPN(toks, opts...), opts...)
}

// ComputeString is a shortcut to compute a string expression.
func ComputeString(src string, opts ...Option) (float64, error) {
	return Compute(strings.NewReader(src), opts...)
}
