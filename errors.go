package rpncalc

import (
	"errors"
	"strconv"
)

// Kinds of evaluation failure. Errors returned by this package wrap exactly
// one of these, so callers should test with errors.Is.
var (
	// ErrInsufficientOperands means an operator had too few values to consume,
	// or nothing was left to return.
	ErrInsufficientOperands = errors.New("insufficient operands for operation")
	// ErrDivisionByZero means an operation produced an infinite or NaN
	// result. Besides division by zero, this includes overflow and e.g. a
	// negative number raised to a fractional power.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrMismatchedParentheses means a parenthesis reached evaluation.
	ErrMismatchedParentheses = errors.New("mismatched parentheses")
	// ErrUnacceptableToken means a token is invalid where it appears, such as
	// a malformed numeric literal or a zero Token.
	ErrUnacceptableToken = errors.New("unacceptable token encountered")
	// ErrMalformedExpression means evaluation finished with more than one
	// value, e.g. for "2 3".
	ErrMalformedExpression = errors.New("malformed expression: too many operands")
)

// EvalError is an error from evaluating a postfix sequence. It implements
// InputError.
type EvalError struct {
	// Err is the kind of failure, one of the Err variables in this package.
	Err error
	// Index is the position in the postfix sequence of the token being
	// evaluated, or the length of the sequence if the failure was found after
	// all tokens were consumed.
	Index int
	// Token is the token at Index, or the zero Token at the end.
	Token Token
}

func (err *EvalError) Error() string {
	if err.Token.Kind == KindNone {
		return errpos(err.Index, err.Err.Error())
	}
	return errpos(err.Index, err.Err.Error()+" at "+strconv.Quote(err.Token.String()))
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

// Pos returns the 0-based index of the failing token in the postfix sequence.
func (err *EvalError) Pos() int {
	return err.Index
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error. For lexing errors, it is the
	// number of runes up to and including the start of the bad literal. For
	// evaluation errors, it is the index into the postfix sequence.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*EvalError)(nil)
)
