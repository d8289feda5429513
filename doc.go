// Package rpncalc implements a floating-point calculator for arithmetic
// expressions.
//
// Evaluation runs in three stages. Tokenize scans text into tokens, ToRPN
// reorders them into postfix form with the shunting-yard algorithm, and Eval
// reduces the postfix sequence to a single float64 with a value stack.
// ComputeString runs all three.
//
// The operators are + - * / % ^ and unary minus, with the usual precedence.
// "-2^2" is "(-2)^2", since negation binds tighter than any binary operator,
// and "2^3^2" is "2^(3^2)". Every stage is a pure function, so expressions may
// be evaluated concurrently without synchronization.
package rpncalc
