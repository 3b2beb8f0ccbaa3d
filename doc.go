// Package parsemath implements a floating-point arithmetic calculator.
//
// Expressions are built from unsigned decimal numbers, the binary operators
// + - * / ^ & |, unary negation, and parentheses. From loosest to tightest,
// the precedence levels are |, &, + and -, * and /, ^, unary -, and finally
// numbers and parenthesized groups. Every binary operator is
// left-associative except ^, so "2^3^2" is "2^(3^2)". Because the base of
// an exponentiation is a unary term, "-2^2" is "(-2)^2".
//
// The bitwise operators & and | work on integral values only. Evaluating
// them with an operand that has a fractional part is an error, as is
// dividing by zero. Everything else follows IEEE-754 double arithmetic, so
// infinities and NaNs propagate silently.
//
// Parse an expression once with Parse, then Evaluate the tree as many times
// as needed, or use Eval to do both at once.
package parsemath
