package parsemath

import (
	"errors"
	"strconv"
)

// Error kinds. Every error this package returns for bad input or an
// invalid operation unwraps to exactly one of these, so callers can classify
// errors with errors.Is.
var (
	// ErrLexical is the kind of errors for input that does not form tokens.
	ErrLexical = errors.New("lexical error")
	// ErrSyntax is the kind of errors for tokens that do not form an
	// expression.
	ErrSyntax = errors.New("syntax error")
	// ErrTooComplex is the kind of errors for expressions nested deeper than
	// the parser allows.
	ErrTooComplex = errors.New("expression too complex")
	// ErrDivisionByZero is the kind of errors for division by zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrType is the kind of errors for operands an operator cannot use.
	ErrType = errors.New("type error")
)

// BracketError is an error indicating an unbalanced parenthesis. It
// implements InputError and unwraps to ErrSyntax.
type BracketError struct {
	// Col is the position of the unbalanced bracket.
	Col int
	// Left is the opening bracket that was not closed, if any.
	Left string
	// Right is the closing bracket that was not opened, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// UnexpectedTokenError is an error indicating a token that cannot appear
// where the parser found it. It implements InputError and unwraps to
// ErrSyntax.
type UnexpectedTokenError struct {
	// Col is the position of the token.
	Col int
	// Got is the kind of the token that was found.
	Got TokenKind
	// Want describes what the parser expected instead.
	Want string
}

func (err *UnexpectedTokenError) Error() string {
	return errpos(err.Col, "unexpected "+err.Got.describe()+", expected "+err.Want)
}

func (err *UnexpectedTokenError) Pos() int {
	return err.Col
}

func (err *UnexpectedTokenError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating a missing operand or
// subexpression. It implements InputError and unwraps to ErrSyntax.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or the empty string at
	// the end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrSyntax
}

// DepthError is an error indicating an expression that nests more deeply
// than the parser allows. It implements InputError and unwraps to
// ErrTooComplex.
type DepthError struct {
	// Col is the position of the token that exceeded the limit.
	Col int
	// Max is the nesting limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression too complex: nesting exceeds "+strconv.Itoa(err.Max))
}

func (err *DepthError) Pos() int {
	return err.Col
}

func (err *DepthError) Unwrap() error {
	return ErrTooComplex
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the column of the rune or token that caused the error.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*UnexpectedTokenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*LexError)(nil)
)
