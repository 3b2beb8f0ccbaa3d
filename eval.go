package parsemath

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Evaluate computes the value of an expression tree. The tree is not
// modified, so it may be evaluated any number of times, including
// concurrently.
//
// Operands are evaluated left to right, except that a divisor is evaluated
// before its dividend so that division by zero fails without evaluating the
// dividend at all.
func Evaluate(n *Node) (float64, error) {
	if n == nil {
		return 0, &NodeError{Missing: true}
	}
	return n.eval()
}

func (n *Node) eval() (float64, error) {
	switch n.Kind {
	case NodeNumber:
		return n.Value, nil
	case NodeNegative:
		if n.Left == nil {
			return 0, &NodeError{Kind: n.Kind, Missing: true}
		}
		x, err := n.Left.eval()
		if err != nil {
			return 0, err
		}
		return -x, nil
	case NodeDivide:
		if n.Left == nil || n.Right == nil {
			return 0, &NodeError{Kind: n.Kind, Missing: true}
		}
		r, err := n.Right.eval()
		if err != nil {
			return 0, err
		}
		if r == 0 {
			return 0, &DivisionError{Expr: n}
		}
		l, err := n.Left.eval()
		if err != nil {
			return 0, err
		}
		return l / r, nil
	case NodeAdd, NodeSubtract, NodeMultiply, NodeCaret, NodeAnd, NodeOr:
		l, r, err := n.operands()
		if err != nil {
			return 0, err
		}
		switch n.Kind {
		case NodeAdd:
			return l + r, nil
		case NodeSubtract:
			return l - r, nil
		case NodeMultiply:
			return l * r, nil
		case NodeCaret:
			return math.Pow(l, r), nil
		case NodeAnd:
			a, b, err := bitwise(n.Kind, l, r)
			if err != nil {
				return 0, err
			}
			return float64(a & b), nil
		default:
			a, b, err := bitwise(n.Kind, l, r)
			if err != nil {
				return 0, err
			}
			return float64(a | b), nil
		}
	default:
		return 0, &NodeError{Kind: n.Kind}
	}
}

// operands evaluates both children of a binary node, left first.
func (n *Node) operands() (l, r float64, err error) {
	if n.Left == nil || n.Right == nil {
		return 0, 0, &NodeError{Kind: n.Kind, Missing: true}
	}
	if l, err = n.Left.eval(); err != nil {
		return 0, 0, err
	}
	if r, err = n.Right.eval(); err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

// bitwise checks that both operands of a bitwise operator are integers and
// converts them.
func bitwise(kind NodeKind, l, r float64) (int64, int64, error) {
	for _, x := range [2]float64{l, r} {
		// Infinities and NaNs have a NaN fractional part.
		if x-math.Trunc(x) != 0 {
			return 0, 0, &BitwiseError{Op: kind.op(), X: x}
		}
	}
	return toInt64(l), toInt64(r), nil
}

// toInt64 truncates an integral value to int64, saturating at the limits.
func toInt64(x float64) int64 {
	switch {
	case x >= 1<<63:
		return math.MaxInt64
	case x <= -1<<63:
		return math.MinInt64
	default:
		return int64(x)
	}
}

// Eval is a shortcut to parse an expression and return its value.
func Eval(src string, opts ...ParseOption) (float64, error) {
	return EvalReader(strings.NewReader(src), opts...)
}

// EvalReader parses an expression from a rune source and returns its value.
func EvalReader(src io.RuneScanner, opts ...ParseOption) (float64, error) {
	n, err := ParseReader(src, opts...)
	if err != nil {
		return 0, err
	}
	return Evaluate(n)
}

// DivisionError is an error from dividing by zero. It unwraps to
// ErrDivisionByZero.
type DivisionError struct {
	// Expr is the division whose divisor evaluated to zero.
	Expr *Node
}

func (err *DivisionError) Error() string {
	return "division by zero in " + err.Expr.String()
}

func (err *DivisionError) Unwrap() error {
	return ErrDivisionByZero
}

// BitwiseError is an error from a bitwise operator applied to a value with
// a fractional part. It unwraps to ErrType.
type BitwiseError struct {
	// Op is the operator, either "&" or "|".
	Op string
	// X is the operand that is not an integer.
	X float64
}

func (err *BitwiseError) Error() string {
	return "bitwise operation " + err.Op + " requires integer operands, not " + strconv.FormatFloat(err.X, 'g', -1, 64)
}

func (err *BitwiseError) Unwrap() error {
	return ErrType
}

// NodeError is an error from evaluating a malformed tree, which can only be
// built by hand.
type NodeError struct {
	// Kind is the kind of the malformed node.
	Kind NodeKind
	// Missing indicates that the node lacks a child it needs, or, with Kind
	// NodeNone, that the tree itself is nil.
	Missing bool
}

func (err *NodeError) Error() string {
	switch {
	case err.Missing && err.Kind == NodeNone:
		return "missing expression"
	case err.Missing:
		return "missing operand of " + err.Kind.String() + " node"
	default:
		return "invalid node kind " + err.Kind.String()
	}
}
