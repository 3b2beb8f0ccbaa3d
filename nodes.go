package parsemath

import (
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. Binary nodes
// use both Left and Right. NodeNegative uses only Left, and NodeNumber uses
// neither. A tree built by the parser never shares nodes.
type Node struct {
	Kind  NodeKind
	Value float64

	Left  *Node
	Right *Node
}

// NodeKind identifies the operation of a node.
type NodeKind int8

const (
	NodeNone NodeKind = iota

	NodeNumber   // Value
	NodeNegative // -Left

	NodeAdd      // Left + Right
	NodeSubtract // Left - Right
	NodeMultiply // Left * Right
	NodeDivide   // Left / Right, evaluating Right first
	NodeCaret    // Left raised to Right
	NodeAnd      // bitwise Left & Right
	NodeOr       // bitwise Left | Right
)

var nodeNames = [...]string{
	NodeNone:     "None",
	NodeNumber:   "Number",
	NodeNegative: "Negative",
	NodeAdd:      "Add",
	NodeSubtract: "Subtract",
	NodeMultiply: "Multiply",
	NodeDivide:   "Divide",
	NodeCaret:    "Caret",
	NodeAnd:      "And",
	NodeOr:       "Or",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeNames) {
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return nodeNames[k]
}

// op is the operator symbol for a binary node kind, or the empty string.
func (k NodeKind) op() string {
	switch k {
	case NodeAdd:
		return "+"
	case NodeSubtract:
		return "-"
	case NodeMultiply:
		return "*"
	case NodeDivide:
		return "/"
	case NodeCaret:
		return "^"
	case NodeAnd:
		return "&"
	case NodeOr:
		return "|"
	default:
		return ""
	}
}

// Num creates a number leaf.
func Num(v float64) *Node {
	return &Node{Kind: NodeNumber, Value: v}
}

// Neg creates a negation of x.
func Neg(x *Node) *Node {
	return &Node{Kind: NodeNegative, Left: x}
}

// Binary creates a binary node. Panics if kind is not a binary operation.
func Binary(kind NodeKind, left, right *Node) *Node {
	if kind.op() == "" {
		panic("parsemath: not a binary node kind: " + kind.String())
	}
	return &Node{Kind: kind, Left: left, Right: right}
}

// String creates a fully parenthesized representation of the tree. For trees
// produced by Parse, the result parses to an identical tree.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	if n == nil {
		// Missing children use invalid characters.
		b.WriteByte('$')
		return
	}
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.Kind {
	case NodeNumber:
		b.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
	case NodeNegative:
		b.WriteByte('-')
		n.Left.fmt(b)
	case NodeAdd, NodeSubtract, NodeMultiply, NodeDivide, NodeCaret, NodeAnd, NodeOr:
		n.Left.fmt(b)
		b.WriteString(" " + n.Kind.op() + " ")
		n.Right.fmt(b)
	default:
		b.WriteByte('#')
		b.WriteString(n.Kind.String())
		b.WriteByte('#')
	}
}
