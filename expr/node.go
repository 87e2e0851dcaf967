// Package expr builds canonical expression trees over the four
// arithmetic operators.
//
// A Node carries its value and a canonical text. Two nodes with the
// same text always have the same value; the text is chosen so that
// expressions equal under the configured associativity and
// commutativity rules render identically.
package expr

import (
	"zappem.net/pub/math/numexpr/frac"
)

// Node is an immutable canonical expression. Leaves have Op None.
//
// For combined nodes Pos holds the operand texts of the node's
// operator group and, under the Full strategy, Neg holds the operand
// texts on the inverse side of the group: (p1 + p2 - n1) has Pos
// {p1, p2} and Neg {n1}.
type Node struct {
	Value frac.Frac
	Expr  string
	Op    Op
	Pos   []string
	Neg   []string

	// IntSteps and PosSteps hold when Value and every value below it
	// in the tree is an integer (respectively positive).
	IntSteps bool
	PosSteps bool
}

// Leaf wraps a single input number.
func Leaf(v frac.Frac) *Node {
	return &Node{
		Value:    v,
		Expr:     v.String(),
		Op:       None,
		IntSteps: v.IsInteger(),
		PosSteps: v.IsPositive(),
	}
}

// IsLeaf indicates n wraps an input number.
func (n *Node) IsLeaf() bool {
	return n.Op == None
}

// String returns the canonical text.
func (n *Node) String() string {
	return n.Expr
}

// Better reports whether n satisfies strictly more of the step
// predicates than m. It is used to choose between two trees sharing
// one canonical text.
func (n *Node) Better(m *Node) bool {
	return steps(n) > steps(m)
}

func steps(n *Node) int {
	k := 0
	if n.IntSteps {
		k++
	}
	if n.PosSteps {
		k++
	}
	return k
}
