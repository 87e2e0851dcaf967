package expr

import (
	"fmt"
	"sort"
	"strings"
)

// Strategy selects how much rewriting the canonical text absorbs.
type Strategy int8

const (
	// Shallow flattens chains of one associative operator and sorts
	// the operands of commutative operators.
	Shallow Strategy = iota
	// Full additionally folds - into + groups and / into * groups.
	Full
)

func (s Strategy) String() string {
	switch s {
	case Shallow:
		return "shallow"
	case Full:
		return "full"
	}
	return fmt.Sprintf("Strategy(%d)", int8(s))
}

// Canonicalizer combines canonical nodes into canonical nodes.
type Canonicalizer struct {
	strategy Strategy
	rules    Rules
}

// New returns a Canonicalizer for the given strategy and rules.
func New(s Strategy, r Rules) *Canonicalizer {
	return &Canonicalizer{strategy: s, rules: r}
}

// Strategy returns the canonicalization strategy of c.
func (c *Canonicalizer) Strategy() Strategy {
	return c.strategy
}

// Rules returns the associativity and commutativity rules of c.
func (c *Canonicalizer) Rules() Rules {
	return c.rules
}

// Combine builds the canonical node for "a op b".
func (c *Canonicalizer) Combine(op Op, a, b *Node) *Node {
	v := op.Apply(a.Value, b.Value)
	n := &Node{
		Value:    v,
		IntSteps: a.IntSteps && b.IntSteps && v.IsInteger(),
		PosSteps: a.PosSteps && b.PosSteps && v.IsPositive(),
	}
	if c.strategy == Full {
		c.full(n, op, a, b)
	} else {
		c.shallow(n, op, a, b)
	}
	return n
}

// shallow fills in n as a single operator group.
func (c *Canonicalizer) shallow(n *Node, op Op, a, b *Node) {
	var xs []string
	if c.rules.Associative(op) {
		xs = group(group(nil, op, a), op, b)
	} else {
		xs = []string{a.Expr, b.Expr}
	}
	if c.rules.Commutative(op) {
		sort.Strings(xs)
	}
	n.Op = op
	n.Pos = xs
	n.Expr = render(op, xs, nil)
}

// group appends the operands of x as seen from an op chain.
func group(xs []string, op Op, x *Node) []string {
	if x.Op == op {
		return append(xs, x.Pos...)
	}
	return append(xs, x.Expr)
}

// full fills in n as a primary operator group with positive and
// negative operand lists.
func (c *Canonicalizer) full(n *Node, op Op, a, b *Node) {
	p := op.PrimaryOf()
	merge := c.rules.Associative(p)

	var pos, neg []string
	if merge && a.Op == p {
		pos = append(pos, a.Pos...)
		neg = append(neg, a.Neg...)
	} else {
		pos = append(pos, a.Expr)
	}

	switch {
	case op == p && merge && b.Op == p:
		pos = append(pos, b.Pos...)
		neg = append(neg, b.Neg...)
	case op == p:
		pos = append(pos, b.Expr)
	case merge && b.Op == p && !(op == Div && b.Value.IsUndefined()):
		// x / (y / z) is x * z / y, but only while y / z is defined:
		// x / (y / 0) is undefined where x * 0 / y is not.
		pos = append(pos, b.Neg...)
		neg = append(neg, b.Pos...)
	default:
		neg = append(neg, b.Expr)
	}

	if c.rules.Commutative(p) {
		sort.Strings(pos)
		sort.Strings(neg)
	}
	n.Op = p
	n.Pos = pos
	n.Neg = neg
	n.Expr = render(p, pos, neg)
}

// render writes "(p1 op p2 inv n1 inv n2)".
func render(op Op, pos, neg []string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(strings.Join(pos, " "+op.String()+" "))
	if len(neg) != 0 {
		inv := " " + op.Inverse().String() + " "
		b.WriteString(inv)
		b.WriteString(strings.Join(neg, inv))
	}
	b.WriteByte(')')
	return b.String()
}
