package expr

import (
	"fmt"

	"zappem.net/pub/math/numexpr/frac"
)

// Op is one of the four arithmetic operators, or None for a leaf.
type Op int8

const (
	None Op = iota
	Add
	Sub
	Mul
	Div
)

var allOps = [...]Op{Add, Sub, Mul, Div}

// Ops returns the operators in the order the search applies them. The
// slice is a fresh copy.
func Ops() []Op {
	return append([]Op(nil), allOps[:]...)
}

type opInfo struct {
	sym     string
	primary bool
	inverse Op
	fn      func(a, b frac.Frac) frac.Frac
}

var opTable = [...]opInfo{
	None: {sym: "?", inverse: None},
	Add:  {sym: "+", primary: true, inverse: Sub, fn: frac.Frac.Add},
	Sub:  {sym: "-", inverse: Add, fn: frac.Frac.Sub},
	Mul:  {sym: "*", primary: true, inverse: Div, fn: frac.Frac.Mul},
	Div:  {sym: "/", inverse: Mul, fn: frac.Frac.Div},
}

func (op Op) info() opInfo {
	if op < 0 || int(op) >= len(opTable) {
		panic(fmt.Sprintf("expr: invalid operator %d", op))
	}
	return opTable[op]
}

// String returns the symbol of the operator.
func (op Op) String() string {
	return op.info().sym
}

// Primary indicates + or *.
func (op Op) Primary() bool {
	return op.info().primary
}

// Inverse returns the operator paired with op: + with -, * with /.
func (op Op) Inverse() Op {
	return op.info().inverse
}

// PrimaryOf returns op if it is primary, else its inverse.
func (op Op) PrimaryOf() Op {
	if op.Primary() {
		return op
	}
	return op.Inverse()
}

// Apply combines two values with op.
func (op Op) Apply(a, b frac.Frac) frac.Frac {
	fn := op.info().fn
	if fn == nil {
		panic("expr: Apply on a leaf")
	}
	return fn(a, b)
}

// ParseOp maps an operator symbol to its Op.
func ParseOp(sym string) (Op, error) {
	switch sym {
	case "+":
		return Add, nil
	case "-", "−":
		return Sub, nil
	case "*", "×":
		return Mul, nil
	case "/", "÷":
		return Div, nil
	}
	return None, fmt.Errorf("unknown operator %q", sym)
}

// Rules holds the switches that force associativity and commutativity
// off for every operator. The zero value treats + and * as associative
// and commutative.
type Rules struct {
	NoAssociative bool
	NoCommutative bool
}

// Associative reports whether chains of op may be regrouped.
func (r Rules) Associative(op Op) bool {
	return !r.NoAssociative && op.Primary()
}

// Commutative reports whether operands of op may be reordered.
func (r Rules) Commutative(op Op) bool {
	return !r.NoCommutative && op.Primary()
}
