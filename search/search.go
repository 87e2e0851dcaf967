// Package search enumerates every canonical expression that uses each
// of a list of input numbers exactly once.
//
// The search is a dynamic program over sets of input positions. The
// expressions reachable from a set are built from every split of the
// set into two non-empty halves, combining every expression of one
// half with every expression of the other under every operator. Each
// set is computed once, smallest sets first, and never changes after.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math/bits"

	"zappem.net/pub/math/numexpr/expr"
	"zappem.net/pub/math/numexpr/frac"
)

// MaxInputs is the most input positions a Set can hold.
const MaxInputs = 63

var (
	// ErrNoInputs is returned by Run for an empty input list.
	ErrNoInputs = errors.New("no input numbers")
	// ErrTooManyInputs is returned by Run for more than MaxInputs inputs.
	ErrTooManyInputs = errors.New("too many input numbers")
)

// Set is a set of input positions, bit i standing for input i.
type Set uint64

// Len returns the number of positions in s.
func (s Set) Len() int {
	return bits.OnesCount64(uint64(s))
}

// low returns the lowest position of s as a Set.
func (s Set) low() Set {
	return s & -s
}

// Search holds the configuration of an enumeration. A Search may be
// reused; every Run starts from an empty memo.
type Search struct {
	canon   *expr.Canonicalizer
	ops     []expr.Op
	log     *slog.Logger
	metrics *Metrics
}

// Option configures a Search.
type Option func(*Search)

// WithOps restricts the operators tried. The default is all four.
func WithOps(ops ...expr.Op) Option {
	return func(s *Search) {
		s.ops = append([]expr.Op(nil), ops...)
	}
}

// WithLogger sets the logger used for progress at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(s *Search) {
		s.log = l
	}
}

// WithMetrics records search counters in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Search) {
		s.metrics = m
	}
}

// New returns a Search combining nodes with c.
func New(c *expr.Canonicalizer, opts ...Option) *Search {
	s := &Search{
		canon: c,
		ops:   expr.Ops(),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// reach is the deduplicated set of nodes reachable from one Set, in
// the order they were first produced.
type reach struct {
	nodes []*expr.Node
	index map[string]int
}

func newReach() *reach {
	return &reach{index: make(map[string]int)}
}

// add inserts n unless a node with the same text is present. When the
// texts match, the node satisfying more step predicates is kept. A
// text shared by two different values is a canonicalization defect
// and panics.
func (r *reach) add(n *expr.Node) bool {
	i, ok := r.index[n.Expr]
	if !ok {
		r.index[n.Expr] = len(r.nodes)
		r.nodes = append(r.nodes, n)
		return true
	}
	old := r.nodes[i]
	if !old.Value.Equal(n.Value) {
		panic(fmt.Sprintf("search: canonical text %q has two values: %v and %v", n.Expr, old.Value, n.Value))
	}
	if n.Better(old) {
		r.nodes[i] = n
	}
	return false
}

// Run returns the nodes reachable using all of inputs, each exactly
// once. The order of the result is deterministic but carries no
// meaning.
func (s *Search) Run(inputs []frac.Frac) ([]*expr.Node, error) {
	k := len(inputs)
	if k == 0 {
		return nil, ErrNoInputs
	}
	if k > MaxInputs {
		return nil, fmt.Errorf("%d numbers, at most %d: %w", k, MaxInputs, ErrTooManyInputs)
	}

	memo := make(map[Set]*reach)
	for i, v := range inputs {
		r := newReach()
		r.add(expr.Leaf(v))
		memo[Set(1)<<i] = r
	}
	s.metrics.subsets(k)

	for size := 2; size <= k; size++ {
		sets := subsets(k, size)
		nodes := 0
		for _, set := range sets {
			r := newReach()
			low := set.low()
			// Visit each unordered split {a, b} once: a holds the
			// lowest position of set.
			for a := (set - 1) & set; a != 0; a = (a - 1) & set {
				if a&low == 0 {
					continue
				}
				s.combine(r, memo[a], memo[set^a])
			}
			memo[set] = r
			nodes += len(r.nodes)
		}
		s.metrics.subsets(len(sets))
		s.log.Debug("search level done", "size", size, "subsets", len(sets), "nodes", nodes)
	}

	full := memo[Set(1)<<k-1]
	s.metrics.reachable(len(full.nodes))
	return full.nodes, nil
}

// combine adds every combination of a node of a with a node of b to r.
// Operand order is tried both ways unless the operator commutes, in
// which case the canonical text is the same either way.
func (s *Search) combine(r, a, b *reach) {
	rules := s.canon.Rules()
	for _, x := range a.nodes {
		for _, y := range b.nodes {
			for _, op := range s.ops {
				s.insert(r, s.canon.Combine(op, x, y))
				if !rules.Commutative(op) {
					s.insert(r, s.canon.Combine(op, y, x))
				}
			}
		}
	}
}

func (s *Search) insert(r *reach, n *expr.Node) {
	s.metrics.combination()
	if !r.add(n) {
		s.metrics.duplicate()
	}
}

// subsets lists, in increasing order, every Set of size positions
// drawn from the first k.
func subsets(k, size int) []Set {
	var out []Set
	limit := Set(1) << k
	for x := Set(1)<<size - 1; x < limit; {
		out = append(out, x)
		c := x.low()
		r := x + c
		x = (((r ^ x) >> 2) / c) | r
	}
	return out
}
