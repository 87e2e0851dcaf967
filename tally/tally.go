// Package tally filters enumerated expressions and counts how many
// distinct expressions produce each value.
package tally

import (
	"errors"
	"fmt"
	"sort"

	"zappem.net/pub/math/numexpr/expr"
	"zappem.net/pub/math/numexpr/frac"
)

// Filter selects the expressions and values to report. The zero
// Filter keeps everything.
type Filter struct {
	// Value, when set, keeps only expressions equal to it. The
	// undefined value selects expressions that divide by zero.
	Value *frac.Frac
	// Frequency, when set, keeps only values produced by exactly this
	// many expressions. A target of 0 keeps nothing.
	Frequency *int

	IntOnly  bool // final value is an integer
	IntSteps bool // every value in the tree is an integer
	PosOnly  bool // final value is positive
	PosSteps bool // every value in the tree is positive
}

// keep applies the per expression filters to n.
func (f Filter) keep(n *expr.Node) bool {
	if f.Value != nil && !n.Value.Equal(*f.Value) {
		return false
	}
	switch {
	case f.IntSteps && !n.IntSteps:
		return false
	case f.IntOnly && !n.Value.IsInteger():
		return false
	case f.PosSteps && !n.PosSteps:
		return false
	case f.PosOnly && !n.Value.IsPositive():
		return false
	}
	return true
}

// wantCount applies the frequency target.
func (f Filter) wantCount(n int) bool {
	return f.Frequency == nil || n == *f.Frequency
}

// Entry is one reported expression.
type Entry struct {
	Expr  string
	Value frac.Frac
}

// Freq is the number of distinct expressions producing Value.
type Freq struct {
	Count int
	Value frac.Frac
}

// Result holds the expressions sorted by text and the frequencies
// sorted by count then value.
type Result struct {
	Exprs []Entry
	Freqs []Freq
}

// ErrConflict indicates two expressions with one text but different
// values.
var ErrConflict = errors.New("conflicting values for one expression")

// Aggregate filters nodes and builds the frequency table.
func Aggregate(nodes []*expr.Node, f Filter) (*Result, error) {
	seen := make(map[string]frac.Frac)
	counts := make(map[string]*Freq)
	var kept []Entry
	for _, n := range nodes {
		if !f.keep(n) {
			continue
		}
		if v, ok := seen[n.Expr]; ok {
			if !v.Equal(n.Value) {
				return nil, fmt.Errorf("%q = %v and %v: %w", n.Expr, v, n.Value, ErrConflict)
			}
			continue
		}
		seen[n.Expr] = n.Value
		kept = append(kept, Entry{Expr: n.Expr, Value: n.Value})

		k := n.Value.Key()
		if c, ok := counts[k]; ok {
			c.Count++
		} else {
			counts[k] = &Freq{Count: 1, Value: n.Value}
		}
	}

	res := &Result{}
	for _, c := range counts {
		if !f.wantCount(c.Count) {
			continue
		}
		res.Freqs = append(res.Freqs, *c)
	}
	sort.Slice(res.Freqs, func(i, j int) bool {
		a, b := res.Freqs[i], res.Freqs[j]
		if a.Count != b.Count {
			return a.Count < b.Count
		}
		return a.Value.Cmp(b.Value) < 0
	})

	for _, e := range kept {
		if !f.wantCount(counts[e.Value.Key()].Count) {
			continue
		}
		res.Exprs = append(res.Exprs, e)
	}
	sort.Slice(res.Exprs, func(i, j int) bool {
		return res.Exprs[i].Expr < res.Exprs[j].Expr
	})
	return res, nil
}

// Count returns the number of expressions reported for v, or 0.
func (r *Result) Count(v frac.Frac) int {
	for _, c := range r.Freqs {
		if c.Value.Equal(v) {
			return c.Count
		}
	}
	return 0
}
