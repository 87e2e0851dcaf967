package tally

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zappem.net/pub/math/numexpr/expr"
	"zappem.net/pub/math/numexpr/frac"
	"zappem.net/pub/math/numexpr/search"
)

func enumerate(t *testing.T, rules expr.Rules, ns ...int64) []*expr.Node {
	t.Helper()
	var in []frac.Frac
	for _, n := range ns {
		in = append(in, frac.Int(n))
	}
	nodes, err := search.New(expr.New(expr.Shallow, rules)).Run(in)
	require.NoError(t, err)
	return nodes
}

func exprs(r *Result) []string {
	var s []string
	for _, e := range r.Exprs {
		s = append(s, e.Expr)
	}
	return s
}

func freqs(r *Result) []string {
	var s []string
	for _, f := range r.Freqs {
		s = append(s, f.Value.String())
	}
	return s
}

func ptr(f frac.Frac) *frac.Frac { return &f }

func count(n int) *int { return &n }

func TestAggregateAll(t *testing.T) {
	r, err := Aggregate(enumerate(t, expr.Rules{}, 1, 2), Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"(1 * 2)", "(1 + 2)", "(1 - 2)", "(1 / 2)", "(2 - 1)", "(2 / 1)"}, exprs(r))
	assert.Equal(t, []string{"-1", "1/2", "1", "3", "2"}, freqs(r))
	assert.Equal(t, 2, r.Count(frac.Int(2)))
	assert.Equal(t, 0, r.Count(frac.Int(9)))
}

func TestFrequencyFilter(t *testing.T) {
	r, err := Aggregate(enumerate(t, expr.Rules{}, 1, 2), Filter{Frequency: count(1)})
	require.NoError(t, err)
	assert.Equal(t, []string{"-1", "1/2", "1", "3"}, freqs(r))
	for _, f := range r.Freqs {
		assert.Equal(t, 1, f.Count)
	}
	assert.Equal(t, []string{"(1 + 2)", "(1 - 2)", "(1 / 2)", "(2 - 1)"}, exprs(r))

	r, err = Aggregate(enumerate(t, expr.Rules{}, 1, 2), Filter{Frequency: count(3)})
	require.NoError(t, err)
	assert.Empty(t, r.Freqs)
	assert.Empty(t, r.Exprs)

	// no value occurs zero times
	r, err = Aggregate(enumerate(t, expr.Rules{}, 1, 2), Filter{Frequency: count(0)})
	require.NoError(t, err)
	assert.Empty(t, r.Freqs)
	assert.Empty(t, r.Exprs)
}

func TestCommutativeDedup(t *testing.T) {
	five := ptr(frac.Int(5))

	r, err := Aggregate(enumerate(t, expr.Rules{}, 2, 3), Filter{Value: five})
	require.NoError(t, err)
	assert.Equal(t, []string{"(2 + 3)"}, exprs(r))
	assert.Equal(t, 1, r.Count(*five))

	r, err = Aggregate(enumerate(t, expr.Rules{NoCommutative: true}, 2, 3), Filter{Value: five})
	require.NoError(t, err)
	assert.Equal(t, []string{"(2 + 3)", "(3 + 2)"}, exprs(r))
	assert.Equal(t, 2, r.Count(*five))
}

func TestDivideByZero(t *testing.T) {
	undef := ptr(frac.Undefined())

	r, err := Aggregate(enumerate(t, expr.Rules{}, 1, 1, 1), Filter{Value: undef})
	require.NoError(t, err)
	assert.Contains(t, exprs(r), "(1 / (1 - 1))")
	assert.NotContains(t, exprs(r), "(1 - 1)")
	for _, e := range r.Exprs {
		assert.True(t, e.Value.IsUndefined(), e.Expr)
	}
	assert.Equal(t, []string{"undefined"}, freqs(r))

	r, err = Aggregate(enumerate(t, expr.Rules{}, 1, 1), Filter{Value: undef})
	require.NoError(t, err)
	assert.Empty(t, r.Exprs)
}

func TestIntegerAndPositive(t *testing.T) {
	nodes := enumerate(t, expr.Rules{}, 1, 2, 2)
	all, err := Aggregate(nodes, Filter{})
	require.NoError(t, err)

	vs := []struct {
		name string
		f    Filter
		in   []string
		out  []string
	}{
		{"int", Filter{IntOnly: true}, []string{"((1 / 2) * 2)"}, []string{"(1 / (2 + 2))"}},
		{"int-steps", Filter{IntSteps: true}, []string{"(1 + 2 + 2)"}, []string{"((1 / 2) * 2)"}},
		{"pos", Filter{PosOnly: true}, []string{"((1 - 2) + 2)"}, []string{"(1 - (2 + 2))"}},
		{"pos-steps", Filter{PosSteps: true}, []string{"(1 + 2 + 2)"}, []string{"((1 - 2) + 2)"}},
	}
	for _, v := range vs {
		t.Run(v.name, func(t *testing.T) {
			r, err := Aggregate(nodes, v.f)
			require.NoError(t, err)
			got := exprs(r)
			assert.Less(t, len(got), len(all.Exprs))
			for _, e := range v.in {
				assert.Contains(t, got, e)
			}
			for _, e := range v.out {
				assert.NotContains(t, got, e)
			}
			for _, e := range r.Exprs {
				if v.f.IntOnly || v.f.IntSteps {
					assert.True(t, e.Value.IsInteger(), e.Expr)
				}
				if v.f.PosOnly || v.f.PosSteps {
					assert.True(t, e.Value.IsPositive(), e.Expr)
				}
			}
		})
	}
}

func TestOrdering(t *testing.T) {
	nodes := []*expr.Node{
		{Expr: "c", Value: frac.Undefined()},
		{Expr: "a", Value: frac.Int(5)},
		{Expr: "b", Value: frac.Int(-1)},
		{Expr: "d", Value: frac.New(1, 2)},
		{Expr: "e", Value: frac.New(1, 2)},
	}
	r, err := Aggregate(nodes, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, exprs(r))
	assert.Equal(t, []string{"-1", "5", "undefined", "1/2"}, freqs(r))
}

func TestConflict(t *testing.T) {
	nodes := []*expr.Node{
		{Expr: "(x)", Value: frac.Int(1)},
		{Expr: "(x)", Value: frac.Int(1)},
	}
	r, err := Aggregate(nodes, Filter{})
	require.NoError(t, err)
	assert.Len(t, r.Exprs, 1)
	assert.Equal(t, 1, r.Count(frac.Int(1)))

	nodes = append(nodes, &expr.Node{Expr: "(x)", Value: frac.Int(2)})
	_, err = Aggregate(nodes, Filter{})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorContains(t, err, `"(x)"`)
}
