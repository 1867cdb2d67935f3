package beam_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ocrolath/fst"
)

// randomFST builds a small random transducer with integer costs so that path
// sums are exact.
func randomFST(t *testing.T, rng *rand.Rand, n int, density float64) *fst.Standard {
	t.Helper()
	s := fst.NewStandard()
	s.NewStates(n)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if rng.Float64() >= density {
				continue
			}
			l := 1 + rng.Intn(4)
			require.NoError(t, s.AddTransition(u, v, l, float64(rng.Intn(10)), l))
		}
		if rng.Float64() < 0.3 {
			require.NoError(t, s.SetAccept(u, float64(rng.Intn(5))))
		}
	}
	return s
}

// bruteForce returns the cheapest accepting cost over simple paths.
func bruteForce(t fst.Transducer) (float64, bool) {
	best := math.Inf(1)
	onPath := make([]bool, t.NStates())
	var dfs func(v int, cost float64)
	dfs = func(v int, cost float64) {
		if c := t.AcceptCost(v); fst.IsAccepting(c) && cost+c < best {
			best = cost + c
		}
		onPath[v] = true
		a := t.Arcs(v)
		for k := 0; k < a.Len(); k++ {
			if !onPath[a.Targets[k]] {
				dfs(a.Targets[k], cost+a.Costs[k])
			}
		}
		onPath[v] = false
	}
	dfs(t.Start(), 0)
	return best, !math.IsInf(best, 1)
}

type arc struct {
	from, to, label int
	cost            float64
}

// build makes an acceptor from arcs; accepting maps state → accept cost.
func build(t *testing.T, n int, arcs []arc, accepting map[int]float64) *fst.Standard {
	t.Helper()
	s := fst.NewStandard()
	s.NewStates(n)
	for _, a := range arcs {
		require.NoError(t, s.AddTransition(a.from, a.to, a.label, a.cost, a.label))
	}
	for v, c := range accepting {
		require.NoError(t, s.SetAccept(v, c))
	}
	return s
}

// line builds the toy recognition lattice: "ca" followed by t (1.0) or r (0.5).
func line(t *testing.T) *fst.Standard {
	return build(t, 4, []arc{
		{0, 1, 'c', 0.5},
		{1, 2, 'a', 0.5},
		{2, 3, 't', 1.0},
		{2, 3, 'r', 0.5},
	}, map[int]float64{3: 0})
}

// languageModel prefers "cat" over "car".
func languageModel(t *testing.T) *fst.Standard {
	return build(t, 4, []arc{
		{0, 1, 'c', 0},
		{1, 2, 'a', 0},
		{2, 3, 't', 0},
		{2, 3, 'r', 5},
	}, map[int]float64{3: 0})
}
