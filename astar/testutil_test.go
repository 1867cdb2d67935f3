package astar_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ocrolath/fst"
)

// randomFST builds a small random transducer with integer costs so that path
// sums are exact. Labels are drawn from [1, alphabet]; with probability
// epsRate an output label is Epsilon.
func randomFST(t *testing.T, rng *rand.Rand, n int, density, epsRate float64, alphabet int) *fst.Standard {
	t.Helper()
	s := fst.NewStandard()
	s.NewStates(n)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if rng.Float64() >= density {
				continue
			}
			in := 1 + rng.Intn(alphabet)
			out := 1 + rng.Intn(alphabet)
			if rng.Float64() < epsRate {
				out = fst.Epsilon
			}
			require.NoError(t, s.AddTransition(u, v, out, float64(rng.Intn(10)), in))
		}
		if rng.Float64() < 0.3 {
			require.NoError(t, s.SetAccept(u, float64(rng.Intn(5))))
		}
	}
	return s
}

// bruteForce enumerates every simple path from the start and returns the
// cheapest cost + accept cost. Non-negative costs make simple paths suffice.
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

// line builds the toy recognition lattice: "ca" followed by t (1.0) or r (0.5).
func line(t *testing.T) *fst.Standard {
	t.Helper()
	s := fst.NewStandard()
	s.NewStates(4)
	require.NoError(t, s.AddTransition(0, 1, 'c', 0.5, 1))
	require.NoError(t, s.AddTransition(1, 2, 'a', 0.5, 2))
	require.NoError(t, s.AddTransition(2, 3, 't', 1.0, 3))
	require.NoError(t, s.AddTransition(2, 3, 'r', 0.5, 3))
	require.NoError(t, s.SetAccept(3, 0))
	return s
}

// languageModel prefers "cat" over "car".
func languageModel(t *testing.T) *fst.Standard {
	t.Helper()
	s := fst.NewStandard()
	s.NewStates(4)
	require.NoError(t, s.AddTransition(0, 1, 'c', 0, 'c'))
	require.NoError(t, s.AddTransition(1, 2, 'a', 0, 'a'))
	require.NoError(t, s.AddTransition(2, 3, 't', 0, 't'))
	require.NoError(t, s.AddTransition(2, 3, 'r', 5, 'r'))
	require.NoError(t, s.SetAccept(3, 0))
	return s
}
