package fst_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ocrolath/fst"
)

// chain builds 0 -a-> 1 -b-> 2 ... with the given labels and costs; the last
// state accepts at cost 0.
func chain(t *testing.T, labels []int, costs []float64) *fst.Standard {
	t.Helper()
	s := fst.NewStandard()
	s.NewStates(len(labels) + 1)
	for i, l := range labels {
		require.NoError(t, s.AddTransition(i, i+1, l, costs[i], l))
	}
	require.NoError(t, s.SetAccept(len(labels), 0))
	return s
}

func TestStandard_NewStateDefaults(t *testing.T) {
	s := fst.NewStandard()
	require.Equal(t, 0, s.NStates())
	a := s.NewState()
	b := s.NewState()
	require.Equal(t, 0, a)
	require.Equal(t, 1, b)
	require.False(t, fst.IsAccepting(s.AcceptCost(a)))
	require.Equal(t, 0, len(s.Arcs(a).Targets))
}

func TestStandard_ArcsInInsertionOrder(t *testing.T) {
	s := fst.NewStandard()
	s.NewStates(3)
	require.NoError(t, s.AddTransition(0, 2, 'x', 1.5, 7))
	require.NoError(t, s.AddTransition(0, 1, 'y', 0.5, 8))
	require.NoError(t, s.AddTransition(0, 2, 'x', 1.5, 7)) // duplicates are kept

	a := s.Arcs(0)
	require.Equal(t, []int{7, 8, 7}, a.Inputs)
	require.Equal(t, []int{2, 1, 2}, a.Targets)
	require.Equal(t, []int{'x', 'y', 'x'}, a.Outputs)
	require.Equal(t, []float64{1.5, 0.5, 1.5}, a.Costs)
	require.Equal(t, a, s.Arcs(0), "arc order must be stable across calls")
	require.Equal(t, 3, s.ArcCount())

	// Appending to the returned bundle must not leak into the transducer.
	a.Append(1, 1, 1, 1)
	require.Equal(t, 3, s.Arcs(0).Len())
}

func TestStandard_Validation(t *testing.T) {
	s := fst.NewStandard()
	s.NewStates(2)
	require.ErrorIs(t, s.AddTransition(0, 5, 1, 0, 1), fst.ErrStateOutOfRange)
	require.ErrorIs(t, s.AddTransition(-1, 1, 1, 0, 1), fst.ErrStateOutOfRange)
	require.ErrorIs(t, s.AddTransition(0, 1, fst.MaxLabel, 0, 1), fst.ErrLabelOutOfRange)
	require.ErrorIs(t, s.AddTransition(0, 1, 1, 0, -3), fst.ErrLabelOutOfRange)
	require.ErrorIs(t, s.AddTransition(0, 1, 1, -0.1, 1), fst.ErrNegativeCost)
	require.ErrorIs(t, s.SetAccept(9, 0), fst.ErrStateOutOfRange)
	require.ErrorIs(t, s.SetStart(2), fst.ErrStateOutOfRange)
}

func TestStandard_RescoreFirstMatch(t *testing.T) {
	s := fst.NewStandard()
	s.NewStates(2)
	require.NoError(t, s.AddTransition(0, 1, 'a', 3, 1))
	require.NoError(t, s.AddTransition(0, 1, 'a', 4, 1))
	require.NoError(t, s.Rescore(0, 1, 'a', 1, 0.25))
	require.Equal(t, []float64{0.25, 4}, s.Arcs(0).Costs)

	err := s.Rescore(0, 1, 'b', 1, 1)
	require.True(t, errors.Is(err, fst.ErrArcNotFound))
}

func TestStandard_Clear(t *testing.T) {
	s := chain(t, []int{'a', 'b'}, []float64{1, 2})
	s.Clear()
	require.Equal(t, 0, s.NStates())
	require.Equal(t, 0, s.ArcCount())
	require.Equal(t, fst.Inf, s.AcceptCost(0))
}

func TestRemoveEpsilons(t *testing.T) {
	clean := []int{'c', 'a', 'r'}
	require.Equal(t, clean, fst.RemoveEpsilons(clean))

	noisy := []int{0, 'c', 0, 0, 'a', 'r', 0}
	once := fst.RemoveEpsilons(noisy)
	require.Equal(t, clean, once)
	require.Equal(t, once, fst.RemoveEpsilons(once))
}

func TestPath_CostAndLabels(t *testing.T) {
	p := fst.Path{
		Inputs:   []int{1, 0, 0},
		Outputs:  []int{'o', 0, 0},
		Costs:    []float64{1, 0.5, 0.25},
		Vertices: []int{0, 1, 2},
	}
	require.Equal(t, 3, p.Len())
	require.InDelta(t, 1.75, p.Cost(), 1e-12)
	require.Equal(t, []int{'o'}, p.Labels())
}

func TestReverseCopy(t *testing.T) {
	s := chain(t, []int{'a', 'b'}, []float64{1, 2})
	require.NoError(t, s.SetAccept(1, 5))

	r, err := fst.ReverseCopy(s)
	require.NoError(t, err)
	require.Equal(t, 4, r.NStates())
	require.Equal(t, 3, r.Start())
	require.Equal(t, 0.0, r.AcceptCost(0))
	require.False(t, fst.IsAccepting(r.AcceptCost(2)))

	fan := r.Arcs(3)
	require.Equal(t, []int{1, 2}, fan.Targets)
	require.Equal(t, []float64{5, 0}, fan.Costs)

	back := r.Arcs(2)
	require.Equal(t, []int{1}, back.Targets)
	require.Equal(t, []int{'b'}, back.Outputs)
	require.Equal(t, []float64{2}, back.Costs)
}

func TestCopy_PreservesEverything(t *testing.T) {
	s := chain(t, []int{'a', 'b', 'c'}, []float64{1, 2, 3})
	require.NoError(t, s.SetStart(1))
	c, err := fst.Copy(s)
	require.NoError(t, err)
	require.Equal(t, s.NStates(), c.NStates())
	require.Equal(t, 1, c.Start())
	for i := 0; i < s.NStates(); i++ {
		require.Equal(t, s.Arcs(i), c.Arcs(i))
		require.Equal(t, s.AcceptCost(i), c.AcceptCost(i))
	}
}
