package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ocrolath/astar"
	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/lattice"
)

func TestInsert_SplicesBetweenStates(t *testing.T) {
	dst := fst.NewStandard()
	dst.NewStates(2)
	require.NoError(t, dst.SetAccept(1, 0.5))

	src, err := lattice.FromText("hi")
	require.NoError(t, err)
	require.NoError(t, src.SetAccept(2, 0.25))

	require.NoError(t, lattice.Insert(dst, src, 0, 1, 1))
	require.Equal(t, 5, dst.NStates())
	for i := 2; i < 5; i++ {
		require.False(t, fst.IsAccepting(dst.AcceptCost(i)), "copied state %d must not accept", i)
	}

	labels, cost, ok, err := astar.BestPath(dst)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hi", lattice.Text(labels))
	require.Equal(t, 1.75, cost, "entry 1 + exit 0.25 + accept 0.5")
}

func TestInsert_Validation(t *testing.T) {
	dst := fst.NewStandard()
	dst.NewStates(1)
	src, err := lattice.FromText("a")
	require.NoError(t, err)

	require.ErrorIs(t, lattice.Insert(nil, src, 0, 0, 0), lattice.ErrNilTransducer)
	require.ErrorIs(t, lattice.Insert(dst, nil, 0, 0, 0), lattice.ErrNilTransducer)
	require.ErrorIs(t, lattice.Insert(dst, src, 0, 3, 0), fst.ErrStateOutOfRange)
	require.ErrorIs(t, lattice.Insert(dst, fst.NewStandard(), 0, 0, 0), fst.ErrEmptyOperand)
	require.ErrorIs(t, lattice.Insert(dst, src, 0, 0, -1), fst.ErrNegativeCost)
}

func TestUnion(t *testing.T) {
	a, err := lattice.FromText("ab")
	require.NoError(t, err)
	b, err := lattice.FromText("cd")
	require.NoError(t, err)
	require.NoError(t, a.SetAccept(2, 1))

	u, err := lattice.Union(a, b)
	require.NoError(t, err)
	labels, cost, ok, err := astar.BestPath(u)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "cd", lattice.Text(labels))
	require.Zero(t, cost)

	_, err = lattice.Union(a, nil)
	require.ErrorIs(t, err, lattice.ErrNilTransducer)
}

func TestBunch(t *testing.T) {
	s, err := lattice.Bunch(
		lattice.Alternative{Text: "cat", Cost: 1},
		lattice.Alternative{Text: "car", Cost: 0.5},
		lattice.Alternative{Text: "", Cost: 2},
	)
	require.NoError(t, err)
	labels, cost, ok, err := astar.BestPath(s)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "car", lattice.Text(labels))
	require.Equal(t, 0.5, cost)

	// A lone empty alternative spells the empty string.
	s, err = lattice.Bunch(lattice.Alternative{Text: ""})
	require.NoError(t, err)
	labels, cost, ok, err = astar.BestPath(s)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, labels)
	require.Zero(t, cost)

	_, err = lattice.Bunch()
	require.ErrorIs(t, err, lattice.ErrNoChoices)
}
