package fst_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ocrolath/fst"
)

// ComposeSuite exercises the lazy composition view.
type ComposeSuite struct {
	suite.Suite
	left  *fst.Standard
	right *fst.Standard
}

func (s *ComposeSuite) SetupTest() {
	// left: 0 -(1:a/1)-> 1 -(2:b/2)-> 2, plus 0 -(3:ε/0.5)-> 1
	s.left = fst.NewStandard()
	s.left.NewStates(3)
	require.NoError(s.T(), s.left.AddTransition(0, 1, 'a', 1, 1))
	require.NoError(s.T(), s.left.AddTransition(1, 2, 'b', 2, 2))
	require.NoError(s.T(), s.left.AddTransition(0, 1, fst.Epsilon, 0.5, 3))
	require.NoError(s.T(), s.left.SetAccept(2, 0))

	// right: identity on a and b with a one-state loop, plus an ε-input arc.
	s.right = fst.NewStandard()
	s.right.NewStates(2)
	require.NoError(s.T(), s.right.AddTransition(0, 0, 'b', 0, 'b'))
	require.NoError(s.T(), s.right.AddTransition(0, 0, 'a', 0, 'a'))
	require.NoError(s.T(), s.right.AddTransition(0, 1, '#', 0.25, fst.Epsilon))
	require.NoError(s.T(), s.right.SetAccept(0, 0.5))
}

func (s *ComposeSuite) TestRejectsEmptyOperands() {
	_, err := fst.Compose(fst.NewStandard(), s.right)
	require.ErrorIs(s.T(), err, fst.ErrEmptyOperand)
	_, err = fst.Compose(s.left, fst.NewStandard())
	require.ErrorIs(s.T(), err, fst.ErrEmptyOperand)
	_, err = fst.Compose(nil, s.right)
	require.ErrorIs(s.T(), err, fst.ErrNilTransducer)
	_, err = fst.Compose(s.left, s.right, fst.WithFinishOverride(3))
	require.ErrorIs(s.T(), err, fst.ErrStateOutOfRange)
}

func (s *ComposeSuite) TestIndexing() {
	c, err := fst.Compose(s.left, s.right)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 6, c.NStates())
	require.Equal(s.T(), 0, c.Start())
	for i := 0; i < c.NStates(); i++ {
		i1, i2 := c.Split(i)
		require.Equal(s.T(), i, c.Pairing().Combine(i1, i2))
	}
	i1, i2 := c.Split(5)
	require.Equal(s.T(), 2, i1)
	require.Equal(s.T(), 1, i2)
}

func (s *ComposeSuite) TestAcceptCost() {
	c, err := fst.Compose(s.left, s.right)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0.5, c.AcceptCost(c.Pairing().Combine(2, 0)))
	require.False(s.T(), fst.IsAccepting(c.AcceptCost(c.Pairing().Combine(2, 1))))
	require.False(s.T(), fst.IsAccepting(c.AcceptCost(c.Pairing().Combine(1, 0))))

	pinned, err := fst.Compose(s.left, s.right, fst.WithFinishOverride(1), fst.WithStartOverride(1))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0.5, pinned.AcceptCost(pinned.Pairing().Combine(1, 0)))
	require.False(s.T(), fst.IsAccepting(pinned.AcceptCost(pinned.Pairing().Combine(2, 0))))
	require.Equal(s.T(), pinned.Pairing().Combine(1, 0), pinned.Start())
}

func (s *ComposeSuite) TestArcsMergeJoin() {
	c, err := fst.Compose(s.left, s.right)
	require.NoError(s.T(), err)
	p := c.Pairing()

	a := c.Arcs(p.Combine(0, 0))
	// left ε-output arc, right ε-input arc, then the 'a' match.
	require.Equal(s.T(), []int{3, fst.Epsilon, 1}, a.Inputs)
	require.Equal(s.T(), []int{fst.Epsilon, '#', 'a'}, a.Outputs)
	require.Equal(s.T(), []int{p.Combine(1, 0), p.Combine(0, 1), p.Combine(1, 0)}, a.Targets)
	require.Equal(s.T(), []float64{0.5, 0.25, 1}, a.Costs)

	b := c.Arcs(p.Combine(1, 0))
	require.Equal(s.T(), []int{fst.Epsilon, 2}, b.Inputs)
	require.Equal(s.T(), []int{'#', 'b'}, b.Outputs)
	require.Equal(s.T(), []int{p.Combine(1, 1), p.Combine(2, 0)}, b.Targets)
	require.Equal(s.T(), []float64{0.25, 2}, b.Costs)

	// Right state 1 has no arcs: only left ε-output arcs survive.
	d := c.Arcs(p.Combine(0, 1))
	require.Equal(s.T(), 1, d.Len())
	require.Equal(s.T(), p.Combine(1, 1), d.Targets[0])
}

func (s *ComposeSuite) TestMergeJoinEmitsAllPairsInRun() {
	l := fst.NewStandard()
	l.NewStates(3)
	require.NoError(s.T(), l.AddTransition(0, 1, 'x', 1, 10))
	require.NoError(s.T(), l.AddTransition(0, 2, 'x', 2, 11))
	require.NoError(s.T(), l.AddTransition(0, 2, 'z', 9, 12))
	r := fst.NewStandard()
	r.NewStates(3)
	require.NoError(s.T(), r.AddTransition(0, 1, 'X', 0.5, 'x'))
	require.NoError(s.T(), r.AddTransition(0, 2, 'Y', 0.25, 'x'))
	require.NoError(s.T(), r.AddTransition(0, 2, 'W', 0.25, 'w'))

	c, err := fst.Compose(l, r)
	require.NoError(s.T(), err)
	a := c.Arcs(0)
	require.Equal(s.T(), 4, a.Len())
	require.Equal(s.T(), []int{10, 10, 11, 11}, a.Inputs)
	require.Equal(s.T(), []int{'X', 'Y', 'X', 'Y'}, a.Outputs)
	require.Equal(s.T(), []float64{1.5, 1.25, 2.5, 2.25}, a.Costs)
	p := c.Pairing()
	require.Equal(s.T(), []int{p.Combine(1, 1), p.Combine(1, 2), p.Combine(2, 1), p.Combine(2, 2)}, a.Targets)
}

func (s *ComposeSuite) TestNotPersistable() {
	c, err := fst.Compose(s.left, s.right)
	require.NoError(s.T(), err)
	require.ErrorIs(s.T(), c.Save("x.fst"), fst.ErrUnsupported)
	require.ErrorIs(s.T(), c.Load("x.fst"), fst.ErrUnsupported)
}

func TestComposeSuite(t *testing.T) {
	suite.Run(t, new(ComposeSuite))
}
