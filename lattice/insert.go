package lattice

import (
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// Insert splices a copy of src into dst between states from and to: an
// epsilon arc costing cost enters the copy's start, and every accepting state
// of the copy leaves for to through an epsilon arc costing its accept cost.
// The copied states are not accepting in dst.
//
// Complexity: O(V + E) of src.
func Insert(dst fst.Mutable, src fst.Transducer, from, to int, cost float64) error {
	if dst == nil || src == nil {
		return ErrNilTransducer
	}
	n := dst.NStates()
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: insert between %d and %d of %d states", fst.ErrStateOutOfRange, from, to, n)
	}
	if src.NStates() == 0 {
		return fmt.Errorf("lattice: insert: %w", fst.ErrEmptyOperand)
	}
	ids := make([]int, src.NStates())
	for i := range ids {
		ids[i] = dst.NewState()
	}
	var (
		i, k int
		a    fst.Arcs
	)
	for i = range ids {
		a = src.Arcs(i)
		for k = 0; k < a.Len(); k++ {
			if err := dst.AddTransition(ids[i], ids[a.Targets[k]], a.Outputs[k], a.Costs[k], a.Inputs[k]); err != nil {
				return fmt.Errorf("lattice: insert arc %d of state %d: %w", k, i, err)
			}
		}
		if c := src.AcceptCost(i); fst.IsAccepting(c) {
			if err := dst.AddTransition(ids[i], to, fst.Epsilon, c, fst.Epsilon); err != nil {
				return err
			}
		}
	}
	return dst.AddTransition(from, ids[src.Start()], fst.Epsilon, cost, fst.Epsilon)
}

// Union returns a transducer accepting exactly what any of parts accepts,
// each part spliced between a shared start and a shared accepting end.
func Union(parts ...fst.Transducer) (*fst.Standard, error) {
	t := fst.NewStandard()
	start, end := t.NewState(), t.NewState()
	for i, p := range parts {
		if err := Insert(t, p, start, end, 0); err != nil {
			return nil, fmt.Errorf("lattice: union part %d: %w", i, err)
		}
	}
	return t, t.SetAccept(end, 0)
}

// Bunch returns the transducer of a set of alternative strings, each path
// charging its alternative's cost on its first arc.
func Bunch(alts ...Alternative) (*fst.Standard, error) {
	if len(alts) == 0 {
		return nil, fmt.Errorf("%w: empty bunch", ErrNoChoices)
	}
	t := fst.NewStandard()
	start, end := t.NewState(), t.NewState()
	for i, alt := range alts {
		last, err := spell(t, start, alt.Text, alt.Cost)
		if err != nil {
			return nil, fmt.Errorf("lattice: bunch alternative %d: %w", i, err)
		}
		if last == start {
			// empty, free alternative
			last = t.NewState()
			if err = t.AddTransition(start, last, fst.Epsilon, 0, fst.Epsilon); err != nil {
				return nil, err
			}
		}
		if err = t.AddTransition(last, end, fst.Epsilon, 0, fst.Epsilon); err != nil {
			return nil, err
		}
	}
	return t, t.SetAccept(end, 0)
}
