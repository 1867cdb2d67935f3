package fst

import "fmt"

// Copy materializes src into a fresh Standard with identical state indices,
// start state, accept costs and arc order. Copying a Composition enumerates
// every combined state, so keep that to small operands.
//
// Complexity: O(V + E).
func Copy(src Transducer) (*Standard, error) {
	if src == nil {
		return nil, ErrNilTransducer
	}
	dst := NewStandard()
	n := src.NStates()
	dst.NewStates(n)
	var (
		i, k int
		a    Arcs
		err  error
	)
	for i = 0; i < n; i++ {
		if c := src.AcceptCost(i); IsAccepting(c) {
			if err = dst.SetAccept(i, c); err != nil {
				return nil, err
			}
		}
		a = src.Arcs(i)
		for k = 0; k < a.Len(); k++ {
			if err = dst.AddTransition(i, a.Targets[k], a.Outputs[k], a.Costs[k], a.Inputs[k]); err != nil {
				return nil, fmt.Errorf("copy state %d: %w", i, err)
			}
		}
	}
	if n > 0 {
		if err = dst.SetStart(src.Start()); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// ReverseCopy builds the reversed transducer used for backward distances.
//
// States 0..n-1 mirror src with every arc flipped (labels and costs kept).
// State n is a fresh start that fans out to every accepting src state with an
// epsilon arc costing that state's accept cost. The original start state is
// the only accepting state of the result (cost 0).
//
// Complexity: O(V + E).
func ReverseCopy(src Transducer) (*Standard, error) {
	if src == nil {
		return nil, ErrNilTransducer
	}
	n := src.NStates()
	if n == 0 {
		return nil, fmt.Errorf("%w: reverse", ErrEmptyOperand)
	}
	dst := NewStandard()
	dst.NewStates(n + 1)
	var (
		i, k int
		a    Arcs
		c    float64
		err  error
	)
	for i = 0; i < n; i++ {
		a = src.Arcs(i)
		for k = 0; k < a.Len(); k++ {
			if err = dst.AddTransition(a.Targets[k], i, a.Outputs[k], a.Costs[k], a.Inputs[k]); err != nil {
				return nil, fmt.Errorf("reverse state %d: %w", i, err)
			}
		}
		if c = src.AcceptCost(i); IsAccepting(c) {
			if err = dst.AddTransition(n, i, Epsilon, c, Epsilon); err != nil {
				return nil, err
			}
		}
	}
	if err = dst.SetStart(n); err != nil {
		return nil, err
	}
	if err = dst.SetAccept(src.Start(), 0); err != nil {
		return nil, err
	}
	return dst, nil
}
