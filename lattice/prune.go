package lattice

import (
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// PruneBestArcs returns a copy of t keeping, for every (source, target) pair,
// only the cheapest arc (the first one on ties). Kept arcs stay in their
// original order. Best-path costs are unchanged.
//
// Complexity: O(V + E).
func PruneBestArcs(t fst.Transducer) (*fst.Standard, error) {
	if t == nil {
		return nil, ErrNilTransducer
	}
	out := fst.NewStandard()
	n := t.NStates()
	out.NewStates(n)
	best := make(map[int]int)
	var (
		i, k int
		a    fst.Arcs
	)
	for i = 0; i < n; i++ {
		a = t.Arcs(i)
		clear(best)
		for k = 0; k < a.Len(); k++ {
			if j, ok := best[a.Targets[k]]; !ok || a.Costs[k] < a.Costs[j] {
				best[a.Targets[k]] = k
			}
		}
		for k = 0; k < a.Len(); k++ {
			if best[a.Targets[k]] != k {
				continue
			}
			if err := out.AddTransition(i, a.Targets[k], a.Outputs[k], a.Costs[k], a.Inputs[k]); err != nil {
				return nil, fmt.Errorf("lattice: prune state %d: %w", i, err)
			}
		}
		if c := t.AcceptCost(i); fst.IsAccepting(c) {
			_ = out.SetAccept(i, c)
		}
	}
	if n > 0 {
		if err := out.SetStart(t.Start()); err != nil {
			return nil, err
		}
	}
	return out, nil
}
