package lattice

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ocrolath/fst"
)

// Scale returns a copy of t with every arc cost and finite accept cost
// multiplied by factor. Non-accepting states stay non-accepting.
// Language models are scaled this way before composition.
func Scale(t fst.Transducer, factor float64) (*fst.Standard, error) {
	if t == nil {
		return nil, ErrNilTransducer
	}
	if factor < 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadFactor, factor)
	}
	out := fst.NewStandard()
	n := t.NStates()
	out.NewStates(n)
	var (
		i, k int
		a    fst.Arcs
	)
	for i = 0; i < n; i++ {
		a = t.Arcs(i)
		for k = 0; k < a.Len(); k++ {
			if err := out.AddTransition(i, a.Targets[k], a.Outputs[k], scaled(a.Costs[k], factor), a.Inputs[k]); err != nil {
				return nil, fmt.Errorf("lattice: scale state %d: %w", i, err)
			}
		}
		if c := t.AcceptCost(i); fst.IsAccepting(c) {
			_ = out.SetAccept(i, c*factor)
		}
	}
	if n > 0 {
		if err := out.SetStart(t.Start()); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// scaled keeps infinite costs infinite when factor is 0.
func scaled(c, factor float64) float64 {
	if math.IsInf(c, 1) {
		return c
	}
	return c * factor
}
