package astar

import (
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// finishView pins acceptance of a transducer to a single state.
type finishView struct {
	fst.Transducer
	finish int
}

func (v finishView) AcceptCost(node int) float64 {
	if node == v.finish {
		return 0
	}
	return fst.Inf
}

// Backward returns, for every state of t, the exact cost of the cheapest path
// from that state to acceptance (+Inf where acceptance is unreachable).
//
// The distances come from a zero-heuristic search over fst.ReverseCopy(t)
// started at its auxiliary fan-out state. The search drains the whole heap,
// so every entry is final, not a tentative upper bound.
//
// Complexity: O((V + E) log V).
func Backward(t fst.Transducer) ([]float64, error) {
	return BackwardTo(t, -1)
}

// BackwardTo is Backward with acceptance pinned to finish (cost 0) when
// finish ≥ 0.
func BackwardTo(t fst.Transducer, finish int) ([]float64, error) {
	if t == nil {
		return nil, ErrNilTransducer
	}
	n := t.NStates()
	if n == 0 {
		return nil, ErrEmptyTransducer
	}
	src := t
	if finish >= 0 {
		if finish >= n {
			return nil, fmt.Errorf("%w: finish %d not in [0,%d)", ErrOptionViolation, finish, n)
		}
		src = finishView{Transducer: t, finish: finish}
	}
	rev, err := fst.ReverseCopy(src)
	if err != nil {
		return nil, fmt.Errorf("astar: backward: %w", err)
	}
	cfg := DefaultOptions()
	cfg.exhaustive = true
	r, err := newRunner(rev, cfg)
	if err != nil {
		return nil, err
	}
	r.loop()
	out := make([]float64, n)
	copy(out, r.g[:n])
	return out, nil
}
