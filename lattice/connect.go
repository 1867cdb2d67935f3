package lattice

import (
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// walker is a breadth-first reachability pass over a transducer's arcs.
type walker struct {
	t     fst.Transducer
	queue []int
	seen  []bool
}

// reach returns the states reachable from start.
func reach(t fst.Transducer, start int) []bool {
	w := &walker{t: t, queue: make([]int, 0, t.NStates()), seen: make([]bool, t.NStates())}
	w.enqueue(start)
	w.loop()
	return w.seen
}

func (w *walker) enqueue(v int) {
	w.seen[v] = true
	w.queue = append(w.queue, v)
}

// loop processes the queue until empty.
func (w *walker) loop() {
	for len(w.queue) > 0 {
		v := w.queue[0]
		w.queue = w.queue[1:]
		a := w.t.Arcs(v)
		for k := 0; k < a.Len(); k++ {
			if !w.seen[a.Targets[k]] {
				w.enqueue(a.Targets[k])
			}
		}
	}
}

// Connect trims t to the states lying on some start → accept path and returns
// the trimmed copy with the old → new state mapping (-1 for dropped states).
// The start state is always kept, so a transducer without any accepting path
// trims to a single non-accepting state.
//
// Complexity: O(V + E).
func Connect(t fst.Transducer) (*fst.Standard, []int, error) {
	if t == nil {
		return nil, nil, ErrNilTransducer
	}
	n := t.NStates()
	out := fst.NewStandard()
	if n == 0 {
		return out, nil, nil
	}
	// Reverse arcs lead from the fan-out state n to every accepting state.
	rev, err := fst.ReverseCopy(t)
	if err != nil {
		return nil, nil, err
	}
	fwd, bwd := reach(t, t.Start()), reach(rev, n)

	ids := make([]int, n)
	for i := range ids {
		ids[i] = -1
		if (fwd[i] && bwd[i]) || i == t.Start() {
			ids[i] = out.NewState()
		}
	}
	var (
		i, k int
		a    fst.Arcs
	)
	for i = 0; i < n; i++ {
		if ids[i] < 0 {
			continue
		}
		a = t.Arcs(i)
		for k = 0; k < a.Len(); k++ {
			if ids[a.Targets[k]] < 0 {
				continue
			}
			if err = out.AddTransition(ids[i], ids[a.Targets[k]], a.Outputs[k], a.Costs[k], a.Inputs[k]); err != nil {
				return nil, nil, fmt.Errorf("lattice: connect state %d: %w", i, err)
			}
		}
		if c := t.AcceptCost(i); fst.IsAccepting(c) {
			_ = out.SetAccept(ids[i], c)
		}
	}
	return out, ids, out.SetStart(ids[t.Start()])
}
