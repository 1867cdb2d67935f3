// Package beam implements fixed-width beam search over transducers.
//
// Beam search is an approximation by design. Each step keeps only the
// Width cheapest partial paths (one per frontier vertex), so a prefix that
// would have become globally optimal after further extension can be dropped.
// Use astar when exactness matters; use beam when the composed space is too
// large to search exactly within a line's latency budget.
//
// A wider beam is not monotonically better either: extra slots can admit
// cheap prefixes that push a later winner out of the next step. What does
// hold:
//
//   - With Width ≥ NStates() and MaxSteps ≥ NStates() the result is optimal.
//   - The returned path uses the same layout as astar results: one entry per
//     vertex, the last being the accept jump.
//
// Complexity:
//
//   - Time:  O(MaxSteps · Width · d · log Width), d = max out-degree.
//   - Space: O(MaxSteps · Width) trails in the worst case; trails not on a
//     retained hypothesis become garbage after each step.
package beam

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/ocrolath/fst"
)

// Search runs beam search over t and returns the best accepting path found.
//
// A step first checks every retained trail for acceptance, lowering the bound
// when trail.Cost + acceptCost(vertex) improves it, then expands every arc
// whose cost stays strictly below bound - trail.Cost, keeping the best Width
// expansions by distinct target vertex. The search stops when the beam
// empties or MaxSteps steps have been taken.
//
// found is false when no trail ever reached acceptance.
func Search(t fst.Transducer, opts ...Option) (fst.Path, bool, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return fst.Path{}, false, err
	}
	s, err := newSearcher(t, cfg)
	if err != nil {
		return fst.Path{}, false, err
	}
	best, ok := s.run()
	if !ok {
		return fst.Path{}, false, nil
	}
	return best.Path(s.acceptCost(best.Vertex)), true, nil
}

// searcher holds the configuration of one beam search.
type searcher struct {
	t        fst.Transducer
	start    int
	finish   int
	width    int
	maxSteps int
}

func newSearcher(t fst.Transducer, cfg Options) (*searcher, error) {
	if t == nil {
		return nil, ErrNilTransducer
	}
	n := t.NStates()
	if n == 0 {
		return nil, ErrEmptyTransducer
	}
	start := t.Start()
	if cfg.Start >= 0 {
		start = cfg.Start
	}
	if start >= n {
		return nil, fmt.Errorf("%w: start %d not in [0,%d)", ErrOptionViolation, start, n)
	}
	if cfg.Finish >= n {
		return nil, fmt.Errorf("%w: finish %d not in [0,%d)", ErrOptionViolation, cfg.Finish, n)
	}
	return &searcher{t: t, start: start, finish: cfg.Finish, width: cfg.Width, maxSteps: cfg.MaxSteps}, nil
}

// acceptCost applies the finish override.
func (s *searcher) acceptCost(node int) float64 {
	if s.finish >= 0 {
		if node == s.finish {
			return 0
		}
		return fst.Inf
	}
	return s.t.AcceptCost(node)
}

// run performs the beam steps and returns the best accepted trail.
func (s *searcher) run() (*Trail, bool) {
	var (
		best  *Trail
		bound = fst.Inf
		cur   = []*Trail{root(s.start)}
	)
	for step := 0; len(cur) > 0; step++ {
		for _, tr := range cur {
			c := s.acceptCost(tr.Vertex)
			if !fst.IsAccepting(c) {
				continue
			}
			if total := tr.Cost + c; total < bound {
				bound, best = total, tr
			}
		}
		if step == s.maxSteps {
			break
		}
		cur = s.expand(cur, bound)
	}
	return best, best != nil
}

// expand builds the next beam from cur. Arcs that cannot beat bound are
// skipped before a trail is allocated for them.
func (s *searcher) expand(cur []*Trail, bound float64) []*Trail {
	next := newNBest(s.width)
	var (
		k    int
		cost float64
	)
	for _, tr := range cur {
		a := s.t.Arcs(tr.Vertex)
		for k = 0; k < a.Len(); k++ {
			if a.Costs[k] >= bound-tr.Cost {
				continue
			}
			cost = tr.Cost + a.Costs[k]
			if !next.admits(a.Targets[k], cost) {
				continue
			}
			next.Offer(tr.Extend(a.Inputs[k], a.Targets[k], a.Outputs[k], a.Costs[k]))
		}
	}
	return next.Trails()
}

// sortTrails orders trails by cost, then vertex.
func sortTrails(ts []*Trail) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Cost != ts[j].Cost {
			return ts[i].Cost < ts[j].Cost
		}
		return ts[i].Vertex < ts[j].Vertex
	})
}
