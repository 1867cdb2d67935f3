// Package astar implements best-first (A*) shortest-path search over
// transducers.
//
// The search finds the cheapest path from the start state to acceptance:
// a virtual accept node (index NStates()) is reached from every accepting
// state through a "jump to accept" pseudo-arc costing that state's accept
// cost. Nodes are kept in an indexed min-heap keyed by g(v) + h(v); the search
// ends successfully when the accept node is popped.
//
// Complexity:
//
//   - Time:  O((V + E) log V) over the states actually explored.
//   - Space: O(V) for g, predecessor and heap-position arrays, where V is
//     NStates() (the full product size for a Composition).
//
// Notes on implementation choices:
//
//   - Arcs are not remembered during relaxation. Path reconstruction rescans
//     each vertex's arcs for the arc to the next vertex whose cost matches
//     g[next]-g[vertex], taking the cheapest such arc, first on ties.
//   - Improved nodes are re-queued even when already expanded, so a merely
//     admissible (not consistent) heuristic still yields optimal results.
//   - The accept pseudo-arc of the start state is relaxed during
//     initialization; a start that accepts immediately is found by the
//     normal loop.
package astar

import (
	"fmt"
	"math"

	"github.com/katalvlaran/ocrolath/fst"
)

// costTolerance is the relative slack used when matching arc costs during
// path reconstruction.
const costTolerance = 1e-6

// Search runs A* over t and returns the cheapest accepting path.
//
// Returns:
//
//   - path:  the reconstructed path (zero value when not found).
//   - found: false if no accepting state (or the WithFinish state) is
//     reachable, or the expansion cap was hit first.
//   - err:   invalid input or options.
//
// A found path may still carry a huge cost (≥ fst.AcceptThreshold) when only
// near-infinite arcs connect start and acceptance; callers should check
// path.Cost() against their own sanity threshold.
func Search(t fst.Transducer, opts ...Option) (fst.Path, bool, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return fst.Path{}, false, err
	}
	r, err := newRunner(t, cfg)
	if err != nil {
		return fst.Path{}, false, err
	}
	if !r.loop() {
		return fst.Path{}, false, nil
	}
	return r.path(), true, nil
}

// runner holds the mutable state of one search.
type runner struct {
	t      fst.Transducer
	n      int // accept node index == t.NStates()
	start  int
	finish int
	h      Heuristic

	g        []float64 // best known distance from start; g[n] is the accept node
	cameFrom []int     // predecessor on the best path, -1 if unseen, self for start
	heap     *indexedHeap

	exhaustive    bool
	maxExpansions int
	expansions    int
}

func newRunner(t fst.Transducer, cfg Options) (*runner, error) {
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
	h := cfg.Heuristic
	if h == nil {
		h = zeroHeuristic
	}
	r := &runner{
		t:             t,
		n:             n,
		start:         start,
		finish:        cfg.Finish,
		h:             h,
		g:             make([]float64, n+1),
		cameFrom:      make([]int, n+1),
		heap:          newIndexedHeap(n + 1),
		exhaustive:    cfg.exhaustive,
		maxExpansions: cfg.MaxExpansions,
	}
	r.init()
	return r, nil
}

// init sets g = +Inf everywhere, queues the start state and relaxes its
// accept pseudo-arc.
func (r *runner) init() {
	for i := range r.g {
		r.g[i] = math.Inf(1)
		r.cameFrom[i] = -1
	}
	r.g[r.start] = 0
	r.cameFrom[r.start] = r.start
	r.heap.Push(r.start, r.h(r.start))
	r.relaxAccept(r.start)
}

// acceptCost applies the finish override.
func (r *runner) acceptCost(node int) float64 {
	if r.finish >= 0 {
		if node == r.finish {
			return 0
		}
		return fst.Inf
	}
	return r.t.AcceptCost(node)
}

// loop pops nodes until the accept node comes out (true) or the heap
// empties (false). In exhaustive mode it always drains the heap.
func (r *runner) loop() bool {
	var node int
	for r.heap.Len() > 0 {
		node, _ = r.heap.Pop()
		if node == r.n {
			if r.exhaustive {
				continue
			}
			return true
		}
		if r.maxExpansions > 0 && r.expansions >= r.maxExpansions {
			return false
		}
		r.expansions++
		r.relax(node)
		r.relaxAccept(node)
	}
	return r.exhaustive && r.cameFrom[r.n] >= 0
}

// relax improves the distance of every arc target of node.
func (r *runner) relax(node int) {
	a := r.t.Arcs(node)
	base := r.g[node]
	var (
		k, v   int
		nd, hv float64
	)
	for k = 0; k < a.Len(); k++ {
		v = a.Targets[k]
		nd = base + a.Costs[k]
		if nd >= r.g[v] {
			continue
		}
		r.g[v] = nd
		r.cameFrom[v] = node
		hv = r.h(v)
		if math.IsInf(hv, 1) {
			continue // v cannot reach acceptance
		}
		r.heap.Push(v, nd+hv)
	}
}

// relaxAccept relaxes the jump-to-accept pseudo-arc of node.
func (r *runner) relaxAccept(node int) {
	c := r.acceptCost(node)
	if !fst.IsAccepting(c) {
		return
	}
	if nd := r.g[node] + c; nd < r.g[r.n] {
		r.g[r.n] = nd
		r.cameFrom[r.n] = node
		r.heap.Push(r.n, nd)
	}
}

// vertices walks cameFrom back from the accept node's predecessor to the
// start and returns the forward vertex sequence.
func (r *runner) vertices() []int {
	var rev []int
	v := r.cameFrom[r.n]
	for steps := 0; steps <= r.n; steps++ {
		rev = append(rev, v)
		if r.cameFrom[v] == v {
			break
		}
		v = r.cameFrom[v]
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// path reconstructs labels and costs along the best path.
func (r *runner) path() fst.Path {
	vs := r.vertices()
	p := fst.Path{
		Inputs:   make([]int, len(vs)),
		Outputs:  make([]int, len(vs)),
		Costs:    make([]float64, len(vs)),
		Vertices: vs,
	}
	last := len(vs) - 1
	for i := 0; i < last; i++ {
		p.Inputs[i], p.Outputs[i], p.Costs[i] = findArc(r.t, vs[i], vs[i+1], r.g[vs[i+1]]-r.g[vs[i]])
	}
	p.Inputs[last], p.Outputs[last] = fst.Epsilon, fst.Epsilon
	p.Costs[last] = r.acceptCost(vs[last])
	return p
}

// findArc returns the labels and cost of the arc from→to whose cost matches
// want, preferring the cheapest match and the first one on ties. Without any
// match inside the tolerance it falls back to the cheapest arc to the target.
func findArc(t fst.Transducer, from, to int, want float64) (int, int, float64) {
	a := t.Arcs(from)
	tol := costTolerance * math.Max(1, math.Abs(want))
	best, cheapest := -1, -1
	for k := 0; k < a.Len(); k++ {
		if a.Targets[k] != to {
			continue
		}
		if cheapest < 0 || a.Costs[k] < a.Costs[cheapest] {
			cheapest = k
		}
		if math.Abs(a.Costs[k]-want) <= tol && (best < 0 || a.Costs[k] < a.Costs[best]) {
			best = k
		}
	}
	if best < 0 {
		best = cheapest
	}
	if best < 0 {
		return fst.Epsilon, fst.Epsilon, want
	}
	return a.Inputs[best], a.Outputs[best], a.Costs[best]
}
