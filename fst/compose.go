// File: compose.go
// Role: Lazy on-the-fly composition of two transducers.
// Determinism:
//   - Arcs(i) orders its output as: left epsilon-output arcs, right
//     epsilon-input arcs, then merge-joined pairs by ascending label; within a
//     label run, left arcs vary slowest. Ties keep the operands' arc order.
// Concurrency:
//   - A Composition only reads its operands. Callers keep both operands alive
//     and unmodified while the view is searched.

package fst

import (
	"fmt"
	"sort"
)

// ComposeOption configures a Composition.
type ComposeOption func(*composeConfig)

type composeConfig struct {
	start  int
	finish int
}

// WithStartOverride starts the left operand at state left instead of its own
// start state.
func WithStartOverride(left int) ComposeOption {
	return func(c *composeConfig) { c.start = left }
}

// WithFinishOverride pins the left operand's end: its accept cost becomes 0
// at state left and Inf everywhere else. Used to align against ground truth.
func WithFinishOverride(left int) ComposeOption {
	return func(c *composeConfig) { c.finish = left }
}

// Composition is a virtual transducer whose states are pairs of left and right
// states and whose arcs are computed on demand by merge-joining left output
// labels with right input labels. It never materializes the product and does
// not own its operands.
type Composition struct {
	left, right Transducer
	pair        Pairing
	start       int // left start override, -1 if unset
	finish      int // left finish override, -1 if unset
}

// Compose builds the composition view of left and right.
//
// Errors:
//   - ErrNilTransducer if either operand is nil.
//   - ErrEmptyOperand if either operand has zero states.
//   - ErrStateOutOfRange if an override names a state outside left.
func Compose(left, right Transducer, opts ...ComposeOption) (*Composition, error) {
	if left == nil || right == nil {
		return nil, ErrNilTransducer
	}
	if left.NStates() == 0 {
		return nil, fmt.Errorf("%w: left", ErrEmptyOperand)
	}
	if right.NStates() == 0 {
		return nil, fmt.Errorf("%w: right", ErrEmptyOperand)
	}
	cfg := composeConfig{start: -1, finish: -1}
	for _, opt := range opts {
		opt(&cfg)
	}
	n := left.NStates()
	if cfg.start >= n || cfg.start < -1 {
		return nil, fmt.Errorf("%w: start override %d", ErrStateOutOfRange, cfg.start)
	}
	if cfg.finish >= n || cfg.finish < -1 {
		return nil, fmt.Errorf("%w: finish override %d", ErrStateOutOfRange, cfg.finish)
	}
	return &Composition{
		left:   left,
		right:  right,
		pair:   Pairing{Right: right.NStates()},
		start:  cfg.start,
		finish: cfg.finish,
	}, nil
}

// Left returns the left operand.
func (c *Composition) Left() Transducer { return c.left }

// Right returns the right operand.
func (c *Composition) Right() Transducer { return c.right }

// Pairing returns the index mapping of this view.
func (c *Composition) Pairing() Pairing { return c.pair }

// Split returns the operand states of a combined index.
func (c *Composition) Split(combined int) (left, right int) { return c.pair.Split(combined) }

// Finish returns the left finish override, or -1.
func (c *Composition) Finish() int { return c.finish }

// NStates returns the product of the operand state counts.
func (c *Composition) NStates() int { return c.left.NStates() * c.right.NStates() }

// Start returns the combined start state.
func (c *Composition) Start() int {
	s := c.start
	if s < 0 {
		s = c.left.Start()
	}
	return c.pair.Combine(s, c.right.Start())
}

// LeftAcceptCost returns the accept cost of a left state after the finish
// override is applied.
func (c *Composition) LeftAcceptCost(left int) float64 {
	if c.finish >= 0 {
		if left == c.finish {
			return 0
		}
		return Inf
	}
	return c.left.AcceptCost(left)
}

// AcceptCost returns the sum of the operands' accept costs.
func (c *Composition) AcceptCost(combined int) float64 {
	i1, i2 := c.pair.Split(combined)
	return c.LeftAcceptCost(i1) + c.right.AcceptCost(i2)
}

// Arcs computes the composed arcs leaving combined.
//
// Left arcs with an epsilon output advance only the left operand; right arcs
// with an epsilon input advance only the right operand. The remaining arcs are
// sorted by the shared label and merge-joined, emitting every matching pair.
//
// Complexity: O(a log a + b log b + m) for a left arcs, b right arcs and m
// emitted pairs.
func (c *Composition) Arcs(combined int) Arcs {
	i1, i2 := c.pair.Split(combined)
	l := c.left.Arcs(i1)
	r := c.right.Arcs(i2)

	lp := sortedBy(l.Outputs)
	rp := sortedBy(r.Inputs)

	var out Arcs
	var k, a, b int
	for _, k = range lp {
		if l.Outputs[k] == Epsilon {
			out.Append(l.Inputs[k], c.pair.Combine(l.Targets[k], i2), Epsilon, l.Costs[k])
		}
	}
	for _, k = range rp {
		if r.Inputs[k] == Epsilon {
			out.Append(Epsilon, c.pair.Combine(i1, r.Targets[k]), r.Outputs[k], r.Costs[k])
		}
	}

	// Skip the epsilon prefix of both sorted lists (labels are non-negative).
	for a < len(lp) && l.Outputs[lp[a]] == Epsilon {
		a++
	}
	for b < len(rp) && r.Inputs[rp[b]] == Epsilon {
		b++
	}
	var la, rb, aEnd, bEnd, x, y int
	for a < len(lp) && b < len(rp) {
		la, rb = l.Outputs[lp[a]], r.Inputs[rp[b]]
		if la < rb {
			a++
			continue
		}
		if la > rb {
			b++
			continue
		}
		aEnd, bEnd = a, b
		for aEnd < len(lp) && l.Outputs[lp[aEnd]] == la {
			aEnd++
		}
		for bEnd < len(rp) && r.Inputs[rp[bEnd]] == la {
			bEnd++
		}
		for x = a; x < aEnd; x++ {
			for y = b; y < bEnd; y++ {
				out.Append(
					l.Inputs[lp[x]],
					c.pair.Combine(l.Targets[lp[x]], r.Targets[rp[y]]),
					r.Outputs[rp[y]],
					l.Costs[lp[x]]+r.Costs[rp[y]],
				)
			}
		}
		a, b = aEnd, bEnd
	}
	return out
}

// sortedBy returns the permutation ordering keys ascending, stable on ties.
func sortedBy(keys []int) []int {
	perm := make([]int, len(keys))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool { return keys[perm[i]] < keys[perm[j]] })
	return perm
}

// Save is not supported: a Composition is searched, never persisted.
func (c *Composition) Save(string) error { return fmt.Errorf("%w: save composition", ErrUnsupported) }

// Load is not supported: a Composition is searched, never persisted.
func (c *Composition) Load(string) error { return fmt.Errorf("%w: load composition", ErrUnsupported) }

// ComposedPath is a search result over a Composition: the combined Path plus
// the left and right operand state of every visited vertex.
type ComposedPath struct {
	Path
	Left  []int
	Right []int
}

// SplitPath annotates p, a path over c, with per-operand vertices.
func (c *Composition) SplitPath(p Path) ComposedPath {
	out := ComposedPath{Path: p, Left: make([]int, len(p.Vertices)), Right: make([]int, len(p.Vertices))}
	for i, v := range p.Vertices {
		out.Left[i], out.Right[i] = c.pair.Split(v)
	}
	return out
}
