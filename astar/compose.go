package astar

import (
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// CompositionHeuristic returns the admissible heuristic
// h(i1,i2) = backward_left[i1] + backward_right[i2] for c. The left distances
// honor c's finish override.
func CompositionHeuristic(c *fst.Composition) (Heuristic, error) {
	h1, err := BackwardTo(c.Left(), c.Finish())
	if err != nil {
		return nil, fmt.Errorf("left operand: %w", err)
	}
	h2, err := Backward(c.Right())
	if err != nil {
		return nil, fmt.Errorf("right operand: %w", err)
	}
	p := c.Pairing()
	return func(node int) float64 {
		i1, i2 := p.Split(node)
		return h1[i1] + h2[i2]
	}, nil
}

// SearchComposition runs A* over the virtual composition of left and right
// without materializing it.
//
// WithStart and WithFinish refer to left states and become the composition's
// start and finish overrides (pinning the left end, e.g. to the accept state
// of a ground-truth transducer during alignment). Unless WithoutHeuristic or
// WithHeuristic is given, the backward-distance heuristic is used; it changes
// only the exploration order, never the optimal cost.
func SearchComposition(left, right fst.Transducer, opts ...Option) (fst.ComposedPath, bool, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return fst.ComposedPath{}, false, err
	}
	if left == nil || right == nil {
		return fst.ComposedPath{}, false, ErrNilTransducer
	}
	var copts []fst.ComposeOption
	if cfg.Start >= 0 {
		copts = append(copts, fst.WithStartOverride(cfg.Start))
	}
	if cfg.Finish >= 0 {
		copts = append(copts, fst.WithFinishOverride(cfg.Finish))
	}
	c, err := fst.Compose(left, right, copts...)
	if err != nil {
		return fst.ComposedPath{}, false, err
	}

	inner := Options{Start: -1, Finish: -1, MaxExpansions: cfg.MaxExpansions, Heuristic: cfg.Heuristic}
	if inner.Heuristic == nil && !cfg.NoHeuristic {
		if inner.Heuristic, err = CompositionHeuristic(c); err != nil {
			return fst.ComposedPath{}, false, err
		}
	}
	r, err := newRunner(c, inner)
	if err != nil {
		return fst.ComposedPath{}, false, err
	}
	if !r.loop() {
		return fst.ComposedPath{}, false, nil
	}
	return c.SplitPath(r.path()), true, nil
}
