package beam

import (
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// SearchComposition runs beam search over the virtual composition of left and
// right. This is the default recognition-time search: a recognition lattice
// on the left, a language model on the right.
//
// WithStart and WithFinish refer to left states and become the composition's
// start and finish overrides.
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
		return fst.ComposedPath{}, false, fmt.Errorf("beam: %w", err)
	}
	cfg.Start, cfg.Finish = -1, -1
	s, err := newSearcher(c, cfg)
	if err != nil {
		return fst.ComposedPath{}, false, err
	}
	best, ok := s.run()
	if !ok {
		return fst.ComposedPath{}, false, nil
	}
	return c.SplitPath(best.Path(c.AcceptCost(best.Vertex))), true, nil
}
