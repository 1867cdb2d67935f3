package astar

import (
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// chain is an N-way composition F1∘F2∘…∘Fk built right-to-left:
// levels[k-2] = F(k-1)∘Fk, levels[i] = F(i+1)∘levels[i+1]. levels[0] is the
// outermost view that gets searched.
type chain struct {
	operands []fst.Transducer
	levels   []*fst.Composition
}

func newChain(fsts []fst.Transducer, copts []fst.ComposeOption) (*chain, error) {
	k := len(fsts)
	ch := &chain{operands: fsts, levels: make([]*fst.Composition, k-1)}
	var cur fst.Transducer = fsts[k-1]
	var err error
	for i := k - 2; i >= 0; i-- {
		var o []fst.ComposeOption
		if i == 0 {
			o = copts
		}
		if ch.levels[i], err = fst.Compose(fsts[i], cur, o...); err != nil {
			return nil, fmt.Errorf("chain level %d: %w", i, err)
		}
		cur = ch.levels[i]
	}
	return ch, nil
}

// split writes the operand states of a flattened index into dst.
func (ch *chain) split(combined int, dst []int) {
	rest := combined
	for i, c := range ch.levels {
		dst[i], rest = c.Split(rest)
	}
	dst[len(ch.levels)] = rest
}

// heuristic sums one backward-distance array per operand.
func (ch *chain) heuristic(finish int) (Heuristic, error) {
	back := make([][]float64, len(ch.operands))
	var err error
	for i, t := range ch.operands {
		f := -1
		if i == 0 {
			f = finish
		}
		if back[i], err = BackwardTo(t, f); err != nil {
			return nil, fmt.Errorf("operand %d: %w", i, err)
		}
	}
	return func(node int) float64 {
		var total float64
		rest := node
		var j int
		for i, c := range ch.levels {
			j, rest = c.Split(rest)
			total += back[i][j]
		}
		return total + back[len(ch.levels)][rest]
	}, nil
}

// SearchChain runs A* over the chained composition F1∘F2∘…∘Fk without
// materializing any intermediate product. With a single operand it is a plain
// Search. WithStart/WithFinish refer to states of F1.
//
// The returned Operands[i][j] is the state of operand i at path vertex j.
func SearchChain(fsts []fst.Transducer, opts ...Option) (ChainPath, bool, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return ChainPath{}, false, err
	}
	if len(fsts) == 0 {
		return ChainPath{}, false, ErrChainTooShort
	}
	for i, t := range fsts {
		if t == nil {
			return ChainPath{}, false, fmt.Errorf("%w: operand %d", ErrNilTransducer, i)
		}
	}
	if len(fsts) == 1 {
		p, ok, err := Search(fsts[0], opts...)
		if !ok || err != nil {
			return ChainPath{}, ok, err
		}
		return ChainPath{Path: p, Operands: [][]int{p.Vertices}}, true, nil
	}

	var copts []fst.ComposeOption
	if cfg.Start >= 0 {
		copts = append(copts, fst.WithStartOverride(cfg.Start))
	}
	if cfg.Finish >= 0 {
		copts = append(copts, fst.WithFinishOverride(cfg.Finish))
	}
	ch, err := newChain(fsts, copts)
	if err != nil {
		return ChainPath{}, false, err
	}

	inner := Options{Start: -1, Finish: -1, MaxExpansions: cfg.MaxExpansions, Heuristic: cfg.Heuristic}
	if inner.Heuristic == nil && !cfg.NoHeuristic {
		if inner.Heuristic, err = ch.heuristic(cfg.Finish); err != nil {
			return ChainPath{}, false, err
		}
	}
	r, err := newRunner(ch.levels[0], inner)
	if err != nil {
		return ChainPath{}, false, err
	}
	if !r.loop() {
		return ChainPath{}, false, nil
	}
	out := ChainPath{Path: r.path(), Operands: make([][]int, len(fsts))}
	for i := range out.Operands {
		out.Operands[i] = make([]int, out.Len())
	}
	parts := make([]int, len(fsts))
	for j, v := range out.Vertices {
		ch.split(v, parts)
		for i, s := range parts {
			out.Operands[i][j] = s
		}
	}
	return out, true, nil
}
