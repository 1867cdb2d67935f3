package lattice

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/ocrolath/fst"
)

// Sample draws one random path through t. At every state the walk picks an
// outgoing arc, or stops through the accept pseudo-arc, with probability
// proportional to exp(-cost). The same seed yields the same path.
//
// found is false when the walk reaches a state with neither arcs nor
// acceptance, or takes maxSteps arcs without stopping. The path layout
// matches search results: the last entry is the accept jump.
func Sample(t fst.Transducer, seed int64, maxSteps int) (fst.Path, bool, error) {
	if err := checkSample(t, maxSteps); err != nil {
		return fst.Path{}, false, err
	}
	p, ok := walk(t, rngFromSeed(seed), maxSteps)
	return p, ok, nil
}

// SampleN draws n paths, each from its own stream derived from seed, and
// returns the walks that reached acceptance.
func SampleN(t fst.Transducer, n int, seed int64, maxSteps int) ([]fst.Path, error) {
	if err := checkSample(t, maxSteps); err != nil {
		return nil, err
	}
	parent := seed
	if parent == 0 {
		parent = defaultSeed
	}
	out := make([]fst.Path, 0, n)
	for i := 0; i < n; i++ {
		if p, ok := walk(t, rand.New(rand.NewSource(deriveSeed(parent, uint64(i)))), maxSteps); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func checkSample(t fst.Transducer, maxSteps int) error {
	if t == nil {
		return ErrNilTransducer
	}
	if t.NStates() == 0 {
		return fmt.Errorf("lattice: sample: %w", fst.ErrEmptyOperand)
	}
	if maxSteps <= 0 {
		return fmt.Errorf("%w: max steps %d", ErrOptionViolation, maxSteps)
	}
	return nil
}

// walk performs one random walk from the start state.
func walk(t fst.Transducer, rng *rand.Rand, maxSteps int) (fst.Path, bool) {
	var (
		p       fst.Path
		v       = t.Start()
		weights []float64
	)
	for step := 0; step <= maxSteps; step++ {
		a := t.Arcs(v)
		acc := t.AcceptCost(v)
		weights = weights[:0]
		// Weights are taken relative to the cheapest option so that large
		// costs do not underflow to zero.
		lo := math.Inf(1)
		for _, c := range a.Costs {
			lo = math.Min(lo, c)
		}
		if fst.IsAccepting(acc) {
			lo = math.Min(lo, acc)
		}
		if math.IsInf(lo, 1) {
			return fst.Path{}, false
		}
		total := 0.0
		for _, c := range a.Costs {
			w := math.Exp(lo - c)
			weights = append(weights, w)
			total += w
		}
		if fst.IsAccepting(acc) {
			total += math.Exp(lo - acc)
		}
		pick := rng.Float64() * total
		k := 0
		for ; k < len(weights); k++ {
			if pick < weights[k] {
				break
			}
			pick -= weights[k]
		}
		if k == len(weights) {
			if !fst.IsAccepting(acc) {
				k = len(weights) - 1 // rounding past the last arc
			} else {
				p.Inputs = append(p.Inputs, fst.Epsilon)
				p.Outputs = append(p.Outputs, fst.Epsilon)
				p.Costs = append(p.Costs, acc)
				p.Vertices = append(p.Vertices, v)
				return p, true
			}
		}
		if step == maxSteps {
			break
		}
		p.Inputs = append(p.Inputs, a.Inputs[k])
		p.Outputs = append(p.Outputs, a.Outputs[k])
		p.Costs = append(p.Costs, a.Costs[k])
		p.Vertices = append(p.Vertices, v)
		v = a.Targets[k]
	}
	return fst.Path{}, false
}
