package astar

import "github.com/katalvlaran/ocrolath/fst"

// BestPath runs Search over t and returns the output labels of the cheapest
// accepting path with epsilons removed, together with its total cost.
// found is false when t has no reachable accepting state.
func BestPath(t fst.Transducer, opts ...Option) (labels []int, cost float64, found bool, err error) {
	p, found, err := Search(t, opts...)
	if err != nil || !found {
		return nil, 0, found, err
	}
	return p.Labels(), p.Cost(), true, nil
}
