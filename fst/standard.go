// File: standard.go
// Role: Eager, adjacency-list transducer used for recognition lattices,
//       language models and every materialized intermediate.
// Determinism:
//   - Arcs(from) returns arcs in insertion order; repeated calls agree.
// Concurrency:
//   - Not synchronized. A Standard is owned by one goroutine at a time and
//     must not be mutated while a search or Composition reads it.

package fst

import "fmt"

// arcList stores the arcs of one state as parallel slices.
type arcList struct {
	inputs  []int
	targets []int
	outputs []int
	costs   []float64
}

// Standard is the concrete, eagerly stored transducer.
//
// States are dense indices [0, NStates()). Each state owns an arc list and an
// accept cost (Inf until SetAccept). States and arcs are append-only; Rescore
// edits a cost in place and Clear drops everything.
type Standard struct {
	start  int
	accept []float64
	arcs   []arcList
}

// NewStandard returns an empty transducer (zero states, start 0).
func NewStandard() *Standard {
	return &Standard{}
}

// NStates returns the number of allocated states.
func (s *Standard) NStates() int { return len(s.accept) }

// Start returns the start state.
func (s *Standard) Start() int { return s.start }

// SetStart designates node as the start state.
func (s *Standard) SetStart(node int) error {
	if err := s.checkState(node); err != nil {
		return err
	}
	s.start = node
	return nil
}

// NewState allocates a non-accepting state with an empty arc list.
// Complexity: amortized O(1).
func (s *Standard) NewState() int {
	s.accept = append(s.accept, Inf)
	s.arcs = append(s.arcs, arcList{})
	return len(s.accept) - 1
}

// NewStates allocates n states and returns the index of the first one.
func (s *Standard) NewStates(n int) int {
	first := len(s.accept)
	for i := 0; i < n; i++ {
		s.NewState()
	}
	return first
}

// AcceptCost returns the accept cost of node, or Inf for an unknown node.
func (s *Standard) AcceptCost(node int) float64 {
	if node < 0 || node >= len(s.accept) {
		return Inf
	}
	return s.accept[node]
}

// SetAccept sets a finite accept cost on node. Passing Inf (or any value at
// or above AcceptThreshold) makes node non-accepting again.
func (s *Standard) SetAccept(node int, cost float64) error {
	if err := s.checkState(node); err != nil {
		return err
	}
	if err := checkCost(cost); err != nil {
		return fmt.Errorf("%w: accept cost %g on state %d", err, cost, node)
	}
	s.accept[node] = cost
	return nil
}

// AddTransition appends the arc from→to with the given labels and cost.
// No deduplication is performed.
//
// Errors: ErrStateOutOfRange, ErrLabelOutOfRange, ErrNegativeCost.
// Complexity: amortized O(1).
func (s *Standard) AddTransition(from, to, output int, cost float64, input int) error {
	if err := s.checkState(from); err != nil {
		return err
	}
	if err := s.checkState(to); err != nil {
		return err
	}
	if err := checkLabel(input); err != nil {
		return fmt.Errorf("%w: input %d", err, input)
	}
	if err := checkLabel(output); err != nil {
		return fmt.Errorf("%w: output %d", err, output)
	}
	if err := checkCost(cost); err != nil {
		return fmt.Errorf("%w: %g on arc %d→%d", err, cost, from, to)
	}
	l := &s.arcs[from]
	l.inputs = append(l.inputs, input)
	l.targets = append(l.targets, to)
	l.outputs = append(l.outputs, output)
	l.costs = append(l.costs, cost)
	return nil
}

// Arcs returns the outgoing arcs of from in insertion order. The slices
// alias internal storage and must not be modified; their capacity is clipped
// so appending to them never writes into the transducer.
func (s *Standard) Arcs(from int) Arcs {
	if from < 0 || from >= len(s.arcs) {
		return Arcs{}
	}
	l := &s.arcs[from]
	n := len(l.targets)
	return Arcs{
		Inputs:  l.inputs[:n:n],
		Targets: l.targets[:n:n],
		Outputs: l.outputs[:n:n],
		Costs:   l.costs[:n:n],
	}
}

// ArcCount returns the total number of arcs.
func (s *Standard) ArcCount() int {
	var total int
	for i := range s.arcs {
		total += len(s.arcs[i].targets)
	}
	return total
}

// Rescore overwrites the cost of the first arc from→to carrying the given
// output and input labels. Duplicate arcs on the same tuple are never reached.
func (s *Standard) Rescore(from, to, output, input int, cost float64) error {
	if err := s.checkState(from); err != nil {
		return err
	}
	if err := checkCost(cost); err != nil {
		return err
	}
	l := &s.arcs[from]
	for k := range l.targets {
		if l.targets[k] == to && l.outputs[k] == output && l.inputs[k] == input {
			l.costs[k] = cost
			return nil
		}
	}
	return fmt.Errorf("%w: %d→%d out=%d in=%d", ErrArcNotFound, from, to, output, input)
}

// Clear resets the transducer to zero states.
func (s *Standard) Clear() {
	s.start = 0
	s.accept = nil
	s.arcs = nil
}

func (s *Standard) checkState(node int) error {
	if node < 0 || node >= len(s.accept) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrStateOutOfRange, node, len(s.accept))
	}
	return nil
}
