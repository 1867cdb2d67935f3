// Package fst defines the weighted finite-state transducer contract used by
// the recognizer and the search algorithms, together with its eager
// implementation (Standard) and the lazy on-the-fly Composition view.
//
// This file declares label/cost constants, sentinel errors, the Arcs bundle,
// the Transducer and Mutable interfaces, and the search Path type.
//
// Errors:
//
//	ErrNilTransducer    - a nil transducer was passed where one is required.
//	ErrStateOutOfRange  - a state index outside [0, NStates()).
//	ErrLabelOutOfRange  - a label outside [0, MaxLabel).
//	ErrNegativeCost     - a negative or NaN arc cost.
//	ErrEmptyOperand     - a composition operand with zero states.
//	ErrArcNotFound      - Rescore found no arc matching its tuple.
//	ErrUnsupported      - the operation is not supported by this transducer kind.
//	ErrCorrupt          - a persisted transducer failed validation.
package fst

import (
	"errors"
	"math"
)

// Epsilon is the reserved "no symbol" label.
const Epsilon = 0

// MaxLabel is the exclusive upper bound for input and output labels.
// Character codes occupy the low 21 bits; the rest is room for
// recognizer-specific tokens (segment ids, reject markers).
const MaxLabel = 1 << 24

// AcceptThreshold separates finite accept costs from the "not accepting"
// sentinel. Any accept cost at or above it marks a non-accepting state.
const AcceptThreshold = 1e37

// Inf is the accept cost of a non-accepting state.
var Inf = math.Inf(1)

// Sentinel errors for transducer operations.
var (
	// ErrNilTransducer indicates a nil transducer argument.
	ErrNilTransducer = errors.New("fst: transducer is nil")

	// ErrStateOutOfRange indicates a state index outside [0, NStates()).
	ErrStateOutOfRange = errors.New("fst: state index out of range")

	// ErrLabelOutOfRange indicates an input or output label outside [0, MaxLabel).
	ErrLabelOutOfRange = errors.New("fst: label out of range")

	// ErrNegativeCost indicates a negative or NaN arc cost.
	ErrNegativeCost = errors.New("fst: negative arc cost")

	// ErrEmptyOperand indicates a composition operand with zero states.
	ErrEmptyOperand = errors.New("fst: composition operand has no states")

	// ErrArcNotFound indicates Rescore found no arc for the given tuple.
	ErrArcNotFound = errors.New("fst: arc not found")

	// ErrUnsupported indicates an operation the transducer kind does not offer.
	ErrUnsupported = errors.New("fst: operation not supported")

	// ErrCorrupt indicates persisted transducer data failed validation.
	ErrCorrupt = errors.New("fst: corrupt transducer data")
)

// IsAccepting reports whether an accept cost allows termination.
func IsAccepting(cost float64) bool { return cost < AcceptThreshold }

// Arcs is a bundle of parallel slices describing the outgoing arcs of one
// state: arc k goes to Targets[k], consumes Inputs[k], emits Outputs[k] and
// costs Costs[k]. All four slices always have the same length.
//
// Arcs returned by a Transducer are read-only for the caller.
type Arcs struct {
	Inputs  []int
	Targets []int
	Outputs []int
	Costs   []float64
}

// Len returns the number of arcs in the bundle.
func (a Arcs) Len() int { return len(a.Targets) }

// Append adds one arc to the bundle.
func (a *Arcs) Append(input, target, output int, cost float64) {
	a.Inputs = append(a.Inputs, input)
	a.Targets = append(a.Targets, target)
	a.Outputs = append(a.Outputs, output)
	a.Costs = append(a.Costs, cost)
}

// Transducer is the read-only capability every search and utility routine is
// written against. Implementations must return arcs in a stable order for a
// fixed transducer.
type Transducer interface {
	// NStates returns the number of states; valid indices are [0, NStates()).
	NStates() int

	// Start returns the designated start state.
	Start() int

	// AcceptCost returns the extra cost of terminating at node,
	// or a value ≥ AcceptThreshold if node is not accepting.
	AcceptCost(node int) float64

	// Arcs returns the outgoing arcs of from.
	Arcs(from int) Arcs
}

// Mutable is a Transducer that can be built and edited in place.
type Mutable interface {
	Transducer

	// NewState allocates a non-accepting state with no arcs and returns its index.
	NewState() int

	// SetStart designates the start state.
	SetStart(node int) error

	// SetAccept sets a finite accept cost on node.
	SetAccept(node int, cost float64) error

	// AddTransition appends an arc from→to emitting output, consuming input.
	AddTransition(from, to, output int, cost float64, input int) error

	// Rescore overwrites the cost of the first arc matching
	// (from, to, output, input).
	Rescore(from, to, output, input int, cost float64) error

	// Clear resets the transducer to zero states.
	Clear()
}

// Path is the result of a search: four parallel sequences of equal length.
// Entry k describes the transition leaving Vertices[k]; the final entry is the
// terminal jump to accept (input 0, output 0, cost = accept cost of the last
// vertex).
type Path struct {
	Inputs   []int
	Outputs  []int
	Costs    []float64
	Vertices []int
}

// Len returns the number of entries, including the terminal accept entry.
func (p Path) Len() int { return len(p.Vertices) }

// Cost returns the total path cost including the accept cost.
func (p Path) Cost() float64 {
	var total float64
	for _, c := range p.Costs {
		total += c
	}
	return total
}

// Labels returns the output labels with epsilons removed.
func (p Path) Labels() []int { return RemoveEpsilons(p.Outputs) }

// RemoveEpsilons returns a copy of labels without Epsilon entries.
// Applying it to an epsilon-free sequence yields an equal sequence.
func RemoveEpsilons(labels []int) []int {
	out := make([]int, 0, len(labels))
	for _, l := range labels {
		if l != Epsilon {
			out = append(out, l)
		}
	}
	return out
}

func checkLabel(l int) error {
	if l < 0 || l >= MaxLabel {
		return ErrLabelOutOfRange
	}
	return nil
}

func checkCost(c float64) error {
	if c < 0 || math.IsNaN(c) {
		return ErrNegativeCost
	}
	return nil
}
