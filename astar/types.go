// Package astar defines options, sentinel errors and result types for
// best-first shortest-path search over transducers.
//
// Options:
//
//	– WithHeuristic(h):      admissible cost-to-go estimate (default zero ⇒ Dijkstra).
//	– WithoutHeuristic():    disable the backward-distance heuristic of the
//	                         composition and chain searches.
//	– WithStart(node):       start somewhere other than Transducer.Start().
//	– WithFinish(node):      accept only at node, at cost 0.
//	– WithMaxExpansions(n):  give up (found=false) after n expansions.
//
// Errors (sentinel):
//
//	– ErrNilTransducer   if a nil transducer is passed.
//	– ErrEmptyTransducer if the transducer has no states.
//	– ErrOptionViolation if an option carried an invalid argument.
//	– ErrChainTooShort   if SearchChain receives no transducers.
package astar

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// Sentinel errors returned by the search routines.
var (
	// ErrNilTransducer indicates a nil transducer argument.
	ErrNilTransducer = errors.New("astar: transducer is nil")

	// ErrEmptyTransducer indicates a transducer without states.
	ErrEmptyTransducer = errors.New("astar: transducer has no states")

	// ErrOptionViolation indicates an invalid functional option.
	ErrOptionViolation = errors.New("astar: invalid option supplied")

	// ErrChainTooShort indicates SearchChain was called without operands.
	ErrChainTooShort = errors.New("astar: chain needs at least one transducer")
)

// Heuristic estimates the remaining cost from a state to acceptance.
// It must never overestimate; +Inf marks states that cannot reach acceptance.
type Heuristic func(node int) float64

// zeroHeuristic turns A* into plain Dijkstra.
func zeroHeuristic(int) float64 { return 0 }

// Options configures a search.
type Options struct {
	Heuristic     Heuristic // nil means zero
	NoHeuristic   bool      // composition/chain searches skip backward distances
	Start         int       // -1: use the transducer's start state
	Finish        int       // -1: any accepting state
	MaxExpansions int       // 0: unlimited

	// exhaustive keeps popping after the accept node (backward distances).
	exhaustive bool

	err error
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns the options of a plain search: zero heuristic,
// transducer start, any accepting state, no expansion cap.
func DefaultOptions() Options {
	return Options{Start: -1, Finish: -1}
}

// WithHeuristic installs an admissible heuristic. Search results never change
// with an admissible heuristic; only the exploration order does.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if h == nil {
			o.err = fmt.Errorf("%w: nil heuristic", ErrOptionViolation)
			return
		}
		o.Heuristic = h
	}
}

// WithoutHeuristic disables the backward-distance heuristic that
// SearchComposition and SearchChain install by default.
func WithoutHeuristic() Option {
	return func(o *Options) { o.NoHeuristic = true }
}

// WithStart overrides the start state. For SearchComposition and SearchChain
// the index refers to the first (left-most) operand.
func WithStart(node int) Option {
	return func(o *Options) {
		if node < 0 {
			o.err = fmt.Errorf("%w: start %d", ErrOptionViolation, node)
			return
		}
		o.Start = node
	}
}

// WithFinish pins acceptance to node at cost 0; all other states become
// non-accepting. For SearchComposition and SearchChain the index refers to the
// first (left-most) operand.
func WithFinish(node int) Option {
	return func(o *Options) {
		if node < 0 {
			o.err = fmt.Errorf("%w: finish %d", ErrOptionViolation, node)
			return
		}
		o.Finish = node
	}
}

// WithMaxExpansions caps the number of expanded states. When the cap is hit
// before acceptance the search reports found=false.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max expansions %d", ErrOptionViolation, n)
			return
		}
		o.MaxExpansions = n
	}
}

func buildOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.err
}

// ChainPath is a search result over an N-way chain: the combined Path plus,
// for each operand k, the operand state of every visited vertex.
type ChainPath struct {
	fst.Path
	Operands [][]int
}
