// Package beam defines options and sentinel errors for fixed-width beam
// search over transducers.
//
// Options:
//
//	– WithWidth(k):     hypotheses retained per step (default DefaultWidth).
//	– WithMaxSteps(n):  step bound (default DefaultMaxSteps); guarantees
//	                    termination on zero-cost cycles.
//	– WithStart(node):  start somewhere other than Transducer.Start().
//	– WithFinish(node): accept only at node, at cost 0.
//
// Errors (sentinel):
//
//	– ErrNilTransducer   if a nil transducer is passed.
//	– ErrEmptyTransducer if the transducer has no states.
//	– ErrOptionViolation if an option carried an invalid argument.
package beam

import (
	"errors"
	"fmt"
)

// Defaults used by DefaultOptions.
const (
	DefaultWidth    = 100
	DefaultMaxSteps = 10000
)

// Sentinel errors returned by the beam search routines.
var (
	// ErrNilTransducer indicates a nil transducer argument.
	ErrNilTransducer = errors.New("beam: transducer is nil")

	// ErrEmptyTransducer indicates a transducer without states.
	ErrEmptyTransducer = errors.New("beam: transducer has no states")

	// ErrOptionViolation indicates an invalid functional option.
	ErrOptionViolation = errors.New("beam: invalid option supplied")
)

// Options configures a beam search.
type Options struct {
	Width    int // hypotheses kept per step
	MaxSteps int // expansion steps before giving up on further extension
	Start    int // -1: use the transducer's start state
	Finish   int // -1: any accepting state

	err error
}

// Option represents a functional option for configuring a beam search.
type Option func(*Options)

// DefaultOptions returns width DefaultWidth, DefaultMaxSteps steps, the
// transducer start and any accepting state.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, MaxSteps: DefaultMaxSteps, Start: -1, Finish: -1}
}

// WithWidth sets the number of hypotheses retained per step.
func WithWidth(k int) Option {
	return func(o *Options) {
		if k <= 0 {
			o.err = fmt.Errorf("%w: width %d", ErrOptionViolation, k)
			return
		}
		o.Width = k
	}
}

// WithMaxSteps bounds the number of expansion steps (path length in arcs).
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max steps %d", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithStart overrides the start state. For SearchComposition the index
// refers to the left operand.
func WithStart(node int) Option {
	return func(o *Options) {
		if node < 0 {
			o.err = fmt.Errorf("%w: start %d", ErrOptionViolation, node)
			return
		}
		o.Start = node
	}
}

// WithFinish pins acceptance to node at cost 0. For SearchComposition the
// index refers to the left operand.
func WithFinish(node int) Option {
	return func(o *Options) {
		if node < 0 {
			o.err = fmt.Errorf("%w: finish %d", ErrOptionViolation, node)
			return
		}
		o.Finish = node
	}
}

func buildOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.err
}
