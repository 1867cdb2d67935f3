package lattice

import (
	"fmt"

	"github.com/katalvlaran/ocrolath/fst"
)

// LineOption configures a LineBuilder.
type LineOption func(*lineConfig)

type lineConfig struct {
	reject     bool
	rejectCost float64
	space      int
	err        error
}

// WithReject adds a RejectLabel arc costing cost to every segment, so that a
// line with an unrecognizable glyph still has a path.
func WithReject(cost float64) LineOption {
	return func(c *lineConfig) {
		if cost < 0 || cost != cost {
			c.err = fmt.Errorf("%w: reject cost %v", ErrOptionViolation, cost)
			return
		}
		c.reject, c.rejectCost = true, cost
	}
}

// WithSpaceLabel changes the label emitted by the space-yes arc (default ' ').
func WithSpaceLabel(label int) LineOption {
	return func(c *lineConfig) {
		if label <= fst.Epsilon || label >= fst.MaxLabel {
			c.err = fmt.Errorf("%w: space label %d", ErrOptionViolation, label)
			return
		}
		c.space = label
	}
}

// LineBuilder assembles the recognition lattice of one text line.
//
// States are segment boundaries laid out left to right. Segment k (1-based)
// adds arcs last → next with input label k, so a path's inputs identify the
// segments it consumed. Space adds a space-yes arc (input Epsilon, output the
// space label) and a competing space-no arc (input and output Epsilon).
type LineBuilder struct {
	cfg      lineConfig
	s        *fst.Standard
	last     int
	segments int
}

// NewLineBuilder returns a builder positioned on a fresh start state.
func NewLineBuilder(opts ...LineOption) (*LineBuilder, error) {
	cfg := lineConfig{space: ' '}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	s := fst.NewStandard()
	return &LineBuilder{cfg: cfg, s: s, last: s.NewState()}, nil
}

// Segment appends one segment with the given character choices and returns
// its segment number.
func (b *LineBuilder) Segment(choices ...Choice) (int, error) {
	if len(choices) == 0 {
		return 0, fmt.Errorf("%w: segment %d", ErrNoChoices, b.segments+1)
	}
	b.segments++
	next := b.s.NewState()
	for _, c := range choices {
		if err := b.s.AddTransition(b.last, next, c.Label, c.Cost, b.segments); err != nil {
			return 0, fmt.Errorf("lattice: segment %d choice %q: %w", b.segments, rune(c.Label), err)
		}
	}
	if b.cfg.reject {
		if err := b.s.AddTransition(b.last, next, RejectLabel, b.cfg.rejectCost, b.segments); err != nil {
			return 0, err
		}
	}
	b.last = next
	return b.segments, nil
}

// Space appends the choice between a space (cost yes) and no space (cost no).
func (b *LineBuilder) Space(yes, no float64) error {
	next := b.s.NewState()
	if err := b.s.AddTransition(b.last, next, b.cfg.space, yes, fst.Epsilon); err != nil {
		return fmt.Errorf("lattice: space yes: %w", err)
	}
	if err := b.s.AddTransition(b.last, next, fst.Epsilon, no, fst.Epsilon); err != nil {
		return fmt.Errorf("lattice: space no: %w", err)
	}
	b.last = next
	return nil
}

// Segments returns the number of segments added so far.
func (b *LineBuilder) Segments() int { return b.segments }

// Build makes the last boundary accepting at cost 0 and returns the lattice.
// The builder must not be used afterwards.
func (b *LineBuilder) Build() *fst.Standard {
	_ = b.s.SetAccept(b.last, 0) // last is always a valid state
	s := b.s
	b.s = nil
	return s
}
