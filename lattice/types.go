package lattice

import (
	"errors"
	"unicode"
)

// RejectLabel is the output label of the junk/reject hypothesis of a
// segment. It lies above every code point and below fst.MaxLabel.
const RejectLabel = unicode.MaxRune + 1

// rejectText is how Text renders RejectLabel.
const rejectText = "~"

// Sentinel errors for lattice construction and transforms.
var (
	// ErrNilTransducer indicates a nil transducer argument.
	ErrNilTransducer = errors.New("lattice: transducer is nil")

	// ErrNoChoices indicates a segment without any character hypothesis.
	ErrNoChoices = errors.New("lattice: segment has no choices")

	// ErrBadFactor indicates a negative, NaN or infinite scale factor.
	ErrBadFactor = errors.New("lattice: scale factor must be finite and non-negative")

	// ErrOptionViolation indicates an invalid functional option.
	ErrOptionViolation = errors.New("lattice: invalid option supplied")
)

// Choice is one character hypothesis for a segment.
type Choice struct {
	Label int     // code point (or RejectLabel)
	Cost  float64 // -log(posterior)
}

// Alternative is one string of a bunch with the cost of choosing it.
type Alternative struct {
	Text string
	Cost float64
}
