package lattice

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/katalvlaran/ocrolath/fst"
)

// FromText returns the transducer spelling s: one arc per code point of the
// NFC form of s, input = output = code point, cost 0. The last state accepts
// at cost 0; an empty string yields a single accepting state.
func FromText(s string) (*fst.Standard, error) {
	t := fst.NewStandard()
	end, err := spell(t, t.NewState(), s, 0)
	if err != nil {
		return nil, err
	}
	return t, t.SetAccept(end, 0)
}

// spell adds the arcs of s starting at from, charging cost on the first arc,
// and returns the state reached.
func spell(t *fst.Standard, from int, s string, cost float64) (int, error) {
	if !utf8.ValidString(s) {
		return 0, fmt.Errorf("%w: invalid UTF-8 %q", fst.ErrLabelOutOfRange, s)
	}
	cur := from
	for _, r := range norm.NFC.String(s) {
		next := t.NewState()
		if err := t.AddTransition(cur, next, int(r), cost, int(r)); err != nil {
			return 0, err
		}
		cost = 0
		cur = next
	}
	if cost > 0 {
		// empty text still pays its cost
		next := t.NewState()
		if err := t.AddTransition(cur, next, fst.Epsilon, cost, fst.Epsilon); err != nil {
			return 0, err
		}
		cur = next
	}
	return cur, nil
}

// Text renders labels as an NFC string. Epsilons are skipped, RejectLabel
// becomes "~" and labels that are not code points are dropped.
func Text(labels []int) string {
	var sb strings.Builder
	for _, l := range labels {
		switch {
		case l == fst.Epsilon:
		case l == RejectLabel:
			sb.WriteString(rejectText)
		case l > 0 && l <= utf8.MaxRune && utf8.ValidRune(rune(l)):
			sb.WriteRune(rune(l))
		}
	}
	return norm.NFC.String(sb.String())
}
