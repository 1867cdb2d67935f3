// Package langmodel builds language-model transducers over character codes.
//
// A lexicon model is a trie of words hanging off a single word-boundary
// state. Every word end accepts, and a space arc returns to the boundary so
// that lines of several words are recognized. The cost of a word,
// -log(count/total), is charged when the word ends. Optionally, characters of
// a given alphabet may form out-of-lexicon words at a fixed per-character
// penalty, so an unknown word never makes a line unrecognizable.
//
// Inputs and outputs are equal on every arc: the model is an acceptor meant
// to be the right operand of a composition with a recognition lattice.
package langmodel

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/lattice"
)

// Sentinel errors.
var (
	// ErrEmptyLexicon indicates a word list without usable entries.
	ErrEmptyLexicon = errors.New("langmodel: no words")

	// ErrBadEntry indicates an entry with a non-positive or invalid count.
	ErrBadEntry = errors.New("langmodel: invalid lexicon entry")

	// ErrOptionViolation indicates an invalid functional option.
	ErrOptionViolation = errors.New("langmodel: invalid option supplied")
)

// Entry is one lexicon word and its corpus count.
type Entry struct {
	Word  string
	Count float64
}

// Options configures model construction.
type Options struct {
	Scale       float64 // multiplies every cost; 1 leaves the model as built
	Space       int     // word boundary label
	SpaceCost   float64 // extra cost of each word boundary
	Unknown     string  // alphabet of out-of-lexicon words; empty disables them
	UnknownCost float64 // per character of an out-of-lexicon word

	err error
}

// Option represents a functional option for model construction.
type Option func(*Options)

// DefaultOptions returns scale 1, ' ' as boundary label at no extra cost and
// no out-of-lexicon words.
func DefaultOptions() Options {
	return Options{Scale: 1, Space: ' '}
}

// WithScale multiplies every cost of the model by f.
func WithScale(f float64) Option {
	return func(o *Options) {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			o.err = fmt.Errorf("%w: scale %v", ErrOptionViolation, f)
			return
		}
		o.Scale = f
	}
}

// WithSpaceCost charges c on every word boundary.
func WithSpaceCost(c float64) Option {
	return func(o *Options) {
		if c < 0 || math.IsNaN(c) {
			o.err = fmt.Errorf("%w: space cost %v", ErrOptionViolation, c)
			return
		}
		o.SpaceCost = c
	}
}

// WithSpaceLabel changes the word boundary label (default ' ').
func WithSpaceLabel(label int) Option {
	return func(o *Options) {
		if label <= fst.Epsilon || label >= fst.MaxLabel {
			o.err = fmt.Errorf("%w: space label %d", ErrOptionViolation, label)
			return
		}
		o.Space = label
	}
}

// WithUnknown allows out-of-lexicon words spelled from alphabet, charging
// cost per character.
func WithUnknown(alphabet string, cost float64) Option {
	return func(o *Options) {
		if alphabet == "" || cost < 0 || math.IsNaN(cost) {
			o.err = fmt.Errorf("%w: unknown alphabet %q cost %v", ErrOptionViolation, alphabet, cost)
			return
		}
		o.Unknown, o.UnknownCost = alphabet, cost
	}
}

func buildOptions(opts []Option) (Options, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, cfg.err
}

// FromWords builds a lexicon model in which every word is equally likely.
func FromWords(words []string, opts ...Option) (*fst.Standard, error) {
	entries := make([]Entry, len(words))
	for i, w := range words {
		entries[i] = Entry{Word: w, Count: 1}
	}
	return FromEntries(entries, opts...)
}

// FromEntries builds a lexicon model from words with counts. Words are
// NFC-normalized; repeated words have their counts summed.
func FromEntries(entries []Entry, opts ...Option) (*fst.Standard, error) {
	cfg, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]float64, len(entries))
	order := make([]string, 0, len(entries))
	var total float64
	for _, e := range entries {
		if e.Count <= 0 || math.IsNaN(e.Count) || math.IsInf(e.Count, 0) {
			return nil, fmt.Errorf("%w: %q count %v", ErrBadEntry, e.Word, e.Count)
		}
		w := norm.NFC.String(e.Word)
		if w == "" {
			continue
		}
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w] += e.Count
		total += e.Count
	}
	if len(order) == 0 {
		return nil, ErrEmptyLexicon
	}

	b := newTrie(cfg)
	for _, w := range order {
		if err = b.add(w, -math.Log(counts[w]/total)); err != nil {
			return nil, err
		}
	}
	if cfg.Unknown != "" {
		if err = b.unknown(); err != nil {
			return nil, err
		}
	}
	if cfg.Scale == 1 {
		return b.s, nil
	}
	return lattice.Scale(b.s, cfg.Scale)
}

// trie accumulates the lexicon transducer.
type trie struct {
	cfg      Options
	s        *fst.Standard
	children []map[int]int
}

const boundary = 0

func newTrie(cfg Options) *trie {
	t := &trie{cfg: cfg, s: fst.NewStandard()}
	t.newState()
	_ = t.s.SetAccept(boundary, 0) // an empty line is fine
	return t
}

func (t *trie) newState() int {
	t.children = append(t.children, nil)
	return t.s.NewState()
}

// add threads w through the trie and charges cost at its end.
func (t *trie) add(w string, cost float64) error {
	cur := boundary
	for _, r := range w {
		l := int(r)
		if l == t.cfg.Space {
			return fmt.Errorf("%w: %q contains the boundary label", ErrBadEntry, w)
		}
		next, ok := t.children[cur][l]
		if !ok {
			next = t.newState()
			if t.children[cur] == nil {
				t.children[cur] = make(map[int]int)
			}
			t.children[cur][l] = next
			if err := t.s.AddTransition(cur, next, l, 0, l); err != nil {
				return fmt.Errorf("langmodel: word %q: %w", w, err)
			}
		}
		cur = next
	}
	if err := t.s.SetAccept(cur, cost); err != nil {
		return err
	}
	return t.s.AddTransition(cur, boundary, t.cfg.Space, cost+t.cfg.SpaceCost, t.cfg.Space)
}

// unknown adds the out-of-lexicon word state.
func (t *trie) unknown() error {
	u := t.newState()
	c := t.cfg.UnknownCost
	seen := make(map[int]bool)
	for _, r := range norm.NFC.String(t.cfg.Unknown) {
		l := int(r)
		if l == t.cfg.Space || seen[l] {
			continue
		}
		seen[l] = true
		if err := t.s.AddTransition(boundary, u, l, c, l); err != nil {
			return fmt.Errorf("langmodel: unknown %q: %w", r, err)
		}
		if err := t.s.AddTransition(u, u, l, c, l); err != nil {
			return err
		}
	}
	if err := t.s.SetAccept(u, 0); err != nil {
		return err
	}
	return t.s.AddTransition(u, boundary, t.cfg.Space, t.cfg.SpaceCost, t.cfg.Space)
}
