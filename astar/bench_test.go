package astar_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ocrolath/astar"
	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/langmodel"
	"github.com/katalvlaran/ocrolath/lattice"
)

// benchPair returns a line lattice of nWords lexicon words, each character
// competing with two distractors, and the lexicon itself.
func benchPair(b *testing.B, lexiconSize, nWords int) (lat, lm *fst.Standard) {
	b.Helper()
	const alphabet = "abcdefghijklmnop"
	rng := rand.New(rand.NewSource(1))
	words := make([]string, lexiconSize)
	for i := range words {
		w := make([]byte, 3+rng.Intn(5))
		for j := range w {
			w[j] = alphabet[rng.Intn(len(alphabet))]
		}
		words[i] = string(w)
	}
	lm, err := langmodel.FromWords(words)
	if err != nil {
		b.Fatal(err)
	}

	lb, err := lattice.NewLineBuilder(lattice.WithReject(6))
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < nWords; i++ {
		if i > 0 {
			if err = lb.Space(0.2, 1.5); err != nil {
				b.Fatal(err)
			}
		}
		for _, r := range words[rng.Intn(len(words))] {
			if _, err = lb.Segment(
				lattice.Choice{Label: int(r), Cost: 0.4},
				lattice.Choice{Label: int(alphabet[rng.Intn(len(alphabet))]), Cost: 1.2},
				lattice.Choice{Label: int(alphabet[rng.Intn(len(alphabet))]), Cost: 2.3},
			); err != nil {
				b.Fatal(err)
			}
		}
	}
	return lb.Build(), lm
}

// BenchmarkSearchComposition measures exact search of an eight-word line
// under a 500-word lexicon, heuristic precomputation included.
func BenchmarkSearchComposition(b *testing.B) {
	lat, lm := benchPair(b, 500, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok, err := astar.SearchComposition(lat, lm); err != nil || !ok {
			b.Fatalf("ok=%v err=%v", ok, err)
		}
	}
}

// BenchmarkSearch_LatticeOnly is the same line without a language model.
func BenchmarkSearch_LatticeOnly(b *testing.B) {
	lat, _ := benchPair(b, 500, 8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok, err := astar.Search(lat); err != nil || !ok {
			b.Fatalf("ok=%v err=%v", ok, err)
		}
	}
}
