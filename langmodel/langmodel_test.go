package langmodel_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/ocrolath/astar"
	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/langmodel"
	"github.com/katalvlaran/ocrolath/lattice"
)

type LexiconSuite struct {
	suite.Suite
}

// search composes the ground truth of text with lm.
func (s *LexiconSuite) search(text string, lm fst.Transducer) (float64, bool) {
	gt, err := lattice.FromText(text)
	s.Require().NoError(err)
	p, ok, err := astar.SearchComposition(gt, lm)
	s.Require().NoError(err)
	return p.Cost(), ok
}

func (s *LexiconSuite) TestFlipsToyRecognition() {
	b, err := lattice.NewLineBuilder()
	s.Require().NoError(err)
	_, err = b.Segment(lattice.Choice{Label: 'c', Cost: 0.5})
	s.Require().NoError(err)
	_, err = b.Segment(lattice.Choice{Label: 'a', Cost: 0.5})
	s.Require().NoError(err)
	_, err = b.Segment(lattice.Choice{Label: 't', Cost: 1}, lattice.Choice{Label: 'r', Cost: 0.5})
	s.Require().NoError(err)
	line := b.Build()

	lm, err := langmodel.FromEntries([]langmodel.Entry{{Word: "cat", Count: 100}, {Word: "car", Count: 1}})
	s.Require().NoError(err)
	p, ok, err := astar.SearchComposition(line, lm)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal("cat", lattice.Text(p.Labels()))
	s.InDelta(2-math.Log(100.0/101), p.Cost(), 1e-9)
}

func (s *LexiconSuite) TestWordsAndBoundaries() {
	lm, err := langmodel.FromWords([]string{"the", "cat"})
	s.Require().NoError(err)

	cost, ok := s.search("the cat", lm)
	s.Require().True(ok)
	s.InDelta(2*math.Log(2), cost, 1e-9)

	cost, ok = s.search("", lm)
	s.True(ok)
	s.Zero(cost)

	_, ok = s.search("the dog", lm)
	s.False(ok, "dog is out of lexicon")
}

func (s *LexiconSuite) TestUnknownWords() {
	lm, err := langmodel.FromWords([]string{"the"}, langmodel.WithUnknown("abcdefghijklmnopqrstuvwxyz ", 3), langmodel.WithSpaceCost(0.5))
	s.Require().NoError(err)
	cost, ok := s.search("the dog", lm)
	s.Require().True(ok)
	s.InDelta(0.5+9, cost, 1e-9, "the (cost 0) + boundary + three unknown letters")

	cost, ok = s.search("the", lm)
	s.Require().True(ok)
	s.Zero(cost)
}

func (s *LexiconSuite) TestScale() {
	plain, err := langmodel.FromWords([]string{"a", "b", "c", "d"})
	s.Require().NoError(err)
	scaled, err := langmodel.FromWords([]string{"a", "b", "c", "d"}, langmodel.WithScale(2))
	s.Require().NoError(err)

	c1, ok := s.search("b", plain)
	s.Require().True(ok)
	c2, ok := s.search("b", scaled)
	s.Require().True(ok)
	s.InDelta(math.Log(4), c1, 1e-9)
	s.InDelta(2*c1, c2, 1e-9)
}

func (s *LexiconSuite) TestDuplicatesAndNormalization() {
	lm, err := langmodel.FromWords([]string{"caf\u00e9", "cafe\u0301", "tea", "tea"})
	s.Require().NoError(err)
	cost, ok := s.search("caf\u00e9", lm)
	s.Require().True(ok)
	s.InDelta(math.Log(2), cost, 1e-9, "both spellings count toward one word")
}

func (s *LexiconSuite) TestValidation() {
	_, err := langmodel.FromWords(nil)
	s.ErrorIs(err, langmodel.ErrEmptyLexicon)
	_, err = langmodel.FromWords([]string{"", ""})
	s.ErrorIs(err, langmodel.ErrEmptyLexicon)
	_, err = langmodel.FromWords([]string{"two words"})
	s.ErrorIs(err, langmodel.ErrBadEntry)
	_, err = langmodel.FromEntries([]langmodel.Entry{{Word: "x", Count: 0}})
	s.ErrorIs(err, langmodel.ErrBadEntry)

	for _, opt := range []langmodel.Option{
		langmodel.WithScale(-1),
		langmodel.WithSpaceCost(math.NaN()),
		langmodel.WithSpaceLabel(0),
		langmodel.WithUnknown("", 1),
	} {
		_, err = langmodel.FromWords([]string{"x"}, opt)
		s.ErrorIs(err, langmodel.ErrOptionViolation)
	}
}

func TestLexiconSuite(t *testing.T) {
	suite.Run(t, new(LexiconSuite))
}

func TestLoad_WordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# lexicon\ncat 3\n\ncar\n"), 0o644))

	lm, err := langmodel.Load(path)
	require.NoError(t, err)
	gt, err := lattice.FromText("car")
	require.NoError(t, err)
	p, ok, err := astar.SearchComposition(gt, lm)
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, math.Log(4), p.Cost(), 1e-9)
}

func TestLoad_EncodedModel(t *testing.T) {
	lm, err := langmodel.FromWords([]string{"cat", "car"})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "lm.fst")
	require.NoError(t, lm.Save(path))

	got, err := langmodel.Load(path)
	require.NoError(t, err)
	require.Equal(t, lm.NStates(), got.NStates())
	require.Equal(t, lm.ArcCount(), got.ArcCount())

	half, err := langmodel.Load(path, langmodel.WithScale(0.5))
	require.NoError(t, err)
	for v := 0; v < lm.NStates(); v++ {
		if fst.IsAccepting(lm.AcceptCost(v)) {
			require.InDelta(t, lm.AcceptCost(v)/2, half.AcceptCost(v), 1e-12)
		}
	}
}

func TestLoad_Failures(t *testing.T) {
	_, err := langmodel.Load(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat many\n"), 0o644))
	_, err = langmodel.Load(path)
	require.ErrorIs(t, err, langmodel.ErrBadEntry)

	require.NoError(t, os.WriteFile(path, []byte("OFST1 truncated"), 0o644))
	_, err = langmodel.Load(path)
	require.ErrorIs(t, err, fst.ErrCorrupt)
}

func TestParseWords(t *testing.T) {
	got, err := langmodel.ParseWords([]byte("  the 10\n# skip\nof\n"))
	require.NoError(t, err)
	require.Equal(t, []langmodel.Entry{{Word: "the", Count: 10}, {Word: "of", Count: 1}}, got)

	_, err = langmodel.ParseWords([]byte("a b c\n"))
	require.ErrorIs(t, err, langmodel.ErrBadEntry)
}
