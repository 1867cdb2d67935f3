package hocr_test

import (
	"image"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ocrolath/astar"
	"github.com/katalvlaran/ocrolath/hocr"
	"github.com/katalvlaran/ocrolath/langmodel"
	"github.com/katalvlaran/ocrolath/lattice"
)

const page = `<!DOCTYPE html>
<html><body>
<div class='ocr_page' id='page_1' title='bbox 0 0 200 50'>
 <span class='ocr_line' id='line_1_1' title="bbox 10 10 150 40; baseline 0 -5">
  <span class='ocrx_word' id='word_1_1' title='bbox 10 10 60 40; x_wconf 90'>
   <span class='ocrx_cinfo' title='x_bboxes 10 10 20 40; x_conf 99'>c</span>
   <span class='ocrx_cinfo' title='x_bboxes 20 10 30 40; x_conf 95'>a</span>
   <span class='ocr_symbol' title='bbox 30 10 40 40'>
    <span class='ocrx_cinfo' title='x_confs 60'>r</span>
    <span class='ocrx_cinfo' title='x_confs 37'>t</span>
   </span>
  </span>
  <span class='ocrx_word' id='word_1_2' title='bbox 70 10 150 40; x_wconf 80'>ok</span>
 </span>
 <span class='ocr_line' id='line_1_2' title="bbox 10 42 60 50">
  <span class='ocrx_word' id='word_1_3' title='bbox 10 42 60 50; x_wconf 70'>
   <span class='ocrx_cinfo' id='lstm_choices_1_3_1'>
    <span class='ocrx_cinfo' title='x_confs 40'>l</span>
    <span class='ocrx_cinfo' title='x_confs 55'>I</span>
   </span>
  </span>
 </span>
</div>
</body></html>`

func TestParse(t *testing.T) {
	lines, err := hocr.Parse(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, lines, 2)

	l := lines[0]
	require.Equal(t, "line_1_1", l.ID)
	require.Equal(t, image.Rect(10, 10, 150, 40), l.BBox)
	require.Len(t, l.Words, 2)
	require.Equal(t, "car ok", l.Text())

	w := l.Words[0]
	require.Equal(t, 90.0, w.Conf)
	require.Equal(t, image.Rect(10, 10, 60, 40), w.BBox)
	require.Len(t, w.Chars, 3)
	require.Equal(t, image.Rect(20, 10, 30, 40), w.Chars[1].BBox)
	require.Equal(t, []hocr.Choice{{Text: "r", Conf: 60}, {Text: "t", Conf: 37}}, w.Chars[2].Choices)
	require.Empty(t, l.Words[1].Chars)

	require.Equal(t, "I", lines[1].Text())
	require.Len(t, lines[1].Words[0].Chars, 1)
	require.Len(t, lines[1].Words[0].Chars[0].Choices, 2)
}

func TestParse_NoLines(t *testing.T) {
	_, err := hocr.Parse(strings.NewReader("<html><body><p>plain</p></body></html>"))
	require.ErrorIs(t, err, hocr.ErrNoLines)
}

func TestLine_Lattice(t *testing.T) {
	lines, err := hocr.Parse(strings.NewReader(page))
	require.NoError(t, err)
	s, err := lines[0].Lattice(hocr.DefaultOptions())
	require.NoError(t, err)

	labels, cost, ok, err := astar.BestPath(s)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "car ok", lattice.Text(labels))
	want := -math.Log(0.99) - math.Log(0.95) - math.Log(0.6) - 2*math.Log(0.8)
	require.InDelta(t, want, cost, 1e-9)
}

func TestLine_LatticeWithLanguageModel(t *testing.T) {
	lines, err := hocr.Parse(strings.NewReader(page))
	require.NoError(t, err)
	s, err := lines[0].Lattice(hocr.DefaultOptions())
	require.NoError(t, err)
	lm, err := langmodel.FromWords([]string{"cat", "ok"})
	require.NoError(t, err)

	p, ok, err := astar.SearchComposition(s, lm)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "cat ok", lattice.Text(p.Labels()))
}

func TestLine_LatticeRejectAndSpaceOptions(t *testing.T) {
	lines, err := hocr.Parse(strings.NewReader(page))
	require.NoError(t, err)

	// Cheap rejects beat every character; no reject arcs at all when disabled.
	s, err := lines[0].Lattice(hocr.Options{RejectCost: 0, NoSpaceCost: 0, SpaceCost: 1})
	require.NoError(t, err)
	labels, _, ok, err := astar.BestPath(s)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "~~~~~", lattice.Text(labels))

	s, err = lines[1].Lattice(hocr.Options{RejectCost: -1})
	require.NoError(t, err)
	require.Equal(t, 2, s.ArcCount())
}
