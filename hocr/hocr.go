// Package hocr reads Tesseract hOCR output into recognition lattices.
//
// Recognized structure (class names as Tesseract writes them):
//
//	ocr_line / ocrx_line      one text line
//	  ocrx_word               one word, title "bbox ...; x_wconf N"
//	    ocrx_cinfo            one character, title "x_conf N"
//	    ocr_symbol            one character position whose ocrx_cinfo
//	                          children are alternatives, title "x_confs N"
//
// Confidences are percentages. A choice with confidence p costs
// -log(max(p/100, MinProb)). Words without character detail contribute one
// segment per rune at the word confidence.
package hocr

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/lattice"
)

// MinProb floors probabilities before taking logarithms.
const MinProb = 1e-4

// ErrNoLines indicates an hOCR document without any ocr_line element.
var ErrNoLines = errors.New("hocr: no text lines")

// Choice is one character alternative with its confidence in [0,100].
type Choice struct {
	Text string
	Conf float64
}

// Char is one character position.
type Char struct {
	BBox    image.Rectangle
	Choices []Choice
}

// Word is one ocrx_word.
type Word struct {
	ID    string
	BBox  image.Rectangle
	Conf  float64
	Text  string
	Chars []Char
}

// Line is one ocr_line.
type Line struct {
	ID    string
	BBox  image.Rectangle
	Words []Word
}

// Text returns the best reading of the line as Tesseract reported it.
func (l Line) Text() string {
	words := make([]string, len(l.Words))
	for i, w := range l.Words {
		words[i] = w.Text
	}
	return strings.Join(words, " ")
}

// Parse reads an hOCR document.
func Parse(r io.Reader) ([]Line, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("hocr: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)
	var lines []Line
	doc.Find(".ocr_line, .ocrx_line, .ocr_caption, .ocr_textfloat, .ocr_header").Each(func(_ int, s *goquery.Selection) {
		lines = append(lines, parseLine(s))
	})
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	return lines, nil
}

func parseLine(s *goquery.Selection) Line {
	title := parseTitle(s.AttrOr("title", ""))
	l := Line{ID: s.AttrOr("id", ""), BBox: title.bbox}
	s.Find(".ocrx_word").Each(func(_ int, w *goquery.Selection) {
		l.Words = append(l.Words, parseWord(w))
	})
	return l
}

func parseWord(s *goquery.Selection) Word {
	title := parseTitle(s.AttrOr("title", ""))
	w := Word{ID: s.AttrOr("id", ""), BBox: title.bbox, Conf: title.conf}
	s.Children().Each(func(_ int, c *goquery.Selection) {
		switch {
		case c.HasClass("ocr_symbol"), c.HasClass("ocrx_cinfo") && c.Find(".ocrx_cinfo").Length() > 0:
			ch := Char{BBox: parseTitle(c.AttrOr("title", "")).bbox}
			c.Find(".ocrx_cinfo").Each(func(_ int, alt *goquery.Selection) {
				ch.Choices = append(ch.Choices, Choice{Text: alt.Text(), Conf: parseTitle(alt.AttrOr("title", "")).conf})
			})
			w.Chars = append(w.Chars, ch)
		case c.HasClass("ocrx_cinfo"):
			t := parseTitle(c.AttrOr("title", ""))
			w.Chars = append(w.Chars, Char{BBox: t.bbox, Choices: []Choice{{Text: c.Text(), Conf: t.conf}}})
		}
	})
	w.Text = wordText(s, w.Chars)
	return w
}

// wordText prefers the best choice of every character, falling back to the
// element text when no character detail exists.
func wordText(s *goquery.Selection, chars []Char) string {
	if len(chars) == 0 {
		return strings.TrimSpace(s.Text())
	}
	var sb strings.Builder
	for _, c := range chars {
		best := -1
		for i, ch := range c.Choices {
			if best < 0 || ch.Conf > c.Choices[best].Conf {
				best = i
			}
		}
		if best >= 0 {
			sb.WriteString(c.Choices[best].Text)
		}
	}
	return sb.String()
}

// title holds the properties of an hOCR title attribute this package uses.
type title struct {
	bbox image.Rectangle
	conf float64
}

// parseTitle reads "bbox x0 y0 x1 y1; x_wconf N; ..." style properties.
// Missing confidences default to 100; malformed values are ignored.
func parseTitle(s string) title {
	t := title{conf: 100}
	for _, prop := range strings.Split(s, ";") {
		f := strings.Fields(prop)
		if len(f) == 0 {
			continue
		}
		switch f[0] {
		case "bbox", "x_bboxes":
			if len(f) < 5 {
				continue
			}
			var v [4]int
			ok := true
			for i := range v {
				n, err := strconv.Atoi(f[i+1])
				if err != nil {
					ok = false
					break
				}
				v[i] = n
			}
			if ok {
				t.bbox = image.Rect(v[0], v[1], v[2], v[3])
			}
		case "x_wconf", "x_conf", "x_confs":
			if len(f) < 2 {
				continue
			}
			if c, err := strconv.ParseFloat(f[1], 64); err == nil {
				t.conf = math.Max(0, math.Min(100, c))
			}
		}
	}
	return t
}

// Options configures lattice construction from a Line.
type Options struct {
	RejectCost  float64 // cost of the reject arc per segment; <0 disables
	NoSpaceCost float64 // cost of dropping a space between words
	SpaceCost   float64 // cost of keeping it
}

// DefaultOptions returns reject arcs at cost 10, spaces kept for free and
// dropped at cost 4.
func DefaultOptions() Options {
	return Options{RejectCost: 10, NoSpaceCost: 4}
}

// cost converts a confidence percentage to -log probability.
func cost(conf float64) float64 {
	return -math.Log(math.Max(conf/100, MinProb))
}

// Lattice builds the recognition lattice of l: one segment per character
// position, alternatives as parallel arcs, space choices between words.
// Multi-rune choices (ligatures) are spelled with their first rune.
func (l Line) Lattice(o Options) (*fst.Standard, error) {
	var opts []lattice.LineOption
	if o.RejectCost >= 0 {
		opts = append(opts, lattice.WithReject(o.RejectCost))
	}
	b, err := lattice.NewLineBuilder(opts...)
	if err != nil {
		return nil, err
	}
	for i, w := range l.Words {
		if i > 0 {
			if err = b.Space(o.SpaceCost, o.NoSpaceCost); err != nil {
				return nil, err
			}
		}
		if err = addWord(b, w); err != nil {
			return nil, fmt.Errorf("hocr: word %s: %w", w.ID, err)
		}
	}
	return b.Build(), nil
}

func addWord(b *lattice.LineBuilder, w Word) error {
	if len(w.Chars) == 0 {
		for _, r := range w.Text {
			if _, err := b.Segment(lattice.Choice{Label: int(r), Cost: cost(w.Conf)}); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range w.Chars {
		choices := make([]lattice.Choice, 0, len(c.Choices))
		for _, ch := range c.Choices {
			r, _ := utf8.DecodeRuneInString(strings.TrimSpace(ch.Text))
			if r == utf8.RuneError {
				continue
			}
			choices = append(choices, lattice.Choice{Label: int(r), Cost: cost(ch.Conf)})
		}
		if len(choices) == 0 {
			continue
		}
		if _, err := b.Segment(choices...); err != nil {
			return err
		}
	}
	return nil
}
