// Package tesseract provides the Tesseract line recognition engine and
// registers it as the default recognize.Engine.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/katalvlaran/ocrolath/hocr"
	"github.com/katalvlaran/ocrolath/recognize"
)

func init() {
	recognize.SetDefault(New())
}

// Engine recognizes single text lines with Tesseract and returns hOCR with
// per-character alternatives (LSTM choice mode).
type Engine struct {
	clientFactory func() *gosseract.Client

	Languages []string
	Variables map[string]string
}

// New returns an engine using English unless Languages is set.
func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs Tesseract in single-line mode over a prepared line image.
func (e *Engine) Recognize(ctx context.Context, image []byte) ([]hocr.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	if len(e.Languages) > 0 {
		if err := c.SetLanguage(e.Languages...); err != nil {
			return nil, fmt.Errorf("set languages: %w", err)
		}
	}
	if err := c.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return nil, fmt.Errorf("set page segmentation: %w", err)
	}
	vars := map[string]string{
		"hocr_char_boxes":  "1",
		"lstm_choice_mode": "2",
	}
	for k, v := range e.Variables {
		vars[k] = v
	}
	for k, v := range vars {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return nil, fmt.Errorf("set variable %s: %w", k, err)
		}
	}
	out, err := c.HOCRText()
	if err != nil {
		return nil, fmt.Errorf("recognize line: %w", err)
	}
	return hocr.Parse(strings.NewReader(out))
}
