// Package recognize is the boundary to line recognizers: engines that turn a
// line image into hOCR lines with per-character alternatives, from which the
// lattice package builds recognition lattices.
//
// Engines register themselves as the default with SetDefault (the tesseract
// subpackage does so from init), keeping native dependencies out of packages
// that only need the interface.
package recognize

import (
	"context"
	"errors"

	"github.com/katalvlaran/ocrolath/hocr"
)

// ErrNoEngine is returned by the default engine when none was registered.
var ErrNoEngine = errors.New("recognize: no recognition engine registered")

// Engine recognizes line images.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) ([]hocr.Line, error)
}

var defaultEngine Engine = noopEngine{}

// Default returns the registered default engine.
func Default() Engine { return defaultEngine }

// SetDefault registers e as the default engine.
func SetDefault(e Engine) { defaultEngine = e }

type noopEngine struct{}

func (noopEngine) Name() string { return "none" }

func (noopEngine) Recognize(context.Context, []byte) ([]hocr.Line, error) {
	return nil, ErrNoEngine
}
