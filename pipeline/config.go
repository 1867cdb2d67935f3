// Package pipeline runs one independent search per text line over a worker
// pool.
//
// Each worker owns everything it touches: the line lattice it loads, the
// search state, and its own copy of the language model, loaded lazily on
// the worker's first line. The only shared state is the result slice (each
// line written by exactly one worker) and the aggregate Stats, updated under
// a mutex.
//
// Failure policy: a line whose lattice cannot be loaded or searched is logged
// with slog.Warn and skipped, unless Config.AbortOnError is set, in which
// case Run stops at the first failure and returns it. When a search over the
// lattice composed with the language model finds nothing, the line falls back
// to a search over the lattice alone.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"runtime"
)

// Mode selects the search algorithm.
type Mode string

// Search modes.
const (
	ModeBeam  Mode = "beam"
	ModeAStar Mode = "astar"
)

// ErrConfig indicates an invalid Config.
var ErrConfig = errors.New("pipeline: invalid config")

// Config controls a batch run.
type Config struct {
	Mode          Mode
	BeamWidth     int     // beam mode only
	MaxExpansions int     // astar mode only; 0 is unlimited
	LMPath        string  // empty: no language model
	LMScale       float64 // multiplies language model costs
	Workers       int
	AbortOnError  bool
}

// DefaultConfig returns beam search of width 100 without a language model,
// one worker per available CPU.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeBeam,
		BeamWidth: 100,
		LMScale:   1,
		Workers:   runtime.GOMAXPROCS(0),
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeBeam:
		if c.BeamWidth <= 0 {
			return fmt.Errorf("%w: beam width %d", ErrConfig, c.BeamWidth)
		}
	case ModeAStar:
		if c.MaxExpansions < 0 {
			return fmt.Errorf("%w: max expansions %d", ErrConfig, c.MaxExpansions)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrConfig, c.Mode)
	}
	if c.LMScale < 0 || math.IsNaN(c.LMScale) || math.IsInf(c.LMScale, 0) {
		return fmt.Errorf("%w: lm scale %v", ErrConfig, c.LMScale)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers %d", ErrConfig, c.Workers)
	}
	return nil
}
