package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/ocrolath/astar"
	"github.com/katalvlaran/ocrolath/beam"
	"github.com/katalvlaran/ocrolath/fst"
	"github.com/katalvlaran/ocrolath/langmodel"
	"github.com/katalvlaran/ocrolath/lattice"
)

// ErrNoPath indicates that no accepting path exists, even without the
// language model.
var ErrNoPath = errors.New("pipeline: no accepting path")

// Line is one unit of work. Lattice, when set, is searched directly;
// otherwise the lattice is loaded from Path by the worker.
type Line struct {
	ID      string
	Path    string
	Lattice fst.Transducer
}

// Result is the outcome of one line. Err is set for skipped lines.
type Result struct {
	ID       string
	Text     string
	Labels   []int     // output labels of the best path, epsilons removed
	Costs    []float64 // per-step costs of the best path, accept cost last
	Cost     float64
	Fallback bool // the language model admitted no path
	Err      error
}

// Stats aggregates a run.
type Stats struct {
	Lines      int
	Recognized int
	Fallbacks  int
	Failed     int
}

// LMLoader loads a language model for one worker.
type LMLoader func(path string, scale float64) (fst.Transducer, error)

// Option customizes Run.
type Option func(*runner)

// WithLogger replaces slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) { r.log = l }
}

// WithLMLoader replaces the language model loader (default langmodel.Load).
func WithLMLoader(f LMLoader) Option {
	return func(r *runner) { r.loadLM = f }
}

func defaultLMLoader(path string, scale float64) (fst.Transducer, error) {
	return langmodel.Load(path, langmodel.WithScale(scale))
}

// runner is the shared state of one Run.
type runner struct {
	cfg    Config
	log    *slog.Logger
	loadLM LMLoader
	lines  []Line
	out    []Result

	mu    sync.Mutex
	stats Stats
}

// Run searches every line and returns the per-line results in input order
// with aggregate statistics. Lines never reached after an abort or
// cancellation carry only their ID. The returned error is non-nil only for an
// invalid Config, a cancelled ctx, or, with AbortOnError, the first line
// failure.
func Run(ctx context.Context, lines []Line, cfg Config, opts ...Option) ([]Result, Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Stats{}, err
	}
	r := &runner{cfg: cfg, log: slog.Default(), loadLM: defaultLMLoader, lines: lines, out: make([]Result, len(lines))}
	for _, opt := range opts {
		opt(r)
	}
	for i, l := range lines {
		r.out[i].ID = l.ID
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	jobs := make(chan int)
	workers := min(cfg.Workers, max(len(lines), 1))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.work(ctx, cancel, id, jobs)
		}(w)
	}

feed:
	for i := range lines {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	r.mu.Lock()
	stats := r.stats
	r.mu.Unlock()
	if err := context.Cause(ctx); err != nil {
		return r.out, stats, err
	}
	return r.out, stats, nil
}

// worker owns one language model copy.
type worker struct {
	id     int
	lm     fst.Transducer
	lmErr  error
	loaded bool
}

func (r *runner) work(ctx context.Context, cancel context.CancelCauseFunc, id int, jobs <-chan int) {
	w := &worker{id: id}
	for i := range jobs {
		if ctx.Err() != nil {
			continue // drain
		}
		res := r.line(w, r.lines[i])
		r.out[i] = res
		r.account(res)
		if res.Err == nil {
			continue
		}
		r.log.Warn("line failed", "line", res.ID, "worker", id, "error", res.Err)
		if r.cfg.AbortOnError {
			cancel(fmt.Errorf("line %s: %w", res.ID, res.Err))
		}
	}
}

func (r *runner) account(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Lines++
	switch {
	case res.Err != nil:
		r.stats.Failed++
	case res.Fallback:
		r.stats.Recognized++
		r.stats.Fallbacks++
	default:
		r.stats.Recognized++
	}
}

// languageModel returns the worker's model, loading it on first use. A
// load failure is remembered so that it is reported, not retried, per line.
func (r *runner) languageModel(w *worker) (fst.Transducer, error) {
	if r.cfg.LMPath == "" {
		return nil, nil
	}
	if !w.loaded {
		w.loaded = true
		w.lm, w.lmErr = r.loadLM(r.cfg.LMPath, r.cfg.LMScale)
		if w.lmErr == nil {
			r.log.Debug("language model loaded", "worker", w.id, "path", r.cfg.LMPath, "states", w.lm.NStates())
		}
	}
	return w.lm, w.lmErr
}

// line loads, searches and renders one line.
func (r *runner) line(w *worker, l Line) Result {
	res := Result{ID: l.ID}
	lat := l.Lattice
	if lat == nil {
		s, err := fst.LoadStandard(l.Path)
		if err != nil {
			res.Err = err
			return res
		}
		lat = s
	}
	lm, err := r.languageModel(w)
	if err != nil {
		res.Err = fmt.Errorf("language model: %w", err)
		return res
	}

	var (
		p  fst.Path
		ok bool
	)
	if lm != nil {
		if p, ok, err = r.searchComposed(lat, lm); err != nil {
			res.Err = err
			return res
		}
		ok = ok && fst.IsAccepting(p.Cost())
		if !ok {
			res.Fallback = true
			r.log.Debug("language model admits no path, searching lattice alone", "line", l.ID)
		}
	}
	if !ok {
		if p, ok, err = r.search(lat); err != nil {
			res.Err = err
			return res
		}
		if !ok || !fst.IsAccepting(p.Cost()) {
			res.Err = ErrNoPath
			return res
		}
	}
	res.Labels = p.Labels()
	res.Text = lattice.Text(res.Labels)
	res.Costs = p.Costs
	res.Cost = p.Cost()
	return res
}

func (r *runner) search(t fst.Transducer) (fst.Path, bool, error) {
	if r.cfg.Mode == ModeAStar {
		var opts []astar.Option
		if r.cfg.MaxExpansions > 0 {
			opts = append(opts, astar.WithMaxExpansions(r.cfg.MaxExpansions))
		}
		return astar.Search(t, opts...)
	}
	return beam.Search(t, beam.WithWidth(r.cfg.BeamWidth))
}

func (r *runner) searchComposed(lat, lm fst.Transducer) (fst.Path, bool, error) {
	if r.cfg.Mode == ModeAStar {
		var opts []astar.Option
		if r.cfg.MaxExpansions > 0 {
			opts = append(opts, astar.WithMaxExpansions(r.cfg.MaxExpansions))
		}
		cp, ok, err := astar.SearchComposition(lat, lm, opts...)
		return cp.Path, ok, err
	}
	cp, ok, err := beam.SearchComposition(lat, lm, beam.WithWidth(r.cfg.BeamWidth))
	return cp.Path, ok, err
}
