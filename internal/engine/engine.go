// Package engine advances grids by whole generations. A generation reads only
// the input grid and writes a fresh one, so every cell sees the same
// pre-step state regardless of evaluation order.
package engine

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"lifeworld/internal/core"
)

// Engine applies an algorithm across a grid, splitting rows into bands that
// are evaluated concurrently.
type Engine struct {
	workers int
}

// New returns an Engine using up to workers goroutines per generation.
// Non-positive values use GOMAXPROCS.
func New(workers int) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{workers: workers}
}

// RunOnce computes the generation following cur. cur is not modified.
// Randomness is drawn from per-row streams derived from seed and generation,
// so the result does not depend on the number of workers.
func (e *Engine) RunOnce(cur *core.Grid, alg core.Algorithm, p core.Params, seed int64, generation int) (*core.Grid, core.Stats) {
	next, _ := core.NewGrid(cur.W, cur.H)

	bands := e.workers
	if bands > cur.H {
		bands = cur.H
	}
	rowsPer := (cur.H + bands - 1) / bands
	partial := make([]core.Stats, bands)

	var g errgroup.Group
	g.SetLimit(e.workers)
	for b := 0; b < bands; b++ {
		y0 := b * rowsPer
		y1 := min(y0+rowsPer, cur.H)
		if y0 >= y1 {
			continue
		}
		g.Go(func() error {
			partial[b] = stepRows(cur, next, alg, p, seed, generation, y0, y1)
			return nil
		})
	}
	g.Wait()

	var stats core.Stats
	for _, s := range partial {
		stats = stats.Add(s)
	}
	return next, stats
}

// stepRows evaluates rows [y0, y1) into next and cannot fail.
func stepRows(cur, next *core.Grid, alg core.Algorithm, p core.Params, seed int64, generation, y0, y1 int) core.Stats {
	var s core.Stats
	out := next.Cells()
	for y := y0; y < y1; y++ {
		rng := core.RowRNG(seed, generation, y)
		for x := 0; x < cur.W; x++ {
			i := next.Index(x, y)
			rec := out[i : i+core.NumFields : i+core.NumFields]
			alg.Step(cur, x, y, p, rng, rec)

			was, is := cur.Alive(x, y), rec[core.FieldAlive] != 0
			if is {
				s.Live++
			}
			switch {
			case was && !is:
				s.Deaths++
			case !was && is:
				s.Births++
			}
		}
	}
	return s
}

// RunOptions controls RunContinuous.
type RunOptions struct {
	Seed int64
	// Generation is the index of the input grid; emitted generations count up from it.
	Generation int
	// Interval is the pause between generations.
	Interval time.Duration
	// Turns bounds the number of generations; 0 runs until cancelled.
	Turns int
}

// Emit receives each completed generation. Returning false stops the run.
type Emit func(generation int, grid *core.Grid, stats core.Stats) bool

// RunContinuous repeats RunOnce, calling emit after every generation and
// pausing opts.Interval in between. Cancellation is only observed between
// generations. It returns nil when opts.Turns generations completed, and
// ctx.Err() or ErrStopped otherwise.
func (e *Engine) RunContinuous(ctx context.Context, cur *core.Grid, alg core.Algorithm, p core.Params, opts RunOptions, emit Emit) error {
	gen := opts.Generation
	for done := 0; opts.Turns <= 0 || done < opts.Turns; done++ {
		if done > 0 && !pause(ctx, opts.Interval) {
			return ctx.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		next, stats := e.RunOnce(cur, alg, p, opts.Seed, gen)
		gen++
		if !emit(gen, next, stats) {
			return ErrStopped
		}
		cur = next
	}
	return nil
}

func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
