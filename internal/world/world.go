// Package world owns the authoritative grid and drives a background step
// worker. All methods must be called from a single goroutine; the worker
// communicates only through messages.
package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"lifeworld/internal/core"
	"lifeworld/internal/engine"
)

// ErrNoAlgorithm is returned when no rule is registered under the configured
// tag or the NORMAL fallback.
var ErrNoAlgorithm = errors.New("no algorithm registered")

// State is the controller's run state.
type State int

const (
	Idle State = iota
	RunningOnce
	RunningContinuous
)

func (s State) String() string {
	switch s {
	case RunningOnce:
		return "running-once"
	case RunningContinuous:
		return "running"
	default:
		return "idle"
	}
}

// Status is the telemetry consumed by status displays.
type Status struct {
	State      State
	Algorithm  string
	Generation int
	Group      int32
	// CalcTime is the wall time between the last two delivered generations.
	// It is zero while idle.
	CalcTime time.Duration
	FPS      float64
	Stats    core.Stats
}

type selector func(tag string, cfg map[string]string) core.Algorithm

// World is the world controller.
type World struct {
	cfg    Config
	engine *engine.Engine

	grid       *core.Grid
	stats      core.Stats
	generation int
	group      int32
	calcTime   time.Duration
	clock      *core.DeltaClock
	rng        *rand.Rand
	lastErr    error

	algorithm core.Algorithm
	sel       selector

	worker *engine.Worker
	state  State

	deletedX, deletedY int
}

// New constructs an idle world sized by cfg.
func New(cfg Config) (*World, error) {
	return newWorld(cfg, nil, core.Select)
}

func newWorld(cfg Config, now func() time.Time, sel selector) (*World, error) {
	w := &World{
		cfg:      cfg,
		sel:      sel,
		engine:   engine.New(cfg.Workers),
		clock:    core.NewDeltaClock(now),
		rng:      core.NewRNG(cfg.Seed),
		deletedX: -1,
		deletedY: -1,
	}
	if w.SetAlgorithm(cfg.Algorithm) == "" {
		return nil, fmt.Errorf("world algorithm %q: %w", cfg.Algorithm, ErrNoAlgorithm)
	}
	if err := w.Init(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	return w, nil
}

// Init stops any running worker and allocates an empty grid of the given size.
func (w *World) Init(width, height int) error {
	g, err := core.NewGrid(width, height)
	if err != nil {
		return fmt.Errorf("init world %dx%d: %w", width, height, err)
	}
	w.Stop()
	w.grid = g
	w.cfg.Width, w.cfg.Height = width, height
	w.generation = 0
	w.group = 0
	w.stats = core.Stats{}
	w.calcTime = 0
	w.deletedX, w.deletedY = -1, -1
	return nil
}

// SetAlgorithm selects the rule by tag and returns the tag actually used.
// The running worker keeps the rule it was started with.
func (w *World) SetAlgorithm(tag string) string {
	alg := w.sel(tag, w.cfg.AlgorithmParams)
	if alg == nil {
		return ""
	}
	w.algorithm = alg
	w.cfg.Algorithm = w.algorithm.Name()
	return w.cfg.Algorithm
}

// Algorithm returns the active rule.
func (w *World) Algorithm() core.Algorithm { return w.algorithm }

// Tune changes a tunable of the active rule. Like SetAlgorithm it only
// affects later starts.
func (w *World) Tune(key string, value float64) bool {
	setter, ok := w.algorithm.(core.FloatParameterSetter)
	return ok && setter.SetFloatParameter(key, value)
}

// SetInterval changes the pause between generations used by later starts.
func (w *World) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	w.cfg.Interval = d
}

// Start hands a snapshot of the grid to a new worker. It is a no-op returning
// false when a worker is already running.
func (w *World) Start(continuous bool) bool {
	if w.worker != nil || w.algorithm == nil {
		return false
	}
	params, err := w.algorithm.SetParam()
	if err != nil {
		w.lastErr = err
		return false
	}

	cmd, state := engine.CmdStartOnce, RunningOnce
	interval := time.Duration(0)
	if continuous {
		cmd, state = engine.CmdStart, RunningContinuous
		interval = w.cfg.Interval
	}
	worker := w.engine.Spawn(context.Background())
	worker.Post(engine.Request{
		Command:    cmd,
		Width:      w.grid.W,
		Height:     w.grid.H,
		Algorithm:  w.algorithm.Name(),
		Grid:       w.grid.Clone().Cells(),
		Params:     params,
		Interval:   interval,
		Seed:       w.rng.Int64(),
		Generation: w.generation,
	})
	w.worker = worker
	w.state = state
	w.lastErr = nil
	w.clock.Reset()
	return true
}

// Stop terminates the worker. Results it produced but that were not yet
// applied are discarded. Stopping an idle world is a no-op.
func (w *World) Stop() {
	if w.worker == nil {
		return
	}
	w.worker.Terminate()
	w.worker = nil
	w.state = Idle
	w.calcTime = 0
}

// Running reports whether a worker is active.
func (w *World) Running() bool { return w.worker != nil }

// State returns the run state.
func (w *World) State() State { return w.state }

// Update applies every message already delivered by the worker without
// blocking and returns the number of generations applied.
func (w *World) Update() int {
	applied := 0
	for w.worker != nil {
		select {
		case r, ok := <-w.worker.Responses():
			if w.handle(r, ok) {
				applied++
			}
		default:
			return applied
		}
	}
	return applied
}

// Next blocks until the worker delivers one message and applies it. It
// reports whether a generation was applied. Calling Next while idle returns
// false immediately.
func (w *World) Next(ctx context.Context) (bool, error) {
	if w.worker == nil {
		return false, nil
	}
	select {
	case r, ok := <-w.worker.Responses():
		return w.handle(r, ok), w.lastErr
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (w *World) handle(r engine.Response, ok bool) bool {
	if !ok {
		w.Stop()
		return false
	}
	switch r.Type {
	case engine.Notify:
		if r.Grid == nil || r.Grid.W != w.grid.W || r.Grid.H != w.grid.H {
			return false
		}
		w.grid = r.Grid
		w.stats = r.Stats
		w.generation++
		w.calcTime = w.clock.Mark()
		return true
	case engine.Complete:
		if r.Err != nil {
			w.lastErr = r.Err
		}
		w.Stop()
	}
	return false
}

// Err returns the error reported by the last run, if any.
func (w *World) Err() error { return w.lastErr }

// Clear stops the worker and kills every cell. Generation and group counters
// restart from zero.
func (w *World) Clear() {
	w.Stop()
	w.grid.Clear()
	w.generation = 0
	w.group = 0
	w.stats = core.Stats{}
	w.deletedX, w.deletedY = -1, -1
}

// SeedRandom fills the rectangle (x0,y0)-(x1,y1), clamped to the grid, with
// new life at probability threshold per cell and kills the other cells. The
// group counter advances once per call. The caller must stop a running world
// first.
func (w *World) SeedRandom(threshold float64, x0, y0, x1, y1 int) {
	if w.algorithm == nil {
		return
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, w.grid.W-1), min(y1, w.grid.H-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if core.Chance(w.rng, threshold) {
				_ = w.grid.SetRecord(x, y, w.algorithm.CreateLife(w.group, w.rng))
			} else {
				w.grid.Kill(x, y)
			}
		}
	}
	w.group++
}

// ToggleCell edits a single cell. With invert set a dead cell is born and a
// live one killed; the killed position is remembered. Without invert the
// cell is born unless it is the position most recently killed, so a drag
// does not immediately revive what its click removed. Coordinates outside
// the grid are ignored.
func (w *World) ToggleCell(x, y int, invert bool) {
	if w.algorithm == nil || !w.grid.InBounds(x, y) {
		return
	}
	if invert {
		if !w.grid.Alive(x, y) {
			_ = w.grid.SetRecord(x, y, w.algorithm.CreateLife(w.group, w.rng))
			return
		}
		w.grid.Kill(x, y)
		w.deletedX, w.deletedY = x, y
		return
	}
	if x != w.deletedX || y != w.deletedY {
		_ = w.grid.SetRecord(x, y, w.algorithm.CreateLife(w.group, w.rng))
	}
}

// Size returns the grid dimensions.
func (w *World) Size() core.Size { return w.grid.Size() }

// Get returns one field of the cell at (x, y).
func (w *World) Get(x, y, field int) int32 { return w.grid.Get(x, y, field) }

// Record returns a copy of the record at (x, y).
func (w *World) Record(x, y int) []int32 { return w.grid.Record(x, y) }

// Cells exposes the current grid buffer for renderers. It must be treated as
// read-only and is replaced on every applied generation.
func (w *World) Cells() []int32 { return w.grid.Cells() }

// Generation returns the number of generations applied since the last init or clear.
func (w *World) Generation() int { return w.generation }

// Group returns the cohort tag stamped on the next seeded life.
func (w *World) Group() int32 { return w.group }

// Stats returns the statistics of the last applied generation.
func (w *World) Stats() core.Stats { return w.stats }

// CalcTime returns the wall time of the last applied generation.
func (w *World) CalcTime() time.Duration { return w.calcTime }

// Status returns a telemetry snapshot.
func (w *World) Status() Status {
	return Status{
		State:      w.state,
		Algorithm:  w.cfg.Algorithm,
		Generation: w.generation,
		Group:      w.group,
		CalcTime:   w.calcTime,
		FPS:        core.PerSecond(w.calcTime),
		Stats:      w.stats,
	}
}
