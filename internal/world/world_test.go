package world

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"lifeworld/internal/core"
	_ "lifeworld/internal/rules/coex"
	_ "lifeworld/internal/rules/move"
	_ "lifeworld/internal/rules/normal"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 24
	cfg.Height = 18
	cfg.Seed = 42
	cfg.Interval = 0
	cfg.Workers = 2
	return cfg
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func next(t *testing.T, w *World) bool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applied, err := w.Next(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("timed out waiting for the worker")
	}
	return applied
}

func countAlive(w *World, x0, y0, x1, y1 int) int {
	n := 0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if w.Get(x, y, core.FieldAlive) != 0 {
				n++
			}
		}
	}
	return n
}

func TestNewWorldIsEmpty(t *testing.T) {
	w := newTestWorld(t)
	zero := make([]int32, core.NumFields)
	for y := 0; y < 18; y++ {
		for x := 0; x < 24; x++ {
			if !slices.Equal(w.Record(x, y), zero) {
				t.Fatalf("cell (%d,%d) not zero after init", x, y)
			}
		}
	}
	if w.State() != Idle || w.Generation() != 0 || w.Group() != 0 {
		t.Fatalf("unexpected initial status %+v", w.Status())
	}
}

func TestInitRejectsInvalidSize(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 0
	if _, err := New(cfg); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}
	w := newTestWorld(t)
	if err := w.Init(-1, 4); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("Init err = %v, want ErrInvalidSize", err)
	}
	if w.Size() != (core.Size{W: 24, H: 18}) {
		t.Fatal("failed Init replaced the grid")
	}
}

func TestNewWithoutRegisteredRules(t *testing.T) {
	none := func(string, map[string]string) core.Algorithm { return nil }
	if _, err := newWorld(testConfig(), nil, none); !errors.Is(err, ErrNoAlgorithm) {
		t.Fatalf("err = %v, want ErrNoAlgorithm", err)
	}
}

func TestEditsWithoutAlgorithmAreNoops(t *testing.T) {
	w := newTestWorld(t)
	w.algorithm = nil
	w.SeedRandom(1, 0, 0, 23, 17)
	w.ToggleCell(3, 3, true)
	w.ToggleCell(4, 4, false)
	if n := countAlive(w, 0, 0, 23, 17); n != 0 {
		t.Fatalf("%d cells born without an algorithm", n)
	}
	if w.Group() != 0 {
		t.Fatalf("group = %d, want 0", w.Group())
	}
	if w.Start(true) {
		t.Fatal("Start succeeded without an algorithm")
	}
}

func TestSetAlgorithmFallsBack(t *testing.T) {
	w := newTestWorld(t)
	if got := w.SetAlgorithm(core.TagMove); got != core.TagMove {
		t.Fatalf("SetAlgorithm(MOVE) = %q", got)
	}
	if got := w.SetAlgorithm("GLIDER"); got != core.TagNormal {
		t.Fatalf("unknown tag resolved to %q, want NORMAL", got)
	}
}

func TestTuneUpdatesActiveRule(t *testing.T) {
	w := newTestWorld(t)
	if !w.Tune("birth", 4) {
		t.Fatal("Tune(birth) rejected")
	}
	if w.Tune("no_such_key", 1) {
		t.Fatal("Tune accepted an unknown key")
	}
	b, err := w.Algorithm().SetParam()
	if err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	p, err := core.DecodeParams(b)
	if err != nil {
		t.Fatalf("DecodeParams: %v", err)
	}
	if p["birth"] != 4 {
		t.Fatalf("birth = %v after Tune, want 4", p["birth"])
	}
}

func TestSeedRandomThresholds(t *testing.T) {
	w := newTestWorld(t)
	w.SeedRandom(1, 2, 3, 9, 8)
	if n := countAlive(w, 2, 3, 9, 8); n != 8*6 {
		t.Fatalf("threshold 1 filled %d of %d cells", n, 8*6)
	}
	for y := 3; y <= 8; y++ {
		for x := 2; x <= 9; x++ {
			if w.Get(x, y, core.FieldID) == 0 {
				t.Fatalf("seeded cell (%d,%d) has no id", x, y)
			}
			if w.Get(x, y, core.FieldGroup) != 0 {
				t.Fatalf("first seeding should stamp group 0")
			}
		}
	}
	if n := countAlive(w, 0, 0, 23, 17); n != 8*6 {
		t.Fatalf("seeding leaked outside the rectangle: %d alive", n)
	}
	if w.Group() != 1 {
		t.Fatalf("group = %d after one seeding, want 1", w.Group())
	}

	w.SeedRandom(0, 2, 3, 9, 8)
	if n := countAlive(w, 0, 0, 23, 17); n != 0 {
		t.Fatalf("threshold 0 left %d cells alive", n)
	}
	if !slices.Equal(w.Record(5, 5), make([]int32, core.NumFields)) {
		t.Fatal("cells cleared by seeding must be zeroed")
	}
	if w.Group() != 2 {
		t.Fatalf("group = %d after two seedings, want 2", w.Group())
	}
}

func TestSeedRandomClampsRectangle(t *testing.T) {
	w := newTestWorld(t)
	w.SeedRandom(1, -10, -10, 100, 100)
	if n := countAlive(w, 0, 0, 23, 17); n != 24*18 {
		t.Fatalf("clamped seeding filled %d cells, want %d", n, 24*18)
	}
}

func TestToggleCellInvertRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	w.ToggleCell(4, 4, true)
	if w.Get(4, 4, core.FieldAlive) != 1 || w.Get(4, 4, core.FieldID) == 0 {
		t.Fatal("toggle should birth a dead cell")
	}
	w.ToggleCell(4, 4, true)
	if w.Get(4, 4, core.FieldAlive) != 0 {
		t.Fatal("second toggle should kill the cell")
	}
	if !slices.Equal(w.Record(4, 4), make([]int32, core.NumFields)) {
		t.Fatal("killed cell should be zeroed")
	}
}

func TestToggleCellPaintSkipsDeleted(t *testing.T) {
	w := newTestWorld(t)
	w.ToggleCell(3, 3, true)
	w.ToggleCell(3, 3, true) // remembered as deleted

	w.ToggleCell(3, 3, false)
	if w.Get(3, 3, core.FieldAlive) != 0 {
		t.Fatal("painting over the just-deleted cell must not revive it")
	}
	w.ToggleCell(3, 4, false)
	if w.Get(3, 4, core.FieldAlive) != 1 {
		t.Fatal("painting should birth other cells")
	}

	w.ToggleCell(-1, 2, true)
	w.ToggleCell(24, 2, false)
}

func TestStartOnce(t *testing.T) {
	w := newTestWorld(t)
	w.SeedRandom(0.4, 0, 0, 23, 17)
	before := countAlive(w, 0, 0, 23, 17)

	if !w.Start(false) {
		t.Fatal("Start on an idle world failed")
	}
	if w.State() != RunningOnce {
		t.Fatalf("state = %v, want running-once", w.State())
	}
	for w.Running() {
		next(t, w)
	}
	if w.Generation() != 1 {
		t.Fatalf("generation = %d after one step", w.Generation())
	}
	if w.State() != Idle {
		t.Fatalf("state = %v after completion, want idle", w.State())
	}
	st := w.Stats()
	if st.Live != countAlive(w, 0, 0, 23, 17) {
		t.Fatalf("Live = %d, grid has %d", st.Live, countAlive(w, 0, 0, 23, 17))
	}
	if st.Live-before != st.Births-st.Deaths {
		t.Fatalf("births/deaths %+v do not explain %d -> %d", st, before, st.Live)
	}
	if w.Err() != nil {
		t.Fatalf("Err = %v", w.Err())
	}
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	w := newTestWorld(t)
	w.SeedRandom(0.4, 0, 0, 23, 17)
	if !w.Start(true) {
		t.Fatal("first Start failed")
	}
	if w.Start(true) || w.Start(false) {
		t.Fatal("second Start should be a no-op")
	}
	if w.State() != RunningContinuous {
		t.Fatalf("state = %v, want running", w.State())
	}
	for i := 1; i <= 5; i++ {
		if !next(t, w) {
			t.Fatalf("message %d did not apply a generation", i)
		}
		if w.Generation() != i {
			t.Fatalf("generation = %d after %d messages; a second stream is running", w.Generation(), i)
		}
	}
}

func TestStopDiscardsPendingResults(t *testing.T) {
	w := newTestWorld(t)
	w.SeedRandom(0.4, 0, 0, 23, 17)
	w.Start(true)
	next(t, w)
	next(t, w)

	// Give the worker time to queue another generation before stopping.
	time.Sleep(20 * time.Millisecond)
	w.Stop()
	gen := w.Generation()
	snapshot := slices.Clone(w.Cells())

	time.Sleep(20 * time.Millisecond)
	if n := w.Update(); n != 0 {
		t.Fatalf("Update applied %d generations after Stop", n)
	}
	if applied, err := w.Next(context.Background()); applied || err != nil {
		t.Fatalf("Next after Stop = %v, %v", applied, err)
	}
	if w.Generation() != gen || !slices.Equal(snapshot, w.Cells()) {
		t.Fatal("world changed after Stop")
	}
	if w.State() != Idle || w.CalcTime() != 0 {
		t.Fatalf("status not reset after Stop: %+v", w.Status())
	}
	w.Stop()
}

func TestUpdateDrainsWithoutBlocking(t *testing.T) {
	w := newTestWorld(t)
	w.SeedRandom(0.4, 0, 0, 23, 17)
	if n := w.Update(); n != 0 {
		t.Fatalf("Update on idle world applied %d", n)
	}
	w.Start(true)
	deadline := time.Now().Add(5 * time.Second)
	total := 0
	for total < 3 && time.Now().Before(deadline) {
		total += w.Update()
		time.Sleep(time.Millisecond)
	}
	if total < 3 || w.Generation() != total {
		t.Fatalf("applied %d generations, counter at %d", total, w.Generation())
	}
}

func TestCalcTimeRecorded(t *testing.T) {
	now := time.Unix(0, 0)
	w, err := newWorld(testConfig(), func() time.Time {
		now = now.Add(25 * time.Millisecond)
		return now
	}, core.Select)
	if err != nil {
		t.Fatalf("newWorld: %v", err)
	}
	defer w.Stop()
	w.SeedRandom(0.3, 0, 0, 23, 17)
	w.Start(true)
	next(t, w)
	if w.CalcTime() != 25*time.Millisecond {
		t.Fatalf("CalcTime = %v, want 25ms", w.CalcTime())
	}
	if st := w.Status(); st.FPS != 40 || st.Generation != 1 || st.State != RunningContinuous {
		t.Fatalf("status = %+v", st)
	}
}

func TestClearResetsCounters(t *testing.T) {
	w := newTestWorld(t)
	w.SeedRandom(0.5, 0, 0, 23, 17)
	w.Start(false)
	for w.Running() {
		next(t, w)
	}
	w.Clear()
	if countAlive(w, 0, 0, 23, 17) != 0 || w.Generation() != 0 || w.Group() != 0 {
		t.Fatalf("Clear left state behind: %+v", w.Status())
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{"w": "64", "h": "-3", "algo": "co_ex", "interval": "10ms", "birth": "4"})
	if cfg.Width != 64 || cfg.Height != DefaultConfig().Height {
		t.Fatalf("dimensions = %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Algorithm != core.TagCoEx || cfg.Interval != 10*time.Millisecond {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.AlgorithmParams["birth"] != "4" {
		t.Fatalf("algorithm override lost: %v", cfg.AlgorithmParams)
	}
}
