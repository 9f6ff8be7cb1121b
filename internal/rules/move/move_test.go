package move

import (
	"testing"

	"lifeworld/internal/core"
)

func mover(g *core.Grid, x, y int, power, dirX, dirY, sex int32) {
	_ = g.SetRecord(x, y, []int32{1, int32(100 + y*g.W + x), 0, 0, sex, power, dirX, dirY, 0, 0})
}

func stepAll(m *Move, cur *core.Grid, p core.Params) *core.Grid {
	next, _ := core.NewGrid(cur.W, cur.H)
	for y := 0; y < cur.H; y++ {
		rng := core.RowRNG(9, 0, y)
		for x := 0; x < cur.W; x++ {
			i := next.Index(x, y)
			m.Step(cur, x, y, p, rng, next.Cells()[i:i+core.NumFields])
		}
	}
	return next
}

func quiet() core.Params {
	p := DefaultParams()
	p[KeyTurnRate] = 0
	return p
}

func TestCellMovesAlongDirection(t *testing.T) {
	m := New()
	g, _ := core.NewGrid(5, 5)
	mover(g, 1, 1, 10, 2, 1, 0)

	next := stepAll(m, g, quiet())
	if next.Alive(1, 1) || !next.Alive(2, 1) {
		t.Fatal("cell should have moved one step east")
	}
	if id := next.Get(2, 1, core.FieldID); id != g.Get(1, 1, core.FieldID) {
		t.Fatalf("moved cell lost its identity: %d", id)
	}
	if pw := next.Get(2, 1, core.FieldPower); pw != 9 {
		t.Fatalf("power after move = %d, want 9", pw)
	}
	if age := next.Get(2, 1, core.FieldAge); age != 1 {
		t.Fatalf("age after move = %d, want 1", age)
	}
}

func TestWallReflects(t *testing.T) {
	m := New()
	g, _ := core.NewGrid(3, 3)
	mover(g, 2, 1, 10, 2, 1, 0)

	next := stepAll(m, g, quiet())
	if !next.Alive(2, 1) {
		t.Fatal("cell at the wall should stay put")
	}
	if d := next.Get(2, 1, core.FieldDirX); d != 0 {
		t.Fatalf("dirX after reflection = %d, want 0", d)
	}
	if pw := next.Get(2, 1, core.FieldPower); pw != 10 {
		t.Fatalf("stationary cell paid move cost: power %d", pw)
	}

	next = stepAll(m, next, quiet())
	if !next.Alive(1, 1) || next.Alive(2, 1) {
		t.Fatal("reflected cell should head west on the following tick")
	}
}

func TestCollisionStrongestWins(t *testing.T) {
	m := New()
	g, _ := core.NewGrid(5, 3)
	mover(g, 1, 1, 5, 2, 1, 0)  // east into (2,1)
	mover(g, 3, 1, 20, 0, 1, 0) // west into (2,1)

	next := stepAll(m, g, quiet())
	if next.CountAlive() != 1 {
		t.Fatalf("expected a single survivor, got %d", next.CountAlive())
	}
	if id := next.Get(2, 1, core.FieldID); id != g.Get(3, 1, core.FieldID) {
		t.Fatalf("winner id = %d, want the stronger cell", id)
	}
}

func TestCollisionTieGoesToFirstSource(t *testing.T) {
	m := New()
	g, _ := core.NewGrid(5, 3)
	mover(g, 1, 1, 8, 2, 1, 0)
	mover(g, 3, 1, 8, 0, 1, 0)

	next := stepAll(m, g, quiet())
	if id := next.Get(2, 1, core.FieldID); id != g.Get(1, 1, core.FieldID) {
		t.Fatalf("tie winner id = %d, want the row-major first source", id)
	}
}

func TestExhaustedCellDies(t *testing.T) {
	m := New()
	g, _ := core.NewGrid(4, 4)
	mover(g, 1, 1, 1, 2, 2, 0)

	next := stepAll(m, g, quiet())
	if next.CountAlive() != 0 {
		t.Fatal("cell with no power left should die")
	}
}

func TestBirthNeedsBothSexes(t *testing.T) {
	m := New()
	g, _ := core.NewGrid(5, 5)
	// Stationary parents around (2,2).
	mover(g, 1, 1, 10, 1, 1, 0)
	mover(g, 2, 1, 10, 1, 1, 0)
	mover(g, 3, 1, 10, 1, 1, 1)

	next := stepAll(m, g, quiet())
	if !next.Alive(2, 2) {
		t.Fatal("expected a birth below the parents")
	}

	g.Set(3, 1, core.FieldSex, 0)
	next = stepAll(m, g, quiet())
	if next.Alive(2, 2) {
		t.Fatal("single-sex parents should not give birth")
	}
}
