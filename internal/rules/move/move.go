// Package move implements the MOVE rule: live cells travel along their
// direction fields every tick and fight over contested targets.
package move

import (
	"math/rand/v2"

	"lifeworld/internal/core"
	"lifeworld/internal/rules"
)

// Tunable keys.
const (
	KeyMoveCost = "move_cost"
	KeyTurnRate = "turn_rate"
	KeyBirth    = "birth"
)

// DefaultParams returns the standard MOVE tunables.
func DefaultParams() core.Params {
	p := rules.Base()
	p[KeyMoveCost] = 1
	p[KeyTurnRate] = 0.05
	p[KeyBirth] = 3
	return p
}

// Move implements the directional movement rule.
type Move struct {
	params core.Params
}

// New returns a Move rule with default tunables.
func New() *Move {
	return &Move{params: DefaultParams()}
}

// FromMap returns a Move rule with flag-style overrides applied.
func FromMap(cfg map[string]string) *Move {
	m := New()
	m.params.Merge(cfg)
	return m
}

// Name returns the algorithm tag.
func (m *Move) Name() string { return core.TagMove }

// Params returns a copy of the current tunables.
func (m *Move) Params() core.Params { return m.params.Clone() }

// CreateLife returns a newborn record.
func (m *Move) CreateLife(group int32, rng *rand.Rand) []int32 {
	rec := make([]int32, core.NumFields)
	rules.Spawn(rec, group, m.params, rng)
	return rec
}

// SetFloatParameter updates a tunable in place.
func (m *Move) SetFloatParameter(key string, value float64) bool {
	return m.params.Set(key, value)
}

// SetParam encodes the tunables for the step engine.
func (m *Move) SetParam() ([]byte, error) { return core.EncodeParams(m.params) }

// Parameters exposes the tunables for display.
func (m *Move) Parameters() core.ParameterSnapshot {
	return core.SnapshotOf(m.Name(), m.params, KeyMoveCost, KeyBirth, rules.KeyPowerMax)
}

// destination returns where the live cell at (x, y) ends up this tick and the
// direction it carries there. A cell heading out of the grid reflects the
// offending components and stays put.
func destination(g *core.Grid, x, y int) (tx, ty int, dirX, dirY int32) {
	dirX, dirY = g.Get(x, y, core.FieldDirX), g.Get(x, y, core.FieldDirY)
	tx, ty = x+int(dirX)-1, y+int(dirY)-1
	if tx >= 0 && tx < g.W && ty >= 0 && ty < g.H {
		return tx, ty, dirX, dirY
	}
	if tx < 0 || tx >= g.W {
		dirX = 2 - dirX
	}
	if ty < 0 || ty >= g.H {
		dirY = 2 - dirY
	}
	return x, y, dirX, dirY
}

// Step resolves which mover, if any, occupies (x, y) next tick.
func (m *Move) Step(cur *core.Grid, x, y int, p core.Params, rng *rand.Rand, next []int32) {
	found := false
	var winX, winY int
	var winDirX, winDirY, winPower int32
	// Sources are visited in row-major order so the first of equally strong
	// movers wins.
	for dy := -1; dy <= 1; dy++ {
		sy := y + dy
		if sy < 0 || sy >= cur.H {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			sx := x + dx
			if sx < 0 || sx >= cur.W || !cur.Alive(sx, sy) {
				continue
			}
			tx, ty, dirX, dirY := destination(cur, sx, sy)
			if tx != x || ty != y {
				continue
			}
			power := cur.Get(sx, sy, core.FieldPower)
			if !found || power > winPower {
				found = true
				winX, winY = sx, sy
				winDirX, winDirY, winPower = dirX, dirY, power
			}
		}
	}

	if !found {
		m.birth(cur, x, y, p, rng, next)
		return
	}

	rules.Survive(cur, winX, winY, next)
	next[core.FieldDirX], next[core.FieldDirY] = winDirX, winDirY
	if winX != x || winY != y {
		next[core.FieldPower] -= int32(p.Int(KeyMoveCost, 1))
	}
	if next[core.FieldPower] <= 0 {
		clear(next)
		return
	}
	if core.Chance(rng, p.Prob(KeyTurnRate, 0)) {
		next[core.FieldDirX] = core.Direction(rng)
		next[core.FieldDirY] = core.Direction(rng)
	}
}

// birth fills an unclaimed empty cell when exactly birth neighbours of both
// sexes surround it.
func (m *Move) birth(cur *core.Grid, x, y int, p core.Params, rng *rand.Rand, next []int32) {
	if cur.Alive(x, y) {
		return
	}
	var live int
	var sexes [2]bool
	cur.ForEachNeighbor(x, y, func(nx, ny int) {
		if cur.Alive(nx, ny) {
			live++
			sexes[cur.Get(nx, ny, core.FieldSex)&1] = true
		}
	})
	if live != p.Int(KeyBirth, 3) || !sexes[0] || !sexes[1] {
		return
	}
	rules.Spawn(next, rules.ParentGroup(cur, x, y), p, rng)
}

func init() {
	core.Register(core.TagMove, func(cfg map[string]string) core.Algorithm {
		return FromMap(cfg)
	})
}
