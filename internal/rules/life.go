// Package rules holds helpers shared by the life rule variants. The variants
// themselves live in sub-packages and register with core on import.
package rules

import (
	"math/rand/v2"

	"lifeworld/internal/core"
)

// Tunables understood by every variant.
const (
	KeyPowerMax  = "power_max"
	KeyTypeRatio = "type_ratio"
)

// Base returns the tunables shared by all variants.
func Base() core.Params {
	return core.Params{
		KeyPowerMax:  100,
		KeyTypeRatio: 0.5,
	}
}

// Spawn writes a newborn record stamped with group into rec.
func Spawn(rec []int32, group int32, p core.Params, rng *rand.Rand) {
	clear(rec)
	powerMax := p.Int(KeyPowerMax, 100)
	if powerMax < 1 {
		powerMax = 1
	}
	rec[core.FieldAlive] = 1
	rec[core.FieldID] = core.NewID(rng)
	rec[core.FieldGroup] = group
	rec[core.FieldSex] = int32(rng.IntN(2))
	rec[core.FieldPower] = int32(1 + rng.IntN(powerMax))
	rec[core.FieldDirX] = core.Direction(rng)
	rec[core.FieldDirY] = core.Direction(rng)
	if core.Chance(rng, p.Prob(KeyTypeRatio, 0.5)) {
		rec[core.FieldType] = 1
	}
}

// Survive copies the current record of (x, y) into next and ages it by one tick.
func Survive(cur *core.Grid, x, y int, next []int32) {
	i := cur.Index(x, y)
	copy(next, cur.Cells()[i:i+core.NumFields])
	next[core.FieldAge]++
}

// ParentGroup returns the newest group among the live neighbours of (x, y).
func ParentGroup(cur *core.Grid, x, y int) int32 {
	var group int32
	cur.ForEachNeighbor(x, y, func(nx, ny int) {
		if cur.Alive(nx, ny) {
			if g := cur.Get(nx, ny, core.FieldGroup); g > group {
				group = g
			}
		}
	})
	return group
}
