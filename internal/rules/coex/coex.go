// Package coex implements the CO_EX rule: cooperative cells (type 0) live
// off any neighbour while exclusive cells (type 1) only tolerate their own kind.
package coex

import (
	"math/rand/v2"

	"lifeworld/internal/core"
	"lifeworld/internal/rules"
)

const (
	typeCooperative = 0
	typeExclusive   = 1
)

// Tunable keys.
const (
	KeyBirth              = "birth"
	KeySurviveMin         = "survive_min"
	KeySurviveMax         = "survive_max"
	KeyExclusiveTolerance = "exclusive_tolerance"
)

// DefaultParams returns the standard CO_EX tunables.
func DefaultParams() core.Params {
	p := rules.Base()
	p[KeyBirth] = 3
	p[KeySurviveMin] = 2
	p[KeySurviveMax] = 3
	p[KeyExclusiveTolerance] = 1
	return p
}

// CoEx implements the cooperative/exclusive rule.
type CoEx struct {
	params core.Params
}

// New returns a CoEx rule with default tunables.
func New() *CoEx {
	return &CoEx{params: DefaultParams()}
}

// FromMap returns a CoEx rule with flag-style overrides applied.
func FromMap(cfg map[string]string) *CoEx {
	c := New()
	c.params.Merge(cfg)
	return c
}

// Name returns the algorithm tag.
func (c *CoEx) Name() string { return core.TagCoEx }

// Params returns a copy of the current tunables.
func (c *CoEx) Params() core.Params { return c.params.Clone() }

// CreateLife returns a newborn record with a type drawn from type_ratio.
func (c *CoEx) CreateLife(group int32, rng *rand.Rand) []int32 {
	rec := make([]int32, core.NumFields)
	rules.Spawn(rec, group, c.params, rng)
	return rec
}

// SetFloatParameter updates a tunable in place.
func (c *CoEx) SetFloatParameter(key string, value float64) bool {
	return c.params.Set(key, value)
}

// SetParam encodes the tunables for the step engine.
func (c *CoEx) SetParam() ([]byte, error) { return core.EncodeParams(c.params) }

// Parameters exposes the tunables for display.
func (c *CoEx) Parameters() core.ParameterSnapshot {
	return core.SnapshotOf(c.Name(), c.params, KeyBirth, KeySurviveMin, KeySurviveMax, KeyExclusiveTolerance, rules.KeyPowerMax)
}

// Step applies the CO_EX rule to (x, y).
func (c *CoEx) Step(cur *core.Grid, x, y int, p core.Params, rng *rand.Rand, next []int32) {
	var coop, excl int
	cur.ForEachNeighbor(x, y, func(nx, ny int) {
		if !cur.Alive(nx, ny) {
			return
		}
		if cur.Get(nx, ny, core.FieldType) == typeExclusive {
			excl++
		} else {
			coop++
		}
	})

	lo, hi := p.Int(KeySurviveMin, 2), p.Int(KeySurviveMax, 3)
	if !cur.Alive(x, y) {
		total := coop + excl
		if total != p.Int(KeyBirth, 3) {
			return
		}
		rules.Spawn(next, rules.ParentGroup(cur, x, y), p, rng)
		next[core.FieldType] = typeCooperative
		if excl*2 > total {
			next[core.FieldType] = typeExclusive
		}
		return
	}

	var support int
	if cur.Get(x, y, core.FieldType) == typeExclusive {
		if coop > p.Int(KeyExclusiveTolerance, 1) {
			return
		}
		support = excl
	} else {
		support = coop + excl
	}
	if support < lo || support > hi {
		return
	}
	rules.Survive(cur, x, y, next)
}

func init() {
	core.Register(core.TagCoEx, func(cfg map[string]string) core.Algorithm {
		return FromMap(cfg)
	})
}
