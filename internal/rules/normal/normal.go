package normal

import (
	"math/rand/v2"

	"lifeworld/internal/core"
	"lifeworld/internal/rules"
)

// Tunable keys.
const (
	KeyBirth        = "birth"
	KeySurviveMin   = "survive_min"
	KeySurviveMax   = "survive_max"
	KeyMaxAge       = "max_age"
	KeyMutationRate = "mutation_rate"
)

// DefaultParams returns the B3/S23 rule with ageing disabled.
func DefaultParams() core.Params {
	p := rules.Base()
	p[KeyBirth] = 3
	p[KeySurviveMin] = 2
	p[KeySurviveMax] = 3
	p[KeyMaxAge] = 0
	p[KeyMutationRate] = 0.01
	return p
}

// Normal implements the classic survive/birth rule over multi-field records.
type Normal struct {
	params core.Params
}

// New returns a Normal rule with default tunables.
func New() *Normal {
	return &Normal{params: DefaultParams()}
}

// FromMap returns a Normal rule with flag-style overrides applied.
func FromMap(cfg map[string]string) *Normal {
	n := New()
	n.params.Merge(cfg)
	return n
}

// Name returns the algorithm tag.
func (n *Normal) Name() string { return core.TagNormal }

// Params returns a copy of the current tunables.
func (n *Normal) Params() core.Params { return n.params.Clone() }

// CreateLife returns a newborn record.
func (n *Normal) CreateLife(group int32, rng *rand.Rand) []int32 {
	rec := make([]int32, core.NumFields)
	rules.Spawn(rec, group, n.params, rng)
	return rec
}

// SetFloatParameter updates a tunable in place.
func (n *Normal) SetFloatParameter(key string, value float64) bool {
	return n.params.Set(key, value)
}

// SetParam encodes the tunables for the step engine.
func (n *Normal) SetParam() ([]byte, error) { return core.EncodeParams(n.params) }

// Parameters exposes the tunables for display.
func (n *Normal) Parameters() core.ParameterSnapshot {
	return core.SnapshotOf(n.Name(), n.params, KeyBirth, KeySurviveMin, KeySurviveMax, KeyMaxAge, rules.KeyPowerMax)
}

// Step applies the survive/birth rule to (x, y).
func (n *Normal) Step(cur *core.Grid, x, y int, p core.Params, rng *rand.Rand, next []int32) {
	live := cur.LiveNeighbors(x, y)
	if !cur.Alive(x, y) {
		if live == p.Int(KeyBirth, 3) {
			rules.Spawn(next, rules.ParentGroup(cur, x, y), p, rng)
		}
		return
	}

	if live < p.Int(KeySurviveMin, 2) || live > p.Int(KeySurviveMax, 3) {
		return
	}
	rules.Survive(cur, x, y, next)
	if maxAge := p.Int(KeyMaxAge, 0); maxAge > 0 && int(next[core.FieldAge]) > maxAge {
		clear(next)
		return
	}
	if core.Chance(rng, p.Prob(KeyMutationRate, 0)) {
		powerMax := p.Int(rules.KeyPowerMax, 100)
		if powerMax < 1 {
			powerMax = 1
		}
		next[core.FieldPower] = int32(1 + rng.IntN(powerMax))
	}
}

func init() {
	core.Register(core.TagNormal, func(cfg map[string]string) core.Algorithm {
		return FromMap(cfg)
	})
}
