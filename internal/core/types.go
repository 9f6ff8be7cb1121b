package core

import (
	"math/rand/v2"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Algorithm tags understood by Select.
const (
	TagNormal = "NORMAL"
	TagCoEx   = "CO_EX"
	TagMove   = "MOVE"
)

// Algorithm defines the contract a life rule must implement.
type Algorithm interface {
	Name() string
	// CreateLife returns a freshly born record stamped with group.
	CreateLife(group int32, rng *rand.Rand) []int32
	// SetParam encodes the current tunables for transport to the engine.
	SetParam() ([]byte, error)
	// Step writes the next record of (x, y) into next, reading only cur.
	// next is zeroed on entry and has NumFields entries.
	Step(cur *Grid, x, y int, p Params, rng *rand.Rand, next []int32)
}

// Factory constructs an Algorithm using an optional configuration map.
type Factory func(cfg map[string]string) Algorithm

var algorithms = map[string]Factory{}

// Register adds an algorithm factory under the provided tag.
func Register(tag string, f Factory) {
	if tag == "" || f == nil {
		return
	}
	algorithms[tag] = f
}

// Tags returns the registered tags in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(algorithms))
	for tag := range algorithms {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Resolve maps a tag to a registered tag, falling back to NORMAL.
func Resolve(tag string) string {
	if _, ok := algorithms[tag]; ok {
		return tag
	}
	return TagNormal
}

// Select constructs the algorithm registered under tag. Unknown tags fall back
// to NORMAL. It returns nil only when NORMAL itself is not registered.
func Select(tag string, cfg map[string]string) Algorithm {
	f, ok := algorithms[Resolve(tag)]
	if !ok {
		return nil
	}
	return f(cfg)
}
