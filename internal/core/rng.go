package core

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/google/uuid"
)

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// RowRNG returns the RNG used for one row of one generation. Deriving it from
// (seed, generation, row) keeps results independent of how rows are scheduled.
func RowRNG(seed int64, generation, row int) *rand.Rand {
	hi := uint64(seed)
	lo := uint64(generation)<<32 ^ uint64(uint32(row))
	return rand.New(rand.NewPCG(hi, lo))
}

type rngReader struct {
	r *rand.Rand
}

func (rr rngReader) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], rr.r.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}

// NewID draws a random UUID from rng and folds it into a positive id.
func NewID(rng *rand.Rand) int32 {
	u, err := uuid.NewRandomFromReader(rngReader{r: rng})
	if err != nil {
		return 1
	}
	id := int32(u.ID() & 0x7fffffff)
	if id == 0 {
		id = 1
	}
	return id
}

// Direction draws a direction component encoded in {0, 1, 2}.
func Direction(rng *rand.Rand) int32 {
	return int32(rng.IntN(3))
}

// Chance reports whether a Bernoulli trial with probability p succeeds.
// p <= 0 never succeeds and p >= 1 always does.
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
