package program

import (
	"hash/fnv"
	"math/rand/v2"

	"github.com/specialistvlad/ladsynth/internal/ladder"
)

const (
	// ExhaustiveLimit is the largest input count checked over every combination.
	ExhaustiveLimit = 6
	// SampledVectors is the number of pseudo-random vectors added above the limit.
	SampledVectors = 64
)

// Battery returns the input vectors the equivalence check runs for a rung.
// The sample is seeded from the rung name so failures are reproducible.
func Battery(rung string, inputs []string) []ladder.Signals {
	if len(inputs) <= ExhaustiveLimit {
		out := make([]ladder.Signals, 0, 1<<len(inputs))
		for mask := 0; mask < 1<<len(inputs); mask++ {
			out = append(out, vector(inputs, func(i int) bool { return mask&(1<<i) != 0 }))
		}
		return out
	}

	out := []ladder.Signals{
		vector(inputs, func(int) bool { return false }),
		vector(inputs, func(int) bool { return true }),
	}
	for hot := range inputs {
		out = append(out, vector(inputs, func(i int) bool { return i == hot }))
		out = append(out, vector(inputs, func(i int) bool { return i != hot }))
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(rung))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for n := 0; n < SampledVectors; n++ {
		out = append(out, vector(inputs, func(int) bool { return rng.IntN(2) == 1 }))
	}
	return out
}

func vector(inputs []string, value func(i int) bool) ladder.Signals {
	v := make(ladder.Signals, len(inputs))
	for i, k := range inputs {
		v[k] = value(i)
	}
	return v
}
