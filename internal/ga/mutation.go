package ga

import (
	"math/rand"
)

// Mutate applies bitwise mutation in-place: each gene flips independently with probability rate.
// It returns the number of flipped genes.
func (c *Chromosome) Mutate(rate float64, rng *rand.Rand) int {
	flips := 0
	for i := range c.genes {
		if rng.Float64() < rate {
			c.genes[i] ^= 1
			flips++
		}
	}
	return flips
}
