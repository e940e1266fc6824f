package ga

import (
	"math/rand"
)

// Crossover performs single-point crossover with other in place.
// The point is drawn uniformly from [0, Len) and returned.
// Zero-length chromosomes are left alone and no point is drawn.
func (c *Chromosome) Crossover(other *Chromosome, rng *rand.Rand) int {
	if len(c.genes) == 0 {
		return 0
	}
	point := rng.Intn(len(c.genes))
	c.CrossoverAt(other, point)
	return point
}

// CrossoverAt swaps every gene at index >= point between c and other.
// A point of 0 swaps the whole genome; applying the same point twice
// restores both chromosomes.
func (c *Chromosome) CrossoverAt(other *Chromosome, point int) {
	for i := point; i < len(c.genes); i++ {
		c.genes[i], other.genes[i] = other.genes[i], c.genes[i]
	}
}
