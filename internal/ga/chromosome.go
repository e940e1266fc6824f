package ga

import (
	"math/rand"
	"strings"
)

// FitnessFunc scores a chromosome. Higher is fitter. It must be pure.
type FitnessFunc func(c *Chromosome) float64

// Chromosome is a fixed-length binary genome with a cached fitness.
type Chromosome struct {
	genes   []uint8
	fitness float64
}

// NewChromosome creates a chromosome of the given length with uniformly random genes.
func NewChromosome(length int, rng *rand.Rand) *Chromosome {
	c := &Chromosome{genes: make([]uint8, length)}
	for i := range c.genes {
		c.genes[i] = uint8(rng.Intn(2))
	}
	return c
}

// FromGenes builds a chromosome from explicit genes. Any non-zero value is a 1.
// Empty genes give a zero-length chromosome, which Crossover leaves untouched.
func FromGenes(genes []uint8) *Chromosome {
	c := &Chromosome{genes: make([]uint8, len(genes))}
	for i, g := range genes {
		if g != 0 {
			c.genes[i] = 1
		}
	}
	return c
}

// Clone creates a deep copy of a chromosome
func (c *Chromosome) Clone() *Chromosome {
	genes := make([]uint8, len(c.genes))
	copy(genes, c.genes)
	return &Chromosome{genes: genes, fitness: c.fitness}
}

// Len returns the number of genes.
func (c *Chromosome) Len() int {
	return len(c.genes)
}

// Gene returns the gene at index i.
func (c *Chromosome) Gene(i int) uint8 {
	return c.genes[i]
}

// Genes returns a copy of the gene vector.
func (c *Chromosome) Genes() []uint8 {
	genes := make([]uint8, len(c.genes))
	copy(genes, c.genes)
	return genes
}

// Ones returns the number of genes set to 1.
func (c *Chromosome) Ones() int {
	n := 0
	for _, g := range c.genes {
		n += int(g)
	}
	return n
}

// Fitness returns the cached fitness. It is stale until UpdateFitness is called.
func (c *Chromosome) Fitness() float64 {
	return c.fitness
}

// UpdateFitness evaluates f, caches the result and returns it.
func (c *Chromosome) UpdateFitness(f FitnessFunc) float64 {
	c.fitness = f(c)
	return c.fitness
}

// Equal reports whether both chromosomes carry the same genes.
func (c *Chromosome) Equal(other *Chromosome) bool {
	if len(c.genes) != len(other.genes) {
		return false
	}
	for i := range c.genes {
		if c.genes[i] != other.genes[i] {
			return false
		}
	}
	return true
}

func (c *Chromosome) String() string {
	var sb strings.Builder
	for i, g := range c.genes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('0' + g)
	}
	return sb.String()
}
