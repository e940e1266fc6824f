package ga

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// ErrInvalidParameter is returned when a population is built with out-of-range parameters.
var ErrInvalidParameter = errors.New("invalid parameter")

// Params holds the construction parameters of a population
type Params struct {
	Size             int
	ChromosomeLength int
	CrossoverRate    float64
	MutationRate     float64
}

// Validate checks that the parameters describe a usable population.
func (p Params) Validate() error {
	if p.Size < 1 {
		return fmt.Errorf("%w: population size %d must be positive", ErrInvalidParameter, p.Size)
	}
	if p.ChromosomeLength < 1 {
		return fmt.Errorf("%w: chromosome length %d must be positive", ErrInvalidParameter, p.ChromosomeLength)
	}
	if !inUnitInterval(p.CrossoverRate) {
		return fmt.Errorf("%w: crossover rate %v outside [0,1]", ErrInvalidParameter, p.CrossoverRate)
	}
	if !inUnitInterval(p.MutationRate) {
		return fmt.Errorf("%w: mutation rate %v outside [0,1]", ErrInvalidParameter, p.MutationRate)
	}
	return nil
}

// NaN fails both comparisons.
func inUnitInterval(v float64) bool {
	return v >= 0 && v <= 1
}

// Population manages one generation of chromosomes
type Population struct {
	chromosomes   []*Chromosome
	crossoverRate float64
	mutationRate  float64
	generation    int
	totalFitness  float64
	fallbacks     int
	rng           *rand.Rand
}

// NewPopulation creates a new random population.
// A nil rng is replaced by a time-seeded source.
func NewPopulation(params Params, rng *rand.Rand) (*Population, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	p := &Population{
		chromosomes:   make([]*Chromosome, params.Size),
		crossoverRate: params.CrossoverRate,
		mutationRate:  params.MutationRate,
		rng:           rng,
	}
	for i := range p.chromosomes {
		p.chromosomes[i] = NewChromosome(params.ChromosomeLength, rng)
	}

	return p, nil
}

// Size returns the population size
func (p *Population) Size() int {
	return len(p.chromosomes)
}

// Length returns the chromosome length.
func (p *Population) Length() int {
	return p.chromosomes[0].Len()
}

// Generation returns the number of completed Evolve calls.
func (p *Population) Generation() int {
	return p.generation
}

// CrossoverRate returns the probability that a mating pair is crossed over.
func (p *Population) CrossoverRate() float64 {
	return p.crossoverRate
}

// MutationRate returns the per-gene flip probability.
func (p *Population) MutationRate() float64 {
	return p.mutationRate
}

// TotalFitness returns the cached sum of member fitness.
func (p *Population) TotalFitness() float64 {
	return p.totalFitness
}

// MeanFitness returns TotalFitness divided by the population size.
func (p *Population) MeanFitness() float64 {
	return p.totalFitness / float64(len(p.chromosomes))
}

// SelectionFallbacks counts roulette spins that found no candidate
// because of floating-point rounding and were clamped.
func (p *Population) SelectionFallbacks() int {
	return p.fallbacks
}

// Chromosomes returns a deep copy of the current generation, in order.
func (p *Population) Chromosomes() []*Chromosome {
	out := make([]*Chromosome, len(p.chromosomes))
	for i, c := range p.chromosomes {
		out[i] = c.Clone()
	}
	return out
}

// Best returns a copy of the member with the highest cached fitness.
// Ties resolve to the lowest index.
func (p *Population) Best() *Chromosome {
	best := p.chromosomes[0]
	for _, c := range p.chromosomes[1:] {
		if c.fitness > best.fitness {
			best = c
		}
	}
	return best.Clone()
}

// Any reports whether some member satisfies pred.
func (p *Population) Any(pred func(c *Chromosome) bool) bool {
	for _, c := range p.chromosomes {
		if pred(c) {
			return true
		}
	}
	return false
}

// Evaluate refreshes every member's fitness and the population total.
func (p *Population) Evaluate(f FitnessFunc) float64 {
	total := 0.0
	for _, c := range p.chromosomes {
		total += c.UpdateFitness(f)
	}
	p.totalFitness = total
	return total
}

// Evolve replaces the population with the next generation:
// evaluate, reproduce pairwise, swap in, evaluate again.
func (p *Population) Evolve(f FitnessFunc) {
	p.Evaluate(f)

	next := make([]*Chromosome, len(p.chromosomes))
	for i := 0; i < len(next); {
		c0 := p.selection().Clone()
		c1 := p.selection().Clone()

		if p.rng.Float64() < p.crossoverRate {
			c0.Crossover(c1, p.rng)
		}

		c0.Mutate(p.mutationRate, p.rng)
		c1.Mutate(p.mutationRate, p.rng)

		next[i] = c0
		i++
		// Odd sizes drop the second child of the final pair.
		if i < len(next) {
			next[i] = c1
			i++
		}
	}

	p.chromosomes = next
	p.generation++

	p.Evaluate(f)
}

func (p *Population) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generation: %d\n", p.generation)
	fmt.Fprintf(&sb, "Mean Fitness: %g\n", p.MeanFitness())
	sb.WriteString("Population Members: \n")
	for i, c := range p.chromosomes {
		fmt.Fprintf(&sb, "[%02d] %s\n", i, c)
	}
	return sb.String()
}
