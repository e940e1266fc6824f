package ga

// selection spins the roulette wheel: each member is picked with
// probability fitness/totalFitness. Fitness and totalFitness must be current.
//
// The wheel is walked from the last member to the first. Reversing the
// direction keeps the distribution but changes which member wins a tie,
// so the order is fixed for reproducible seeded runs.
//
// When rounding in the running total leaves no candidate, the spin is
// clamped to the last member visited, chromosomes[0], not chromosomes[N-1].
func (p *Population) selection() *Chromosome {
	spin := p.rng.Float64() * p.totalFitness
	remaining := p.totalFitness
	for i := len(p.chromosomes) - 1; i >= 0; i-- {
		c := p.chromosomes[i]
		remaining -= c.fitness
		if remaining <= spin {
			return c
		}
	}

	// Only reachable through rounding in the running total.
	// chromosomes[0] is the last member the walk visited.
	p.fallbacks++
	return p.chromosomes[0]
}
