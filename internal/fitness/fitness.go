// Package fitness holds the fitness functions and termination predicates
// the driver plugs into the ga core.
package fitness

import (
	"fmt"
	"sort"
	"strings"

	"bitga/internal/ga"
)

// CountOnes scores a chromosome by its number of 1 genes.
func CountOnes(c *ga.Chromosome) float64 {
	return float64(c.Ones())
}

// LeadingOnes scores a chromosome by the length of its run of 1 genes from index 0.
func LeadingOnes(c *ga.Chromosome) float64 {
	n := 0
	for i := 0; i < c.Len() && c.Gene(i) == 1; i++ {
		n++
	}
	return float64(n)
}

// AllOnes reports whether every gene is 1.
func AllOnes(c *ga.Chromosome) bool {
	return c.Ones() == c.Len()
}

var registry = map[string]ga.FitnessFunc{
	"count_ones":   CountOnes,
	"leading_ones": LeadingOnes,
}

// Lookup resolves a configured fitness function name
func Lookup(name string) (ga.FitnessFunc, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown fitness function %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the registered fitness functions in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
