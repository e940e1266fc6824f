package experiment

import (
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the results of an experiment
type Summary struct {
	Runs             int      `json:"runs"`
	Solved           int      `json:"solved"`
	MeanGeneration   float64  `json:"mean_generation"`
	StdDevGeneration float64  `json:"stddev_generation"`
	MinGeneration    int      `json:"min_generation"`
	MaxGeneration    int      `json:"max_generation"`
	Results          []Result `json:"results"`
}

// Summarize computes generation statistics over the solved runs.
func Summarize(results []Result) Summary {
	s := Summary{Runs: len(results), Results: results}

	var gens []float64
	for _, res := range results {
		if !res.Solved {
			continue
		}
		if s.Solved == 0 || res.Generation < s.MinGeneration {
			s.MinGeneration = res.Generation
		}
		if res.Generation > s.MaxGeneration {
			s.MaxGeneration = res.Generation
		}
		s.Solved++
		gens = append(gens, float64(res.Generation))
	}

	switch len(gens) {
	case 0:
	case 1:
		s.MeanGeneration = gens[0]
	default:
		s.MeanGeneration, s.StdDevGeneration = stat.MeanStdDev(gens, nil)
	}
	return s
}
