package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"

	"bitga/internal/config"
	"bitga/internal/fitness"
	"bitga/internal/ga"
)

// Snapshot is the per-generation record kept in a run's history
type Snapshot struct {
	Generation  int     `json:"generation"`
	MeanFitness float64 `json:"mean_fitness"`
	BestFitness float64 `json:"best_fitness"`
}

// Event is passed to observers after generation 0 and after every Evolve.
type Event struct {
	Run        int
	Seed       int64
	Population *ga.Population
	Best       *ga.Chromosome
	Solved     bool
}

// Result describes one finished run
type Result struct {
	Run         int        `json:"run"`
	Seed        int64      `json:"seed"`
	Solved      bool       `json:"solved"`
	Generation  int        `json:"generation"` // number of Evolve calls made
	BestFitness float64    `json:"best_fitness"`
	BestGenes   string     `json:"best_genes"`
	MeanFitness float64    `json:"mean_fitness"`
	Fallbacks   int        `json:"selection_fallbacks"`
	History     []Snapshot `json:"-"`
}

// Observer receives run progress. Runs of an experiment execute on
// several goroutines, so implementations must be safe for concurrent use.
type Observer interface {
	ObserveGeneration(ev Event)
	ObserveRun(res Result)
}

// Runner drives populations until a member is all ones
type Runner struct {
	cfg       *config.Config
	fitness   ga.FitnessFunc
	done      func(c *ga.Chromosome) bool
	observers []Observer
	logger    *slog.Logger
	workers   int
}

// NewRunner creates a runner for the given config
func NewRunner(cfg *config.Config, logger *slog.Logger, observers ...Observer) (*Runner, error) {
	f, err := fitness.Lookup(cfg.Fitness.Function)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	workers := cfg.Experiment.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Runner{
		cfg:       cfg,
		fitness:   f,
		done:      fitness.AllOnes,
		observers: observers,
		logger:    logger,
		workers:   workers,
	}, nil
}

// Run evolves one population seeded with seed. It stops when some member
// is all ones, when max_generations Evolve calls were made, or when ctx is done.
func (r *Runner) Run(ctx context.Context, run int, seed int64) (Result, error) {
	pop, err := ga.NewPopulation(r.cfg.Params(), rand.New(rand.NewSource(seed)))
	if err != nil {
		return Result{}, err
	}
	logger := r.logger.With("run", run, "seed", seed)

	res := Result{Run: run, Seed: seed}
	pop.Evaluate(r.fitness)
	solved := pop.Any(r.done)
	r.record(&res, pop, solved)

	maxGen := r.cfg.GA.MaxGenerations
	for !solved {
		if maxGen > 0 && pop.Generation() >= maxGen {
			logger.Warn("generation cap reached", "generations", pop.Generation())
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		pop.Evolve(r.fitness)
		solved = pop.Any(r.done)
		r.record(&res, pop, solved)
	}

	res.Solved = solved
	for _, o := range r.observers {
		o.ObserveRun(res)
	}
	logger.Info("run finished",
		"solved", res.Solved,
		"generation", res.Generation,
		"best_fitness", res.BestFitness,
		"mean_fitness", res.MeanFitness)
	return res, nil
}

func (r *Runner) record(res *Result, pop *ga.Population, solved bool) {
	best := pop.Best()
	res.Generation = pop.Generation()
	res.BestFitness = best.Fitness()
	res.BestGenes = best.String()
	res.MeanFitness = pop.MeanFitness()
	res.Fallbacks = pop.SelectionFallbacks()
	res.History = append(res.History, Snapshot{
		Generation:  pop.Generation(),
		MeanFitness: pop.MeanFitness(),
		BestFitness: best.Fitness(),
	})

	ev := Event{Run: res.Run, Seed: res.Seed, Population: pop, Best: best, Solved: solved}
	for _, o := range r.observers {
		o.ObserveGeneration(ev)
	}
}

// Experiment performs experiment.runs independent runs with seeds
// seed, seed+1, ... on a bounded worker pool. Results are ordered by run.
func (r *Runner) Experiment(ctx context.Context) ([]Result, error) {
	runs := r.cfg.Experiment.Runs
	results := make([]Result, runs)
	errs := make([]error, runs)

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.workers)

	for i := 0; i < runs; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			res, err := r.Run(ctx, i, r.cfg.Seed+int64(i))
			if err != nil {
				errs[i] = fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
		}(i)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
