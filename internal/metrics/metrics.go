// Package metrics exports run progress as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bitga/internal/experiment"
)

// Recorder is an experiment.Observer backed by its own registry
type Recorder struct {
	registry *prometheus.Registry

	generation  *prometheus.GaugeVec
	meanFitness *prometheus.GaugeVec
	bestFitness *prometheus.GaugeVec
	runs        *prometheus.CounterVec
	fallbacks   prometheus.Counter
	toSolution  prometheus.Histogram

	mu       sync.Mutex
	lastSeen map[int]int // run -> fallbacks already counted
}

// NewRecorder creates and registers the collectors
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bitga_generation",
			Help: "Current generation of each run.",
		}, []string{"run"}),
		meanFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bitga_mean_fitness",
			Help: "Mean population fitness of each run.",
		}, []string{"run"}),
		bestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bitga_best_fitness",
			Help: "Best member fitness of each run.",
		}, []string{"run"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bitga_runs_total",
			Help: "Finished runs by outcome.",
		}, []string{"solved"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bitga_selection_fallbacks_total",
			Help: "Roulette spins clamped because of floating-point rounding.",
		}),
		toSolution: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bitga_generations_to_solution",
			Help:    "Generation at which the target genome was found.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		lastSeen: make(map[int]int),
	}
	r.registry.MustRegister(r.generation, r.meanFitness, r.bestFitness, r.runs, r.fallbacks, r.toSolution)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) ObserveGeneration(ev experiment.Event) {
	run := strconv.Itoa(ev.Run)
	r.generation.WithLabelValues(run).Set(float64(ev.Population.Generation()))
	r.meanFitness.WithLabelValues(run).Set(ev.Population.MeanFitness())
	r.bestFitness.WithLabelValues(run).Set(ev.Best.Fitness())

	r.mu.Lock()
	defer r.mu.Unlock()
	n := ev.Population.SelectionFallbacks()
	if d := n - r.lastSeen[ev.Run]; d > 0 {
		r.fallbacks.Add(float64(d))
	}
	r.lastSeen[ev.Run] = n
}

func (r *Recorder) ObserveRun(res experiment.Result) {
	r.runs.WithLabelValues(strconv.FormatBool(res.Solved)).Inc()
	if res.Solved {
		r.toSolution.Observe(float64(res.Generation))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lastSeen, res.Run)
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
