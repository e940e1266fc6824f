package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitga/internal/config"
	"bitga/internal/experiment"
	"bitga/internal/logging"
	"bitga/internal/metrics"
	"bitga/internal/report"
)

// cliFlags holds the command line options; set ones override the config file.
type cliFlags struct {
	configPath  string
	runs        int
	seed        int64
	generations int
	dump        bool
	metricsAddr string
}

func newFlagSet(name string) (*flag.FlagSet, *cliFlags) {
	f := &cliFlags{}
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&f.configPath, "config", "", "path to a YAML or TOML config file (defaults when empty)")
	fs.IntVar(&f.runs, "runs", 0, "number of independent runs (overrides config)")
	fs.Int64Var(&f.seed, "seed", 0, "base random seed (overrides config)")
	fs.IntVar(&f.generations, "generations", 0, "generation cap per run, 0 for none (overrides config)")
	fs.BoolVar(&f.dump, "dump", false, "print every generation of every run")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides config)")
	return fs, f
}

// apply copies every flag given on the command line into cfg.
func (f *cliFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "runs":
			cfg.Experiment.Runs = f.runs
		case "seed":
			cfg.Seed = f.seed
		case "generations":
			cfg.GA.MaxGenerations = f.generations
		case "dump":
			cfg.Logging.DumpPopulation = f.dump
		case "metrics-addr":
			cfg.Metrics.ListenAddr = f.metricsAddr
		}
	})
}

func main() {
	// Parse command line flags
	fs, flags := newFlagSet(os.Args[0])
	_ = fs.Parse(os.Args[1:])

	// Load config
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		cfg, err = config.Load(flags.configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	flags.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("evolve failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		"population", cfg.GA.Population,
		"chromosome_length", cfg.GA.ChromosomeLength,
		"crossover_rate", cfg.GA.CrossoverRate,
		"mutation_rate", cfg.GA.MutationRate,
		"fitness", cfg.Fitness.Function,
		"runs", cfg.Experiment.Runs,
		"seed", cfg.Seed)

	runLog := logging.NewRunLog(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
	if err := runLog.Init(); err != nil {
		return fmt.Errorf("init run log: %w", err)
	}

	recorder := metrics.NewRecorder()
	observers := []experiment.Observer{runLog, recorder}
	if cfg.Logging.DumpPopulation {
		observers = append(observers, logging.NewDumper(os.Stdout))
	}

	if cfg.Metrics.ListenAddr != "" {
		go func() {
			if err := recorder.Serve(ctx, cfg.Metrics.ListenAddr); err != nil {
				logger.Error("metrics endpoint stopped", "addr", cfg.Metrics.ListenAddr, "err", err)
			}
		}()
		logger.Info("serving metrics", "addr", cfg.Metrics.ListenAddr)
	}

	runner, err := experiment.NewRunner(cfg, logger, observers...)
	if err != nil {
		return err
	}

	startTime := time.Now()
	results, runErr := runner.Experiment(ctx)
	if err := runLog.Close(); err != nil {
		logger.Warn("run log incomplete", "err", err)
	}
	if runErr != nil {
		return runErr
	}
	elapsed := time.Since(startTime)

	summary := experiment.Summarize(results)
	fmt.Println("---")
	if summary.Runs == 1 {
		res := results[0]
		if res.Solved {
			fmt.Printf("All ones found at generation %d in %v\n", res.Generation, elapsed)
		} else {
			fmt.Printf("Stopped after %d generations in %v, best: %s (%.0f)\n", res.Generation, elapsed, res.BestGenes, res.BestFitness)
		}
	} else {
		fmt.Printf("%d/%d runs found all ones in %v\n", summary.Solved, summary.Runs, elapsed)
		fmt.Printf("Average generation: %.2f (stddev %.2f, min %d, max %d)\n",
			summary.MeanGeneration, summary.StdDevGeneration, summary.MinGeneration, summary.MaxGeneration)
	}

	if cfg.Logging.SummaryPath != "" {
		if err := logging.SaveSummary(cfg.Logging.SummaryPath, summary); err != nil {
			logger.Warn("failed to save summary", "path", cfg.Logging.SummaryPath, "err", err)
		}
	}
	if cfg.Logging.PlotPath != "" {
		if err := report.FitnessCurve(cfg.Logging.PlotPath, results[0]); err != nil {
			logger.Warn("failed to plot fitness curve", "path", cfg.Logging.PlotPath, "err", err)
		}
	}
	return nil
}
