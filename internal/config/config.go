package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"bitga/internal/ga"
)

// Config is the root configuration structure
type Config struct {
	Seed       int64            `yaml:"seed" toml:"seed"`
	GA         GAConfig         `yaml:"ga" toml:"ga"`
	Fitness    FitnessConfig    `yaml:"fitness" toml:"fitness"`
	Experiment ExperimentConfig `yaml:"experiment" toml:"experiment"`
	Logging    LogConfig        `yaml:"logging" toml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics" toml:"metrics"`
}

// GAConfig defines genetic algorithm parameters
type GAConfig struct {
	Population       int     `yaml:"population" toml:"population"`
	ChromosomeLength int     `yaml:"chromosome_length" toml:"chromosome_length"`
	CrossoverRate    float64 `yaml:"crossover_rate" toml:"crossover_rate"`
	MutationRate     float64 `yaml:"mutation_rate" toml:"mutation_rate"`
	MaxGenerations   int     `yaml:"max_generations" toml:"max_generations"` // 0 = no cap
}

// FitnessConfig selects the fitness function
type FitnessConfig struct {
	Function string `yaml:"function" toml:"function"` // count_ones|leading_ones
}

// ExperimentConfig defines how many independent runs to perform
type ExperimentConfig struct {
	Runs    int `yaml:"runs" toml:"runs"`
	Workers int `yaml:"workers" toml:"workers"` // <= 0 means runtime.NumCPU()
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level          string `yaml:"level" toml:"level"`   // debug|info|warn|error
	Format         string `yaml:"format" toml:"format"` // text|json
	DumpPopulation bool   `yaml:"dump_population" toml:"dump_population"`
	CSVPath        string `yaml:"csv_path" toml:"csv_path"`
	JSONPath       string `yaml:"json_path" toml:"json_path"`
	SummaryPath    string `yaml:"summary_path" toml:"summary_path"`
	PlotPath       string `yaml:"plot_path" toml:"plot_path"`
}

// MetricsConfig defines the Prometheus endpoint
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr" toml:"listen_addr"`
}

// Default returns the configuration of the textbook exercise:
// 100 chromosomes of length 20, pc = 0.7, pm = 0.001.
func Default() *Config {
	return &Config{
		Seed: 1337,
		GA: GAConfig{
			Population:       100,
			ChromosomeLength: 20,
			CrossoverRate:    0.7,
			MutationRate:     0.001,
			MaxGenerations:   5000,
		},
		Fitness: FitnessConfig{
			Function: "count_ones",
		},
		Experiment: ExperimentConfig{
			Runs: 1,
		},
		Logging: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML or TOML config file and returns a Config.
// Keys missing from the file keep their Default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	// Apply defaults
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Fitness.Function == "" {
		cfg.Fitness.Function = "count_ones"
	}
	if cfg.Experiment.Runs == 0 {
		cfg.Experiment.Runs = 1
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate checks parameter ranges. Rate errors wrap ga.ErrInvalidParameter.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.GA.MaxGenerations < 0 {
		return fmt.Errorf("max_generations %d must not be negative", c.GA.MaxGenerations)
	}
	if c.Experiment.Runs < 1 {
		return fmt.Errorf("experiment runs %d must be positive", c.Experiment.Runs)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// Params returns the population construction parameters
func (c *Config) Params() ga.Params {
	return ga.Params{
		Size:             c.GA.Population,
		ChromosomeLength: c.GA.ChromosomeLength,
		CrossoverRate:    c.GA.CrossoverRate,
		MutationRate:     c.GA.MutationRate,
	}
}
