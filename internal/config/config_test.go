package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitga/internal/ga"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "run.yaml", `
seed: 42
ga:
  population: 70
  crossover_rate: 0.6
logging:
  dump_population: true
  csv_path: out/run.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 70, cfg.GA.Population)
	assert.Equal(t, 0.6, cfg.GA.CrossoverRate)
	assert.Equal(t, 20, cfg.GA.ChromosomeLength)
	assert.Equal(t, 0.001, cfg.GA.MutationRate)
	assert.True(t, cfg.Logging.DumpPopulation)
	assert.Equal(t, "out/run.csv", cfg.Logging.CSVPath)
	assert.Equal(t, "count_ones", cfg.Fitness.Function)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "run.toml", `
seed = 7

[ga]
population = 30
mutation_rate = 0.01

[experiment]
runs = 20
workers = 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 30, cfg.GA.Population)
	assert.Equal(t, 0.01, cfg.GA.MutationRate)
	assert.Equal(t, 0.7, cfg.GA.CrossoverRate)
	assert.Equal(t, 20, cfg.Experiment.Runs)
	assert.Equal(t, 2, cfg.Experiment.Workers)
}

func TestLoadKeepsExplicitZeroRates(t *testing.T) {
	path := writeConfig(t, "zero.yaml", `
ga:
  crossover_rate: 0
  mutation_rate: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.GA.CrossoverRate)
	assert.Zero(t, cfg.GA.MutationRate)
}

func TestLoadRejectsOutOfRangeRates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"crossover", "ga:\n  crossover_rate: 1.5\n"},
		{"mutation", "ga:\n  mutation_rate: -0.1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "bad.yaml", tt.body))
			require.ErrorIs(t, err, ga.ErrInvalidParameter)
		})
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"runs", "experiment:\n  runs: -1\n"},
		{"generations", "ga:\n  max_generations: -5\n"},
		{"format", "logging:\n  format: xml\n"},
		{"syntax", "ga: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "bad.yaml", tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultMatchesExercise(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ga.Params{Size: 100, ChromosomeLength: 20, CrossoverRate: 0.7, MutationRate: 0.001}, cfg.Params())
}

func TestSampleConfigsLoad(t *testing.T) {
	for _, name := range []string{"default.yaml", "mitchell.toml"} {
		cfg, err := Load(filepath.Join("..", "..", "configs", name))
		require.NoError(t, err, name)
		assert.Equal(t, 20, cfg.GA.ChromosomeLength, name)
	}
}
