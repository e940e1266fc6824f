package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitga/internal/config"
)

func TestFlagsOverrideOnlyWhenSet(t *testing.T) {
	fs, flags := newFlagSet("evolve")
	require.NoError(t, fs.Parse([]string{"-runs", "20"}))

	cfg := config.Default()
	flags.apply(fs, cfg)
	assert.Equal(t, 20, cfg.Experiment.Runs)
	assert.Equal(t, int64(1337), cfg.Seed)
	assert.Equal(t, 5000, cfg.GA.MaxGenerations)
	assert.False(t, cfg.Logging.DumpPopulation)
}

func TestZeroValuedFlagsStillOverride(t *testing.T) {
	fs, flags := newFlagSet("evolve")
	require.NoError(t, fs.Parse([]string{"-seed", "0", "-generations", "0", "-dump=false", "-metrics-addr", ""}))

	cfg := config.Default()
	cfg.Logging.DumpPopulation = true
	cfg.Metrics.ListenAddr = ":9100"
	flags.apply(fs, cfg)

	assert.Zero(t, cfg.Seed)
	assert.Zero(t, cfg.GA.MaxGenerations)
	assert.False(t, cfg.Logging.DumpPopulation)
	assert.Empty(t, cfg.Metrics.ListenAddr)
}
