package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitga/internal/experiment"
)

func TestFitnessCurveWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "run.png")
	res := experiment.Result{
		Run:  0,
		Seed: 1,
		History: []experiment.Snapshot{
			{Generation: 0, MeanFitness: 10, BestFitness: 15},
			{Generation: 1, MeanFitness: 11.5, BestFitness: 16},
			{Generation: 2, MeanFitness: 12.25, BestFitness: 18},
		},
	}
	require.NoError(t, FitnessCurve(path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestFitnessCurveRejectsEmptyHistory(t *testing.T) {
	err := FitnessCurve(filepath.Join(t.TempDir(), "run.png"), experiment.Result{})
	assert.Error(t, err)
}
