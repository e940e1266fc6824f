package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]Result{
		{Run: 0, Solved: true, Generation: 10},
		{Run: 1, Solved: true, Generation: 30},
		{Run: 2, Solved: false, Generation: 5000},
		{Run: 3, Solved: true, Generation: 20},
	})

	assert.Equal(t, 4, s.Runs)
	assert.Equal(t, 3, s.Solved)
	assert.InDelta(t, 20, s.MeanGeneration, 1e-9)
	assert.InDelta(t, 10, s.StdDevGeneration, 1e-9)
	assert.Equal(t, 10, s.MinGeneration)
	assert.Equal(t, 30, s.MaxGeneration)
}

func TestSummarizeSingleRun(t *testing.T) {
	s := Summarize([]Result{{Solved: true, Generation: 12}})
	assert.Equal(t, 12.0, s.MeanGeneration)
	assert.Zero(t, s.StdDevGeneration)
	assert.Equal(t, 12, s.MinGeneration)
	assert.Equal(t, 12, s.MaxGeneration)
}

func TestSummarizeNoSolvedRuns(t *testing.T) {
	s := Summarize([]Result{{Generation: 100}, {Generation: 100}})
	assert.Equal(t, 2, s.Runs)
	assert.Zero(t, s.Solved)
	assert.Zero(t, s.MeanGeneration)
}
