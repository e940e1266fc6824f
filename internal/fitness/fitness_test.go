package fitness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitga/internal/ga"
)

func TestCountOnes(t *testing.T) {
	assert.Equal(t, 0.0, CountOnes(ga.FromGenes([]uint8{0, 0, 0})))
	assert.Equal(t, 2.0, CountOnes(ga.FromGenes([]uint8{1, 0, 1})))
	assert.Equal(t, 4.0, CountOnes(ga.FromGenes([]uint8{1, 1, 1, 1})))
}

func TestLeadingOnes(t *testing.T) {
	assert.Equal(t, 0.0, LeadingOnes(ga.FromGenes([]uint8{0, 1, 1})))
	assert.Equal(t, 2.0, LeadingOnes(ga.FromGenes([]uint8{1, 1, 0, 1})))
	assert.Equal(t, 3.0, LeadingOnes(ga.FromGenes([]uint8{1, 1, 1})))
}

func TestAllOnes(t *testing.T) {
	assert.True(t, AllOnes(ga.FromGenes([]uint8{1, 1, 1})))
	assert.False(t, AllOnes(ga.FromGenes([]uint8{1, 0, 1})))
}

func TestLookup(t *testing.T) {
	f, err := Lookup("count_ones")
	require.NoError(t, err)
	assert.Equal(t, 2.0, f(ga.FromGenes([]uint8{1, 1, 0})))

	_, err = Lookup("sphere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count_ones")
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"count_ones", "leading_ones"}, Names())
}
