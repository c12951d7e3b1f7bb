package core

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		require.NotEmpty(t, id, "empty ID at iteration %d", i)
		require.False(t, ids[id], "duplicate ID: %s", id)
		ids[id] = true
	}
	assert.Len(t, ids, numIDs)
}

func TestNewAnalysisID_IsUUIDv7(t *testing.T) {
	id := NewAnalysisID()

	parsed, err := uuid.Parse(id.String())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestComputeSeriesHash(t *testing.T) {
	a := ComputeSeriesHash([]float64{0, 1, 2}, []float64{1, 0.5, 0.25})
	b := ComputeSeriesHash([]float64{0, 1, 2}, []float64{1, 0.5, 0.25})
	c := ComputeSeriesHash([]float64{0, 1, 2}, []float64{1, 0.5, 0.2500001})
	// moving a value across the column boundary must change the hash
	d := ComputeSeriesHash([]float64{0, 1}, []float64{2, 1, 0.5, 0.25})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Len(t, a.String(), 64)
	assert.Len(t, a.Short(), 12)
}
