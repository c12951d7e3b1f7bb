package testkit

import (
	"math"
	"testing"

	"rateorder/domain/kinetics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcentration(t *testing.T) {
	assert.Equal(t, 0.8, Concentration(kinetics.OrderZero, 0.02, 1.0, 10))
	assert.Equal(t, 0.0, Concentration(kinetics.OrderZero, 0.02, 1.0, 100))
	assert.InDelta(t, math.Exp(-1), Concentration(kinetics.OrderFirst, 1, 1, 1), 1e-12)
	assert.InDelta(t, 0.5, Concentration(kinetics.OrderSecond, 0.5, 1, 2), 1e-12)
	assert.True(t, math.IsNaN(Concentration(kinetics.Order(3), 1, 1, 1)))
}

func TestDecayGenerator_Deterministic(t *testing.T) {
	config := DefaultDecayConfig()
	config.RelativeNoise = 0.02

	first := NewDecayGenerator(config).Generate()
	second := NewDecayGenerator(config).Generate()

	require.Equal(t, config.Points, first.Len())
	require.NoError(t, first.Validate())
	assert.Equal(t, first, second)
	assert.Equal(t, 0.0, first.Time[0])
	assert.Equal(t, 9.0, first.Time[9])
}

func TestDecayGenerator_Floor(t *testing.T) {
	config := DefaultDecayConfig()
	config.Order = kinetics.OrderZero
	config.RateConstant = 0.5

	series := NewDecayGenerator(config).Generate()
	for _, c := range series.Concentration {
		assert.Greater(t, c, 0.0)
	}
}
