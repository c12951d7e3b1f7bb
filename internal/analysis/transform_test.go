package analysis

import (
	"math"
	"testing"

	"rateorder/domain/kinetics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_ZeroOrderIsIdentity(t *testing.T) {
	time := []float64{0, 1, 2, 3}
	conc := []float64{1.0, -0.5, 0, 2.5}

	tr, err := Transform(time, conc, kinetics.OrderZero)
	require.NoError(t, err)

	assert.Equal(t, conc, tr.Y)
	assert.Equal(t, LabelZeroOrder, tr.YLabel)
	assert.Equal(t, -1.0, tr.SignFactor)
	assert.Equal(t, kinetics.OrderZero, tr.Order)

	// result must not alias the input
	tr.Y[0] = 42
	assert.Equal(t, 1.0, conc[0])
}

func TestTransform_FirstOrder(t *testing.T) {
	conc := []float64{1, math.E, math.E * math.E}

	tr, err := Transform([]float64{0, 1, 2}, conc, kinetics.OrderFirst)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 1, 2}, tr.Y, 1e-12)
	assert.Equal(t, "ln[A]", tr.YLabel)
	assert.Equal(t, -1.0, tr.SignFactor)
}

func TestTransform_SecondOrder(t *testing.T) {
	tr, err := Transform([]float64{0, 1, 2}, []float64{1, 0.5, 0.25}, kinetics.OrderSecond)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{1, 2, 4}, tr.Y, 1e-12)
	assert.Equal(t, "1/[A] (1/M)", tr.YLabel)
	assert.Equal(t, 1.0, tr.SignFactor)
}

func TestTransform_RejectsNonPositive(t *testing.T) {
	tests := []struct {
		name  string
		conc  []float64
		order kinetics.Order
		msg   string
	}{
		{"zero for ln", []float64{1, 0, 0.5}, kinetics.OrderFirst, "ln[A]"},
		{"negative for ln", []float64{1, -0.1, 0.5}, kinetics.OrderFirst, "ln[A]"},
		{"zero for reciprocal", []float64{0, 1, 2}, kinetics.OrderSecond, "1/[A]"},
		{"negative for reciprocal", []float64{1, 2, -3}, kinetics.OrderSecond, "1/[A]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transform([]float64{0, 1, 2}, tt.conc, tt.order)
			require.Error(t, err)
			assert.ErrorIs(t, err, kinetics.ErrInvalidInput)
			assert.Contains(t, err.Error(), "All concentration values must be positive for "+tt.msg)
		})
	}
}

func TestTransform_RejectsOverflowingReciprocal(t *testing.T) {
	_, err := Transform([]float64{0, 1, 2}, []float64{1e-310, 0.5, 0.25}, kinetics.OrderSecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, kinetics.ErrInvalidInput)
	assert.True(t, kinetics.IsSkippable(err))

	tr, err := Transform([]float64{0, 1, 2}, []float64{1e-310, 0.5, 0.25}, kinetics.OrderFirst)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1e-310), tr.Y[0], 1e-9)
}

func TestTransform_InvalidOrder(t *testing.T) {
	for _, order := range []kinetics.Order{-1, 3, 10} {
		_, err := Transform([]float64{0, 1}, []float64{1, 2}, order)
		assert.ErrorIs(t, err, kinetics.ErrInvalidOrder)
		assert.False(t, kinetics.IsSkippable(err))
	}
}

func TestTransform_LengthMismatch(t *testing.T) {
	_, err := Transform([]float64{0, 1, 2}, []float64{1, 2}, kinetics.OrderZero)
	assert.ErrorIs(t, err, kinetics.ErrLengthMismatch)
}
