package analysis

import (
	"math"

	"rateorder/domain/kinetics"
)

// Axis labels for the linearized response of each order
const (
	LabelZeroOrder   = "[A] (M)"
	LabelFirstOrder  = "ln[A]"
	LabelSecondOrder = "1/[A] (1/M)"
)

// Transform linearizes concentration according to the integrated rate law of
// the given order:
//
//	order 0: [A]   vs t, slope = -k
//	order 1: ln[A] vs t, slope = -k
//	order 2: 1/[A] vs t, slope = +k
//
// Orders 1 and 2 need strictly positive concentrations, and order 2 also a
// finite reciprocal. The input slices are never modified.
func Transform(time, concentration []float64, order kinetics.Order) (kinetics.Transform, error) {
	if len(time) != len(concentration) {
		return kinetics.Transform{}, kinetics.ErrLengthMismatch
	}

	switch order {
	case kinetics.OrderZero:
		return kinetics.Transform{
			Order:      order,
			Y:          append([]float64(nil), concentration...),
			YLabel:     LabelZeroOrder,
			SignFactor: -1,
		}, nil

	case kinetics.OrderFirst:
		if !allPositive(concentration) {
			return kinetics.Transform{}, kinetics.NewInvalidInputError("All concentration values must be positive for ln[A].")
		}
		return kinetics.Transform{
			Order:      order,
			Y:          mapValues(concentration, math.Log),
			YLabel:     LabelFirstOrder,
			SignFactor: -1,
		}, nil

	case kinetics.OrderSecond:
		if !allPositive(concentration) {
			return kinetics.Transform{}, kinetics.NewInvalidInputError("All concentration values must be positive for 1/[A].")
		}
		y := mapValues(concentration, func(c float64) float64 { return 1 / c })
		if !allFinite(y) {
			// subnormal concentrations overflow the reciprocal
			return kinetics.Transform{}, kinetics.NewInvalidInputError("1/[A] is not finite for every concentration value.")
		}
		return kinetics.Transform{
			Order:      order,
			Y:          y,
			YLabel:     LabelSecondOrder,
			SignFactor: 1,
		}, nil

	default:
		return kinetics.Transform{}, kinetics.NewInvalidOrderError(order)
	}
}

func allPositive(values []float64) bool {
	for _, v := range values {
		if !(v > 0) {
			return false
		}
	}
	return true
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func mapValues(values []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = fn(v)
	}
	return out
}
