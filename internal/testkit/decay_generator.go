package testkit

import (
	"math"
	"math/rand"

	"rateorder/domain/kinetics"
)

// DecayGeneratorConfig configures the synthetic measurement generator
type DecayGeneratorConfig struct {
	Order          kinetics.Order `json:"order"`
	RateConstant   float64        `json:"rate_constant"`
	InitialConc    float64        `json:"initial_concentration"`
	Points         int            `json:"points"`
	Interval       float64        `json:"interval"`
	RelativeNoise  float64        `json:"relative_noise"`
	Seed           int64          `json:"seed"`
	FloorAtMinimum bool           `json:"floor_at_minimum"`
}

// DefaultDecayConfig returns a noiseless first-order run
func DefaultDecayConfig() DecayGeneratorConfig {
	return DecayGeneratorConfig{
		Order:          kinetics.OrderFirst,
		RateConstant:   0.1,
		InitialConc:    1.0,
		Points:         10,
		Interval:       1.0,
		Seed:           42,
		FloorAtMinimum: true,
	}
}

// DecayGenerator produces concentration series that follow an integrated rate law
type DecayGenerator struct {
	config DecayGeneratorConfig
	rng    *rand.Rand
}

// NewDecayGenerator creates a new generator
func NewDecayGenerator(config DecayGeneratorConfig) *DecayGenerator {
	return &DecayGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns Points measurements spaced Interval apart starting at t=0.
// Noise is Gaussian with sigma = RelativeNoise * [A](t).
func (g *DecayGenerator) Generate() kinetics.Series {
	n := g.config.Points
	series := kinetics.Series{
		Time:          make([]float64, n),
		Concentration: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		t := float64(i) * g.config.Interval
		c := Concentration(g.config.Order, g.config.RateConstant, g.config.InitialConc, t)
		if g.config.RelativeNoise > 0 {
			c += g.rng.NormFloat64() * g.config.RelativeNoise * c
		}
		if g.config.FloorAtMinimum && c <= 0 {
			c = math.SmallestNonzeroFloat64
		}
		series.Time[i] = t
		series.Concentration[i] = c
	}
	return series
}

// Concentration evaluates the integrated rate law for order at time t.
// A zero-order run is clamped at zero once the reactant is used up.
func Concentration(order kinetics.Order, k, c0, t float64) float64 {
	switch order {
	case kinetics.OrderZero:
		return math.Max(c0-k*t, 0)
	case kinetics.OrderFirst:
		return c0 * math.Exp(-k*t)
	case kinetics.OrderSecond:
		return 1 / (1/c0 + k*t)
	default:
		return math.NaN()
	}
}
