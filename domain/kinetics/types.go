package kinetics

import (
	"math"
)

// Order is a candidate reaction order. Only the three integrated rate laws
// below are supported.
type Order int

const (
	OrderZero   Order = 0
	OrderFirst  Order = 1
	OrderSecond Order = 2
)

// CandidateOrders lists the orders in the sequence they are tested. The
// sequence decides ties: the first order to reach the best R² is kept.
var CandidateOrders = []Order{OrderZero, OrderFirst, OrderSecond}

// Valid checks if the order is one of the supported orders
func (o Order) Valid() bool {
	return o == OrderZero || o == OrderFirst || o == OrderSecond
}

// ParseOrder converts an integer into an Order
func ParseOrder(n int) (Order, error) {
	o := Order(n)
	if !o.Valid() {
		return 0, NewInvalidOrderError(o)
	}
	return o, nil
}

// Series holds index-aligned time/concentration measurements
type Series struct {
	Time          []float64 `json:"time" yaml:"time"`
	Concentration []float64 `json:"concentration" yaml:"concentration"`
}

// NewSeries copies the given slices into a Series
func NewSeries(time, concentration []float64) Series {
	return Series{
		Time:          append([]float64(nil), time...),
		Concentration: append([]float64(nil), concentration...),
	}
}

// Len returns the number of measurements
func (s Series) Len() int {
	return len(s.Time)
}

// Validate checks the selector preconditions. Time does not need to be monotonic.
func (s Series) Validate() error {
	if len(s.Time) != len(s.Concentration) {
		return ErrLengthMismatch
	}
	if len(s.Time) < 2 {
		return ErrInsufficientData
	}
	for i, v := range s.Time {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNonFiniteError("time", i, v)
		}
	}
	for i, v := range s.Concentration {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNonFiniteError("concentration", i, v)
		}
	}
	return nil
}

// Transform is the linearized response for one candidate order
type Transform struct {
	Order      Order     `json:"order"`
	Y          []float64 `json:"y"`
	YLabel     string    `json:"y_label"`
	SignFactor float64   `json:"sign_factor"` // +1: k = slope, -1: k = -slope
}

// Fit is the result of an ordinary least squares fit of y against time
type Fit struct {
	Slope           float64 `json:"slope"`
	Intercept       float64 `json:"intercept"`
	R               float64 `json:"r"`
	RSquared        float64 `json:"r_squared"`
	PValue          float64 `json:"p_value"`
	StdErr          float64 `json:"std_err"`
	InterceptStdErr float64 `json:"intercept_std_err"`
	N               int     `json:"n"`
}

// Candidate is the outcome of trying one order. Exactly one of Err or the
// Transform/Fit pair is meaningful.
type Candidate struct {
	Order     Order     `json:"order"`
	Transform Transform `json:"transform"`
	Fit       Fit       `json:"fit"`
	Err       error     `json:"-"`
}

// Viable reports whether the order produced a usable fit
func (c Candidate) Viable() bool {
	return c.Err == nil
}

// Reason returns the failure message, or "" for viable candidates
func (c Candidate) Reason() string {
	if c.Err == nil {
		return ""
	}
	return c.Err.Error()
}

// BestFit is the winning candidate plus every candidate that was tried
type BestFit struct {
	Order      Order       `json:"order"`
	RSquared   float64     `json:"r_squared"`
	Slope      float64     `json:"slope"`
	Intercept  float64     `json:"intercept"`
	Y          []float64   `json:"y"`
	YLabel     string      `json:"y_label"`
	SignFactor float64     `json:"sign_factor"`
	Fit        Fit         `json:"fit"`
	Candidates []Candidate `json:"candidates"`
}

// NewBestFit builds the selection result from the winning candidate
func NewBestFit(best Candidate, candidates []Candidate) *BestFit {
	return &BestFit{
		Order:      best.Order,
		RSquared:   best.Fit.RSquared,
		Slope:      best.Fit.Slope,
		Intercept:  best.Fit.Intercept,
		Y:          best.Transform.Y,
		YLabel:     best.Transform.YLabel,
		SignFactor: best.Transform.SignFactor,
		Fit:        best.Fit,
		Candidates: candidates,
	}
}

// RateConstant derives k from the slope using the integrated rate law's sign
func (b *BestFit) RateConstant() float64 {
	return b.SignFactor * b.Slope
}

// FitLine evaluates intercept + slope*t for every t
func (b *BestFit) FitLine(time []float64) []float64 {
	line := make([]float64, len(time))
	for i, t := range time {
		line[i] = b.Intercept + b.Slope*t
	}
	return line
}
