package kinetics

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Selection errors
	ErrInvalidOrder  = errors.New("reaction order must be 0, 1, or 2")
	ErrInvalidInput  = errors.New("invalid input for transform")
	ErrDegenerateFit = errors.New("degenerate fit: zero variance in time")
	ErrNoValidFit    = errors.New("unable to fit any reaction order with the provided data")

	// Series errors
	ErrInvalidSeries    = errors.New("invalid measurement series")
	ErrLengthMismatch   = fmt.Errorf("%w: the number of time points must match the number of concentration values", ErrInvalidSeries)
	ErrInsufficientData = fmt.Errorf("%w: at least two measurements are required", ErrInvalidSeries)
	ErrNonFinite        = fmt.Errorf("%w: values must be finite numbers", ErrInvalidSeries)
)

// Error constructors with context
func NewInvalidInputError(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, message)
}

func NewInvalidOrderError(order Order) error {
	return fmt.Errorf("%w: got %d", ErrInvalidOrder, int(order))
}

func NewNonFiniteError(field string, index int, value float64) error {
	return fmt.Errorf("%w: %s[%d] = %v", ErrNonFinite, field, index, value)
}

// IsSkippable reports whether a per-order failure only rules that order out.
// Anything else is a bug and must reach the caller.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDegenerateFit)
}

func IsSeriesError(err error) bool {
	return errors.Is(err, ErrInvalidSeries)
}
