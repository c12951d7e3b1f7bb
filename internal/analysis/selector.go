package analysis

import (
	"context"
	"fmt"
	"math"

	"rateorder/adapters/stats/regression"
	"rateorder/domain/kinetics"
	"rateorder/internal"

	"golang.org/x/sync/errgroup"
)

// FitFunc regresses y on x
type FitFunc func(x, y []float64) (kinetics.Fit, error)

// SelectorConfig configures a Selector. Zero values select the defaults.
type SelectorConfig struct {
	Parallel bool             // evaluate the candidate orders concurrently
	Fit      FitFunc          // defaults to regression.OLS
	Logger   *internal.Logger // defaults to internal.DefaultLogger
}

// Selector determines the reaction order whose linearization fits best
type Selector struct {
	parallel bool
	fit      FitFunc
	logger   *internal.Logger
}

// NewSelector creates a selector from config
func NewSelector(cfg SelectorConfig) *Selector {
	s := &Selector{
		parallel: cfg.Parallel,
		fit:      cfg.Fit,
		logger:   cfg.Logger,
	}
	if s.fit == nil {
		s.fit = regression.OLS
	}
	if s.logger == nil {
		s.logger = internal.DefaultLogger
	}
	return s
}

var defaultSelector = NewSelector(SelectorConfig{})

// SelectBest runs the default selector
func SelectBest(ctx context.Context, series kinetics.Series) (*kinetics.BestFit, error) {
	return defaultSelector.SelectBest(ctx, series)
}

// SelectBest tries every order in kinetics.CandidateOrders and returns the one
// with the highest R².
//
// Orders whose transform or regression fails with ErrInvalidInput or
// ErrDegenerateFit are skipped; any other failure aborts the selection. A
// candidate replaces the current best only when its R² is strictly greater,
// so on a tie the order tested first (the lower order) is kept.
func (s *Selector) SelectBest(ctx context.Context, series kinetics.Series) (*kinetics.BestFit, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates, err := s.Evaluate(ctx, series)
	if err != nil {
		return nil, err
	}

	bestIdx := -1
	for i, c := range candidates {
		if !c.Viable() {
			s.logger.Debug("order %d skipped: %v", c.Order, c.Err)
			continue
		}
		s.logger.Debug("order %d: r2=%.6f", c.Order, c.Fit.RSquared)
		s.logger.Trace("order %d: slope=%.6g intercept=%.6g p=%.3g n=%d", c.Order, c.Fit.Slope, c.Fit.Intercept, c.Fit.PValue, c.Fit.N)
		if math.IsNaN(c.Fit.RSquared) {
			continue
		}
		if bestIdx < 0 || c.Fit.RSquared > candidates[bestIdx].Fit.RSquared {
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return nil, kinetics.ErrNoValidFit
	}

	best := kinetics.NewBestFit(candidates[bestIdx], candidates)
	s.logger.Info("selected order %d (r2=%.4f, k=%.4e)", best.Order, best.RSquared, best.RateConstant())
	return best, nil
}

// Evaluate transforms and fits every candidate order. The returned slice is
// index-aligned with kinetics.CandidateOrders regardless of evaluation mode.
func (s *Selector) Evaluate(ctx context.Context, series kinetics.Series) ([]kinetics.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	candidates := make([]kinetics.Candidate, len(kinetics.CandidateOrders))

	if !s.parallel {
		for i, order := range kinetics.CandidateOrders {
			c, err := s.evaluate(series, order)
			if err != nil {
				return nil, err
			}
			candidates[i] = c
		}
		return candidates, nil
	}

	var g errgroup.Group
	for i, order := range kinetics.CandidateOrders {
		i, order := i, order
		g.Go(func() error {
			c, err := s.evaluate(series, order)
			if err != nil {
				return err
			}
			candidates[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}

// evaluate returns a non-viable candidate for anticipated failures and an
// error for everything else
func (s *Selector) evaluate(series kinetics.Series, order kinetics.Order) (kinetics.Candidate, error) {
	c := kinetics.Candidate{Order: order}

	tr, err := Transform(series.Time, series.Concentration, order)
	if err != nil {
		if kinetics.IsSkippable(err) {
			c.Err = err
			return c, nil
		}
		return c, fmt.Errorf("transform order %d: %w", order, err)
	}
	c.Transform = tr

	fit, err := s.fit(series.Time, tr.Y)
	if err != nil {
		if kinetics.IsSkippable(err) {
			c.Err = err
			return c, nil
		}
		return c, fmt.Errorf("fit order %d: %w", order, err)
	}
	c.Fit = fit
	return c, nil
}
