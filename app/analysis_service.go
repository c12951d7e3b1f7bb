package app

import (
	"context"
	"fmt"
	"time"

	"rateorder/domain/core"
	"rateorder/domain/kinetics"
	"rateorder/internal"
	"rateorder/internal/analysis"
	"rateorder/internal/errors"
	"rateorder/internal/report"
	"rateorder/ports"
)

// AnalysisService runs order selection on series from any reader
type AnalysisService struct {
	selector  *analysis.Selector
	logger    *internal.Logger
	maxPoints int
}

// AnalysisReport is the complete output of one analysis
type AnalysisReport struct {
	ID         core.AnalysisID   `json:"analysis_id"`
	DatasetKey core.Hash         `json:"dataset_hash"`
	Series     kinetics.Series   `json:"series"`
	Best       *kinetics.BestFit `json:"best_fit"`
	Summary    report.Summary    `json:"summary"`
	RuntimeMs  int64             `json:"runtime_ms"`
}

// NewAnalysisService creates an analysis service. Series longer than
// maxPoints are rejected; zero disables the limit.
func NewAnalysisService(selector *analysis.Selector, logger *internal.Logger, maxPoints int) *AnalysisService {
	if selector == nil {
		selector = analysis.NewSelector(analysis.SelectorConfig{Logger: logger})
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		selector:  selector,
		logger:    logger.WithPrefix("AnalysisService"),
		maxPoints: maxPoints,
	}
}

// AnalyzeFrom reads a series from reader and analyzes it
func (s *AnalysisService) AnalyzeFrom(ctx context.Context, reader ports.SeriesReader) (*AnalysisReport, error) {
	series, err := reader.ReadSeries(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read measurements")
	}
	return s.Analyze(ctx, series)
}

// Analyze determines the reaction order of series
func (s *AnalysisService) Analyze(ctx context.Context, series kinetics.Series) (*AnalysisReport, error) {
	start := time.Now()
	id := core.NewAnalysisID()

	if err := s.checkSize(series); err != nil {
		s.logger.Warn("analysis %s rejected: %v", id, err)
		return nil, err
	}

	best, err := s.selector.SelectBest(ctx, series)
	if err != nil {
		s.logger.Warn("analysis %s failed: %v", id, err)
		return nil, errors.Wrap(err, "error during analysis")
	}

	rep := &AnalysisReport{
		ID:         id,
		DatasetKey: core.ComputeSeriesHash(series.Time, series.Concentration),
		Series:     series,
		Best:       best,
		Summary:    report.Summarize(series, best),
		RuntimeMs:  time.Since(start).Milliseconds(),
	}
	s.logger.Info("analysis %s: %d points, order %d, r2=%.4f (dataset %s)",
		id, series.Len(), best.Order, best.RSquared, rep.DatasetKey.Short())
	return rep, nil
}

// TransformOnly linearizes series for a single order without fitting
func (s *AnalysisService) TransformOnly(series kinetics.Series, order kinetics.Order) (kinetics.Transform, error) {
	if err := s.checkSize(series); err != nil {
		return kinetics.Transform{}, err
	}
	if err := series.Validate(); err != nil {
		return kinetics.Transform{}, errors.Wrap(err, "invalid measurements")
	}
	tr, err := analysis.Transform(series.Time, series.Concentration, order)
	if err != nil {
		return kinetics.Transform{}, errors.Wrapf(err, "order %d transform failed", order)
	}
	return tr, nil
}

func (s *AnalysisService) checkSize(series kinetics.Series) error {
	n := max(len(series.Time), len(series.Concentration))
	if s.maxPoints > 0 && n > s.maxPoints {
		msg := fmt.Sprintf("series has %d points, limit is %d", n, s.maxPoints)
		return errors.Wrap(kinetics.NewInvalidInputError(msg), "too many measurements")
	}
	return nil
}
