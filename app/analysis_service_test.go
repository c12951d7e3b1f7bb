package app

import (
	"context"
	stderrors "errors"
	"testing"

	"rateorder/domain/kinetics"
	"rateorder/internal"
	"rateorder/internal/errors"
	"rateorder/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *AnalysisService {
	return NewAnalysisService(nil, internal.NewLogger(internal.LogLevelError), 0)
}

func TestAnalysisService_Analyze(t *testing.T) {
	series := kinetics.NewSeries([]float64{0, 10, 20, 30}, []float64{1.0, 0.8, 0.6, 0.4})

	rep, err := newTestService().Analyze(context.Background(), series)
	require.NoError(t, err)

	assert.NotEmpty(t, rep.ID.String())
	assert.Equal(t, kinetics.OrderZero, rep.Best.Order)
	assert.InDelta(t, 0.02, rep.Summary.RateConstant, 1e-9)
	assert.Len(t, rep.DatasetKey.String(), 64)

	again, err := newTestService().Analyze(context.Background(), series)
	require.NoError(t, err)
	assert.Equal(t, rep.DatasetKey, again.DatasetKey)
	assert.NotEqual(t, rep.ID, again.ID)
	assert.Equal(t, rep.Best, again.Best)
}

func TestAnalysisService_NoValidFit(t *testing.T) {
	series := kinetics.NewSeries([]float64{5, 5, 5}, []float64{1, 2, 3})

	_, err := newTestService().Analyze(context.Background(), series)
	require.Error(t, err)
	assert.ErrorIs(t, err, kinetics.ErrNoValidFit)
	assert.Equal(t, errors.CodeNoValidFit, errors.GetCode(err))
}

func TestAnalysisService_AnalyzeFrom(t *testing.T) {
	reader := ports.SeriesReaderFunc(func(ctx context.Context) (kinetics.Series, error) {
		return kinetics.NewSeries([]float64{0, 1, 2, 3}, []float64{1.0, 0.3679, 0.1353, 0.0498}), nil
	})

	rep, err := newTestService().AnalyzeFrom(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, kinetics.OrderFirst, rep.Best.Order)

	failing := ports.SeriesReaderFunc(func(ctx context.Context) (kinetics.Series, error) {
		return kinetics.Series{}, errors.ParseError("bad cell", stderrors.New("strconv"))
	})
	_, err = newTestService().AnalyzeFrom(context.Background(), failing)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseError, errors.GetCode(err))
}

func TestAnalysisService_TransformOnly(t *testing.T) {
	svc := newTestService()
	series := kinetics.NewSeries([]float64{0, 1}, []float64{1, 0})

	tr, err := svc.TransformOnly(series, kinetics.OrderZero)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, tr.Y)

	_, err = svc.TransformOnly(series, kinetics.OrderFirst)
	assert.ErrorIs(t, err, kinetics.ErrInvalidInput)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = svc.TransformOnly(series, kinetics.Order(5))
	assert.Equal(t, errors.CodeInvalidOrder, errors.GetCode(err))
}

func TestAnalysisService_MaxPoints(t *testing.T) {
	svc := NewAnalysisService(nil, internal.NewLogger(internal.LogLevelError), 3)
	long := kinetics.NewSeries([]float64{0, 1, 2, 3}, []float64{1.0, 0.8, 0.6, 0.4})

	_, err := svc.Analyze(context.Background(), long)
	require.Error(t, err)
	assert.ErrorIs(t, err, kinetics.ErrInvalidInput)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), "limit is 3")

	_, err = svc.TransformOnly(long, kinetics.OrderZero)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	rep, err := svc.Analyze(context.Background(), kinetics.NewSeries([]float64{0, 1, 2}, []float64{1.0, 0.8, 0.6}))
	require.NoError(t, err)
	assert.Equal(t, kinetics.OrderZero, rep.Best.Order)
}
