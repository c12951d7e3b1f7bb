package ports

import (
	"context"
	"io"

	"rateorder/domain/kinetics"
)

// SeriesReader loads a measurement series from some source (file, console, request body)
type SeriesReader interface {
	ReadSeries(ctx context.Context) (kinetics.Series, error)
}

// SeriesReaderFunc adapts a function to SeriesReader
type SeriesReaderFunc func(ctx context.Context) (kinetics.Series, error)

func (f SeriesReaderFunc) ReadSeries(ctx context.Context) (kinetics.Series, error) {
	return f(ctx)
}

// ChartExporter renders a selection result, typically as a workbook with a chart
type ChartExporter interface {
	Export(w io.Writer, series kinetics.Series, best *kinetics.BestFit) error
}
