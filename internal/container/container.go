package container

import (
	"fmt"
	"path/filepath"
	"strings"

	"rateorder/adapters/datafile"
	"rateorder/adapters/excel"
	"rateorder/app"
	"rateorder/internal"
	"rateorder/internal/analysis"
	"rateorder/internal/config"
	"rateorder/internal/errors"
	"rateorder/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Selector *analysis.Selector
	Service  *app.AnalysisService
	Exporter *excel.WorkbookExporter
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	selector := analysis.NewSelector(analysis.SelectorConfig{
		Parallel: cfg.Analysis.ParallelFit,
		Logger:   logger,
	})

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Selector: selector,
		Service:  app.NewAnalysisService(selector, logger, cfg.Data.MaxPoints),
		Exporter: excel.NewWorkbookExporter(),
	}, nil
}

// SeriesReader returns the reader for path chosen by file extension.
// Column and sheet names come from the data config.
func (c *Container) SeriesReader(path string) (ports.SeriesReader, error) {
	return OpenSeriesReader(path, c.Config.Data)
}

// DatasetReader returns a reader for the configured DATA_FILE, or nil when none is set
func (c *Container) DatasetReader() (ports.SeriesReader, error) {
	if c.Config.Data.File == "" {
		return nil, nil
	}
	return c.SeriesReader(c.Config.Data.File)
}

// OpenSeriesReader picks the adapter for a measurement file
func OpenSeriesReader(path string, data config.DataConfig) (ports.SeriesReader, error) {
	if datafile.Supports(path) {
		return datafile.NewReader(path, datafile.Config{
			TimeField:          data.TimeColumn,
			ConcentrationField: data.ConcentrationColumn,
		}), nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".csv":
		return excel.NewDataReader(path, excel.ReaderConfig{
			Sheet:               data.Sheet,
			TimeColumn:          data.TimeColumn,
			ConcentrationColumn: data.ConcentrationColumn,
			MaxPoints:           data.MaxPoints,
		}), nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported data file type %q", ext))
	}
}
