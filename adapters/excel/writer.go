package excel

import (
	"fmt"
	"io"

	"rateorder/domain/kinetics"

	"github.com/xuri/excelize/v2"
)

// WorkbookExporter writes the measurements and the winning linearization to
// an xlsx workbook with a scatter chart of the data and its fit line
type WorkbookExporter struct{}

// NewWorkbookExporter creates a new exporter
func NewWorkbookExporter() *WorkbookExporter {
	return &WorkbookExporter{}
}

// Export implements ports.ChartExporter
func (e *WorkbookExporter) Export(w io.Writer, series kinetics.Series, best *kinetics.BestFit) error {
	f, err := e.Build(series, best)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook to path
func (e *WorkbookExporter) SaveAs(path string, series kinetics.Series, best *kinetics.BestFit) error {
	f, err := e.Build(series, best)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// Build assembles the workbook in memory
func (e *WorkbookExporter) Build(series kinetics.Series, best *kinetics.BestFit) (*excelize.File, error) {
	if best == nil {
		return nil, fmt.Errorf("no fit to export")
	}
	if len(best.Y) != series.Len() {
		return nil, fmt.Errorf("fit has %d points, series has %d", len(best.Y), series.Len())
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(FitSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeDataSheet(f, series); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeFitSheet(f, series, best); err != nil {
		f.Close()
		return nil, err
	}
	if err := addFitChart(f, series.Len(), best); err != nil {
		f.Close()
		return nil, err
	}

	idx, err := f.GetSheetIndex(FitSheet)
	if err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeDataSheet(f *excelize.File, series kinetics.Series) error {
	if err := f.SetSheetRow(DataSheet, "A1", &[]interface{}{"time", "concentration"}); err != nil {
		return err
	}
	for i := range series.Time {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DataSheet, cellName, &[]interface{}{series.Time[i], series.Concentration[i]}); err != nil {
			return err
		}
	}
	return nil
}

func writeFitSheet(f *excelize.File, series kinetics.Series, best *kinetics.BestFit) error {
	if err := f.SetSheetRow(FitSheet, "A1", &[]interface{}{TimeHeader, best.YLabel, "fit"}); err != nil {
		return err
	}
	line := best.FitLine(series.Time)
	for i := range series.Time {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(FitSheet, cellName, &[]interface{}{series.Time[i], best.Y[i], line[i]}); err != nil {
			return err
		}
	}

	// Summary block below the chart anchor column
	summary := [][]interface{}{
		{"order", int(best.Order)},
		{"slope", best.Slope},
		{"intercept", best.Intercept},
		{"k", best.RateConstant()},
		{"r_squared", best.RSquared},
	}
	for i, row := range summary {
		cellName, err := excelize.CoordinatesToCellName(16, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(FitSheet, cellName, &row); err != nil {
			return err
		}
	}
	return nil
}

func addFitChart(f *excelize.File, n int, best *kinetics.BestFit) error {
	last := n + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", FitSheet, last)

	return f.AddChart(FitSheet, ChartCell, &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", FitSheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", FitSheet, last),
				Marker:     excelize.ChartMarker{Symbol: "circle", Size: 6},
				Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
			},
			{
				Name:       fmt.Sprintf("%s!$C$1", FitSheet),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", FitSheet, last),
				Marker:     excelize.ChartMarker{Symbol: "none"},
			},
		},
		Title:  []excelize.RichTextRun{{Text: ChartTitle(best)}},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: TimeHeader}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: best.YLabel}}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
}

// ChartTitle names the chart after the winning order
func ChartTitle(best *kinetics.BestFit) string {
	return fmt.Sprintf("Integrated Rate Law Fit (Order %d)", best.Order)
}
