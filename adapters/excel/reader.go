package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rateorder/domain/kinetics"
	"rateorder/internal"
	"rateorder/internal/input"

	"github.com/xuri/excelize/v2"
)

// DataReader reads a measurement series from an Excel or CSV file
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string, config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	defaults := DefaultReaderConfig()
	if config.Sheet == "" {
		config.Sheet = defaults.Sheet
	}
	if config.TimeColumn == "" {
		config.TimeColumn = defaults.TimeColumn
	}
	if config.ConcentrationColumn == "" {
		config.ConcentrationColumn = defaults.ConcentrationColumn
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		logger:   internal.DefaultLogger.WithPrefix("DataReader"),
	}
}

// ReadSeries implements ports.SeriesReader
func (r *DataReader) ReadSeries(ctx context.Context) (kinetics.Series, error) {
	if err := ctx.Err(); err != nil {
		return kinetics.Series{}, err
	}
	rows, err := r.readRows()
	if err != nil {
		return kinetics.Series{}, err
	}
	return r.processRows(rows)
}

func (r *DataReader) readRows() ([][]string, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVRows()
	default:
		return r.readExcelRows()
	}
}

// readExcelRows reads every row of the configured sheet
func (r *DataReader) readExcelRows() ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.config.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.config.Sheet, err)
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", r.config.Sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads CSV data; rows may have differing field counts
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows locates the time and concentration columns and parses them.
// Without a matching header row the first two columns are used.
func (r *DataReader) processRows(rows [][]string) (kinetics.Series, error) {
	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return kinetics.Series{}, fmt.Errorf("%s file contains no data", strings.ToUpper(r.fileType))
	}

	timeCol, concCol, hasHeader := r.locateColumns(rows[0])
	if hasHeader {
		rows = rows[1:]
	}
	if r.config.MaxPoints > 0 && len(rows) > r.config.MaxPoints {
		return kinetics.Series{}, fmt.Errorf("file has %d data rows, limit is %d", len(rows), r.config.MaxPoints)
	}

	series := kinetics.Series{
		Time:          make([]float64, 0, len(rows)),
		Concentration: make([]float64, 0, len(rows)),
	}
	for i, row := range rows {
		line := i + 1
		if hasHeader {
			line++
		}
		t, err := input.ParseNumber(cell(row, timeCol))
		if err != nil {
			return kinetics.Series{}, fmt.Errorf("row %d, %s: %w", line, r.config.TimeColumn, err)
		}
		c, err := input.ParseNumber(cell(row, concCol))
		if err != nil {
			return kinetics.Series{}, fmt.Errorf("row %d, %s: %w", line, r.config.ConcentrationColumn, err)
		}
		series.Time = append(series.Time, t)
		series.Concentration = append(series.Concentration, c)
	}

	r.logger.Info("%s file processed (%d measurements)", strings.ToUpper(r.fileType), series.Len())
	return series, nil
}

func (r *DataReader) locateColumns(header []string) (timeCol, concCol int, hasHeader bool) {
	timeCol, concCol = -1, -1
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch name {
		case strings.ToLower(r.config.TimeColumn):
			timeCol = i
		case strings.ToLower(r.config.ConcentrationColumn):
			concCol = i
		}
	}
	if timeCol >= 0 && concCol >= 0 {
		return timeCol, concCol, true
	}

	// Non-numeric first row is an unrecognized header; skip it and use positions.
	_, err := input.ParseNumber(cell(header, 0))
	return 0, 1, err != nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		blank := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
