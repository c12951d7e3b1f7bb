package excel

// ReaderConfig selects the sheet and columns holding the measurements
type ReaderConfig struct {
	Sheet               string `json:"sheet"`
	TimeColumn          string `json:"time_column"`
	ConcentrationColumn string `json:"concentration_column"`
	MaxPoints           int    `json:"max_points"`
}

// DefaultReaderConfig returns sensible defaults for spreadsheet input
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Sheet:               "Sheet1",
		TimeColumn:          "time",
		ConcentrationColumn: "concentration",
		MaxPoints:           10000,
	}
}

// Sheet and layout names used by the exporter
const (
	DataSheet  = "Data"
	FitSheet   = "Fit"
	ChartCell  = "F2"
	TimeHeader = "Time (s)"
)
