// Package datafile reads measurement series from JSON and YAML documents.
//
// Two layouts are accepted. Column layout:
//
//	{"time": [0, 10, 20], "concentration": [1.0, 0.8, 0.6]}
//
// Record layout, either as the root list or under "measurements":
//
//	{"measurements": [{"time": 0, "concentration": 1.0}, ...]}
//	[{"time": 0, "concentration": 1.0}, ...]
//
// Values may be numbers or strings; strings may use a decimal comma.
package datafile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rateorder/domain/kinetics"
	"rateorder/internal"
	"rateorder/internal/input"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Config names the fields holding each variable
type Config struct {
	TimeField          string `json:"time_field"`
	ConcentrationField string `json:"concentration_field"`
	RecordsPath        string `json:"records_path"`
}

// DefaultConfig returns the default field names
func DefaultConfig() Config {
	return Config{
		TimeField:          "time",
		ConcentrationField: "concentration",
		RecordsPath:        "measurements",
	}
}

// Reader loads a series from a .json, .yaml or .yml file
type Reader struct {
	path   string
	config Config
	logger *internal.Logger
}

// NewReader creates a reader for path
func NewReader(path string, config Config) *Reader {
	defaults := DefaultConfig()
	if config.TimeField == "" {
		config.TimeField = defaults.TimeField
	}
	if config.ConcentrationField == "" {
		config.ConcentrationField = defaults.ConcentrationField
	}
	if config.RecordsPath == "" {
		config.RecordsPath = defaults.RecordsPath
	}
	return &Reader{path: path, config: config, logger: internal.DefaultLogger.WithPrefix("DataFile")}
}

// Supports reports whether the file extension is handled by this package
func Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// ReadSeries implements ports.SeriesReader
func (r *Reader) ReadSeries(ctx context.Context) (kinetics.Series, error) {
	if err := ctx.Err(); err != nil {
		return kinetics.Series{}, err
	}
	body, err := os.ReadFile(r.path)
	if err != nil {
		return kinetics.Series{}, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	var series kinetics.Series
	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".json":
		series, err = ParseJSON(body, r.config)
	case ".yaml", ".yml":
		series, err = ParseYAML(body, r.config)
	default:
		return kinetics.Series{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(r.path))
	}
	if err != nil {
		return kinetics.Series{}, fmt.Errorf("%s: %w", r.path, err)
	}

	r.logger.Info("%s loaded (%d measurements)", filepath.Base(r.path), series.Len())
	return series, nil
}

// ParseJSON extracts a series from a JSON document
func ParseJSON(body []byte, config Config) (kinetics.Series, error) {
	if !gjson.ValidBytes(body) {
		return kinetics.Series{}, fmt.Errorf("invalid JSON")
	}

	timeResult := gjson.GetBytes(body, config.TimeField)
	concResult := gjson.GetBytes(body, config.ConcentrationField)
	if !timeResult.IsArray() || !concResult.IsArray() {
		prefix := config.RecordsPath + ".#."
		if gjson.ParseBytes(body).IsArray() {
			prefix = "#."
		}
		timeResult = gjson.GetBytes(body, prefix+config.TimeField)
		concResult = gjson.GetBytes(body, prefix+config.ConcentrationField)
	}
	if !timeResult.IsArray() || !concResult.IsArray() {
		return kinetics.Series{}, fmt.Errorf("fields %q and %q not found", config.TimeField, config.ConcentrationField)
	}

	time, err := jsonValues(timeResult.Array(), config.TimeField)
	if err != nil {
		return kinetics.Series{}, err
	}
	conc, err := jsonValues(concResult.Array(), config.ConcentrationField)
	if err != nil {
		return kinetics.Series{}, err
	}
	if len(time) != len(conc) {
		return kinetics.Series{}, kinetics.ErrLengthMismatch
	}
	return kinetics.Series{Time: time, Concentration: conc}, nil
}

func jsonValues(results []gjson.Result, field string) ([]float64, error) {
	values := make([]float64, len(results))
	for i, res := range results {
		switch res.Type {
		case gjson.Number:
			values[i] = res.Float()
		case gjson.String:
			v, err := input.ParseNumber(res.Str)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
			}
			values[i] = v
		default:
			return nil, fmt.Errorf("%s[%d]: expected a number, got %s", field, i, res.Type)
		}
	}
	return values, nil
}

// ParseYAML extracts a series from a YAML document
func ParseYAML(body []byte, config Config) (kinetics.Series, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(body, &root); err != nil {
		return kinetics.Series{}, fmt.Errorf("invalid YAML: %w", err)
	}
	notFound := fmt.Errorf("fields %q and %q not found", config.TimeField, config.ConcentrationField)
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = *root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		return yamlRecords(&root, "records", config)
	case yaml.MappingNode:
	default:
		return kinetics.Series{}, notFound
	}

	var doc map[string]yaml.Node
	if err := root.Decode(&doc); err != nil {
		return kinetics.Series{}, fmt.Errorf("invalid YAML: %w", err)
	}

	timeNode, okTime := doc[config.TimeField]
	concNode, okConc := doc[config.ConcentrationField]
	if okTime && okConc {
		var timeRaw, concRaw []string
		if err := timeNode.Decode(&timeRaw); err != nil {
			return kinetics.Series{}, fmt.Errorf("%s: %w", config.TimeField, err)
		}
		if err := concNode.Decode(&concRaw); err != nil {
			return kinetics.Series{}, fmt.Errorf("%s: %w", config.ConcentrationField, err)
		}
		return yamlSeries(timeRaw, concRaw, config)
	}

	records, ok := doc[config.RecordsPath]
	if !ok {
		return kinetics.Series{}, notFound
	}
	return yamlRecords(&records, config.RecordsPath, config)
}

func yamlRecords(node *yaml.Node, name string, config Config) (kinetics.Series, error) {
	var rows []map[string]string
	if err := node.Decode(&rows); err != nil {
		return kinetics.Series{}, fmt.Errorf("%s: %w", name, err)
	}
	timeRaw := make([]string, len(rows))
	concRaw := make([]string, len(rows))
	for i, row := range rows {
		timeRaw[i] = row[config.TimeField]
		concRaw[i] = row[config.ConcentrationField]
	}
	return yamlSeries(timeRaw, concRaw, config)
}

func yamlSeries(timeRaw, concRaw []string, config Config) (kinetics.Series, error) {
	if len(timeRaw) != len(concRaw) {
		return kinetics.Series{}, kinetics.ErrLengthMismatch
	}
	series := kinetics.Series{
		Time:          make([]float64, len(timeRaw)),
		Concentration: make([]float64, len(concRaw)),
	}
	for i := range timeRaw {
		t, err := input.ParseNumber(timeRaw[i])
		if err != nil {
			return kinetics.Series{}, fmt.Errorf("%s[%d]: %w", config.TimeField, i, err)
		}
		c, err := input.ParseNumber(concRaw[i])
		if err != nil {
			return kinetics.Series{}, fmt.Errorf("%s[%d]: %w", config.ConcentrationField, i, err)
		}
		series.Time[i] = t
		series.Concentration[i] = c
	}
	return series, nil
}
