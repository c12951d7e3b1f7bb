package datafile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rateorder/domain/kinetics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Layouts(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"columns", `{"time": [0, 10, 20], "concentration": [1.0, 0.8, 0.6]}`},
		{"records", `{"measurements": [{"time": 0, "concentration": 1.0}, {"time": 10, "concentration": 0.8}, {"time": 20, "concentration": 0.6}]}`},
		{"root array", `[{"time": 0, "concentration": 1.0}, {"time": 10, "concentration": 0.8}, {"time": 20, "concentration": 0.6}]`},
		{"string values", `{"time": ["0", "10", "20"], "concentration": ["1,0", "0,8", "0.6"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := ParseJSON([]byte(tt.body), DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, []float64{0, 10, 20}, series.Time)
			assert.InDeltaSlice(t, []float64{1.0, 0.8, 0.6}, series.Concentration, 1e-15)
		})
	}
}

func TestParseJSON_CustomFields(t *testing.T) {
	body := `{"run": {"t": [0, 1], "c": [2, 1]}}`

	series, err := ParseJSON([]byte(body), Config{TimeField: "run.t", ConcentrationField: "run.c", RecordsPath: "x"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, series.Time)
	assert.Equal(t, []float64{2, 1}, series.Concentration)
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"time": [0, 1`), DefaultConfig())
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = ParseJSON([]byte(`{"t": [0, 1]}`), DefaultConfig())
	assert.ErrorContains(t, err, "not found")

	_, err = ParseJSON([]byte(`{"time": [0, 1], "concentration": [1]}`), DefaultConfig())
	assert.ErrorIs(t, err, kinetics.ErrLengthMismatch)

	_, err = ParseJSON([]byte(`{"time": [0, true], "concentration": [1, 2]}`), DefaultConfig())
	assert.ErrorContains(t, err, "time[1]")
}

func TestParseYAML_Layouts(t *testing.T) {
	columns := "time: [0, 1, 2, 3]\nconcentration: [1.0, 0.3679, 0.1353, 0.0498]\n"
	records := "measurements:\n  - {time: 0, concentration: 1.0}\n  - {time: 1, concentration: 0.3679}\n  - {time: 2, concentration: 0.1353}\n  - {time: 3, concentration: '0,0498'}\n"
	rootRecords := "- time: 0\n  concentration: 1.0\n- time: 1\n  concentration: 0.3679\n- time: 2\n  concentration: 0.1353\n- time: 3\n  concentration: '0,0498'\n"

	for _, body := range []string{columns, records, rootRecords} {
		series, err := ParseYAML([]byte(body), DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1, 2, 3}, series.Time)
		assert.InDeltaSlice(t, []float64{1.0, 0.3679, 0.1353, 0.0498}, series.Concentration, 1e-15)
	}
}

func TestParseYAML_Errors(t *testing.T) {
	_, err := ParseYAML([]byte("time: [0, 1]\n"), DefaultConfig())
	assert.ErrorContains(t, err, "not found")

	for _, body := range []string{"", "just text\n"} {
		_, err = ParseYAML([]byte(body), DefaultConfig())
		assert.ErrorContains(t, err, "not found")
	}

	_, err = ParseYAML([]byte("- [0, 1]\n- [1, 2]\n"), DefaultConfig())
	assert.ErrorContains(t, err, "records")

	_, err = ParseYAML([]byte("time: [0, 1]\nconcentration: [1, abc]\n"), DefaultConfig())
	assert.ErrorContains(t, err, "concentration[1]")

	_, err = ParseYAML([]byte("time: [0, 1]\nconcentration: [1]\n"), DefaultConfig())
	assert.ErrorIs(t, err, kinetics.ErrLengthMismatch)
}

func TestReader_ReadSeries(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "run.json")
	yamlPath := filepath.Join(dir, "run.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"time": [0, 5], "concentration": [1, 0.5]}`), 0o600))
	require.NoError(t, os.WriteFile(yamlPath, []byte("time: [0, 5]\nconcentration: [1, 0.5]\n"), 0o600))

	for _, path := range []string{jsonPath, yamlPath} {
		assert.True(t, Supports(path))
		series, err := NewReader(path, Config{}).ReadSeries(context.Background())
		require.NoError(t, err, path)
		assert.Equal(t, []float64{0, 5}, series.Time)
	}

	assert.False(t, Supports("run.csv"))
	_, err := NewReader(filepath.Join(dir, "missing.json"), Config{}).ReadSeries(context.Background())
	assert.Error(t, err)
}
