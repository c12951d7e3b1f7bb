package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" debug "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelWarn)
	logger.SetOutput(&buf)

	logger.Info("hidden %d", 1)
	logger.Debug("hidden")
	logger.Warn("shown %s", "warn")
	logger.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warn")
	assert.Contains(t, out, "[ERROR] shown error")
}

func TestLogger_WithPrefix(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelInfo)
	logger.SetOutput(&buf)

	logger.WithPrefix("DataReader").Info("read %d rows", 4)

	assert.Contains(t, buf.String(), "[INFO] [DataReader] read 4 rows")
}
