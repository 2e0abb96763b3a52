package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLoggerWithOutput(LevelDebug, &buf)

	logger.Debug("debug message: %s", "a")
	logger.Info("info message: %s", "b")
	logger.Warn("warn message: %s", "c")
	logger.Error("error message: %s", "d")

	output := buf.String()
	assert.Contains(t, output, "[DEBUG] debug message: a")
	assert.Contains(t, output, "[INFO] info message: b")
	assert.Contains(t, output, "[WARN] warn message: c")
	assert.Contains(t, output, "[ERROR] error message: d")
}

func TestDefaultLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLoggerWithOutput(LevelWarn, &buf)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn")

	output := buf.String()
	assert.NotContains(t, output, "hidden debug")
	assert.NotContains(t, output, "hidden info")
	assert.Contains(t, output, "visible warn")
}

func TestDefaultLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewDefaultLoggerWithOutput(LevelError, &buf)

	logger.Info("before")
	logger.SetLevel(LevelInfo)
	logger.Info("after")

	output := buf.String()
	assert.NotContains(t, output, "before")
	assert.Contains(t, output, "after")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelDebug, ParseLevel(" debug "))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}
