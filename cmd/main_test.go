package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/claude-hooks/internal/config"
)

func TestNewLogger_EmitsSingleLineJSONWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, false)

	logger.Warn().Str("path", "/x/stop.json").Msg("Failed to read log file, starting fresh")

	line := strings.TrimRight(buf.String(), "\n")
	assert.NotContains(t, line, "\n", "one record stays on one line")

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &record))
	assert.Equal(t, "warn", record["level"])
	assert.Equal(t, "Failed to read log file, starting fresh", record["message"])
	assert.Contains(t, record, "time")
	assert.Equal(t, "/x/stop.json", record["path"])
}

func TestNewLogger_ConsoleFormatOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, true)

	logger.Warn().Msg("hello")

	assert.Contains(t, buf.String(), "WRN")
	var record map[string]any
	assert.Error(t, json.Unmarshal(buf.Bytes(), &record), "console output is not JSON")
}

func TestEffectiveConfigHelp(t *testing.T) {
	help := effectiveConfigHelp(config.Default())

	assert.Contains(t, help, "EFFECTIVE CONFIGURATION:")
	assert.Contains(t, help, `"log_dir"`)
	assert.Contains(t, help, `"security"`)

	jsonStart := strings.Index(help, "{")
	require.Greater(t, jsonStart, 0)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(help[jsonStart:]), &cfg))
	assert.Equal(t, config.Default().LogDir, cfg.LogDir)
}
