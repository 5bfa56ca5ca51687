package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests mutate the global logger and must not run in parallel.

func TestSetupJSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	(&Logger{Level: "warn", Format: "json"}).SetupWriter(&buf)

	log.Info().Msg("hidden")
	log.Warn().Str("path", "tsconfig.json").Msg("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "tsconfig.json", entry["path"])
	assert.Equal(t, "warn", entry["level"])
}

func TestSetupConsoleFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	(&Logger{Level: "bogus", Format: "console"}).SetupWriter(&buf)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	log.Debug().Msg("hidden")
	log.Info().Msg("Bundle generated")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Bundle generated")
	assert.NotContains(t, out, "\x1b[")
}
