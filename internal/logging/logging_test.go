package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, Level(-1))
	assert.Equal(t, zerolog.WarnLevel, Level(0))
	assert.Equal(t, zerolog.InfoLevel, Level(1))
	assert.Equal(t, zerolog.DebugLevel, Level(2))
	assert.Equal(t, zerolog.DebugLevel, Level(5))
}

func TestNewJSONFiltersByVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Verbosity: 1, JSON: true, Production: true})

	log.Debug().Msg("hidden")
	log.Info().Int64("bytes", 42).Msg("diff phase complete")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "diff phase complete", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 42, entry["bytes"])
	assert.NotContains(t, entry, "caller")
}

func TestNewAddsCallerOutsideProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{JSON: true})

	log.Error().Msg("boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry["caller"], "logging_test.go")
}

func TestProduction(t *testing.T) {
	t.Setenv(EnvVar, "prod")
	assert.True(t, Production())

	t.Setenv(EnvVar, "dev")
	assert.False(t, Production())
}
