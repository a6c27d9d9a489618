package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	Setup(&buf, "debug", FormatJSON)
	log.Debug().Str("module", "test").Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["message"])
	assert.Equal(t, "test", line["module"])
	assert.Equal(t, "debug", line["level"])
}

func TestSetup_LevelFilters(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	Setup(&buf, "warn", FormatJSON)
	log.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestSetup_BadLevelFallsBackToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Setup(&bytes.Buffer{}, "loud", FormatConsole)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
