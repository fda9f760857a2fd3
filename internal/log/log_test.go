package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONOutputWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: DebugLevel, JSONOutput: true, Output: &buf})
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	logger := WithComponent("aggregator")
	logger.Info().Int("workflows", 3).Msg("snapshot built")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "aggregator", line["component"])
	assert.Equal(t, "snapshot built", line["message"])
	assert.Equal(t, float64(3), line["workflows"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel(DebugLevel))
	assert.Equal(t, zerolog.WarnLevel, parseLevel(WarnLevel))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel(ErrorLevel))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}
