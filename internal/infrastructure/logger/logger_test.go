package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "json")

	log.Debug().Str("model", "gemini-2.5-flash-image").Msg("画像生成を開始")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "gemini-2.5-flash-image", entry["model"])
	assert.Equal(t, "画像生成を開始", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", "json")

	log.Info().Msg("表示されない")
	assert.Empty(t, buf.String())

	log.Warn().Msg("表示される")
	assert.Contains(t, buf.String(), "表示される")
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	log := New(&bytes.Buffer{}, "verbose", "json")
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "console")

	log.Info().Msg("保存しました")
	assert.Contains(t, buf.String(), "保存しました")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
