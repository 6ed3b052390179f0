package logger_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/killallgit/scribe/pkg/config"
	"github.com/killallgit/scribe/pkg/logger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConfig(t *testing.T, level string) {
	t.Helper()
	viper.Reset()
	dir := t.TempDir()
	require.NoError(t, config.Init(filepath.Join(dir, "settings.yaml")))
	config.Global.Logging.Level = level
	config.Global.Logging.LogFile = filepath.Join(dir, "system.log")
}

func TestInitAndComponentLogging(t *testing.T) {
	setupConfig(t, "debug")
	require.NoError(t, logger.Init())
	defer logger.Close()

	var buf bytes.Buffer
	logger.SetOutput(&buf)

	log := logger.WithComponent("reducer")
	log.Debug().Str("event", "message-added").Msg("applied")

	out := buf.String()
	assert.Contains(t, out, `"component":"reducer"`)
	assert.Contains(t, out, `"event":"message-added"`)
}

func TestLevelFiltering(t *testing.T) {
	setupConfig(t, "warn")
	require.NoError(t, logger.Init())
	defer logger.Close()

	var buf bytes.Buffer
	logger.SetOutput(&buf)

	log := logger.WithComponent("gate")
	log.Info().Msg("suppressed")
	log.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "visible")
}
