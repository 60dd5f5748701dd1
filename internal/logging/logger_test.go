package logging

import (
	"os"
	"path/filepath"
	"testing"

	"tripdesk/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStampsAppFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, closer, err := New(
		config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: path},
		config.AppConfig{Name: "tripdesk", Environment: "test", Version: "1.2.3"},
	)
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Info().Msg("boot")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"app":"tripdesk"`)
	assert.Contains(t, string(data), `"version":"1.2.3"`)
	assert.Contains(t, string(data), `"env":"test"`)
}

func TestNewFileOutputRequiresPath(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Output: "file"}, config.AppConfig{})
	assert.Error(t, err)
}

func TestNewBadLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, closer, err := New(
		config.LoggingConfig{Level: "nonsense", Output: "file", FilePath: path},
		config.AppConfig{Name: "tripdesk"},
	)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
