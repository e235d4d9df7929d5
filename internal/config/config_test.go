package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Tracker.Target)
	assert.Nil(t, cfg.Tracker.Version)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigTrackerSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[tracker]
target = 40
locale = "de_DE"
grid-size = "small"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Tracker.Target)
	assert.Equal(t, 40, *cfg.Tracker.Target)
	require.NotNil(t, cfg.Tracker.Locale)
	assert.Equal(t, "de_DE", *cfg.Tracker.Locale)
	require.NotNil(t, cfg.Tracker.GridSize)
	assert.Equal(t, "small", *cfg.Tracker.GridSize)
	assert.Nil(t, cfg.Tracker.Version)
	assert.Nil(t, cfg.Tracker.DDragonURL)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tracker]\ntargets = 3\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracker.targets")
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tracker\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, filepath.Join("/cfg", "arenatrack", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "arenatrack", "arenatrack.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/data", "arenatrack", "arenatrack.log"), DefaultLogPath())
}
