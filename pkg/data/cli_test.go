package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSearchPaths(t *testing.T) {
	paths := ConfigSearchPaths(DefaultConfigFile)

	require.NotEmpty(t, paths)
	assert.Equal(t, DefaultConfigFile, paths[0])

	if homeDir, err := os.UserHomeDir(); err == nil {
		assert.Contains(t, paths, filepath.Join(homeDir, ".config", "courtelo", DefaultConfigFile))
		assert.Contains(t, paths, filepath.Join(homeDir, ".courtelo", DefaultConfigFile))
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Run("absolute path is returned as-is", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		assert.Equal(t, path, ResolveConfigPath(path))
	})

	t.Run("missing relative path falls through unchanged", func(t *testing.T) {
		assert.Equal(t, "definitely-absent.yaml", ResolveConfigPath("definitely-absent.yaml"))
	})
}

func TestLoadForCLI(t *testing.T) {
	t.Run("no-config skips file loading", func(t *testing.T) {
		config, err := LoadForCLI(filepath.Join(t.TempDir(), "ignored.yaml"), true)
		require.NoError(t, err)
		assert.Equal(t, DefaultAppConfig(), *config)
	})

	t.Run("no-config still applies environment", func(t *testing.T) {
		t.Setenv("COURTELO_RATING_UPSET_GAP", "250")

		config, err := LoadForCLI(DefaultConfigFile, true)
		require.NoError(t, err)
		assert.Equal(t, 250, config.Rating.UpsetGap)
	})

	t.Run("explicit config file is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("export:\n  format: json\n"), 0644))

		config, err := LoadForCLI(path, false)
		require.NoError(t, err)
		assert.Equal(t, "json", config.Export.Format)
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		_, err := LoadForCLI(filepath.Join(t.TempDir(), "absent.yaml"), false)
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}

func TestCreateDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "courtelo.yaml")

	require.NoError(t, CreateDefaultConfig(path))

	config, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), *config)
}
