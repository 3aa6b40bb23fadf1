package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, ""))
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Workers)
	require.Equal(t, int64(1), cfg.Seed)
}

func TestLoadConfig_ReadsValues(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, "workers = 4\nseed = 99\n"))
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Workers)
	require.Equal(t, int64(99), cfg.Seed)
}

func TestLoadConfig_MissingFileErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
