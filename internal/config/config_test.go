package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trophyctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.True(t, c.Fingerprints)
	assert.Equal(t, 0, c.Workers)
	assert.Equal(t, "text", c.Log.Format)
	assert.NoError(t, c.Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
trophy_dir: /data/trophy
workers: 3
fingerprints: false
log:
  level: debug
  format: json
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/trophy", c.TrophyDir)
	assert.Equal(t, 3, c.Workers)
	assert.False(t, c.Fingerprints)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, Default().Snapshot, c.Snapshot, "unset keys keep defaults")

	lvl, err := c.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadEmptyFile(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default().Log, c.Log)
}

func TestLoadExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	c, err := Load(writeConfig(t, "snapshot: ~/p.snap\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "p.snap"), c.Snapshot)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "trophy_root: /x\n"},
		{"bad yaml", "workers: [\n"},
		{"negative workers", "workers: -1\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSlogLevelDefault(t *testing.T) {
	lvl, err := Log{}.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}
