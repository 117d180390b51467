package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextToWriter(t *testing.T) {
	var out bytes.Buffer
	log, closeFn, err := New(Options{Level: slog.LevelInfo, Writer: &out})
	require.NoError(t, err)
	defer closeFn()

	log.Debug("hidden")
	log.Info("scan finished", "games", 2)
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "games=2")
}

func TestNewJSONToWriter(t *testing.T) {
	var out bytes.Buffer
	log, _, err := New(Options{Format: "json", Writer: &out})
	require.NoError(t, err)

	log.Info("game merged", "game", "NPWR1")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "NPWR1", rec["game"])
}

func TestNewFileWithRetention(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	old := FileFor(dir, now.AddDate(0, 0, -45))
	recent := FileFor(dir, now.AddDate(0, 0, -2))
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	log, closeFn, err := New(Options{Dir: dir, Now: func() time.Time { return now }})
	require.NoError(t, err)
	log.Warn("table decode failed", "type", 6)
	require.NoError(t, closeFn())

	assert.NoFileExists(t, old)
	assert.FileExists(t, recent)
	assert.FileExists(t, other)

	data, err := os.ReadFile(filepath.Join(dir, "trophyctl-2024-03-31.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"table decode failed"`)
}
