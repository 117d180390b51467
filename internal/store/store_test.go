package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/trophykit/internal/source"
	"github.com/joshuapare/trophykit/internal/testutil"
	"github.com/joshuapare/trophykit/internal/writer"
	"github.com/joshuapare/trophykit/pkg/trophy"
	"github.com/joshuapare/trophykit/pkg/types"
)

func TestLoadMissing(t *testing.T) {
	p, fp, err := Open(filepath.Join(t.TempDir(), "profile.snap")).Load("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.UserName())
	assert.Equal(t, 0, fp.Len())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.snap")
	s := Open(path)

	p := trophy.NewProfile("alice")
	p.Upsert(&trophy.Game{NpCommID: "NPWR1", Title: "One", Trophies: []trophy.Trophy{
		{ID: 0, Grade: types.GradeGold, Unlocked: true},
		{ID: 1, Grade: types.GradeBronze},
	}})
	fp := NewFingerprints()
	fp.Record("NPWR1", trophy.Files{Progress: []byte{1}}, nil)
	fp.Record("NPWR2", trophy.Files{Progress: []byte{2}}, errors.New("bad magic"))

	require.NoError(t, s.Save(p, fp))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is cleaned up")

	back, backFP, err := s.Load("")
	require.NoError(t, err)
	assert.Equal(t, p.ID(), back.ID())
	assert.Equal(t, "alice", back.UserName())
	assert.Equal(t, p.Summary(), back.Summary())
	assert.Equal(t, 2, backFP.Len())

	prev, ok := backFP.Seen("NPWR2", trophy.Files{Progress: []byte{2}})
	assert.True(t, ok)
	assert.Equal(t, "bad magic", prev)
}

func TestSaveOverwrites(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "profile.snap"))
	require.NoError(t, s.Save(trophy.NewProfile("a"), nil))
	require.NoError(t, s.Save(trophy.NewProfile("b"), nil))

	p, fp, err := s.Load("")
	require.NoError(t, err)
	assert.Equal(t, "b", p.UserName())
	assert.Equal(t, 0, fp.Len())
}

func TestSaveToSink(t *testing.T) {
	var sink writer.MemWriter
	p := trophy.NewProfile("carol")
	require.NoError(t, SaveTo(&sink, p, nil))
	assert.Equal(t, 1, sink.Writes)

	back, fp, err := Decode(sink.Buf)
	require.NoError(t, err)
	assert.Equal(t, p.ID(), back.ID())
	assert.Equal(t, 0, fp.Len())
}

func TestDecodeWithoutProfile(t *testing.T) {
	p, fp, err := Decode(s2.Encode(nil, []byte(`{"version":1}`)))
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NotNil(t, fp)

	path := filepath.Join(t.TempDir(), "profile.snap")
	require.NoError(t, os.WriteFile(path, s2.Encode(nil, []byte(`{"version":1}`)), 0o644))
	loaded, _, err := Open(path).Load("dave")
	require.NoError(t, err)
	assert.Equal(t, "dave", loaded.UserName())
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.snap")
	require.NoError(t, os.WriteFile(path, []byte("not s2"), 0o644))
	_, _, err := Open(path).Load("")
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, os.WriteFile(path, s2.Encode(nil, []byte("{")), 0o644))
	_, _, err = Open(path).Load("")
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestLoadWrongVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.snap")
	require.NoError(t, os.WriteFile(path, s2.Encode(nil, []byte(`{"version":99}`)), 0o644))
	_, _, err := Open(path).Load("")
	assert.ErrorIs(t, err, ErrVersion)
}

func TestScanWithPersistedFingerprints(t *testing.T) {
	root := t.TempDir()
	progress := testutil.NewProgress().AddUnlocks(testutil.Unlock{ID: 1, State: 1}).Bytes()
	testutil.WriteGameDir(t, root, "NPWR00001_00", progress, testutil.SampleConf("NPWR00001_00").XML())
	s := Open(filepath.Join(t.TempDir(), "profile.snap"))
	dir := source.NewDir(root)

	p, fp, err := s.Load("")
	require.NoError(t, err)
	res, err := trophy.NewScanner(dir, dir, trophy.Options{Fingerprints: fp}).Scan(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, res.Games, 1)
	require.NoError(t, s.Save(p, fp))

	p, fp, err = s.Load("")
	require.NoError(t, err)
	res, err = trophy.NewScanner(dir, dir, trophy.Options{Fingerprints: fp}).Scan(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, res.Games)
	assert.Equal(t, []string{"NPWR00001_00"}, res.Unchanged)
	assert.Equal(t, 90, p.Summary().Points)
}
