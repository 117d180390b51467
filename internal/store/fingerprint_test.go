package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/trophykit/pkg/trophy"
)

var _ trophy.FingerprintCache = (*Fingerprints)(nil)

func TestSumDistinguishesFiles(t *testing.T) {
	a := trophy.Files{Progress: []byte("ab"), Descriptor: []byte("c")}
	b := trophy.Files{Progress: []byte("a"), Descriptor: []byte("bc")}
	missing := trophy.Files{Descriptor: []byte("c")}
	empty := trophy.Files{Progress: []byte{}, Descriptor: []byte("c")}

	assert.Equal(t, Sum(a), Sum(trophy.Files{Progress: []byte("ab"), Descriptor: []byte("c")}))
	assert.NotEqual(t, Sum(a), Sum(b))
	assert.NotEqual(t, Sum(missing), Sum(empty))
}

func TestFingerprintText(t *testing.T) {
	fp := Sum(trophy.Files{Progress: []byte("x")})
	text, err := fp.MarshalText()
	require.NoError(t, err)
	assert.Len(t, text, 32)

	var back Fingerprint
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, fp, back)

	assert.Error(t, back.UnmarshalText([]byte("abcd")))
	assert.Error(t, back.UnmarshalText([]byte("zz")))
}

func TestFingerprintsSeenRecord(t *testing.T) {
	f := NewFingerprints()
	files := trophy.Files{Progress: []byte("p"), Descriptor: []byte("d")}

	_, ok := f.Seen("NPWR1", files)
	assert.False(t, ok)

	f.Record("NPWR1", files, nil)
	prev, ok := f.Seen("NPWR1", files)
	assert.True(t, ok)
	assert.Empty(t, prev)

	_, ok = f.Seen("NPWR1", trophy.Files{Progress: []byte("q"), Descriptor: []byte("d")})
	assert.False(t, ok, "changed bytes invalidate the entry")

	f.Forget("NPWR1")
	assert.Equal(t, 0, f.Len())
}

func TestFingerprintsJSON(t *testing.T) {
	f := NewFingerprints()
	f.Record("NPWR1", trophy.Files{Progress: []byte("p")}, nil)

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var back Fingerprints
	require.NoError(t, json.Unmarshal(data, &back))
	_, ok := back.Seen("NPWR1", trophy.Files{Progress: []byte("p")})
	assert.True(t, ok)
}

func TestFingerprintsIgnoreCancellation(t *testing.T) {
	f := NewFingerprints()
	f.Record("NPWR1", trophy.Files{}, context.Canceled)
	assert.Equal(t, 0, f.Len())
}
