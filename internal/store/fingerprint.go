package store

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"

	"github.com/spaolacci/murmur3"

	"github.com/joshuapare/trophykit/pkg/trophy"
)

// Fingerprint is a 128-bit murmur3 digest of a game's trophy files.
type Fingerprint [16]byte

// Sum fingerprints files. Each image is prefixed with its presence and length
// so that a missing file and an empty one differ.
func Sum(files trophy.Files) Fingerprint {
	h := murmur3.New128()
	for _, part := range [][]byte{files.Progress, files.Descriptor} {
		var pre [9]byte
		if part != nil {
			pre[0] = 1
		}
		binary.BigEndian.PutUint64(pre[1:], uint64(len(part)))
		_, _ = h.Write(pre[:])
		_, _ = h.Write(part)
	}
	h1, h2 := h.Sum128()
	var fp Fingerprint
	binary.BigEndian.PutUint64(fp[:8], h1)
	binary.BigEndian.PutUint64(fp[8:], h2)
	return fp
}

func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// MarshalText encodes the fingerprint as hex.
func (f Fingerprint) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText decodes a hex fingerprint.
func (f *Fingerprint) UnmarshalText(b []byte) error {
	var out Fingerprint
	if hex.DecodedLen(len(b)) != len(out) {
		return hex.ErrLength
	}
	if _, err := hex.Decode(out[:], b); err != nil {
		return err
	}
	*f = out
	return nil
}

type fingerprintEntry struct {
	Sum Fingerprint `json:"sum"`
	Err string      `json:"err,omitempty"`
}

// Fingerprints remembers, per game, the digest of the files last scanned and
// the error that scan ended with. It implements trophy.FingerprintCache and is
// safe for concurrent use.
type Fingerprints struct {
	mu      sync.Mutex
	entries map[string]fingerprintEntry
}

// NewFingerprints returns an empty table.
func NewFingerprints() *Fingerprints {
	return &Fingerprints{entries: make(map[string]fingerprintEntry)}
}

// Seen implements trophy.FingerprintCache.
func (f *Fingerprints) Seen(npCommID string, files trophy.Files) (string, bool) {
	sum := Sum(files)
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[npCommID]
	if !ok || e.Sum != sum {
		return "", false
	}
	return e.Err, true
}

// Record implements trophy.FingerprintCache. Context cancellation is not an
// outcome of the files and is not recorded.
func (f *Fingerprints) Record(npCommID string, files trophy.Files, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}
	e := fingerprintEntry{Sum: Sum(files)}
	if err != nil {
		e.Err = err.Error()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entries == nil {
		f.entries = make(map[string]fingerprintEntry)
	}
	f.entries[npCommID] = e
}

// Forget drops the entry for a game so the next scan decodes it again.
func (f *Fingerprints) Forget(npCommID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, npCommID)
}

// Len returns the number of games tracked.
func (f *Fingerprints) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// MarshalJSON encodes the table as an object keyed by game id.
func (f *Fingerprints) MarshalJSON() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return json.Marshal(f.entries)
}

// UnmarshalJSON replaces the table.
func (f *Fingerprints) UnmarshalJSON(data []byte) error {
	entries := make(map[string]fingerprintEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = entries
	return nil
}
