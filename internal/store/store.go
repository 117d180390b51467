// Package store persists a Profile and its scan fingerprints in a single
// s2-compressed JSON snapshot file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/klauspost/compress/s2"

	"github.com/joshuapare/trophykit/internal/writer"
	"github.com/joshuapare/trophykit/pkg/trophy"
)

// snapshotVersion is bumped whenever the document layout changes.
const snapshotVersion = 1

var (
	// ErrCorrupt indicates the snapshot could not be decompressed or decoded.
	ErrCorrupt = errors.New("store: corrupt snapshot")
	// ErrVersion indicates a snapshot written by an incompatible version.
	ErrVersion = errors.New("store: unsupported snapshot version")
)

type snapshot struct {
	Version      int             `json:"version"`
	Profile      *trophy.Profile `json:"profile"`
	Fingerprints *Fingerprints   `json:"fingerprints,omitempty"`
}

// Store reads and writes the snapshot at Path.
type Store struct {
	Path string
}

// Open returns a Store for path. The file is not touched until Load or Save.
func Open(path string) *Store {
	return &Store{Path: path}
}

// Load reads the snapshot. A missing file yields a new profile for userName
// and an empty fingerprint table.
func (s *Store) Load(userName string) (*trophy.Profile, *Fingerprints, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return trophy.NewProfile(userName), NewFingerprints(), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("store: read %s: %w", s.Path, err)
	}
	p, fp, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	if p == nil {
		p = trophy.NewProfile(userName)
	}
	return p, fp, nil
}

// Save replaces the snapshot file atomically. fp may be nil.
func (s *Store) Save(p *trophy.Profile, fp *Fingerprints) error {
	return SaveTo(&writer.FileWriter{Path: s.Path}, p, fp)
}

// SaveTo encodes the snapshot and hands it to sink.
func SaveTo(sink writer.Sink, p *trophy.Profile, fp *Fingerprints) error {
	data, err := Encode(p, fp)
	if err != nil {
		return err
	}
	if err := sink.WriteSnapshot(data); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// Encode returns the compressed snapshot image.
func Encode(p *trophy.Profile, fp *Fingerprints) ([]byte, error) {
	raw, err := json.Marshal(snapshot{Version: snapshotVersion, Profile: p, Fingerprints: fp})
	if err != nil {
		return nil, fmt.Errorf("store: encode: %w", err)
	}
	return s2.Encode(nil, raw), nil
}

// Decode parses a compressed snapshot image. The profile is nil when the
// snapshot carries none; the fingerprint table is never nil.
func Decode(data []byte) (*trophy.Profile, *Fingerprints, error) {
	raw, err := s2.Decode(nil, data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	var doc snapshot
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if doc.Version != snapshotVersion {
		return nil, nil, fmt.Errorf("%w: %d", ErrVersion, doc.Version)
	}
	if doc.Fingerprints == nil {
		doc.Fingerprints = NewFingerprints()
	}
	return doc.Profile, doc.Fingerprints, nil
}
