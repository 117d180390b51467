// Package writer exposes sinks for encoded profile snapshots.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives one complete snapshot image.
type Sink interface {
	WriteSnapshot(buf []byte) error
}

// FileWriter replaces the file at Path atomically.
type FileWriter struct {
	Path string
}

// WriteSnapshot writes buf next to Path and renames it into place, creating
// the parent directory when needed.
func (w *FileWriter) WriteSnapshot(buf []byte) error {
	dir := filepath.Dir(w.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(w.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(buf); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmpFile = nil // renamed below; nothing left to clean up

	if err := os.Rename(tmpPath, w.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
