// Package source reads trophy files from a directory tree laid out one
// sub-directory per game:
//
//	<root>/<npCommID>/TROPUSR.DAT
//	<root>/<npCommID>/TROPCONF.SFM
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joshuapare/trophykit/internal/mmfile"
	"github.com/joshuapare/trophykit/pkg/trophy"
)

// File names inside a game directory.
const (
	ProgressFile   = "TROPUSR.DAT"
	DescriptorFile = "TROPCONF.SFM"
)

// ErrBadGameID is returned for ids that would escape the root directory.
var ErrBadGameID = errors.New("source: invalid game id")

// Dir lists and reads games below Root. It implements trophy.Lister and
// trophy.Source.
type Dir struct {
	Root string
}

// NewDir returns a Dir rooted at root.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

// GameIDs returns the sorted names of sub-directories holding at least one
// trophy file.
func (d *Dir) GameIDs(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.Root)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(d.Root, e.Name())
		if mmfile.Exists(filepath.Join(dir, ProgressFile)) || mmfile.Exists(filepath.Join(dir, DescriptorFile)) {
			ids = append(ids, e.Name())
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// TrophyFiles reads the files of one game. A missing file yields a nil image.
func (d *Dir) TrophyFiles(ctx context.Context, npCommID string) (trophy.Files, error) {
	if npCommID == "" || npCommID == "." || npCommID == ".." || strings.ContainsAny(npCommID, `/\`) {
		return trophy.Files{}, fmt.Errorf("%w: %q", ErrBadGameID, npCommID)
	}
	if err := ctx.Err(); err != nil {
		return trophy.Files{}, err
	}
	return ReadGameDir(filepath.Join(d.Root, npCommID))
}

// ReadGameDir reads both trophy files from one game directory.
func ReadGameDir(dir string) (trophy.Files, error) {
	var (
		files trophy.Files
		err   error
	)
	if files.Progress, err = readOptional(filepath.Join(dir, ProgressFile)); err != nil {
		return trophy.Files{}, err
	}
	if files.Descriptor, err = readOptional(filepath.Join(dir, DescriptorFile)); err != nil {
		return trophy.Files{}, err
	}
	return files, nil
}

func readOptional(path string) ([]byte, error) {
	data, err := mmfile.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}
