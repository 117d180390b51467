package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// IdentityFile reads the user's display name from a small YAML document:
//
//	user_name: alice
//
// It implements trophy.Identity. A missing file yields an empty name.
type IdentityFile struct {
	Path string
}

type identityDoc struct {
	UserName string `yaml:"user_name"`
}

// UserName returns the trimmed user_name value.
func (f IdentityFile) UserName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var doc identityDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parse identity %s: %w", f.Path, err)
	}
	return strings.TrimSpace(doc.UserName), nil
}
