// Package config loads trophyctl settings.
//
// Sources, later ones win:
//
//  1. Built-in defaults (Default).
//  2. An optional YAML file (Load).
//  3. Command-line flags, applied by the CLI.
//
// Example file:
//
//	trophy_dir: /data/trophy
//	identity_file: /data/identity.yaml
//	snapshot: ~/.config/trophykit/profile.snap
//	fingerprints: true
//	workers: 4
//	log:
//	  level: info
//	  format: text
//	  dir: ""
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds runtime settings for trophyctl.
type Config struct {
	// TrophyDir is the root holding one sub-directory per game.
	TrophyDir string `yaml:"trophy_dir"`
	// IdentityFile names a YAML file carrying user_name. Empty skips it.
	IdentityFile string `yaml:"identity_file"`
	// Snapshot is where the profile is persisted. Empty disables persistence.
	Snapshot string `yaml:"snapshot"`
	// Fingerprints enables skipping games whose files did not change.
	Fingerprints bool `yaml:"fingerprints"`
	// Workers bounds concurrent game decodes; 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`

	Log Log `yaml:"log"`
}

// Log configures the CLI's logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
	Dir    string `yaml:"dir"`    // when set, logs go to dated files here
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Snapshot:     DefaultSnapshotPath(),
		Fingerprints: true,
		Log:          Log{Level: "warn", Format: "text"},
	}
}

// DefaultSnapshotPath returns <user config dir>/trophykit/profile.snap, or ""
// when the platform has no user config dir.
func DefaultSnapshotPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "trophykit", "profile.snap")
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.overlay(data); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.expandHome()
	return cfg, cfg.Validate()
}

func (c *Config) overlay(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) expandHome() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	for _, p := range []*string{&c.TrophyDir, &c.IdentityFile, &c.Snapshot, &c.Log.Dir} {
		if *p == "~" {
			*p = home
		} else if rest, ok := strings.CutPrefix(*p, "~/"); ok {
			*p = filepath.Join(home, rest)
		}
	}
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalid, c.Workers)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// SlogLevel parses Level. Empty means info.
func (l Log) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, l.Level)
	}
	return lvl, nil
}
