// Package logging builds the CLI's slog logger. Output goes to a writer
// (normally stderr) or, when a directory is configured, to one JSON file per
// day with old files removed after a retention period.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logPrefix     = "trophyctl-"
	logSuffix     = ".log"
	dateLayout    = "2006-01-02"
	retentionDays = 30
)

// Discard is a logger that drops everything.
var Discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures New.
type Options struct {
	Level  slog.Level
	Format string    // "json" or anything else for text
	Writer io.Writer // used when Dir is empty; nil means os.Stderr
	Dir    string    // directory for dated log files
	Now    func() time.Time
}

// New returns a logger and a close function for any file it opened.
func New(opts Options) (*slog.Logger, func() error, error) {
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Dir == "" {
		w := opts.Writer
		if w == nil {
			w = os.Stderr
		}
		if opts.Format == "json" {
			return slog.New(slog.NewJSONHandler(w, hopts)), noop, nil
		}
		return slog.New(slog.NewTextHandler(w, hopts)), noop, nil
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, nil, err
	}
	cleanOldLogs(opts.Dir, now())

	f, err := os.OpenFile(FileFor(opts.Dir, now()), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewJSONHandler(f, hopts)), f.Close, nil
}

func noop() error { return nil }

// FileFor returns the log file path for the day of t.
func FileFor(dir string, t time.Time) string {
	return filepath.Join(dir, logPrefix+t.Format(dateLayout)+logSuffix)
}

// cleanOldLogs removes log files older than retentionDays. Best effort.
func cleanOldLogs(dir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		// trophyctl-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			continue
		}
		if logDate.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}
