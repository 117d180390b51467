package trophy

import (
	"io"
	"log/slog"
	"runtime"
)

// Options controls decoding and scanning.
type Options struct {
	// Logger receives per-game progress and every non-fatal anomaly.
	// Nil discards.
	Logger *slog.Logger

	// Workers bounds how many games Scan decodes concurrently.
	// Zero or negative uses GOMAXPROCS.
	Workers int

	// Fingerprints, when set, lets Scan skip games whose files have not
	// changed since the last recorded scan, including games that failed then.
	Fingerprints FingerprintCache
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
