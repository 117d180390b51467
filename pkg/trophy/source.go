package trophy

import "context"

// Files holds the raw images of one game's trophy files. Progress is nil when
// the game has no progress file yet.
type Files struct {
	Progress   []byte
	Descriptor []byte
}

// Source supplies the trophy files of a game.
type Source interface {
	TrophyFiles(ctx context.Context, npCommID string) (Files, error)
}

// Lister enumerates the games that have trophy files.
type Lister interface {
	GameIDs(ctx context.Context) ([]string, error)
}

// Identity supplies the display name of the local user.
type Identity interface {
	UserName(ctx context.Context) (string, error)
}

// FingerprintCache remembers the files each game was last scanned from and
// how that scan ended.
type FingerprintCache interface {
	// Seen reports whether files match the last recorded scan of npCommID,
	// and the error message recorded then ("" for success).
	Seen(npCommID string, files Files) (prevErr string, ok bool)
	// Record stores the outcome of scanning files.
	Record(npCommID string, files Files, err error)
}
