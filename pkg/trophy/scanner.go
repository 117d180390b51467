package trophy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joshuapare/trophykit/pkg/types"
)

// ErrUnchangedFailure marks a game skipped because its files are identical to
// a previous scan that failed.
var ErrUnchangedFailure = errors.New("files unchanged since failed scan")

// Scanner decodes every listed game and refreshes a Profile with the result.
type Scanner struct {
	lister   Lister
	source   Source
	identity Identity
	opts     Options
}

// NewScanner returns a scanner over the given collaborators.
func NewScanner(lister Lister, source Source, opts Options) *Scanner {
	return &Scanner{lister: lister, source: source, opts: opts}
}

// WithIdentity sets the collaborator used to name the profile's user.
func (s *Scanner) WithIdentity(id Identity) *Scanner {
	s.identity = id
	return s
}

// GameReport describes one game that was decoded and merged.
type GameReport struct {
	NpCommID    string                  `json:"np_comm_id"`
	Title       string                  `json:"title"`
	Merge       MergeResult             `json:"merge"`
	Diagnostics *types.DiagnosticReport `json:"diagnostics,omitempty"`
}

// Failure is a game that could not be decoded.
type Failure struct {
	NpCommID string `json:"np_comm_id"`
	Err      error  `json:"-"`
}

// MarshalJSON renders the error as text.
func (f Failure) MarshalJSON() ([]byte, error) {
	kind := ""
	if k, ok := types.KindOf(f.Err); ok {
		kind = k.String()
	}
	return json.Marshal(struct {
		NpCommID string `json:"np_comm_id"`
		Kind     string `json:"kind,omitempty"`
		Error    string `json:"error"`
	}{f.NpCommID, kind, f.Err.Error()})
}

// ScanResult summarizes a scan. Games and Failures follow listing order.
type ScanResult struct {
	Games     []GameReport `json:"games"`
	Failures  []Failure    `json:"failures"`
	Unchanged []string     `json:"unchanged"`
}

type outcome struct {
	report    *GameReport
	failure   *Failure
	unchanged bool
}

// Scan lists games, decodes each independently and upserts the successes
// into profile. A failing game is logged and recorded in the result; it
// never stops the batch. The returned error is non-nil only when the games
// cannot be listed or ctx is cancelled.
func (s *Scanner) Scan(ctx context.Context, profile *Profile) (*ScanResult, error) {
	log := s.opts.logger()

	if s.identity != nil {
		if name, err := s.identity.UserName(ctx); err != nil {
			log.Warn("identity lookup failed", "err", err)
		} else if name != "" {
			profile.SetUserName(name)
		}
	}

	ids, err := s.lister.GameIDs(ctx)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "list games", Err: err}
	}
	log.Info("scan started", "games", len(ids), "workers", s.opts.workers())

	results := make([]outcome, len(ids))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(s.opts.workers(), max(len(ids), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.scanOne(ctx, log, profile, ids[i])
			}
		}()
	}

feed:
	for i := range ids {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ScanResult{}
	for _, o := range results {
		switch {
		case o.failure != nil:
			res.Failures = append(res.Failures, *o.failure)
		case o.unchanged:
			res.Unchanged = append(res.Unchanged, o.report.NpCommID)
		case o.report != nil:
			res.Games = append(res.Games, *o.report)
		}
	}
	log.Info("scan finished", "decoded", len(res.Games), "unchanged", len(res.Unchanged), "failed", len(res.Failures))
	return res, nil
}

func (s *Scanner) scanOne(ctx context.Context, log *slog.Logger, profile *Profile, id string) outcome {
	log = log.With("game", id)
	fail := func(err error) outcome {
		log.Error("game failed", "err", err)
		return outcome{failure: &Failure{NpCommID: id, Err: err}}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	files, err := s.source.TrophyFiles(ctx, id)
	if err != nil {
		return fail(&types.Error{Kind: types.ErrKindIO, Msg: "read trophy files", Err: err})
	}

	cache := s.opts.Fingerprints
	if cache != nil {
		if prevErr, ok := cache.Seen(id, files); ok {
			if prevErr != "" {
				return fail(fmt.Errorf("%w: %s", ErrUnchangedFailure, prevErr))
			}
			if profile.Has(id) {
				log.Debug("game unchanged")
				return outcome{unchanged: true, report: &GameReport{NpCommID: id}}
			}
		}
	}

	game, report, err := DecodeGame(id, files.Progress, files.Descriptor, s.opts)
	if cache != nil {
		cache.Record(id, files, err)
	}
	if err != nil {
		return fail(err)
	}

	merge := profile.Upsert(game)
	log.Info("game merged",
		"title", game.Title,
		"added", merge.Added,
		"updated", merge.Updated,
		"newly_unlocked", merge.NewlyUnlocked,
		"diagnostics", report.Len())
	return outcome{report: &GameReport{
		NpCommID:    id,
		Title:       game.Title,
		Merge:       merge,
		Diagnostics: report,
	}}
}
