package trophy

import (
	"fmt"

	"github.com/joshuapare/trophykit/internal/format"
	"github.com/joshuapare/trophykit/internal/reader"
	"github.com/joshuapare/trophykit/internal/tropconf"
	"github.com/joshuapare/trophykit/pkg/types"
)

// Reconcile joins a decoded trophy set with decoded progress. progress may be
// nil when the game has no progress file yet; every trophy is then locked.
//
// The trophy set is authoritative: its order, ids and static fields define the
// result. Unlock records for unknown ids are dropped and reported. A grade
// record fills in the grade when the descriptor's token was not recognized.
func Reconcile(
	npCommID string,
	set *tropconf.TrophySet,
	progress *reader.Progress,
	opts Options,
) (*Game, *types.DiagnosticReport) {
	log := opts.logger().With("game", npCommID)
	report := types.NewDiagnosticReport(npCommID)

	var (
		unlocks map[uint32]format.UnlockRecord
		grades  map[uint32]format.GradeRecord
	)
	if progress != nil {
		unlocks = make(map[uint32]format.UnlockRecord, len(progress.Unlocks))
		for _, u := range progress.Unlocks {
			unlocks[u.TrophyID] = u
		}
		grades = make(map[uint32]format.GradeRecord, len(progress.Grades))
		for _, g := range progress.Grades {
			grades[g.TrophyID] = g
		}
	}

	game := &Game{
		NpCommID:      npCommID,
		Title:         set.Title,
		Detail:        set.Detail,
		Version:       set.Version,
		ParentalLevel: set.ParentalLevel,
		Trophies:      make([]Trophy, 0, len(set.Trophies)),
	}
	known := make(map[uint32]struct{}, len(set.Trophies))
	for _, meta := range set.Trophies {
		known[meta.ID] = struct{}{}
		t := Trophy{
			ID:               meta.ID,
			Name:             meta.Name,
			Detail:           meta.Detail,
			Grade:            meta.Grade,
			Hidden:           meta.Hidden,
			PlatinumRelevant: meta.PlatinumRelevant(),
		}
		if gr, ok := grades[meta.ID]; ok {
			reconcileGrade(&t, gr, report)
		}
		if u, ok := unlocks[meta.ID]; ok && u.Unlocked() {
			at := u.UnlockedAt()
			t.Unlocked = true
			t.UnlockedAt = &at
		}
		game.Trophies = append(game.Trophies, t)
	}

	if progress != nil {
		// Walk the records rather than the map so reports follow file order.
		for _, u := range progress.Unlocks {
			if _, ok := known[u.TrophyID]; ok {
				continue
			}
			log.Warn("dropping unlock record without metadata", "trophy", u.TrophyID, "state", u.State)
			report.Add(types.Diagnostic{
				Severity:  types.SevWarning,
				Category:  types.DiagIntegrity,
				Structure: "unlock",
				Issue:     types.IssueMissingMetadata,
				Actual:    u.State,
			}.ForTrophy(u.TrophyID))
		}
	}
	return game, report
}

func reconcileGrade(t *Trophy, gr format.GradeRecord, report *types.DiagnosticReport) {
	fromRecord := types.GradeFromCode(gr.Grade)
	switch {
	case fromRecord == types.GradeUnknown || fromRecord == t.Grade:
	case t.Grade == types.GradeUnknown:
		t.Grade = fromRecord
		report.Add(types.Diagnostic{
			Severity:  types.SevInfo,
			Category:  types.DiagIntegrity,
			Structure: "grade",
			Issue:     types.IssueGradeFromRecord,
			Actual:    fromRecord.String(),
		}.ForTrophy(t.ID))
	default:
		report.Add(types.Diagnostic{
			Severity:  types.SevWarning,
			Category:  types.DiagIntegrity,
			Structure: "grade",
			Issue:     types.IssueGradeMismatch,
			Expected:  t.Grade.String(),
			Actual:    fromRecord.String(),
		}.ForTrophy(t.ID))
	}
}

// DecodeGame decodes one game's descriptor and (optional) progress file and
// reconciles them. A nil progress image means the game has no progress yet.
//
// Errors are typed: a bad descriptor is ErrKindMetadata, a bad magic is
// ErrKindFormat, and a broken unlock table is ErrKindTruncated. A broken grade
// table only adds diagnostics, since the descriptor already carries grades.
func DecodeGame(npCommID string, progress, descriptor []byte, opts Options) (*Game, *types.DiagnosticReport, error) {
	if descriptor == nil {
		return nil, nil, &types.Error{Kind: types.ErrKindNotFound, Msg: "trophy-set descriptor missing"}
	}
	set, err := tropconf.Parse(descriptor)
	if err != nil {
		return nil, nil, &types.Error{Kind: types.ErrKindMetadata, Msg: types.ErrMetadata.Msg, Err: err}
	}

	var prog *reader.Progress
	if progress != nil {
		prog, err = reader.Decode(progress, reader.Options{Source: npCommID, Logger: opts.Logger})
		if err != nil {
			return nil, nil, fmt.Errorf("progress file: %w", err)
		}
		if err := prog.UnlockErr(); err != nil {
			return nil, prog.Diagnostics, fmt.Errorf("unlock table: %w", err)
		}
		if err := prog.GradeErr(); err != nil {
			opts.logger().Warn("ignoring broken grade table", "game", npCommID, "err", err)
		}
	}

	game, report := Reconcile(npCommID, set, prog, opts)
	if prog != nil {
		merged := types.NewDiagnosticReport(npCommID)
		merged.Merge(prog.Diagnostics)
		merged.Merge(report)
		report = merged
	}
	return game, report, nil
}
