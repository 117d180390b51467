// Package reader drives the format decoders over one progress file. It owns
// the cursor for the duration of a decode, walks header → directory → tables,
// and turns per-table failures into errors and diagnostics without letting
// one bad table hide the other.
package reader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/trophykit/internal/buf"
	"github.com/joshuapare/trophykit/internal/format"
	"github.com/joshuapare/trophykit/internal/mmfile"
	"github.com/joshuapare/trophykit/pkg/types"
)

// Options controls a decode.
type Options struct {
	// Source names the file or game in logs and diagnostics.
	Source string
	// Logger receives debug/info output. Nil discards.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TableStatus records what happened to one directory slot.
type TableStatus struct {
	Header  format.TableHeader
	Decoded bool
	Err     error
}

// Progress is the decoded content of one progress file.
type Progress struct {
	Header  format.FileHeader
	Tables  []TableStatus
	Grades  []format.GradeRecord
	Unlocks []format.UnlockRecord

	Diagnostics *types.DiagnosticReport
}

// HasUnlocks reports whether an unlock table was present and decoded.
func (p *Progress) HasUnlocks() bool { return p.tableDecoded(format.TableTypeUnlock) }

// HasGrades reports whether a grade table was present and decoded.
func (p *Progress) HasGrades() bool { return p.tableDecoded(format.TableTypeGrade) }

func (p *Progress) tableDecoded(typ uint32) bool {
	for _, ts := range p.Tables {
		if ts.Header.Type == typ && ts.Decoded {
			return true
		}
	}
	return false
}

// UnlockErr returns the failure of the unlock table(s), nil when every unlock
// table decoded (or none exists).
func (p *Progress) UnlockErr() error { return p.tableErr(format.TableTypeUnlock) }

// GradeErr returns the failure of the grade table(s).
func (p *Progress) GradeErr() error { return p.tableErr(format.TableTypeGrade) }

func (p *Progress) tableErr(typ uint32) error {
	var errs []error
	for _, ts := range p.Tables {
		if ts.Header.Type == typ && ts.Err != nil {
			errs = append(errs, ts.Err)
		}
	}
	return errors.Join(errs...)
}

// Err joins every table failure.
func (p *Progress) Err() error {
	return errors.Join(p.GradeErr(), p.UnlockErr())
}

// OpenFile maps the progress file at path and decodes it. The mapping is
// released before returning; records hold no references into it.
func OpenFile(path string, opts Options) (*Progress, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, &types.Error{Kind: types.ErrKindIO, Msg: "open progress file", Err: err}
	}
	defer func() { _ = unmap() }()
	if opts.Source == "" {
		opts.Source = path
	}
	return Decode(data, opts)
}

// Decode parses a progress file image. A bad magic or an unreadable table
// directory fails the whole decode. A table that cannot be decoded is
// recorded in Tables and Diagnostics while the remaining tables are still
// processed; callers inspect UnlockErr/GradeErr to decide what is usable.
func Decode(data []byte, opts Options) (*Progress, error) {
	log := opts.logger().With("source", opts.Source)
	c := buf.NewCursor(data)

	hdr, err := format.DecodeFileHeader(c)
	if err != nil {
		return nil, wrapFormatErr(err)
	}
	dir, err := format.DecodeDirectory(c, hdr.TableCount)
	if err != nil {
		return nil, wrapFormatErr(err)
	}
	log.Debug("progress header decoded", "tables", hdr.TableCount, "size", len(data))

	p := &Progress{
		Header:      hdr,
		Tables:      make([]TableStatus, 0, len(dir)),
		Diagnostics: types.NewDiagnosticReport(opts.Source),
	}
	for i, th := range dir {
		slot := uint64(format.FileHeaderSize + i*format.TableHeaderSize)
		ts := TableStatus{Header: th}

		switch th.Type {
		case format.TableTypeGrade:
			recs, err := format.DecodeGradeTable(c, th)
			if err == nil {
				p.Grades = appendUnique(p.Grades, recs, gradeID, p.Diagnostics, "grade")
			}
			ts.Decoded, ts.Err = err == nil, tableErr(th, err)
		case format.TableTypeUnlock:
			recs, err := format.DecodeUnlockTable(c, th)
			if err == nil {
				p.Unlocks = appendUnique(p.Unlocks, recs, unlockID, p.Diagnostics, "unlock")
			}
			ts.Decoded, ts.Err = err == nil, tableErr(th, err)
		default:
			// Files in the wild carry table kinds nobody has documented.
			log.Info("skipping unrecognized table", "type", th.Type, "entries", th.EntryCount, "offset", th.Offset)
			p.Diagnostics.Add(diagUnknownTable(slot, th))
		}

		if ts.Err != nil {
			log.Warn("table decode failed", "type", th.Type, "err", ts.Err)
			p.Diagnostics.Add(diagTableFailed(slot, th, ts.Err))
		}
		p.Tables = append(p.Tables, ts)
	}
	return p, nil
}

func gradeID(r format.GradeRecord) uint32   { return r.TrophyID }
func unlockID(r format.UnlockRecord) uint32 { return r.TrophyID }

// appendUnique appends recs to dst, keeping the first record seen for each
// trophy id and reporting later ones.
func appendUnique[T any](
	dst, recs []T,
	id func(T) uint32,
	report *types.DiagnosticReport,
	structure string,
) []T {
	seen := make(map[uint32]struct{}, len(dst)+len(recs))
	for _, r := range dst {
		seen[id(r)] = struct{}{}
	}
	for _, r := range recs {
		tid := id(r)
		if _, dup := seen[tid]; dup {
			report.Add(diagDuplicate(structure, tid))
			continue
		}
		seen[tid] = struct{}{}
		dst = append(dst, r)
	}
	return dst
}

func tableErr(th format.TableHeader, err error) error {
	if err == nil {
		return nil
	}
	return wrapFormatErr(fmt.Errorf("table type %d at 0x%X: %w", th.Type, th.Offset, err))
}

func wrapFormatErr(err error) error {
	switch {
	case errors.Is(err, format.ErrMagicMismatch):
		return &types.Error{Kind: types.ErrKindFormat, Msg: types.ErrNotTrophyFile.Msg, Err: err}
	case errors.Is(err, format.ErrTruncatedTable),
		errors.Is(err, format.ErrTruncated),
		errors.Is(err, buf.ErrUnexpectedEOF):
		return &types.Error{Kind: types.ErrKindTruncated, Msg: types.ErrTruncated.Msg, Err: err}
	default:
		return &types.Error{Kind: types.ErrKindFormat, Msg: err.Error(), Err: err}
	}
}
