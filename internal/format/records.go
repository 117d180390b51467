package format

import (
	"errors"
	"fmt"
	"time"

	"github.com/joshuapare/trophykit/internal/buf"
)

// GradeRecord models a type 4 record: the static grade of one trophy and
// its link to the set's platinum.
type GradeRecord struct {
	Header         EntryHeader
	TrophyID       uint32
	Grade          uint32
	PlatinumLinkID uint32
}

// PlatinumRelevant reports whether the trophy counts towards the platinum.
func (g GradeRecord) PlatinumRelevant() bool {
	return g.PlatinumLinkID != NoPlatinumLink
}

// UnlockRecord models a type 6 record: whether a trophy is unlocked and when.
type UnlockRecord struct {
	Header     EntryHeader
	TrophyID   uint32
	State      uint32
	Timestamp1 uint64
	Timestamp2 uint64
}

// Unlocked reports whether the state field is nonzero.
func (u UnlockRecord) Unlocked() bool {
	return u.State != 0
}

// UnlockedAt converts Timestamp2 to a time. The result is meaningful only
// when Unlocked is true.
func (u UnlockRecord) UnlockedAt() time.Time {
	return TicksToTime(u.Timestamp2)
}

// DecodeGradeRecord reads one grade record of entrySize bytes at the cursor
// position. The cursor always ends entrySize bytes after where it started
// when the call succeeds; trailing bytes are ignored.
func DecodeGradeRecord(c *buf.Cursor, entrySize int) (GradeRecord, error) {
	start := c.Pos()
	if entrySize < GradeRecordMinSize {
		return GradeRecord{}, fmt.Errorf("grade record: entry size %d < %d: %w",
			entrySize, GradeRecordMinSize, ErrTruncatedTable)
	}
	if c.Remaining() < entrySize {
		return GradeRecord{}, fmt.Errorf("grade record at %d: %w", start, buf.ErrUnexpectedEOF)
	}
	hdr, err := DecodeEntryHeader(c)
	if err != nil {
		return GradeRecord{}, err
	}
	id, _ := c.U32()
	grade, _ := c.U32()
	link, _ := c.U32()
	if err := c.Seek(start + entrySize); err != nil {
		return GradeRecord{}, err
	}
	return GradeRecord{
		Header:         hdr,
		TrophyID:       id,
		Grade:          grade,
		PlatinumLinkID: link,
	}, nil
}

// DecodeUnlockRecord reads one unlock record of entrySize bytes at the cursor
// position.
func DecodeUnlockRecord(c *buf.Cursor, entrySize int) (UnlockRecord, error) {
	start := c.Pos()
	if entrySize < UnlockRecordMinSize {
		return UnlockRecord{}, fmt.Errorf("unlock record: entry size %d < %d: %w",
			entrySize, UnlockRecordMinSize, ErrTruncatedTable)
	}
	if c.Remaining() < entrySize {
		return UnlockRecord{}, fmt.Errorf("unlock record at %d: %w", start, buf.ErrUnexpectedEOF)
	}
	hdr, err := DecodeEntryHeader(c)
	if err != nil {
		return UnlockRecord{}, err
	}
	id, _ := c.U32()
	state, _ := c.U32()
	_ = c.Skip(8)
	ts1, _ := c.U64()
	ts2, _ := c.U64()
	if err := c.Seek(start + entrySize); err != nil {
		return UnlockRecord{}, err
	}
	return UnlockRecord{
		Header:     hdr,
		TrophyID:   id,
		State:      state,
		Timestamp1: ts1,
		Timestamp2: ts2,
	}, nil
}

// DecodeGradeTable seeks to th.Offset and decodes th.EntryCount grade records.
func DecodeGradeTable(c *buf.Cursor, th TableHeader) ([]GradeRecord, error) {
	return decodeTable(c, th, TableTypeGrade, GradeRecordMinSize, DecodeGradeRecord)
}

// DecodeUnlockTable seeks to th.Offset and decodes th.EntryCount unlock records.
func DecodeUnlockTable(c *buf.Cursor, th TableHeader) ([]UnlockRecord, error) {
	return decodeTable(c, th, TableTypeUnlock, UnlockRecordMinSize, DecodeUnlockRecord)
}

func decodeTable[T any](
	c *buf.Cursor,
	th TableHeader,
	want uint32,
	minSize int,
	decode func(*buf.Cursor, int) (T, error),
) ([]T, error) {
	if th.Type != want {
		return nil, fmt.Errorf("table type %d decoded as %d", th.Type, want)
	}
	// Checked before Span: a zero entry size makes any count fit the buffer.
	if int(th.EntrySize) < minSize {
		return nil, fmt.Errorf("table type %d: entry size %d < %d: %w",
			th.Type, th.EntrySize, minSize, ErrTruncatedTable)
	}
	start, _, err := th.Span(c.Len())
	if err != nil {
		return nil, err
	}
	if err := c.Seek(start); err != nil {
		return nil, fmt.Errorf("table type %d: %w", th.Type, ErrTruncatedTable)
	}
	out := make([]T, 0, th.EntryCount)
	for i := range th.EntryCount {
		rec, err := decode(c, int(th.EntrySize))
		if err != nil {
			if errors.Is(err, ErrTruncatedTable) {
				return nil, fmt.Errorf("table type %d entry %d: %w", th.Type, i, err)
			}
			return nil, fmt.Errorf("table type %d entry %d: %w: %w", th.Type, i, err, ErrTruncatedTable)
		}
		out = append(out, rec)
	}
	return out, nil
}
