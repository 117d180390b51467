package format

import (
	"fmt"

	"github.com/joshuapare/trophykit/internal/buf"
)

// TableHeader is one table directory slot. The entries themselves live at
// Offset, not next to the directory.
type TableHeader struct {
	Type       uint32
	EntrySize  uint32
	EntryCount uint32
	Offset     uint64
	Reserved   uint64
}

// Known reports whether the table type is one this package decodes.
func (th TableHeader) Known() bool {
	return th.Type == TableTypeGrade || th.Type == TableTypeUnlock
}

// Span returns the byte range [start, end) the table's entries occupy, after
// checking it lies within a buffer of bufLen bytes.
func (th TableHeader) Span(bufLen int) (int, int, error) {
	if th.Offset > uint64(bufLen) {
		return 0, 0, fmt.Errorf("table type %d: offset %d beyond len %d: %w",
			th.Type, th.Offset, bufLen, ErrTruncatedTable)
	}
	start := int(th.Offset)
	end, err := buf.CheckSpan(bufLen, start, int(th.EntryCount), int(th.EntrySize))
	if err != nil {
		return 0, 0, fmt.Errorf("table type %d: %v: %w", th.Type, err, ErrTruncatedTable)
	}
	return start, end, nil
}

// DecodeTableHeader reads one 32-byte directory slot at the cursor position.
func DecodeTableHeader(c *buf.Cursor) (TableHeader, error) {
	start := c.Pos()
	if c.Remaining() < TableHeaderSize {
		return TableHeader{}, fmt.Errorf("table header at %d: %w (have %d, need %d)",
			start, ErrTruncated, c.Remaining(), TableHeaderSize)
	}
	// The length check above makes the individual reads infallible.
	typ, _ := c.U32()
	size, _ := c.U32()
	_ = c.Skip(4)
	count, _ := c.U32()
	off, _ := c.U64()
	reserved, _ := c.U64()
	return TableHeader{
		Type:       typ,
		EntrySize:  size,
		EntryCount: count,
		Offset:     off,
		Reserved:   reserved,
	}, nil
}

// DecodeDirectory reads count consecutive directory slots starting at the
// cursor position.
func DecodeDirectory(c *buf.Cursor, count uint32) ([]TableHeader, error) {
	if _, err := buf.CheckSpan(c.Len(), c.Pos(), int(count), TableHeaderSize); err != nil {
		return nil, fmt.Errorf("table directory (%d slots): %v: %w", count, err, ErrTruncated)
	}
	out := make([]TableHeader, 0, count)
	for range count {
		th, err := DecodeTableHeader(c)
		if err != nil {
			return nil, err
		}
		out = append(out, th)
	}
	return out, nil
}
