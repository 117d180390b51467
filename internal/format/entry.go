package format

import (
	"fmt"

	"github.com/joshuapare/trophykit/internal/buf"
)

// EntryHeader is the 16-byte prefix shared by every typed record.
type EntryHeader struct {
	Type     uint32
	Size     uint32
	TrophyID uint32
}

// DecodeEntryHeader reads an entry header at the cursor position.
func DecodeEntryHeader(c *buf.Cursor) (EntryHeader, error) {
	if c.Remaining() < EntryHeaderSize {
		return EntryHeader{}, fmt.Errorf("entry header at %d: %w", c.Pos(), buf.ErrUnexpectedEOF)
	}
	typ, _ := c.U32()
	size, _ := c.U32()
	id, _ := c.U32()
	_ = c.Skip(4)
	return EntryHeader{Type: typ, Size: size, TrophyID: id}, nil
}
