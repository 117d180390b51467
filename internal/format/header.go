package format

import (
	"fmt"

	"github.com/joshuapare/trophykit/internal/buf"
)

// FileHeader captures the fields of the progress-file preamble that matter
// for traversal. See FileHeaderSize for the on-disk layout.
type FileHeader struct {
	Magic      uint32
	TableCount uint32
}

// DecodeFileHeader reads the 48-byte preamble at the cursor position and
// validates the magic. On success the cursor sits on the first table
// directory slot.
func DecodeFileHeader(c *buf.Cursor) (FileHeader, error) {
	start := c.Pos()
	magic, err := c.U32()
	if err != nil {
		return FileHeader{}, fmt.Errorf("file header: %w", ErrTruncated)
	}
	if magic != Magic {
		return FileHeader{}, fmt.Errorf("file header: %w (got 0x%08X, want 0x%08X)",
			ErrMagicMismatch, magic, Magic)
	}
	if err := c.Skip(4); err != nil {
		return FileHeader{}, headerTruncated(c, start)
	}
	count, err := c.U32()
	if err != nil {
		return FileHeader{}, headerTruncated(c, start)
	}
	if err := c.Skip(4 + FileHeaderReservedSize); err != nil {
		return FileHeader{}, headerTruncated(c, start)
	}
	return FileHeader{Magic: magic, TableCount: count}, nil
}

func headerTruncated(c *buf.Cursor, start int) error {
	return fmt.Errorf("file header: %w (have %d, need %d)", ErrTruncated, c.Len()-start, FileHeaderSize)
}
