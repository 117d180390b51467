package buf

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is returned when a read needs more bytes than remain
// between the cursor position and the end of the buffer.
var ErrUnexpectedEOF = errors.New("buf: unexpected end of data")

// Cursor is a positioned big-endian reader over an immutable byte slice.
//
// Decoders receive a *Cursor explicitly and move it with Seek; there is no
// shared or package-level position. A failed read leaves the position where it
// was, so callers can report the offset of the record that did not fit.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor returns a cursor positioned at offset 0 of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current absolute offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the size of the underlying buffer.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the number of unread bytes after the current position.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Seek moves the cursor to the absolute offset off. Seeking to len(data) is
// allowed (the next read will fail); anything beyond is an error.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.data) {
		return fmt.Errorf("seek to %d (len %d): %w", off, len(c.data), ErrUnexpectedEOF)
	}
	c.pos = off
	return nil
}

// take returns the next n bytes and advances past them.
func (c *Cursor) take(n int) ([]byte, error) {
	b, ok := Slice(c.data, c.pos, n)
	if !ok {
		return nil, fmt.Errorf("read %d bytes at %d (len %d): %w", n, c.pos, len(c.data), ErrUnexpectedEOF)
	}
	c.pos += n
	return b, nil
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a big-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return U16BE(b), nil
}

// U32 reads a big-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return U32BE(b), nil
}

// I32 reads a big-endian two's-complement int32.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// U64 reads a big-endian uint64.
func (c *Cursor) U64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return U64BE(b), nil
}

// Bytes reads n raw bytes. The result aliases the underlying buffer and must
// not be modified.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	return c.take(n)
}

// Skip advances past n bytes without returning them.
func (c *Cursor) Skip(n int) error {
	_, err := c.take(n)
	return err
}
