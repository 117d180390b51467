package format

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/joshuapare/trophykit/internal/buf"
)

func TestDecodeFileHeaderSuccess(t *testing.T) {
	b := make([]byte, FileHeaderSize)
	binary.BigEndian.PutUint32(b[0:], Magic)
	binary.BigEndian.PutUint32(b[8:], 2)

	c := buf.NewCursor(b)
	hdr, err := DecodeFileHeader(c)
	if err != nil {
		t.Fatalf("DecodeFileHeader: %v", err)
	}
	if hdr.Magic != Magic || hdr.TableCount != 2 {
		t.Fatalf("unexpected header: %+v", hdr)
	}
	if c.Pos() != FileHeaderSize {
		t.Fatalf("cursor at %d, want %d", c.Pos(), FileHeaderSize)
	}
}

func TestDecodeFileHeaderMagicMismatch(t *testing.T) {
	for _, bad := range []uint32{0, 0xAD548F81, 0x818F54AC, 0xFFFFFFFF} {
		b := make([]byte, FileHeaderSize)
		binary.BigEndian.PutUint32(b[0:], bad)
		binary.BigEndian.PutUint32(b[8:], 2)
		if _, err := DecodeFileHeader(buf.NewCursor(b)); !errors.Is(err, ErrMagicMismatch) {
			t.Fatalf("magic 0x%08X: got %v, want ErrMagicMismatch", bad, err)
		}
	}
}

func TestDecodeFileHeaderTruncated(t *testing.T) {
	b := make([]byte, FileHeaderSize)
	binary.BigEndian.PutUint32(b[0:], Magic)
	for _, n := range []int{0, 3, 4, 12, FileHeaderSize - 1} {
		if _, err := DecodeFileHeader(buf.NewCursor(b[:n])); !errors.Is(err, ErrTruncated) {
			t.Fatalf("len %d: got %v, want ErrTruncated", n, err)
		}
	}
}
