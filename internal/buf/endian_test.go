package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U16BE(data); got != 0x0123 {
		t.Fatalf("U16BE = 0x%x, want 0x0123", got)
	}
	if got := U32BE(data); got != 0x01234567 {
		t.Fatalf("U32BE = 0x%x, want 0x01234567", got)
	}
	if got := U64BE(data); got != 0x0123456789abcdef {
		t.Fatalf("U64BE = 0x%x, want 0x0123456789abcdef", got)
	}

	short := []byte{0xAA}
	if U16BE(short) != 0 || U32BE(short) != 0 || U64BE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}
