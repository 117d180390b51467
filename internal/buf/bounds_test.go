package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(3, 112); !ok || p != 336 {
		t.Fatalf("MulOverflowSafe(3,112)=%d,%v want 336,true", p, ok)
	}
	if p, ok := MulOverflowSafe(0, math.MaxInt); !ok || p != 0 {
		t.Fatalf("zero operand should yield 0,true; got %d,%v", p, ok)
	}
	if _, ok := MulOverflowSafe(math.MaxInt/2+1, 2); ok {
		t.Fatalf("expected overflow")
	}
	if _, ok := MulOverflowSafe(-1, 2); ok {
		t.Fatalf("negative operand must be rejected")
	}
}

func TestCheckSpan(t *testing.T) {
	end, err := CheckSpan(400, 64, 3, 112)
	if err != nil || end != 400 {
		t.Fatalf("CheckSpan exact fit = %d, %v; want 400, nil", end, err)
	}
	if _, err := CheckSpan(399, 64, 3, 112); err == nil {
		t.Fatalf("expected bounds error one byte short")
	}
	if _, err := CheckSpan(100, -1, 1, 1); err == nil {
		t.Fatalf("expected negative offset error")
	}
	if _, err := CheckSpan(100, 0, math.MaxInt, 2); err == nil {
		t.Fatalf("expected multiplication overflow error")
	}
	if _, err := CheckSpan(100, math.MaxInt, 1, 1); err == nil {
		t.Fatalf("expected addition overflow error")
	}
}

func TestSlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}
