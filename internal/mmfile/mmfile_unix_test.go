//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMapReadOnlyUnix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TROPUSR.DAT")
	want := []byte{0x81, 0x8f, 0x54, 0xad, 0x42}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, release, err := Map(path)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if string(data) != string(want) {
		t.Fatalf("mapped %x, want %x", data, want)
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := release(); err != nil {
		t.Fatalf("second release should be a no-op: %v", err)
	}
}

func TestMapZeroLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, release, err := Map(path)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected zero-length mapping, got %d", len(data))
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func TestMapRejectsDirectory(t *testing.T) {
	if _, _, err := Map(t.TempDir()); err == nil {
		t.Fatalf("mapping a directory should fail")
	}
}

func TestReadFileCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := ReadFile(path)
	if err != nil || string(data) != "abc" {
		t.Fatalf("ReadFile = %q, %v", data, err)
	}
	data[0] = 'z' // must not fault: the copy is private
	if !Exists(path) || Exists(filepath.Join(t.TempDir(), "missing")) {
		t.Fatalf("Exists misreported")
	}
}
