// Package mmfile supplies trophy-file bytes, memory-mapped where the
// platform allows it.
package mmfile

import "os"

func noop() error { return nil }

// ReadFile returns a private copy of the file's contents. Use it when the
// bytes must outlive the mapping, for example when hashing and decoding
// happen at different times.
func ReadFile(path string) ([]byte, error) {
	data, release, err := Map(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = release() }()
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Exists reports whether path names a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
