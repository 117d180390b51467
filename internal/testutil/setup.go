package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// File names used inside a per-game trophy directory.
const (
	ProgressFile = "TROPUSR.DAT"
	ConfFile     = "TROPCONF.SFM"
)

// WriteGameDir creates root/id containing the given progress and descriptor
// images. A nil image skips that file. Returns the game directory.
//
// Example:
//
//	dir := testutil.WriteGameDir(t, t.TempDir(), "NPWR00001_00", progress, conf)
func WriteGameDir(t *testing.T, root, id string, progress, conf []byte) string {
	t.Helper()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if progress != nil {
		writeFile(t, filepath.Join(dir, ProgressFile), progress)
	}
	if conf != nil {
		writeFile(t, filepath.Join(dir, ConfFile), conf)
	}
	return dir
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// SampleConf returns a four-trophy set: one platinum, one gold, one silver
// and one hidden bronze.
func SampleConf(id string) Conf {
	return Conf{
		NpCommID:      id,
		Version:       "01.00",
		ParentalLevel: 5,
		Title:         "Sample Game",
		Detail:        "Trophies for Sample Game",
		Trophies: []Trophy{
			{ID: 0, Type: "P", PID: -1, Name: "All Done", Detail: "Earn every trophy"},
			{ID: 1, Type: "G", PID: 0, Name: "Big Win", Detail: "Win big"},
			{ID: 2, Type: "S", PID: 0, Name: "Mid Win", Detail: "Win a bit"},
			{ID: 3, Type: "B", PID: 0, Hidden: true, Name: "Secret", Detail: "Find it"},
		},
	}
}
