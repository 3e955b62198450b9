package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// NewCard creates the directory layout of a Deluge card at root.
func NewCard(t testing.TB, root string) string {
	t.Helper()

	for _, dir := range []string{"KITS", "SAMPLES", "SONGS", "SYNTHS"} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir card dir %s: %v", dir, err)
		}
	}
	return root
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
