package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes size bytes of a non-repeating-per-chunk pattern to path
// and returns the contents. A size <= 0 writes an empty file. Sizes above
// 64 KiB span several fingerprint read chunks.
func WriteFile(t testing.TB, path string, size int64) []byte {
	t.Helper()

	if size < 0 {
		size = 0
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return data
}
