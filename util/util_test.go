package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinMax(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Min(1, 2), 1)
	assert.Equal(Min(2.5, 2.4), 2.4)
	assert.Equal(Max(1, 2), 2)
	assert.Equal(Max(uint64(7), uint64(7)), uint64(7))
	assert.Equal(Max("a", "b"), "b")
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.bin")

	assert := assert.New(t)
	assert.NoError(WriteFileAtomic(path, []byte("first")))

	got, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Equal(string(got), "first")

	// overwrites in place
	assert.NoError(WriteFileAtomic(path, []byte("second")))
	got, err = os.ReadFile(path)
	assert.NoError(err)
	assert.Equal(string(got), "second")

	// and leaves no temp files around
	entries, err := os.ReadDir(dir)
	assert.NoError(err)
	assert.Equal(len(entries), 1)
	assert.Equal(entries[0].Name(), "artifact.bin")
}

func TestWriteFileAtomicBadDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "artifact.bin"), []byte("x"))

	assert.Error(t, err)
}
