package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuru-cli/nuru/pkg/history"
)

func TestAppendCoalescesConsecutiveDuplicates(t *testing.T) {
	h := history.New(10)
	h.Append("ls")
	h.Append("ls")
	h.Append("pwd")
	h.Append("pwd")

	assert.Equal(t, 2, h.Len())
	e0, _ := h.EntryAt(0)
	e1, _ := h.EntryAt(1)
	assert.Equal(t, "ls", e0)
	assert.Equal(t, "pwd", e1)
}

func TestAppendEvictsOldestPastCapacity(t *testing.T) {
	h := history.New(2)
	h.Append("a")
	h.Append("b")
	h.Append("c")

	assert.Equal(t, 2, h.Len())
	e0, _ := h.EntryAt(0)
	e1, _ := h.EntryAt(1)
	assert.Equal(t, "b", e0)
	assert.Equal(t, "c", e1)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")

	h := history.New(100)
	h.Append("one")
	h.Append("two")
	h.Append("three")
	require.NoError(t, h.Save(path))

	h2 := history.New(100)
	require.NoError(t, h2.Load(path))
	assert.Equal(t, []string{"one", "two", "three"}, h2.All())
}

func TestLoadTruncatesAtFirstMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history")
	content := "one\ntwo\n\x00garbage\nthree\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	h := history.New(100)
	require.NoError(t, h.Load(path))
	assert.Equal(t, []string{"one", "two"}, h.All())
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	h := history.New(100)
	require.NoError(t, h.Load(filepath.Join(t.TempDir(), "nope")))
	assert.Equal(t, 0, h.Len())
}
