package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditorBufferInsertAndDelete(t *testing.T) {
	b := NewEditorBuffer()
	b.InsertAt(0, []rune("hello"))
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 5, b.Cursor())

	b.InsertAt(5, []rune(" world"))
	assert.Equal(t, "hello world", b.String())

	removed := b.DeleteRange(5, 11)
	assert.Equal(t, " world", string(removed))
	assert.Equal(t, "hello", b.String())
	assert.Equal(t, 5, b.Cursor())
}

func TestEditorBufferOverwriteAt(t *testing.T) {
	b := NewEditorBufferFromString("hello")
	b.SetCursor(0)
	b.OverwriteAt(0, []rune("HE"))
	assert.Equal(t, "HEllo", b.String())
	assert.Equal(t, 2, b.Cursor())
}

func TestEditorBufferSnapshotRestore(t *testing.T) {
	b := NewEditorBufferFromString("abc")
	snap := b.Snapshot()
	b.InsertAt(3, []rune("def"))
	assert.Equal(t, "abcdef", b.String())
	b.Restore(snap)
	assert.Equal(t, "abc", b.String())
	assert.Equal(t, 3, b.Cursor())
}

func TestKillRingPushAndCycle(t *testing.T) {
	k := NewKillRing()
	k.Push("one")
	k.Push("two")
	head, ok := k.Head()
	assert.True(t, ok)
	assert.Equal(t, "two", head)

	older, ok := k.At(1)
	assert.True(t, ok)
	assert.Equal(t, "one", older)
}

func TestUndoStackGroupingAndRedo(t *testing.T) {
	u := NewUndoStack()
	u.PushGrouped(Snapshot{Text: "", Cursor: 0})
	u.PushGrouped(Snapshot{Text: "a", Cursor: 1}) // grouped, ignored

	got, ok := u.Undo(Snapshot{Text: "ab", Cursor: 2})
	assert.True(t, ok)
	assert.Equal(t, Snapshot{Text: "", Cursor: 0}, got)

	redone, ok := u.Redo(Snapshot{Text: "", Cursor: 0})
	assert.True(t, ok)
	assert.Equal(t, Snapshot{Text: "ab", Cursor: 2}, redone)
}

func TestWordMotionOnAlnumUnderscoreRuns(t *testing.T) {
	runes := []rune("foo_bar baz")
	assert.Equal(t, 8, forwardWord(runes, 0))
	assert.Equal(t, 0, backwardWord(runes, 8))
}
