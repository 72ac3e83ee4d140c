package editor

// Package editor implements the line editor state machine:
// Normal/Search/MenuComplete modes, undo/redo groups, kill-ring,
// selection, history navigation, and tab completion.

// EditorBuffer holds the line under edit as a rune slice plus a cursor
// position. Grounded on caret.go's plain-field shape, but without its
// mutex: the editor's concurrency model is single-threaded
// and re-entrancy-free, so a guard against concurrent access would
// protect against a race that cannot occur here.
type EditorBuffer struct {
	runes  []rune
	cursor int
}

// NewEditorBuffer returns an empty buffer with the cursor at position 0.
func NewEditorBuffer() *EditorBuffer {
	return &EditorBuffer{}
}

// NewEditorBufferFromString seeds the buffer with text, cursor at the end.
func NewEditorBufferFromString(s string) *EditorBuffer {
	r := []rune(s)
	return &EditorBuffer{runes: r, cursor: len(r)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Len reports the number of runes in the buffer.
func (b *EditorBuffer) Len() int { return len(b.runes) }

// Cursor reports the current cursor position, in runes from the start.
func (b *EditorBuffer) Cursor() int { return b.cursor }

// SetCursor moves the cursor, clamped to the buffer bounds.
func (b *EditorBuffer) SetCursor(pos int) { b.cursor = clamp(pos, 0, len(b.runes)) }

// String returns the buffer's contents as a string.
func (b *EditorBuffer) String() string { return string(b.runes) }

// Runes returns a defensive copy of the buffer's contents.
func (b *EditorBuffer) Runes() []rune {
	out := make([]rune, len(b.runes))
	copy(out, b.runes)
	return out
}

// RuneAt returns the rune at i, or ok=false if i is out of range.
func (b *EditorBuffer) RuneAt(i int) (r rune, ok bool) {
	if i < 0 || i >= len(b.runes) {
		return 0, false
	}
	return b.runes[i], true
}

// InsertAt splices text into the buffer at pos, leaving the cursor just
// past the inserted text.
func (b *EditorBuffer) InsertAt(pos int, text []rune) {
	if len(text) == 0 {
		return
	}
	pos = clamp(pos, 0, len(b.runes))
	out := make([]rune, 0, len(b.runes)+len(text))
	out = append(out, b.runes[:pos]...)
	out = append(out, text...)
	out = append(out, b.runes[pos:]...)
	b.runes = out
	b.cursor = pos + len(text)
}

// OverwriteAt replaces runes starting at pos with text, extending the
// buffer if text runs past the current end (overwrite mode). The
// cursor ends just past the written text.
func (b *EditorBuffer) OverwriteAt(pos int, text []rune) {
	if len(text) == 0 {
		return
	}
	pos = clamp(pos, 0, len(b.runes))
	end := pos + len(text)
	if end > len(b.runes) {
		grown := make([]rune, end)
		copy(grown, b.runes)
		b.runes = grown
	}
	copy(b.runes[pos:end], text)
	b.cursor = end
}

// DeleteRange removes [from, to) and returns the removed runes. The
// cursor is adjusted to stay logically in place relative to the
// surviving text.
func (b *EditorBuffer) DeleteRange(from, to int) []rune {
	from = clamp(from, 0, len(b.runes))
	to = clamp(to, from, len(b.runes))
	removed := append([]rune(nil), b.runes[from:to]...)
	b.runes = append(b.runes[:from:from], b.runes[to:]...)
	switch {
	case b.cursor >= to:
		b.cursor -= to - from
	case b.cursor > from:
		b.cursor = from
	}
	return removed
}

// Replace overwrites the entire buffer with s, cursor at the end. Used
// for history recall and search-result acceptance.
func (b *EditorBuffer) Replace(s string) {
	b.runes = []rune(s)
	b.cursor = len(b.runes)
}

// Clear empties the buffer.
func (b *EditorBuffer) Clear() {
	b.runes = nil
	b.cursor = 0
}

// Snapshot captures buffer text and cursor for undo/redo (:
// "Undo then Redo restores the buffer and cursor exactly").
type Snapshot struct {
	Text   string
	Cursor int
}

// Snapshot captures the buffer's current state.
func (b *EditorBuffer) Snapshot() Snapshot {
	return Snapshot{Text: b.String(), Cursor: b.cursor}
}

// Restore resets the buffer to a previously captured snapshot.
func (b *EditorBuffer) Restore(s Snapshot) {
	b.runes = []rune(s.Text)
	b.cursor = clamp(s.Cursor, 0, len(b.runes))
}
