package editor

import (
	"context"
	"strings"
	"unicode"

	"github.com/lestrrat-go/pdebug"

	"github.com/nuru-cli/nuru/pkg/keymap"
	"github.com/nuru-cli/nuru/pkg/term"
)

// stepNormal executes one action in Normal mode.
func (e *Editor) stepNormal(ctx context.Context, name keymap.ActionName, key term.KeyEvent) (Event, error) {
	if pdebug.Enabled {
		g := pdebug.Marker("editor.stepNormal %s", name)
		defer g.End()
	}

	// lastWasYank survives only across Yank/YankPop; every other
	// action clears it. YankPop is only valid immediately after Yank
	// or another YankPop.
	if name != keymap.ActionYank && name != keymap.ActionYankPop {
		defer func() { e.lastWasYank = false }()
	}
	// Self-inserts keep their undo group open; every other action
	// closes it. Every run of consecutive printable insertions forms a
	// single undo entry.
	if name != keymap.ActionSelfInsertOrOverwrite {
		defer e.undo.BreakGroup()
	}

	switch name {
	case keymap.ActionSelfInsertOrOverwrite:
		return e.selfInsert(key)

	case keymap.ActionForwardChar:
		e.moveCursor(e.buffer.Cursor() + 1)
	case keymap.ActionBackwardChar:
		e.moveCursor(e.buffer.Cursor() - 1)
	case keymap.ActionForwardWord:
		e.moveCursor(forwardWord(e.buffer.Runes(), e.buffer.Cursor()))
	case keymap.ActionBackwardWord:
		e.moveCursor(backwardWord(e.buffer.Runes(), e.buffer.Cursor()))
	case keymap.ActionBeginningOfLine:
		e.moveCursor(0)
	case keymap.ActionEndOfLine:
		e.moveCursor(e.buffer.Len())

	case keymap.ActionUpcaseWord:
		e.caseWord(strings.ToUpper)
	case keymap.ActionDowncaseWord:
		e.caseWord(strings.ToLower)
	case keymap.ActionCapitalizeWord:
		e.caseWord(capitalize)

	case keymap.ActionDeleteChar:
		e.deleteChar()
	case keymap.ActionBackspace:
		e.backspace()
	case keymap.ActionKillWordForward:
		e.killWordForward()
	case keymap.ActionBackwardKillWord:
		e.backwardKillWord()
	case keymap.ActionKillLineToRing:
		e.killToEndOfLine()
	case keymap.ActionKillWholeLine:
		e.killWholeLine()
	case keymap.ActionTransposeChars:
		e.transposeChars()
	case keymap.ActionClearBuffer:
		e.clearBuffer()

	case keymap.ActionYank:
		e.yank()
	case keymap.ActionYankPop:
		e.yankPop()

	case keymap.ActionUndo:
		e.applyUndo()
	case keymap.ActionRedo:
		e.applyRedo()

	case keymap.ActionToggleInsertMode:
		e.overwrite = !e.overwrite

	case keymap.ActionPreviousHistory:
		e.historyPrev()
	case keymap.ActionNextHistory:
		e.historyNext()
	case keymap.ActionHistorySearchBackward:
		e.historyPrefixSearch(-1)
	case keymap.ActionHistorySearchForward:
		e.historyPrefixSearch(1)

	case keymap.ActionReverseSearchHistory:
		return e.enterSearch(-1), nil
	case keymap.ActionForwardSearchHistory:
		return e.enterSearch(1), nil

	case keymap.ActionTabComplete:
		return e.beginCompletion(ctx)
	case keymap.ActionTabCompleteReverse:
		return e.beginCompletion(ctx)

	case keymap.ActionSetMark:
		e.selection.Set(e.buffer.Cursor())
	case keymap.ActionSelectAll:
		e.selection.Set(0)
		e.buffer.SetCursor(e.buffer.Len())
	case keymap.ActionSelectForwardChar:
		e.extendSelection(e.buffer.Cursor() + 1)
	case keymap.ActionSelectBackwardChar:
		e.extendSelection(e.buffer.Cursor() - 1)
	case keymap.ActionSelectForwardWord:
		e.extendSelection(forwardWord(e.buffer.Runes(), e.buffer.Cursor()))
	case keymap.ActionSelectBackwardWord:
		e.extendSelection(backwardWord(e.buffer.Runes(), e.buffer.Cursor()))
	case keymap.ActionSelectToEndOfLine:
		e.extendSelection(e.buffer.Len())
	case keymap.ActionSelectToBeginOfLine:
		e.extendSelection(0)
	case keymap.ActionCut:
		e.cut()
	case keymap.ActionCopy:
		e.copySelection()

	case keymap.ActionAccept:
		return Event{Kind: EventAccept, Line: e.buffer.String()}, nil
	case keymap.ActionCancel:
		return Event{Kind: EventCancel}, nil
	case keymap.ActionExit:
		return Event{Kind: EventExit}, nil
	case keymap.ActionInterrupt:
		return e.interrupt(), nil
	case keymap.ActionRefreshLine, keymap.ActionClearScreen:
		return Event{Kind: EventRefresh}, nil
	}

	return Event{}, nil
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	for i := 1; i < len(r); i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

// moveCursor is the shared tail of every plain cursor-motion action:
// clear the selection — it's cleared whenever the cursor moves via a
// non-select action — and move.
func (e *Editor) moveCursor(pos int) {
	e.selection.Clear()
	e.buffer.SetCursor(pos)
}

func (e *Editor) extendSelection(pos int) {
	if !e.selection.Active {
		e.selection.Set(e.buffer.Cursor())
	}
	e.buffer.SetCursor(pos)
}

func (e *Editor) selfInsert(key term.KeyEvent) (Event, error) {
	if !isPrintable(key) {
		return Event{}, nil
	}
	before := e.buffer.Snapshot()
	e.undo.PushGrouped(before)
	if e.overwrite {
		e.buffer.OverwriteAt(e.buffer.Cursor(), []rune{key.Ch})
	} else {
		e.buffer.InsertAt(e.buffer.Cursor(), []rune{key.Ch})
	}
	e.selection.Clear()
	return Event{}, nil
}

func (e *Editor) caseWord(transform func(string) string) {
	runes := e.buffer.Runes()
	start := wordStartAtOrAfter(runes, e.buffer.Cursor())
	end := wordEnd(runes, e.buffer.Cursor())
	if end <= start {
		e.moveCursor(end)
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	word := transform(string(runes[start:end]))
	e.buffer.DeleteRange(start, end)
	e.buffer.InsertAt(start, []rune(word))
	e.selection.Clear()
}

func (e *Editor) deleteChar() {
	pos := e.buffer.Cursor()
	if pos >= e.buffer.Len() {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	e.buffer.DeleteRange(pos, pos+1)
	e.selection.Clear()
}

func (e *Editor) backspace() {
	pos := e.buffer.Cursor()
	if pos == 0 {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	e.buffer.DeleteRange(pos-1, pos)
	e.selection.Clear()
}

func (e *Editor) killWordForward() {
	pos := e.buffer.Cursor()
	end := forwardWord(e.buffer.Runes(), pos)
	if end <= pos {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	removed := e.buffer.DeleteRange(pos, end)
	e.killRing.Push(string(removed))
	e.selection.Clear()
}

func (e *Editor) backwardKillWord() {
	pos := e.buffer.Cursor()
	start := backwardWord(e.buffer.Runes(), pos)
	if start >= pos {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	removed := e.buffer.DeleteRange(start, pos)
	e.killRing.Push(string(removed))
	e.selection.Clear()
}

func (e *Editor) killToEndOfLine() {
	pos := e.buffer.Cursor()
	if pos >= e.buffer.Len() {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	removed := e.buffer.DeleteRange(pos, e.buffer.Len())
	e.killRing.Push(string(removed))
	e.selection.Clear()
}

// killWholeLine kills the entire buffer into the ring: the editor holds
// a single logical line, so "whole line" means "all of it" rather than
// start-of-line-to-cursor.
func (e *Editor) killWholeLine() {
	if e.buffer.Len() == 0 {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	removed := e.buffer.DeleteRange(0, e.buffer.Len())
	e.killRing.Push(string(removed))
	e.selection.Clear()
}

func (e *Editor) transposeChars() {
	pos := e.buffer.Cursor()
	n := e.buffer.Len()
	if n < 2 {
		return
	}
	if pos == n {
		pos--
	}
	if pos == 0 {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	runes := e.buffer.Runes()
	runes[pos-1], runes[pos] = runes[pos], runes[pos-1]
	e.buffer.Replace(string(runes))
	e.buffer.SetCursor(pos + 1)
	e.selection.Clear()
}

func (e *Editor) clearBuffer() {
	if e.buffer.Len() == 0 {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	e.buffer.Clear()
	e.selection.Clear()
}

func (e *Editor) yank() {
	text, ok := e.killRing.Head()
	if !ok {
		return
	}
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	pos := e.buffer.Cursor()
	e.buffer.InsertAt(pos, []rune(text))
	e.yankIndex = 0
	e.lastWasYank = true
}

func (e *Editor) yankPop() {
	if !e.lastWasYank {
		return
	}
	prevLen := 0
	if t, ok := e.killRing.At(e.yankIndex); ok {
		prevLen = len([]rune(t))
	}
	nextIndex := e.yankIndex + 1
	text, ok := e.killRing.At(nextIndex)
	if !ok {
		return
	}
	end := e.buffer.Cursor()
	start := end - prevLen
	e.buffer.DeleteRange(start, end)
	e.buffer.InsertAt(start, []rune(text))
	e.yankIndex = nextIndex
	e.lastWasYank = true
}

func (e *Editor) applyUndo() {
	current := e.buffer.Snapshot()
	if snap, ok := e.undo.Undo(current); ok {
		e.buffer.Restore(snap)
		e.selection.Clear()
	}
}

func (e *Editor) applyRedo() {
	current := e.buffer.Snapshot()
	if snap, ok := e.undo.Redo(current); ok {
		e.buffer.Restore(snap)
		e.selection.Clear()
	}
}

// historyPrev/historyNext implement "PreviousHistory/NextHistory walk
// the History with a cursor initialized to len(history); when at
// len(history) the pending buffer is preserved and restored on return"
//.
func (e *Editor) historyPrev() {
	if e.historyIdx <= 0 {
		return
	}
	if e.historyIdx == e.history.Len() {
		e.pending = e.buffer.Snapshot()
	}
	e.historyIdx--
	if text, ok := e.history.EntryAt(e.historyIdx); ok {
		e.buffer.Replace(text)
	}
	e.selection.Clear()
}

func (e *Editor) historyNext() {
	if e.historyIdx >= e.history.Len() {
		return
	}
	e.historyIdx++
	if e.historyIdx == e.history.Len() {
		e.buffer.Restore(e.pending)
	} else if text, ok := e.history.EntryAt(e.historyIdx); ok {
		e.buffer.Replace(text)
	}
	e.selection.Clear()
}

// historyPrefixSearch implements HistorySearchBackward/Forward: a
// non-interactive lookup using buffer[:cursor] as a prefix filter.
func (e *Editor) historyPrefixSearch(direction int) {
	prefix := string(e.buffer.Runes()[:e.buffer.Cursor()])
	n := e.history.Len()
	for i := e.historyIdx + direction; i >= 0 && i < n; i += direction {
		entry, ok := e.history.EntryAt(i)
		if ok && strings.HasPrefix(entry, prefix) {
			if e.historyIdx == n {
				e.pending = e.buffer.Snapshot()
			}
			e.historyIdx = i
			cursor := e.buffer.Cursor()
			e.buffer.Replace(entry)
			e.buffer.SetCursor(cursor)
			return
		}
	}
}

func (e *Editor) cut() {
	if !e.selection.Active {
		return
	}
	from, to := e.selection.Range(e.buffer.Cursor())
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	removed := e.buffer.DeleteRange(from, to)
	e.killRing.Push(string(removed))
	e.selection.Clear()
}

func (e *Editor) copySelection() {
	if !e.selection.Active {
		return
	}
	from, to := e.selection.Range(e.buffer.Cursor())
	runes := e.buffer.Runes()
	if from < 0 || to > len(runes) || from > to {
		return
	}
	e.killRing.Push(string(runes[from:to]))
}
