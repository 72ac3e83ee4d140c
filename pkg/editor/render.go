package editor

import (
	"github.com/mattn/go-runewidth"

	"github.com/nuru-cli/nuru/pkg/term"
)

// Render redraws prompt + buffer + cursor within the terminal's current
// width. Long lines wrap, but the cursor is
// tracked in logical (pre-wrap) coordinates: after writing, Render
// moves the terminal cursor to the cursor's (row, col) and flushes.
func (e *Editor) Render(t term.Terminal, prompt string) {
	width, _ := t.Size()
	if width <= 0 {
		width = 80
	}

	text, promptText := e.renderedLine(prompt)
	cursorRunePos := e.cursorRunePosForRender()

	t.ClearScreen()
	t.MoveCursor(0, 0)
	t.ResetStyle()
	t.Write(promptText)

	row, col := 0, runewidth.StringWidth(promptText)
	cursorRow, cursorCol := row, col

	runes := []rune(text)
	for i, r := range runes {
		if i == cursorRunePos {
			cursorRow, cursorCol = row, col
		}
		w := runewidth.RuneWidth(r)
		if col+w > width {
			row++
			col = 0
		}
		t.Write(string(r))
		col += w
	}
	if cursorRunePos >= len(runes) {
		cursorRow, cursorCol = row, col
	}

	t.MoveCursor(cursorRow, cursorCol)
	_ = t.Flush()
}

// renderedLine chooses what text is actually shown: the search prompt
// while in Search mode, otherwise the normal prompt and buffer.
func (e *Editor) renderedLine(prompt string) (text, promptText string) {
	if s, ok := e.SearchPrompt(); ok {
		return "", s
	}
	p := prompt
	if e.overwrite {
		p = "[O] " + p
	}
	return e.buffer.String(), p
}

func (e *Editor) cursorRunePosForRender() int {
	if e.mode == ModeSearch {
		return 0
	}
	return e.buffer.Cursor()
}
