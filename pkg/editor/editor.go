package editor

import (
	"context"

	"github.com/nuru-cli/nuru/internal/keychord"
	"github.com/nuru-cli/nuru/pkg/keymap"
	"github.com/nuru-cli/nuru/pkg/term"
)

// Mode selects which actions apply.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeMenuComplete
)

// EventKind tags the sum-typed EditorEvent: every polymorphic entity
// here is a tagged variant, not an inheritance hierarchy.
type EventKind int

const (
	EventNone EventKind = iota
	EventAccept
	EventCancel
	EventExit
	EventRefresh
)

// Event is the result of one Step call: either no externally visible
// event, or one of Accept/Cancel/Exit/Refresh.
type Event struct {
	Kind EventKind
	Line string // valid when Kind == EventAccept
	Bell bool   // non-fatal "beep" signal, e.g. TabComplete with zero candidates
}

// History is the subset of pkg/history.Store the editor needs: enough
// to navigate and search, without importing that package (avoids a
// cycle; pkg/repl wires the concrete store in).
type History interface {
	Len() int
	EntryAt(i int) (string, bool) // 0 = oldest
}

// Editor is the line-editor state machine. It owns no
// terminal I/O itself: Step consumes one term.KeyEvent and returns an
// Event; the caller (pkg/repl) is responsible for rendering via Render
// and for reading the next key.
type Editor struct {
	buffer    *EditorBuffer
	selection Selection
	killRing  *KillRing
	undo      *UndoStack
	mode      Mode
	overwrite bool

	lastWasYank bool
	yankIndex   int

	profile    *keymap.Profile
	history    History
	historyIdx int
	pending    Snapshot
	navigating bool

	search *searchState
	menu   *menuState

	completion CompletionSource
}

// NewEditor constructs an Editor bound to a profile, a history
// provider, and an optional completion source (nil disables
// TabComplete, which then always rings the bell).
func NewEditor(profile *keymap.Profile, hist History, completion CompletionSource) *Editor {
	return &Editor{
		buffer:     NewEditorBuffer(),
		killRing:   NewKillRing(),
		undo:       NewUndoStack(),
		profile:    profile,
		history:    hist,
		historyIdx: hist.Len(),
		completion: completion,
	}
}

// Buffer exposes the current buffer text, for rendering.
func (e *Editor) Buffer() string { return e.buffer.String() }

// Cursor exposes the current cursor position, for rendering.
func (e *Editor) Cursor() int { return e.buffer.Cursor() }

// Mode reports the active mode, for rendering the prompt indicator.
func (e *Editor) Mode() Mode { return e.mode }

// Overwrite reports whether insert-mode is toggled to overwrite.
func (e *Editor) Overwrite() bool { return e.overwrite }

// SearchPrompt returns the "(reverse-i-search)`pattern': match" style
// prompt text while in Search mode, and ok=false otherwise.
func (e *Editor) SearchPrompt() (text string, ok bool) {
	if e.mode != ModeSearch || e.search == nil {
		return "", false
	}
	label := "(reverse-i-search)"
	if e.search.direction > 0 {
		label = "(forward-i-search)"
	}
	match := ""
	if e.search.candidateIdx >= 0 {
		match, _ = e.history.EntryAt(e.search.candidateIdx)
	}
	return label + "`" + string(e.search.pattern) + "': " + match, true
}

// Reset clears the buffer and all transient editing state, leaving the
// editor ready for a new prompt (called by pkg/repl after Accept).
func (e *Editor) Reset() {
	e.buffer.Clear()
	e.selection.Clear()
	e.undo = NewUndoStack()
	e.lastWasYank = false
	e.mode = ModeNormal
	e.search = nil
	e.menu = nil
	e.historyIdx = e.history.Len()
	e.navigating = false
}

func termKeyToChordKey(k term.KeyEvent) keychord.Key {
	var mod keychord.ModifierKey
	if k.Modifier&term.ModCtrl != 0 {
		mod |= keychord.ModCtrl
	}
	if k.Modifier&term.ModAlt != 0 {
		mod |= keychord.ModAlt
	}
	if k.Modifier&term.ModShift != 0 {
		mod |= keychord.ModShift
	}

	if k.Ch != 0 {
		return keychord.Key{Modifier: mod, Ch: k.Ch}
	}

	var name keychord.KeyName
	switch k.Name {
	case term.KeyEnter:
		name = keychord.KeyEnter
	case term.KeyEscape:
		name = keychord.KeyEscape
	case term.KeyTab:
		name = keychord.KeyTab
	case term.KeyBackspace:
		name = keychord.KeyBackspace
	case term.KeyDelete:
		name = keychord.KeyDelete
	case term.KeyHome:
		name = keychord.KeyHome
	case term.KeyEnd:
		name = keychord.KeyEnd
	case term.KeyPageUp:
		name = keychord.KeyPageUp
	case term.KeyPageDown:
		name = keychord.KeyPageDown
	case term.KeyArrowUp:
		name = keychord.KeyArrowUp
	case term.KeyArrowDown:
		name = keychord.KeyArrowDown
	case term.KeyArrowLeft:
		name = keychord.KeyArrowLeft
	case term.KeyArrowRight:
		name = keychord.KeyArrowRight
	case term.KeyF1:
		name = keychord.KeyF1
	default:
		name = keychord.KeyNone
	}
	return keychord.Key{Modifier: mod, Name: name}
}

func isPrintable(k term.KeyEvent) bool {
	return k.Ch != 0 && k.Name == term.KeyNone && !k.Interrupt
}

// Step consumes one key event and returns the resulting Event. ctx
// bounds any CompletionSource call.
func (e *Editor) Step(ctx context.Context, key term.KeyEvent) (Event, error) {
	if key.Resize {
		return Event{Kind: EventRefresh}, nil
	}
	if key.Interrupt {
		return e.interrupt(), nil
	}

	chordKey := termKeyToChordKey(key)
	name, err := e.profile.Accept(chordKey)
	switch err {
	case nil:
		// resolved action, fall through
	case keychord.ErrInSequence:
		return Event{}, nil
	case keychord.ErrNoMatch:
		if !isPrintable(key) {
			e.profile.CancelChain()
			return Event{}, nil
		}
		name = keymap.ActionSelfInsertOrOverwrite
	default:
		return Event{}, err
	}

	switch e.mode {
	case ModeSearch:
		return e.stepSearch(name, key)
	case ModeMenuComplete:
		return e.stepMenu(ctx, name, key)
	default:
		return e.stepNormal(ctx, name, key)
	}
}

// interrupt implements the Ctrl+C cancellation behavior matrix.
func (e *Editor) interrupt() Event {
	switch e.mode {
	case ModeSearch:
		e.exitSearch(false)
		return Event{}
	default:
		if e.buffer.Len() == 0 {
			return Event{Kind: EventCancel}
		}
		before := e.buffer.Snapshot()
		e.undo.Push(before)
		e.buffer.Clear()
		e.selection.Clear()
		e.lastWasYank = false
		return Event{}
	}
}
