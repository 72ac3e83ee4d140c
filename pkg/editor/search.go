package editor

import (
	"context"
	"strings"

	"github.com/nuru-cli/nuru/pkg/keymap"
	"github.com/nuru-cli/nuru/pkg/term"
)

// searchState tracks an in-progress incremental history search in
// Search mode.
type searchState struct {
	direction    int // -1 reverse (older), +1 forward (newer)
	pattern      []rune
	candidateIdx int // history index of the current match, -1 if none yet
	startIdx     int // search-cursor clamp at entry, reused by "re-search from scratch"
	preSnapshot  Snapshot
}

func clampHistoryStart(idx, n int) int {
	if n == 0 {
		return -1
	}
	if idx >= n {
		return n - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// enterSearch transitions Normal -> Search (ReverseSearchHistory /
// ForwardSearchHistory).
func (e *Editor) enterSearch(direction int) Event {
	start := clampHistoryStart(e.historyIdx, e.history.Len())
	e.search = &searchState{
		direction:    direction,
		candidateIdx: -1,
		startIdx:     start,
		preSnapshot:  e.buffer.Snapshot(),
	}
	e.mode = ModeSearch
	e.researchFrom(start)
	return Event{}
}

func (e *Editor) findMatch(start int) int {
	n := e.history.Len()
	if n == 0 {
		return -1
	}
	pattern := strings.ToLower(string(e.search.pattern))
	for i := start; i >= 0 && i < n; i += e.search.direction {
		entry, ok := e.history.EntryAt(i)
		if ok && strings.Contains(strings.ToLower(entry), pattern) {
			return i
		}
	}
	return -1
}

func (e *Editor) researchFrom(start int) {
	if idx := e.findMatch(start); idx >= 0 {
		e.search.candidateIdx = idx
	}
}

// exitSearch leaves Search mode. restorePreSearch restores the buffer
// exactly as it was before the search began (Escape); otherwise the
// buffer is left whatever the caller already set it to (Enter/other
// action acceptance).
func (e *Editor) exitSearch(restorePreSearch bool) {
	if restorePreSearch && e.search != nil {
		e.buffer.Restore(e.search.preSnapshot)
	}
	e.mode = ModeNormal
	e.search = nil
}

func (e *Editor) stepSearch(name keymap.ActionName, key term.KeyEvent) (Event, error) {
	s := e.search

	switch name {
	case keymap.ActionSelfInsertOrOverwrite:
		s.pattern = append(s.pattern, key.Ch)
		start := s.candidateIdx
		if start < 0 {
			start = s.startIdx
		}
		e.researchFrom(start)
		return Event{}, nil

	case keymap.ActionBackspace, keymap.ActionDeleteChar:
		if len(s.pattern) > 0 {
			s.pattern = s.pattern[:len(s.pattern)-1]
		}
		e.researchFrom(s.startIdx)
		return Event{}, nil

	case keymap.ActionReverseSearchHistory:
		next := s.candidateIdx + -1
		if s.direction != -1 {
			s.direction = -1
			next = s.candidateIdx + s.direction
		}
		e.researchFrom(next)
		return Event{}, nil

	case keymap.ActionForwardSearchHistory:
		next := s.candidateIdx + 1
		if s.direction != 1 {
			s.direction = 1
			next = s.candidateIdx + s.direction
		}
		e.researchFrom(next)
		return Event{}, nil

	case keymap.ActionAccept:
		text := ""
		if s.candidateIdx >= 0 {
			text, _ = e.history.EntryAt(s.candidateIdx)
		}
		e.buffer.Replace(text)
		e.exitSearch(false)
		return Event{Kind: EventAccept, Line: text}, nil

	case keymap.ActionCancel:
		e.exitSearch(true)
		return Event{}, nil

	default:
		// "Any other bound action in Normal accepts the current
		// candidate AND then executes that action in Normal mode."
		if s.candidateIdx >= 0 {
			text, _ := e.history.EntryAt(s.candidateIdx)
			e.buffer.Replace(text)
		}
		e.exitSearch(false)
		return e.stepNormal(context.Background(), name, key)
	}
}
