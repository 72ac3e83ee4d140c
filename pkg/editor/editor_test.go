package editor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuru-cli/nuru/pkg/editor"
	"github.com/nuru-cli/nuru/pkg/keymap"
	"github.com/nuru-cli/nuru/pkg/term"
)

type fakeHistory struct{ entries []string }

func (h *fakeHistory) Len() int { return len(h.entries) }
func (h *fakeHistory) EntryAt(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

func newEditor(t *testing.T, hist []string) *editor.Editor {
	t.Helper()
	p, err := keymap.Compose(mustNamed(t, "Emacs"), nil, nil, nil)
	require.NoError(t, err)
	return editor.NewEditor(p, &fakeHistory{entries: hist}, nil)
}

func mustNamed(t *testing.T, name string) map[string]keymap.ActionName {
	t.Helper()
	m, ok := keymap.Named(name)
	require.True(t, ok)
	return m
}

func typeString(t *testing.T, e *editor.Editor, s string) {
	t.Helper()
	for _, r := range s {
		_, err := e.Step(context.Background(), term.KeyEvent{Ch: r})
		require.NoError(t, err)
	}
}

func chord(mod term.Modifier, ch rune) term.KeyEvent {
	return term.KeyEvent{Modifier: mod, Ch: ch}
}

func TestSelfInsertUndoGroupCollapsesConsecutiveTyping(t *testing.T) {
	e := newEditor(t, nil)
	typeString(t, e, "abc")
	assert.Equal(t, "abc", e.Buffer())

	_, err := e.Step(context.Background(), chord(term.ModCtrl, '_'))
	require.NoError(t, err)
	assert.Equal(t, "", e.Buffer())
}

func TestUndoThenRedoRestoresBufferAndCursor(t *testing.T) {
	base := mustNamed(t, "Emacs")
	p, err := keymap.Compose(base, nil, nil, map[string]keymap.ActionName{"Ctrl+G": keymap.ActionRedo})
	require.NoError(t, err)
	e := editor.NewEditor(p, &fakeHistory{}, nil)

	typeString(t, e, "hello")
	before := e.Buffer()
	beforeCursor := e.Cursor()

	_, err = e.Step(context.Background(), chord(term.ModCtrl, 'W')) // BackwardKillWord
	require.NoError(t, err)
	require.NotEqual(t, before, e.Buffer())

	_, err = e.Step(context.Background(), chord(term.ModCtrl, '_')) // Undo
	require.NoError(t, err)
	assert.Equal(t, before, e.Buffer())
	assert.Equal(t, beforeCursor, e.Cursor())

	_, err = e.Step(context.Background(), chord(term.ModCtrl, 'G')) // Redo
	require.NoError(t, err)
	assert.Equal(t, "", e.Buffer())
}

func TestKillThenYankRoundTrips(t *testing.T) {
	e := newEditor(t, nil)
	typeString(t, e, "hello world")

	_, err := e.Step(context.Background(), chord(term.ModCtrl, 'W')) // BackwardKillWord
	require.NoError(t, err)
	assert.Equal(t, "hello ", e.Buffer())

	_, err = e.Step(context.Background(), chord(term.ModCtrl, 'Y')) // Yank
	require.NoError(t, err)
	assert.Equal(t, "hello world", e.Buffer())
}

func TestYankPopCyclesToOlderKill(t *testing.T) {
	e := newEditor(t, nil)
	typeString(t, e, "first")
	_, err := e.Step(context.Background(), chord(term.ModCtrl, 'U')) // KillWholeLine -> ring: [first]
	require.NoError(t, err)

	typeString(t, e, "second")
	_, err = e.Step(context.Background(), chord(term.ModCtrl, 'U')) // ring: [second, first]
	require.NoError(t, err)

	_, err = e.Step(context.Background(), chord(term.ModCtrl, 'Y')) // Yank -> "second"
	require.NoError(t, err)
	assert.Equal(t, "second", e.Buffer())

	_, err = e.Step(context.Background(), chord(term.ModAlt, 'Y')) // YankPop -> "first"
	require.NoError(t, err)
	assert.Equal(t, "first", e.Buffer())
}

func TestSearchEscapeRestoresBufferByteForByte(t *testing.T) {
	e := newEditor(t, []string{"echo one", "echo two"})
	typeString(t, e, "unrelated")
	before := e.Buffer()

	_, err := e.Step(context.Background(), chord(term.ModCtrl, 'R')) // ReverseSearchHistory
	require.NoError(t, err)
	require.Equal(t, editor.ModeSearch, e.Mode())

	typeString(t, e, "echo")

	_, err = e.Step(context.Background(), term.KeyEvent{Name: term.KeyEscape})
	require.NoError(t, err)
	assert.Equal(t, editor.ModeNormal, e.Mode())
	assert.Equal(t, before, e.Buffer())
}

func TestScenarioSixBackwardKillWordYankYankPop(t *testing.T) {
	e := newEditor(t, nil)
	typeString(t, e, "hello world")

	_, err := e.Step(context.Background(), chord(term.ModCtrl, 'W'))
	require.NoError(t, err)
	assert.Equal(t, "hello ", e.Buffer())

	_, err = e.Step(context.Background(), chord(term.ModCtrl, 'Y'))
	require.NoError(t, err)
	assert.Equal(t, "hello world", e.Buffer())

	// YankPop with only one ring entry leaves the yanked text in place.
	_, err = e.Step(context.Background(), chord(term.ModAlt, 'Y'))
	require.NoError(t, err)
	assert.Equal(t, "hello world", e.Buffer())
}

func TestAcceptEmitsLineAndReset(t *testing.T) {
	e := newEditor(t, nil)
	typeString(t, e, "run now")
	ev, err := e.Step(context.Background(), term.KeyEvent{Name: term.KeyEnter})
	require.NoError(t, err)
	assert.Equal(t, editor.EventAccept, ev.Kind)
	assert.Equal(t, "run now", ev.Line)

	e.Reset()
	assert.Equal(t, "", e.Buffer())
}

func TestTabCompleteZeroCandidatesBells(t *testing.T) {
	src := editor.CompletionSourceFunc(func(ctx context.Context, buf string, cur int) ([]editor.Candidate, error) {
		return nil, nil
	})
	p, err := keymap.Compose(mustNamed(t, "Emacs"), nil, nil, nil)
	require.NoError(t, err)
	e := editor.NewEditor(p, &fakeHistory{}, src)

	ev, err := e.Step(context.Background(), term.KeyEvent{Name: term.KeyTab})
	require.NoError(t, err)
	assert.True(t, ev.Bell)
}

func TestTabCompleteMultipleCandidatesEnterMenuAndCycle(t *testing.T) {
	src := editor.CompletionSourceFunc(func(ctx context.Context, buf string, cur int) ([]editor.Candidate, error) {
		return []editor.Candidate{
			{ReplacementText: "deploy"},
			{ReplacementText: "describe"},
		}, nil
	})
	p, err := keymap.Compose(mustNamed(t, "Emacs"), nil, nil, nil)
	require.NoError(t, err)
	e := editor.NewEditor(p, &fakeHistory{}, src)
	typeString(t, e, "de")

	_, err = e.Step(context.Background(), term.KeyEvent{Name: term.KeyTab})
	require.NoError(t, err)
	assert.Equal(t, editor.ModeMenuComplete, e.Mode())
	assert.Equal(t, "deploy ", e.Buffer())

	_, err = e.Step(context.Background(), term.KeyEvent{Name: term.KeyTab})
	require.NoError(t, err)
	assert.Equal(t, "describe ", e.Buffer())

	_, err = e.Step(context.Background(), term.KeyEvent{Name: term.KeyEnter})
	require.NoError(t, err)
	assert.Equal(t, editor.ModeNormal, e.Mode())
}

func TestTabCompleteSingleCandidateReplacesToken(t *testing.T) {
	src := editor.CompletionSourceFunc(func(ctx context.Context, buf string, cur int) ([]editor.Candidate, error) {
		return []editor.Candidate{{ReplacementText: "deploy"}}, nil
	})
	p, err := keymap.Compose(mustNamed(t, "Emacs"), nil, nil, nil)
	require.NoError(t, err)
	e := editor.NewEditor(p, &fakeHistory{}, src)
	typeString(t, e, "depl")

	_, err = e.Step(context.Background(), term.KeyEvent{Name: term.KeyTab})
	require.NoError(t, err)
	assert.Equal(t, "deploy ", e.Buffer())
}
