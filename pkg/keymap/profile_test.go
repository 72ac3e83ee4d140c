package keymap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuru-cli/nuru/internal/keychord"
	"github.com/nuru-cli/nuru/pkg/keymap"
)

func TestNamedProfileNoMutationEqualsBase(t *testing.T) {
	base, ok := keymap.Named("Emacs")
	require.True(t, ok)

	p, err := keymap.Compose(base, nil, nil, nil)
	require.NoError(t, err)

	for chord, action := range base {
		got, ok := p.Lookup(chord)
		require.True(t, ok)
		assert.Equal(t, action, got)
	}
}

func TestComposeRemovalsOverridesAdditions(t *testing.T) {
	base, ok := keymap.Named("Default")
	require.True(t, ok)

	p, err := keymap.Compose(base,
		[]string{"Ctrl+L"},
		map[string]keymap.ActionName{"Tab": keymap.ActionTabCompleteReverse},
		map[string]keymap.ActionName{"Ctrl+G": keymap.ActionCancel},
	)
	require.NoError(t, err)

	_, ok = p.Lookup("Ctrl+L")
	assert.False(t, ok)

	action, ok := p.Lookup("Tab")
	require.True(t, ok)
	assert.Equal(t, keymap.ActionTabCompleteReverse, action)

	action, ok = p.Lookup("Ctrl+G")
	require.True(t, ok)
	assert.Equal(t, keymap.ActionCancel, action)
}

func TestComposeRejectsUnknownAction(t *testing.T) {
	_, err := keymap.NewProfile(map[string]keymap.ActionName{
		"Ctrl+Q": keymap.ActionName("NotARealAction"),
	})
	require.Error(t, err)
}

func TestProfileAcceptMultiKeyChord(t *testing.T) {
	p, err := keymap.NewProfile(map[string]keymap.ActionName{
		"Ctrl+X Ctrl+S": keymap.ActionAccept,
	})
	require.NoError(t, err)

	ctrlX := keychord.Key{Modifier: keychord.ModCtrl, Ch: 'X'}
	ctrlS := keychord.Key{Modifier: keychord.ModCtrl, Ch: 'S'}

	_, err = p.Accept(ctrlX)
	require.ErrorIs(t, err, keychord.ErrInSequence)

	action, err := p.Accept(ctrlS)
	require.NoError(t, err)
	assert.Equal(t, keymap.ActionAccept, action)
}
