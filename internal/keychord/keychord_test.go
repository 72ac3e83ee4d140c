package keychord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChordString(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"a", Key{Ch: 'a'}},
		{"Ctrl+A", Key{Modifier: ModCtrl, Ch: 'A'}},
		{"Ctrl+Alt+Delete", Key{Modifier: ModCtrl | ModAlt, Name: KeyDelete}},
		{"Shift+Tab", Key{Modifier: ModShift, Name: KeyTab}},
		{"Enter", Key{Name: KeyEnter}},
	}
	for _, tt := range tests {
		got, err := ParseChordString(tt.in)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, tt.want, got[0], tt.in)
	}
}

func TestParseChordStringMultiKey(t *testing.T) {
	got, err := ParseChordString("Ctrl+X Ctrl+S")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Key{Modifier: ModCtrl, Ch: 'X'}, got[0])
	assert.Equal(t, Key{Modifier: ModCtrl, Ch: 'S'}, got[1])
}

func TestSequencerLongestChordWins(t *testing.T) {
	seq := NewSequencer()
	short, _ := ParseChordString("Ctrl+X")
	long, _ := ParseChordString("Ctrl+X Ctrl+S")
	seq.Add(short, "short")
	seq.Add(long, "long")
	require.NoError(t, seq.Compile())

	cx, _ := ParseChordString("Ctrl+X")
	_, err := seq.Accept(cx[0])
	assert.ErrorIs(t, err, ErrInSequence, "Ctrl+X alone must wait, since a longer chord is registered")

	cs, _ := ParseChordString("Ctrl+S")
	v, err := seq.Accept(cs[0])
	require.NoError(t, err)
	assert.Equal(t, "long", v)
}

func TestSequencerResetsOnNoMatch(t *testing.T) {
	seq := NewSequencer()
	long, _ := ParseChordString("Ctrl+X Ctrl+S")
	seq.Add(long, "long")
	require.NoError(t, seq.Compile())

	cx, _ := ParseChordString("Ctrl+X")
	_, err := seq.Accept(cx[0])
	require.ErrorIs(t, err, ErrInSequence)

	other, _ := ParseChordString("a")
	_, err = seq.Accept(other[0])
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.False(t, seq.InMiddleOfChain())
}
