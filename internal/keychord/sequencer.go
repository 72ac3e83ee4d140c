package keychord

import (
	"errors"
	"sync"
)

// ErrInSequence is returned by Sequencer.Accept when the key accepted so
// far is a prefix of a longer registered chord and more keys are expected.
var ErrInSequence = errors.New("keychord: expected more keys in sequence")

// ErrNoMatch is returned by Sequencer.Accept when the key does not begin
// or continue any registered chord.
var ErrNoMatch = errors.New("keychord: no binding for key")

type sequenceMatcher interface {
	Get(Key) Node
	GetList(KeyList) Node
}

// Matcher registers chords against a Trie and resolves them one key at
// a time. It is not an Aho-Corasick automaton: a keybinding profile
// never streams arbitrary text looking for multiple patterns at once,
// it only ever walks one already-known chord down the trie, so there
// are no failure links here — Matcher is a thin, named wrapper around
// a Trie plus the balancing step that keeps per-key lookups O(log n)
// after every chord has been Added.
type Matcher struct {
	Trie
}

// NewMatcher creates an empty Matcher.
func NewMatcher() *Matcher {
	return &Matcher{NewTrie()}
}

// Clear removes every registered chord, resetting the matcher to empty.
func (m *Matcher) Clear() {
	m.Root().RemoveAll()
}

// Add registers pattern as resolving to v.
func (m *Matcher) Add(pattern KeyList, v any) {
	m.Put(pattern, v)
}

// Compile balances the trie. Call once after every Add and before the
// first Accept.
func (m *Matcher) Compile() error {
	if tt, ok := m.Trie.(*TernaryTrie); ok {
		tt.Balance()
	}
	return nil
}

// Sequencer resolves single keypresses into bound values (an
// keymap.Action, in the editor's use) by walking a compiled trie of
// chord sequences one key at a time, remembering partial progress
// through multi-key chords between calls to Accept.
type Sequencer struct {
	*Matcher
	current sequenceMatcher
	mutex   sync.Mutex
}

// NewSequencer creates an empty Sequencer. Call Add for each binding,
// then Compile before the first call to Accept.
func NewSequencer() *Sequencer {
	return &Sequencer{Matcher: NewMatcher()}
}

// InMiddleOfChain reports whether the matcher is partway through a
// multi-key chord.
func (s *Sequencer) InMiddleOfChain() bool {
	return s.current != nil && s.current != s.Matcher
}

// CancelChain resets the matcher to the root, abandoning any in-progress
// multi-key chord.
func (s *Sequencer) CancelChain() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.current = s.Matcher
}

func (s *Sequencer) rootOrCurrent() sequenceMatcher {
	if s.current == nil {
		s.current = s.Matcher
	}
	return s.current
}

// Accept advances the matcher with one key. It returns the bound value
// once a full chord is matched, ErrInSequence while more keys of a
// registered longer chord could still follow, or ErrNoMatch if the key
// does not continue any registered chord (the matcher resets to root in
// both the matched and no-match cases).
func (s *Sequencer) Accept(key Key) (any, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	c := s.rootOrCurrent()
	n := c.Get(key)
	if n == nil {
		s.current = s.Matcher
		return nil, ErrNoMatch
	}

	// The longest registered chord always wins: if this node has
	// children, a longer chord might still complete, so wait for more
	// keys before firing a shorter one bound at this node.
	if n.HasChildren() {
		s.current = n
		return nil, ErrInSequence
	}

	s.current = s.Matcher
	v := n.Value()
	if v == nil {
		return nil, ErrNoMatch
	}
	return v, nil
}
