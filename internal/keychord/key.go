// Package keychord implements multi-key chord sequence matching for the
// line editor's key-binding profiles.
//
// A chord string follows the grammar:
//
//	("Ctrl+"|"Alt+"|"Shift+")* KeyName
//
// where KeyName is either one of the named keys (Enter, Escape, Tab,
// Backspace, Delete, Home, End, the arrow keys, function keys) or a
// single literal character. Multi-key bindings (e.g. "Ctrl+X Ctrl+S")
// are written as a space-separated list and matched against via a trie
// so that the longest registered sequence always wins.
package keychord

import (
	"fmt"
	"strconv"
	"strings"
)

// ModifierKey is a bitmask of modifier keys held during a keypress.
type ModifierKey int

const (
	ModNone  ModifierKey = 0
	ModCtrl  ModifierKey = 1 << 0
	ModAlt   ModifierKey = 1 << 1
	ModShift ModifierKey = 1 << 2
)

// String renders the modifier as a "+"-joined prefix, e.g. "Ctrl+Alt+".
func (m ModifierKey) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "Shift")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "+") + "+"
}

// KeyName identifies a non-printable or named key.
type KeyName int

const (
	KeyNone KeyName = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var nameToKey = map[string]KeyName{}
var keyToName = map[KeyName]string{}

func mapkey(n string, k KeyName) {
	nameToKey[n] = k
	keyToName[k] = n
}

func init() {
	mapkey("Enter", KeyEnter)
	mapkey("Escape", KeyEscape)
	mapkey("Tab", KeyTab)
	mapkey("Backspace", KeyBackspace)
	mapkey("Delete", KeyDelete)
	mapkey("Home", KeyHome)
	mapkey("End", KeyEnd)
	mapkey("PageUp", KeyPageUp)
	mapkey("PageDown", KeyPageDown)
	mapkey("Up", KeyArrowUp)
	mapkey("Down", KeyArrowDown)
	mapkey("Left", KeyArrowLeft)
	mapkey("Right", KeyArrowRight)
	for i := 1; i <= 12; i++ {
		mapkey(fmt.Sprintf("F%d", i), KeyF1+KeyName(i-1))
	}
}

// Key is one element of a chord: a named key or a literal rune, plus
// held modifiers. It is also the label type stored in the trie nodes.
type Key struct {
	Modifier ModifierKey
	Name     KeyName
	Ch       rune
}

// NewKeyFromName builds an unmodified Key from a named key.
func NewKeyFromName(n KeyName) Key {
	return Key{Name: n}
}

// NewKeyFromRune builds an unmodified Key from a literal printable rune.
func NewKeyFromRune(r rune) Key {
	return Key{Ch: r}
}

// String renders the key as "Ctrl+Alt+X" / "Ctrl+Enter" / "a".
func (k Key) String() string {
	prefix := k.Modifier.String()
	if k.Name == KeyNone {
		return prefix + string(k.Ch)
	}
	return prefix + keyToName[k.Name]
}

// Compare orders keys by modifier, then name, then rune — used to keep
// the ternary trie's sibling lists ordered.
func (k Key) Compare(x Key) int {
	if k.Modifier != x.Modifier {
		if k.Modifier < x.Modifier {
			return -1
		}
		return 1
	}
	if k.Name != x.Name {
		if k.Name < x.Name {
			return -1
		}
		return 1
	}
	if k.Ch != x.Ch {
		if k.Ch < x.Ch {
			return -1
		}
		return 1
	}
	return 0
}

// KeyList is an ordered chord sequence (a single key for a plain binding,
// several for a multi-key binding like "Ctrl+X Ctrl+S").
type KeyList []Key

// String renders the list space-separated, matching the grammar used by
// ParseChordString.
func (kl KeyList) String() string {
	parts := make([]string, len(kl))
	for i, k := range kl {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// Equals reports whether kl and x contain the same keys in the same order.
func (kl KeyList) Equals(x KeyList) bool {
	if len(kl) != len(x) {
		return false
	}
	for i := range kl {
		if kl[i].Compare(x[i]) != 0 {
			return false
		}
	}
	return true
}

// ParseChordString parses a space-separated sequence of chords, each of
// the form ("Ctrl+"|"Alt+"|"Shift+")* KeyName, into a KeyList.
func ParseChordString(s string) (KeyList, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("keychord: empty chord string")
	}
	list := make(KeyList, 0, len(fields))
	for _, f := range fields {
		k, err := parseChord(f)
		if err != nil {
			return nil, fmt.Errorf("keychord: %q: %w", s, err)
		}
		list = append(list, k)
	}
	return list, nil
}

func parseChord(term string) (Key, error) {
	mod := ModNone
	rest := term
	for {
		switch {
		case strings.HasPrefix(rest, "Ctrl+"):
			mod |= ModCtrl
			rest = rest[len("Ctrl+"):]
		case strings.HasPrefix(rest, "Alt+"):
			mod |= ModAlt
			rest = rest[len("Alt+"):]
		case strings.HasPrefix(rest, "Shift+"):
			mod |= ModShift
			rest = rest[len("Shift+"):]
		default:
			goto name
		}
	}
name:
	if rest == "" {
		return Key{}, fmt.Errorf("missing key name in %q", term)
	}
	if n, ok := nameToKey[rest]; ok {
		return Key{Modifier: mod, Name: n}, nil
	}
	r, size := decodeRune(rest)
	if size != len(rest) {
		return Key{}, fmt.Errorf("unknown key name %q", rest)
	}
	return Key{Modifier: mod, Ch: r}, nil
}

func decodeRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

// Quote is a small helper used by diagnostics to render a chord string
// for error messages.
func Quote(s string) string {
	return strconv.Quote(s)
}
