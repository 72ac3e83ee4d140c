package keymap

import (
	"sort"

	"github.com/nuru-cli/nuru/internal/keychord"
	"github.com/nuru-cli/nuru/pkg/errs"
)

// Profile is an immutable, validated chord-to-action table.
// It is built once via Compose/NewProfile and is safe to share across
// goroutines afterward.
type Profile struct {
	bindings map[string]ActionName // key: keychord.KeyList.String()
	seq      *keychord.Sequencer
}

var validActions = func() map[ActionName]bool {
	m := make(map[ActionName]bool, len(AllActions))
	for _, a := range AllActions {
		m[a] = true
	}
	return m
}()

// removedMarker is peco's "-" sentinel (keymap.go's
// `if as == "-" { delete(kb, s) }`) for dropping a base binding.
const removedMarker = ActionName("-")

// Compose builds a Profile from a base table plus removals, overrides,
// and additions, applied in that order. Any chord string that fails to
// parse, or any ActionName outside the registry, fails construction
// with *errs.UnknownActionError or the chord parse error — never
// later, at keypress time.
func Compose(base map[string]ActionName, removals []string, overrides, additions map[string]ActionName) (*Profile, error) {
	merged := make(map[string]ActionName, len(base))
	for k, v := range base {
		merged[k] = v
	}
	for _, chord := range removals {
		delete(merged, chord)
	}
	for k, v := range overrides {
		if v == removedMarker {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	for k, v := range additions {
		merged[k] = v
	}

	return newProfileFromMerged(merged)
}

// NewProfile validates and compiles a flat chord-to-action table with no
// base/removals/overrides distinction; equivalent to Compose(table, nil,
// nil, nil).
func NewProfile(table map[string]ActionName) (*Profile, error) {
	return newProfileFromMerged(table)
}

func newProfileFromMerged(merged map[string]ActionName) (*Profile, error) {
	chords := make([]string, 0, len(merged))
	for c := range merged {
		chords = append(chords, c)
	}
	sort.Strings(chords) // deterministic compile order, eases debugging

	seq := keychord.NewSequencer()
	for _, chord := range chords {
		name := merged[chord]
		if !validActions[name] {
			return nil, &errs.UnknownActionError{Name: string(name)}
		}
		list, err := keychord.ParseChordString(chord)
		if err != nil {
			return nil, err
		}
		seq.Add(list, name)
	}
	if err := seq.Compile(); err != nil {
		return nil, err
	}

	return &Profile{bindings: merged, seq: seq}, nil
}

// Lookup reports the ActionName bound to a single-key chord, exactly as
// the base profile declared it (no sequence state). Used for inspection
// and the "no-mutation yields the base profile" property.
func (p *Profile) Lookup(chord string) (ActionName, bool) {
	a, ok := p.bindings[chord]
	return a, ok
}

// Accept feeds one key into the profile's chord sequencer ('s
// multi-key chord support, e.g. "Ctrl+X Ctrl+S"). It returns the bound
// ActionName on a complete match, keychord.ErrInSequence if more keys
// could extend the current chord, or keychord.ErrNoMatch otherwise.
func (p *Profile) Accept(key keychord.Key) (ActionName, error) {
	v, err := p.seq.Accept(key)
	if err != nil {
		return "", err
	}
	name, _ := v.(ActionName)
	return name, nil
}

// CancelChain resets any in-progress multi-key chord.
func (p *Profile) CancelChain() { p.seq.CancelChain() }

// InMiddleOfChain reports whether a multi-key chord is partially matched.
func (p *Profile) InMiddleOfChain() bool { return p.seq.InMiddleOfChain() }

// Bindings returns a copy of the profile's flat chord table.
func (p *Profile) Bindings() map[string]ActionName {
	out := make(map[string]ActionName, len(p.bindings))
	for k, v := range p.bindings {
		out[k] = v
	}
	return out
}
