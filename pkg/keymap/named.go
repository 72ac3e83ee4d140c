package keymap

// Named resolves a built-in profile name (Default, Emacs, Vi, VSCode)
// to its base chord table. Ok is false for an unrecognized name;
// callers fall back to Default per the profile resolution order.
func Named(name string) (map[string]ActionName, bool) {
	switch name {
	case "", "Default":
		return defaultBindings, true
	case "Emacs":
		return emacsBindings, true
	case "Vi":
		return viBindings, true
	case "VSCode":
		return vscodeBindings, true
	default:
		return nil, false
	}
}

// defaultBindings covers the control chords every mode needs regardless
// of editing-style preference: accept/cancel/exit, history, search,
// completion, and basic motion. Emacs/Vi/VSCode layer their own style on
// top of this rather than each repeating it, mirroring how peco's
// defaultKeyBinding in action.go is one flat table that init()
// populates incrementally per action rather than per named style.
var defaultBindings = map[string]ActionName{
	"Enter":      ActionAccept,
	"Escape":     ActionCancel,
	"Ctrl+D":     ActionExit,
	"Ctrl+C":     ActionInterrupt,
	"Ctrl+L":     ActionClearScreen,
	"Ctrl+R":     ActionReverseSearchHistory,
	"Ctrl+S":     ActionForwardSearchHistory,
	"Tab":        ActionTabComplete,
	"Shift+Tab":  ActionTabCompleteReverse,
	"Up":    ActionPreviousHistory,
	"Down":  ActionNextHistory,
	"Left":  ActionBackwardChar,
	"Right": ActionForwardChar,
	"Home":       ActionBeginningOfLine,
	"End":        ActionEndOfLine,
	"Delete":     ActionDeleteChar,
	"Backspace":  ActionBackspace,
}

// emacsBindings extends defaultBindings with the classic readline/Emacs
// chord set.
var emacsBindings = merge(defaultBindings, map[string]ActionName{
	"Ctrl+A": ActionBeginningOfLine,
	"Ctrl+E": ActionEndOfLine,
	"Ctrl+F": ActionForwardChar,
	"Ctrl+B": ActionBackwardChar,
	"Alt+F":  ActionForwardWord,
	"Alt+B":  ActionBackwardWord,
	"Ctrl+K": ActionKillLineToRing,
	"Ctrl+U": ActionKillWholeLine,
	"Ctrl+W": ActionBackwardKillWord,
	"Alt+D":  ActionKillWordForward,
	"Ctrl+Y": ActionYank,
	"Alt+Y":  ActionYankPop,
	"Ctrl+T": ActionTransposeChars,
	"Ctrl+_": ActionUndo,
	"Alt+U":  ActionUpcaseWord,
	"Alt+L":  ActionDowncaseWord,
	"Alt+C":  ActionCapitalizeWord,
	"Ctrl+P": ActionPreviousHistory,
	"Ctrl+N": ActionNextHistory,
})

// viBindings models only Vi's insert-mode chord set: this framework's
// line editor has one active mode machine (Normal/Search/MenuComplete,
// ) and does not implement a second, independent Vi
// command-mode state machine. "Vi" here means "the chords a Vi user
// expects available without leaving insert mode" — Escape still cancels
// per the core state machine rather than dropping into a modal command
// mode.
var viBindings = merge(defaultBindings, map[string]ActionName{
	"Ctrl+H": ActionBackspace,
	"Ctrl+W": ActionBackwardKillWord,
	"Ctrl+U": ActionKillWholeLine,
	"Ctrl+R": ActionReverseSearchHistory,
})

// vscodeBindings follows the chord conventions of editors in the
// VSCode/Sublime lineage (Ctrl+arrows for word motion, Ctrl+Backspace
// for word deletion, Ctrl+Z/Ctrl+Shift+Z for undo/redo).
var vscodeBindings = merge(defaultBindings, map[string]ActionName{
	"Ctrl+Left":        ActionBackwardWord,
	"Ctrl+Right":       ActionForwardWord,
	"Ctrl+Backspace":        ActionBackwardKillWord,
	"Ctrl+Delete":           ActionKillWordForward,
	"Ctrl+Z":                ActionUndo,
	"Ctrl+Shift+Z":          ActionRedo,
	"Ctrl+A":                ActionSelectAll,
	"Shift+Left":       ActionSelectBackwardChar,
	"Shift+Right":      ActionSelectForwardChar,
	"Shift+Ctrl+Left":  ActionSelectBackwardWord,
	"Shift+Ctrl+Right": ActionSelectForwardWord,
	"Ctrl+X":                ActionCut,
	"Ctrl+C":                ActionCopy,
})

func merge(base, extra map[string]ActionName) map[string]ActionName {
	out := make(map[string]ActionName, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
