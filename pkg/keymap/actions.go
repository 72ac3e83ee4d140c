// Package keymap resolves key chords to named editor actions and
// composes named/custom profiles the way peco's Keymap composes its
// own action map. It holds no editing logic itself —
// pkg/editor owns the ActionName -> behavior registry and executes
// whatever name a Profile resolves a keystroke to.
package keymap

// ActionName identifies one editor action. Profiles map key chords to
// ActionNames; pkg/editor maps ActionNames to behavior.
type ActionName string

// The canonical action vocabulary (and the invariants/
// scenarios around it). pkg/editor's action registry must recognize
// every one of these; Profile validates chord bindings against exactly
// this set at construction time — unknown action names fail profile
// construction, never a keypress.
const (
	ActionSelfInsertOrOverwrite ActionName = "SelfInsertOrOverwrite"

	// Motion
	ActionForwardChar     ActionName = "ForwardChar"
	ActionBackwardChar    ActionName = "BackwardChar"
	ActionForwardWord     ActionName = "ForwardWord"
	ActionBackwardWord    ActionName = "BackwardWord"
	ActionBeginningOfLine ActionName = "BeginningOfLine"
	ActionEndOfLine       ActionName = "EndOfLine"

	// Case
	ActionUpcaseWord     ActionName = "UpcaseWord"
	ActionDowncaseWord   ActionName = "DowncaseWord"
	ActionCapitalizeWord ActionName = "CapitalizeWord"

	// Editing
	ActionDeleteChar       ActionName = "DeleteChar"
	ActionBackspace        ActionName = "Backspace"
	ActionKillWordForward  ActionName = "KillWordForward"
	ActionBackwardKillWord ActionName = "BackwardKillWord"
	ActionKillLineToRing   ActionName = "KillLineToRing"
	ActionKillWholeLine    ActionName = "KillWholeLine"
	ActionTransposeChars   ActionName = "TransposeChars"
	ActionClearBuffer      ActionName = "ClearBuffer"

	// Kill ring
	ActionYank    ActionName = "Yank"
	ActionYankPop ActionName = "YankPop"

	// Undo/redo
	ActionUndo ActionName = "Undo"
	ActionRedo ActionName = "Redo"

	// Mode
	ActionToggleInsertMode ActionName = "ToggleInsertMode"

	// History
	ActionPreviousHistory       ActionName = "PreviousHistory"
	ActionNextHistory           ActionName = "NextHistory"
	ActionHistorySearchBackward ActionName = "HistorySearchBackward"
	ActionHistorySearchForward  ActionName = "HistorySearchForward"

	// Incremental search
	ActionReverseSearchHistory ActionName = "ReverseSearchHistory"
	ActionForwardSearchHistory ActionName = "ForwardSearchHistory"

	// Completion
	ActionTabComplete        ActionName = "TabComplete"
	ActionTabCompleteReverse ActionName = "TabCompleteReverse"

	// Selection
	ActionSetMark              ActionName = "SetMark"
	ActionSelectAll            ActionName = "SelectAll"
	ActionSelectForwardChar    ActionName = "SelectForwardChar"
	ActionSelectBackwardChar   ActionName = "SelectBackwardChar"
	ActionSelectForwardWord    ActionName = "SelectForwardWord"
	ActionSelectBackwardWord   ActionName = "SelectBackwardWord"
	ActionSelectToEndOfLine    ActionName = "SelectToEndOfLine"
	ActionSelectToBeginOfLine  ActionName = "SelectToBeginOfLine"
	ActionCut                  ActionName = "Cut"
	ActionCopy                 ActionName = "Copy"

	// Control / mode transitions
	ActionAccept       ActionName = "Accept"
	ActionCancel       ActionName = "Cancel"
	ActionExit         ActionName = "Exit"
	ActionInterrupt    ActionName = "Interrupt"
	ActionRefreshLine  ActionName = "RefreshLine"
	ActionClearScreen  ActionName = "ClearScreen"
)

// AllActions lists every recognized ActionName, used to validate
// profile bindings.
var AllActions = []ActionName{
	ActionSelfInsertOrOverwrite,
	ActionForwardChar, ActionBackwardChar, ActionForwardWord, ActionBackwardWord,
	ActionBeginningOfLine, ActionEndOfLine,
	ActionUpcaseWord, ActionDowncaseWord, ActionCapitalizeWord,
	ActionDeleteChar, ActionBackspace, ActionKillWordForward, ActionBackwardKillWord,
	ActionKillLineToRing, ActionKillWholeLine, ActionTransposeChars, ActionClearBuffer,
	ActionYank, ActionYankPop,
	ActionUndo, ActionRedo,
	ActionToggleInsertMode,
	ActionPreviousHistory, ActionNextHistory, ActionHistorySearchBackward, ActionHistorySearchForward,
	ActionReverseSearchHistory, ActionForwardSearchHistory,
	ActionTabComplete, ActionTabCompleteReverse,
	ActionSetMark, ActionSelectAll,
	ActionSelectForwardChar, ActionSelectBackwardChar, ActionSelectForwardWord, ActionSelectBackwardWord,
	ActionSelectToEndOfLine, ActionSelectToBeginOfLine,
	ActionCut, ActionCopy,
	ActionAccept, ActionCancel, ActionExit, ActionInterrupt, ActionRefreshLine, ActionClearScreen,
}
