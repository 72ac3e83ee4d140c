// Package term declares the terminal abstraction the line editor is
// built against. Concrete implementations live in their own
// subpackages so the editor never imports a terminal library directly.
package term

import "context"

// Color is an abstract terminal color; concrete Terminals decide how to
// render it (16-color, 256-color, or truecolor).
type Color int

// Reserved colors every Terminal must support.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// KeyName identifies a non-printable key, mirroring
// internal/keychord.KeyName so a Terminal's readKey result can be handed
// straight to a Sequencer.
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
)

// Modifier is a bitmask of held modifier keys.
type Modifier int

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModShift Modifier = 1 << 2
)

// KeyEvent is one unit of terminal input: either a named key or a
// printable rune, with modifiers.
type KeyEvent struct {
	Name     KeyName
	Ch       rune
	Modifier Modifier

	// Interrupt marks the platform's interrupt signal (e.g. SIGINT
	// delivered as a synthetic key) so the editor's cancellation
	// handling does not depend on a specific encoding.
	Interrupt bool

	// Resize marks a terminal resize notification rather than a keypress.
	Resize bool
}

// Terminal is the complete surface the line editor depends on. No other
// terminal feature may be used by editor code.
type Terminal interface {
	Size() (width, height int)
	SupportsColor() bool
	SupportsHyperlinks() bool

	// ReadKey blocks until a key event is available or ctx is cancelled.
	ReadKey(ctx context.Context) (KeyEvent, error)

	Write(text string)
	MoveCursor(row, col int)
	ClearLine()
	ClearScreen()

	SetColor(fg, bg Color)
	ResetStyle()

	// Flush pushes buffered writes to the physical terminal.
	Flush() error
}
