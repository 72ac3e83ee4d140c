// Package tcellterm implements term.Terminal on top of
// github.com/gdamore/tcell/v2. It is the framework's illustrative
// concrete terminal; nothing in pkg/editor or pkg/repl imports it
// directly, since implementations beyond the Terminal interface are
// external to the core.
package tcellterm

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/nuru-cli/nuru/pkg/term"
)

// Terminal adapts a tcell.Screen to term.Terminal. Grounded on peco's
// InlineScreen (screen_inline.go): a mutex-guarded tcell.Screen plus a
// goroutine that pumps PollEvent into a channel so the caller can
// select on context cancellation instead of blocking inside tcell
// itself.
type Terminal struct {
	mutex  sync.Mutex
	screen tcell.Screen

	fg, bg         term.Color
	cursorX, cursorY int
	events         chan tcell.Event
}

// New creates and initializes a tcell screen.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}

	t := &Terminal{screen: screen, events: make(chan tcell.Event)}
	go t.pump()
	return t, nil
}

func (t *Terminal) pump() {
	defer func() { recover() }()
	defer close(t.events)
	for {
		t.mutex.Lock()
		scr := t.screen
		t.mutex.Unlock()
		if scr == nil {
			return
		}
		ev := scr.PollEvent()
		if ev == nil {
			return
		}
		t.events <- ev
	}
}

func (t *Terminal) Size() (int, int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SupportsColor() bool {
	return t.screen.Colors() > 1
}

func (t *Terminal) SupportsHyperlinks() bool {
	// tcell has no portable hyperlink capability query; no example in
	// the corpus probes terminfo for OSC 8 support, so this is
	// conservatively false until a concrete terminal proves otherwise.
	return false
}

// ReadKey blocks for the next key/resize/interrupt event or until ctx is
// done.
func (t *Terminal) ReadKey(ctx context.Context) (term.KeyEvent, error) {
	for {
		select {
		case <-ctx.Done():
			return term.KeyEvent{}, ctx.Err()
		case ev, ok := <-t.events:
			if !ok {
				return term.KeyEvent{}, ctx.Err()
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				return keyEventFromTcell(e), nil
			case *tcell.EventResize:
				return term.KeyEvent{Resize: true}, nil
			default:
				continue
			}
		}
	}
}

func keyEventFromTcell(e *tcell.EventKey) term.KeyEvent {
	out := term.KeyEvent{}
	if e.Modifiers()&tcell.ModCtrl != 0 {
		out.Modifier |= term.ModCtrl
	}
	if e.Modifiers()&tcell.ModAlt != 0 {
		out.Modifier |= term.ModAlt
	}
	if e.Modifiers()&tcell.ModShift != 0 {
		out.Modifier |= term.ModShift
	}

	switch e.Key() {
	case tcell.KeyCtrlC:
		out.Interrupt = true
	case tcell.KeyEnter:
		out.Name = term.KeyEnter
	case tcell.KeyEscape:
		out.Name = term.KeyEscape
	case tcell.KeyTab:
		out.Name = term.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Name = term.KeyBackspace
	case tcell.KeyDelete:
		out.Name = term.KeyDelete
	case tcell.KeyHome:
		out.Name = term.KeyHome
	case tcell.KeyEnd:
		out.Name = term.KeyEnd
	case tcell.KeyPgUp:
		out.Name = term.KeyPageUp
	case tcell.KeyPgDn:
		out.Name = term.KeyPageDown
	case tcell.KeyUp:
		out.Name = term.KeyArrowUp
	case tcell.KeyDown:
		out.Name = term.KeyArrowDown
	case tcell.KeyLeft:
		out.Name = term.KeyArrowLeft
	case tcell.KeyRight:
		out.Name = term.KeyArrowRight
	case tcell.KeyRune:
		out.Ch = e.Rune()
	default:
		out.Ch = e.Rune()
	}
	return out
}

func (t *Terminal) Write(text string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	style := tcell.StyleDefault.Foreground(tcellColor(t.fg)).Background(tcellColor(t.bg))
	x, y, _ := t.cursorLocked()
	for _, r := range text {
		if r == '\n' {
			y++
			x = 0
			continue
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
	t.cursorX, t.cursorY = x, y
}

// cursorLocked returns the logical write position; tcell has no notion
// of a "current" cursor for writes the way a real terminal does, so the
// Terminal tracks it itself. Caller must hold t.mutex.
func (t *Terminal) cursorLocked() (int, int, error) {
	return t.cursorX, t.cursorY, nil
}

func (t *Terminal) MoveCursor(row, col int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.cursorX, t.cursorY = col, row
	t.screen.ShowCursor(col, row)
}

func (t *Terminal) ClearLine() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	w, _ := t.screen.Size()
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, t.cursorY, ' ', nil, tcell.StyleDefault)
	}
}

func (t *Terminal) ClearScreen() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.screen.Clear()
}

func (t *Terminal) SetColor(fg, bg term.Color) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.fg, t.bg = fg, bg
}

func (t *Terminal) ResetStyle() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.fg, t.bg = term.ColorDefault, term.ColorDefault
}

func (t *Terminal) Flush() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.screen.Show()
	return nil
}

// Close tears down the underlying tcell screen.
func (t *Terminal) Close() {
	t.mutex.Lock()
	scr := t.screen
	t.screen = nil
	t.mutex.Unlock()
	if scr != nil {
		scr.Fini()
	}
}

var paletteCache = map[term.Color]tcell.Color{
	term.ColorDefault: tcell.ColorDefault,
	term.ColorBlack:   tcell.ColorBlack,
	term.ColorRed:     tcell.ColorRed,
	term.ColorGreen:   tcell.ColorGreen,
	term.ColorYellow:  tcell.ColorYellow,
	term.ColorBlue:    tcell.ColorBlue,
	term.ColorMagenta: tcell.ColorPurple,
	term.ColorCyan:    tcell.ColorTeal,
	term.ColorWhite:   tcell.ColorWhite,
}

func tcellColor(c term.Color) tcell.Color {
	if v, ok := paletteCache[c]; ok {
		return v
	}
	return tcell.ColorDefault
}

// blendForLowColor down-samples a truecolor hex value to the nearest
// basic ANSI color when the terminal lacks truecolor support, using
// perceptual (CIE Lab) distance rather than naive RGB distance so
// near-gray blends don't get mapped to a jarringly wrong hue.
func blendForLowColor(hex string) (term.Color, error) {
	target, err := colorful.Hex(hex)
	if err != nil {
		return term.ColorDefault, err
	}

	best := term.ColorDefault
	bestDist := -1.0
	for name, tc := range map[term.Color][3]uint8{
		term.ColorBlack:   {0, 0, 0},
		term.ColorRed:     {255, 0, 0},
		term.ColorGreen:   {0, 255, 0},
		term.ColorYellow:  {255, 255, 0},
		term.ColorBlue:    {0, 0, 255},
		term.ColorMagenta: {255, 0, 255},
		term.ColorCyan:    {0, 255, 255},
		term.ColorWhite:   {255, 255, 255},
	} {
		candidate := colorful.Color{R: float64(tc[0]) / 255, G: float64(tc[1]) / 255, B: float64(tc[2]) / 255}
		dist := target.DistanceLab(candidate)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best, nil
}
