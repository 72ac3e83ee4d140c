// Package repl implements the REPL loop: render prompt,
// drive the line editor, tokenize accepted lines, dispatch built-ins or
// hand off to the caller-supplied resolver/dispatcher, append to
// history.
package repl

import (
	"context"
	"strings"

	"github.com/lestrrat-go/pdebug"

	"github.com/nuru-cli/nuru/pkg/editor"
	"github.com/nuru-cli/nuru/pkg/history"
	"github.com/nuru-cli/nuru/pkg/keymap"
	"github.com/nuru-cli/nuru/pkg/term"
)

// Dispatch resolves and runs argv exactly as a single-shot CLI
// invocation would, returning the handler's exit code. The REPL has no
// direct dependency on pkg/route/resolve/bind/dispatch; the caller
// (the top-level application type) owns route resolution so it can
// also serve the reserved --help/--version/--capabilities flags the
// same way for both entry points.
type Dispatch func(ctx context.Context, argv []string) (exitCode int, err error)

// Options configures a REPL.
type Options struct {
	Prompt         string
	HistoryPath    string // empty disables persistence
	HistoryCap     int    // 0 uses history.DefaultCapacity
	Completion     editor.CompletionSource
	OnDiagnostic   func(text string) // errors/messages not tied to a specific handler
}

// REPL drives one interactive session against a terminal.
type REPL struct {
	terminal term.Terminal
	editor   *editor.Editor
	history  *history.Store
	dispatch Dispatch

	prompt       string
	historyPath  string
	exitReqested bool

	// LastExitCode is the most recently dispatched handler's exit
	// code, exposed for tests and for a caller that wants to surface
	// it as the process exit status after the REPL returns.
	LastExitCode int

	onDiagnostic func(string)
}

// New constructs a REPL. profile must already be validated
// (keymap.Compose/NewProfile).
func New(t term.Terminal, profile *keymap.Profile, dispatch Dispatch, opts Options) *REPL {
	cap := opts.HistoryCap
	if cap <= 0 {
		cap = history.DefaultCapacity
	}
	h := history.New(cap)

	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}

	diag := opts.OnDiagnostic
	if diag == nil {
		diag = func(string) {}
	}

	r := &REPL{
		terminal:     t,
		history:      h,
		dispatch:     dispatch,
		prompt:       prompt,
		historyPath:  opts.HistoryPath,
		onDiagnostic: diag,
	}
	r.editor = editor.NewEditor(profile, h, opts.Completion)
	return r
}

// History exposes the REPL's history store, e.g. for a caller that
// wants to flush it on an out-of-band shutdown path.
func (r *REPL) History() *history.Store { return r.history }

// Run drives the REPL to completion: Exit, a read error, or ctx
// cancellation. It persists history on the way out if HistoryPath was
// set.
func (r *REPL) Run(ctx context.Context) error {
	if r.historyPath != "" {
		if err := r.history.Load(r.historyPath); err != nil {
			r.onDiagnostic(err.Error())
		}
	}

	for !r.exitReqested {
		if err := r.runOnce(ctx); err != nil {
			return err
		}
	}

	if r.historyPath != "" {
		if err := r.history.Save(r.historyPath); err != nil {
			return err
		}
	}
	return nil
}

// runOnce runs exactly one prompt -> accept/cancel/exit cycle.
func (r *REPL) runOnce(ctx context.Context) error {
	r.editor.Reset()
	r.editor.Render(r.terminal, r.prompt)

	for {
		key, err := r.terminal.ReadKey(ctx)
		if err != nil {
			return err
		}
		ev, err := r.editor.Step(ctx, key)
		if err != nil {
			return err
		}
		if ev.Bell {
			r.terminal.Write("\a")
			_ = r.terminal.Flush()
		}
		r.editor.Render(r.terminal, r.prompt)

		switch ev.Kind {
		case editor.EventExit:
			r.exitReqested = true
			return nil
		case editor.EventCancel:
			return nil
		case editor.EventRefresh:
			continue
		case editor.EventAccept:
			return r.accept(ctx, ev.Line)
		}
	}
}

func (r *REPL) accept(ctx context.Context, line string) error {
	if pdebug.Enabled {
		g := pdebug.Marker("repl.accept %q", line)
		defer g.End()
	}

	if strings.TrimSpace(line) == "" {
		return nil
	}

	argv, err := Tokenize(line)
	if err != nil {
		r.onDiagnostic(err.Error())
		r.history.Append(line)
		return nil
	}

	if r.runBuiltin(ctx, argv) {
		r.history.Append(line)
		return nil
	}

	code, err := r.dispatch(ctx, argv)
	r.LastExitCode = code
	if err != nil {
		r.onDiagnostic(err.Error())
	}
	r.history.Append(line)
	return nil
}
