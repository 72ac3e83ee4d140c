package repl

import "context"

// runBuiltin handles the REPL-local commands that step 7
// requires to run before the Resolver ever sees argv. "help" is not
// REPL-local: it re-invokes Dispatch with a synthetic "--help" so both
// entry points (single-shot CLI and REPL) render identical help text.
func (r *REPL) runBuiltin(ctx context.Context, argv []string) bool {
	if len(argv) == 0 {
		return false
	}

	switch argv[0] {
	case "exit", "quit", "q":
		r.exitReqested = true
		return true

	case "clear", "cls":
		r.terminal.ClearScreen()
		r.terminal.MoveCursor(0, 0)
		_ = r.terminal.Flush()
		return true

	case "clear-history":
		r.history.Clear()
		return true

	case "history":
		for i := 0; i < r.history.Len(); i++ {
			entry, ok := r.history.EntryAt(i)
			if !ok {
				continue
			}
			r.terminal.Write(entry)
			r.terminal.Write("\r\n")
		}
		_ = r.terminal.Flush()
		return true

	case "help":
		code, err := r.dispatch(ctx, []string{"--help"})
		r.LastExitCode = code
		if err != nil {
			r.onDiagnostic(err.Error())
		}
		return true
	}

	return false
}
