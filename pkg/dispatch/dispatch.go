// Package dispatch assembles a matched route's bound arguments and
// invokes its handler, surfacing the handler's return value as a
// process exit code.
package dispatch

import (
	"context"

	"github.com/nuru-cli/nuru/pkg/bind"
	"github.com/nuru-cli/nuru/pkg/errs"
	"github.com/nuru-cli/nuru/pkg/resolve"
)

// Result is the outcome of dispatching one matched route.
type Result struct {
	ExitCode int
	Err      error
}

// Dispatch converts m's extracted values with registry, then invokes the
// matched endpoint's handler. Handlers run synchronously from the
// caller's perspective: an async handler must be driven to
// completion before Dispatch returns, which is the caller's
// responsibility if it chooses to run the handler on a background task.
func Dispatch(ctx context.Context, m *resolve.Matched, registry *bind.Registry) Result {
	bound, err := bind.Bind(m.Endpoint.Route.Segments, m.Extracted, registry)
	if err != nil {
		return Result{ExitCode: errs.CodeOf(err), Err: err}
	}

	code, herr := m.Endpoint.Handler.Execute(ctx, bound)
	if herr != nil {
		wrapped := &errs.HandlerError{Source: herr, Code: code}
		return Result{ExitCode: wrapped.ExitCode(), Err: wrapped}
	}
	return Result{ExitCode: code, Err: nil}
}
