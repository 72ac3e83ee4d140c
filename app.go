// Package nuru is the top-level application framework: it wires the
// route collection, resolver, binder and dispatcher into either a
// single-shot CLI invocation (Run) or an interactive REPL (Serve), and
// serves the three reserved flags every nuru application gets for free:
// --help, --version, --capabilities.
package nuru

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nuru-cli/nuru/pkg/bind"
	"github.com/nuru-cli/nuru/pkg/capabilities"
	"github.com/nuru-cli/nuru/pkg/dispatch"
	"github.com/nuru-cli/nuru/pkg/editor"
	"github.com/nuru-cli/nuru/pkg/errs"
	"github.com/nuru-cli/nuru/pkg/keymap"
	"github.com/nuru-cli/nuru/pkg/pattern"
	"github.com/nuru-cli/nuru/pkg/repl"
	"github.com/nuru-cli/nuru/pkg/route"
	"github.com/nuru-cli/nuru/pkg/term"
)

// App accumulates routes, then serves them either as a one-shot CLI
// invocation or as a REPL. Zero value is not usable; construct with
// New.
type App struct {
	Name        string
	Version     string
	Description string

	collection *route.Collection
	registry   *bind.Registry
	frozen     *route.Frozen

	group string // active Group() prefix, "" outside of Group

	Stdout io.Writer
	Stderr io.Writer
}

// New constructs an App with a fresh route collection and a converter
// registry preloaded with every built-in type.
func New(name, version, description string) *App {
	return &App{
		Name:        name,
		Version:     version,
		Description: description,
		collection:  route.NewCollection(),
		registry:    bind.NewRegistry(),
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Registry exposes the converter registry so callers can register enum
// types before the first route
// referencing them is compiled.
func (a *App) Registry() *bind.Registry { return a.registry }

// Map compiles pattern and registers it against handler. It panics on a
// malformed pattern: route registration happens at process startup,
// before any user input exists to recover from, so pattern errors are
// raised at build time instead.
func (a *App) Map(patternStr string, handler route.Handler, opts ...route.EndpointOption) *App {
	fullPattern := patternStr
	if a.group != "" {
		fullPattern = a.group + " " + patternStr
	}

	segments, err := pattern.Parse(fullPattern)
	if err != nil {
		panic(fmt.Sprintf("nuru: Map(%q): %s", fullPattern, err))
	}
	compiled := route.Compile(fullPattern, segments)

	if a.group != "" {
		opts = append([]route.EndpointOption{route.WithGroup(a.group)}, opts...)
	}
	endpoint := route.NewEndpoint(compiled, handler, opts...)

	if err := a.collection.Add(endpoint); err != nil {
		panic(fmt.Sprintf("nuru: Map(%q): %s", fullPattern, err))
	}
	return a
}

// MapFunc is the HandlerFunc-accepting sibling of Map.
func (a *App) MapFunc(patternStr string, fn route.HandlerFunc, opts ...route.EndpointOption) *App {
	return a.Map(patternStr, fn, opts...)
}

// Group scopes every Map call inside fn under the given group name: it
// both prepends name as a literal prefix segment to every pattern
// registered inside fn (so "restart {service}" becomes "ops restart
// {service}") and tags those endpoints with group metadata (surfaced
// in the Capabilities JSON's "group" field). Groups do not nest; a
// nested Group call replaces, rather than joins, the active name and
// prefix.
func (a *App) Group(name string, fn func(*App)) *App {
	prev := a.group
	a.group = name
	fn(a)
	a.group = prev
	return a
}

// freeze lazily freezes the collection on first use; Run/Serve/Map are
// not safe to interleave once freezing has happened.
func (a *App) freeze() *route.Frozen {
	if a.frozen == nil {
		a.frozen = a.collection.Freeze()
	}
	return a.frozen
}

// Run serves a single argv as a non-interactive CLI invocation and
// returns the process exit code.
func (a *App) Run(ctx context.Context, argv []string) int {
	if code, handled := a.handleReserved(argv); handled {
		return code
	}
	code, _ := a.dispatch(ctx, argv)
	return code
}

// dispatch resolves and runs argv against the frozen collection,
// returning the exit code: the handler's code on success, the error's own code
// on failure, 2 if nothing matched.
func (a *App) dispatch(ctx context.Context, argv []string) (int, error) {
	frozen := a.freeze()
	matched, nomatch := resolveRoute(argv, frozen)
	if matched == nil {
		fmt.Fprintln(a.Stderr, formatNoMatch(nomatch))
		return errs.ExitArgumentErr, fmt.Errorf("no route matched %v", argv)
	}

	result := dispatch.Dispatch(ctx, matched, a.registry)
	if result.Err != nil {
		fmt.Fprintln(a.Stderr, result.Err)
	}
	return result.ExitCode, result.Err
}

// handleReserved serves --help/--version/--capabilities. A
// user-defined route with an identical pattern overrides the built-in:
// Resolve is tried first, and only an unmatched reserved flag falls
// through to these built-in renderers.
func (a *App) handleReserved(argv []string) (int, bool) {
	if len(argv) != 1 {
		return 0, false
	}

	frozen := a.freeze()
	if matched, _ := resolveRoute(argv, frozen); matched != nil {
		return 0, false
	}

	switch argv[0] {
	case "--version":
		fmt.Fprintln(a.Stdout, a.Version)
		return errs.ExitOK, true
	case "--help":
		a.printHelp()
		return errs.ExitOK, true
	case "--capabilities":
		doc := capabilities.Build(a.Name, a.Version, a.Description, frozen)
		b, err := capabilities.MarshalIndent(doc)
		if err != nil {
			fmt.Fprintln(a.Stderr, err)
			return errs.ExitGeneric, true
		}
		fmt.Fprintln(a.Stdout, string(b))
		return errs.ExitOK, true
	}
	return 0, false
}

func (a *App) printHelp() {
	fmt.Fprintf(a.Stdout, "%s", a.Name)
	if a.Version != "" {
		fmt.Fprintf(a.Stdout, " %s", a.Version)
	}
	fmt.Fprintln(a.Stdout)
	if a.Description != "" {
		fmt.Fprintln(a.Stdout, a.Description)
	}
	fmt.Fprintln(a.Stdout)
	for _, ep := range a.freeze().Endpoints() {
		fmt.Fprintf(a.Stdout, "  %s\n", ep.Route.OriginalPattern)
		if ep.Description != "" {
			fmt.Fprintf(a.Stdout, "      %s\n", ep.Description)
		}
	}
}

// ServeOptions configures an interactive REPL session.
type ServeOptions struct {
	Terminal    term.Terminal
	Profile     *keymap.Profile // nil uses keymap.Named("Default")
	Prompt      string
	HistoryPath string
	Completion  editor.CompletionSource
}

// Serve drives an interactive REPL against the given
// terminal until the user exits, returning the last dispatched
// command's exit code.
func (a *App) Serve(ctx context.Context, opts ServeOptions) (int, error) {
	profile := opts.Profile
	if profile == nil {
		table, _ := keymap.Named("Default")
		p, err := keymap.NewProfile(table)
		if err != nil {
			return errs.ExitGeneric, err
		}
		profile = p
	}

	dispatchFn := func(ctx context.Context, argv []string) (int, error) {
		if code, handled := a.handleReserved(argv); handled {
			return code, nil
		}
		return a.dispatch(ctx, argv)
	}

	r := repl.New(opts.Terminal, profile, dispatchFn, repl.Options{
		Prompt:      opts.Prompt,
		HistoryPath: opts.HistoryPath,
		Completion:  opts.Completion,
		OnDiagnostic: func(text string) {
			fmt.Fprintln(a.Stderr, text)
		},
	})

	if err := r.Run(ctx); err != nil {
		return errs.ExitGeneric, err
	}
	return r.LastExitCode, nil
}
