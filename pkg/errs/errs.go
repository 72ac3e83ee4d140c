// Package errs defines the nuru error taxonomy as a small set
// of concrete error types, each carrying the process exit code its
// failure should surface with.
package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ExitCoder is implemented by every error in the taxonomy.
type ExitCoder interface {
	error
	ExitCode() int
}

const (
	ExitOK           = 0
	ExitGeneric      = 1
	ExitArgumentErr  = 2
	ExitUsageErr     = 64
)

// PatternSyntaxError reports a lex/parse failure in a route pattern,
// fatal at build time. Offset is the byte offset into the pattern string.
type PatternSyntaxError struct {
	Pattern string
	Offset  int
	Message string
}

func (e *PatternSyntaxError) Error() string {
	return fmt.Sprintf("pattern syntax error at offset %d in %q: %s", e.Offset, e.Pattern, e.Message)
}

func (e *PatternSyntaxError) ExitCode() int { return ExitUsageErr }

// PatternSemanticError reports a semantic violation (duplicate parameter
// name, catch-all misplaced, unknown type tag), fatal at build time. Code
// is one of the named violations (e.g. "CatchAllMustBeLast",
// "BadShortForm", "DuplicateParameterName").
type PatternSemanticError struct {
	Pattern string
	Code    string
	Message string
}

func (e *PatternSemanticError) Error() string {
	return fmt.Sprintf("pattern semantic error (%s) in %q: %s", e.Code, e.Pattern, e.Message)
}

func (e *PatternSemanticError) ExitCode() int { return ExitUsageErr }

// CollectionFrozenError is raised when code attempts to mutate a frozen
// RouteCollection. This is a programmer error, not a user-facing one.
type CollectionFrozenError struct{}

func (e *CollectionFrozenError) Error() string { return "route collection is frozen" }
func (e *CollectionFrozenError) ExitCode() int { return ExitGeneric }

// MissingRequiredOptionError reports that a required option was absent
// from argv for an otherwise-matching route.
type MissingRequiredOptionError struct {
	Name string
}

func (e *MissingRequiredOptionError) Error() string {
	return fmt.Sprintf("missing required option --%s", e.Name)
}

func (e *MissingRequiredOptionError) ExitCode() int { return ExitArgumentErr }

// ExtraTokensError reports that argv contained tokens no segment of the
// route consumed.
type ExtraTokensError struct {
	Tokens []string
}

func (e *ExtraTokensError) Error() string {
	return fmt.Sprintf("extra arguments: %v", e.Tokens)
}

func (e *ExtraTokensError) ExitCode() int { return ExitArgumentErr }

// UnknownOptionError reports an argv token shaped like an option that
// does not match any option declared by the route.
type UnknownOptionError struct {
	Name string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %s", e.Name)
}

func (e *UnknownOptionError) ExitCode() int { return ExitArgumentErr }

// NoMatchError reports that no route in a collection matched argv. It
// carries per-route failure reasons and closest-match suggestions for
// diagnostics.
type NoMatchError struct {
	Argv        []string
	Reasons     []RouteFailure
	Suggestions []string
}

// RouteFailure pairs a route's original pattern with why it didn't match.
type RouteFailure struct {
	Pattern string
	Reason  error
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no route matched %v (%d candidates considered)", e.Argv, len(e.Reasons))
}

func (e *NoMatchError) ExitCode() int { return ExitArgumentErr }

// TypeConversionError reports that a matched route's bound value could
// not be converted to its declared type.
type TypeConversionError struct {
	Param      string
	Raw        string
	TargetType string
}

func (e *TypeConversionError) Error() string {
	return fmt.Sprintf("TypeConversion(%s, %q, %s)", e.Param, e.Raw, e.TargetType)
}

func (e *TypeConversionError) ExitCode() int { return ExitArgumentErr }

// UnknownActionError reports that a key-binding profile referenced an
// action name absent from the action registry. Raised at REPL/profile
// construction time, never at keypress time.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Name)
}

func (e *UnknownActionError) ExitCode() int { return ExitUsageErr }

// HandlerError wraps an error a route handler returned. ExitCode honors
// a *HandlerError constructed with an explicit code (e.g. from a handler
// that wants a specific process exit status), defaulting to 1.
type HandlerError struct {
	Source error
	Code   int
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler error: %s", e.Source)
}

func (e *HandlerError) Unwrap() error { return e.Source }

func (e *HandlerError) ExitCode() int {
	if e.Code != 0 {
		return e.Code
	}
	return ExitGeneric
}

// Wrap annotates err with a message, preserving the original for
// errors.Cause.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is the formatted form of Wrap.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Cause unwraps a chain built with Wrap/Wrapf back to its root error.
func Cause(err error) error {
	return pkgerrors.Cause(err)
}

// CodeOf returns the exit code for err : ExitCoder errors
// surface their own code, everything else is a generic failure.
func CodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitGeneric
}
