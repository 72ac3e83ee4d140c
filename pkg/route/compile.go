// Package route compiles parsed patterns into immutable CompiledRoutes
// and holds them in a frozen, specificity-ordered
// RouteCollection.
package route

import (
	"strings"

	"github.com/nuru-cli/nuru/pkg/pattern"
)

// Specificity point values.
const (
	pointsLiteral            = 100
	pointsRequiredOption     = 50
	pointsOptionalOption     = 25
	pointsTypedParameter     = 20
	pointsUntypedParameter   = 10
	pointsOptionalParameter  = 5
	pointsCatchAll           = 1
)

// CompiledRoute is the immutable result of compiling a parsed pattern.
// No matching logic lives here — only structure and the specificity
// score.
type CompiledRoute struct {
	Segments        []pattern.Segment
	Specificity     int
	CatchAllName    string // "" if the route has no catch-all
	OriginalPattern string
}

// Compile computes a CompiledRoute from an already-parsed segment list.
// Segment order is preserved exactly as parsed.
func Compile(original string, segments []pattern.Segment) *CompiledRoute {
	cr := &CompiledRoute{
		Segments:        segments,
		OriginalPattern: original,
	}
	for _, seg := range segments {
		cr.Specificity += specificityOf(seg)
		if seg.Kind == pattern.KindParameter && seg.CatchAll {
			cr.CatchAllName = seg.Name
		}
	}
	return cr
}

// specificityOf scores one segment. Positional parameters contribute
// from exactly one bucket: catch-all, else optional (regardless of
// type), else typed-vs-untyped. This resolves an ambiguity the point
// table leaves implicit (see DESIGN.md).
func specificityOf(seg pattern.Segment) int {
	switch seg.Kind {
	case pattern.KindLiteral:
		return pointsLiteral
	case pattern.KindParameter:
		if seg.CatchAll {
			return pointsCatchAll
		}
		if seg.Optional {
			return pointsOptionalParameter
		}
		if seg.Type != "" {
			return pointsTypedParameter
		}
		return pointsUntypedParameter
	case pattern.KindOption:
		if optionIsOptional(seg) {
			return pointsOptionalOption
		}
		return pointsRequiredOption
	default:
		return 0
	}
}

// optionIsOptional reports whether an option segment can be absent from
// argv without failing the route: boolean flags always can (their
// absence means false); valued options are optional iff their value
// parameter was marked optional (`{value:type?}`).
func optionIsOptional(seg pattern.Segment) bool {
	if !seg.ExpectsValue {
		return true
	}
	return seg.ValueOptional
}

// CanonicalLong normalizes an option long form: no leading dashes,
// lowercase. Patterns are already lowercased by the parser, but this
// helper is exposed for callers normalizing a raw argv token (e.g.
// matching "--Tag" against a route declared as "tag"; the resolver does
// its own lowercasing in splitLongValue).
func CanonicalLong(s string) string {
	return strings.ToLower(strings.TrimLeft(s, "-"))
}
