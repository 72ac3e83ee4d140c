// Package resolve matches argv against a frozen route.Collection. It
// has no knowledge of terminals, editors, or dispatch — only the pure
// matching algorithm and its diagnostics.
package resolve

import (
	"strings"

	"github.com/lestrrat-go/pdebug"

	"github.com/nuru-cli/nuru/pkg/errs"
	"github.com/nuru-cli/nuru/pkg/pattern"
	"github.com/nuru-cli/nuru/pkg/route"
)

// Values holds the raw string(s) extracted for one parameter or option
// name. Single-valued parameters/flags populate exactly one entry;
// catch-alls and repeated options may populate several, in argv order.
type Values struct {
	Raw     []string
	Present bool
}

// ExtractedValues maps a parameter or option name to its raw extracted
// value(s), prior to type conversion.
type ExtractedValues map[string]Values

// Matched is the successful outcome of Resolve.
type Matched struct {
	Endpoint     *route.Endpoint
	Extracted    ExtractedValues
	DefaultsUsed []string
}

// NoMatch is the unsuccessful outcome of Resolve: every candidate
// endpoint's failure reason, plus closest-match suggestions for
// diagnostics.
type NoMatch struct {
	Argv        []string
	Reasons     []errs.RouteFailure
	Suggestions []string
}

// Resolve walks a frozen collection in its sorted order and returns the
// first endpoint whose route matches argv.
func Resolve(argv []string, collection *route.Frozen) (*Matched, *NoMatch) {
	if pdebug.Enabled {
		g := pdebug.Marker("resolve.Resolve %v", argv)
		defer g.End()
	}

	var reasons []errs.RouteFailure
	for _, ep := range collection.Endpoints() {
		extracted, defaultsUsed, err := match(ep.Route, argv)
		if err == nil {
			if pdebug.Enabled {
				pdebug.Printf("resolve: matched %q", ep.Route.OriginalPattern)
			}
			return &Matched{Endpoint: ep, Extracted: extracted, DefaultsUsed: defaultsUsed}, nil
		}
		reasons = append(reasons, errs.RouteFailure{Pattern: ep.Route.OriginalPattern, Reason: err})
	}
	return nil, &NoMatch{
		Argv:        argv,
		Reasons:     reasons,
		Suggestions: Suggest(argv, collection),
	}
}

// match runs the per-endpoint algorithm of against a single
// compiled route.
func match(r *route.CompiledRoute, argv []string) (ExtractedValues, []string, error) {
	consumed := make([]bool, len(argv))

	endOfOptions := len(argv)
	for i, tok := range argv {
		if tok == "--" {
			endOfOptions = i
			consumed[i] = true
			break
		}
	}

	extracted := ExtractedValues{}
	if err := scanOptions(r, argv, consumed, endOfOptions, extracted); err != nil {
		return nil, nil, err
	}

	positionalSegs := positionalSegments(r.Segments)
	requiredAfter := requiredAfterTable(positionalSegs)

	var positionals []string
	var positionalIdx []int // original argv index for each positional token, for ExtraTokens reporting
	for i, ok := range consumed {
		if !ok {
			positionals = append(positionals, argv[i])
			positionalIdx = append(positionalIdx, i)
		}
	}

	var defaultsUsed []string
	idx := 0
	for j, seg := range positionalSegs {
		remaining := len(positionals) - idx
		switch {
		case seg.Kind == pattern.KindLiteral:
			if remaining < 1 || positionals[idx] != seg.Literal {
				return nil, nil, errs.Wrapf(errNoLiteralMatch, "expected literal %q", seg.Literal)
			}
			idx++
		case seg.CatchAll:
			extracted[seg.Name] = Values{Raw: append([]string(nil), positionals[idx:]...), Present: idx < len(positionals)}
			idx = len(positionals)
		case seg.Optional:
			if remaining >= 1 && remaining-1 >= requiredAfter[j+1] {
				extracted[seg.Name] = Values{Raw: []string{positionals[idx]}, Present: true}
				idx++
			} else {
				defaultsUsed = append(defaultsUsed, seg.Name)
			}
		default: // required parameter
			if remaining < 1 {
				return nil, nil, errs.Wrapf(errMissingPositional, "missing required argument %q", seg.Name)
			}
			extracted[seg.Name] = Values{Raw: []string{positionals[idx]}, Present: true}
			idx++
		}
	}

	if idx < len(positionals) {
		leftover := append([]string(nil), positionals[idx:]...)
		return nil, nil, &errs.ExtraTokensError{Tokens: leftover}
	}

	return extracted, defaultsUsed, nil
}

func positionalSegments(segs []pattern.Segment) []pattern.Segment {
	var out []pattern.Segment
	for _, s := range segs {
		if s.Kind == pattern.KindLiteral || s.Kind == pattern.KindParameter {
			out = append(out, s)
		}
	}
	return out
}

// requiredAfterTable[j] is the number of positional segments at index >=j
// that MUST consume a token (literals and required parameters). Used to
// decide whether an optional parameter can safely consume a token without
// starving a later required one.
func requiredAfterTable(segs []pattern.Segment) []int {
	table := make([]int, len(segs)+1)
	for j := len(segs) - 1; j >= 0; j-- {
		extra := 0
		seg := segs[j]
		if seg.Kind == pattern.KindLiteral || (seg.Kind == pattern.KindParameter && !seg.Optional && !seg.CatchAll) {
			extra = 1
		}
		table[j] = table[j+1] + extra
	}
	return table
}

// looksLikeOption reports whether tok is shaped like an option form
// ("-x", "--name", "--name=value", "-abc"), independent of whether it
// matches any option this route declares.
func looksLikeOption(tok string) bool {
	return len(tok) >= 2 && tok[0] == '-' && tok != "--"
}

func splitLongValue(tok string) (name, value string, hasValue bool) {
	body := tok[2:]
	if i := strings.IndexByte(body, '='); i >= 0 {
		return strings.ToLower(body[:i]), body[i+1:], true
	}
	return strings.ToLower(body), "", false
}
