package nuru

import (
	"fmt"
	"strings"

	"github.com/nuru-cli/nuru/pkg/resolve"
	"github.com/nuru-cli/nuru/pkg/route"
)

// resolveRoute is a thin rename of resolve.Resolve kept local so the
// rest of this file reads as App's own vocabulary.
func resolveRoute(argv []string, frozen *route.Frozen) (*resolve.Matched, *resolve.NoMatch) {
	return resolve.Resolve(argv, frozen)
}

// formatNoMatch renders a NoMatch diagnostic: the closest-match
// suggestions first, then every candidate route's specific failure
// reason.
func formatNoMatch(nm *resolve.NoMatch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "no command matched: %s", strings.Join(nm.Argv, " "))
	if len(nm.Suggestions) > 0 {
		fmt.Fprintf(&b, "\ndid you mean:")
		for _, s := range nm.Suggestions {
			fmt.Fprintf(&b, "\n  %s", s)
		}
	}
	for _, r := range nm.Reasons {
		fmt.Fprintf(&b, "\n  %s: %s", r.Pattern, r.Reason)
	}
	return b.String()
}
