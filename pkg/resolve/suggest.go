package resolve

import (
	"sort"
	"strings"

	"github.com/nuru-cli/nuru/pkg/route"
)

// Suggest returns up to three candidate patterns whose original pattern
// text is closest (by edit distance) to argv joined with spaces. It
// is a diagnostic aid only; it never influences which route matches.
//
// Edit distance is hand-rolled rather than pulled from a library: none
// of the retrieved example repos vendor a string-distance package (see
// DESIGN.md), and the algorithm is a dozen lines of well-known stdlib
// Go.
func Suggest(argv []string, collection *route.Frozen) []string {
	if len(argv) == 0 {
		return nil
	}
	input := strings.Join(argv, " ")

	type scored struct {
		pattern string
		dist    int
	}
	var candidates []scored
	seen := map[string]bool{}
	for _, ep := range collection.Endpoints() {
		p := ep.Route.OriginalPattern
		if seen[p] {
			continue
		}
		seen[p] = true
		candidates = append(candidates, scored{pattern: p, dist: levenshtein(input, p)})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	var out []string
	for i, c := range candidates {
		if i >= 3 {
			break
		}
		out = append(out, c.pattern)
	}
	return out
}

// levenshtein computes the classic single-row edit distance between a
// and b, case-insensitively.
func levenshtein(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	ra, rb := []rune(a), []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
