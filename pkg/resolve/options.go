package resolve

import (
	"errors"
	"strings"

	"github.com/nuru-cli/nuru/pkg/errs"
	"github.com/nuru-cli/nuru/pkg/pattern"
	"github.com/nuru-cli/nuru/pkg/route"
)

var (
	errNoLiteralMatch    = errors.New("literal segment did not match")
	errMissingPositional = errors.New("required positional argument absent")
)

// scanOptions implements : it finds every occurrence of each
// option segment's long/short form in argv (restricted to tokens before
// an end-of-options marker), records its value(s) into extracted, marks
// consumed argv indices, and fails the route if a required option never
// appeared.
func scanOptions(r *route.CompiledRoute, argv []string, consumed []bool, endOfOptions int, extracted ExtractedValues) error {
	opts := optionSegments(r.Segments)
	booleanShorts := map[string]bool{}
	for _, seg := range opts {
		if !seg.ExpectsValue && seg.ShortForm != "" {
			booleanShorts[seg.ShortForm] = true
		}
	}

	present := map[string]bool{}

	for i := 0; i < endOfOptions; i++ {
		if consumed[i] {
			continue
		}
		tok := argv[i]
		if !looksLikeOption(tok) {
			continue
		}

		switch {
		case strings.HasPrefix(tok, "--"):
			name, value, hasValue := splitLongValue(tok)
			seg, ok := findByLong(opts, name)
			if !ok {
				continue // unknown option: left as a positional candidate
			}
			consumed[i] = true
			if err := bindOption(seg, value, hasValue, argv, consumed, i, endOfOptions, extracted); err != nil {
				return err
			}
			markPresent(present, seg)

		default:
			rest := tok[1:]
			if len(rest) == 1 {
				seg, ok := findByShort(opts, rest)
				if !ok {
					continue
				}
				consumed[i] = true
				if err := bindOption(seg, "", false, argv, consumed, i, endOfOptions, extracted); err != nil {
					return err
				}
				markPresent(present, seg)
				continue
			}

			switch {
			case allBooleanShorts(rest, booleanShorts):
				consumed[i] = true
				for _, ch := range rest {
					seg, _ := findByShort(opts, string(ch))
					extracted[seg.LongForm] = Values{Raw: []string{"true"}, Present: true}
					markPresent(present, seg)
				}

			case allBooleanShorts(rest[:len(rest)-1], booleanShorts):
				// Classic getopt tail convention: every letter but the
				// last must be a declared boolean short; the last may be
				// a valued option that consumes the following argv token,
				// e.g. "tar -cvf out.tar" == "-c -v -f out.tar".
				last, ok := findByShort(opts, rest[len(rest)-1:])
				if !ok || !last.ExpectsValue {
					continue
				}
				consumed[i] = true
				for _, ch := range rest[:len(rest)-1] {
					seg, _ := findByShort(opts, string(ch))
					extracted[seg.LongForm] = Values{Raw: []string{"true"}, Present: true}
					markPresent(present, seg)
				}
				if err := bindOption(last, "", false, argv, consumed, i, endOfOptions, extracted); err != nil {
					return err
				}
				markPresent(present, last)

			default:
				// Bundle doesn't resolve; treat literally and leave as a
				// positional candidate.
			}
		}
	}

	for _, seg := range opts {
		required := seg.ExpectsValue && !seg.ValueOptional
		if required && !present[optionKey(seg)] {
			name := seg.LongForm
			if seg.ExpectsValue {
				name = seg.ValueParam
			}
			return &errs.MissingRequiredOptionError{Name: name}
		}
	}
	return nil
}

func markPresent(present map[string]bool, seg pattern.Segment) {
	present[optionKey(seg)] = true
}

func optionKey(seg pattern.Segment) string { return seg.LongForm }

// bindOption records the value for one matched option occurrence at
// argv index i, consuming a following value token if the option expects
// one and none was supplied via "--name=value".
func bindOption(seg pattern.Segment, value string, hasValue bool, argv []string, consumed []bool, i, endOfOptions int, extracted ExtractedValues) error {
	if !seg.ExpectsValue {
		extracted[seg.LongForm] = Values{Raw: []string{"true"}, Present: true}
		return nil
	}

	if !hasValue {
		if i+1 < endOfOptions && !consumed[i+1] && !looksLikeOption(argv[i+1]) {
			value = argv[i+1]
			consumed[i+1] = true
			hasValue = true
		}
	}

	if !hasValue {
		// Value absent; MissingRequiredOption is raised later if the
		// option is required. For optional options this is simply "no
		// value supplied" and extracted stays unset for ValueParam.
		return nil
	}

	if seg.Repeated {
		prior := extracted[seg.ValueParam]
		prior.Raw = append(prior.Raw, value)
		prior.Present = true
		extracted[seg.ValueParam] = prior
	} else {
		extracted[seg.ValueParam] = Values{Raw: []string{value}, Present: true}
	}
	return nil
}

func optionSegments(segs []pattern.Segment) []pattern.Segment {
	var out []pattern.Segment
	for _, s := range segs {
		if s.Kind == pattern.KindOption {
			out = append(out, s)
		}
	}
	return out
}

func findByLong(opts []pattern.Segment, name string) (pattern.Segment, bool) {
	for _, s := range opts {
		if s.LongForm == name {
			return s, true
		}
	}
	return pattern.Segment{}, false
}

func findByShort(opts []pattern.Segment, ch string) (pattern.Segment, bool) {
	for _, s := range opts {
		if s.ShortForm == ch {
			return s, true
		}
	}
	return pattern.Segment{}, false
}

func allBooleanShorts(rest string, booleanShorts map[string]bool) bool {
	for _, ch := range rest {
		if !booleanShorts[string(ch)] {
			return false
		}
	}
	return true
}
