package pattern

import "strings"

// Render serializes a segment list back into a pattern string, up to
// canonical whitespace — satisfies the round-trip property
// parse(P).segments == parse(render(parse(P))).segments.
func Render(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, seg := range segments {
		parts[i] = renderSegment(seg)
	}
	return strings.Join(parts, " ")
}

func renderSegment(seg Segment) string {
	switch seg.Kind {
	case KindLiteral:
		return seg.Literal
	case KindParameter:
		return renderParameter(seg.CatchAll, seg.Name, seg.Type, seg.Optional, seg.Description)
	case KindOption:
		var sb strings.Builder
		if seg.ShortForm != "" && seg.ShortForm == seg.LongForm {
			// Short-only option: LongForm doubles as the canonical key
			// (see parser.go), so render it back the way it was written.
			sb.WriteString("-")
			sb.WriteString(seg.ShortForm)
		} else {
			sb.WriteString("--")
			sb.WriteString(seg.LongForm)
			if seg.ShortForm != "" {
				sb.WriteString(",-")
				sb.WriteString(seg.ShortForm)
			}
		}
		if seg.ExpectsValue {
			sb.WriteString(" ")
			sb.WriteString(renderParameter(false, seg.ValueParam, seg.ValueType, seg.ValueOptional, ""))
			if seg.Repeated {
				sb.WriteString("*")
			}
		}
		if seg.Description != "" {
			sb.WriteString("|")
			sb.WriteString(seg.Description)
		}
		return sb.String()
	default:
		return ""
	}
}

func renderParameter(catchAll bool, name, typ string, optional bool, description string) string {
	var sb strings.Builder
	sb.WriteString("{")
	if catchAll {
		sb.WriteString("*")
	}
	sb.WriteString(name)
	if typ != "" {
		sb.WriteString(":")
		sb.WriteString(typ)
	}
	if optional {
		sb.WriteString("?")
	}
	if description != "" {
		sb.WriteString("|")
		sb.WriteString(description)
	}
	sb.WriteString("}")
	return sb.String()
}
