package bind

import (
	"github.com/nuru-cli/nuru/pkg/errs"
	"github.com/nuru-cli/nuru/pkg/pattern"
	"github.com/nuru-cli/nuru/pkg/resolve"
)

// BoundArguments is the typed view of a Matched route's extracted
// values, built by Bind. It implements route.Args structurally.
type BoundArguments struct {
	raw     resolve.ExtractedValues
	typed   map[string]any
	typedOK map[string]bool
}

// Bind converts every extracted value against the route segment that
// declared it, using registry to look up each declared type. Conversion
// failure aborts with *errs.TypeConversionError.
func Bind(segments []pattern.Segment, extracted resolve.ExtractedValues, registry *Registry) (*BoundArguments, error) {
	b := &BoundArguments{
		raw:     extracted,
		typed:   map[string]any{},
		typedOK: map[string]bool{},
	}

	for _, seg := range segments {
		switch seg.Kind {
		case pattern.KindParameter:
			if err := b.bindOne(seg.Name, seg.Type, seg.CatchAll, registry); err != nil {
				return nil, err
			}
		case pattern.KindOption:
			name := seg.LongForm
			typeTag := "bool"
			multi := false
			if seg.ExpectsValue {
				name = seg.ValueParam
				typeTag = seg.ValueType
				multi = seg.Repeated
			}
			if err := b.bindOne(name, typeTag, multi, registry); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

func (b *BoundArguments) bindOne(name, typeTag string, multi bool, registry *Registry) error {
	values, present := b.raw[name]
	if !present || !values.Present {
		return nil
	}

	converter, ok := registry.Converter(typeTag)
	if !ok {
		converter, _ = registry.Converter("string")
	}

	if multi {
		converted := make([]any, 0, len(values.Raw))
		for _, raw := range values.Raw {
			v, err := converter(raw)
			if err != nil {
				return &errs.TypeConversionError{Param: name, Raw: raw, TargetType: typeTag}
			}
			converted = append(converted, v)
		}
		b.typed[name] = converted
		b.typedOK[name] = true
		return nil
	}

	raw := ""
	if len(values.Raw) > 0 {
		raw = values.Raw[0]
	}
	v, err := converter(raw)
	if err != nil {
		return &errs.TypeConversionError{Param: name, Raw: raw, TargetType: typeTag}
	}
	b.typed[name] = v
	b.typedOK[name] = true
	return nil
}

func (b *BoundArguments) String(name string) (string, bool) {
	v, ok := b.raw[name]
	if !ok || !v.Present || len(v.Raw) == 0 {
		return "", false
	}
	return v.Raw[0], true
}

func (b *BoundArguments) Strings(name string) ([]string, bool) {
	v, ok := b.raw[name]
	if !ok || !v.Present {
		return nil, false
	}
	return v.Raw, true
}

func (b *BoundArguments) Int(name string) (int64, bool) {
	v, ok := b.typed[name]
	if !ok {
		return 0, false
	}
	i, ok := v.(int64)
	return i, ok
}

func (b *BoundArguments) Uint(name string) (uint64, bool) {
	v, ok := b.typed[name]
	if !ok {
		return 0, false
	}
	u, ok := v.(uint64)
	return u, ok
}

func (b *BoundArguments) Float(name string) (float64, bool) {
	v, ok := b.typed[name]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func (b *BoundArguments) Bool(name string) (bool, bool) {
	v, ok := b.typed[name]
	if !ok {
		return false, false
	}
	bv, ok := v.(bool)
	return bv, ok
}

func (b *BoundArguments) Raw(name string) (any, bool) {
	if v, ok := b.typed[name]; ok {
		return v, true
	}
	if v, ok := b.raw[name]; ok && v.Present {
		if len(v.Raw) == 1 {
			return v.Raw[0], true
		}
		return v.Raw, true
	}
	return nil, false
}
