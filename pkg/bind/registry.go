// Package bind converts the resolver's raw string extractions into typed
// Go values and assembles the route.Args view a Handler
// reads from.
//
// The converter registry is a process-wide table initialized once before
// any route is parsed, then treated as immutable: callers pass it
// explicitly into Bind rather than reaching for a package-level var, so
// tests can build isolated registries.
package bind

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Converter turns one raw argv token into a typed value.
type Converter func(raw string) (any, error)

// Registry is a named table of Converters, keyed by the type tag used in
// pattern syntax (`{x:int}`, `{t:timestamp}`, ...).
type Registry struct {
	converters map[string]Converter
}

// NewRegistry builds a Registry with every built-in type from // already registered.
func NewRegistry() *Registry {
	r := &Registry{converters: map[string]Converter{}}
	r.register("string", func(raw string) (any, error) { return raw, nil })
	r.register("int", intConverter(64))
	r.register("int8", intConverter(8))
	r.register("int16", intConverter(16))
	r.register("int32", intConverter(32))
	r.register("int64", intConverter(64))
	r.register("uint", uintConverter(64))
	r.register("uint8", uintConverter(8))
	r.register("uint16", uintConverter(16))
	r.register("uint32", uintConverter(32))
	r.register("uint64", uintConverter(64))
	r.register("float", floatConverter(64))
	r.register("float32", floatConverter(32))
	r.register("float64", floatConverter(64))
	r.register("bool", convertBool)
	r.register("timestamp", convertTimestamp)
	r.register("duration", convertDuration)
	r.register("uuid", convertUUID)
	r.register("guid", convertUUID)
	return r
}

func (r *Registry) register(name string, c Converter) { r.converters[name] = c }

// RegisterEnum declares an enumeration type: raw tokens are matched
// case-insensitively against variants and converted to the canonical
// (declared-case) spelling.
func (r *Registry) RegisterEnum(name string, variants ...string) {
	lookup := make(map[string]string, len(variants))
	for _, v := range variants {
		lookup[strings.ToLower(v)] = v
	}
	r.register(name, func(raw string) (any, error) {
		canon, ok := lookup[strings.ToLower(raw)]
		if !ok {
			return nil, fmt.Errorf("not one of %s", strings.Join(variants, ", "))
		}
		return canon, nil
	})
}

// Converter looks up a registered converter by type tag. The empty
// string denotes an untyped (string) parameter.
func (r *Registry) Converter(typeTag string) (Converter, bool) {
	if typeTag == "" {
		typeTag = "string"
	}
	c, ok := r.converters[typeTag]
	return c, ok
}

func intConverter(bits int) Converter {
	return func(raw string) (any, error) {
		v, err := strconv.ParseInt(raw, 10, bits)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func uintConverter(bits int) Converter {
	return func(raw string) (any, error) {
		v, err := strconv.ParseUint(raw, 10, bits)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func floatConverter(bits int) Converter {
	return func(raw string) (any, error) {
		v, err := strconv.ParseFloat(raw, bits)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func convertBool(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return nil, fmt.Errorf("not a recognized boolean")
	}
}

func convertTimestamp(raw string) (any, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return t, nil
}

var shorthandDuration = regexp.MustCompile(`^(\d+d)?(\d+h)?(\d+m)?(\d+s)?$`)

// convertDuration accepts either an ISO 8601 duration-shorthand of the
// form "NdNhNmNs" (each component optional) or anything Go's
// time.ParseDuration understands.
func convertDuration(raw string) (any, error) {
	if raw != "" && shorthandDuration.MatchString(raw) {
		var total time.Duration
		groups := shorthandDuration.FindStringSubmatch(raw)
		matchedAny := false
		for _, g := range groups[1:] {
			if g == "" {
				continue
			}
			matchedAny = true
			unit := g[len(g)-1:]
			n, _ := strconv.Atoi(g[:len(g)-1])
			switch unit {
			case "d":
				total += time.Duration(n) * 24 * time.Hour
			case "h":
				total += time.Duration(n) * time.Hour
			case "m":
				total += time.Duration(n) * time.Minute
			case "s":
				total += time.Duration(n) * time.Second
			}
		}
		if matchedAny {
			return total, nil
		}
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, err
	}
	return d, nil
}

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func convertUUID(raw string) (any, error) {
	if !uuidPattern.MatchString(raw) {
		return nil, fmt.Errorf("not a well-formed UUID")
	}
	return strings.ToLower(raw), nil
}
