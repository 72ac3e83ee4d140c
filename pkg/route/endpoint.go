package route

// MessageType classifies an endpoint for the Capabilities JSON and for
// agent/tooling consumers deciding whether a command is safe to retry.
type MessageType string

const (
	MessageUnspecified       MessageType = "unspecified"
	MessageQuery             MessageType = "query"
	MessageCommand           MessageType = "command"
	MessageIdempotentCommand MessageType = "idempotent-command"
)

// Endpoint is a CompiledRoute plus its handler and metadata.
// The collection exclusively owns Endpoints; handlers are borrowed
// references consulted only at dispatch — Endpoint never points back
// at the collection that holds it.
type Endpoint struct {
	Route   *CompiledRoute
	Handler Handler

	// Order: explicit priority, lower sorts first, takes precedence over
	// Specificity.
	Order int

	Description string
	Group       string
	Aliases     []string
	MessageType MessageType
	Metadata    map[string]string

	// declarationIndex is assigned by the collection on Add and used as
	// the final ordering tie-breaker; it is not settable by
	// EndpointOption.
	declarationIndex int
}

// EndpointOption configures optional Endpoint metadata: the order
// field, plus the group/message-type/alias metadata.
type EndpointOption func(*Endpoint)

// WithOrder sets the explicit priority used before specificity when
// sorting (default 0; lower sorts first).
func WithOrder(n int) EndpointOption {
	return func(e *Endpoint) { e.Order = n }
}

// WithDescription attaches a human-readable summary, surfaced in the
// Capabilities JSON's "description" field.
func WithDescription(d string) EndpointOption {
	return func(e *Endpoint) { e.Description = d }
}

// WithGroup tags the endpoint with a logical grouping name, typically
// set by (*App).Group for every endpoint registered within its callback.
func WithGroup(g string) EndpointOption {
	return func(e *Endpoint) { e.Group = g }
}

// WithAliases attaches alternate invocation names surfaced in the
// Capabilities JSON.
func WithAliases(aliases ...string) EndpointOption {
	return func(e *Endpoint) { e.Aliases = append(e.Aliases, aliases...) }
}

// WithMetadata merges a single key/value pair into the endpoint's free-
// form metadata map.
func WithMetadata(key, value string) EndpointOption {
	return func(e *Endpoint) {
		if e.Metadata == nil {
			e.Metadata = map[string]string{}
		}
		e.Metadata[key] = value
	}
}

// AsQuery marks the endpoint as safe to retry / side-effect-free.
func AsQuery() EndpointOption { return func(e *Endpoint) { e.MessageType = MessageQuery } }

// AsCommand marks the endpoint as mutating and not safe to retry blindly.
func AsCommand() EndpointOption { return func(e *Endpoint) { e.MessageType = MessageCommand } }

// AsIdempotentCommand marks the endpoint as mutating but safe to retry
// (repeated invocation with the same arguments has the same effect as
// one invocation).
func AsIdempotentCommand() EndpointOption {
	return func(e *Endpoint) { e.MessageType = MessageIdempotentCommand }
}

// NewEndpoint builds an Endpoint from a compiled route, its handler, and
// optional metadata. MessageType defaults to MessageUnspecified.
func NewEndpoint(route *CompiledRoute, handler Handler, opts ...EndpointOption) *Endpoint {
	e := &Endpoint{
		Route:       route,
		Handler:     handler,
		MessageType: MessageUnspecified,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
