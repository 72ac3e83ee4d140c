// Package capabilities renders a route.Frozen collection into a
// stable JSON schema for the reserved --capabilities flag: a
// machine-readable description of every command, intended for
// AI/agent tooling that wants to discover what a nuru application can
// do without parsing --help text.
package capabilities

import (
	"encoding/json"

	"github.com/nuru-cli/nuru/pkg/pattern"
	"github.com/nuru-cli/nuru/pkg/route"
)

// Document is the top-level JSON object.
type Document struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Description string    `json:"description,omitempty"`
	Commands    []Command `json:"commands"`
}

// Command describes one endpoint.
type Command struct {
	Pattern     string      `json:"pattern"`
	Description string      `json:"description,omitempty"`
	MessageType string      `json:"messageType"`
	Parameters  []Parameter `json:"parameters"`
	Options     []Option    `json:"options"`
	Group       string      `json:"group,omitempty"`
	Aliases     []string    `json:"aliases"`
}

// Parameter describes one positional parameter segment.
type Parameter struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	CatchAll bool   `json:"catchAll"`
}

// Option describes one option (flag) segment.
type Option struct {
	Long        string `json:"long"`
	Short       string `json:"short,omitempty"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Repeated    bool   `json:"repeated"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// Build assembles a Document from a frozen collection and the
// application-level name/version/description ('s top-level
// fields, which the core has no opinion on — the caller supplies them).
func Build(name, version, description string, collection *route.Frozen) *Document {
	doc := &Document{
		Name:        name,
		Version:     version,
		Description: description,
		Commands:    make([]Command, 0, collection.Len()),
	}
	for _, ep := range collection.Endpoints() {
		doc.Commands = append(doc.Commands, commandOf(ep))
	}
	return doc
}

func commandOf(ep *route.Endpoint) Command {
	cmd := Command{
		Pattern:     ep.Route.OriginalPattern,
		Description: ep.Description,
		MessageType: string(ep.MessageType),
		Group:       ep.Group,
		Aliases:     append([]string(nil), ep.Aliases...),
		Parameters:  []Parameter{},
		Options:     []Option{},
	}
	if cmd.Aliases == nil {
		cmd.Aliases = []string{}
	}

	for _, seg := range ep.Route.Segments {
		switch seg.Kind {
		case pattern.KindParameter:
			cmd.Parameters = append(cmd.Parameters, Parameter{
				Name:     seg.Name,
				Type:     typeTagOf(seg.Type),
				Required: !seg.Optional && !seg.CatchAll,
				CatchAll: seg.CatchAll,
			})
		case pattern.KindOption:
			cmd.Options = append(cmd.Options, optionOf(seg))
		}
	}
	return cmd
}

func optionOf(seg pattern.Segment) Option {
	opt := Option{
		Long:     seg.LongForm,
		Short:    seg.ShortForm,
		Required: seg.ExpectsValue && !seg.ValueOptional,
		Repeated: seg.Repeated,
	}
	if !seg.ExpectsValue {
		opt.Type = "bool"
		opt.Required = false
		return opt
	}
	opt.Type = typeTagOf(seg.ValueType)
	return opt
}

func typeTagOf(tag string) string {
	if tag == "" {
		return "string"
	}
	return tag
}

// MarshalIndent renders doc as two-space-indented JSON, the form a
// human or an agent reads directly off stdout.
func MarshalIndent(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
