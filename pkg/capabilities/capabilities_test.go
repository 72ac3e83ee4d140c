package capabilities_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuru-cli/nuru/pkg/capabilities"
	"github.com/nuru-cli/nuru/pkg/pattern"
	"github.com/nuru-cli/nuru/pkg/route"
)

func noopHandler(ctx context.Context, args route.Args) (int, error) { return 0, nil }

func TestBuildRendersParametersAndOptions(t *testing.T) {
	segs := []pattern.Segment{
		{Kind: pattern.KindLiteral, Literal: "deploy"},
		{Kind: pattern.KindParameter, Name: "service", Type: "string"},
		{Kind: pattern.KindParameter, Name: "extra", CatchAll: true},
		{Kind: pattern.KindOption, LongForm: "tag", ShortForm: "t", ExpectsValue: true, ValueParam: "tag", ValueType: "string"},
		{Kind: pattern.KindOption, LongForm: "force"},
	}
	cr := route.Compile("deploy {service:string} {*extra} --tag,-t {tag:string} --force", segs)
	ep := route.NewEndpoint(cr, route.HandlerFunc(noopHandler),
		route.WithDescription("deploys a service"),
		route.AsCommand(),
		route.WithGroup("ops"),
		route.WithAliases("dep"),
	)

	c := route.NewCollection()
	require.NoError(t, c.Add(ep))
	frozen := c.Freeze()

	doc := capabilities.Build("nuru-example", "1.0.0", "example app", frozen)
	require.Len(t, doc.Commands, 1)

	cmd := doc.Commands[0]
	assert.Equal(t, "deploy {service:string} {*extra} --tag,-t {tag:string} --force", cmd.Pattern)
	assert.Equal(t, "command", cmd.MessageType)
	assert.Equal(t, "ops", cmd.Group)
	assert.Equal(t, []string{"dep"}, cmd.Aliases)
	require.Len(t, cmd.Parameters, 2)
	assert.Equal(t, "service", cmd.Parameters[0].Name)
	assert.True(t, cmd.Parameters[0].Required)
	assert.True(t, cmd.Parameters[1].CatchAll)
	require.Len(t, cmd.Options, 2)
	assert.Equal(t, "tag", cmd.Options[0].Long)
	assert.Equal(t, "bool", cmd.Options[1].Type)

	b, err := capabilities.MarshalIndent(doc)
	require.NoError(t, err)

	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal(b, &roundTrip))
	assert.Equal(t, "nuru-example", roundTrip["name"])
}
