package resolve_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuru-cli/nuru/pkg/pattern"
	"github.com/nuru-cli/nuru/pkg/resolve"
	"github.com/nuru-cli/nuru/pkg/route"
)

func build(t *testing.T, patterns ...string) *route.Frozen {
	t.Helper()
	c := route.NewCollection()
	for _, p := range patterns {
		segs, err := pattern.Parse(p)
		require.NoError(t, err)
		cr := route.Compile(p, segs)
		handler := route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) { return 0, nil })
		require.NoError(t, c.Add(route.NewEndpoint(cr, handler)))
	}
	return c.Freeze()
}

func TestResolveTypedPositionals(t *testing.T) {
	frozen := build(t, "add {x:int} {y:int}")
	m, nm := resolve.Resolve([]string{"add", "2", "3"}, frozen)
	require.Nil(t, nm)
	require.NotNil(t, m)
	assert.Equal(t, []string{"2"}, m.Extracted["x"].Raw)
	assert.Equal(t, []string{"3"}, m.Extracted["y"].Raw)
}

func TestResolveOptionBundling(t *testing.T) {
	frozen := build(t, "tar -c -v -f {file}")
	m, nm := resolve.Resolve([]string{"tar", "-cvf", "out.tar"}, frozen)
	require.Nil(t, nm)
	require.NotNil(t, m)
	assert.Equal(t, []string{"true"}, m.Extracted["c"].Raw)
	assert.Equal(t, []string{"true"}, m.Extracted["v"].Raw)
	assert.Equal(t, []string{"out.tar"}, m.Extracted["file"].Raw)
}

func TestResolveEndOfOptions(t *testing.T) {
	frozen := build(t, "grep {pattern} {*files}")
	m, nm := resolve.Resolve([]string{"grep", "--", "-x", "a.txt"}, frozen)
	require.Nil(t, nm)
	require.NotNil(t, m)
	assert.Equal(t, []string{"-x"}, m.Extracted["pattern"].Raw)
	assert.Equal(t, []string{"a.txt"}, m.Extracted["files"].Raw)
}

func TestResolveSpecificityOrdering(t *testing.T) {
	frozen := build(t, "deploy {env}", "deploy prod")

	m, nm := resolve.Resolve([]string{"deploy", "prod"}, frozen)
	require.Nil(t, nm)
	assert.Equal(t, "deploy prod", m.Endpoint.Route.OriginalPattern)

	m, nm = resolve.Resolve([]string{"deploy", "staging"}, frozen)
	require.Nil(t, nm)
	assert.Equal(t, "deploy {env}", m.Endpoint.Route.OriginalPattern)
	assert.Equal(t, []string{"staging"}, m.Extracted["env"].Raw)
}

func TestResolveRepeatedOption(t *testing.T) {
	frozen := build(t, "build --tag,-t {v}*")
	m, nm := resolve.Resolve([]string{"build", "-t", "a", "--tag=b", "-t", "c"}, frozen)
	require.Nil(t, nm)
	require.NotNil(t, m)
	assert.Equal(t, []string{"a", "b", "c"}, m.Extracted["v"].Raw)
}

func TestResolveMissingRequiredOption(t *testing.T) {
	frozen := build(t, "build --tag,-t {v}")
	_, nm := resolve.Resolve([]string{"build"}, frozen)
	require.NotNil(t, nm)
	require.Len(t, nm.Reasons, 1)
}

func TestResolveExtraTokens(t *testing.T) {
	frozen := build(t, "status")
	_, nm := resolve.Resolve([]string{"status", "extra"}, frozen)
	require.NotNil(t, nm)
}

func TestResolveOptionalParameterLeavesEnoughRoomForLaterRequired(t *testing.T) {
	frozen := build(t, "copy {src} {dst?} {mode}")
	m, nm := resolve.Resolve([]string{"copy", "a.txt", "644"}, frozen)
	require.Nil(t, nm)
	require.NotNil(t, m)
	assert.Equal(t, []string{"a.txt"}, m.Extracted["src"].Raw)
	assert.False(t, m.Extracted["dst"].Present)
	assert.Equal(t, []string{"644"}, m.Extracted["mode"].Raw)
	assert.Contains(t, m.DefaultsUsed, "dst")
}

func TestResolveNoMatchSuggestions(t *testing.T) {
	frozen := build(t, "deploy {env}", "status")
	_, nm := resolve.Resolve([]string{"deplyo", "prod"}, frozen)
	require.NotNil(t, nm)
	require.NotEmpty(t, nm.Suggestions)
}
