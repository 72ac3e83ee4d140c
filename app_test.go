package nuru_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nuru "github.com/nuru-cli/nuru"
	"github.com/nuru-cli/nuru/pkg/route"
)

func newTestApp() (*nuru.App, *bytes.Buffer, *bytes.Buffer) {
	app := nuru.New("testapp", "1.2.3", "a test application")
	var stdout, stderr bytes.Buffer
	app.Stdout = &stdout
	app.Stderr = &stderr
	return app, &stdout, &stderr
}

func TestRunDispatchesMatchedRoute(t *testing.T) {
	app, stdout, _ := newTestApp()
	app.Map("greet {name}", route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
		name, _ := args.String("name")
		stdout.WriteString("hello " + name)
		return 0, nil
	}))

	code := app.Run(context.Background(), []string{"greet", "world"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello world", stdout.String())
}

func TestRunReturnsArgumentErrorOnNoMatch(t *testing.T) {
	app, _, stderr := newTestApp()
	app.Map("greet {name}", route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
		return 0, nil
	}))

	code := app.Run(context.Background(), []string{"bogus"})
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, stderr.String())
}

func TestRunServesVersionFlag(t *testing.T) {
	app, stdout, _ := newTestApp()
	code := app.Run(context.Background(), []string{"--version"})
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "1.2.3")
}

func TestRunServesCapabilitiesFlag(t *testing.T) {
	app, stdout, _ := newTestApp()
	app.Map("deploy {service}", route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
		return 0, nil
	}), route.WithDescription("deploys a service"), route.AsCommand())

	code := app.Run(context.Background(), []string{"--capabilities"})
	require.Equal(t, 0, code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "testapp", doc["name"])
	commands := doc["commands"].([]any)
	require.Len(t, commands, 1)
}

func TestUserRouteOverridesReservedFlag(t *testing.T) {
	app, stdout, _ := newTestApp()
	app.Map("--version", route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
		stdout.WriteString("custom version handler")
		return 0, nil
	}))

	code := app.Run(context.Background(), []string{"--version"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "custom version handler", stdout.String())
}

func TestGroupTagsEndpointsWithGroupName(t *testing.T) {
	app, stdout, _ := newTestApp()
	app.Group("ops", func(a *nuru.App) {
		a.Map("restart {service}", route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
			return 0, nil
		}))
	})

	code := app.Run(context.Background(), []string{"--capabilities"})
	require.Equal(t, 0, code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	commands := doc["commands"].([]any)
	require.Len(t, commands, 1)
	cmd := commands[0].(map[string]any)
	assert.Equal(t, "ops", cmd["group"])
	assert.Equal(t, "ops restart {service}", cmd["pattern"])
}

func TestGroupDispatchesUnderPrefixedPattern(t *testing.T) {
	app, stdout, _ := newTestApp()
	app.Group("ops", func(a *nuru.App) {
		a.Map("restart {service}", route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
			service, _ := args.String("service")
			stdout.WriteString("restarting " + service)
			return 0, nil
		}))
	})

	code := app.Run(context.Background(), []string{"ops", "restart", "web"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "restarting web", stdout.String())

	code = app.Run(context.Background(), []string{"restart", "web"})
	assert.Equal(t, 2, code)
}
