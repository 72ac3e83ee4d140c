package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuru-cli/nuru/pkg/bind"
	"github.com/nuru-cli/nuru/pkg/dispatch"
	"github.com/nuru-cli/nuru/pkg/pattern"
	"github.com/nuru-cli/nuru/pkg/resolve"
	"github.com/nuru-cli/nuru/pkg/route"
)

func matched(t *testing.T, p string, handler route.Handler, extracted resolve.ExtractedValues) *resolve.Matched {
	t.Helper()
	segs, err := pattern.Parse(p)
	require.NoError(t, err)
	cr := route.Compile(p, segs)
	ep := route.NewEndpoint(cr, handler)
	return &resolve.Matched{Endpoint: ep, Extracted: extracted}
}

func TestDispatchSurfacesHandlerExitCode(t *testing.T) {
	handler := route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
		x, _ := args.Int("x")
		y, _ := args.Int("y")
		return int(x + y), nil
	})
	m := matched(t, "add {x:int} {y:int}", handler, resolve.ExtractedValues{
		"x": {Raw: []string{"2"}, Present: true},
		"y": {Raw: []string{"3"}, Present: true},
	})

	result := dispatch.Dispatch(context.Background(), m, bind.NewRegistry())
	require.NoError(t, result.Err)
	assert.Equal(t, 5, result.ExitCode)
}

func TestDispatchTypeConversionFailureShortCircuits(t *testing.T) {
	called := false
	handler := route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
		called = true
		return 0, nil
	})
	m := matched(t, "add {x:int} {y:int}", handler, resolve.ExtractedValues{
		"x": {Raw: []string{"2"}, Present: true},
		"y": {Raw: []string{"three"}, Present: true},
	})

	result := dispatch.Dispatch(context.Background(), m, bind.NewRegistry())
	require.Error(t, result.Err)
	assert.False(t, called)
	assert.Equal(t, 2, result.ExitCode)
}

func TestDispatchHandlerErrorSurfacesCode(t *testing.T) {
	handler := route.HandlerFunc(func(ctx context.Context, args route.Args) (int, error) {
		return 3, errors.New("boom")
	})
	m := matched(t, "status", handler, resolve.ExtractedValues{})

	result := dispatch.Dispatch(context.Background(), m, bind.NewRegistry())
	require.Error(t, result.Err)
	assert.Equal(t, 3, result.ExitCode)
}
