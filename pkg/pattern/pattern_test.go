package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteralAndParameter(t *testing.T) {
	segs, err := Parse("deploy {env}")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, Segment{Kind: KindLiteral, Literal: "deploy"}, segs[0])
	assert.Equal(t, "env", segs[1].Name)
	assert.False(t, segs[1].Optional)
	assert.False(t, segs[1].CatchAll)
}

func TestParseTypedOptionalParameter(t *testing.T) {
	segs, err := Parse("add {x:int} {y:int?}")
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, "int", segs[1].Type)
	assert.False(t, segs[1].Optional)
	assert.Equal(t, "int", segs[2].Type)
	assert.True(t, segs[2].Optional)
}

func TestParseCatchAll(t *testing.T) {
	segs, err := Parse("grep {pattern} {*files}")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.True(t, segs[1].CatchAll)
	assert.Equal(t, "files", segs[1].Name)
}

func TestCatchAllMustBeLast(t *testing.T) {
	_, err := Parse("cmd {*files} {extra}")
	require.Error(t, err)
	var semErr interface{ ExitCode() int }
	require.ErrorAs(t, err, &semErr)
}

func TestCatchAllNotOptional(t *testing.T) {
	_, err := Parse("cmd {*files?}")
	require.Error(t, err)
}

func TestDuplicateParameterName(t *testing.T) {
	_, err := Parse("cmd {x} {x}")
	require.Error(t, err)
}

func TestParseOptionFlag(t *testing.T) {
	segs, err := Parse("tar -c -v -f {file}")
	require.NoError(t, err)
	require.Len(t, segs, 4)
	assert.Equal(t, KindOption, segs[0].Kind)
	assert.Equal(t, "c", segs[0].LongForm)
	assert.False(t, segs[0].ExpectsValue)
}

func TestParseOptionWithShortAndValue(t *testing.T) {
	segs, err := Parse("build --tag,-t {v}*")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	opt := segs[1]
	assert.Equal(t, "tag", opt.LongForm)
	assert.Equal(t, "t", opt.ShortForm)
	assert.True(t, opt.ExpectsValue)
	assert.Equal(t, "v", opt.ValueParam)
	assert.True(t, opt.Repeated)
}

func TestBadShortForm(t *testing.T) {
	_, err := Parse("cmd --tag,-to {v}")
	require.Error(t, err)
}

func TestDescriptionOnParameter(t *testing.T) {
	segs, err := Parse("greet {name|the person to greet}")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "the person to greet", segs[1].Description)
}

func TestDescriptionOnOption(t *testing.T) {
	segs, err := Parse("build --verbose,-v|enable-verbose-output")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "enable-verbose-output", segs[1].Description)
}

func TestRoundTrip(t *testing.T) {
	patterns := []string{
		"deploy {env}",
		"deploy prod",
		"add {x:int} {y:int}",
		"tar -c -v -f {file}",
		"grep {pattern} {*files}",
		"build --tag,-t {v:string?}*",
		"greet {name|who to greet}",
	}
	for _, p := range patterns {
		segs, err := Parse(p)
		require.NoError(t, err, p)
		rendered := Render(segs)
		segs2, err := Parse(rendered)
		require.NoError(t, err, rendered)
		assert.True(t, Equal(segs, segs2), "round-trip mismatch for %q -> %q", p, rendered)
	}
}

func TestWhitespaceInsideBracesRejected(t *testing.T) {
	_, err := Parse("cmd {na me}")
	require.Error(t, err)
}

func TestUnbalancedBraces(t *testing.T) {
	_, err := Parse("cmd {name")
	require.Error(t, err)
}
