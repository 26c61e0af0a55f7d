package link

import (
	"testing"

	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/parse"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
	"github.com/stretchr/testify/require"
)

func builtins() Table {
	return NewBuiltinTable(map[string]sig.Signature{
		"Append": {
			Name: "Append",
			Params: []sig.Param{
				{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
				{Name: "item", Type: sig.Any, Required: true},
			},
			ReturnType: sig.Of(value.TypeArray),
		},
		"Map": {
			Name: "Map",
			Params: []sig.Param{
				{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
				{Name: "fn", Type: sig.Lambda, Required: true},
			},
			ReturnType: sig.Of(value.TypeArray),
		},
		"Now": {Name: "Now", ReturnType: sig.Of(value.TypeString)},
	})
}

func TestUndefinedFunctionReported(t *testing.T) {
	block, err := parse.Parse(`data.x = Bogus(1)`)
	require.NoError(t, err)
	l := New(builtins(), nil)
	diags := l.Link(block)
	require.Len(t, diags, 1)
	require.Equal(t, diag.UndefinedFunction, diags[0].Code)
}

func TestTooFewArguments(t *testing.T) {
	block, err := parse.Parse(`data.x = Append(data.items)`)
	require.NoError(t, err)
	l := New(builtins(), nil)
	diags := l.Link(block)
	require.Len(t, diags, 1)
	require.Equal(t, diag.TooFewArguments, diags[0].Code)
}

func TestTooManyArguments(t *testing.T) {
	block, err := parse.Parse(`data.x = Now(1, 2)`)
	require.NoError(t, err)
	l := New(builtins(), nil)
	diags := l.Link(block)
	require.Len(t, diags, 1)
	require.Equal(t, diag.TooManyArguments, diags[0].Code)
}

func TestLambdaArgumentExpected(t *testing.T) {
	block, err := parse.Parse(`data.x = Map(data.items, data.notALambda)`)
	require.NoError(t, err)
	l := New(builtins(), nil)
	diags := l.Link(block)
	require.Len(t, diags, 1)
	require.Equal(t, diag.LambdaArgumentExpected, diags[0].Code)
}

func TestValidCallProducesNoDiagnostics(t *testing.T) {
	block, err := parse.Parse(`data.x = Map(data.items, x => x * 2)`)
	require.NoError(t, err)
	l := New(builtins(), nil)
	diags := l.Link(block)
	require.Empty(t, diags)
}

func TestMergeHostOverrideWarns(t *testing.T) {
	host := map[string]sig.Signature{
		"Now": {Name: "Now", ReturnType: sig.Of(value.TypeString)},
	}
	merged, diags := Merge(builtins(), host, nil)
	require.Len(t, diags, 1)
	require.Equal(t, diag.FunctionOverride, diags[0].Code)
	require.Equal(t, diag.SeverityWarning, diags[0].Severity)
	require.Equal(t, SourceHost, merged["Now"].Source)
}

func TestMergeNoOverrideWhenDisjoint(t *testing.T) {
	host := map[string]sig.Signature{
		"HostOnly": {Name: "HostOnly"},
	}
	merged, diags := Merge(builtins(), host, nil)
	require.Empty(t, diags)
	require.Contains(t, merged, "HostOnly")
	require.Equal(t, SourceHost, merged["HostOnly"].Source)
}

func TestCallThroughLambdaLiteralSkipsNameResolution(t *testing.T) {
	block, err := parse.Parse(`data.x = (x => x + 1)(2)`)
	require.NoError(t, err)
	l := New(builtins(), nil)
	diags := l.Link(block)
	require.Empty(t, diags)
}
