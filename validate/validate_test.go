package validate

import (
	"testing"

	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/parse"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) []diag.Diagnostic {
	t.Helper()
	block, err := parse.Parse(src)
	require.NoError(t, err)
	v := New(Options{}, nil)
	return v.Validate(block)
}

func TestCleanScriptHasNoDiagnostics(t *testing.T) {
	diags := mustParse(t, `return data.name`)
	require.Empty(t, diags)
}

func TestUndeclaredVariableReported(t *testing.T) {
	diags := mustParse(t, `data.x = y`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.UndeclaredVariable, diags[0].Code)
}

func TestDeclaredVariableIsVisible(t *testing.T) {
	diags := mustParse(t, `
var x = 1
data.y = x`)
	require.Empty(t, diags)
}

func TestBreakOutsideLoopReported(t *testing.T) {
	diags := mustParse(t, `break`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.BreakOutsideLoop, diags[0].Code)
}

func TestContinueOutsideLoopReported(t *testing.T) {
	diags := mustParse(t, `continue`)
	require.Equal(t, diag.ContinueOutsideLoop, diags[0].Code)
}

func TestBreakInsideLoopIsFine(t *testing.T) {
	diags := mustParse(t, `while true { break }`)
	require.Empty(t, diags)
}

func TestUnreachableCodeAfterReturnWarns(t *testing.T) {
	diags := mustParse(t, `
return data
data.x = 1`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.UnreachableCode, diags[0].Code)
	require.Equal(t, diag.SeverityWarning, diags[0].Severity)
}

func TestUnreachableCodeInsideBlockAfterBreak(t *testing.T) {
	diags := mustParse(t, `
while true {
	break
	data.x = 1
}`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.UnreachableCode, diags[0].Code)
}

func TestForLoopVariableScopedToBody(t *testing.T) {
	diags := mustParse(t, `
for i from 1 to 5 { data.x = i }
data.y = i`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.UndeclaredVariable, diags[0].Code)
}

func TestLambdaParamsScopedToBody(t *testing.T) {
	diags := mustParse(t, `data.result = Map(data.items, x => x * 2)`)
	require.Empty(t, diags)
}

func TestReservedNameCollisionOnVarDecl(t *testing.T) {
	diags := mustParse(t, `var data = 1`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.ReservedNameCollision, diags[0].Code)
}

func TestExcessiveLoopNestingFlaggedOnce(t *testing.T) {
	v := New(Options{MaxLoopNesting: 2}, nil)
	block, err := parse.Parse(`
while true {
	while true {
		while true {
			data.x = 1
		}
	}
}`)
	require.NoError(t, err)
	diags := v.Validate(block)
	require.Len(t, diags, 1)
	require.Equal(t, diag.ExcessiveLoopNesting, diags[0].Code)
}

func TestIfElseBranchesHaveIndependentScopes(t *testing.T) {
	diags := mustParse(t, `
if data.flag {
	var x = 1
} else {
	data.y = x
}`)
	require.Len(t, diags, 1)
	require.Equal(t, diag.UndeclaredVariable, diags[0].Code)
}
