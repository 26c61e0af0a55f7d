package parse

import (
	"testing"

	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/value"
	"github.com/stretchr/testify/require"
)

func TestParseReturnPropertyAccess(t *testing.T) {
	block, err := Parse(`return data.name`)
	require.NoError(t, err)
	require.Len(t, block, 1)
	ret, ok := block[0].(*ast.Return)
	require.True(t, ok)
	prop, ok := ret.Message.(*ast.PropertyAccess)
	require.True(t, ok)
	require.Equal(t, "name", prop.Name)
}

func TestParsePlainAssignmentWithArithmetic(t *testing.T) {
	block, err := Parse(`data.n = data.n + 1`)
	require.NoError(t, err)
	require.Len(t, block, 1)
	assign, ok := block[0].(*ast.Assignment)
	require.True(t, ok)
	require.Equal(t, ast.AssignSet, assign.Op)
}

func TestParseForLoopWithStepAndDirection(t *testing.T) {
	src := `for x from 1 to 5 step 1 ascending { data.items = Append(data.items, x) }`
	block, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, block, 1)
	f, ok := block[0].(*ast.For)
	require.True(t, ok)
	require.Equal(t, "x", f.Var)
	require.Equal(t, ast.Ascending, f.Direction)
	require.NotNil(t, f.Step)
	require.Len(t, f.Body, 1)
}

func TestParseVarDeclWithDivision(t *testing.T) {
	block, err := Parse(`var x = 10 / 0`)
	require.NoError(t, err)
	decl, ok := block[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	bin, ok := decl.Init.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, value.OpDiv, bin.Op)
}

func TestParseTypedVarDeclRejectsMismatchAtRuntimeNotParseTime(t *testing.T) {
	block, err := Parse(`var x: Number = "hi"`)
	require.NoError(t, err)
	decl := block[0].(*ast.VarDecl)
	require.True(t, decl.HasTypeHint)
	require.Equal(t, value.TypeNumber, decl.TypeHint)
}

func TestParseIfElseIfElseChain(t *testing.T) {
	src := `
if x < 1 {
	return 1
} else if x < 2 {
	return 2
} else {
	return 3
}`
	block, err := Parse(src)
	require.NoError(t, err)
	ifStmt := block[0].(*ast.If)
	require.Len(t, ifStmt.ElseIfs, 1)
	require.NotNil(t, ifStmt.Else)
}

func TestParseSwitchWithMultipleComparandsAndDefault(t *testing.T) {
	src := `
switch x {
case 1, 2 {
	data.kind = "small"
}
default {
	data.kind = "big"
}
}`
	block, err := Parse(src)
	require.NoError(t, err)
	sw := block[0].(*ast.Switch)
	require.Len(t, sw.Cases, 1)
	require.Len(t, sw.Cases[0].Comparands, 2)
	require.NotNil(t, sw.Default)
}

func TestParseWhileTrueLiteral(t *testing.T) {
	block, err := Parse(`while true { }`)
	require.NoError(t, err)
	w := block[0].(*ast.While)
	lit, ok := w.Cond.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, value.True, lit.Value)
}

func TestParseForEach(t *testing.T) {
	block, err := Parse(`foreach item in data.items { Each(item) }`)
	require.NoError(t, err)
	fe := block[0].(*ast.ForEach)
	require.Equal(t, "item", fe.Var)
}

func TestParseLambdaSingleParam(t *testing.T) {
	block, err := Parse(`data.result = Map(data.items, x => x * 2)`)
	require.NoError(t, err)
	assign := block[0].(*ast.Assignment)
	call := assign.Value.(*ast.Call)
	require.Equal(t, "Map", call.Name)
	lambda, ok := call.Args[1].(*ast.Lambda)
	require.True(t, ok)
	require.Equal(t, []string{"x"}, lambda.Params)
}

func TestParseLambdaMultiParam(t *testing.T) {
	block, err := Parse(`data.total = Reduce(data.items, (acc, x) => acc + x, 0)`)
	require.NoError(t, err)
	assign := block[0].(*ast.Assignment)
	call := assign.Value.(*ast.Call)
	lambda := call.Args[1].(*ast.Lambda)
	require.Equal(t, []string{"acc", "x"}, lambda.Params)
}

func TestParseParenthesizedExpressionIsNotMistakenForLambda(t *testing.T) {
	block, err := Parse(`var x = (1 + 2) * 3`)
	require.NoError(t, err)
	decl := block[0].(*ast.VarDecl)
	bin := decl.Init.(*ast.Binary)
	require.Equal(t, value.OpMul, bin.Op)
}

func TestParseTypeTest(t *testing.T) {
	block, err := Parse(`var ok = data.value is Number`)
	require.NoError(t, err)
	decl := block[0].(*ast.VarDecl)
	tt, ok := decl.Init.(*ast.TypeTest)
	require.True(t, ok)
	require.Equal(t, value.TypeNumber, tt.TypeHint)
}

func TestParseArrayAndObjectLiterals(t *testing.T) {
	block, err := Parse(`var x = {a: 1, b: [1, 2, 3]}`)
	require.NoError(t, err)
	decl := block[0].(*ast.VarDecl)
	obj, ok := decl.Init.(*ast.ObjectLit)
	require.True(t, ok)
	require.Len(t, obj.Fields, 2)
	require.Equal(t, "a", obj.Fields[0].Key)
	arr, ok := obj.Fields[1].Value.(*ast.ArrayLit)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
}

func TestParseNegativeIndexAndOptionalAccess(t *testing.T) {
	block, err := Parse(`var last = data.items[-1]?.name`)
	require.NoError(t, err)
	decl := block[0].(*ast.VarDecl)
	prop := decl.Init.(*ast.PropertyAccess)
	require.True(t, prop.Optional)
	idx, ok := prop.Object.(*ast.IndexAccess)
	require.True(t, ok)
	unary := idx.Index.(*ast.Unary)
	require.Equal(t, value.OpNeg, unary.Op)
}

func TestParseBreakInLoop(t *testing.T) {
	block, err := Parse(`while true { break }`)
	require.NoError(t, err)
	w := block[0].(*ast.While)
	_, ok := w.Body[0].(*ast.Break)
	require.True(t, ok)
}

func TestParseFailWithMessage(t *testing.T) {
	block, err := Parse(`fail "boom"`)
	require.NoError(t, err)
	f := block[0].(*ast.Fail)
	lit := f.Message.(*ast.Literal)
	require.Equal(t, value.Str("boom"), lit.Value)
}

func TestParseUnterminatedStringIsSyntaxError(t *testing.T) {
	_, err := Parse(`var x = "unterminated`)
	require.Error(t, err)
	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
}

func TestParseUnexpectedTokenIsSyntaxError(t *testing.T) {
	_, err := Parse(`var x = ===`)
	require.Error(t, err)
}

func TestParseCompoundOperators(t *testing.T) {
	for _, src := range []string{
		`data.n += 1`, `data.n -= 1`, `data.n *= 2`, `data.n /= 2`, `data.n %= 2`,
	} {
		block, err := Parse(src)
		require.NoError(t, err, src)
		_, ok := block[0].(*ast.Assignment)
		require.True(t, ok, src)
	}
}
