package ast

import (
	"testing"

	"github.com/meschsystems/jyro/value"
	"github.com/stretchr/testify/require"
)

func TestBlockIsStmtSlice(t *testing.T) {
	block := Block{
		&VarDecl{Name: "x", Init: &Literal{Value: value.Number(1)}},
		&ExprStmt{Expr: &Identifier{Name: "x"}},
	}
	require.Len(t, block, 2)
}

func TestBasePosReturnsPosition(t *testing.T) {
	pos := Position{Line: 3, Col: 7}
	n := &VarDecl{base: base{Position: pos}, Name: "y"}
	require.Equal(t, pos, n.Pos())
}

func TestStmtNodesImplementStmt(t *testing.T) {
	var stmts []Stmt = []Stmt{
		&VarDecl{},
		&Assignment{},
		&If{},
		&Switch{},
		&While{},
		&For{},
		&ForEach{},
		&Return{},
		&Fail{},
		&Break{},
		&Continue{},
		&ExprStmt{},
	}
	require.Len(t, stmts, 12)
	for _, s := range stmts {
		require.NotNil(t, s)
	}
}

func TestExprNodesImplementExpr(t *testing.T) {
	var exprs []Expr = []Expr{
		&Literal{},
		&Identifier{},
		&PropertyAccess{},
		&IndexAccess{},
		&Binary{},
		&Unary{},
		&TypeTest{},
		&Call{},
		&Lambda{},
		&ArrayLit{},
		&ObjectLit{},
	}
	require.Len(t, exprs, 11)
	for _, e := range exprs {
		require.NotNil(t, e)
	}
}

func TestIfElseIfChainShape(t *testing.T) {
	ifStmt := &If{
		Cond: &Literal{Value: value.True},
		Then: Block{&ExprStmt{}},
		ElseIfs: []ElseIf{
			{Cond: &Literal{Value: value.False}, Body: Block{&ExprStmt{}}},
		},
		Else: Block{&ExprStmt{}},
	}
	require.Len(t, ifStmt.ElseIfs, 1)
	require.NotNil(t, ifStmt.Else)
}

func TestSwitchCaseMultipleComparands(t *testing.T) {
	sw := &Switch{
		Scrutinee: &Identifier{Name: "x"},
		Cases: []SwitchCase{
			{Comparands: []Expr{&Literal{Value: value.Number(1)}, &Literal{Value: value.Number(2)}}, Body: Block{}},
		},
	}
	require.Len(t, sw.Cases[0].Comparands, 2)
	require.Nil(t, sw.Default)
}

func TestForDirectionDefaultsToAscending(t *testing.T) {
	f := &For{Var: "i", Start: &Literal{Value: value.Number(0)}, End: &Literal{Value: value.Number(10)}}
	require.Equal(t, Ascending, f.Direction)
	require.Nil(t, f.Step)
}

func TestAssignmentOpValues(t *testing.T) {
	ops := []AssignOp{AssignSet, AssignAddSet, AssignSubSet, AssignMulSet, AssignDivSet, AssignModSet}
	require.Len(t, ops, 6)
	require.Equal(t, AssignOp("+="), AssignAddSet)
}

func TestPropertyAccessOptionalFlag(t *testing.T) {
	p := &PropertyAccess{Object: &Identifier{Name: "obj"}, Name: "field", Optional: true}
	require.True(t, p.Optional)
}

func TestCallCalleeNilForNamedCall(t *testing.T) {
	c := &Call{Name: "Length", Args: []Expr{&Identifier{Name: "arr"}}}
	require.Nil(t, c.Callee)
	require.Equal(t, "Length", c.Name)
}

func TestObjectLitPreservesFieldOrder(t *testing.T) {
	lit := &ObjectLit{Fields: []ObjectField{
		{Key: "b", Value: &Literal{Value: value.Number(2)}},
		{Key: "a", Value: &Literal{Value: value.Number(1)}},
	}}
	require.Equal(t, "b", lit.Fields[0].Key)
	require.Equal(t, "a", lit.Fields[1].Key)
}

func TestLambdaParamsAndExpressionBody(t *testing.T) {
	l := &Lambda{Params: []string{"x", "y"}, Body: &Binary{Op: value.OpAdd, Left: &Identifier{Name: "x"}, Right: &Identifier{Name: "y"}}}
	require.Equal(t, []string{"x", "y"}, l.Params)
	require.NotNil(t, l.Body)
}
