package ast

import "github.com/meschsystems/jyro/value"

// Literal is a constant Null/Boolean/Number/String/Array/Object value
// written directly in source (array/object literals are assembled from
// ArrayLit/ObjectLit instead — Literal only ever holds a scalar).
type Literal struct {
	base
	Value value.Value
}

func (*Literal) exprNode() {}

// Identifier references a variable bound by VarDecl, For, ForEach, or a
// Lambda parameter.
type Identifier struct {
	base
	Name string
}

func (*Identifier) exprNode() {}

// PropertyAccess reads Object.Name, or Object?.Name if Optional (§3's
// safe-navigation form, short-circuiting to Null when Object is Null).
type PropertyAccess struct {
	base
	Object   Expr
	Name     string
	Optional bool
}

func (*PropertyAccess) exprNode() {}

// IndexAccess reads Collection[Index], with negative indices wrapping
// from the end on read (§3).
type IndexAccess struct {
	base
	Collection Expr
	Index      Expr
}

func (*IndexAccess) exprNode() {}

// Binary applies a value.BinaryOp to Left and Right. Logical and/or are
// represented here too; the compiler is responsible for their
// short-circuit evaluation order, not this node.
type Binary struct {
	base
	Op    value.BinaryOp
	Left  Expr
	Right Expr
}

func (*Binary) exprNode() {}

// Unary applies a value.UnaryOp to Operand.
type Unary struct {
	base
	Op      value.UnaryOp
	Operand Expr
}

func (*Unary) exprNode() {}

// TypeTest evaluates `Operand is TypeHint`, always returning a Boolean
// and never raising (value.Matches is total).
type TypeTest struct {
	base
	Operand  Expr
	TypeHint value.TypeHint
}

func (*TypeTest) exprNode() {}

// Call invokes a named builtin or host function, or a first-class
// Lambda value held in Callee when Callee is non-nil (§3's "lambdas are
// invocable handles, not ordinary values" distinction is enforced by
// link/compile, not by this node's shape).
type Call struct {
	base
	Name   string // the called function's name, resolved by link
	Callee Expr   // non-nil for `(lambdaExpr)(args...)`; nil for a plain `Name(args...)` call
	Args   []Expr
}

func (*Call) exprNode() {}

// Lambda is an inline anonymous function literal: a parameter list and
// a single expression body (§3 — lambdas have no statement body, only
// an expression).
type Lambda struct {
	base
	Params []string
	Body   Expr
}

func (*Lambda) exprNode() {}

// ArrayLit builds a new Array from its Elements, evaluated left to
// right.
type ArrayLit struct {
	base
	Elements []Expr
}

func (*ArrayLit) exprNode() {}

// ObjectField is one key/value pair in an ObjectLit, in source order
// (insertion order is observable — §3).
type ObjectField struct {
	Key   string
	Value Expr
}

// ObjectLit builds a new Object from its Fields, evaluated in source
// order; a later duplicate key overwrites an earlier one but keeps the
// earlier key's position (§3's insertion-order contract).
type ObjectLit struct {
	base
	Fields []ObjectField
}

func (*ObjectLit) exprNode() {}
