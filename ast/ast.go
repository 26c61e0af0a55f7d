// Package ast defines the node types for a validated jyro program: every
// statement and expression the §3 data model and §4.2 grammar name,
// each carrying a source Position. Parsing and lexing are outside this
// module's core scope (SPEC_FULL.md §0.1) — this package only defines
// the tree a conformant parser must produce and that validate/link/
// compile consume.
package ast

import (
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/value"
)

// Position aliases diag.Position so every node can be handed straight to
// a diag.Diagnostic without conversion.
type Position = diag.Position

// Node is implemented by every statement and expression; Pos returns the
// node's source location.
type Node interface {
	Pos() Position
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Block is an ordered sequence of statements making up a lexical scope.
type Block []Stmt

// base embeds a Position and a no-op marker satisfied by concrete node
// types; it exists only to avoid repeating "Pos() Position { return
// n.Position }" on every node.
type base struct {
	Position Position
}

func (b base) Pos() Position { return b.Position }
