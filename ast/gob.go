// Gob registration for every concrete Stmt/Expr type, so the artifact
// package can encode a Block (which holds Stmt/Expr interface fields
// throughout) without each node type needing its own encoder.
package ast

import "encoding/gob"

func init() {
	gob.Register(&VarDecl{})
	gob.Register(&Assignment{})
	gob.Register(&If{})
	gob.Register(&Switch{})
	gob.Register(&While{})
	gob.Register(&For{})
	gob.Register(&ForEach{})
	gob.Register(&Return{})
	gob.Register(&Fail{})
	gob.Register(&Break{})
	gob.Register(&Continue{})
	gob.Register(&ExprStmt{})

	gob.Register(&Literal{})
	gob.Register(&Identifier{})
	gob.Register(&PropertyAccess{})
	gob.Register(&IndexAccess{})
	gob.Register(&Binary{})
	gob.Register(&Unary{})
	gob.Register(&TypeTest{})
	gob.Register(&Call{})
	gob.Register(&Lambda{})
	gob.Register(&ArrayLit{})
	gob.Register(&ObjectLit{})
}
