// Package compile implements §4.3's Compile stage. For a tree-walking
// engine (§9 explicitly allows either a tree-walking annotated AST or a
// flat instruction sequence, agnostic so long as the statement/loop/
// call instrumentation contracts of §4.3 are preserved), lowering a
// validated, linked AST mainly means freezing it — together with its
// resolved function table — into an immutable Program the exec package
// can walk. The per-statement, per-loop-iteration, and per-call-depth
// instrumentation §4.3 describes as "woven in" by the compiler is
// honored by exec.Run's per-statement walk rather than by a separate
// bytecode-generation pass; see DESIGN.md for the rationale.
package compile

import (
	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/link"
)

// Program is the executable form produced by Compile: a validated,
// linked top-level block plus the function table calls within it were
// resolved against. It is immutable once built.
type Program struct {
	Body      ast.Block
	Functions link.Table
}

// Compile packages body and functions into a Program ready for
// exec.Run. It does not re-validate or re-link; callers must have
// already run validate.Validate and link.Linker.Link and confirmed no
// Error-severity diagnostic was produced, per §2's "no stage continues
// past an error-severity diagnostic in a prior stage."
func Compile(body ast.Block, functions link.Table) *Program {
	return &Program{Body: body, Functions: functions}
}
