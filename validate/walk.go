package validate

import (
	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
)

func (w *walker) declareChecked(name string, pos ast.Position) {
	if reservedNames[name] {
		w.report(diag.ReservedNameCollision, pos, name)
	}
	w.declare(name)
}

func (w *walker) walkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			w.walkExpr(s.Init)
		}
		w.declareChecked(s.Name, s.Pos())

	case *ast.Assignment:
		w.walkExpr(s.Target)
		w.walkExpr(s.Value)

	case *ast.If:
		w.walkExpr(s.Cond)
		w.pushScope()
		w.walkBlock(s.Then)
		w.popScope()
		for _, ei := range s.ElseIfs {
			w.walkExpr(ei.Cond)
			w.pushScope()
			w.walkBlock(ei.Body)
			w.popScope()
		}
		if s.Else != nil {
			w.pushScope()
			w.walkBlock(s.Else)
			w.popScope()
		}

	case *ast.Switch:
		w.walkExpr(s.Scrutinee)
		for _, c := range s.Cases {
			for _, cmp := range c.Comparands {
				w.walkExpr(cmp)
			}
			w.pushScope()
			w.walkBlock(c.Body)
			w.popScope()
		}
		if s.Default != nil {
			w.pushScope()
			w.walkBlock(s.Default)
			w.popScope()
		}

	case *ast.While:
		w.walkExpr(s.Cond)
		w.enterLoop(s.Pos())
		w.pushScope()
		w.walkBlock(s.Body)
		w.popScope()
		w.exitLoop()

	case *ast.For:
		w.walkExpr(s.Start)
		w.walkExpr(s.End)
		if s.Step != nil {
			w.walkExpr(s.Step)
		}
		w.enterLoop(s.Pos())
		w.pushScope()
		w.declareChecked(s.Var, s.Pos())
		w.walkBlock(s.Body)
		w.popScope()
		w.exitLoop()

	case *ast.ForEach:
		w.walkExpr(s.Collection)
		w.enterLoop(s.Pos())
		w.pushScope()
		w.declareChecked(s.Var, s.Pos())
		w.walkBlock(s.Body)
		w.popScope()
		w.exitLoop()

	case *ast.Return:
		if s.Message != nil {
			w.walkExpr(s.Message)
		}

	case *ast.Fail:
		if s.Message != nil {
			w.walkExpr(s.Message)
		}

	case *ast.Break:
		if w.loopDepth == 0 {
			w.report(diag.BreakOutsideLoop, s.Pos())
		}

	case *ast.Continue:
		if w.loopDepth == 0 {
			w.report(diag.ContinueOutsideLoop, s.Pos())
		}

	case *ast.ExprStmt:
		w.walkExpr(s.Expr)
	}
}

func (w *walker) enterLoop(pos ast.Position) {
	w.loopDepth++
	if w.loopDepth > w.opts.MaxLoopNesting && !w.excessFlagged {
		w.report(diag.ExcessiveLoopNesting, pos, w.opts.MaxLoopNesting)
		w.excessFlagged = true
	}
}

func (w *walker) exitLoop() {
	w.loopDepth--
}

func (w *walker) walkExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// no children

	case *ast.Identifier:
		if !w.isDeclared(e.Name) {
			w.report(diag.UndeclaredVariable, e.Pos(), e.Name)
		}

	case *ast.PropertyAccess:
		w.walkExpr(e.Object)

	case *ast.IndexAccess:
		w.walkExpr(e.Collection)
		w.walkExpr(e.Index)

	case *ast.Binary:
		w.walkExpr(e.Left)
		w.walkExpr(e.Right)

	case *ast.Unary:
		w.walkExpr(e.Operand)

	case *ast.TypeTest:
		w.walkExpr(e.Operand)

	case *ast.Call:
		if e.Callee != nil {
			w.walkExpr(e.Callee)
		}
		for _, a := range e.Args {
			// A lambda literal argument introduces its own scope for its
			// parameters; walked here rather than via the generic case so
			// non-lambda arguments don't pay for a scope push.
			if lam, ok := a.(*ast.Lambda); ok {
				w.walkLambda(lam)
				continue
			}
			w.walkExpr(a)
		}

	case *ast.Lambda:
		w.walkLambda(e)

	case *ast.ArrayLit:
		for _, el := range e.Elements {
			w.walkExpr(el)
		}

	case *ast.ObjectLit:
		for _, f := range e.Fields {
			w.walkExpr(f.Value)
		}
	}
}

func (w *walker) walkLambda(lam *ast.Lambda) {
	w.pushScope()
	for _, p := range lam.Params {
		w.declareChecked(p, lam.Pos())
	}
	w.walkExpr(lam.Body)
	w.popScope()
}
