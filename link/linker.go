package link

import (
	"log/slog"

	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
)

// Linker walks a validated AST and resolves every call site against a
// merged Table, per §4.5's four-step procedure.
type Linker struct {
	table  Table
	logger *slog.Logger
}

// New builds a Linker bound to table. A nil logger defaults to
// slog.Default().
func New(table Table, logger *slog.Logger) *Linker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Linker{table: table, logger: logger.With(slog.String("component", "link"))}
}

// Link resolves every call expression in block and returns accumulated
// diagnostics (never nil). Error-severity entries mean the program must
// not proceed to compile.
func (l *Linker) Link(block ast.Block) []diag.Diagnostic {
	var diags []diag.Diagnostic
	walkBlockCalls(block, func(call *ast.Call) {
		diags = append(diags, l.checkCall(call)...)
	})
	if diags == nil {
		return []diag.Diagnostic{}
	}
	return diags
}

func (l *Linker) checkCall(call *ast.Call) []diag.Diagnostic {
	// A call through a first-class lambda value (Callee set) has no name
	// to resolve and no declared signature to check arity against — the
	// executor enforces arity against the lambda's own parameter list at
	// call time instead.
	if call.Callee != nil {
		return nil
	}

	entry, ok := l.table[call.Name]
	if !ok {
		return []diag.Diagnostic{diag.New(diag.UndefinedFunction, diag.SeverityError, call.Name)}
	}

	var diags []diag.Diagnostic
	ok, tooFew, tooMany := entry.Signature.CheckArity(len(call.Args))
	if !ok {
		if tooFew {
			diags = append(diags, diag.New(diag.TooFewArguments, diag.SeverityError,
				call.Name, entry.Signature.MinArity(), len(call.Args)))
		}
		if tooMany {
			diags = append(diags, diag.New(diag.TooManyArguments, diag.SeverityError,
				call.Name, entry.Signature.MaxArity(), len(call.Args)))
		}
		return diags
	}

	for _, idx := range entry.Signature.LambdaParamIndexes() {
		if idx >= len(call.Args) {
			continue
		}
		if _, isLambda := call.Args[idx].(*ast.Lambda); !isLambda {
			diags = append(diags, diag.New(diag.LambdaArgumentExpected, diag.SeverityError,
				call.Name, idx))
		}
	}
	return diags
}

// walkBlockCalls visits every *ast.Call reachable from block, including
// calls nested inside lambda bodies and inside other calls' arguments.
func walkBlockCalls(block ast.Block, visit func(*ast.Call)) {
	for _, stmt := range block {
		walkStmtCalls(stmt, visit)
	}
}

func walkStmtCalls(stmt ast.Stmt, visit func(*ast.Call)) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Init != nil {
			walkExprCalls(s.Init, visit)
		}
	case *ast.Assignment:
		walkExprCalls(s.Target, visit)
		walkExprCalls(s.Value, visit)
	case *ast.If:
		walkExprCalls(s.Cond, visit)
		walkBlockCalls(s.Then, visit)
		for _, ei := range s.ElseIfs {
			walkExprCalls(ei.Cond, visit)
			walkBlockCalls(ei.Body, visit)
		}
		if s.Else != nil {
			walkBlockCalls(s.Else, visit)
		}
	case *ast.Switch:
		walkExprCalls(s.Scrutinee, visit)
		for _, c := range s.Cases {
			for _, cmp := range c.Comparands {
				walkExprCalls(cmp, visit)
			}
			walkBlockCalls(c.Body, visit)
		}
		if s.Default != nil {
			walkBlockCalls(s.Default, visit)
		}
	case *ast.While:
		walkExprCalls(s.Cond, visit)
		walkBlockCalls(s.Body, visit)
	case *ast.For:
		walkExprCalls(s.Start, visit)
		walkExprCalls(s.End, visit)
		if s.Step != nil {
			walkExprCalls(s.Step, visit)
		}
		walkBlockCalls(s.Body, visit)
	case *ast.ForEach:
		walkExprCalls(s.Collection, visit)
		walkBlockCalls(s.Body, visit)
	case *ast.Return:
		if s.Message != nil {
			walkExprCalls(s.Message, visit)
		}
	case *ast.Fail:
		if s.Message != nil {
			walkExprCalls(s.Message, visit)
		}
	case *ast.ExprStmt:
		walkExprCalls(s.Expr, visit)
	}
}

func walkExprCalls(expr ast.Expr, visit func(*ast.Call)) {
	switch e := expr.(type) {
	case *ast.PropertyAccess:
		walkExprCalls(e.Object, visit)
	case *ast.IndexAccess:
		walkExprCalls(e.Collection, visit)
		walkExprCalls(e.Index, visit)
	case *ast.Binary:
		walkExprCalls(e.Left, visit)
		walkExprCalls(e.Right, visit)
	case *ast.Unary:
		walkExprCalls(e.Operand, visit)
	case *ast.TypeTest:
		walkExprCalls(e.Operand, visit)
	case *ast.Call:
		if e.Callee != nil {
			walkExprCalls(e.Callee, visit)
		}
		for _, a := range e.Args {
			walkExprCalls(a, visit)
		}
		visit(e)
	case *ast.Lambda:
		walkExprCalls(e.Body, visit)
	case *ast.ArrayLit:
		for _, el := range e.Elements {
			walkExprCalls(el, visit)
		}
	case *ast.ObjectLit:
		for _, f := range e.Fields {
			walkExprCalls(f.Value, visit)
		}
	}
}
