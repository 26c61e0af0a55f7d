package exec

import (
	"log/slog"

	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/compile"
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/value"
)

// Outcome is the result of a successful (non-failing) run: the final
// `data` value (or the value a `return` carried) and, if `return` set
// one, a completion message. A `fail` never yields an Outcome.
type Outcome struct {
	Result               value.Value
	CompletionMessage    string
	HasCompletionMessage bool
}

// Executor evaluates a compile.Program against an input Value, per
// §4.4.
type Executor struct {
	program  *compile.Program
	builtins BuiltinTable
	logger   *slog.Logger
}

// New builds an Executor bound to program and builtins (the merged
// standard-library-plus-host implementation table, keyed the same way
// as program.Functions). A nil logger defaults to slog.Default().
func New(program *compile.Program, builtins BuiltinTable, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{program: program, builtins: builtins, logger: logger.With(slog.String("component", "exec"))}
}

// Run evaluates the program against data using rc for resource
// accounting and cancellation. It returns exactly one of: an Outcome
// (normal completion or explicit `return`), or a *diag.Error (a `fail`
// statement, a runtime error, or resource exhaustion/cancellation) —
// §4.4's five termination modes collapse to this pair.
func (ex *Executor) Run(data value.Value, rc *runtime.Context) (*Outcome, *diag.Error) {
	root := NewEnvironment(nil)
	root.Declare("data", &Cell{Value: data})

	err := ex.execBlock(ex.program.Body, root, rc)
	dataCell, _ := root.Lookup("data")

	switch e := err.(type) {
	case nil:
		return &Outcome{Result: dataCell.Value}, nil
	case returnSignal:
		return &Outcome{
			Result:               dataCell.Value,
			CompletionMessage:    e.message,
			HasCompletionMessage: e.hasMessage,
		}, nil
	case failSignal:
		return nil, diag.NewError(diag.ScriptFailure, e.message)
	case breakSignal, continueSignal:
		// validate.Validate rejects this before exec ever runs; reaching
		// here means a caller skipped validation.
		return nil, diag.NewError(diag.RuntimeErrorGeneric, "break/continue outside of a loop reached the executor")
	default:
		if de, ok := err.(*diag.Error); ok {
			return nil, de
		}
		return nil, diag.AsWrappedRuntimeError(err, ast.Position{})
	}
}

// execBlock runs every statement of block in a single scope (the
// caller decides whether that scope is fresh or shared). It stops and
// propagates on the first non-nil error, including control signals.
func (ex *Executor) execBlock(block ast.Block, env *Environment, rc *runtime.Context) error {
	for _, stmt := range block {
		if err := ex.execStmt(stmt, env, rc); err != nil {
			return err
		}
	}
	return nil
}

// execStmt implements §4.3's statement boundary and source-location
// injection contracts: account for one statement before running it,
// and attach this statement's position to any error that escapes
// without one already.
func (ex *Executor) execStmt(stmt ast.Stmt, env *Environment, rc *runtime.Context) error {
	if d := rc.AccountStatement(); d != nil {
		return d
	}
	err := ex.execStmtInner(stmt, env, rc)
	if err == nil {
		return nil
	}
	return wrapLocation(err, stmt.Pos())
}
