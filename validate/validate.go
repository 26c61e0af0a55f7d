// Package validate implements §4's Validate stage: scope and control-
// flow checks on the AST — undeclared variables, loop statements
// (break/continue) outside any loop, unreachable code after a block's
// terminating statement, reserved-name collisions, and excessive loop
// nesting. It runs after parse and before link, and never raises; it
// only accumulates diag.Diagnostic entries for the host.
package validate

import (
	"log/slog"

	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
)

// DefaultMaxLoopNesting bounds how deeply while/for/foreach may nest
// before ExcessiveLoopNesting is raised. Chosen generously: legitimate
// scripts rarely nest more than a handful of loops, and a very deep
// nest is far more likely a runaway generated script than intentional.
const DefaultMaxLoopNesting = 16

// reservedNames are identifiers a VarDecl or ForEach/For loop variable
// may not shadow: every language keyword plus the ambient root
// identifier `data` every script receives (§1).
var reservedNames = map[string]bool{
	"var": true, "if": true, "else": true, "switch": true, "case": true,
	"default": true, "while": true, "for": true, "foreach": true,
	"from": true, "to": true, "step": true, "ascending": true, "descending": true,
	"in": true, "return": true, "fail": true, "break": true, "continue": true,
	"true": true, "false": true, "null": true,
	"and": true, "or": true, "not": true, "is": true,
	"data": true,
}

// Options configures a Validator. ApplyDefaults/Validate follow the
// teacher's Options-struct convention (cancel.ControllerConfig).
type Options struct {
	MaxLoopNesting int
}

// ApplyDefaults fills zero fields with their defaults.
func (o *Options) ApplyDefaults() {
	if o.MaxLoopNesting <= 0 {
		o.MaxLoopNesting = DefaultMaxLoopNesting
	}
}

// Validate checks o for internal consistency. There is currently
// nothing to reject once defaults are applied; the method exists for
// symmetry with the rest of the module's Options types and to leave
// room for future constraints without changing callers.
func (o Options) Validate() error {
	return nil
}

// Validator walks a parsed ast.Block and accumulates diagnostics.
type Validator struct {
	opts   Options
	logger *slog.Logger
}

// New builds a Validator. A nil logger defaults to slog.Default().
func New(opts Options, logger *slog.Logger) *Validator {
	opts.ApplyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{opts: opts, logger: logger.With(slog.String("component", "validate"))}
}

// scope is one lexical level's set of declared names.
type scope struct {
	names map[string]bool
}

func newScope() *scope { return &scope{names: make(map[string]bool)} }

// walker carries the mutable state threaded through the AST walk: the
// scope stack, the current loop nesting depth, and the accumulated
// diagnostics.
type walker struct {
	opts        Options
	logger      *slog.Logger
	scopes      []*scope
	loopDepth   int
	diagnostics []diag.Diagnostic
	excessFlagged bool
}

// Validate runs every check over block and returns the accumulated
// diagnostics (never nil; empty when the script is clean).
func (v *Validator) Validate(block ast.Block) []diag.Diagnostic {
	w := &walker{opts: v.opts, logger: v.logger}
	w.pushScope()
	w.declare("data")
	w.walkBlock(block)
	w.popScope()
	if w.diagnostics == nil {
		return []diag.Diagnostic{}
	}
	return w.diagnostics
}

func (w *walker) pushScope() {
	w.scopes = append(w.scopes, newScope())
}

func (w *walker) popScope() {
	w.scopes = w.scopes[:len(w.scopes)-1]
}

func (w *walker) declare(name string) {
	w.scopes[len(w.scopes)-1].names[name] = true
}

func (w *walker) isDeclared(name string) bool {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if w.scopes[i].names[name] {
			return true
		}
	}
	return false
}

func (w *walker) report(code diag.Code, pos ast.Position, args ...any) {
	d := diag.New(code, diag.SeverityError, args...)
	d = d.WithLocation(pos)
	w.diagnostics = append(w.diagnostics, d)
}

func (w *walker) reportWarning(code diag.Code, pos ast.Position, args ...any) {
	d := diag.New(code, diag.SeverityWarning, args...)
	d = d.WithLocation(pos)
	w.diagnostics = append(w.diagnostics, d)
}

func isTerminating(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.Return, *ast.Fail, *ast.Break, *ast.Continue:
		return true
	default:
		return false
	}
}

// walkBlock checks for unreachable code (anything after the first
// terminating statement) and walks every statement's own checks.
func (w *walker) walkBlock(block ast.Block) {
	terminated := false
	for _, stmt := range block {
		if terminated {
			w.reportWarning(diag.UnreachableCode, stmt.Pos())
		}
		w.walkStmt(stmt)
		if isTerminating(stmt) {
			terminated = true
		}
	}
}
