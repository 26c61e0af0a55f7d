package exec

import (
	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/value"
)

// breakSignal and continueSignal unwind exactly one enclosing loop's
// execBlock/execStmt call chain; validate.Validate already rejects a
// break/continue with no enclosing loop, so the executor never needs to
// defend against one reaching the top level.
type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }

// returnSignal unwinds to the top-level block, carrying the optional
// completion message `return` recorded.
type returnSignal struct {
	message   string
	hasMessage bool
}

func (returnSignal) Error() string { return "return" }

// failSignal is raised by a `fail` statement; it is converted to a
// ScriptFailure diagnostic at the point it is caught.
type failSignal struct {
	message string
}

func (failSignal) Error() string { return "fail" }

// wrapLocation implements §4.3's source-location injection: a control-
// flow signal passes through unchanged (it is not a diagnostic), a
// *diag.Error that already carries a location passes through unchanged,
// and anything else is attached to pos or wrapped as RuntimeErrorGeneric.
func wrapLocation(err error, pos ast.Position) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case breakSignal, continueSignal, returnSignal, failSignal:
		return err
	}
	if opErr, ok := err.(*value.OpError); ok {
		code, ok := diag.CodeForReason(opErr.Reason)
		if !ok {
			code = diag.RuntimeErrorGeneric
		}
		return diag.NewErrorAt(code, pos, opErr.Args...)
	}
	if de, ok := err.(*diag.Error); ok {
		return de.WithLocation(pos)
	}
	return diag.AsWrappedRuntimeError(err, pos)
}
