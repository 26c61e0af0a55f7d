package diag

import "fmt"

// Error is the single structured domain error that propagates out of the
// executor for any runtime failure: a runtime Diagnostic plus whatever
// location the compiler's per-statement guard attached. It is the only
// mechanism by which a user sees a "Ln N, Col N" pointer (§4.3, §9).
type Error struct {
	Diagnostic
}

// NewError builds a runtime *Error for code with no location yet; the
// compiler's location-tracking wrapper fills one in if the error reaches
// it without one.
func NewError(code Code, args ...any) *Error {
	d := New(code, SeverityError, args...)
	return &Error{Diagnostic: d}
}

// NewErrorAt builds a runtime *Error already carrying a source location,
// e.g. for errors the executor itself can place precisely (a value-model
// failure translated at the statement that raised it).
func NewErrorAt(code Code, loc Position, args ...any) *Error {
	e := NewError(code, args...)
	l := loc
	e.Location = &l
	return e
}

func (e *Error) Error() string {
	if e.HasLocation() {
		return fmt.Sprintf("%s: %s (%s)", codeString(e.Code), e.Message, e.Location.String())
	}
	return fmt.Sprintf("%s: %s", codeString(e.Code), e.Message)
}

func codeString(c Code) string {
	return fmt.Sprintf("JM%04d", int(c))
}

// WithLocation attaches loc to e if e does not already carry a location,
// implementing the compiler's "attach if absent" rule, and returns e for
// chaining.
func (e *Error) WithLocation(loc Position) *Error {
	if e.HasLocation() {
		return e
	}
	l := loc
	e.Location = &l
	return e
}

// AsWrappedRuntimeError wraps an arbitrary non-domain error (one that is
// not already a *diag.Error) as a RuntimeErrorGeneric carrying loc and
// the original message text, per §4.3's "errors that are not of the
// domain-error kind are wrapped as a RuntimeError with the statement's
// position and the original message text."
func AsWrappedRuntimeError(err error, loc Position) *Error {
	if de, ok := err.(*Error); ok {
		return de.WithLocation(loc)
	}
	return NewErrorAt(RuntimeErrorGeneric, loc, err.Error())
}
