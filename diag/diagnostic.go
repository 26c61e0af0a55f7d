package diag

// Diagnostic is the wire format from §6: a code, a severity, a
// pre-formatted English message, the raw positional args used to build
// that message, and an optional source location. Compile-time stages
// (lexer/parser/validator/linker) accumulate Diagnostics into a list;
// the runtime stage raises exactly one, wrapped as an *Error.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Args     []any
	Location *Position
}

// Subsystem returns the lower-cased subsystem name derived from the
// diagnostic's code range, matching the "structured form" in §6.
func (d Diagnostic) Subsystem() string {
	return d.Code.Subsystem()
}

// New builds a Diagnostic using the default English template for code,
// formatting it with args. Use NewLocalized to apply a host-supplied
// template provider instead.
func New(code Code, severity Severity, args ...any) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severity,
		Message:  Format(code, args...),
		Args:     args,
	}
}

// WithLocation returns a copy of d with Location set to loc. It is a
// no-op if d already carries a non-zero location — "errors that already
// carry a location pass through unchanged" (§4.3).
func (d Diagnostic) WithLocation(loc Position) Diagnostic {
	if d.Location != nil && !d.Location.IsZero() {
		return d
	}
	out := d
	l := loc
	out.Location = &l
	return out
}

// HasLocation reports whether d already carries a non-zero source
// location.
func (d Diagnostic) HasLocation() bool {
	return d.Location != nil && !d.Location.IsZero()
}
