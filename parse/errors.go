package parse

import (
	"errors"

	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
)

// ErrUnterminatedString, ErrInvalidNumberLiteral and ErrUnexpectedCharacter
// are returned (wrapped into a *SyntaxError) by the lexer; ErrUnexpectedToken and ErrUnexpectedEOF
// by the parser. Grounded on ast.ParseError's sentinel-error convention in
// the teacher repo: a small fixed set of package-level sentinels, wrapped
// with %w and compared via errors.Is.
var (
	ErrUnterminatedString   = errors.New("parse: unterminated string literal")
	ErrInvalidNumberLiteral = errors.New("parse: invalid number literal")
	ErrUnexpectedCharacter  = errors.New("parse: unexpected character")
	ErrUnexpectedToken      = errors.New("parse: unexpected token")
	ErrUnexpectedEOF        = errors.New("parse: unexpected end of input")
)

// SyntaxError is the lexer/parser's single diagnostic shape, mirroring
// diag.Error's (code, args, message, location) structure but kept
// separate since it wraps a Go sentinel rather than carrying a
// value.Reason.
type SyntaxError struct {
	Code     diag.Code
	Position ast.Position
	Wrapped  error
}

func (e *SyntaxError) Error() string {
	return e.Wrapped.Error()
}

func (e *SyntaxError) Unwrap() error {
	return e.Wrapped
}

func newSyntaxError(code diag.Code, pos ast.Position, wrapped error) *SyntaxError {
	return &SyntaxError{Code: code, Position: pos, Wrapped: wrapped}
}

// ToDiagnostic renders a SyntaxError as a diag.Diagnostic for reporting
// alongside validator/linker diagnostics.
func (e *SyntaxError) ToDiagnostic() diag.Diagnostic {
	d := diag.New(e.Code, diag.SeverityError, e.Wrapped.Error())
	return d.WithLocation(e.Position)
}
