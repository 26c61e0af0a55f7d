package diag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDefaultTemplate(t *testing.T) {
	msg := Format(InvalidType, "x", "Number", "String")
	require.Equal(t, "variable x expects type Number but received String", msg)
}

func TestFormatUnknownCodeFallsBack(t *testing.T) {
	msg := Format(Code(9999))
	require.Contains(t, msg, "JM9999")
}

func TestTemplateProviderOverridesDefault(t *testing.T) {
	SetTemplateProvider(func(code Code) (string, bool) {
		if code == DivisionByZero {
			return "division par zéro", true
		}
		return "", false
	})
	defer SetTemplateProvider(nil)

	require.Equal(t, "division par zéro", Format(DivisionByZero))
	require.Equal(t, "modulo by zero", Format(ModuloByZero), "absent provider entries fall back to default")
}

func TestErrorLocationAttachedOnceAt(t *testing.T) {
	e := NewError(DivisionByZero)
	require.False(t, e.HasLocation())

	loc := Position{Line: 4, Col: 10}
	e.WithLocation(loc)
	require.True(t, e.HasLocation())
	require.Equal(t, 4, e.Location.Line)

	e.WithLocation(Position{Line: 99, Col: 1})
	require.Equal(t, 4, e.Location.Line, "a location already present must not be overwritten")
}

func TestCodeSubsystem(t *testing.T) {
	require.Equal(t, "resource_limit", StatementLimitExceeded.Subsystem())
	require.Equal(t, "type", InvalidType.Subsystem())
	require.Equal(t, "linker_warning", FunctionOverride.Subsystem())
}

func TestCodeStage(t *testing.T) {
	require.Equal(t, StageRuntime, DivisionByZero.Stage())
	require.Equal(t, StageValidator, UndeclaredVariable.Stage())
}
