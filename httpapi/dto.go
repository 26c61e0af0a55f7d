package httpapi

import (
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/pipeline"
)

// diagnosticDTO is §6's "structured form" of a diagnostic: the wire
// fields plus the lower-cased subsystem name derived from the code
// range.
type diagnosticDTO struct {
	Code      int          `json:"code"`
	Subsystem string       `json:"subsystem"`
	Severity  string       `json:"severity"`
	Message   string       `json:"message"`
	Args      []any        `json:"args,omitempty"`
	Location  *locationDTO `json:"location,omitempty"`
}

type locationDTO struct {
	Line   int `json:"line"`
	Col    int `json:"col"`
	Length int `json:"length"`
}

func toDiagnosticDTO(d diag.Diagnostic) diagnosticDTO {
	out := diagnosticDTO{
		Code:      int(d.Code),
		Subsystem: d.Subsystem(),
		Severity:  d.Severity.String(),
		Message:   d.Message,
		Args:      d.Args,
	}
	if d.HasLocation() {
		out.Location = &locationDTO{Line: d.Location.Line, Col: d.Location.Col, Length: d.Location.Length}
	}
	return out
}

func toDiagnosticDTOs(diags pipeline.Diagnostics) []diagnosticDTO {
	out := make([]diagnosticDTO, len(diags))
	for i, d := range diags {
		out[i] = toDiagnosticDTO(d)
	}
	return out
}

// errorDiagnosticDTO renders a single *diag.Error (the runtime failure
// shape, distinct from the compile-time Diagnostics list) in the same
// wire format.
func errorDiagnosticDTO(e *diag.Error) diagnosticDTO {
	return toDiagnosticDTO(e.Diagnostic)
}
