package main

import (
	"fmt"
	"io"

	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/pipeline"
)

// printDiagnostics renders diags one per line as "severity[code] at
// Ln N, Col N: message", colorizing the severity word when color is
// enabled. Diagnostics without a location omit the "at ..." clause.
func printDiagnostics(w io.Writer, diags pipeline.Diagnostics, useColor bool) {
	for _, d := range diags {
		fmt.Fprintln(w, formatDiagnostic(d, useColor))
	}
}

func formatDiagnostic(d diag.Diagnostic, useColor bool) string {
	sev := severityLabel(d.Severity, useColor)
	loc := ""
	if d.HasLocation() {
		loc = " at " + d.Location.String()
	}
	return fmt.Sprintf("%s [%d]%s: %s", sev, d.Code, loc, d.Message)
}

func severityLabel(sev diag.Severity, useColor bool) string {
	switch sev {
	case diag.SeverityError:
		return colorize(useColor, styles.Error, sev.String())
	case diag.SeverityWarning:
		return colorize(useColor, styles.Warning, sev.String())
	default:
		return colorize(useColor, styles.Info, sev.String())
	}
}
