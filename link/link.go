// Package link implements §4.5's Link stage: resolving every call
// expression's function name against the merged builtin-plus-host
// function table, checking arity against the resolved signature, and
// enforcing that arguments bound to Lambda-typed parameters are lambda
// literals. Linking happens once per program; a precompiled artifact
// must re-run this stage against the current host's function table
// since the host set is not part of the artifact (§4.5, §9).
package link

import (
	"log/slog"

	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/sig"
)

// Source identifies whether a function-table entry came from the
// standard library or was supplied by the host.
type Source int

const (
	SourceBuiltin Source = iota
	SourceHost
)

// Entry is one resolvable function: its signature plus where it came
// from, so Merge can detect a host function shadowing a builtin.
type Entry struct {
	Signature sig.Signature
	Source    Source
}

// Table maps a function name to its resolved Entry.
type Table map[string]Entry

// NewBuiltinTable builds a Table from the standard library's
// signatures, all tagged SourceBuiltin.
func NewBuiltinTable(signatures map[string]sig.Signature) Table {
	t := make(Table, len(signatures))
	for name, s := range signatures {
		t[name] = Entry{Signature: s, Source: SourceBuiltin}
	}
	return t
}

// Merge combines a builtin table with a host-supplied one. A host
// function sharing a builtin's name wins (§4.5 point 4: "bind the host
// implementation") and produces a non-fatal FunctionOverride warning.
func Merge(builtins Table, host map[string]sig.Signature, logger *slog.Logger) (Table, []diag.Diagnostic) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "link"))

	merged := make(Table, len(builtins)+len(host))
	for name, e := range builtins {
		merged[name] = e
	}
	var diags []diag.Diagnostic
	for name, s := range host {
		if _, exists := merged[name]; exists {
			d := diag.New(diag.FunctionOverride, diag.SeverityWarning, name)
			diags = append(diags, d)
			logger.Warn("host function shadows builtin", slog.String("function", name))
		}
		merged[name] = Entry{Signature: s, Source: SourceHost}
	}
	return merged, diags
}
