// Package stdlib implements §4.6's standard-library registry: the
// (name, signature, implementation) triples the linker checks call
// sites against and the executor dispatches through. Each group —
// array, higher-order, math, date/time, schema, regex, string, utility —
// lives in its own file, grounded on a specific third-party library
// named in the module's domain stack.
//
// Grounded on the teacher's config.ToolRegistry (services/trace/config/
// tool_registry.go): a name-keyed registry built once at package init
// and exposed read-only through accessor functions, the same shape used
// here for Signatures()/Implementations().
package stdlib

import (
	"log/slog"

	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/sig"
)

// entry pairs one builtin's signature with its implementation, kept
// together so a single registration call cannot accidentally attach the
// wrong implementation to the wrong signature.
type entry struct {
	signature sig.Signature
	fn        exec.BuiltinFunc
}

// registry accumulates every builtin registered by this package's
// group files via register(), in init().
var registry = map[string]entry{}

// register adds one builtin to the package-wide registry. Called only
// from each group file's init(), never after package initialization —
// the registry is effectively immutable once the program starts, so
// Signatures()/Implementations() need no locking.
func register(s sig.Signature, fn exec.BuiltinFunc) {
	if _, exists := registry[s.Name]; exists {
		panic("stdlib: duplicate builtin registration for " + s.Name)
	}
	registry[s.Name] = entry{signature: s, fn: fn}
}

// Signatures returns every standard-library function's signature, keyed
// by name, for link.NewBuiltinTable.
func Signatures() map[string]sig.Signature {
	out := make(map[string]sig.Signature, len(registry))
	for name, e := range registry {
		out[name] = e.signature
	}
	return out
}

// Implementations returns every standard-library function's
// implementation, keyed by name, for exec.New's BuiltinTable argument.
// logger is threaded into any builtin that logs (currently none do, but
// the parameter mirrors the rest of the module's "every component
// accepts an injected *slog.Logger" convention and keeps the signature
// stable if one ever needs to).
func Implementations(logger *slog.Logger) exec.BuiltinTable {
	if logger == nil {
		logger = slog.Default()
	}
	out := make(exec.BuiltinTable, len(registry))
	for name, e := range registry {
		out[name] = e.fn
	}
	return out
}
