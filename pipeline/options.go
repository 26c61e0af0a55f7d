package pipeline

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
)

// Options configures a Driver. The zero value is usable: no host
// functions, unbounded execution limits, a discard StatsCollector, the
// global no-op tracer, and slog.Default() — following the module's
// Options{ApplyDefaults, Validate} convention (also used by
// validate.Options; runtime.Limits and artifact.CacheConfig carry only
// Validate) so callers never need a nil check before using an Options
// they built by hand.
type Options struct {
	// Limits bounds a run's statement/loop/call-depth/wall-clock
	// budget. The zero value is unbounded, per §5.
	Limits runtime.Limits

	// HostFunctions are the host's own callable signatures, merged
	// with the standard library at Link time. A name shared with a
	// builtin wins and produces a non-fatal FunctionOverride warning.
	HostFunctions map[string]sig.Signature

	// HostBuiltins supplies the implementations for HostFunctions,
	// merged with the standard library's at Execute time. Every name
	// in HostFunctions must have a matching entry here.
	HostBuiltins exec.BuiltinTable

	Logger *slog.Logger
	Stats  StatsCollector
	Tracer trace.Tracer
}

// ApplyDefaults fills zero fields with their defaults.
func (o *Options) ApplyDefaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Stats == nil {
		o.Stats = NopStats{}
	}
	if o.Tracer == nil {
		o.Tracer = defaultTracer()
	}
}

// Validate checks o for internal consistency: every HostFunctions entry
// must have a matching HostBuiltins implementation, and Limits must
// itself be valid.
func (o Options) Validate() error {
	if err := o.Limits.Validate(); err != nil {
		return err
	}
	for name := range o.HostFunctions {
		if _, ok := o.HostBuiltins[name]; !ok {
			return &MissingHostBuiltinError{Name: name}
		}
	}
	return nil
}

// MissingHostBuiltinError reports a host function declared in
// Options.HostFunctions with no matching Options.HostBuiltins entry.
type MissingHostBuiltinError struct {
	Name string
}

func (e *MissingHostBuiltinError) Error() string {
	return "pipeline: host function " + e.Name + " has a signature but no implementation"
}
