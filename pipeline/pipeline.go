// Package pipeline implements §6's four host entry points by driving
// the module's six stages in order — Parse, Validate, Link, Compile,
// Execute, plus Deserialize for the precompiled-artifact path — never
// letting a stage run past an error-severity diagnostic produced by an
// earlier one (§2). Each stage's wall-clock duration is reported to an
// Options.Stats collector and wrapped in its own OpenTelemetry span.
package pipeline

import (
	"context"
	"fmt"

	"github.com/meschsystems/jyro/artifact"
	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/compile"
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/link"
	"github.com/meschsystems/jyro/parse"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/stdlib"
	"github.com/meschsystems/jyro/validate"
	"github.com/meschsystems/jyro/value"
)

// Diagnostics is the accumulated, non-fatal-until-checked output of a
// compile-time stage. HasErrors distinguishes a clean (warnings-only,
// or empty) list from one the caller must not proceed past.
type Diagnostics []diag.Diagnostic

// HasErrors reports whether any entry is SeverityError, per §2's "no
// stage continues past an error-severity diagnostic in a prior stage."
func (d Diagnostics) HasErrors() bool {
	for _, diagnostic := range d {
		if diagnostic.Severity == diag.SeverityError {
			return true
		}
	}
	return false
}

// Driver bundles the pieces every stage needs: the merged builtin
// table, the resource limits new runtime.Contexts are built with, and
// the observability hooks from Options. Build one Driver per host
// function set and reuse it across compiles/executes.
type Driver struct {
	opts Options
}

// New builds a Driver from opts, applying defaults and validating the
// host function/implementation pairing up front so a misconfigured
// host fails fast rather than on first Compile.
func New(opts Options) (*Driver, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: invalid options: %w", err)
	}
	return &Driver{opts: opts}, nil
}

// WithStats returns a shallow copy of the Driver reporting to stats
// instead of its own Options.Stats, leaving d itself untouched. Used by
// a host that wants a per-request or per-connection stats sink (e.g.
// httpapi's /v1/stream) without reconfiguring the shared Driver.
func (d *Driver) WithStats(stats StatsCollector) *Driver {
	opts := d.opts
	opts.Stats = stats
	return &Driver{opts: opts}
}

func (d *Driver) builtinTable() exec.BuiltinTable {
	stdlibFns := stdlib.Implementations(d.opts.Logger)
	merged := make(exec.BuiltinTable, len(stdlibFns)+len(d.opts.HostBuiltins))
	for name, fn := range stdlibFns {
		merged[name] = fn
	}
	for name, fn := range d.opts.HostBuiltins {
		merged[name] = fn
	}
	return merged
}

func (d *Driver) linkedTable(body ast.Block) (link.Table, Diagnostics) {
	builtinSigs := link.NewBuiltinTable(stdlib.Signatures())
	merged, mergeDiags := link.Merge(builtinSigs, d.opts.HostFunctions, d.opts.Logger)

	linker := link.New(merged, d.opts.Logger)
	linkDiags := linker.Link(body)

	out := make(Diagnostics, 0, len(mergeDiags)+len(linkDiags))
	out = append(out, mergeDiags...)
	out = append(out, linkDiags...)
	return merged, out
}

// Compile implements §6's compile(source, functionTable) entry point:
// Parse, Validate, and Link source in order, stopping at the first
// stage to produce an error-severity diagnostic.
func (d *Driver) Compile(ctx context.Context, source string) (*compile.Program, Diagnostics, error) {
	body, diags, err := d.parseAndValidate(ctx, source)
	if err != nil || diags.HasErrors() {
		return nil, diags, err
	}

	table, linkDiags := d.linkWithTrace(ctx, body)
	diags = append(diags, linkDiags...)
	if diags.HasErrors() {
		return nil, diags, nil
	}

	var program *compile.Program
	_ = traceStage(ctx, d.opts.Tracer, StageCompile, func(context.Context) error {
		return timeStage(d.opts.Stats, StageCompile, func() error {
			program = compile.Compile(body, table)
			return nil
		})
	})
	return program, diags, nil
}

// CompileFromArtifact implements §6's compileFromArtifact(bytes,
// functionTable) entry point: Deserialize the artifact (skipping Parse
// and Validate, which already ran before it was encoded) and re-run
// Link against the driver's current function table, per §4.5/§9's "the
// host function set is not part of the artifact."
func (d *Driver) CompileFromArtifact(ctx context.Context, data []byte) (*compile.Program, Diagnostics, error) {
	var art *artifact.Artifact
	err := traceStage(ctx, d.opts.Tracer, StageDeserialize, func(context.Context) error {
		return timeStage(d.opts.Stats, StageDeserialize, func() error {
			var decodeErr error
			art, decodeErr = artifact.Decode(data)
			return decodeErr
		})
	})
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: decoding artifact: %w", err)
	}

	table, linkDiags := d.linkWithTrace(ctx, art.Body)
	if linkDiags.HasErrors() {
		return nil, linkDiags, nil
	}

	var program *compile.Program
	_ = traceStage(ctx, d.opts.Tracer, StageCompile, func(context.Context) error {
		return timeStage(d.opts.Stats, StageCompile, func() error {
			program = compile.Compile(art.Body, table)
			return nil
		})
	})
	return program, linkDiags, nil
}

// CompileToArtifact implements §6's compileToArtifact(source,
// functionTable) entry point: Parse and Validate source (but
// deliberately not Link — the artifact must not bake in one host's
// function table) and encode the result via the artifact package.
func (d *Driver) CompileToArtifact(ctx context.Context, source string) ([]byte, Diagnostics, error) {
	body, diags, err := d.parseAndValidate(ctx, source)
	if err != nil || diags.HasErrors() {
		return nil, diags, err
	}

	data, encErr := artifact.Encode(source, body)
	if encErr != nil {
		return nil, diags, fmt.Errorf("pipeline: encoding artifact: %w", encErr)
	}
	return data, diags, nil
}

// Execute implements §6's execute(program, inputValue, executionContext)
// entry point. rc is typically built via runtime.NewContext(ctx,
// d.opts.Limits, d.opts.Logger) by the caller, letting one Driver serve
// many concurrently-running executions each with their own Context.
func (d *Driver) Execute(ctx context.Context, program *compile.Program, input value.Value, rc *runtime.Context) (*exec.Outcome, *diag.Error) {
	var outcome *exec.Outcome
	var execErr *diag.Error
	_ = traceStage(ctx, d.opts.Tracer, StageExecute, func(context.Context) error {
		var timingErr error
		_ = timeStage(d.opts.Stats, StageExecute, func() error {
			ex := exec.New(program, d.builtinTable(), d.opts.Logger)
			outcome, execErr = ex.Run(input, rc)
			if execErr != nil {
				timingErr = execErr
			}
			return timingErr
		})
		return timingErr
	})
	return outcome, execErr
}

// NewExecutionContext builds a runtime.Context from the Driver's
// configured Limits, deriving its combined cancellation token from ctx.
// Callers must Close the returned Context once Execute returns.
func (d *Driver) NewExecutionContext(ctx context.Context) *runtime.Context {
	return runtime.NewContext(ctx, d.opts.Limits, d.opts.Logger)
}

func (d *Driver) parseAndValidate(ctx context.Context, source string) (ast.Block, Diagnostics, error) {
	var body ast.Block
	var parseErr error
	_ = traceStage(ctx, d.opts.Tracer, StageParse, func(context.Context) error {
		return timeStage(d.opts.Stats, StageParse, func() error {
			body, parseErr = parse.Parse(source)
			return parseErr
		})
	})
	if parseErr != nil {
		if synErr, ok := parseErr.(*parse.SyntaxError); ok {
			return nil, Diagnostics{synErr.ToDiagnostic()}, nil
		}
		return nil, nil, fmt.Errorf("pipeline: parsing: %w", parseErr)
	}

	var validateDiags []diag.Diagnostic
	_ = traceStage(ctx, d.opts.Tracer, StageValidate, func(context.Context) error {
		return timeStage(d.opts.Stats, StageValidate, func() error {
			validator := validate.New(validate.Options{}, d.opts.Logger)
			validateDiags = validator.Validate(body)
			return nil
		})
	})
	return body, Diagnostics(validateDiags), nil
}

func (d *Driver) linkWithTrace(ctx context.Context, body ast.Block) (link.Table, Diagnostics) {
	var table link.Table
	var diags Diagnostics
	_ = traceStage(ctx, d.opts.Tracer, StageLink, func(context.Context) error {
		return timeStage(d.opts.Stats, StageLink, func() error {
			table, diags = d.linkedTable(body)
			return nil
		})
	})
	return table, diags
}
