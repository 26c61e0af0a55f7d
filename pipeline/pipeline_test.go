package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

func TestCompileAndExecuteHappyPath(t *testing.T) {
	driver, err := New(Options{})
	require.NoError(t, err)

	ctx := context.Background()
	program, diags, err := driver.Compile(ctx, `return data.name`)
	require.NoError(t, err)
	require.False(t, diags.HasErrors())
	require.NotNil(t, program)

	input := value.NewObject()
	input.Set("name", value.Str("jyro"))

	rc := driver.NewExecutionContext(ctx)
	defer rc.Close()

	outcome, rerr := driver.Execute(ctx, program, input, rc)
	require.Nil(t, rerr)
	require.Equal(t, value.Str("jyro"), outcome.Result)
}

func TestCompileReportsSyntaxErrorAsDiagnostic(t *testing.T) {
	driver, err := New(Options{})
	require.NoError(t, err)

	program, diags, err := driver.Compile(context.Background(), `return data.`)
	require.NoError(t, err)
	require.Nil(t, program)
	require.True(t, diags.HasErrors())
}

func TestCompileReportsLinkErrorForUndefinedFunction(t *testing.T) {
	driver, err := New(Options{})
	require.NoError(t, err)

	program, diags, err := driver.Compile(context.Background(), `return definitelyNotARealFunction(data)`)
	require.NoError(t, err)
	require.Nil(t, program)
	require.True(t, diags.HasErrors())
}

func TestCompileToArtifactThenFromArtifactRoundTrips(t *testing.T) {
	driver, err := New(Options{})
	require.NoError(t, err)

	ctx := context.Background()
	data, diags, err := driver.CompileToArtifact(ctx, `return Upper(data.name)`)
	require.NoError(t, err)
	require.False(t, diags.HasErrors())
	require.NotEmpty(t, data)

	program, linkDiags, err := driver.CompileFromArtifact(ctx, data)
	require.NoError(t, err)
	require.False(t, linkDiags.HasErrors())
	require.NotNil(t, program)

	input := value.NewObject()
	input.Set("name", value.Str("jyro"))

	rc := driver.NewExecutionContext(ctx)
	defer rc.Close()

	outcome, rerr := driver.Execute(ctx, program, input, rc)
	require.Nil(t, rerr)
	require.Equal(t, value.Str("JYRO"), outcome.Result)
}

func TestCompileFromArtifactRejectsGarbage(t *testing.T) {
	driver, err := New(Options{})
	require.NoError(t, err)

	_, _, err = driver.CompileFromArtifact(context.Background(), []byte("not an artifact"))
	require.Error(t, err)
}

func TestHostFunctionIsCallableAndOverridesCollector(t *testing.T) {
	greetSig := sig.Signature{
		Name:       "greet",
		Params:     []sig.Param{{Name: "name", Type: sig.Of(value.TypeString), Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}
	greetFn := exec.BuiltinFunc(func(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
		return value.Str("hello, " + string(args[0].Value.(value.Str))), nil
	})

	stats := &recordingStats{}
	driver, err := New(Options{
		HostFunctions: map[string]sig.Signature{"greet": greetSig},
		HostBuiltins:  exec.BuiltinTable{"greet": greetFn},
		Stats:         stats,
	})
	require.NoError(t, err)

	ctx := context.Background()
	program, diags, err := driver.Compile(ctx, `return greet(data.name)`)
	require.NoError(t, err)
	require.False(t, diags.HasErrors())

	input := value.NewObject()
	input.Set("name", value.Str("world"))

	rc := driver.NewExecutionContext(ctx)
	defer rc.Close()

	outcome, rerr := driver.Execute(ctx, program, input, rc)
	require.Nil(t, rerr)
	require.Equal(t, value.Str("hello, world"), outcome.Result)

	require.Contains(t, stats.seen, StageParse)
	require.Contains(t, stats.seen, StageValidate)
	require.Contains(t, stats.seen, StageLink)
	require.Contains(t, stats.seen, StageCompile)
	require.Contains(t, stats.seen, StageExecute)
}

func TestNewRejectsHostFunctionMissingImplementation(t *testing.T) {
	_, err := New(Options{
		HostFunctions: map[string]sig.Signature{"ghost": {Name: "ghost"}},
	})
	require.Error(t, err)
}

func TestNewRejectsInvalidLimits(t *testing.T) {
	_, err := New(Options{
		Limits: runtime.Limits{MaxStatements: -1},
	})
	require.Error(t, err)
}

// recordingStats is a StatsCollector that remembers which stages it
// observed, for asserting the driver instrumented every stage without
// pinning down exact durations.
type recordingStats struct {
	seen []Stage
}

func (r *recordingStats) Record(stage Stage, d time.Duration) {
	r.seen = append(r.seen, stage)
}
