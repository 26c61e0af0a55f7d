package exec

import (
	"testing"

	"github.com/meschsystems/jyro/compile"
	"github.com/meschsystems/jyro/link"
	"github.com/meschsystems/jyro/parse"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
	"github.com/stretchr/testify/require"
)

// run parses src, links it against builtins with no host functions, and
// executes it against data with no resource limits — enough pipeline to
// exercise exec in isolation without pipeline's own wiring.
func run(t *testing.T, src string, data value.Value, builtins BuiltinTable, sigs map[string]sig.Signature) (*Outcome, *Executor) {
	t.Helper()
	block, err := parse.Parse(src)
	require.NoError(t, err)

	table := link.NewBuiltinTable(sigs)
	linker := link.New(table, nil)
	diags := linker.Link(block)
	for _, d := range diags {
		require.NotEqual(t, "error", d.Severity.String(), "unexpected link diagnostic: %+v", d)
	}

	program := compile.Compile(block, table)
	ex := New(program, builtins, nil)
	rc := runtime.NewContext(nil, runtime.Limits{}, nil)
	defer rc.Close()

	outcome, rerr := ex.Run(data, rc)
	require.Nil(t, rerr, "unexpected runtime error: %+v", rerr)
	return outcome, ex
}

func TestReturnPropertyAccess(t *testing.T) {
	data := value.NewObject()
	data.Set("name", value.Str("ada"))

	outcome, _ := run(t, `return data.name`, data, nil, nil)
	require.Equal(t, value.Str("ada"), outcome.Result)
	require.True(t, outcome.HasCompletionMessage)
	require.Equal(t, "ada", outcome.CompletionMessage)
}

func TestIncrementField(t *testing.T) {
	data := value.NewObject()
	data.Set("n", value.Number(1))

	outcome, _ := run(t, `data.n = data.n + 1`, data, nil, nil)
	obj := outcome.Result.(*value.Object)
	n, _ := obj.Get("n")
	require.Equal(t, value.Number(2), n)
}

func TestCompoundAssignment(t *testing.T) {
	data := value.NewObject()
	data.Set("n", value.Number(10))

	outcome, _ := run(t, `data.n -= 3`, data, nil, nil)
	obj := outcome.Result.(*value.Object)
	n, _ := obj.Get("n")
	require.Equal(t, value.Number(7), n)
}

func TestForLoopAppend(t *testing.T) {
	data := value.NewObject()
	data.Set("out", value.NewArray())

	appendSig := sig.Signature{
		Name: "Append",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "item", Type: sig.Any, Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}
	appendFn := func(args []Arg, invoke Invoker, rc *runtime.Context) (value.Value, error) {
		arr := args[0].Value.(*value.Array)
		out := append(append([]value.Value(nil), arr.Elements...), args[1].Value)
		return value.NewArray(out...), nil
	}

	src := `
for i from 0 to 3 {
	data.out = Append(data.out, i)
}
`
	outcome, _ := run(t, src, data, BuiltinTable{"Append": appendFn}, map[string]sig.Signature{"Append": appendSig})
	obj := outcome.Result.(*value.Object)
	out, _ := obj.Get("out")
	arr := out.(*value.Array)
	require.Equal(t, 3, arr.Len())
	require.Equal(t, value.Number(0), arr.Elements[0])
	require.Equal(t, value.Number(1), arr.Elements[1])
	require.Equal(t, value.Number(2), arr.Elements[2])
}

func TestDivisionByZeroCarriesLocation(t *testing.T) {
	data := value.NewObject()
	block, err := parse.Parse("data.x = 1 / 0")
	require.NoError(t, err)

	table := link.NewBuiltinTable(nil)
	program := compile.Compile(block, table)
	ex := New(program, nil, nil)
	rc := runtime.NewContext(nil, runtime.Limits{}, nil)
	defer rc.Close()

	outcome, rerr := ex.Run(data, rc)
	require.Nil(t, outcome)
	require.NotNil(t, rerr)
	require.True(t, rerr.HasLocation())
	require.Equal(t, 1, rerr.Location.Line)
}

func TestMaxStatementsExhaustion(t *testing.T) {
	block, err := parse.Parse(`
var x = 0
x = x + 1
x = x + 1
x = x + 1
`)
	require.NoError(t, err)
	table := link.NewBuiltinTable(nil)
	program := compile.Compile(block, table)
	ex := New(program, nil, nil)
	rc := runtime.NewContext(nil, runtime.Limits{MaxStatements: 2}, nil)
	defer rc.Close()

	outcome, rerr := ex.Run(value.Null, rc)
	require.Nil(t, outcome)
	require.NotNil(t, rerr)
	require.Equal(t, "resource_limit", rerr.Subsystem())
}

func TestTypedVarDeclMismatchFails(t *testing.T) {
	block, err := parse.Parse(`var x: Number = "not a number"`)
	require.NoError(t, err)
	table := link.NewBuiltinTable(nil)
	program := compile.Compile(block, table)
	ex := New(program, nil, nil)
	rc := runtime.NewContext(nil, runtime.Limits{}, nil)
	defer rc.Close()

	outcome, rerr := ex.Run(value.Null, rc)
	require.Nil(t, outcome)
	require.NotNil(t, rerr)
}

func TestFailStatementWithMessage(t *testing.T) {
	block, err := parse.Parse(`fail "bad input"`)
	require.NoError(t, err)
	table := link.NewBuiltinTable(nil)
	program := compile.Compile(block, table)
	ex := New(program, nil, nil)
	rc := runtime.NewContext(nil, runtime.Limits{}, nil)
	defer rc.Close()

	outcome, rerr := ex.Run(value.Null, rc)
	require.Nil(t, outcome)
	require.NotNil(t, rerr)
	require.Contains(t, rerr.Error(), "bad input")
}

func TestBreakExitsLoopEarly(t *testing.T) {
	data := value.NewObject()
	data.Set("n", value.Number(0))

	src := `
for i from 0 to 10 {
	if i == 3 {
		break
	}
	data.n = data.n + 1
}
`
	outcome, _ := run(t, src, data, nil, nil)
	obj := outcome.Result.(*value.Object)
	n, _ := obj.Get("n")
	require.Equal(t, value.Number(3), n)
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	data := value.NewObject()
	data.Set("n", value.Number(0))

	src := `
for i from 0 to 4 {
	if i == 1 {
		continue
	}
	data.n = data.n + 1
}
`
	outcome, _ := run(t, src, data, nil, nil)
	obj := outcome.Result.(*value.Object)
	n, _ := obj.Get("n")
	require.Equal(t, value.Number(3), n)
}

func TestForEachOverObject(t *testing.T) {
	data := value.NewObject()
	src := `
var obj = {a: 1, b: 2}
var total = 0
foreach entry in obj {
	total = total + entry.value
}
data.total = total
`
	outcome, _ := run(t, src, data, nil, nil)
	obj := outcome.Result.(*value.Object)
	total, _ := obj.Get("total")
	require.Equal(t, value.Number(3), total)
}

func TestSwitchFirstMatchWins(t *testing.T) {
	src := `
var x = 2
switch x {
case 1, 2 {
	return "small"
}
default {
	return "large"
}
}
`
	outcome, _ := run(t, src, value.Null, nil, nil)
	require.Equal(t, value.Str("small"), outcome.Result)
}

func TestInlineLambdaInvokedDirectly(t *testing.T) {
	src := `return (x => x + 1)(4)`
	outcome, _ := run(t, src, value.Null, nil, nil)
	require.Equal(t, value.Number(5), outcome.Result)
}

func TestBuiltinInvokesLambdaArgument(t *testing.T) {
	mapSig := sig.Signature{
		Name: "Map",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "fn", Type: sig.Lambda, Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}
	mapFn := func(args []Arg, invoke Invoker, rc *runtime.Context) (value.Value, error) {
		arr := args[0].Value.(*value.Array)
		out := make([]value.Value, arr.Len())
		for i, el := range arr.Elements {
			v, err := invoke(args[1].Lambda, []value.Value{el})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return value.NewArray(out...), nil
	}

	data := value.NewObject()
	data.Set("nums", value.NewArray(value.Number(1), value.Number(2), value.Number(3)))

	src := `data.nums = Map(data.nums, x => x * 2)`
	outcome, _ := run(t, src, data, BuiltinTable{"Map": mapFn}, map[string]sig.Signature{"Map": mapSig})
	obj := outcome.Result.(*value.Object)
	nums, _ := obj.Get("nums")
	arr := nums.(*value.Array)
	require.Equal(t, value.Number(2), arr.Elements[0])
	require.Equal(t, value.Number(4), arr.Elements[1])
	require.Equal(t, value.Number(6), arr.Elements[2])
}
