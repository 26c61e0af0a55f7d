package stdlib

import (
	"testing"

	"github.com/meschsystems/jyro/compile"
	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/link"
	"github.com/meschsystems/jyro/parse"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/value"
	"github.com/stretchr/testify/require"
)

// run parses and executes src against data using the full stdlib
// registry, the same shape exec's own tests use but wired through
// Signatures()/Implementations() instead of a hand-built table.
func run(t *testing.T, src string, data value.Value) *value.Value {
	t.Helper()
	block, err := parse.Parse(src)
	require.NoError(t, err)

	table := link.NewBuiltinTable(Signatures())
	linker := link.New(table, nil)
	diags := linker.Link(block)
	for _, d := range diags {
		require.NotEqual(t, "error", d.Severity.String(), "unexpected link diagnostic: %+v", d)
	}

	program := compile.Compile(block, table)
	ex := exec.New(program, Implementations(nil), nil)
	rc := runtime.NewContext(nil, runtime.Limits{}, nil)
	defer rc.Close()

	outcome, rerr := ex.Run(data, rc)
	require.Nil(t, rerr, "unexpected runtime error: %+v", rerr)
	return &outcome.Result
}

func TestArrayBuiltins(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return Append(Reverse([1, 2, 3]), Length("hello"))`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, value.Number(3), arr.Elements[0])
	require.Equal(t, value.Number(5), arr.Elements[3])
}

func TestContainsAndIndexOf(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return [Contains([1, 2, 3], 2), IndexOf([1, 2, 3], 9)]`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, value.True, arr.Elements[0])
	require.Equal(t, value.Number(-1), arr.Elements[1])
}

func TestSortByAscending(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return SortBy([3, 1, 2], x => x)`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, value.Number(1), arr.Elements[0])
	require.Equal(t, value.Number(2), arr.Elements[1])
	require.Equal(t, value.Number(3), arr.Elements[2])
}

func TestHigherOrderCombinators(t *testing.T) {
	data := value.NewObject()
	result := run(t, `
		var doubled = Map([1, 2, 3], x => x * 2)
		var evens = Where(doubled, x => x % 4 == 0)
		return Reduce(evens, (acc, x) => acc + x, 0)
	`, data)
	require.Equal(t, value.Number(4), *result)
}

func TestMathAggregation(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return [Min([3, 1, 2]), Max([3, 1, 2]), Sum([1, 2, 3]), Avg([2, 4])]`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, value.Number(1), arr.Elements[0])
	require.Equal(t, value.Number(3), arr.Elements[1])
	require.Equal(t, value.Number(6), arr.Elements[2])
	require.Equal(t, value.Number(3), arr.Elements[3])
}

func TestStringManipulation(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return Upper(Trim(" hello "))`, data)
	require.Equal(t, value.Str("HELLO"), *result)
}

func TestPadding(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return [PadLeft("7", 3, "0"), PadRight("ab", 5, "-")]`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, value.Str("007"), arr.Elements[0])
	require.Equal(t, value.Str("ab---"), arr.Elements[1])
}

func TestRegexMatchAndReplace(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return [Match("hello123", "[0-9]+"), ReplaceMatch("a1b2", "[0-9]", "#")]`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, value.True, arr.Elements[0])
	require.Equal(t, value.Str("a#b#"), arr.Elements[1])
}

func TestDateComponentAndDiff(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return [
		DateComponent("2024-03-15T00:00:00Z", "year"),
		DateDiff("2024-03-15T00:00:00Z", "2024-03-16T00:00:00Z", "days")
	]`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, value.Number(2024), arr.Elements[0])
	require.Equal(t, value.Number(1), arr.Elements[1])
}

func TestHasFields(t *testing.T) {
	data := value.NewObject()
	data.Set("user", func() value.Value {
		u := value.NewObject()
		u.Set("name", value.Str("ada"))
		return u
	}())
	result := run(t, `return HasFields(data.user, ["name", "email"])`, data)
	require.Equal(t, value.False, *result)
}

func TestUtilityBuiltins(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return [
		TypeOf([1, 2]),
		DeepEqual([1, 2], [1, 2]),
		Coalesce([null, null, 5]),
		ToBase64("hi"),
		FromBase64(ToBase64("hi"))
	]`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, value.Str("Array"), arr.Elements[0])
	require.Equal(t, value.True, arr.Elements[1])
	require.Equal(t, value.Number(5), arr.Elements[2])
	require.Equal(t, value.Str("aGk="), arr.Elements[3])
	require.Equal(t, value.Str("hi"), arr.Elements[4])
}

func TestJSONRoundTrip(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return FromJson(ToJson({a: 1, b: [true, null]}))`, data)
	obj := (*result).(*value.Object)
	a, _ := obj.Get("a")
	require.Equal(t, value.Number(1), a)
}

func TestDiffReportsChanges(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return Diff({a: 1}, {a: 2})`, data)
	arr := (*result).(*value.Array)
	require.Equal(t, 1, arr.Len())
	entry := arr.Elements[0].(*value.Object)
	op, _ := entry.Get("op")
	require.Equal(t, value.Str("changed"), op)
}

func TestRandomIntWithinRange(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return RandomInt(1, 1)`, data)
	require.Equal(t, value.Number(1), *result)
}

func TestNewGuidFormat(t *testing.T) {
	data := value.NewObject()
	result := run(t, `return Length(NewGuid())`, data)
	require.Equal(t, value.Number(36), *result)
}
