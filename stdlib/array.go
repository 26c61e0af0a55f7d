// Array manipulation builtins (§4.6's "array manipulation" group).
// Grounded on the teacher's convention of small, single-purpose
// registered tools (tool_registry.go's per-tool entries); every
// function here copies its input Array rather than mutating it in
// place, since a Value handed to a builtin may be aliased by more than
// one variable (assignment in this language never deep-copies).
package stdlib

import (
	"sort"

	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

func init() {
	register(sig.Signature{
		Name: "Append",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "item", Type: sig.Any, Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinAppend)

	register(sig.Signature{
		Name: "Length",
		Params: []sig.Param{
			{Name: "v", Type: sig.Any, Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinLength)

	register(sig.Signature{
		Name: "Concat",
		Params: []sig.Param{
			{Name: "a", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "b", Type: sig.Of(value.TypeArray), Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinConcat)

	register(sig.Signature{
		Name: "Slice",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "start", Type: sig.Of(value.TypeNumber), Required: true},
			{Name: "end", Type: sig.Of(value.TypeNumber), Required: false},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinSlice)

	register(sig.Signature{
		Name: "Reverse",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinReverse)

	register(sig.Signature{
		Name: "Contains",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "item", Type: sig.Any, Required: true},
		},
		ReturnType: sig.Of(value.TypeBoolean),
	}, builtinContains)

	register(sig.Signature{
		Name: "IndexOf",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "item", Type: sig.Any, Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinIndexOf)
}

func builtinAppend(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Append", args[0])
	if err != nil {
		return nil, err
	}
	out := append(append([]value.Value(nil), arr.Elements...), args[1].Value)
	return value.NewArray(out...), nil
}

// builtinLength implements §4.6's length over Array, String, and
// Object, since "how many things does this hold" is a natural question
// for all three container-shaped kinds.
func builtinLength(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	switch v := args[0].Value.(type) {
	case *value.Array:
		return value.Number(v.Len()), nil
	case value.Str:
		return value.Number(len([]rune(string(v)))), nil
	case *value.Object:
		return value.Number(v.Len()), nil
	default:
		return nil, invalidArg("Length", "expected an Array, String, or Object argument")
	}
}

func builtinConcat(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	a, err := wantArray("Concat", args[0])
	if err != nil {
		return nil, err
	}
	b, err := wantArray("Concat", args[1])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, a.Len()+b.Len())
	out = append(out, a.Elements...)
	out = append(out, b.Elements...)
	return value.NewArray(out...), nil
}

func builtinSlice(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Slice", args[0])
	if err != nil {
		return nil, err
	}
	start, err := wantNumber("Slice", args[1])
	if err != nil {
		return nil, err
	}
	end := float64(arr.Len())
	if len(args) > 2 {
		end, err = wantNumber("Slice", args[2])
		if err != nil {
			return nil, err
		}
	}
	s, e := int(start), int(end)
	if s < 0 || e > arr.Len() || s > e {
		return nil, invalidArg("Slice", "start/end out of range")
	}
	return value.NewArray(append([]value.Value(nil), arr.Elements[s:e]...)...), nil
}

func builtinReverse(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Reverse", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, arr.Len())
	for i, e := range arr.Elements {
		out[arr.Len()-1-i] = e
	}
	return value.NewArray(out...), nil
}

func builtinContains(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Contains", args[0])
	if err != nil {
		return nil, err
	}
	for _, e := range arr.Elements {
		if value.Equal(e, args[1].Value) {
			return value.True, nil
		}
	}
	return value.False, nil
}

func builtinIndexOf(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("IndexOf", args[0])
	if err != nil {
		return nil, err
	}
	for i, e := range arr.Elements {
		if value.Equal(e, args[1].Value) {
			return value.Number(i), nil
		}
	}
	return value.Number(-1), nil
}

// SortBy lives here rather than higherorder.go's file even though it
// takes a lambda key selector, since its output shape is an Array and
// sort.SliceStable is the array-manipulation concern; Map/Where/etc. in
// higherorder.go are grouped by "invokes a lambda per element" instead.
func init() {
	register(sig.Signature{
		Name: "SortBy",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "keyFn", Type: sig.Lambda, Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinSortBy)
}

func builtinSortBy(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("SortBy", args[0])
	if err != nil {
		return nil, err
	}
	type keyed struct {
		key value.Value
		val value.Value
	}
	keys := make([]keyed, arr.Len())
	for i, el := range arr.Elements {
		k, err := invokeOne(invoke, args[1], el)
		if err != nil {
			return nil, err
		}
		keys[i] = keyed{key: k, val: el}
	}
	var sortErr error
	sort.SliceStable(keys, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		lt, err := value.EvaluateBinary(value.OpLess, keys[i].key, keys[j].key)
		if err != nil {
			sortErr = err
			return false
		}
		return bool(lt.(value.Bool))
	})
	if sortErr != nil {
		return nil, diag.NewError(diag.StdlibInvalidArgument, "SortBy", "key values are not comparable")
	}
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = k.val
	}
	return value.NewArray(out...), nil
}
