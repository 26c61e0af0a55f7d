// Higher-order combinators (§4.6): Map, Where, All, Any, Find, Reduce,
// Each. Every one of these has a Lambda-typed parameter, so the linker
// enforces a lambda literal at the call site, and exec resolves that argument to an invocable LambdaHandle
// before calling in here — these implementations only ever see an
// already-resolved exec.Arg.Lambda, never a raw ast.Lambda.
package stdlib

import (
	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

func init() {
	register(sig.Signature{
		Name: "Map",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "fn", Type: sig.Lambda, Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinMap)

	register(sig.Signature{
		Name: "Where",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "predicate", Type: sig.Lambda, Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinWhere)

	register(sig.Signature{
		Name: "All",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "predicate", Type: sig.Lambda, Required: true},
		},
		ReturnType: sig.Of(value.TypeBoolean),
	}, builtinAll)

	register(sig.Signature{
		Name: "Any",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "predicate", Type: sig.Lambda, Required: true},
		},
		ReturnType: sig.Of(value.TypeBoolean),
	}, builtinAny)

	register(sig.Signature{
		Name: "Find",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "predicate", Type: sig.Lambda, Required: true},
		},
		ReturnType: sig.Any,
	}, builtinFind)

	register(sig.Signature{
		Name: "Reduce",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "fn", Type: sig.Lambda, Required: true},
			{Name: "initial", Type: sig.Any, Required: true},
		},
		ReturnType: sig.Any,
	}, builtinReduce)

	register(sig.Signature{
		Name: "Each",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "fn", Type: sig.Lambda, Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinEach)
}

func builtinMap(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Map", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, arr.Len())
	for i, el := range arr.Elements {
		v, err := invokeOne(invoke, args[1], el)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewArray(out...), nil
}

func builtinWhere(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Where", args[0])
	if err != nil {
		return nil, err
	}
	var out []value.Value
	for _, el := range arr.Elements {
		keep, err := invokeOne(invoke, args[1], el)
		if err != nil {
			return nil, err
		}
		if value.Truthy(keep) {
			out = append(out, el)
		}
	}
	return value.NewArray(out...), nil
}

func builtinAll(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("All", args[0])
	if err != nil {
		return nil, err
	}
	for _, el := range arr.Elements {
		v, err := invokeOne(invoke, args[1], el)
		if err != nil {
			return nil, err
		}
		if !value.Truthy(v) {
			return value.False, nil
		}
	}
	return value.True, nil
}

func builtinAny(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Any", args[0])
	if err != nil {
		return nil, err
	}
	for _, el := range arr.Elements {
		v, err := invokeOne(invoke, args[1], el)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			return value.True, nil
		}
	}
	return value.False, nil
}

func builtinFind(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Find", args[0])
	if err != nil {
		return nil, err
	}
	for _, el := range arr.Elements {
		v, err := invokeOne(invoke, args[1], el)
		if err != nil {
			return nil, err
		}
		if value.Truthy(v) {
			return el, nil
		}
	}
	return value.Null, nil
}

func builtinReduce(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Reduce", args[0])
	if err != nil {
		return nil, err
	}
	acc := args[2].Value
	for _, el := range arr.Elements {
		v, err := invoke(args[1].Lambda, []value.Value{acc, el})
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

// Each invokes fn once per element purely for side effects (a lambda
// cannot itself mutate `data`, but it can invoke another builtin that
// does), returning the original array unchanged so `Each` can still
// appear in an expression position.
func builtinEach(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Each", args[0])
	if err != nil {
		return nil, err
	}
	for _, el := range arr.Elements {
		if _, err := invokeOne(invoke, args[1], el); err != nil {
			return nil, err
		}
	}
	return arr, nil
}
