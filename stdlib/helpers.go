package stdlib

import (
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/value"
)

// invalidArg builds a StdlibInvalidArgument domain error naming which
// builtin raised it and why, for the argument-shape problems a
// sig.Signature's arity/lambda checks don't already catch at link time
// (wrong element kind inside an array, an out-of-range numeric
// argument, a malformed pattern string, and so on).
func invalidArg(fn, reason string) error {
	return diag.NewError(diag.StdlibInvalidArgument, fn, reason)
}

func wantArray(fn string, a exec.Arg) (*value.Array, error) {
	arr, ok := a.Value.(*value.Array)
	if !ok {
		return nil, invalidArg(fn, "expected an Array argument")
	}
	return arr, nil
}

func wantString(fn string, a exec.Arg) (string, error) {
	s, ok := a.Value.(value.Str)
	if !ok {
		return "", invalidArg(fn, "expected a String argument")
	}
	return string(s), nil
}

func wantNumber(fn string, a exec.Arg) (float64, error) {
	n, ok := a.Value.(value.Number)
	if !ok {
		return 0, invalidArg(fn, "expected a Number argument")
	}
	return float64(n), nil
}

func wantObject(fn string, a exec.Arg) (*value.Object, error) {
	obj, ok := a.Value.(*value.Object)
	if !ok {
		return nil, invalidArg(fn, "expected an Object argument")
	}
	return obj, nil
}

// invokeOne is the common shape for a higher-order builtin's lambda
// callback: invoke the Lambda-typed argument with exactly one Value and
// return its result.
func invokeOne(invoke exec.Invoker, arg exec.Arg, v value.Value) (value.Value, error) {
	return invoke(arg.Lambda, []value.Value{v})
}
