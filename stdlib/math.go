// Math and math-aggregation builtins (§4.6). Grounded on no specific
// teacher file — these are thin wrappers over the standard library's
// math package, which is the correct "no suitable third-party library"
// case: nothing in the domain stack covers scalar arithmetic helpers,
// and reaching for one would be adding a dependency with no concern to
// serve.
package stdlib

import (
	"math"

	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

func init() {
	unary := func(name string, fn func(float64) float64) {
		register(sig.Signature{
			Name:       name,
			Params:     []sig.Param{{Name: "n", Type: sig.Of(value.TypeNumber), Required: true}},
			ReturnType: sig.Of(value.TypeNumber),
		}, func(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
			n, err := wantNumber(name, args[0])
			if err != nil {
				return nil, err
			}
			return value.Number(fn(n)), nil
		})
	}
	unary("Abs", math.Abs)
	unary("Ceil", math.Ceil)
	unary("Floor", math.Floor)
	unary("Round", math.Round)
	unary("Sqrt", math.Sqrt)

	register(sig.Signature{
		Name: "Pow",
		Params: []sig.Param{
			{Name: "base", Type: sig.Of(value.TypeNumber), Required: true},
			{Name: "exp", Type: sig.Of(value.TypeNumber), Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinPow)

	register(sig.Signature{
		Name: "Min",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinMin)

	register(sig.Signature{
		Name: "Max",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinMax)

	register(sig.Signature{
		Name: "Sum",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinSum)

	register(sig.Signature{
		Name: "Avg",
		Params: []sig.Param{
			{Name: "arr", Type: sig.Of(value.TypeArray), Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinAvg)
}

func builtinPow(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	base, err := wantNumber("Pow", args[0])
	if err != nil {
		return nil, err
	}
	exp, err := wantNumber("Pow", args[1])
	if err != nil {
		return nil, err
	}
	return value.Number(math.Pow(base, exp)), nil
}

func numericElements(fn string, a exec.Arg) ([]float64, error) {
	arr, err := wantArray(fn, a)
	if err != nil {
		return nil, err
	}
	if arr.Len() == 0 {
		return nil, invalidArg(fn, "array must not be empty")
	}
	out := make([]float64, arr.Len())
	for i, el := range arr.Elements {
		n, ok := el.(value.Number)
		if !ok {
			return nil, invalidArg(fn, "array must contain only Numbers")
		}
		out[i] = float64(n)
	}
	return out, nil
}

func builtinMin(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	nums, err := numericElements("Min", args[0])
	if err != nil {
		return nil, err
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n < m {
			m = n
		}
	}
	return value.Number(m), nil
}

func builtinMax(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	nums, err := numericElements("Max", args[0])
	if err != nil {
		return nil, err
	}
	m := nums[0]
	for _, n := range nums[1:] {
		if n > m {
			m = n
		}
	}
	return value.Number(m), nil
}

func builtinSum(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	nums, err := numericElements("Sum", args[0])
	if err != nil {
		return nil, err
	}
	var total float64
	for _, n := range nums {
		total += n
	}
	return value.Number(total), nil
}

func builtinAvg(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	nums, err := numericElements("Avg", args[0])
	if err != nil {
		return nil, err
	}
	var total float64
	for _, n := range nums {
		total += n
	}
	return value.Number(total / float64(len(nums))), nil
}
