// Utility builtins (§4.6): type introspection, deep clone/equality/diff,
// JSON interchange, UUIDs, coalesce, base64, and sleep. Random number and
// string generation is grounded on crypto/rand rather than math/rand —
// §4.6 requires RandomInt/RandomString/NewGuid to be cryptographically
// secure, since a sandboxed script's random values may end up in a
// security-sensitive place (a token, a tie-break key) the host can't
// audit after the fact.
package stdlib

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

func init() {
	register(sig.Signature{
		Name:       "TypeOf",
		Params:     []sig.Param{{Name: "v", Type: sig.Any, Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}, builtinTypeOf)

	register(sig.Signature{
		Name:       "Clone",
		Params:     []sig.Param{{Name: "v", Type: sig.Any, Required: true}},
		ReturnType: sig.Any,
	}, builtinClone)

	register(sig.Signature{
		Name: "DeepEqual",
		Params: []sig.Param{
			{Name: "a", Type: sig.Any, Required: true},
			{Name: "b", Type: sig.Any, Required: true},
		},
		ReturnType: sig.Of(value.TypeBoolean),
	}, builtinDeepEqual)

	register(sig.Signature{
		Name: "Diff",
		Params: []sig.Param{
			{Name: "a", Type: sig.Any, Required: true},
			{Name: "b", Type: sig.Any, Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinDiff)

	register(sig.Signature{
		Name:       "ToJson",
		Params:     []sig.Param{{Name: "v", Type: sig.Any, Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}, builtinToJSON)

	register(sig.Signature{
		Name:       "FromJson",
		Params:     []sig.Param{{Name: "text", Type: sig.Of(value.TypeString), Required: true}},
		ReturnType: sig.Any,
	}, builtinFromJSON)

	register(sig.Signature{
		Name:       "NewGuid",
		Params:     nil,
		ReturnType: sig.Of(value.TypeString),
	}, builtinNewGuid)

	register(sig.Signature{
		Name:       "Coalesce",
		Params:     []sig.Param{{Name: "values", Type: sig.Of(value.TypeArray), Required: true}},
		ReturnType: sig.Any,
	}, builtinCoalesce)

	register(sig.Signature{
		Name:       "ToBase64",
		Params:     []sig.Param{{Name: "text", Type: sig.Of(value.TypeString), Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}, builtinToBase64)

	register(sig.Signature{
		Name:       "FromBase64",
		Params:     []sig.Param{{Name: "text", Type: sig.Of(value.TypeString), Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}, builtinFromBase64)

	register(sig.Signature{
		Name:       "Sleep",
		Params:     []sig.Param{{Name: "millis", Type: sig.Of(value.TypeNumber), Required: true}},
		ReturnType: sig.Of(value.TypeNull),
	}, builtinSleep)

	register(sig.Signature{
		Name: "RandomInt",
		Params: []sig.Param{
			{Name: "min", Type: sig.Of(value.TypeNumber), Required: true},
			{Name: "max", Type: sig.Of(value.TypeNumber), Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinRandomInt)

	register(sig.Signature{
		Name:       "RandomString",
		Params:     []sig.Param{{Name: "length", Type: sig.Of(value.TypeNumber), Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}, builtinRandomString)
}

func builtinTypeOf(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	return value.Str(value.KindOf(args[0].Value).String()), nil
}

func builtinClone(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	return value.Clone(args[0].Value), nil
}

func builtinDeepEqual(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	return value.Bool(value.Equal(args[0].Value, args[1].Value)), nil
}

func builtinDiff(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	entries := value.Diff(args[0].Value, args[1].Value)
	out := make([]value.Value, len(entries))
	for i, e := range entries {
		obj := value.NewObject()
		obj.Set("path", value.Str(e.Path))
		obj.Set("op", value.Str(string(e.Op)))
		if e.Before != nil {
			obj.Set("before", e.Before)
		} else {
			obj.Set("before", value.Null)
		}
		if e.After != nil {
			obj.Set("after", e.After)
		} else {
			obj.Set("after", value.Null)
		}
		out[i] = obj
	}
	return value.NewArray(out...), nil
}

func builtinToJSON(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	data, err := value.ToJSON(args[0].Value)
	if err != nil {
		return nil, invalidArg("ToJson", err.Error())
	}
	return value.Str(string(data)), nil
}

func builtinFromJSON(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("FromJson", args[0])
	if err != nil {
		return nil, err
	}
	v, err := value.FromJSON([]byte(text))
	if err != nil {
		return nil, invalidArg("FromJson", "not valid JSON: "+err.Error())
	}
	return v, nil
}

func builtinNewGuid(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	return value.Str(uuid.New().String()), nil
}

func builtinCoalesce(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	arr, err := wantArray("Coalesce", args[0])
	if err != nil {
		return nil, err
	}
	for _, v := range arr.Elements {
		if !value.Is(v, value.KindNull) {
			return v, nil
		}
	}
	return value.Null, nil
}

func builtinToBase64(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("ToBase64", args[0])
	if err != nil {
		return nil, err
	}
	return value.Str(base64.StdEncoding.EncodeToString([]byte(text))), nil
}

func builtinFromBase64(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("FromBase64", args[0])
	if err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, invalidArg("FromBase64", "not valid base64: "+err.Error())
	}
	return value.Str(string(data)), nil
}

// Sleep is the one builtin that deliberately blocks; it observes the
// runtime Context's own cancellation so a script that sleeps past the
// host's deadline is interrupted rather than holding the goroutine open.
func builtinSleep(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	millis, err := wantNumber("Sleep", args[0])
	if err != nil {
		return nil, err
	}
	if millis < 0 {
		return nil, invalidArg("Sleep", "millis must not be negative")
	}
	ctx := rc.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	timer := time.NewTimer(time.Duration(millis) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
		return value.Null, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func randomBigInt(fn string, n *big.Int) (*big.Int, error) {
	v, err := rand.Int(rand.Reader, n)
	if err != nil {
		return nil, invalidArg(fn, "failed to generate random value: "+err.Error())
	}
	return v, nil
}

func builtinRandomInt(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	minN, err := wantNumber("RandomInt", args[0])
	if err != nil {
		return nil, err
	}
	maxN, err := wantNumber("RandomInt", args[1])
	if err != nil {
		return nil, err
	}
	min, max := int64(minN), int64(maxN)
	if max < min {
		return nil, invalidArg("RandomInt", "max must not be less than min")
	}
	span := big.NewInt(max - min + 1)
	v, err := randomBigInt("RandomInt", span)
	if err != nil {
		return nil, err
	}
	return value.Number(min + v.Int64()), nil
}

const randomStringAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func builtinRandomString(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	lengthN, err := wantNumber("RandomString", args[0])
	if err != nil {
		return nil, err
	}
	length := int(lengthN)
	if length < 0 || length > maxPadLength {
		return nil, invalidArg("RandomString", "length out of range")
	}
	alphabetLen := big.NewInt(int64(len(randomStringAlphabet)))
	out := make([]byte, length)
	for i := range out {
		v, err := randomBigInt("RandomString", alphabetLen)
		if err != nil {
			return nil, err
		}
		out[i] = randomStringAlphabet[v.Int64()]
	}
	return value.Str(string(out)), nil
}
