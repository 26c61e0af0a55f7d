// String manipulation and padding builtins (§4.6). Grounded on the
// standard library's strings package — no domain-stack dependency
// covers generic string transforms, so this is a justified
// standard-library concern rather than an omission.
package stdlib

import (
	"strings"

	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

// maxPadLength bounds PadLeft/PadRight so a script can't coerce the
// interpreter into building an arbitrarily large string from a single
// call.
const maxPadLength = 1 << 16

func init() {
	register(sig.Signature{
		Name:       "Upper",
		Params:     []sig.Param{{Name: "s", Type: sig.Of(value.TypeString), Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}, builtinUpper)

	register(sig.Signature{
		Name:       "Lower",
		Params:     []sig.Param{{Name: "s", Type: sig.Of(value.TypeString), Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}, builtinLower)

	register(sig.Signature{
		Name:       "Trim",
		Params:     []sig.Param{{Name: "s", Type: sig.Of(value.TypeString), Required: true}},
		ReturnType: sig.Of(value.TypeString),
	}, builtinTrim)

	register(sig.Signature{
		Name: "Split",
		Params: []sig.Param{
			{Name: "s", Type: sig.Of(value.TypeString), Required: true},
			{Name: "sep", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeArray),
	}, builtinSplit)

	register(sig.Signature{
		Name: "Join",
		Params: []sig.Param{
			{Name: "parts", Type: sig.Of(value.TypeArray), Required: true},
			{Name: "sep", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinJoin)

	register(sig.Signature{
		Name: "Substring",
		Params: []sig.Param{
			{Name: "s", Type: sig.Of(value.TypeString), Required: true},
			{Name: "start", Type: sig.Of(value.TypeNumber), Required: true},
			{Name: "end", Type: sig.Of(value.TypeNumber), Required: false},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinSubstring)

	register(sig.Signature{
		Name: "StringContains",
		Params: []sig.Param{
			{Name: "s", Type: sig.Of(value.TypeString), Required: true},
			{Name: "substr", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeBoolean),
	}, builtinStringContains)

	register(sig.Signature{
		Name: "Replace",
		Params: []sig.Param{
			{Name: "s", Type: sig.Of(value.TypeString), Required: true},
			{Name: "old", Type: sig.Of(value.TypeString), Required: true},
			{Name: "new", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinReplace)

	register(sig.Signature{
		Name: "PadLeft",
		Params: []sig.Param{
			{Name: "s", Type: sig.Of(value.TypeString), Required: true},
			{Name: "width", Type: sig.Of(value.TypeNumber), Required: true},
			{Name: "pad", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinPadLeft)

	register(sig.Signature{
		Name: "PadRight",
		Params: []sig.Param{
			{Name: "s", Type: sig.Of(value.TypeString), Required: true},
			{Name: "width", Type: sig.Of(value.TypeNumber), Required: true},
			{Name: "pad", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinPadRight)
}

func builtinUpper(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, err := wantString("Upper", args[0])
	if err != nil {
		return nil, err
	}
	return value.Str(strings.ToUpper(s)), nil
}

func builtinLower(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, err := wantString("Lower", args[0])
	if err != nil {
		return nil, err
	}
	return value.Str(strings.ToLower(s)), nil
}

func builtinTrim(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, err := wantString("Trim", args[0])
	if err != nil {
		return nil, err
	}
	return value.Str(strings.TrimSpace(s)), nil
}

func builtinSplit(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, err := wantString("Split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := wantString("Split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.Str(p)
	}
	return value.NewArray(out...), nil
}

func builtinJoin(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	parts, err := wantArray("Join", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := wantString("Join", args[1])
	if err != nil {
		return nil, err
	}
	strs := make([]string, parts.Len())
	for i, el := range parts.Elements {
		s, ok := el.(value.Str)
		if !ok {
			return nil, invalidArg("Join", "parts array must contain only Strings")
		}
		strs[i] = string(s)
	}
	return value.Str(strings.Join(strs, sep)), nil
}

func builtinSubstring(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, err := wantString("Substring", args[0])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	startN, err := wantNumber("Substring", args[1])
	if err != nil {
		return nil, err
	}
	end := len(runes)
	if len(args) > 2 {
		endN, err := wantNumber("Substring", args[2])
		if err != nil {
			return nil, err
		}
		end = int(endN)
	}
	start := int(startN)
	if start < 0 || end > len(runes) || start > end {
		return nil, invalidArg("Substring", "start/end out of range")
	}
	return value.Str(string(runes[start:end])), nil
}

func builtinStringContains(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, err := wantString("StringContains", args[0])
	if err != nil {
		return nil, err
	}
	substr, err := wantString("StringContains", args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(strings.Contains(s, substr)), nil
}

func builtinReplace(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, err := wantString("Replace", args[0])
	if err != nil {
		return nil, err
	}
	old, err := wantString("Replace", args[1])
	if err != nil {
		return nil, err
	}
	new_, err := wantString("Replace", args[2])
	if err != nil {
		return nil, err
	}
	return value.Str(strings.ReplaceAll(s, old, new_)), nil
}

func padArgs(fn string, args []exec.Arg) (s string, width int, pad string, err error) {
	s, err = wantString(fn, args[0])
	if err != nil {
		return
	}
	w, err := wantNumber(fn, args[1])
	if err != nil {
		return
	}
	pad, err = wantString(fn, args[2])
	if err != nil {
		return
	}
	if pad == "" {
		err = invalidArg(fn, "pad string must not be empty")
		return
	}
	width = int(w)
	if width < 0 || width > maxPadLength {
		err = invalidArg(fn, "width out of range")
		return
	}
	return
}

// fillRunes builds exactly n runes by repeating pad, truncating the
// final repetition to fit.
func fillRunes(pad string, n int) []rune {
	padRunes := []rune(pad)
	out := make([]rune, 0, n)
	for len(out) < n {
		out = append(out, padRunes...)
	}
	return out[:n]
}

func builtinPadLeft(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, width, pad, err := padArgs("PadLeft", args)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if len(runes) >= width {
		return value.Str(s), nil
	}
	fill := fillRunes(pad, width-len(runes))
	return value.Str(string(fill) + s), nil
}

func builtinPadRight(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	s, width, pad, err := padArgs("PadRight", args)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if len(runes) >= width {
		return value.Str(s), nil
	}
	fill := fillRunes(pad, width-len(runes))
	return value.Str(s + string(fill)), nil
}
