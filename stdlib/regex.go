// Regex builtins (§4.6). Grounded on github.com/dlclark/regexp2, chosen
// over the standard library's regexp specifically because it exposes a
// per-call MatchTimeout — every compiled pattern here is given one,
// since an untrusted script's pattern (catastrophic backtracking or
// otherwise) must never be able to stall execution past the sandbox's
// own time budget.
package stdlib

import (
	"time"

	"github.com/dlclark/regexp2"

	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

// regexMatchBudget bounds how long a single regex operation may run
// before it is treated as a runaway pattern, independent of the
// script's overall execution-time limit.
const regexMatchBudget = 250 * time.Millisecond

func init() {
	register(sig.Signature{
		Name: "Match",
		Params: []sig.Param{
			{Name: "text", Type: sig.Of(value.TypeString), Required: true},
			{Name: "pattern", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeBoolean),
	}, builtinMatch)

	register(sig.Signature{
		Name: "FindMatch",
		Params: []sig.Param{
			{Name: "text", Type: sig.Of(value.TypeString), Required: true},
			{Name: "pattern", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinFindMatch)

	register(sig.Signature{
		Name: "ReplaceMatch",
		Params: []sig.Param{
			{Name: "text", Type: sig.Of(value.TypeString), Required: true},
			{Name: "pattern", Type: sig.Of(value.TypeString), Required: true},
			{Name: "replacement", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinReplaceMatch)
}

func compilePattern(fn, pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, invalidArg(fn, "invalid regular expression: "+err.Error())
	}
	re.MatchTimeout = regexMatchBudget
	return re, nil
}

func asRegexTimeout(fn string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(regexp2.MatchTimeoutError); ok {
		return diag.NewError(diag.RegexTimeout, fn)
	}
	return invalidArg(fn, err.Error())
}

func builtinMatch(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("Match", args[0])
	if err != nil {
		return nil, err
	}
	pattern, err := wantString("Match", args[1])
	if err != nil {
		return nil, err
	}
	re, err := compilePattern("Match", pattern)
	if err != nil {
		return nil, err
	}
	ok, err := re.MatchString(text)
	if err != nil {
		return nil, asRegexTimeout("Match", err)
	}
	return value.Bool(ok), nil
}

func builtinFindMatch(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("FindMatch", args[0])
	if err != nil {
		return nil, err
	}
	pattern, err := wantString("FindMatch", args[1])
	if err != nil {
		return nil, err
	}
	re, err := compilePattern("FindMatch", pattern)
	if err != nil {
		return nil, err
	}
	m, err := re.FindStringMatch(text)
	if err != nil {
		return nil, asRegexTimeout("FindMatch", err)
	}
	if m == nil {
		return value.Str(""), nil
	}
	return value.Str(m.String()), nil
}

func builtinReplaceMatch(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("ReplaceMatch", args[0])
	if err != nil {
		return nil, err
	}
	pattern, err := wantString("ReplaceMatch", args[1])
	if err != nil {
		return nil, err
	}
	replacement, err := wantString("ReplaceMatch", args[2])
	if err != nil {
		return nil, err
	}
	re, err := compilePattern("ReplaceMatch", pattern)
	if err != nil {
		return nil, err
	}
	out, err := re.Replace(text, replacement, -1, -1)
	if err != nil {
		return nil, asRegexTimeout("ReplaceMatch", err)
	}
	return value.Str(out), nil
}
