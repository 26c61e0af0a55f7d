// Date/time builtins (§4.6): ISO-8601 parse/format, component
// extraction, and arithmetic in named units. Grounded on
// go-openapi/strfmt's DateTime type, which this module's domain stack
// adopts specifically because it owns ISO-8601 parsing/formatting
// end-to-end rather than leaving callers to hand-roll layout strings
// against time.Parse.
package stdlib

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

func init() {
	register(sig.Signature{
		Name:       "Now",
		Params:     nil,
		ReturnType: sig.Of(value.TypeString),
	}, builtinNow)

	register(sig.Signature{
		Name: "ParseDate",
		Params: []sig.Param{
			{Name: "text", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinParseDate)

	register(sig.Signature{
		Name: "DateComponent",
		Params: []sig.Param{
			{Name: "text", Type: sig.Of(value.TypeString), Required: true},
			{Name: "component", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinDateComponent)

	register(sig.Signature{
		Name: "AddDuration",
		Params: []sig.Param{
			{Name: "text", Type: sig.Of(value.TypeString), Required: true},
			{Name: "amount", Type: sig.Of(value.TypeNumber), Required: true},
			{Name: "unit", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeString),
	}, builtinAddDuration)

	register(sig.Signature{
		Name: "DateDiff",
		Params: []sig.Param{
			{Name: "a", Type: sig.Of(value.TypeString), Required: true},
			{Name: "b", Type: sig.Of(value.TypeString), Required: true},
			{Name: "unit", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeNumber),
	}, builtinDateDiff)
}

// Now returns the current instant formatted as RFC 3339 / ISO-8601. It
// is one of the few builtins whose result is inherently
// nondeterministic — scripts that need reproducible runs should treat
// its result as an opaque input, not something to assert an exact value
// against.
func builtinNow(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	return value.Str(strfmt.DateTime(time.Now().UTC()).String()), nil
}

func parseISO(fn, text string) (time.Time, error) {
	dt, err := strfmt.ParseDateTime(text)
	if err != nil {
		return time.Time{}, invalidArg(fn, "not a valid ISO-8601 date-time: "+text)
	}
	return time.Time(dt), nil
}

func builtinParseDate(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("ParseDate", args[0])
	if err != nil {
		return nil, err
	}
	t, err := parseISO("ParseDate", text)
	if err != nil {
		return nil, err
	}
	return value.Str(strfmt.DateTime(t).String()), nil
}

func builtinDateComponent(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("DateComponent", args[0])
	if err != nil {
		return nil, err
	}
	component, err := wantString("DateComponent", args[1])
	if err != nil {
		return nil, err
	}
	t, err := parseISO("DateComponent", text)
	if err != nil {
		return nil, err
	}
	switch component {
	case "year":
		return value.Number(t.Year()), nil
	case "month":
		return value.Number(int(t.Month())), nil
	case "day":
		return value.Number(t.Day()), nil
	case "hour":
		return value.Number(t.Hour()), nil
	case "minute":
		return value.Number(t.Minute()), nil
	case "second":
		return value.Number(t.Second()), nil
	case "weekday":
		return value.Number(int(t.Weekday())), nil
	default:
		return nil, invalidArg("DateComponent", "unknown component "+component)
	}
}

func unitDuration(fn string, amount float64, unit string) (time.Duration, error) {
	switch unit {
	case "seconds":
		return time.Duration(amount * float64(time.Second)), nil
	case "minutes":
		return time.Duration(amount * float64(time.Minute)), nil
	case "hours":
		return time.Duration(amount * float64(time.Hour)), nil
	case "days":
		return time.Duration(amount * float64(24*time.Hour)), nil
	default:
		return 0, invalidArg(fn, "unknown unit "+unit)
	}
}

func builtinAddDuration(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	text, err := wantString("AddDuration", args[0])
	if err != nil {
		return nil, err
	}
	amount, err := wantNumber("AddDuration", args[1])
	if err != nil {
		return nil, err
	}
	unit, err := wantString("AddDuration", args[2])
	if err != nil {
		return nil, err
	}
	t, err := parseISO("AddDuration", text)
	if err != nil {
		return nil, err
	}
	d, err := unitDuration("AddDuration", amount, unit)
	if err != nil {
		return nil, err
	}
	return value.Str(strfmt.DateTime(t.Add(d)).String()), nil
}

func builtinDateDiff(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	aText, err := wantString("DateDiff", args[0])
	if err != nil {
		return nil, err
	}
	bText, err := wantString("DateDiff", args[1])
	if err != nil {
		return nil, err
	}
	unit, err := wantString("DateDiff", args[2])
	if err != nil {
		return nil, err
	}
	a, err := parseISO("DateDiff", aText)
	if err != nil {
		return nil, err
	}
	b, err := parseISO("DateDiff", bText)
	if err != nil {
		return nil, err
	}
	delta := b.Sub(a)
	unitLen, err := unitDuration("DateDiff", 1, unit)
	if err != nil {
		return nil, err
	}
	return value.Number(float64(delta) / float64(unitLen)), nil
}
