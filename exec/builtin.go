package exec

import (
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/value"
)

// Arg is one already-resolved call-site argument handed to a
// BuiltinFunc: either a Value (the ordinary case) or a LambdaHandle
// (for a parameter the linker confirmed is Lambda-typed). §4.6 —
// "implementations receive an argument list of already-evaluated
// Values" — is read as applying per-argument: a Lambda-typed argument
// is resolved to its invocable handle instead of being evaluated, since
// a lambda is not itself a Value.
type Arg struct {
	Value  value.Value
	Lambda *LambdaHandle
}

// IsLambda reports whether this argument is a lambda handle rather than
// a Value.
func (a Arg) IsLambda() bool { return a.Lambda != nil }

// Invoker calls a captured lambda with the given already-evaluated
// arguments, accounting call depth exactly like any other user-visible
// call (§4.6: "each such invocation increments the call-depth
// counter").
type Invoker func(handle *LambdaHandle, args []value.Value) (value.Value, error)

// BuiltinFunc is one standard-library or host function's implementation:
// it receives its already-resolved arguments, an Invoker for calling any
// lambda arguments, and the execution context for cancellation-aware
// blocking work (Sleep) or reading limiter state.
type BuiltinFunc func(args []Arg, invoke Invoker, rc *runtime.Context) (value.Value, error)

// BuiltinTable maps a function name to its implementation. Populated
// from stdlib.Implementations() merged with any host-supplied
// functions, in the same name set link.Table was merged from.
type BuiltinTable map[string]BuiltinFunc
