// Package runtime implements the execution context and resource limiter
// described in §5: the four opt-in ceilings (MaxStatements,
// MaxLoopIterations, MaxCallDepth, MaxExecutionTime), their linkage to a
// single combined cancellation token, and the per-statement /
// per-loop-iteration / per-call-depth accounting hooks the compiler
// wires in.
//
// Grounded on the teacher's cancel package (services/trace/cancel):
// Context carries the same shape as cancel's baseContext (atomic
// counters, an embedded context.Context/CancelFunc pair, a completion
// message under its own mutex) but is deliberately flattened to one
// type, since a single jyro execution has no session/activity/algorithm
// hierarchy to track — it is one context for one run.
package runtime

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Limits configures the resource limiter's four ceilings. The zero value
// means "no limit" for that dimension; Limits{} as a whole means
// "unbounded" (HasLimits() is false), matching §5's "limits are opt-in."
type Limits struct {
	MaxStatements     int           `validate:"omitempty,gt=0"`
	MaxLoopIterations int           `validate:"omitempty,gt=0"`
	MaxCallDepth      int           `validate:"omitempty,gt=0"`
	MaxExecutionTime  time.Duration `validate:"omitempty,gt=0"`
}

// HasLimits reports whether any ceiling is configured. When false, no
// limiter is installed and the program runs unbounded, per §5.
func (l Limits) HasLimits() bool {
	return l.MaxStatements > 0 || l.MaxLoopIterations > 0 || l.MaxCallDepth > 0 || l.MaxExecutionTime > 0
}

// Validate rejects a Limits with a negative ceiling. Call after
// populating Limits from host-supplied configuration (CLI flags, an
// HTTP request body) and before NewContext.
func (l Limits) Validate() error {
	return structValidator.Struct(l)
}
