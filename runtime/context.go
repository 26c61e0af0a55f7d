package runtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/meschsystems/jyro/diag"
)

// errExecutionTimeLimit is the context.Cause installed by the limiter's
// own timer, letting CancelDiagnostic distinguish "the host cancelled
// us" from "our own deadline fired" even though both surface through the
// same combined Done() channel.
var errExecutionTimeLimit = errors.New("jyro: execution time limit exceeded")

// Context is the per-run execution context described in §5: it owns the
// statement/loop-iteration/call-depth counters, the combined
// cancellation token (host token ⊕ the limiter's own timer, linked so
// cancellation of either cancels the combined token), and the
// completion message set by `return`/`fail`.
//
// Thread Safety: a single Context is used by exactly one execution,
// which is itself single-threaded per §5 — the atomics here exist so a
// host observing the context from another goroutine (e.g. to poll
// progress for a UI) never races with the executing goroutine, not to
// support concurrent script execution.
type Context struct {
	limits Limits
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	statements     atomic.Int64
	loopIterations atomic.Int64
	callDepth      atomic.Int64

	messageMu  sync.Mutex
	message    string
	hasMessage bool
}

// NewContext derives a combined cancellation token from parent (the
// host's own token, or context.Background() if the host supplies none)
// and, if limits.MaxExecutionTime is set, starts the limiter's
// auto-cancellation timer on top of it. Callers must call Close when the
// execution finishes to release the derived context's resources.
func NewContext(parent context.Context, limits Limits, logger *slog.Logger) *Context {
	if parent == nil {
		parent = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Context{
		limits: limits,
		logger: logger.With(slog.String("component", "runtime_context")),
	}
	if limits.MaxExecutionTime > 0 {
		ctx, cancel := context.WithTimeoutCause(parent, limits.MaxExecutionTime, errExecutionTimeLimit)
		c.ctx, c.cancel = ctx, cancel
	} else {
		ctx, cancel := context.WithCancel(parent)
		c.ctx, c.cancel = ctx, cancel
	}
	return c
}

// Close releases the combined context's resources. Safe to call more
// than once.
func (c *Context) Close() {
	c.cancel()
}

// Done returns the combined cancellation channel, closed when either the
// host's token or the limiter's own timer fires.
func (c *Context) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Context returns the combined context.Context, passed to blocking
// host-authored builtins (HTTP calls, Sleep) so they observe
// cancellation at their next I/O wait.
func (c *Context) Context() context.Context {
	return c.ctx
}

// CancelDiagnostic returns nil if the combined token has not fired, and
// otherwise the diagnostic identifying why: ExecutionTimeLimitExceeded
// if the limiter's own timer caused it, CancelledByHost otherwise. This
// doubles as the "limiter check... as a cancellation poll" §5 describes
// — every accounting method below calls it first.
func (c *Context) CancelDiagnostic() *diag.Error {
	select {
	case <-c.ctx.Done():
	default:
		return nil
	}
	cause := context.Cause(c.ctx)
	if errors.Is(cause, errExecutionTimeLimit) {
		return diag.NewError(diag.ExecutionTimeLimitExceeded, c.limits.MaxExecutionTime)
	}
	return diag.NewError(diag.CancelledByHost)
}

// AccountStatement implements the statement-boundary contract (§4.3):
// called immediately before a statement's body runs. It polls
// cancellation first, then the MaxStatements ceiling.
func (c *Context) AccountStatement() *diag.Error {
	if d := c.CancelDiagnostic(); d != nil {
		return d
	}
	if c.limits.MaxStatements <= 0 {
		return nil
	}
	if c.statements.Load() >= int64(c.limits.MaxStatements) {
		return diag.NewError(diag.StatementLimitExceeded, c.limits.MaxStatements)
	}
	c.statements.Add(1)
	return nil
}

// AccountLoopIteration implements the loop-iteration boundary contract
// (§4.3): called once per proceeding iteration, cumulative across every
// loop in the execution.
func (c *Context) AccountLoopIteration() *diag.Error {
	if d := c.CancelDiagnostic(); d != nil {
		return d
	}
	if c.limits.MaxLoopIterations <= 0 {
		return nil
	}
	if c.loopIterations.Add(1) > int64(c.limits.MaxLoopIterations) {
		return diag.NewError(diag.LoopIterationLimitExceeded, c.limits.MaxLoopIterations)
	}
	return nil
}

// EnterCall implements the call-depth boundary contract (§4.3): every
// user-visible call (builtin or host) must call EnterCall on entry and
// invoke the returned exit func on every exit path, including errors.
// The depth increment happens even when the ceiling is already breached,
// so the caller's deferred exit still balances the counter.
func (c *Context) EnterCall() (exit func(), breach *diag.Error) {
	depthErr := c.CancelDiagnostic()
	n := c.callDepth.Add(1)
	exit = func() { c.callDepth.Add(-1) }
	if depthErr != nil {
		return exit, depthErr
	}
	if c.limits.MaxCallDepth > 0 && n > int64(c.limits.MaxCallDepth) {
		return exit, diag.NewError(diag.CallDepthLimitExceeded, c.limits.MaxCallDepth)
	}
	return exit, nil
}

// CallDepth returns the current call depth, mainly for tests and for a
// host wanting to surface progress.
func (c *Context) CallDepth() int64 {
	return c.callDepth.Load()
}

// StatementCount returns the number of statements accounted so far.
func (c *Context) StatementCount() int64 {
	return c.statements.Load()
}

// LoopIterationCount returns the number of loop iterations accounted so
// far.
func (c *Context) LoopIterationCount() int64 {
	return c.loopIterations.Load()
}

// SetCompletionMessage records the human-readable message a `return` or
// `fail` statement carried, surfaced to the host alongside the result
// Value (§6 execution context surface).
func (c *Context) SetCompletionMessage(msg string) {
	c.messageMu.Lock()
	defer c.messageMu.Unlock()
	c.message = msg
	c.hasMessage = true
}

// CompletionMessage returns the message set by SetCompletionMessage, if
// any.
func (c *Context) CompletionMessage() (string, bool) {
	c.messageMu.Lock()
	defer c.messageMu.Unlock()
	return c.message, c.hasMessage
}
