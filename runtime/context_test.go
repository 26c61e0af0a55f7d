package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/meschsystems/jyro/diag"
	"github.com/stretchr/testify/require"
)

func TestNoLimitsRunsUnbounded(t *testing.T) {
	c := NewContext(context.Background(), Limits{}, nil)
	defer c.Close()

	for i := 0; i < 10_000; i++ {
		require.Nil(t, c.AccountStatement())
	}
}

func TestStatementLimitExceededRegardlessOfLoopForm(t *testing.T) {
	c := NewContext(context.Background(), Limits{MaxStatements: 100}, nil)
	defer c.Close()

	var breach *diag.Error
	for i := 0; i < 1000; i++ {
		if breach = c.AccountStatement(); breach != nil {
			break
		}
	}
	require.NotNil(t, breach)
	require.Equal(t, diag.StatementLimitExceeded, breach.Code)
	require.EqualValues(t, 100, c.StatementCount())
}

func TestLoopIterationLimitCumulativeAcrossLoops(t *testing.T) {
	c := NewContext(context.Background(), Limits{MaxLoopIterations: 5}, nil)
	defer c.Close()

	for i := 0; i < 3; i++ {
		require.Nil(t, c.AccountLoopIteration())
	}
	// A second, independent loop shares the same cumulative budget.
	require.Nil(t, c.AccountLoopIteration())
	require.Nil(t, c.AccountLoopIteration())
	breach := c.AccountLoopIteration()
	require.NotNil(t, breach)
	require.Equal(t, diag.LoopIterationLimitExceeded, breach.Code)
}

func TestCallDepthDecrementsOnEveryExitPath(t *testing.T) {
	c := NewContext(context.Background(), Limits{MaxCallDepth: 2}, nil)
	defer c.Close()

	exit1, err1 := c.EnterCall()
	require.Nil(t, err1)
	exit2, err2 := c.EnterCall()
	require.Nil(t, err2)
	_, breach := c.EnterCall()
	require.NotNil(t, breach)
	require.Equal(t, diag.CallDepthLimitExceeded, breach.Code)

	// Even the call that breached the ceiling must balance the counter.
	require.EqualValues(t, 3, c.CallDepth())
	exit2()
	exit1()
	require.EqualValues(t, 1, c.CallDepth())
}

func TestExecutionTimeLimitFiresDistinctFromHostCancellation(t *testing.T) {
	c := NewContext(context.Background(), Limits{MaxExecutionTime: 10 * time.Millisecond}, nil)
	defer c.Close()

	<-c.Done()
	breach := c.CancelDiagnostic()
	require.NotNil(t, breach)
	require.Equal(t, diag.ExecutionTimeLimitExceeded, breach.Code)
}

func TestHostCancellationBeforeFirstStatementYieldsCancelledByHost(t *testing.T) {
	hostCtx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewContext(hostCtx, Limits{MaxStatements: 1000}, nil)
	defer c.Close()

	breach := c.AccountStatement()
	require.NotNil(t, breach)
	require.Equal(t, diag.CancelledByHost, breach.Code)
	require.EqualValues(t, 0, c.StatementCount(), "a pre-cancelled context must not account any statement")
}

func TestCompletionMessage(t *testing.T) {
	c := NewContext(context.Background(), Limits{}, nil)
	defer c.Close()

	_, ok := c.CompletionMessage()
	require.False(t, ok)

	c.SetCompletionMessage("done early")
	msg, ok := c.CompletionMessage()
	require.True(t, ok)
	require.Equal(t, "done early", msg)
}

func TestLimitsValidateRejectsNegative(t *testing.T) {
	l := Limits{MaxStatements: -1}
	require.Error(t, l.Validate())

	l = Limits{MaxStatements: 10}
	require.NoError(t, l.Validate())
}
