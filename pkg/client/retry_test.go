package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock records requested waits and fires them immediately.
type fakeClock struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (*fakeClock) Now() time.Time { return time.Now() }

func (f *fakeClock) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	f.waits = append(f.waits, d)
	f.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- time.Now()

	return ch
}

func (f *fakeClock) recorded() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]time.Duration(nil), f.waits...)
}

// countingNotifier counts Notify calls.
type countingNotifier struct {
	mu      sync.Mutex
	calls   int
	message string
}

func (n *countingNotifier) Notify(_, message string) {
	n.mu.Lock()
	n.calls++
	n.message = message
	n.mu.Unlock()
}

var errBoom = errors.New("boom")

func TestBackoffDelay(t *testing.T) {
	assert.Equal(t, time.Second, backoffDelay(1))
	assert.Equal(t, 2*time.Second, backoffDelay(2))
	assert.Equal(t, 4*time.Second, backoffDelay(3))
	assert.Equal(t, 5*time.Second, backoffDelay(4))
	assert.Equal(t, 5*time.Second, backoffDelay(10))
}

func TestCallerImmediateSuccessWaitsForNothing(t *testing.T) {
	clock := &fakeClock{}

	caller := NewCaller(func(context.Context) (int, error) {
		return 42, nil
	}, CallerOptions{Clock: clock})

	result, err := caller.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, result)

	assert.Empty(t, clock.recorded())

	state := caller.State()
	require.NotNil(t, state.Data)
	assert.Equal(t, 42, *state.Data)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
}

func TestCallerRetriesThenSucceeds(t *testing.T) {
	clock := &fakeClock{}
	attempts := 0

	caller := NewCaller(func(context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errBoom
		}

		return "ok", nil
	}, CallerOptions{Attempts: 3, Clock: clock})

	result, err := caller.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)

	// Two failures mean two backoff waits: 1s then 2s.
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, clock.recorded())

	state := caller.State()
	require.NotNil(t, state.Data)
	assert.Equal(t, "ok", *state.Data)
	assert.NoError(t, state.Err)
}

func TestCallerExhaustsAttemptsAndNotifiesOnce(t *testing.T) {
	clock := &fakeClock{}
	notifier := &countingNotifier{}
	attempts := 0

	caller := NewCaller(func(context.Context) (int, error) {
		attempts++
		return 0, errBoom
	}, CallerOptions{Attempts: 2, Clock: clock, Notifier: notifier})

	_, err := caller.Execute(context.Background())
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 2, attempts)

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "boom", notifier.message)

	state := caller.State()
	assert.Nil(t, state.Data)
	assert.False(t, state.Loading)
	assert.Error(t, state.Err)
}

func TestCallerCustomErrorMessage(t *testing.T) {
	notifier := &countingNotifier{}

	caller := NewCaller(func(context.Context) (int, error) {
		return 0, errBoom
	}, CallerOptions{Attempts: 1, Notifier: notifier, ErrorMessage: "Failed to load reports"})

	_, err := caller.Execute(context.Background())
	require.Error(t, err)

	assert.Equal(t, "Failed to load reports", notifier.message)
}

func TestCallerDoesNotRetryUnauthorized(t *testing.T) {
	clock := &fakeClock{}
	attempts := 0

	caller := NewCaller(func(context.Context) (int, error) {
		attempts++
		return 0, &Error{Kind: KindUnauthorized, StatusCode: 401, Message: "session expired"}
	}, CallerOptions{Attempts: 3, Clock: clock})

	_, err := caller.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	assert.Equal(t, 1, attempts)
	assert.Empty(t, clock.recorded())
}

func TestCallerDoesNotRetryValidation(t *testing.T) {
	attempts := 0

	caller := NewCaller(func(context.Context) (int, error) {
		attempts++
		return 0, &Error{Kind: KindValidation, Message: "location is required"}
	}, CallerOptions{Attempts: 3, Clock: &fakeClock{}})

	_, err := caller.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestCallerReset(t *testing.T) {
	caller := NewCaller(func(context.Context) (int, error) {
		return 0, errBoom
	}, CallerOptions{Attempts: 1})

	_, _ = caller.Execute(context.Background())
	require.Error(t, caller.State().Err)

	caller.Reset()

	state := caller.State()
	assert.Nil(t, state.Data)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
}

func TestCallerContextCancellationStopsRetries(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	caller := NewCaller(func(context.Context) (int, error) {
		attempts++

		cancel()

		return 0, errBoom
	}, CallerOptions{Attempts: 5, Clock: &fakeClock{}})

	_, err := caller.Execute(ctx)
	require.Error(t, err)
	assert.LessOrEqual(t, attempts, 2)
}
