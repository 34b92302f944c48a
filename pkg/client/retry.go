/*
 * Copyright 2025 Skye Pulse.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package client

import (
	"context"
	"sync"
	"time"

	"github.com/skyepulse/buildmonitor/pkg/logger"
)

const (
	defaultAttempts = 3
	baseBackoff     = time.Second
	maxBackoff      = 5 * time.Second
)

// Clock abstracts time for backoff waits.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// State is the observable tri-state of a Caller.
type State[T any] struct {
	Data    *T
	Loading bool
	Err     error
}

// CallerOptions configure a Caller.
type CallerOptions struct {
	// Attempts caps the total tries, including the first. Zero means
	// the default of 3.
	Attempts int
	// ErrorMessage overrides the notification text on final failure.
	ErrorMessage string
	// Notifier receives one notification when every attempt has
	// failed. Nil disables notifications.
	Notifier Notifier
	// Clock is swapped out in tests. Nil means real time.
	Clock Clock
	// Logger records intermediate failures. Nil means silent.
	Logger logger.Logger
}

// Caller wraps an operation with bounded retry, capped exponential
// backoff and tri-state tracking. Auth failures and client-side
// validation errors short-circuit: they are never worth a second try.
type Caller[T any] struct {
	op       func(ctx context.Context) (T, error)
	attempts int
	message  string
	notifier Notifier
	clock    Clock
	logger   logger.Logger

	mu    sync.Mutex
	state State[T]
}

// NewCaller wraps op.
func NewCaller[T any](op func(ctx context.Context) (T, error), opts CallerOptions) *Caller[T] {
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	return &Caller[T]{
		op:       op,
		attempts: attempts,
		message:  opts.ErrorMessage,
		notifier: opts.Notifier,
		clock:    clock,
		logger:   log,
	}
}

// backoffDelay is min(1s * 2^(attempt-1), 5s).
func backoffDelay(attempt int) time.Duration {
	delay := baseBackoff << (attempt - 1)
	if delay > maxBackoff {
		delay = maxBackoff
	}

	return delay
}

// Execute runs the operation until it succeeds or attempts are
// exhausted. A success on the first try waits for nothing. On final
// failure the error lands in state, the notifier fires once, and the
// error is returned.
func (c *Caller[T]) Execute(ctx context.Context) (T, error) {
	var zero T

	c.setState(State[T]{Loading: true})

	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		result, err := c.op(ctx)
		if err == nil {
			c.setState(State[T]{Data: &result})
			return result, nil
		}

		lastErr = err

		if !Retryable(err) {
			break
		}

		c.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("attempts", c.attempts).
			Msg("Operation failed")

		if attempt == c.attempts {
			break
		}

		select {
		case <-ctx.Done():
			lastErr = ctx.Err()
		case <-c.clock.After(backoffDelay(attempt)):
		}

		if ctx.Err() != nil {
			break
		}
	}

	message := c.message
	if message == "" {
		message = lastErr.Error()
	}

	c.setState(State[T]{Err: lastErr})

	if c.notifier != nil {
		c.notifier.Notify("Error", message)
	}

	return zero, lastErr
}

// Reset restores the initial tri-state with no side effects.
func (c *Caller[T]) Reset() {
	c.setState(State[T]{})
}

// State returns a snapshot of the current tri-state.
func (c *Caller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

func (c *Caller[T]) setState(s State[T]) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
