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

// Package poller re-invokes a fetch operation on a fixed interval until
// stopped. Unlike a bare time.Ticker loop, it tracks whether the
// previous invocation is still outstanding and applies a configurable
// overlap policy, so a slow backend cannot stack refreshes.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/skyepulse/buildmonitor/pkg/logger"
)

// FetchFunc is the operation being repeated.
type FetchFunc func(ctx context.Context) error

// Poller drives a FetchFunc: once immediately at Start, then every
// interval until Stop.
type Poller struct {
	config Config
	fetch  FetchFunc
	clock  Clock
	logger logger.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu       sync.Mutex
	inFlight bool
	queued   bool
}

// New creates a poller. A nil clock defaults to real time.
func New(config *Config, fetch FetchFunc, clock Clock, log logger.Logger) (*Poller, error) {
	if fetch == nil {
		return nil, errFetchRequired
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if clock == nil {
		clock = realClock{}
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Poller{
		config: *config,
		fetch:  fetch,
		clock:  clock,
		logger: log,
		done:   make(chan struct{}),
	}, nil
}

// Start runs the polling loop until the context ends or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	interval := time.Duration(p.config.Interval)
	ticker := p.clock.Ticker(interval)

	defer ticker.Stop()

	p.logger.Info().
		Str("name", p.config.Name).
		Dur("interval", interval).
		Str("overlap", string(p.config.Overlap)).
		Msg("Starting poller")

	p.runTick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return nil
		case <-ticker.Chan():
			p.runTick(ctx)
		}
	}
}

// Stop tears the poller down. No tick fires after Stop returns; a fetch
// already in flight is not aborted and may still deliver its result.
func (p *Poller) Stop(ctx context.Context) error {
	p.closeOnce.Do(func() { close(p.done) })

	finished := make(chan struct{})

	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runTick applies the overlap policy and, when admitted, runs the fetch
// in its own goroutine so a slow call never blocks the ticker.
func (p *Poller) runTick(ctx context.Context) {
	p.mu.Lock()

	if p.inFlight {
		switch p.config.Overlap {
		case OverlapSkip:
			p.mu.Unlock()
			p.logger.Debug().Str("name", p.config.Name).Msg("Skipping tick, previous fetch still in flight")

			return
		case OverlapQueue:
			p.queued = true
			p.mu.Unlock()

			return
		case OverlapConcurrent:
			// Fall through and start another fetch.
		}
	} else {
		p.inFlight = true
	}

	p.mu.Unlock()

	p.wg.Add(1)

	go func() {
		defer p.wg.Done()
		p.runFetch(ctx)
	}()
}

func (p *Poller) runFetch(ctx context.Context) {
	for {
		start := p.clock.Now()

		if err := p.fetch(ctx); err != nil {
			p.logger.Error().
				Err(err).
				Str("name", p.config.Name).
				Dur("elapsed", p.clock.Now().Sub(start)).
				Msg("Poll fetch failed")
		}

		select {
		case <-p.done:
			p.clearInFlight()
			return
		default:
		}

		if ctx.Err() != nil {
			p.clearInFlight()
			return
		}

		// Queue policy: run the one remembered tick, then settle.
		p.mu.Lock()
		if p.queued {
			p.queued = false
			p.mu.Unlock()

			continue
		}

		p.inFlight = false
		p.mu.Unlock()

		return
	}
}

func (p *Poller) clearInFlight() {
	p.mu.Lock()
	p.inFlight = false
	p.queued = false
	p.mu.Unlock()
}
