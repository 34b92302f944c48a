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

package poller

import (
	"fmt"
	"time"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

const defaultInterval = 30 * time.Second

// OverlapPolicy decides what a tick does when the previous fetch is
// still in flight.
type OverlapPolicy string

const (
	// OverlapSkip drops the tick. The default: a slow fetch should not
	// pile up refreshes behind itself.
	OverlapSkip OverlapPolicy = "skip"
	// OverlapQueue remembers exactly one missed tick and runs it as
	// soon as the in-flight fetch finishes.
	OverlapQueue OverlapPolicy = "queue"
	// OverlapConcurrent starts every tick regardless. Results may then
	// apply out of order; callers must treat latest-applied state as
	// authoritative.
	OverlapConcurrent OverlapPolicy = "concurrent"
)

// Config represents polling configuration.
type Config struct {
	Name     string          `json:"name"`
	Interval models.Duration `json:"interval"`
	Overlap  OverlapPolicy   `json:"overlap"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if time.Duration(c.Interval) <= 0 {
		c.Interval = models.Duration(defaultInterval)
	}

	switch c.Overlap {
	case "":
		c.Overlap = OverlapSkip
	case OverlapSkip, OverlapQueue, OverlapConcurrent:
	default:
		return fmt.Errorf("%w: %q", errInvalidOverlapPolicy, c.Overlap)
	}

	return nil
}
