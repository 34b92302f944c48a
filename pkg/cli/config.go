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

package cli

import (
	"os"
	"time"

	"github.com/skyepulse/buildmonitor/pkg/client"
	"github.com/skyepulse/buildmonitor/pkg/logger"
	"github.com/skyepulse/buildmonitor/pkg/models"
	"github.com/skyepulse/buildmonitor/pkg/poller"
)

// Product branding shown in the TUI chrome.
const (
	appName    = "BuildMonitor"
	appTagline = "Land encroachment reporting & monitoring"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultPollInterval = 30 * time.Second
)

// Config is the buildmon application configuration.
type Config struct {
	APIBaseURL   string               `json:"api_base_url"`
	Timeout      models.Duration      `json:"timeout"`
	PollInterval models.Duration      `json:"poll_interval"`
	Overlap      poller.OverlapPolicy `json:"overlap"`
	SessionFile  string               `json:"session_file"`
	Logging      *logger.Config       `json:"logging,omitempty"`
}

// Validate implements config.Validator. Missing fields fall back to
// development defaults; BUILDMON_API_URL overrides the base URL when no
// explicit value is configured.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		c.APIBaseURL = os.Getenv("BUILDMON_API_URL")
	}

	if c.APIBaseURL == "" {
		c.APIBaseURL = client.DefaultBaseURL
	}

	if time.Duration(c.Timeout) <= 0 {
		c.Timeout = models.Duration(defaultTimeout)
	}

	if time.Duration(c.PollInterval) <= 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	// The poller owns overlap policy validation.
	pc := poller.Config{Interval: c.PollInterval, Overlap: c.Overlap}
	if err := pc.Validate(); err != nil {
		return err
	}

	c.Overlap = pc.Overlap

	return nil
}
