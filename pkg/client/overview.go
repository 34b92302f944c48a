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

	"github.com/skyepulse/buildmonitor/pkg/models"
)

// Overview is everything the dashboard shows in one refresh.
type Overview struct {
	Reports       []models.Report
	Encroachments []models.Encroachment
	Alerts        []models.Alert
}

// FetchOverview issues the three dashboard fetches concurrently and
// joins them. If any one fails the aggregate fails, but whatever else
// completed is still returned: partial application is accepted here,
// not prevented.
func (c *Client) FetchOverview(ctx context.Context) (*Overview, error) {
	var (
		wg       sync.WaitGroup
		overview Overview

		mu       sync.Mutex
		firstErr error
	)

	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()

		if firstErr == nil && err != nil {
			firstErr = err
		}
	}

	wg.Add(3)

	go func() {
		defer wg.Done()

		reports, err := c.Reports().List(ctx)
		overview.Reports = reports

		record(err)
	}()

	go func() {
		defer wg.Done()

		encroachments, err := c.Encroachments().List(ctx)
		overview.Encroachments = encroachments

		record(err)
	}()

	go func() {
		defer wg.Done()

		alerts, err := c.Alerts().List(ctx)
		overview.Alerts = alerts

		record(err)
	}()

	wg.Wait()

	if firstErr != nil {
		return &overview, firstErr
	}

	return &overview, nil
}
