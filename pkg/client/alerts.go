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
	"fmt"
	"net/http"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

// AlertsService reads and acknowledges administrator alerts.
type AlertsService struct {
	client *Client
}

// Alerts returns the alerts façade.
func (c *Client) Alerts() *AlertsService { return &AlertsService{client: c} }

// List fetches all alerts.
func (s *AlertsService) List(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert

	err := s.client.request(ctx, http.MethodGet, "/alerts", nil, &alerts, nil)
	if err != nil {
		return nil, err
	}

	return alerts, nil
}

// MarkRead acknowledges one alert. Read state never reverts.
func (s *AlertsService) MarkRead(ctx context.Context, id int64) error {
	return s.client.request(ctx, http.MethodPatch, fmt.Sprintf("/alerts/%d/read", id), nil, nil, nil)
}

// MarkAllRead acknowledges everything at once.
func (s *AlertsService) MarkAllRead(ctx context.Context) error {
	return s.client.request(ctx, http.MethodPatch, "/alerts/read-all", nil, nil, nil)
}

// UnreadCount returns the number of unread alerts. A body without a
// count field means zero.
func (s *AlertsService) UnreadCount(ctx context.Context) (int, error) {
	var payload models.UnreadCount

	err := s.client.request(ctx, http.MethodGet, "/alerts/unread-count", nil, &payload, nil)
	if err != nil {
		return 0, err
	}

	return payload.Count, nil
}
