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
	"net/http"
	"net/url"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

// AnalyticsService reads backend-computed aggregates.
type AnalyticsService struct {
	client *Client
}

// Analytics returns the analytics façade.
func (c *Client) Analytics() *AnalyticsService { return &AnalyticsService{client: c} }

// DashboardStats fetches the headline numbers for the dashboard.
func (s *AnalyticsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	err := s.client.request(ctx, http.MethodGet, "/analytics/dashboard", nil, &stats, nil)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// ReportsTimeline fetches report counts per day over the given period.
func (s *AnalyticsService) ReportsTimeline(ctx context.Context, period models.TimelinePeriod) ([]models.TimelineBucket, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", string(period))
	}

	var timeline []models.TimelineBucket

	err := s.client.request(ctx, http.MethodGet, "/analytics/reports/timeline", nil, &timeline,
		&requestOptions{query: query})
	if err != nil {
		return nil, err
	}

	return timeline, nil
}

// EncroachmentsByRegion fetches detection counts grouped by region.
func (s *AnalyticsService) EncroachmentsByRegion(ctx context.Context) ([]models.RegionCount, error) {
	var regions []models.RegionCount

	err := s.client.request(ctx, http.MethodGet, "/analytics/encroachments/regions", nil, &regions, nil)
	if err != nil {
		return nil, err
	}

	return regions, nil
}
