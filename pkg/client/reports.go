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
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

// ReportsService manages citizen reports.
type ReportsService struct {
	client *Client
}

// Reports returns the reports façade.
func (c *Client) Reports() *ReportsService { return &ReportsService{client: c} }

// List fetches all reports visible to the session.
func (s *ReportsService) List(ctx context.Context) ([]models.Report, error) {
	var reports []models.Report

	err := s.client.request(ctx, http.MethodGet, "/reports", nil, &reports, nil)
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// Get fetches one report by id.
func (s *ReportsService) Get(ctx context.Context, id int64) (*models.Report, error) {
	var report models.Report

	err := s.client.request(ctx, http.MethodGet, fmt.Sprintf("/reports/%d", id), nil, &report, nil)
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// Create submits a draft as multipart/form-data, attaching any image
// files under the images field. Missing location or description fails
// fast before any network traffic.
func (s *ReportsService) Create(ctx context.Context, draft models.ReportDraft) (*models.Report, error) {
	if err := s.client.validate.Struct(draft); err != nil {
		return nil, newError(KindValidation, "location and description are required", err)
	}

	fields := map[string]string{
		"location":    draft.Location,
		"description": draft.Description,
	}

	if draft.Priority != "" {
		fields["priority"] = string(draft.Priority)
	}

	if draft.CitizenName != "" {
		fields["citizenName"] = draft.CitizenName
	}

	if draft.CitizenEmail != "" {
		fields["citizenEmail"] = draft.CitizenEmail
	}

	if draft.Coordinates != nil {
		coords, err := json.Marshal(draft.Coordinates)
		if err != nil {
			return nil, newError(KindValidation, "failed to encode coordinates", err)
		}

		fields["coordinates"] = string(coords)
	}

	files := make([]filePart, 0, len(draft.ImagePaths))
	for _, path := range draft.ImagePaths {
		files = append(files, filePart{field: "images", path: path})
	}

	var report models.Report

	err := s.client.request(ctx, http.MethodPost, "/reports", nil, &report,
		&requestOptions{fields: fields, files: files})
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// UpdateStatus moves a report out of pending. Only approved and
// rejected are accepted; the backend enforces the same rule.
func (s *ReportsService) UpdateStatus(ctx context.Context, id int64, status models.ReportStatus) (*models.Report, error) {
	if !models.ReportStatusPending.CanTransitionTo(status) {
		return nil, newError(KindValidation,
			fmt.Sprintf("invalid report status %q", status), nil)
	}

	body := map[string]models.ReportStatus{"status": status}

	var report models.Report

	err := s.client.request(ctx, http.MethodPatch, fmt.Sprintf("/reports/%d/status", id), body, &report, nil)
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// Delete removes a report.
func (s *ReportsService) Delete(ctx context.Context, id int64) error {
	return s.client.request(ctx, http.MethodDelete, fmt.Sprintf("/reports/%d", id), nil, nil, nil)
}
