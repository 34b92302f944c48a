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
	"strconv"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

// EncroachmentsService reads satellite detections and moves their
// verification status.
type EncroachmentsService struct {
	client *Client
}

// Encroachments returns the encroachments façade.
func (c *Client) Encroachments() *EncroachmentsService {
	return &EncroachmentsService{client: c}
}

// List fetches all detections.
func (s *EncroachmentsService) List(ctx context.Context) ([]models.Encroachment, error) {
	var list []models.Encroachment

	err := s.client.request(ctx, http.MethodGet, "/encroachments", nil, &list, nil)
	if err != nil {
		return nil, err
	}

	return list, nil
}

// Get fetches one detection by id.
func (s *EncroachmentsService) Get(ctx context.Context, id string) (*models.Encroachment, error) {
	var enc models.Encroachment

	err := s.client.request(ctx, http.MethodGet, "/encroachments/"+url.PathEscape(id), nil, &enc, nil)
	if err != nil {
		return nil, err
	}

	return &enc, nil
}

// UpdateStatus sets the verification status of a detection.
func (s *EncroachmentsService) UpdateStatus(ctx context.Context, id string, status models.EncroachmentStatus) (*models.Encroachment, error) {
	switch status {
	case models.EncroachmentStatusNew,
		models.EncroachmentStatusVerified,
		models.EncroachmentStatusResolved,
		models.EncroachmentStatusFalsePositive:
	default:
		return nil, newError(KindValidation, "invalid encroachment status "+string(status), nil)
	}

	body := map[string]models.EncroachmentStatus{"status": status}

	var enc models.Encroachment

	err := s.client.request(ctx, http.MethodPatch,
		"/encroachments/"+url.PathEscape(id)+"/status", body, &enc, nil)
	if err != nil {
		return nil, err
	}

	return &enc, nil
}

// ListByArea fetches detections inside a bounding box, serialized as
// north/south/east/west query parameters.
func (s *EncroachmentsService) ListByArea(ctx context.Context, bounds models.AreaBounds) ([]models.Encroachment, error) {
	if err := s.client.validate.Struct(bounds); err != nil {
		return nil, newError(KindValidation, "bounds are out of range", err)
	}

	query := url.Values{}
	query.Set("north", formatCoord(bounds.North))
	query.Set("south", formatCoord(bounds.South))
	query.Set("east", formatCoord(bounds.East))
	query.Set("west", formatCoord(bounds.West))

	var list []models.Encroachment

	err := s.client.request(ctx, http.MethodGet, "/encroachments/area", nil, &list,
		&requestOptions{query: query})
	if err != nil {
		return nil, err
	}

	return list, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
