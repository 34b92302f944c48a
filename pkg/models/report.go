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

// Package models holds the wire types exchanged with the BuildMonitor
// backend. All entities are owned by the backend; the client only ever
// holds transient copies of them.
package models

import "time"

// ReportPriority is the citizen-assigned priority of a report.
type ReportPriority string

const (
	PriorityLow    ReportPriority = "low"
	PriorityMedium ReportPriority = "medium"
	PriorityHigh   ReportPriority = "high"
)

// ReportStatus is the administrative review state of a report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusApproved ReportStatus = "approved"
	ReportStatusRejected ReportStatus = "rejected"
)

// CanTransitionTo reports whether a status change is valid. Reports only
// move pending->approved or pending->rejected; nothing else.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	if s != ReportStatusPending {
		return false
	}

	return next == ReportStatusApproved || next == ReportStatusRejected
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Report is a citizen-submitted encroachment claim awaiting review.
type Report struct {
	ID           int64          `json:"id"`
	CitizenName  string         `json:"citizenName,omitempty"`
	CitizenEmail string         `json:"citizenEmail,omitempty"`
	Location     string         `json:"location" validate:"required"`
	Coordinates  *Coordinates   `json:"coordinates,omitempty"`
	Description  string         `json:"description" validate:"required"`
	Priority     ReportPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status       ReportStatus   `json:"status" validate:"required,oneof=pending approved rejected"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	ImageURL     string         `json:"imageUrl,omitempty"`
	Images       []string       `json:"images,omitempty"`
}

// ReportDraft is the client-side submission payload. Location and
// description are mandatory before any network call is made.
type ReportDraft struct {
	CitizenName  string         `validate:"omitempty,max=200"`
	CitizenEmail string         `validate:"omitempty,email"`
	Location     string         `validate:"required"`
	Description  string         `validate:"required"`
	Priority     ReportPriority `validate:"omitempty,oneof=low medium high"`
	Coordinates  *Coordinates
	ImagePaths   []string
}
