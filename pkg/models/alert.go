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

package models

import "time"

// AlertType classifies why an alert was raised.
type AlertType string

const (
	AlertTypeEncroachmentMatch  AlertType = "encroachment_match"
	AlertTypeHighPriorityReport AlertType = "high_priority_report"
	AlertTypeSystem             AlertType = "system_alert"
)

// AlertSeverity orders alerts for display.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is a backend notification for administrators, typically
// correlating a report with a detection. IsRead only ever moves
// false->true.
type Alert struct {
	ID             int64         `json:"id"`
	Type           AlertType     `json:"type" validate:"omitempty,oneof=encroachment_match high_priority_report system_alert"`
	Title          string        `json:"title"`
	Message        string        `json:"message"`
	Severity       AlertSeverity `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	CreatedAt      time.Time     `json:"createdAt"`
	IsRead         bool          `json:"isRead"`
	ReportID       *int64        `json:"reportId,omitempty"`
	EncroachmentID *string       `json:"encroachmentId,omitempty"`
	Location       string        `json:"location,omitempty"`
}

// UnreadCount is the /alerts/unread-count payload. A missing count field
// decodes to zero.
type UnreadCount struct {
	Count int `json:"count"`
}
