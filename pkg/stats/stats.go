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

// Package stats computes view aggregates over already-fetched lists.
// Everything here is pure and synchronous; callers own the data.
package stats

import (
	"strings"
	"time"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

// ReportCounts breaks reports down by review status.
type ReportCounts struct {
	Pending  int
	Approved int
	Rejected int
	Total    int
}

// CountByStatus tallies reports per status.
func CountByStatus(reports []models.Report) ReportCounts {
	counts := ReportCounts{Total: len(reports)}

	for _, r := range reports {
		switch r.Status {
		case models.ReportStatusPending:
			counts.Pending++
		case models.ReportStatusApproved:
			counts.Approved++
		case models.ReportStatusRejected:
			counts.Rejected++
		}
	}

	return counts
}

// EncroachmentCounts breaks detections down by verification status.
type EncroachmentCounts struct {
	New      int
	Verified int
	Resolved int
	Total    int
}

// CountEncroachments tallies detections per status.
func CountEncroachments(list []models.Encroachment) EncroachmentCounts {
	counts := EncroachmentCounts{Total: len(list)}

	for _, e := range list {
		switch e.Status {
		case models.EncroachmentStatusNew:
			counts.New++
		case models.EncroachmentStatusVerified:
			counts.Verified++
		case models.EncroachmentStatusResolved:
			counts.Resolved++
		}
	}

	return counts
}

// DateRange restricts detections to a trailing window.
type DateRange string

const (
	RangeAll DateRange = "all"
	Range7d  DateRange = "7d"
	Range30d DateRange = "30d"
	Range90d DateRange = "90d"
)

func (r DateRange) window() (time.Duration, bool) {
	switch r {
	case Range7d:
		return 7 * 24 * time.Hour, true
	case Range30d:
		return 30 * 24 * time.Hour, true
	case Range90d:
		return 90 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// EncroachmentFilter composes by logical AND. Zero values mean "keep
// everything" for each criterion.
type EncroachmentFilter struct {
	// Status keeps exact matches; "" or "all" keeps everything.
	Status models.EncroachmentStatus
	// MinConfidence keeps items with Confidence >= MinConfidence.
	MinConfidence float64
	// SearchText is a case-insensitive substring match on location.
	SearchText string
	// DateRange keeps items with DetectedAt inside the trailing window.
	DateRange DateRange
}

// FilterEncroachments applies the filter without reordering: the
// original relative order is preserved.
func FilterEncroachments(list []models.Encroachment, filter EncroachmentFilter, now time.Time) []models.Encroachment {
	search := strings.ToLower(strings.TrimSpace(filter.SearchText))
	window, bounded := filter.DateRange.window()
	cutoff := now.Add(-window)

	filtered := make([]models.Encroachment, 0, len(list))

	for _, e := range list {
		if filter.Status != "" && filter.Status != "all" && e.Status != filter.Status {
			continue
		}

		if e.Confidence < filter.MinConfidence {
			continue
		}

		if search != "" && !strings.Contains(strings.ToLower(e.Location), search) {
			continue
		}

		if bounded && e.DetectedAt.Before(cutoff) {
			continue
		}

		filtered = append(filtered, e)
	}

	return filtered
}

// UnreadAlerts counts alerts not yet acknowledged.
func UnreadAlerts(alerts []models.Alert) int {
	unread := 0

	for _, a := range alerts {
		if !a.IsRead {
			unread++
		}
	}

	return unread
}
