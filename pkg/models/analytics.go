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

// DashboardStats is the /analytics/dashboard payload.
type DashboardStats struct {
	TotalReports          int `json:"totalReports"`
	PendingReports        int `json:"pendingReports"`
	ApprovedReports       int `json:"approvedReports"`
	RejectedReports       int `json:"rejectedReports"`
	TotalEncroachments    int `json:"totalEncroachments"`
	NewEncroachments      int `json:"newEncroachments"`
	ResolvedEncroachments int `json:"resolvedEncroachments"`
	AlertsCount           int `json:"alertsCount"`
}

// TimelinePeriod selects the reports-over-time window.
type TimelinePeriod string

const (
	Period7d  TimelinePeriod = "7d"
	Period30d TimelinePeriod = "30d"
	Period90d TimelinePeriod = "90d"
	Period1y  TimelinePeriod = "1y"
)

// TimelineBucket is one day of the reports timeline.
type TimelineBucket struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RegionCount aggregates encroachments per named region.
type RegionCount struct {
	Region      string      `json:"region"`
	Count       int         `json:"count"`
	Coordinates Coordinates `json:"coordinates"`
}
