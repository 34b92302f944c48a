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

// EncroachmentStatus is the verification state of a satellite detection.
type EncroachmentStatus string

const (
	EncroachmentStatusNew           EncroachmentStatus = "new"
	EncroachmentStatusVerified      EncroachmentStatus = "verified"
	EncroachmentStatusResolved      EncroachmentStatus = "resolved"
	EncroachmentStatusFalsePositive EncroachmentStatus = "false_positive"
)

// Encroachment is a detection produced by the satellite correlation
// backend. The client never creates these; it only reads them and moves
// their status through explicit update calls.
type Encroachment struct {
	ID                 string             `json:"id"`
	Location           string             `json:"location"`
	Coordinates        Coordinates        `json:"coordinates" validate:"required"`
	DetectedAt         time.Time          `json:"detectedAt"`
	Confidence         float64            `json:"confidence" validate:"gte=0,lte=100"`
	Status             EncroachmentStatus `json:"status" validate:"required,oneof=new verified resolved false_positive"`
	AreaSquareMeters   float64            `json:"area" validate:"gte=0"`
	SatelliteImageURL  string             `json:"satelliteImageUrl,omitempty"`
	ComparisonImageURL string             `json:"comparisonImageUrl,omitempty"`
}

// AreaBounds is a geographic bounding box for area queries.
type AreaBounds struct {
	North float64 `json:"north" validate:"gte=-90,lte=90"`
	South float64 `json:"south" validate:"gte=-90,lte=90"`
	East  float64 `json:"east" validate:"gte=-180,lte=180"`
	West  float64 `json:"west" validate:"gte=-180,lte=180"`
}
