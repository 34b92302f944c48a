package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSONAcceptsString(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"30s"`), &d))
	assert.Equal(t, 30*time.Second, time.Duration(d))
}

func TestDurationUnmarshalJSONAcceptsNumber(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, time.Duration(d))
}

func TestDurationUnmarshalJSONRejectsOtherTypes(t *testing.T) {
	var d Duration

	require.Error(t, json.Unmarshal([]byte(`true`), &d))
	require.Error(t, json.Unmarshal([]byte(`"not-a-duration"`), &d))
}

func TestReportStatusTransitions(t *testing.T) {
	assert.True(t, ReportStatusPending.CanTransitionTo(ReportStatusApproved))
	assert.True(t, ReportStatusPending.CanTransitionTo(ReportStatusRejected))

	assert.False(t, ReportStatusApproved.CanTransitionTo(ReportStatusRejected))
	assert.False(t, ReportStatusRejected.CanTransitionTo(ReportStatusApproved))
	assert.False(t, ReportStatusApproved.CanTransitionTo(ReportStatusPending))
	assert.False(t, ReportStatusPending.CanTransitionTo(ReportStatusPending))
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	unknown := &Session{Token: "tok"}
	assert.False(t, unknown.Expired(now))

	live := &Session{Token: "tok", ExpiresAt: now.Add(time.Hour)}
	assert.False(t, live.Expired(now))

	stale := &Session{Token: "tok", ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, stale.Expired(now))
}

func TestUnreadCountDefaultsToZero(t *testing.T) {
	var uc UnreadCount

	require.NoError(t, json.Unmarshal([]byte(`{}`), &uc))
	assert.Zero(t, uc.Count)
}

func TestEncroachmentDecodesWireFormat(t *testing.T) {
	payload := `{
		"id": "enc-42",
		"location": "Sector 7 North",
		"coordinates": {"lat": 28.61, "lng": 77.2},
		"detectedAt": "2025-05-20T10:30:00Z",
		"confidence": 93,
		"status": "new",
		"area": 450.5,
		"satelliteImageUrl": "https://img.example/sat/42.png"
	}`

	var e Encroachment
	require.NoError(t, json.Unmarshal([]byte(payload), &e))

	assert.Equal(t, "enc-42", e.ID)
	assert.Equal(t, EncroachmentStatusNew, e.Status)
	assert.InDelta(t, 93, e.Confidence, 0.001)
	assert.InDelta(t, 450.5, e.AreaSquareMeters, 0.001)
	assert.Equal(t, 28.61, e.Coordinates.Lat)
	assert.Empty(t, e.ComparisonImageURL)
}
