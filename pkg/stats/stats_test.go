package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

func report(status models.ReportStatus) models.Report {
	return models.Report{Location: "somewhere", Description: "d", Status: status}
}

func TestCountByStatusEmpty(t *testing.T) {
	assert.Equal(t, ReportCounts{}, CountByStatus(nil))
	assert.Equal(t, ReportCounts{}, CountByStatus([]models.Report{}))
}

func TestCountByStatus(t *testing.T) {
	reports := []models.Report{
		report(models.ReportStatusPending),
		report(models.ReportStatusPending),
		report(models.ReportStatusApproved),
		report(models.ReportStatusRejected),
	}

	counts := CountByStatus(reports)

	assert.Equal(t, ReportCounts{Pending: 2, Approved: 1, Rejected: 1, Total: 4}, counts)
}

func TestCountEncroachments(t *testing.T) {
	list := []models.Encroachment{
		{Status: models.EncroachmentStatusNew},
		{Status: models.EncroachmentStatusVerified},
		{Status: models.EncroachmentStatusNew},
		{Status: models.EncroachmentStatusResolved},
		{Status: models.EncroachmentStatusFalsePositive},
	}

	counts := CountEncroachments(list)

	assert.Equal(t, EncroachmentCounts{New: 2, Verified: 1, Resolved: 1, Total: 5}, counts)
}

func TestFilterEncroachmentsByConfidencePreservesOrder(t *testing.T) {
	list := []models.Encroachment{
		{ID: "a", Confidence: 87},
		{ID: "b", Confidence: 93},
		{ID: "c", Confidence: 76},
		{ID: "d", Confidence: 91},
	}

	filtered := FilterEncroachments(list, EncroachmentFilter{MinConfidence: 90}, time.Now())

	ids := make([]string, 0, len(filtered))
	for _, e := range filtered {
		ids = append(ids, e.ID)
	}

	assert.Equal(t, []string{"b", "d"}, ids)
}

func TestFilterEncroachmentsByStatus(t *testing.T) {
	list := []models.Encroachment{
		{ID: "a", Status: models.EncroachmentStatusNew},
		{ID: "b", Status: models.EncroachmentStatusVerified},
	}

	filtered := FilterEncroachments(list, EncroachmentFilter{Status: models.EncroachmentStatusVerified}, time.Now())
	assert.Len(t, filtered, 1)
	assert.Equal(t, "b", filtered[0].ID)

	// "all" disables status filtering entirely.
	filtered = FilterEncroachments(list, EncroachmentFilter{Status: "all"}, time.Now())
	assert.Len(t, filtered, 2)
}

func TestFilterEncroachmentsBySearchText(t *testing.T) {
	list := []models.Encroachment{
		{ID: "a", Location: "Riverside Plot 4"},
		{ID: "b", Location: "Hilltop Zone"},
		{ID: "c", Location: "riverside annex"},
	}

	filtered := FilterEncroachments(list, EncroachmentFilter{SearchText: "RIVERSIDE"}, time.Now())

	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)
}

func TestFilterEncroachmentsByDateRange(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	list := []models.Encroachment{
		{ID: "recent", DetectedAt: now.Add(-2 * 24 * time.Hour)},
		{ID: "old", DetectedAt: now.Add(-40 * 24 * time.Hour)},
		{ID: "ancient", DetectedAt: now.Add(-100 * 24 * time.Hour)},
	}

	assert.Len(t, FilterEncroachments(list, EncroachmentFilter{DateRange: Range7d}, now), 1)
	assert.Len(t, FilterEncroachments(list, EncroachmentFilter{DateRange: Range30d}, now), 1)
	assert.Len(t, FilterEncroachments(list, EncroachmentFilter{DateRange: Range90d}, now), 2)
	assert.Len(t, FilterEncroachments(list, EncroachmentFilter{DateRange: RangeAll}, now), 3)
}

func TestFiltersComposeByAND(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	list := []models.Encroachment{
		{ID: "a", Status: models.EncroachmentStatusNew, Confidence: 95, Location: "North Field", DetectedAt: now.Add(-24 * time.Hour)},
		{ID: "b", Status: models.EncroachmentStatusNew, Confidence: 50, Location: "North Field", DetectedAt: now.Add(-24 * time.Hour)},
		{ID: "c", Status: models.EncroachmentStatusVerified, Confidence: 95, Location: "North Field", DetectedAt: now.Add(-24 * time.Hour)},
		{ID: "d", Status: models.EncroachmentStatusNew, Confidence: 95, Location: "South Field", DetectedAt: now.Add(-24 * time.Hour)},
	}

	filter := EncroachmentFilter{
		Status:        models.EncroachmentStatusNew,
		MinConfidence: 90,
		SearchText:    "north",
		DateRange:     Range7d,
	}

	filtered := FilterEncroachments(list, filter, now)

	assert.Len(t, filtered, 1)
	assert.Equal(t, "a", filtered[0].ID)
}

func TestUnreadAlerts(t *testing.T) {
	alerts := []models.Alert{
		{IsRead: true},
		{IsRead: false},
		{IsRead: false},
	}

	assert.Equal(t, 2, UnreadAlerts(alerts))
	assert.Zero(t, UnreadAlerts(nil))
}
