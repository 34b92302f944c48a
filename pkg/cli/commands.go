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

package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/skyepulse/buildmonitor/pkg/client"
	"github.com/skyepulse/buildmonitor/pkg/models"
	"github.com/skyepulse/buildmonitor/pkg/poller"
	"github.com/skyepulse/buildmonitor/pkg/stats"
)

const timeDisplayFormat = "2006-01-02 15:04"

func (a *app) runLogout(ctx context.Context) error {
	if err := a.client.Auth().Logout(ctx); err != nil {
		// The local session is gone regardless; tell the operator the
		// backend call did not land.
		fmt.Println(a.styles.hint.Render("Backend logout failed; local session cleared anyway."))
		a.logger.Debug().Err(err).Msg("Logout request failed")

		return nil
	}

	fmt.Println(a.styles.success.Render("Logged out."))

	return nil
}

func (a *app) runReports(ctx context.Context, cmd *CmdConfig) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	switch {
	case cmd.ApproveID > 0:
		return a.reviewReport(ctx, cmd.ApproveID, models.ReportStatusApproved)
	case cmd.RejectID > 0:
		return a.reviewReport(ctx, cmd.RejectID, models.ReportStatusRejected)
	case cmd.DeleteID > 0:
		if err := a.client.Reports().Delete(ctx, cmd.DeleteID); err != nil {
			return err
		}

		fmt.Println(a.styles.success.Render(fmt.Sprintf("Report #%d deleted.", cmd.DeleteID)))

		return nil
	case cmd.Location != "" || cmd.Description != "" || len(cmd.Images) > 0:
		return a.createReport(ctx, cmd)
	case cmd.ReportID > 0:
		report, err := a.client.Reports().Get(ctx, cmd.ReportID)
		if err != nil {
			return err
		}

		fmt.Print(a.renderReportDetail(report))

		return nil
	default:
		return a.listReports(ctx)
	}
}

func (a *app) reviewReport(ctx context.Context, id int64, status models.ReportStatus) error {
	report, err := a.client.Reports().UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}

	fmt.Println(a.styles.success.Render(
		fmt.Sprintf("Report #%d is now %s.", report.ID, report.Status)))

	return nil
}

func (a *app) createReport(ctx context.Context, cmd *CmdConfig) error {
	if cmd.Location == "" || cmd.Description == "" {
		return errReportFieldsMissing
	}

	draft := models.ReportDraft{
		CitizenName:  cmd.Citizen,
		CitizenEmail: cmd.CitizenMail,
		Location:     cmd.Location,
		Description:  cmd.Description,
		Priority:     models.ReportPriority(cmd.Priority),
		ImagePaths:   cmd.Images,
	}

	report, err := a.client.Reports().Create(ctx, draft)
	if err != nil {
		return err
	}

	fmt.Println(a.styles.success.Render(
		fmt.Sprintf("Report #%d submitted (%d image(s)).", report.ID, len(cmd.Images))))

	return nil
}

func (a *app) listReports(ctx context.Context) error {
	caller := client.NewCaller(func(ctx context.Context) ([]models.Report, error) {
		return a.client.Reports().List(ctx)
	}, client.CallerOptions{
		Notifier: client.NewLogNotifier(a.logger),
		Logger:   a.logger,
	})

	reports, err := caller.Execute(ctx)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Println(a.styles.help.Render("No reports."))
		return nil
	}

	for _, r := range reports {
		fmt.Println(a.renderReportRow(&r))
	}

	counts := stats.CountByStatus(reports)
	fmt.Println()
	fmt.Println(a.styles.help.Render(fmt.Sprintf(
		"%d total | %d pending | %d approved | %d rejected",
		counts.Total, counts.Pending, counts.Approved, counts.Rejected)))

	return nil
}

func (a *app) renderReportRow(r *models.Report) string {
	status := a.styles.reportStatusStyle(r.Status).Render(fmt.Sprintf("%-8s", r.Status))

	return fmt.Sprintf("%s %s %s %s",
		a.styles.label.Render(fmt.Sprintf("#%-5d", r.ID)),
		status,
		a.styles.help.Render(r.CreatedAt.Format(timeDisplayFormat)),
		a.styles.value.Render(truncate(r.Location, 48)))
}

func (a *app) renderReportDetail(r *models.Report) string {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(a.styles.label.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(a.styles.value.Render(value))
		b.WriteByte('\n')
	}

	row("Report", fmt.Sprintf("#%d", r.ID))
	row("Status", string(r.Status))
	row("Priority", string(r.Priority))
	row("Location", r.Location)
	row("Description", r.Description)

	if r.CitizenName != "" {
		row("Reporter", r.CitizenName)
	}

	if r.Coordinates != nil {
		row("Coordinates", fmt.Sprintf("%.5f, %.5f", r.Coordinates.Lat, r.Coordinates.Lng))
	}

	row("Created", r.CreatedAt.Format(timeDisplayFormat))

	for _, img := range r.Images {
		row("Image", img)
	}

	return b.String()
}

func (a *app) runEncroachments(ctx context.Context, cmd *CmdConfig) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	if cmd.SetStatus != "" {
		if cmd.EncroachmentID == "" {
			return errStatusNeedsID
		}

		e, err := a.client.Encroachments().UpdateStatus(ctx, cmd.EncroachmentID,
			models.EncroachmentStatus(cmd.SetStatus))
		if err != nil {
			return err
		}

		fmt.Println(a.styles.success.Render(
			fmt.Sprintf("Detection %s is now %s.", e.ID, e.Status)))

		return nil
	}

	if cmd.EncroachmentID != "" {
		e, err := a.client.Encroachments().Get(ctx, cmd.EncroachmentID)
		if err != nil {
			return err
		}

		fmt.Println(a.renderEncroachmentRow(e))

		return nil
	}

	var (
		list []models.Encroachment
		err  error
	)

	if cmd.Bounds != "" {
		bounds, parseErr := parseBounds(cmd.Bounds)
		if parseErr != nil {
			return parseErr
		}

		list, err = a.client.Encroachments().ListByArea(ctx, bounds)
	} else {
		list, err = a.client.Encroachments().List(ctx)
	}

	if err != nil {
		return err
	}

	dateRange, err := parseDateRange(cmd.Range)
	if err != nil {
		return err
	}

	filtered := stats.FilterEncroachments(list, stats.EncroachmentFilter{
		Status:        models.EncroachmentStatus(cmd.Status),
		MinConfidence: cmd.MinConfidence,
		SearchText:    cmd.Search,
		DateRange:     dateRange,
	}, time.Now())

	if len(filtered) == 0 {
		fmt.Println(a.styles.help.Render("No detections match."))
		return nil
	}

	for _, e := range filtered {
		fmt.Println(a.renderEncroachmentRow(&e))
	}

	counts := stats.CountEncroachments(filtered)
	fmt.Println()
	fmt.Println(a.styles.help.Render(fmt.Sprintf(
		"%d shown | %d new | %d verified | %d resolved",
		counts.Total, counts.New, counts.Verified, counts.Resolved)))

	return nil
}

func (a *app) renderEncroachmentRow(e *models.Encroachment) string {
	status := a.styles.encroachmentStatusStyle(e.Status).Render(fmt.Sprintf("%-14s", e.Status))

	return fmt.Sprintf("%s %s %s %s %s",
		a.styles.label.Render(fmt.Sprintf("%-12s", truncate(e.ID, 12))),
		status,
		a.styles.value.Render(fmt.Sprintf("%5.1f%%", e.Confidence)),
		a.styles.help.Render(e.DetectedAt.Format(timeDisplayFormat)),
		a.styles.value.Render(truncate(e.Location, 40)))
}

func (a *app) runAlerts(ctx context.Context, cmd *CmdConfig) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	switch {
	case cmd.MarkReadID > 0:
		if err := a.client.Alerts().MarkRead(ctx, cmd.MarkReadID); err != nil {
			return err
		}

		fmt.Println(a.styles.success.Render(fmt.Sprintf("Alert #%d acknowledged.", cmd.MarkReadID)))

		return nil
	case cmd.MarkAllRead:
		if err := a.client.Alerts().MarkAllRead(ctx); err != nil {
			return err
		}

		fmt.Println(a.styles.success.Render("All alerts acknowledged."))

		return nil
	}

	alerts, err := a.client.Alerts().List(ctx)
	if err != nil {
		return err
	}

	shown := 0

	for _, alert := range alerts {
		if cmd.UnreadOnly && alert.IsRead {
			continue
		}

		fmt.Println(a.renderAlertRow(&alert))
		shown++
	}

	if shown == 0 {
		fmt.Println(a.styles.help.Render("No alerts."))
		return nil
	}

	fmt.Println()
	fmt.Println(a.styles.help.Render(fmt.Sprintf(
		"%d shown | %d unread", shown, stats.UnreadAlerts(alerts))))

	return nil
}

func (a *app) renderAlertRow(alert *models.Alert) string {
	marker := " "
	if !alert.IsRead {
		marker = a.styles.unread.Render("*")
	}

	severity := a.styles.severityStyle(alert.Severity).Render(fmt.Sprintf("%-8s", alert.Severity))

	return fmt.Sprintf("%s %s %s %s %s",
		marker,
		a.styles.label.Render(fmt.Sprintf("#%-5d", alert.ID)),
		severity,
		a.styles.help.Render(alert.CreatedAt.Format(timeDisplayFormat)),
		a.styles.value.Render(truncate(alert.Title, 52)))
}

func (a *app) runAnalytics(ctx context.Context, cmd *CmdConfig) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	ds, err := a.client.Analytics().DashboardStats(ctx)
	if err != nil {
		return err
	}

	row := func(label string, value int) {
		fmt.Printf("%s %s\n",
			a.styles.label.Render(fmt.Sprintf("%-24s", label)),
			a.styles.value.Render(strconv.Itoa(value)))
	}

	row("Total reports", ds.TotalReports)
	row("Pending reports", ds.PendingReports)
	row("Approved reports", ds.ApprovedReports)
	row("Rejected reports", ds.RejectedReports)
	row("Total encroachments", ds.TotalEncroachments)
	row("New encroachments", ds.NewEncroachments)
	row("Resolved encroachments", ds.ResolvedEncroachments)
	row("Alerts", ds.AlertsCount)

	if cmd.Timeline != "" {
		buckets, err := a.client.Analytics().ReportsTimeline(ctx, models.TimelinePeriod(cmd.Timeline))
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(a.styles.title.Render("Reports timeline"))

		for _, b := range buckets {
			fmt.Printf("%s %s\n",
				a.styles.help.Render(b.Date),
				a.styles.value.Render(strings.Repeat("▇", min(b.Count, 60))))
		}
	}

	if cmd.Regions {
		regions, err := a.client.Analytics().EncroachmentsByRegion(ctx)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(a.styles.title.Render("Encroachments by region"))

		for _, r := range regions {
			fmt.Printf("%s %s\n",
				a.styles.label.Render(fmt.Sprintf("%-24s", truncate(r.Region, 24))),
				a.styles.value.Render(strconv.Itoa(r.Count)))
		}
	}

	return nil
}

// runWatch polls the overview on the configured interval and prints
// deltas until interrupted.
func (a *app) runWatch(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var prev *client.Overview

	fetch := func(ctx context.Context) error {
		overview, err := a.client.FetchOverview(ctx)
		if err != nil {
			fmt.Println(a.styles.error.Render("Refresh failed: " + err.Error()))
			return err
		}

		a.printOverviewDelta(prev, overview)
		prev = overview

		return nil
	}

	p, err := poller.New(&poller.Config{
		Name:     "watch",
		Interval: a.config.PollInterval,
		Overlap:  a.config.Overlap,
	}, fetch, nil, a.logger)
	if err != nil {
		return err
	}

	fmt.Println(a.styles.help.Render(fmt.Sprintf(
		"Watching every %s. Ctrl+C to stop.", time.Duration(a.config.PollInterval))))

	if err := p.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return p.Stop(stopCtx)
}

func (a *app) printOverviewDelta(prev, cur *client.Overview) {
	stamp := a.styles.help.Render(time.Now().Format("15:04:05"))

	if prev == nil {
		fmt.Printf("%s %s\n", stamp, a.styles.value.Render(fmt.Sprintf(
			"%d reports, %d detections, %d alerts (%d unread)",
			len(cur.Reports), len(cur.Encroachments), len(cur.Alerts),
			stats.UnreadAlerts(cur.Alerts))))

		return
	}

	changes := overviewDelta(prev, cur)
	if len(changes) == 0 {
		fmt.Printf("%s %s\n", stamp, a.styles.help.Render("no changes"))
		return
	}

	fmt.Printf("%s %s\n", stamp, a.styles.hint.Render(strings.Join(changes, ", ")))
}

// overviewDelta describes what moved between two snapshots.
func overviewDelta(prev, cur *client.Overview) []string {
	var changes []string

	if d := len(cur.Reports) - len(prev.Reports); d != 0 {
		changes = append(changes, fmt.Sprintf("%+d reports", d))
	}

	if d := len(cur.Encroachments) - len(prev.Encroachments); d != 0 {
		changes = append(changes, fmt.Sprintf("%+d detections", d))
	}

	if d := stats.UnreadAlerts(cur.Alerts) - stats.UnreadAlerts(prev.Alerts); d != 0 {
		changes = append(changes, fmt.Sprintf("%+d unread alerts", d))
	}

	return changes
}

// parseBounds reads "north,south,east,west" into an AreaBounds.
func parseBounds(raw string) (models.AreaBounds, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return models.AreaBounds{}, errInvalidBounds
	}

	values := make([]float64, 4)

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return models.AreaBounds{}, fmt.Errorf("%w: %q", errInvalidBounds, part)
		}

		values[i] = v
	}

	return models.AreaBounds{
		North: values[0],
		South: values[1],
		East:  values[2],
		West:  values[3],
	}, nil
}

// parseDateRange maps the -range flag onto a stats window.
func parseDateRange(raw string) (stats.DateRange, error) {
	switch stats.DateRange(strings.ToLower(strings.TrimSpace(raw))) {
	case "", stats.RangeAll:
		return stats.RangeAll, nil
	case stats.Range7d:
		return stats.Range7d, nil
	case stats.Range30d:
		return stats.Range30d, nil
	case stats.Range90d:
		return stats.Range90d, nil
	default:
		return "", errInvalidRange
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	if max <= 1 {
		return s[:max]
	}

	return s[:max-1] + "…"
}
