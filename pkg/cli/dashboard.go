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
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyepulse/buildmonitor/pkg/client"
	"github.com/skyepulse/buildmonitor/pkg/poller"
	"github.com/skyepulse/buildmonitor/pkg/stats"
)

type dashboardTab int

const (
	tabReports dashboardTab = iota
	tabEncroachments
	tabAlerts
	tabCount
)

func (t dashboardTab) String() string {
	switch t {
	case tabEncroachments:
		return "Encroachments"
	case tabAlerts:
		return "Alerts"
	default:
		return "Reports"
	}
}

type overviewMsg struct {
	overview *client.Overview
}

type fetchFailedMsg struct {
	err error
}

type statusMsg struct {
	title   string
	message string
}

// runDashboard wires the poller into a bubbletea program: every poll
// result is pushed into the model with program.Send.
func (a *app) runDashboard(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	model := newDashboardModel(ctx, a)
	program := tea.NewProgram(model, tea.WithAltScreen())

	notifier := client.NotifierFunc(func(title, message string) {
		program.Send(statusMsg{title: title, message: message})
	})

	caller := client.NewCaller(func(ctx context.Context) (client.Overview, error) {
		overview, err := a.client.FetchOverview(ctx)
		if err != nil {
			return client.Overview{}, err
		}

		return *overview, nil
	}, client.CallerOptions{
		ErrorMessage: "Dashboard refresh failed",
		Notifier:     notifier,
		Logger:       a.logger,
	})

	fetch := func(ctx context.Context) error {
		overview, err := caller.Execute(ctx)
		if err != nil {
			program.Send(fetchFailedMsg{err: err})
			return err
		}

		program.Send(overviewMsg{overview: &overview})

		return nil
	}

	p, err := poller.New(&poller.Config{
		Name:     "dashboard",
		Interval: a.config.PollInterval,
		Overlap:  a.config.Overlap,
	}, fetch, nil, a.logger)
	if err != nil {
		return err
	}

	pollCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() { _ = p.Start(pollCtx) }()

	_, runErr := program.Run()

	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	_ = p.Stop(stopCtx)

	return runErr
}

type dashboardModel struct {
	ctx context.Context
	app *app

	tab      dashboardTab
	tables   [tabCount]table.Model
	spin     spinner.Model
	loaded   bool
	overview *client.Overview

	lastRefresh time.Time
	status      string
	statusErr   bool
	canCopy     bool
	width       int
	styles      styles
}

func newDashboardModel(ctx context.Context, a *app) *dashboardModel {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPink))),
	)

	canCopy := clipboard.WriteAll("") == nil

	m := &dashboardModel{
		ctx:     ctx,
		app:     a,
		spin:    sp,
		canCopy: canCopy,
		styles:  newStyles(),
	}

	m.tables[tabReports] = newDashboardTable([]table.Column{
		{Title: "ID", Width: 6},
		{Title: "Status", Width: 9},
		{Title: "Priority", Width: 8},
		{Title: "Created", Width: 16},
		{Title: "Location", Width: 42},
	})
	m.tables[tabEncroachments] = newDashboardTable([]table.Column{
		{Title: "ID", Width: 12},
		{Title: "Status", Width: 14},
		{Title: "Conf", Width: 6},
		{Title: "Detected", Width: 16},
		{Title: "Location", Width: 36},
	})
	m.tables[tabAlerts] = newDashboardTable([]table.Column{
		{Title: "ID", Width: 6},
		{Title: "Sev", Width: 8},
		{Title: "Read", Width: 5},
		{Title: "Created", Width: 16},
		{Title: "Title", Width: 46},
	})

	m.tables[m.tab].Focus()

	return m
}

func newDashboardTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Foreground(lipgloss.Color(draculaYellow)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(draculaComment)).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(draculaForeground)).
		Background(lipgloss.Color(draculaPurple)).
		Bold(false)
	t.SetStyles(ts)

	return t
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}

		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd
	case overviewMsg:
		m.loaded = true
		m.overview = msg.overview
		m.lastRefresh = time.Now()
		m.status = ""
		m.statusErr = false
		m.populateTables()

		return m, nil
	case fetchFailedMsg:
		m.status = msg.err.Error()
		m.statusErr = true

		return m, nil
	case statusMsg:
		m.status = msg.message
		m.statusErr = msg.title == "Error"

		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *dashboardModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "tab":
		m.switchTab((m.tab + 1) % tabCount)
		return m, nil
	case "shift+tab":
		m.switchTab((m.tab + tabCount - 1) % tabCount)
		return m, nil
	case "r":
		return m, m.refreshCmd()
	case "c":
		m.copySelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.tables[m.tab], cmd = m.tables[m.tab].Update(msg)

	return m, cmd
}

func (m *dashboardModel) switchTab(next dashboardTab) {
	m.tables[m.tab].Blur()
	m.tab = next
	m.tables[m.tab].Focus()
}

// refreshCmd runs a one-off fetch outside the poller cadence.
func (m *dashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		overview, err := m.app.client.FetchOverview(m.ctx)
		if err != nil {
			return fetchFailedMsg{err: err}
		}

		return overviewMsg{overview: overview}
	}
}

// copySelection puts the selected row's identifier on the clipboard.
func (m *dashboardModel) copySelection() {
	if !m.canCopy {
		m.status = "Clipboard unavailable"
		m.statusErr = true

		return
	}

	row := m.tables[m.tab].SelectedRow()
	if len(row) == 0 {
		return
	}

	if err := clipboard.WriteAll(row[0]); err != nil {
		m.status = "Failed to copy to clipboard"
		m.statusErr = true

		return
	}

	m.status = fmt.Sprintf("Copied %s", row[0])
	m.statusErr = false
}

func (m *dashboardModel) populateTables() {
	o := m.overview

	reportRows := make([]table.Row, 0, len(o.Reports))
	for _, r := range o.Reports {
		reportRows = append(reportRows, table.Row{
			strconv.FormatInt(r.ID, 10),
			string(r.Status),
			string(r.Priority),
			r.CreatedAt.Format(timeDisplayFormat),
			truncate(r.Location, 42),
		})
	}

	encroachmentRows := make([]table.Row, 0, len(o.Encroachments))
	for _, e := range o.Encroachments {
		encroachmentRows = append(encroachmentRows, table.Row{
			truncate(e.ID, 12),
			string(e.Status),
			fmt.Sprintf("%.0f%%", e.Confidence),
			e.DetectedAt.Format(timeDisplayFormat),
			truncate(e.Location, 36),
		})
	}

	alertRows := make([]table.Row, 0, len(o.Alerts))
	for _, alert := range o.Alerts {
		read := " "
		if !alert.IsRead {
			read = "*"
		}

		alertRows = append(alertRows, table.Row{
			strconv.FormatInt(alert.ID, 10),
			string(alert.Severity),
			read,
			alert.CreatedAt.Format(timeDisplayFormat),
			truncate(alert.Title, 46),
		})
	}

	m.tables[tabReports].SetRows(reportRows)
	m.tables[tabEncroachments].SetRows(encroachmentRows)
	m.tables[tabAlerts].SetRows(alertRows)
}

func (m *dashboardModel) View() string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple)).Render("🛰 "),
		m.styles.title.Render(appName),
		m.styles.tagline.Render("  "+appTagline),
	)

	if !m.loaded {
		body := fmt.Sprintf("%s Loading dashboard…", m.spin.View())
		return m.styles.app.Render(title + "\n\n" + body)
	}

	tabs := make([]string, 0, tabCount)

	for t := dashboardTab(0); t < tabCount; t++ {
		label := t.String()
		if t == m.tab {
			tabs = append(tabs, m.styles.title.Render("["+label+"]"))
		} else {
			tabs = append(tabs, m.styles.help.Render(" "+label+" "))
		}
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		header,
		m.tables[m.tab].View(),
		"",
		m.summaryLine(),
		m.statusLine(),
		m.styles.help.Render("Tab → switch view | r → refresh | c → copy id | q → quit"),
	)

	return m.styles.app.Render(content)
}

func (m *dashboardModel) summaryLine() string {
	o := m.overview
	rc := stats.CountByStatus(o.Reports)
	ec := stats.CountEncroachments(o.Encroachments)

	return m.styles.help.Render(fmt.Sprintf(
		"%d reports (%d pending) | %d detections (%d new) | %d unread alerts | refreshed %s",
		rc.Total, rc.Pending, ec.Total, ec.New,
		stats.UnreadAlerts(o.Alerts),
		m.lastRefresh.Format("15:04:05")))
}

func (m *dashboardModel) statusLine() string {
	if m.status == "" {
		return ""
	}

	if m.statusErr {
		return m.styles.error.Render(m.status)
	}

	return m.styles.success.Render(m.status)
}
