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
	"github.com/charmbracelet/lipgloss"

	"github.com/skyepulse/buildmonitor/pkg/models"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title     lipgloss.Style
	tagline   lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	help      lipgloss.Style
	hint      lipgloss.Style
	success   lipgloss.Style
	error     lipgloss.Style
	statusBar lipgloss.Style
	app       lipgloss.Style

	pending  lipgloss.Style
	approved lipgloss.Style
	rejected lipgloss.Style
	unread   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		tagline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)).
			Italic(true),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		value: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		statusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Background(lipgloss.Color(draculaComment)).
			Padding(0, 1),
		app: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
		pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		approved: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		rejected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)),
		unread: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)).
			Bold(true),
	}
}

// reportStatusStyle picks the color for a review state.
func (s styles) reportStatusStyle(status models.ReportStatus) lipgloss.Style {
	switch status {
	case models.ReportStatusApproved:
		return s.approved
	case models.ReportStatusRejected:
		return s.rejected
	default:
		return s.pending
	}
}

// encroachmentStatusStyle picks the color for a detection state.
func (s styles) encroachmentStatusStyle(status models.EncroachmentStatus) lipgloss.Style {
	switch status {
	case models.EncroachmentStatusResolved:
		return s.approved
	case models.EncroachmentStatusFalsePositive:
		return s.help
	case models.EncroachmentStatusVerified:
		return s.hint
	default:
		return s.pending
	}
}

// severityStyle picks the color for an alert severity.
func (s styles) severityStyle(severity models.AlertSeverity) lipgloss.Style {
	switch severity {
	case models.SeverityCritical, models.SeverityHigh:
		return s.rejected
	case models.SeverityMedium:
		return s.hint
	default:
		return s.help
	}
}
