package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/orderpack/internal/core/domain"
)

// Palette for status output.
var (
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
	colourMuted   = lipgloss.Color("#6C7086")
	colourTitle   = lipgloss.Color("#7C3AED")
)

var (
	successStyle = lipgloss.NewStyle().Foreground(colourSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colourWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colourError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colourMuted)
	titleStyle   = lipgloss.NewStyle().Foreground(colourTitle).Bold(true)
)

// statusStyle picks the style for a terminal run state.
func statusStyle(status domain.RunStatus) lipgloss.Style {
	switch status {
	case domain.StatusComplete:
		return successStyle
	case domain.StatusPartial:
		return warningStyle
	case domain.StatusNoLocators:
		return mutedStyle
	default:
		return errorStyle
	}
}

// renderStatus renders the final status line of a report.
func renderStatus(report *domain.RunReport) string {
	return statusStyle(report.Status).Render(report.StatusLine())
}
