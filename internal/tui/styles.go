package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/commerce-console/models"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

func activityStyle(level models.ActivityLevel) lipgloss.Style {
	switch level {
	case models.ActivityError:
		return errorStyle
	case models.ActivityWarning:
		return warningStyle
	default:
		return successStyle
	}
}
