package tui

import (
	"aerialtimer/internal/core/interval"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E8BE42"))

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder())

	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))

	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))

	historyHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

var phaseColors = map[interval.Phase]lipgloss.Color{
	interval.PhasePrepare:  lipgloss.Color("#E8BE42"),
	interval.PhaseWork:     lipgloss.Color("#EF5350"),
	interval.PhaseRest:     lipgloss.Color("#66BB6A"),
	interval.PhaseSetRest:  lipgloss.Color("#42A5F5"),
	interval.PhaseFinished: lipgloss.Color("#AB47BC"),
}

func phaseStyle(phase interval.Phase) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(phaseColors[phase])
}
