package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/ui/theme"
)

const (
	maxContentWidth = 64
	minContentWidth = 24
)

// ContentWidth is the shared inner width for panels inside a frame of
// frameWidth columns, so stacked panels line up.
func ContentWidth(frameWidth int) int {
	return max(minContentWidth, min(frameWidth-6, maxContentWidth))
}

// Frame draws the outer border of a full-screen view and centers content in it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Panel is a bordered box cw columns wide. Content is left aligned so slider
// rows and labels line up.
func Panel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Render(content)
}

// Pill is a selectable label used for menu entries and action rows.
func Pill(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !selected {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow).
		Render("▸ " + label)
}
