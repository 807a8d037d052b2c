package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/ui/components"
	"github.com/abhisek/feedtune/internal/ui/theme"
)

const arcadeTitleFull = `┏━╸┏━╸┏━╸╺┳┓╺┳╸╻ ╻┏┓╻┏━╸
┣╸ ┣╸ ┣╸  ┃┃ ┃ ┃ ┃┃┗┫┣╸
╹  ┗━╸┗━╸╺┻┛ ╹ ┗━┛╹ ╹┗━╸`

const arcadeTitleCompact = "F · E · E · D · T · U · N · E"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatusBar shows the active preset, difficulty and style in a
// double-bordered box matching content width.
func renderStatusBar(p prefs.FeedPreferences, cw int, compact bool) string {
	presetStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	diffStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	styleStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	preset := prefs.PresetLabel(p.ActivePreset())
	difficulty := prefs.DifficultyLabel(p.Difficulty)
	style := prefs.StyleLabel(p.QuestionStyle)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			presetStyle.Render(preset),
			diffStyle.Render(difficulty),
			styleStyle.Render(style),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			presetStyle.Render("▤ "+strings.ToUpper(preset)),
			diffStyle.Render("▲ "+strings.ToUpper(difficulty)),
			styleStyle.Render("? "+strings.ToUpper(style)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderMixBars draws one bar per slider card type.
func renderMixBars(mix prefs.ContentMix, cw int) string {
	var lines []string
	for _, c := range prefs.SliderCards {
		lines = append(lines, components.Slider{Label: c.Label(), Value: mix.Get(c), Width: cw}.View())
	}
	return strings.Join(lines, "\n")
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button, or as
// plain lines when compact.
func renderArcadeMenu(items []components.MenuItem, selected int, cw int, compact bool) string {
	var rendered []string
	for i, item := range items {
		if compact {
			rendered = append(rendered, compactItem(item, i == selected))
			continue
		}
		if item.Disabled {
			rendered = append(rendered, components.Pill(item.Label, false, buttonWidth))
			continue
		}
		rendered = append(rendered, components.Pill(item.Label, i == selected, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rendered, "\n"))
}

func compactItem(item components.MenuItem, selected bool) string {
	switch {
	case item.Disabled:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + item.Label)
	case selected:
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + item.Label + " ")
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("   " + item.Label)
	}
}

// renderOfflineBanner warns that no feed backend is configured.
func renderOfflineBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ No feed server configured (set FEEDTUNE_API_URL)")
}
