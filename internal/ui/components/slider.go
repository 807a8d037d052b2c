package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/ui/theme"
)

const (
	sliderLabelWidth = 14
	sliderMinTrack   = 4
)

// Slider draws one content mix share as a labelled horizontal bar with its
// percentage, Width columns wide in total.
type Slider struct {
	Label   string
	Value   float64 // 0..1
	Width   int
	Focused bool
	Locked  bool
}

func (s Slider) View() string {
	label := lipgloss.NewStyle().Width(sliderLabelWidth).Foreground(theme.Text)
	if s.Focused {
		label = label.Foreground(theme.Primary).Bold(true)
	}
	pct := fmt.Sprintf("  %3d%%", int(math.Floor(s.Value*100+0.5)))

	track := max(s.Width-sliderLabelWidth-2-len(pct), sliderMinTrack)
	filled := min(max(int(math.Round(float64(track)*s.Value)), 0), track)

	fill := theme.SliderFill
	switch {
	case s.Locked:
		fill = theme.SliderLocked
	case s.Focused:
		fill = theme.SliderFocused
	}

	return label.Render(s.Label) + "  " +
		lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.SliderTrack).Render(strings.Repeat(" ", track-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(pct)
}
