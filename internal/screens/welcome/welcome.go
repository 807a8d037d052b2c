// Package welcome is the start-up splash: three equalizer bars, one per
// tunable card type, bounce and then settle before the banner appears.
package welcome

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/router"
	"github.com/abhisek/feedtune/internal/screen"
	"github.com/abhisek/feedtune/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond  // bars turn from grey to color
	phase2End    = 1500 * time.Millisecond // bars settle, banner shows
	totalDur     = 4500 * time.Millisecond
)

var equalizerFrames = [][3]int{
	{2, 6, 4},
	{5, 3, 6},
	{7, 4, 2},
	{4, 6, 5},
	{6, 5, 5},
}

const equalizerHeight = 7

type tickMsg time.Time

func nextTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// WelcomeScreen animates until a key is pressed, then replaces itself with
// the screen built by next.
type WelcomeScreen struct {
	next  func() screen.Screen
	ticks int

	elapsed time.Duration
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextTick() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.ticks++
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		return w, nextTick()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		home := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	frame := equalizerFrames[len(equalizerFrames)-1]
	settled := w.elapsed >= phase2End
	if !settled {
		frame = equalizerFrames[w.ticks%len(equalizerFrames)]
	}

	parts := []string{renderEqualizer(frame, w.elapsed >= phase1End)}
	if settled {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Tune what your study feed serves you."),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}

// renderEqualizer draws one bar per slider card type, levels counted in rows
// from the bottom. Bars stay grey until colored is set.
func renderEqualizer(levels [3]int, colored bool) string {
	palette := [3]color.Color{theme.Primary, theme.Secondary, theme.Accent}
	rows := make([]string, 0, equalizerHeight)
	for row := equalizerHeight; row > 0; row-- {
		cells := make([]string, len(levels))
		for i, level := range levels {
			if level < row {
				cells[i] = "   "
				continue
			}
			c := color.Color(theme.TextDim)
			if colored {
				c = palette[i]
			}
			cells[i] = lipgloss.NewStyle().Background(c).Render("   ")
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}
