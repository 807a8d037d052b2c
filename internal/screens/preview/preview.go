// Package preview shows the request body the feed backend will receive for
// the current preferences.
package preview

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/feed"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/screen"
	"github.com/abhisek/feedtune/internal/ui/components"
	"github.com/abhisek/feedtune/internal/ui/layout"
	"github.com/abhisek/feedtune/internal/ui/theme"
)

// sampleSize is the feed length used for the expected card breakdown.
const sampleSize = 20

// PreviewScreen renders the start request payload.
type PreviewScreen struct {
	store *prefs.Store
}

var _ screen.Screen = (*PreviewScreen)(nil)
var _ screen.KeyHintProvider = (*PreviewScreen)(nil)

// New creates a PreviewScreen. It reads store on every render so it always
// reflects the latest preferences.
func New(store *prefs.Store) *PreviewScreen {
	return &PreviewScreen{store: store}
}

func (s *PreviewScreen) Init() tea.Cmd                           { return nil }
func (s *PreviewScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *PreviewScreen) Title() string                           { return "Request Preview" }

func (s *PreviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *PreviewScreen) View(width, height int) string {
	p := s.store.Preferences()
	cw := components.ContentWidth(width)

	body, err := Payload(p)
	if err != nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render("Error: "+err.Error()))
	}

	summary := fmt.Sprintf("%s mix, difficulty %s, style %s",
		prefs.PresetLabel(p.ActivePreset()),
		prefs.DifficultyLabel(p.Difficulty),
		prefs.StyleLabel(p.QuestionStyle))

	sections := []string{
		theme.Title.Width(cw).Render("POST /scroll/start"),
		theme.Subtitle.Width(cw).Render(summary),
		"",
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(body),
		"",
		theme.Hint.Render(Breakdown(p.ContentMix, sampleSize)),
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Panel(strings.Join(sections, "\n"), cw+4))
}

// Payload returns the indented JSON body for p.
func Payload(p prefs.FeedPreferences) (string, error) {
	b, err := json.MarshalIndent(feed.BuildRequest(p), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Breakdown describes roughly how many of n cards each type gets. Resource
// cards are carved out first; the sliders split the rest.
func Breakdown(mix prefs.ContentMix, n int) string {
	resources := int(float64(n)*mix.ResourceCard + 0.5)
	rest := n - resources
	parts := make([]string, 0, 4)
	for _, c := range prefs.SliderCards {
		parts = append(parts, fmt.Sprintf("%d %s", int(float64(rest)*mix.Get(c)+0.5), strings.ToLower(c.Label())))
	}
	parts = append(parts, fmt.Sprintf("%d %s", resources, strings.ToLower(prefs.CardResource.Label())))
	return fmt.Sprintf("Out of %d cards, expect about %s.", n, strings.Join(parts, ", "))
}
