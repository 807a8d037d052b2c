package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/router"
	"github.com/abhisek/feedtune/internal/screen"
	"github.com/abhisek/feedtune/internal/store"
	"github.com/abhisek/feedtune/internal/ui/layout"
	"github.com/abhisek/feedtune/internal/ui/theme"
)

const historyLimit = 200

type historyLoadedMsg struct {
	Sessions []tuningSession
	Err      error
}

// tuningSession is the run of changes made in one app launch.
type tuningSession struct {
	ID      string
	Changes []store.ChangeRecord // newest first
}

func (t tuningSession) latest() store.ChangeRecord { return t.Changes[0] }

// HistoryScreen lists past tuning sessions and the changes in each.
type HistoryScreen struct {
	changeRepo store.ChangeRepo
	profile    string

	sessions []tuningSession
	cursor   int
	open     map[string]bool // keyed by session id
	loaded   bool
	err      error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

var historyKeys = struct {
	Up, Down, Toggle, All, Back key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Toggle: key.NewBinding(key.WithKeys("enter", "space")),
	All:    key.NewBinding(key.WithKeys("a")),
	Back:   key.NewBinding(key.WithKeys("esc")),
}

// New creates a HistoryScreen for profile. Records are loaded in Init.
func New(changeRepo store.ChangeRepo, profile string) *HistoryScreen {
	return &HistoryScreen{changeRepo: changeRepo, profile: profile, open: map[string]bool{}}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, profile := s.changeRepo, s.profile
	return func() tea.Msg {
		changes, err := repo.Query(context.Background(), profile, store.QueryOpts{Limit: historyLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: groupBySession(changes)}
	}
}

// groupBySession keeps the newest-first order of both sessions and changes.
func groupBySession(changes []store.ChangeRecord) []tuningSession {
	var sessions []tuningSession
	pos := map[string]int{}
	for _, c := range changes {
		i, seen := pos[c.SessionID]
		if !seen {
			i = len(sessions)
			pos[c.SessionID] = i
			sessions = append(sessions, tuningSession{ID: c.SessionID})
		}
		sessions[i].Changes = append(sessions[i].Changes, c)
	}
	return sessions
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "a", Description: "Expand all"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		s.err = msg.Err
		s.sessions = msg.Sessions
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, historyKeys.Back):
		return func() tea.Msg { return router.PopScreenMsg{} }
	case len(s.sessions) == 0:
	case key.Matches(msg, historyKeys.Up):
		s.cursor = max(s.cursor-1, 0)
	case key.Matches(msg, historyKeys.Down):
		s.cursor = min(s.cursor+1, len(s.sessions)-1)
	case key.Matches(msg, historyKeys.Toggle):
		id := s.sessions[s.cursor].ID
		s.open[id] = !s.open[id]
	case key.Matches(msg, historyKeys.All):
		// Expand everything unless everything is already open.
		all := true
		for _, sess := range s.sessions {
			all = all && s.open[sess.ID]
		}
		for _, sess := range s.sessions {
			s.open[sess.ID] = !all
		}
	}
	return nil
}

func (s *HistoryScreen) View(width, height int) string {
	switch {
	case s.err != nil:
		return centered(width, theme.ErrorText, "Error: "+s.err.Error())
	case !s.loaded:
		return centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Loading history...")
	case len(s.sessions) == 0:
		return centered(width, theme.Hint, "No changes yet. Tune your feed to get started!")
	}

	lines := []string{""}
	for i, sess := range s.sessions {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			summaryStyle(i == s.cursor).Render(summarize(sess, i == s.cursor))))
		if !s.open[sess.ID] {
			continue
		}
		for _, c := range sess.Changes {
			detail := fmt.Sprintf("    %s  %s", c.Timestamp.Local().Format("15:04:05"), describeChange(c))
			lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(actionColor(c.Action)).Render(detail)))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

func centered(width int, style lipgloss.Style, text string) string {
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text))
}

func summaryStyle(selected bool) lipgloss.Style {
	if selected {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(theme.Text)
}

// summarize renders one session as "when, how many changes, where it ended".
func summarize(sess tuningSession, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}
	last := sess.latest()
	count := "1 change"
	if n := len(sess.Changes); n != 1 {
		count = fmt.Sprintf("%d changes", n)
	}
	return fmt.Sprintf("%s%s  %s  ended on %s, %s", marker,
		last.Timestamp.Local().Format("Jan 02, 2006 15:04"), count,
		prefs.PresetLabel(last.Preferences.ActivePreset()),
		prefs.DifficultyLabel(last.Preferences.Difficulty))
}

func describeChange(c store.ChangeRecord) string {
	p := c.Preferences
	switch c.Action {
	case prefs.ActionPreset:
		return "picked " + prefs.PresetLabel(prefs.PresetKey(c.Detail))
	case prefs.ActionSlider:
		m := p.ContentMix
		return fmt.Sprintf("moved %s  (%d/%d/%d)", c.Detail,
			m.Percent(prefs.CardMCQ), m.Percent(prefs.CardFlashcard), m.Percent(prefs.CardInfo))
	case prefs.ActionDifficultyMode, prefs.ActionDifficultyStep:
		return "difficulty " + prefs.DifficultyLabel(p.Difficulty)
	case prefs.ActionQuestionStyle:
		return "style " + prefs.StyleLabel(p.QuestionStyle)
	case prefs.ActionReset:
		return "reset to defaults"
	default:
		return string(c.Action) + " " + c.Detail
	}
}

func actionColor(a prefs.Action) color.Color {
	switch a {
	case prefs.ActionPreset:
		return theme.Secondary
	case prefs.ActionSlider:
		return theme.Primary
	case prefs.ActionDifficultyMode, prefs.ActionDifficultyStep:
		return theme.Accent
	case prefs.ActionReset:
		return theme.Warning
	default:
		return theme.Text
	}
}
