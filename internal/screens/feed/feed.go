// Package feed is the scroll feed screen: it starts a backend session with
// the tuned preferences and pages through the returned cards.
package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	feedapi "github.com/abhisek/feedtune/internal/feed"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/router"
	"github.com/abhisek/feedtune/internal/screen"
	"github.com/abhisek/feedtune/internal/screens/tune"
	"github.com/abhisek/feedtune/internal/ui/components"
	"github.com/abhisek/feedtune/internal/ui/layout"
	"github.com/abhisek/feedtune/internal/ui/theme"
)

const requestTimeout = 20 * time.Second

// Backend is the part of the feed client this screen uses.
type Backend interface {
	StartSession(ctx context.Context, req feedapi.StartRequest) (*feedapi.Session, error)
	ResumeSession(ctx context.Context, sessionID string, p prefs.FeedPreferences) (*feedapi.Session, error)
}

// batchLoadedMsg carries a start or resume result.
type batchLoadedMsg struct {
	Session *feedapi.Session
	Err     error
}

// FeedScreen shows feed cards one at a time.
type FeedScreen struct {
	backend    Backend
	store      *prefs.Store
	topic      string
	sliderStep float64

	sessionID string
	cards     []prefs.Card
	hasMore   bool
	index     int
	loading   bool
	errMsg    string
	notice    string

	// requested is what the last start/resume call was sent with.
	requested prefs.FeedPreferences

	mc      components.Choice
	flipped bool
}

var _ screen.Screen = (*FeedScreen)(nil)
var _ screen.KeyHintProvider = (*FeedScreen)(nil)
var _ screen.Resumer = (*FeedScreen)(nil)

// New creates a FeedScreen. topic may be empty.
func New(backend Backend, store *prefs.Store, topic string, sliderStep float64) *FeedScreen {
	return &FeedScreen{
		backend:    backend,
		store:      store,
		topic:      topic,
		sliderStep: sliderStep,
	}
}

func (s *FeedScreen) Init() tea.Cmd {
	s.loading = true
	s.requested = s.store.Preferences()
	req := feedapi.BuildRequest(s.requested)
	req.Topic = s.topic
	backend := s.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sess, err := backend.StartSession(ctx, req)
		return batchLoadedMsg{Session: sess, Err: err}
	}
}

// resume fetches the next batch with whatever the preferences are now, so
// tuning mid-feed shapes the cards that follow.
func (s *FeedScreen) resume() tea.Cmd {
	s.loading = true
	s.notice = ""
	id := s.sessionID
	p := s.store.Preferences()
	s.requested = p
	backend := s.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		sess, err := backend.ResumeSession(ctx, id, p)
		return batchLoadedMsg{Session: sess, Err: err}
	}
}

// Resumed runs when the user comes back from the tune sheet.
func (s *FeedScreen) Resumed() tea.Cmd {
	if s.sessionID != "" && !s.store.Preferences().Equal(s.requested) {
		s.notice = "Preferences updated. The next batch will follow them."
	}
	return nil
}

func (s *FeedScreen) Title() string {
	return "Feed"
}

func (s *FeedScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "→", Description: "Next"}}
	if card := s.card(); card != nil {
		switch card.(type) {
		case prefs.MCQCard:
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Answer"})
		case prefs.FlashcardCard:
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Flip"})
		}
	}
	return append(hints,
		layout.KeyHint{Key: "T", Description: "Tune"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *FeedScreen) card() prefs.Card {
	if s.index < 0 || s.index >= len(s.cards) {
		return nil
	}
	return s.cards[s.index]
}

func (s *FeedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchLoadedMsg:
		return s.handleBatch(msg)

	case tea.KeyPressMsg:
		switch msg.String() {
		case "t":
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: tune.New(s.store, s.sliderStep)}
			}
		case "right", "n", "l":
			return s, s.next()
		case "left", "p", "h":
			if s.index > 0 {
				s.setIndex(s.index - 1)
			}
			return s, nil
		}

		switch s.card().(type) {
		case prefs.MCQCard:
			var cmd tea.Cmd
			s.mc, cmd = s.mc.Update(msg)
			return s, cmd
		case prefs.FlashcardCard:
			if msg.String() == "enter" || msg.String() == "space" {
				s.flipped = !s.flipped
			}
		}
	}
	return s, nil
}

func (s *FeedScreen) handleBatch(msg batchLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.errMsg = describeError(msg.Err)
		return s, nil
	}
	s.errMsg = ""
	first := len(s.cards) == 0
	s.sessionID = msg.Session.ID
	s.hasMore = msg.Session.HasMore
	s.cards = append(s.cards, msg.Session.Cards...)
	if first && len(s.cards) > 0 {
		s.setIndex(0)
	} else if !first && s.index < len(s.cards)-1 {
		s.setIndex(s.index + 1)
	}
	return s, nil
}

func (s *FeedScreen) next() tea.Cmd {
	if s.loading {
		return nil
	}
	if s.index < len(s.cards)-1 {
		s.setIndex(s.index + 1)
		return nil
	}
	if s.hasMore && s.sessionID != "" {
		return s.resume()
	}
	return nil
}

func (s *FeedScreen) setIndex(i int) {
	s.index = i
	s.flipped = false
	if mcq, ok := s.cards[i].(prefs.MCQCard); ok {
		s.mc = components.NewChoice(mcq.Question, mcq.Options, mcq.CorrectIndex)
	}
}

// describeError turns backend errors into a one-line message.
func describeError(err error) string {
	if wait, ok := feedapi.IsRateLimited(err); ok {
		if wait > 0 {
			return fmt.Sprintf("Too many requests. Try again in %s.", wait)
		}
		return "Too many requests. Try again in a moment."
	}
	var incompatible *feedapi.IncompatibleServerError
	if errors.As(err, &incompatible) {
		return fmt.Sprintf("This server needs feedtune %s or newer.", incompatible.MinVersion)
	}
	if errors.Is(err, feedapi.ErrInvalidResponse) {
		return "The server sent cards this version cannot read."
	}
	return err.Error()
}

func (s *FeedScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var body string

	switch {
	case s.errMsg != "" && len(s.cards) == 0:
		body = theme.ErrorText.Render(s.errMsg)
	case s.loading && len(s.cards) == 0:
		body = theme.Hint.Render("Loading your feed...")
	case len(s.cards) == 0:
		body = theme.Hint.Render("The feed is empty. Try a different mix.")
	default:
		body = s.renderCard(cw)
	}

	sections := []string{components.Panel(body, cw+4)}
	if len(s.cards) > 0 {
		status := fmt.Sprintf("Card %d of %d", s.index+1, len(s.cards))
		if s.hasMore {
			status += "+"
		}
		if s.loading {
			status += "  loading more..."
		}
		sections = append(sections, theme.Hint.Render(status))
		if s.errMsg != "" {
			sections = append(sections, theme.ErrorText.Render(s.errMsg))
		}
		if s.notice != "" {
			sections = append(sections, theme.Hint.Render(s.notice))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (s *FeedScreen) renderCard(cw int) string {
	card := s.card()
	tag := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(strings.ToUpper(card.Type().Label()))
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw - 4)
	textStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4)

	var parts []string
	parts = append(parts, tag, "")

	switch c := card.(type) {
	case prefs.MCQCard:
		parts = append(parts, s.mc.View())
		if s.mc.Answered() && c.Explanation != "" {
			parts = append(parts, theme.Hint.Width(cw-4).Render(c.Explanation))
		}
	case prefs.FlashcardCard:
		parts = append(parts, titleStyle.Render(c.Front))
		if s.flipped {
			parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Secondary).Width(cw-4).Render(c.Back))
		} else {
			parts = append(parts, "", theme.Hint.Render("press enter to flip"))
		}
	case prefs.InfoCard:
		parts = append(parts, titleStyle.Render(c.Title), "", textStyle.Render(c.Body))
	case prefs.ResourceCard:
		parts = append(parts, titleStyle.Render(c.Title))
		if c.Summary != "" {
			parts = append(parts, "", textStyle.Render(c.Summary))
		}
		parts = append(parts, "", lipgloss.NewStyle().Foreground(theme.Secondary).Underline(true).Render(c.URL))
	}
	if concept := cardConcept(card); concept != "" {
		parts = append(parts, "", theme.Hint.Render(concept))
	}
	return strings.Join(parts, "\n")
}

func cardConcept(card prefs.Card) string {
	switch c := card.(type) {
	case prefs.MCQCard:
		return c.Concept
	case prefs.FlashcardCard:
		return c.Concept
	case prefs.InfoCard:
		return c.Concept
	case prefs.ResourceCard:
		return c.Concept
	}
	return ""
}
