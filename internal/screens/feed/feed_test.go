package feed

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	feedapi "github.com/abhisek/feedtune/internal/feed"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/router"
)

type fakeBackend struct {
	start       *feedapi.Session
	resume      *feedapi.Session
	err         error
	startReq    feedapi.StartRequest
	resumeID    string
	resumePrefs prefs.FeedPreferences
}

func (f *fakeBackend) StartSession(_ context.Context, req feedapi.StartRequest) (*feedapi.Session, error) {
	f.startReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.start, nil
}

func (f *fakeBackend) ResumeSession(_ context.Context, id string, p prefs.FeedPreferences) (*feedapi.Session, error) {
	f.resumeID = id
	f.resumePrefs = p
	if f.err != nil {
		return nil, f.err
	}
	return f.resume, nil
}

func mcq(id string) prefs.MCQCard {
	return prefs.MCQCard{
		CardHeader:   prefs.CardHeader{ID: id, CardType: prefs.CardMCQ},
		Question:     "What is 2+2?",
		Options:      []string{"3", "4"},
		CorrectIndex: 1,
		Explanation:  "Two pairs make four.",
	}
}

func flashcard(id string) prefs.FlashcardCard {
	return prefs.FlashcardCard{
		CardHeader: prefs.CardHeader{ID: id, CardType: prefs.CardFlashcard},
		Front:      "Capital of France",
		Back:       "Paris",
	}
}

// run executes cmd and feeds its message back into the screen.
func run(s *FeedScreen, cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	s.Update(msg)
	return msg
}

func TestStartLoadsCards(t *testing.T) {
	backend := &fakeBackend{start: &feedapi.Session{ID: "s1", Cards: []prefs.Card{mcq("a"), flashcard("b")}}}
	store := prefs.NewStore(prefs.DefaultPreferences())
	store.SelectPreset(prefs.PresetQuizHeavy)
	s := New(backend, store, "geography", 0.05)

	cmd := s.Init()
	if !strings.Contains(s.View(100, 40), "Loading") {
		t.Error("expected loading state before the first batch")
	}
	run(s, cmd)

	if backend.startReq.Topic != "geography" {
		t.Errorf("expected topic to be sent, got %q", backend.startReq.Topic)
	}
	if backend.startReq.ActivePreset() != prefs.PresetQuizHeavy {
		t.Errorf("expected current preferences in request, got %s", backend.startReq.ActivePreset())
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "What is 2+2?") {
		t.Error("expected first card in view")
	}
	if !strings.Contains(view, "Card 1 of 2") {
		t.Error("expected position in view")
	}
}

func TestAnswerAndFlip(t *testing.T) {
	backend := &fakeBackend{start: &feedapi.Session{ID: "s1", Cards: []prefs.Card{mcq("a"), flashcard("b")}}}
	s := New(backend, prefs.NewStore(prefs.DefaultPreferences()), "", 0.05)
	run(s, s.Init())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.mc.Correct() {
		t.Error("expected option B to be the correct answer")
	}
	if !strings.Contains(s.View(100, 40), "Two pairs") {
		t.Error("expected explanation after answering")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if strings.Contains(s.View(100, 40), "Paris") {
		t.Error("back should be hidden before flipping")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 40), "Paris") {
		t.Error("expected back after flipping")
	}
}

func TestResumeUsesLatestPreferences(t *testing.T) {
	backend := &fakeBackend{
		start:  &feedapi.Session{ID: "s1", HasMore: true, Cards: []prefs.Card{mcq("a")}},
		resume: &feedapi.Session{ID: "s1", Cards: []prefs.Card{flashcard("b")}},
	}
	store := prefs.NewStore(prefs.DefaultPreferences())
	s := New(backend, store, "", 0.05)
	run(s, s.Init())

	store.SelectPreset(prefs.PresetFlashcardFocus)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if cmd == nil {
		t.Fatal("expected a resume command at the end of the batch")
	}
	run(s, cmd)

	if backend.resumeID != "s1" {
		t.Errorf("expected resume of s1, got %q", backend.resumeID)
	}
	if backend.resumePrefs.ActivePreset() != prefs.PresetFlashcardFocus {
		t.Errorf("resume should carry the retuned mix, got %s", backend.resumePrefs.ActivePreset())
	}
	if s.index != 1 || len(s.cards) != 2 {
		t.Errorf("expected to advance onto the new card, index=%d cards=%d", s.index, len(s.cards))
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if cmd != nil {
		t.Error("no more cards: next should do nothing")
	}
}

func TestRateLimitMessage(t *testing.T) {
	backend := &fakeBackend{err: &feedapi.APIError{Status: 429, RetryAfter: 5 * time.Second}}
	s := New(backend, prefs.NewStore(prefs.DefaultPreferences()), "", 0.05)
	run(s, s.Init())

	if !strings.Contains(s.View(100, 40), "Try again in 5s") {
		t.Errorf("expected rate limit notice, got %q", s.errMsg)
	}
}

func TestIncompatibleServerMessage(t *testing.T) {
	err := &feedapi.IncompatibleServerError{ClientVersion: "1.0.0", MinVersion: "2.0.0"}
	if got := describeError(err); !strings.Contains(got, "2.0.0") {
		t.Errorf("unexpected message %q", got)
	}
}

func TestTuneKeyPushesTuneScreen(t *testing.T) {
	s := New(&fakeBackend{}, prefs.NewStore(prefs.DefaultPreferences()), "", 0.05)
	_, cmd := s.Update(tea.KeyPressMsg{Code: 't', Text: "t"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "Tune Feed" {
		t.Errorf("expected tune screen, got %q", push.Screen.Title())
	}
}

func TestResumedNoticesTuning(t *testing.T) {
	backend := &fakeBackend{start: &feedapi.Session{ID: "s1", Cards: []prefs.Card{mcq("a")}, HasMore: true}}
	store := prefs.NewStore(prefs.DefaultPreferences())
	s := New(backend, store, "", 0.05)
	run(s, s.Init())

	s.Resumed()
	if strings.Contains(s.View(100, 40), "Preferences updated") {
		t.Error("no notice expected when nothing changed")
	}

	store.SelectPreset(prefs.PresetFlashcardFocus)
	s.Resumed()
	if !strings.Contains(s.View(100, 40), "Preferences updated") {
		t.Error("expected notice after preferences changed")
	}
}
