package tune

import (
	"math"
	"testing"

	"github.com/abhisek/feedtune/internal/prefs"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestSheet(p prefs.FeedPreferences) (*Sheet, *prefs.Store) {
	store := prefs.NewStore(p)
	return NewSheet(store, 0.05), store
}

func TestNewSheetExpandsForCustomMix(t *testing.T) {
	s, _ := newTestSheet(prefs.DefaultPreferences())
	if s.ShowCustom() {
		t.Error("default mix should start collapsed")
	}

	custom := prefs.DefaultPreferences()
	custom.ContentMix = prefs.ContentMix{MCQ: 0.5, Flashcard: 0.25, InfoCard: 0.25, ResourceCard: 0.1}
	s, _ = newTestSheet(custom)
	if !s.ShowCustom() {
		t.Error("custom mix should start expanded")
	}
	if s.HighlightedPreset() != prefs.PresetCustom {
		t.Errorf("expected CUSTOM highlighted, got %s", s.HighlightedPreset())
	}
}

func TestNewSheetStepFallback(t *testing.T) {
	s := NewSheet(prefs.NewStore(prefs.DefaultPreferences()), 0)
	if s.step != DefaultSliderStep {
		t.Errorf("expected default step, got %v", s.step)
	}
}

func TestSelectCustomOnlyExpands(t *testing.T) {
	s, store := newTestSheet(prefs.DefaultPreferences())
	before := store.Preferences()

	s.SelectPreset(prefs.PresetCustom)

	if !s.ShowCustom() {
		t.Error("expected sliders expanded")
	}
	if !store.Preferences().Equal(before) {
		t.Error("selecting custom must not change the mix")
	}
	if s.HighlightedPreset() != prefs.PresetCustom {
		t.Errorf("expected CUSTOM highlighted, got %s", s.HighlightedPreset())
	}
}

func TestSelectNamedPresetCollapses(t *testing.T) {
	s, store := newTestSheet(prefs.DefaultPreferences())
	s.SelectPreset(prefs.PresetCustom)
	s.SelectPreset(prefs.PresetQuizHeavy)

	if s.ShowCustom() {
		t.Error("named preset should collapse the sliders")
	}
	mix := store.Preferences().ContentMix
	if !approx(mix.MCQ, 0.6) || !approx(mix.Flashcard, 0.2) || !approx(mix.InfoCard, 0.2) {
		t.Errorf("unexpected mix %+v", mix)
	}
	if !approx(mix.ResourceCard, 0.1) {
		t.Errorf("resource share must be kept, got %v", mix.ResourceCard)
	}
}

func TestNudge(t *testing.T) {
	s, store := newTestSheet(prefs.DefaultPreferences())

	if !s.Nudge(prefs.CardMCQ, +1) {
		t.Fatal("nudge should succeed")
	}
	mix := store.Preferences().ContentMix
	if !approx(mix.MCQ, 0.45) {
		t.Errorf("expected mcq 0.45, got %v", mix.MCQ)
	}
	if !approx(mix.SliderSum(), 1) {
		t.Errorf("sliders must sum to 1, got %v", mix.SliderSum())
	}
	if store.ActivePreset() != prefs.PresetCustom {
		t.Errorf("expected CUSTOM after nudge, got %s", store.ActivePreset())
	}
}

func TestNudgeLocked(t *testing.T) {
	p := prefs.DefaultPreferences()
	p.ContentMix = prefs.ContentMix{MCQ: 1, ResourceCard: 0.1}
	s, store := newTestSheet(p)

	if !s.Locked(prefs.CardMCQ) {
		t.Error("mcq should be locked when the others are zero")
	}
	if s.Locked(prefs.CardFlashcard) {
		t.Error("flashcard can still take share from mcq")
	}
	if s.Nudge(prefs.CardMCQ, -1) {
		t.Error("locked nudge should report false")
	}
	if !store.Preferences().Equal(p) {
		t.Error("locked nudge must not change preferences")
	}
}

func TestSetSliderClamps(t *testing.T) {
	s, store := newTestSheet(prefs.DefaultPreferences())

	if !s.SetSlider(prefs.CardMCQ, 150) {
		t.Fatal("set should succeed")
	}
	mix := store.Preferences().ContentMix
	if !approx(mix.MCQ, 1) || !approx(mix.Flashcard, 0) || !approx(mix.InfoCard, 0) {
		t.Errorf("expected everything on mcq, got %+v", mix)
	}

	// Now mcq is locked; flashcard can still pull from it.
	if !s.SetSlider(prefs.CardFlashcard, 30) {
		t.Fatal("flashcard set should succeed")
	}
	mix = store.Preferences().ContentMix
	if !approx(mix.Flashcard, 0.3) || !approx(mix.MCQ, 0.7) {
		t.Errorf("unexpected mix %+v", mix)
	}
}

func TestShiftDifficulty(t *testing.T) {
	s, store := newTestSheet(prefs.DefaultPreferences())

	s.ShiftDifficulty(+1)
	if store.Preferences().Difficulty != nil {
		t.Fatal("shifting in auto mode should do nothing")
	}

	s.ToggleDifficultyMode()
	s.ShiftDifficulty(+1)
	if got := *store.Preferences().Difficulty; !approx(got, 0.6) {
		t.Errorf("0.5 shifted harder should land on Hard, got %v", got)
	}

	store.ToggleDifficultyMode()
	store.ToggleDifficultyMode()
	s.ShiftDifficulty(-1)
	if got := *store.Preferences().Difficulty; !approx(got, 0.4) {
		t.Errorf("0.5 shifted easier should land on Medium, got %v", got)
	}

	s.ShiftDifficulty(-1)
	s.ShiftDifficulty(-1)
	if got := *store.Preferences().Difficulty; !approx(got, 0.2) {
		t.Errorf("expected to stop at Easy, got %v", got)
	}
}

func TestShiftStyleWraps(t *testing.T) {
	s, store := newTestSheet(prefs.DefaultPreferences())

	s.ShiftStyle(+1)
	if got := store.Preferences().QuestionStyle; got == nil || *got != prefs.StyleConceptual {
		t.Errorf("expected conceptual, got %v", prefs.StyleLabel(got))
	}

	s.ShiftStyle(-1)
	s.ShiftStyle(-1)
	if got := store.Preferences().QuestionStyle; got == nil || *got != prefs.StyleTransfer {
		t.Errorf("expected wrap to transfer, got %v", prefs.StyleLabel(got))
	}
}

func TestShiftPreset(t *testing.T) {
	s, store := newTestSheet(prefs.DefaultPreferences())

	s.ShiftPreset(+1)
	if store.ActivePreset() != prefs.PresetFlashcardFocus {
		t.Errorf("expected FLASHCARD_FOCUS, got %s", store.ActivePreset())
	}
	s.ShiftPreset(+1)
	if !s.ShowCustom() || s.HighlightedPreset() != prefs.PresetCustom {
		t.Error("expected custom expanded")
	}
	s.ShiftPreset(+1)
	if store.ActivePreset() != prefs.PresetQuizHeavy || s.ShowCustom() {
		t.Errorf("expected wrap to QUIZ_HEAVY, got %s", store.ActivePreset())
	}
}

func TestReset(t *testing.T) {
	s, store := newTestSheet(prefs.DefaultPreferences())
	if s.CanReset() {
		t.Error("defaults should not offer reset")
	}

	s.SelectPreset(prefs.PresetCustom)
	s.Nudge(prefs.CardInfo, +1)
	s.ToggleDifficultyMode()
	if !s.CanReset() {
		t.Fatal("expected reset offered")
	}

	s.Reset()
	if s.CanReset() || s.ShowCustom() {
		t.Error("reset should restore defaults and collapse")
	}
	if !store.Preferences().Equal(prefs.DefaultPreferences()) {
		t.Errorf("unexpected preferences after reset: %+v", store.Preferences())
	}
}
