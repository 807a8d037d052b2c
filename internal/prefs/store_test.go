package prefs

import (
	"sync"
	"testing"
)

func TestStoreSelectPreset(t *testing.T) {
	s := NewStore(DefaultPreferences())

	if !s.SelectPreset(PresetQuizHeavy) {
		t.Fatal("SelectPreset(QUIZ_HEAVY) should apply")
	}
	if got := s.ActivePreset(); got != PresetQuizHeavy {
		t.Errorf("active preset = %s, want QUIZ_HEAVY", got)
	}

	before := s.Preferences()
	if s.SelectPreset(PresetCustom) {
		t.Error("SelectPreset(CUSTOM) must not mutate the mix")
	}
	if !s.Preferences().Equal(before) {
		t.Error("mix changed after selecting CUSTOM")
	}
}

func TestStoreSelectPresetPreservesResourceCard(t *testing.T) {
	s := NewStore(FeedPreferences{ContentMix: ContentMix{MCQ: 0.2, Flashcard: 0.3, InfoCard: 0.4, ResourceCard: 0.1}})
	s.SelectPreset(PresetBalanced)

	got := s.Preferences().ContentMix
	want := ContentMix{MCQ: 0.4, Flashcard: 0.3, InfoCard: 0.3, ResourceCard: 0.1}
	if got != want {
		t.Errorf("mix = %+v, want %+v", got, want)
	}
}

func TestStoreApplySlider(t *testing.T) {
	s := NewStore(DefaultPreferences())
	mix := s.ApplySlider(CardMCQ, 0.6)

	assertFloat(t, "mcq", mix.MCQ, 0.6)
	assertSliderSum(t, mix)
	if s.Preferences().ContentMix != mix {
		t.Error("store should hold the returned mix")
	}
}

func TestStoreDifficultyMode(t *testing.T) {
	s := NewStore(DefaultPreferences())

	if s.SetDifficultyStep(0.6) {
		t.Error("SetDifficultyStep must be ignored in automatic mode")
	}

	s.ToggleDifficultyMode()
	p := s.Preferences()
	if p.Difficulty == nil || *p.Difficulty != DefaultManualDifficulty {
		t.Fatalf("manual mode should start at %v, got %v", DefaultManualDifficulty, p.Difficulty)
	}

	if s.SetDifficultyStep(0.55) {
		t.Error("0.55 is not a step")
	}
	if !s.SetDifficultyStep(0.8) {
		t.Fatal("SetDifficultyStep(0.8) should apply in manual mode")
	}
	if d := s.Preferences().Difficulty; *d != 0.8 {
		t.Errorf("difficulty = %v, want 0.8", *d)
	}

	s.ToggleDifficultyMode()
	if s.Preferences().Difficulty != nil {
		t.Error("toggling back should return to automatic")
	}
	s.ToggleDifficultyMode()
	if d := s.Preferences().Difficulty; *d != DefaultManualDifficulty {
		t.Errorf("manual value should not be remembered, got %v", *d)
	}
}

func TestStoreResetScenario(t *testing.T) {
	s := NewStore(DefaultPreferences())
	if s.IsNonDefault() {
		t.Fatal("fresh store should be default")
	}

	s.ToggleDifficultyMode()
	s.SetDifficultyStep(0.4)
	if !s.IsNonDefault() {
		t.Fatal("manual difficulty should be non-default")
	}

	s.Reset()
	if !s.Preferences().Equal(DefaultPreferences()) {
		t.Errorf("after reset = %+v", s.Preferences())
	}
	if s.IsNonDefault() {
		t.Error("reset store should be default")
	}
}

func TestStoreSetPreferencesPartial(t *testing.T) {
	s := NewStore(DefaultPreferences())
	s.SetPreferences(Update{QuestionStyle: Style(StyleApplication)})
	s.SetPreferences(Update{Difficulty: Float(0.2)})

	p := s.Preferences()
	if p.QuestionStyle == nil || *p.QuestionStyle != StyleApplication {
		t.Errorf("style = %v", p.QuestionStyle)
	}
	if p.ActivePreset() != PresetBalanced {
		t.Error("partial update should keep the mix")
	}

	s.SetPreferences(Update{ClearDifficulty: true, ClearQuestionStyle: true})
	p = s.Preferences()
	if p.Difficulty != nil || p.QuestionStyle != nil {
		t.Errorf("clear flags not applied: %+v", p)
	}
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore(DefaultPreferences())

	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.SelectPreset(PresetFlashcardFocus)
	s.SetQuestionStyle(Style(StyleTransfer))
	s.SetDifficultyStep(0.2) // automatic mode: no change, no notification

	if len(changes) != 2 {
		t.Fatalf("got %d changes, want 2", len(changes))
	}
	if changes[0].Action != ActionPreset || changes[0].Detail != string(PresetFlashcardFocus) {
		t.Errorf("first change = %+v", changes[0])
	}
	if changes[1].Preferences.QuestionStyle == nil {
		t.Error("change should carry the new snapshot")
	}

	unsubscribe()
	s.Reset()
	if len(changes) != 2 {
		t.Error("unsubscribed listener was called")
	}
}

func TestStoreDegenerateSliderDoesNotNotify(t *testing.T) {
	s := NewStore(FeedPreferences{ContentMix: ContentMix{MCQ: 1}})
	notified := false
	s.Subscribe(func(Change) { notified = true })

	s.ApplySlider(CardMCQ, 0.5)
	if notified {
		t.Error("a no-op drag should not notify")
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	s := NewStore(DefaultPreferences())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assertSliderSum(t, s.Preferences().ContentMix)
			}
		}()
	}
	for j := 0; j < 100; j++ {
		s.ApplySlider(SliderCards[j%3], float64(j%10)/10)
	}
	wg.Wait()
}
