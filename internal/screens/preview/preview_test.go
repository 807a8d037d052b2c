package preview

import (
	"strings"
	"testing"

	"github.com/abhisek/feedtune/internal/prefs"
)

func TestPayloadFieldNames(t *testing.T) {
	body, err := Payload(prefs.DefaultPreferences())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"difficulty": null`, `"contentMix"`, `"info_card": 0.3`, `"resource_card": 0.1`, `"questionStyle": null`} {
		if !strings.Contains(body, want) {
			t.Errorf("payload missing %s:\n%s", want, body)
		}
	}
}

func TestBreakdown(t *testing.T) {
	got := Breakdown(prefs.DefaultPreferences().ContentMix, 20)
	want := "Out of 20 cards, expect about 7 quiz, 5 flashcards, 5 info cards, 2 resources."
	if got != want {
		t.Errorf("Breakdown = %q, want %q", got, want)
	}
}

func TestViewReflectsStore(t *testing.T) {
	store := prefs.NewStore(prefs.DefaultPreferences())
	s := New(store)
	if !strings.Contains(s.View(100, 40), "Balanced") {
		t.Error("expected Balanced in summary")
	}
	store.SelectPreset(prefs.PresetQuizHeavy)
	if !strings.Contains(s.View(100, 40), "Quiz Heavy") {
		t.Error("expected view to follow the store")
	}
}
