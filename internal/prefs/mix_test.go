package prefs

import (
	"math"
	"math/rand"
	"testing"
)

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertSliderSum(t *testing.T, mix ContentMix) {
	t.Helper()
	if sum := mix.SliderSum(); math.Abs(sum-1) > 1e-6 {
		t.Errorf("slider sum = %v, want 1 (mix %+v)", sum, mix)
	}
}

func TestApplySliderChangeProportional(t *testing.T) {
	mix := ContentMix{MCQ: 0.2, Flashcard: 0.4, InfoCard: 0.4}
	got := ApplySliderChange(mix, CardMCQ, 0.4)

	assertFloat(t, "mcq", got.MCQ, 0.4)
	assertFloat(t, "flashcard", got.Flashcard, 0.3)
	assertFloat(t, "info_card", got.InfoCard, 0.3)
	assertSliderSum(t, got)
}

func TestApplySliderChangeUnevenShares(t *testing.T) {
	// flashcard holds 3/4 of the others, so it gives up 3/4 of the delta.
	mix := ContentMix{MCQ: 0.2, Flashcard: 0.6, InfoCard: 0.2}
	got := ApplySliderChange(mix, CardMCQ, 0.6)

	assertFloat(t, "mcq", got.MCQ, 0.6)
	assertFloat(t, "flashcard", got.Flashcard, 0.3)
	assertFloat(t, "info_card", got.InfoCard, 0.1)
}

func TestApplySliderChangeDecrease(t *testing.T) {
	mix := ContentMix{MCQ: 0.6, Flashcard: 0.2, InfoCard: 0.2}
	got := ApplySliderChange(mix, CardMCQ, 0.2)

	assertFloat(t, "mcq", got.MCQ, 0.2)
	assertFloat(t, "flashcard", got.Flashcard, 0.4)
	assertFloat(t, "info_card", got.InfoCard, 0.4)
}

func TestApplySliderChangeDegenerateNoop(t *testing.T) {
	mix := ContentMix{MCQ: 1}
	got := ApplySliderChange(mix, CardMCQ, 0.5)
	if got != mix {
		t.Errorf("expected unchanged mix, got %+v", got)
	}
	if CanRedistribute(mix, CardMCQ) {
		t.Error("CanRedistribute should be false when both other sliders are zero")
	}
	if !CanRedistribute(mix, CardFlashcard) {
		t.Error("CanRedistribute(flashcard) should be true while mcq is non-zero")
	}
}

func TestApplySliderChangeKeepsResourceCard(t *testing.T) {
	mix := ContentMix{MCQ: 0.4, Flashcard: 0.3, InfoCard: 0.3, ResourceCard: 0.15}
	got := ApplySliderChange(mix, CardFlashcard, 0.5)
	assertFloat(t, "resource_card", got.ResourceCard, 0.15)
	assertSliderSum(t, got)
}

func TestApplySliderChangeFloorsAtZero(t *testing.T) {
	mix := ContentMix{MCQ: 0.2, Flashcard: 0.4, InfoCard: 0.4}
	got := ApplySliderChange(mix, CardInfo, 1)

	assertFloat(t, "mcq", got.MCQ, 0)
	assertFloat(t, "flashcard", got.Flashcard, 0)
	assertFloat(t, "info_card", got.InfoCard, 1)
}

func TestApplySliderChangeRejectsResourceCard(t *testing.T) {
	mix := ContentMix{MCQ: 0.4, Flashcard: 0.3, InfoCard: 0.3, ResourceCard: 0.1}
	if got := ApplySliderChange(mix, CardResource, 0.5); got != mix {
		t.Errorf("resource card is not a slider, got %+v", got)
	}
}

func TestApplySliderChangeInfoAbsorbsRemainder(t *testing.T) {
	// The dragged value is kept unrounded, so the slider sum is 0.9933 before
	// rescaling; mcq and flashcard are rescaled and info_card is the remainder.
	mix := ContentMix{MCQ: 0.5, Flashcard: 0.25, InfoCard: 0.25}
	got := ApplySliderChange(mix, CardMCQ, 1.0/3)

	assertFloat(t, "mcq", got.MCQ, 0.34)
	assertFloat(t, "flashcard", got.Flashcard, 0.33)
	assertFloat(t, "info_card", got.InfoCard, 0.33)
	assertSliderSum(t, got)
}

func TestApplySliderChangeRandomDragsKeepSum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		mix := ContentMix{MCQ: 0.4, Flashcard: 0.3, InfoCard: 0.3, ResourceCard: 0.05}
		for i := 0; i < 50; i++ {
			card := SliderCards[rng.Intn(len(SliderCards))]
			value := ClampUnit(mix.Get(card) + (rng.Float64()-0.5)*0.4)
			mix = ApplySliderChange(mix, card, value)

			assertSliderSum(t, mix)
			assertFloat(t, "resource_card", mix.ResourceCard, 0.05)
			if mix.MCQ < 0 || mix.Flashcard < 0 {
				t.Fatalf("negative proportion after drag: %+v", mix)
			}
		}
	}
}

func TestApplySliderChangeRepeatedTicksConverge(t *testing.T) {
	mix := ContentMix{MCQ: 0.4, Flashcard: 0.3, InfoCard: 0.3}
	first := ApplySliderChange(mix, CardFlashcard, 0.45)
	again := ApplySliderChange(first, CardFlashcard, 0.45)
	if first != again {
		t.Errorf("re-applying the same value drifted: %+v -> %+v", first, again)
	}
}

func TestClampUnit(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.2, 0},
		{0, 0},
		{0.35, 0.35},
		{1, 1},
		{1.4, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assertFloat(t, "ClampUnit", ClampUnit(tt.in), tt.want)
	}
}

func TestParseCardType(t *testing.T) {
	tests := []struct {
		in      string
		want    CardType
		wantErr bool
	}{
		{"mcq", CardMCQ, false},
		{"Flashcard", CardFlashcard, false},
		{"info-card", CardInfo, false},
		{"resource_card", CardResource, false},
		{"video", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCardType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCardType(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCardType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	mix := ContentMix{MCQ: 0.29, Flashcard: 0.355, InfoCard: 0.355}
	if got := mix.Percent(CardMCQ); got != 29 {
		t.Errorf("Percent(mcq) = %d, want 29", got)
	}
	if got := mix.Percent(CardResource); got != 0 {
		t.Errorf("Percent(resource) = %d, want 0", got)
	}
}
