package prefs

import "testing"

func TestDetectActivePresetCatalog(t *testing.T) {
	for _, p := range Presets() {
		if got := DetectActivePreset(p.Mix()); got != p.Key {
			t.Errorf("DetectActivePreset(%s values) = %s", p.Key, got)
		}
	}
}

func TestDetectActivePresetTolerance(t *testing.T) {
	tests := []struct {
		name string
		mix  ContentMix
		want PresetKey
	}{
		{"within tolerance", ContentMix{MCQ: 0.405, Flashcard: 0.295, InfoCard: 0.3}, PresetBalanced},
		{"two hundredths off", ContentMix{MCQ: 0.42, Flashcard: 0.28, InfoCard: 0.3}, PresetCustom},
		{"resource card ignored", ContentMix{MCQ: 0.6, Flashcard: 0.2, InfoCard: 0.2, ResourceCard: 0.3}, PresetQuizHeavy},
		{"arbitrary", ContentMix{MCQ: 0.5, Flashcard: 0.25, InfoCard: 0.25}, PresetCustom},
		{"all zero", ContentMix{}, PresetCustom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectActivePreset(tt.mix); got != tt.want {
				t.Errorf("DetectActivePreset(%+v) = %s, want %s", tt.mix, got, tt.want)
			}
		})
	}
}

func TestPresetApplyKeepsResourceCard(t *testing.T) {
	start := ContentMix{MCQ: 0.2, Flashcard: 0.3, InfoCard: 0.4, ResourceCard: 0.1}
	balanced, _ := LookupPreset(PresetBalanced)
	got := balanced.Apply(start)

	want := ContentMix{MCQ: 0.4, Flashcard: 0.3, InfoCard: 0.3, ResourceCard: 0.1}
	if got != want {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
}

func TestLookupPresetCustom(t *testing.T) {
	if _, ok := LookupPreset(PresetCustom); ok {
		t.Error("CUSTOM must not be a catalog entry")
	}
}

func TestPresetKeysOrder(t *testing.T) {
	want := []PresetKey{PresetQuizHeavy, PresetBalanced, PresetFlashcardFocus, PresetCustom}
	got := PresetKeys()
	if len(got) != len(want) {
		t.Fatalf("PresetKeys() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PresetKeys()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestParsePresetKey(t *testing.T) {
	tests := []struct {
		in      string
		want    PresetKey
		wantErr bool
	}{
		{"QUIZ_HEAVY", PresetQuizHeavy, false},
		{"quiz-heavy", PresetQuizHeavy, false},
		{"Flashcard Focus", PresetFlashcardFocus, false},
		{"custom", PresetCustom, false},
		{"everything", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePresetKey(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePresetKey(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePresetKey(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPresetsReturnsCopy(t *testing.T) {
	ps := Presets()
	ps[0].MCQ = 0.99
	if p, _ := LookupPreset(PresetQuizHeavy); p.MCQ != 0.6 {
		t.Error("mutating Presets() result changed the catalog")
	}
}
