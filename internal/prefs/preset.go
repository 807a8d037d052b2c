package prefs

import (
	"fmt"
	"math"
	"strings"
)

// PresetKey names a content-mix preset. PresetCustom is never stored as data;
// it is what DetectActivePreset reports when no catalog preset matches.
type PresetKey string

const (
	PresetQuizHeavy      PresetKey = "QUIZ_HEAVY"
	PresetBalanced       PresetKey = "BALANCED"
	PresetFlashcardFocus PresetKey = "FLASHCARD_FOCUS"
	PresetCustom         PresetKey = "CUSTOM"
)

// presetTolerance is the per-component absolute difference under which a mix
// still counts as matching a preset.
const presetTolerance = 0.01

// Preset is a named mix over the three slider card types.
type Preset struct {
	Key         PresetKey
	Label       string
	Description string
	MCQ         float64
	Flashcard   float64
	InfoCard    float64
}

// catalog order is also the tie-break order for detection.
var catalog = []Preset{
	{Key: PresetQuizHeavy, Label: "Quiz Heavy", Description: "Mostly questions", MCQ: 0.6, Flashcard: 0.2, InfoCard: 0.2},
	{Key: PresetBalanced, Label: "Balanced", Description: "A bit of everything", MCQ: 0.4, Flashcard: 0.3, InfoCard: 0.3},
	{Key: PresetFlashcardFocus, Label: "Flashcard Focus", Description: "Recall practice", MCQ: 0.2, Flashcard: 0.6, InfoCard: 0.2},
}

// Presets returns the preset catalog in display order.
func Presets() []Preset {
	out := make([]Preset, len(catalog))
	copy(out, catalog)
	return out
}

// PresetKeys returns every selectable key, including PresetCustom last.
func PresetKeys() []PresetKey {
	keys := make([]PresetKey, 0, len(catalog)+1)
	for _, p := range catalog {
		keys = append(keys, p.Key)
	}
	return append(keys, PresetCustom)
}

// LookupPreset returns the catalog entry for key.
func LookupPreset(key PresetKey) (Preset, bool) {
	for _, p := range catalog {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// PresetLabel returns the display label for key.
func PresetLabel(key PresetKey) string {
	if p, ok := LookupPreset(key); ok {
		return p.Label
	}
	if key == PresetCustom {
		return "Custom"
	}
	return string(key)
}

// ParsePresetKey accepts keys in any case, with hyphens, underscores or
// spaces as separators ("quiz-heavy", "Flashcard Focus").
func ParsePresetKey(s string) (PresetKey, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	key := PresetKey(norm)
	if key == PresetCustom {
		return key, nil
	}
	if _, ok := LookupPreset(key); ok {
		return key, nil
	}
	return "", fmt.Errorf("unknown preset %q", s)
}

// Apply returns mix with the preset's three slider values. The resource card
// proportion carries over unchanged and is not renormalized against.
func (p Preset) Apply(mix ContentMix) ContentMix {
	return ContentMix{
		MCQ:          p.MCQ,
		Flashcard:    p.Flashcard,
		InfoCard:     p.InfoCard,
		ResourceCard: mix.ResourceCard,
	}
}

// Mix returns the preset as a ContentMix with no resource cards.
func (p Preset) Mix() ContentMix {
	return p.Apply(ContentMix{})
}

func (p Preset) matches(mix ContentMix) bool {
	return math.Abs(mix.MCQ-p.MCQ) < presetTolerance &&
		math.Abs(mix.Flashcard-p.Flashcard) < presetTolerance &&
		math.Abs(mix.InfoCard-p.InfoCard) < presetTolerance
}

// DetectActivePreset returns the first catalog preset whose three slider
// values are all within tolerance of mix, or PresetCustom. Resource cards are
// ignored.
func DetectActivePreset(mix ContentMix) PresetKey {
	for _, p := range catalog {
		if p.matches(mix) {
			return p.Key
		}
	}
	return PresetCustom
}
