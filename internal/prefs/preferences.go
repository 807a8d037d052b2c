// Package prefs models the scroll feed tuning preferences: the content mix
// across card types, the preset catalog, the difficulty mode and the
// question style, plus the state container the tuning UI writes through.
package prefs

import (
	"fmt"
	"math"
)

// mixEpsilon bounds how far the slider sum may drift from 1.
const mixEpsilon = 1e-6

// FeedPreferences is what the feed request builder sends to the backend.
// A nil Difficulty means the backend picks difficulty per item; a nil
// QuestionStyle means any style.
type FeedPreferences struct {
	Difficulty    *float64       `json:"difficulty" yaml:"difficulty"`
	ContentMix    ContentMix     `json:"contentMix" yaml:"content_mix"`
	QuestionStyle *QuestionStyle `json:"questionStyle" yaml:"question_style"`
}

// DefaultPreferences returns a fresh copy of the defaults: the balanced mix
// with no resource cards, automatic difficulty and any question style.
func DefaultPreferences() FeedPreferences {
	balanced, _ := LookupPreset(PresetBalanced)
	return FeedPreferences{ContentMix: balanced.Mix()}
}

// Clone returns a deep copy that shares no pointers with p.
func (p FeedPreferences) Clone() FeedPreferences {
	out := FeedPreferences{ContentMix: p.ContentMix}
	if p.Difficulty != nil {
		d := *p.Difficulty
		out.Difficulty = &d
	}
	if p.QuestionStyle != nil {
		s := *p.QuestionStyle
		out.QuestionStyle = &s
	}
	return out
}

// Equal compares by value.
func (p FeedPreferences) Equal(o FeedPreferences) bool {
	if p.ContentMix != o.ContentMix {
		return false
	}
	if (p.Difficulty == nil) != (o.Difficulty == nil) {
		return false
	}
	if p.Difficulty != nil && *p.Difficulty != *o.Difficulty {
		return false
	}
	if (p.QuestionStyle == nil) != (o.QuestionStyle == nil) {
		return false
	}
	return p.QuestionStyle == nil || *p.QuestionStyle == *o.QuestionStyle
}

// ActivePreset is DetectActivePreset over the current mix.
func (p FeedPreferences) ActivePreset() PresetKey {
	return DetectActivePreset(p.ContentMix)
}

// IsNonDefault decides whether the reset affordance is shown. Resource cards
// are not inspected.
func (p FeedPreferences) IsNonDefault() bool {
	return p.Difficulty != nil ||
		p.ActivePreset() != PresetBalanced ||
		p.QuestionStyle != nil
}

// Validate checks values coming from outside the tuning UI: stored rows,
// command line flags and imported files.
func (p FeedPreferences) Validate() error {
	for _, c := range []CardType{CardMCQ, CardFlashcard, CardInfo, CardResource} {
		v := p.ContentMix.Get(c)
		if math.IsNaN(v) || v < 0 || v > 1 {
			return &ValidationError{Field: "contentMix." + string(c), Reason: fmt.Sprintf("must be within [0,1], got %v", v)}
		}
	}
	if sum := p.ContentMix.SliderSum(); math.Abs(sum-1) > mixEpsilon {
		return &ValidationError{Field: "contentMix", Reason: fmt.Sprintf("mcq+flashcard+info_card must be 1, got %.4f", sum)}
	}
	if p.Difficulty != nil {
		if d := *p.Difficulty; math.IsNaN(d) || d < 0 || d > 1 {
			return &ValidationError{Field: "difficulty", Reason: fmt.Sprintf("must be null or within [0,1], got %v", d)}
		}
	}
	if p.QuestionStyle != nil && !p.QuestionStyle.Valid() {
		return &ValidationError{Field: "questionStyle", Reason: fmt.Sprintf("unknown style %q", *p.QuestionStyle)}
	}
	return nil
}

// Float returns a pointer to v. Handy for building difficulty values.
func Float(v float64) *float64 {
	return &v
}

// Style returns a pointer to s.
func Style(s QuestionStyle) *QuestionStyle {
	return &s
}
