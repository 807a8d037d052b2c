package prefs

import (
	"fmt"
	"math"
	"strings"
)

// CardType identifies one of the card kinds the scroll feed can serve.
// The string values are the backend's wire names.
type CardType string

const (
	CardMCQ       CardType = "mcq"
	CardFlashcard CardType = "flashcard"
	CardInfo      CardType = "info_card"
	CardResource  CardType = "resource_card"
)

// SliderCards are the card types whose proportions are redistributed among
// themselves when one of them is dragged. Resource cards are held out.
var SliderCards = [...]CardType{CardMCQ, CardFlashcard, CardInfo}

// IsSlider reports whether c takes part in slider redistribution.
func (c CardType) IsSlider() bool {
	switch c {
	case CardMCQ, CardFlashcard, CardInfo:
		return true
	}
	return false
}

// Label returns a display name for the card type.
func (c CardType) Label() string {
	switch c {
	case CardMCQ:
		return "Quiz"
	case CardFlashcard:
		return "Flashcards"
	case CardInfo:
		return "Info cards"
	case CardResource:
		return "Resources"
	}
	return string(c)
}

// ParseCardType converts a wire name into a CardType. Hyphens are accepted
// in place of underscores so "info-card" works on the command line.
func ParseCardType(s string) (CardType, error) {
	c := CardType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch c {
	case CardMCQ, CardFlashcard, CardInfo, CardResource:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCardType, s)
}

// ContentMix holds the proportion of each card type in the feed.
type ContentMix struct {
	MCQ          float64 `json:"mcq" yaml:"mcq"`
	Flashcard    float64 `json:"flashcard" yaml:"flashcard"`
	InfoCard     float64 `json:"info_card" yaml:"info_card"`
	ResourceCard float64 `json:"resource_card" yaml:"resource_card"`
}

// Get returns the proportion for c, or 0 for an unknown type.
func (m ContentMix) Get(c CardType) float64 {
	switch c {
	case CardMCQ:
		return m.MCQ
	case CardFlashcard:
		return m.Flashcard
	case CardInfo:
		return m.InfoCard
	case CardResource:
		return m.ResourceCard
	}
	return 0
}

// With returns a copy of m with c set to v.
func (m ContentMix) With(c CardType, v float64) ContentMix {
	switch c {
	case CardMCQ:
		m.MCQ = v
	case CardFlashcard:
		m.Flashcard = v
	case CardInfo:
		m.InfoCard = v
	case CardResource:
		m.ResourceCard = v
	}
	return m
}

// SliderSum is mcq + flashcard + info_card.
func (m ContentMix) SliderSum() float64 {
	return m.MCQ + m.Flashcard + m.InfoCard
}

// Sum is the total over all four card types.
func (m ContentMix) Sum() float64 {
	return m.SliderSum() + m.ResourceCard
}

// Percent returns the proportion for c as a whole percentage.
func (m ContentMix) Percent(c CardType) int {
	return int(math.Floor(m.Get(c)*100 + 0.5))
}

// ClampUnit clamps v to [0, 1]. Callers clamp slider input with it before
// handing the value to ApplySliderChange.
func ClampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// otherSliders returns the two slider card types other than c, in catalog order.
func otherSliders(c CardType) [2]CardType {
	var out [2]CardType
	i := 0
	for _, s := range SliderCards {
		if s != c && i < len(out) {
			out[i] = s
			i++
		}
	}
	return out
}

// CanRedistribute reports whether dragging changed can move anything: the
// other two sliders must have a non-zero sum to absorb the delta.
func CanRedistribute(mix ContentMix, changed CardType) bool {
	if !changed.IsSlider() {
		return false
	}
	others := otherSliders(changed)
	return mix.Get(others[0])+mix.Get(others[1]) != 0
}

// ApplySliderChange moves the changed slider to newValue and takes the
// difference from (or gives it to) the other two sliders in proportion to
// their current share. The three slider values are then rescaled so they sum
// to exactly 1, with info_card absorbing the rounding remainder. Resource
// cards are never touched.
//
// newValue must already be clamped to [0, 1]. When both other sliders are at
// zero there is nothing to redistribute and mix is returned unchanged.
func ApplySliderChange(mix ContentMix, changed CardType, newValue float64) ContentMix {
	if !changed.IsSlider() {
		return mix
	}

	delta := newValue - mix.Get(changed)
	others := otherSliders(changed)
	otherSum := mix.Get(others[0]) + mix.Get(others[1])
	if otherSum == 0 {
		return mix
	}

	next := mix
	for _, k := range others {
		proportion := mix.Get(k) / otherSum
		next = next.With(k, math.Max(0, roundPct(mix.Get(k)-delta*proportion)))
	}
	next = next.With(changed, newValue)

	total := next.SliderSum()
	if total > 0 {
		next.MCQ = roundPct(next.MCQ / total)
		next.Flashcard = roundPct(next.Flashcard / total)
		next.InfoCard = roundPct(1 - next.MCQ - next.Flashcard)
	}
	return next
}

// roundPct rounds to the nearest hundredth, halves rounding up.
func roundPct(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
