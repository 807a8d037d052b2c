package tune

import (
	"github.com/abhisek/feedtune/internal/prefs"
)

// DefaultSliderStep is how far one left/right press moves a slider.
const DefaultSliderStep = 0.05

// Sheet is the state behind the tuning screen that is not part of the
// preferences themselves: whether the custom sliders are expanded and how
// far a nudge moves them. All preference writes go through the prefs.Store.
type Sheet struct {
	store      *prefs.Store
	step       float64
	showCustom bool
}

// NewSheet creates a sheet over store. The custom sliders start expanded
// when the stored mix matches no named preset.
func NewSheet(store *prefs.Store, step float64) *Sheet {
	if step <= 0 || step > 1 {
		step = DefaultSliderStep
	}
	return &Sheet{
		store:      store,
		step:       step,
		showCustom: store.ActivePreset() == prefs.PresetCustom,
	}
}

// Preferences returns the current preferences.
func (s *Sheet) Preferences() prefs.FeedPreferences {
	return s.store.Preferences()
}

// ShowCustom reports whether the custom sliders are expanded.
func (s *Sheet) ShowCustom() bool {
	return s.showCustom
}

// HighlightedPreset is the preset chip to highlight. Expanding the sliders
// highlights Custom even while the mix still matches a named preset.
func (s *Sheet) HighlightedPreset() prefs.PresetKey {
	if s.showCustom {
		return prefs.PresetCustom
	}
	return s.store.ActivePreset()
}

// SelectPreset applies a named preset and collapses the sliders. Custom
// only expands them; the mix is left alone.
func (s *Sheet) SelectPreset(key prefs.PresetKey) {
	if key == prefs.PresetCustom {
		s.showCustom = true
		return
	}
	if s.store.SelectPreset(key) {
		s.showCustom = false
	}
}

// Nudge moves card by dir steps (dir is usually -1 or +1). It returns false
// when the slider is locked because the other two are both at zero.
func (s *Sheet) Nudge(card prefs.CardType, dir int) bool {
	mix := s.store.Preferences().ContentMix
	return s.set(card, mix.Get(card)+float64(dir)*s.step)
}

// SetSlider sets card to an exact percentage, clamped to 0..100.
func (s *Sheet) SetSlider(card prefs.CardType, percent int) bool {
	return s.set(card, float64(percent)/100)
}

func (s *Sheet) set(card prefs.CardType, v float64) bool {
	mix := s.store.Preferences().ContentMix
	if !prefs.CanRedistribute(mix, card) {
		return false
	}
	s.store.ApplySlider(card, prefs.ClampUnit(v))
	return true
}

// Locked reports whether card cannot move.
func (s *Sheet) Locked(card prefs.CardType) bool {
	return !prefs.CanRedistribute(s.store.Preferences().ContentMix, card)
}

// ToggleDifficultyMode flips between automatic and manual difficulty.
func (s *Sheet) ToggleDifficultyMode() {
	s.store.ToggleDifficultyMode()
}

// ShiftDifficulty moves the manual difficulty to the neighbouring step.
func (s *Sheet) ShiftDifficulty(dir int) {
	p := s.store.Preferences()
	cur, ok := prefs.ActiveDifficultyStep(p.Difficulty)
	if !ok {
		return
	}
	steps := prefs.DifficultySteps()
	idx := 0
	for i, st := range steps {
		if st == cur {
			idx = i
		}
	}
	// From an off-step value such as 0.5, the first press lands on the
	// highlighted step itself when moving toward it.
	if *p.Difficulty != cur.Value && ((dir > 0 && *p.Difficulty < cur.Value) || (dir < 0 && *p.Difficulty > cur.Value)) {
		s.store.SetDifficultyStep(cur.Value)
		return
	}
	idx += dir
	if idx < 0 || idx >= len(steps) {
		return
	}
	s.store.SetDifficultyStep(steps[idx].Value)
}

// ShiftStyle cycles the question style through Any and the catalog.
func (s *Sheet) ShiftStyle(dir int) {
	options := styleOptions()
	cur := s.store.Preferences().QuestionStyle
	idx := 0
	for i, o := range options {
		if (o == nil && cur == nil) || (o != nil && cur != nil && *o == *cur) {
			idx = i
		}
	}
	idx = (idx + dir + len(options)) % len(options)
	s.store.SetQuestionStyle(options[idx])
}

// ShiftPreset moves the preset selection left or right, wrapping.
func (s *Sheet) ShiftPreset(dir int) {
	keys := prefs.PresetKeys()
	cur := s.HighlightedPreset()
	idx := 0
	for i, k := range keys {
		if k == cur {
			idx = i
		}
	}
	idx = (idx + dir + len(keys)) % len(keys)
	s.SelectPreset(keys[idx])
}

// CanReset reports whether the reset action should be offered.
func (s *Sheet) CanReset() bool {
	return s.store.IsNonDefault()
}

// Reset restores the defaults and collapses the sliders.
func (s *Sheet) Reset() {
	s.store.Reset()
	s.showCustom = false
}

func styleOptions() []*prefs.QuestionStyle {
	styles := prefs.QuestionStyles()
	out := make([]*prefs.QuestionStyle, 0, len(styles)+1)
	out = append(out, nil)
	for _, st := range styles {
		out = append(out, prefs.Style(st))
	}
	return out
}
