package prefs

import (
	"fmt"
	"sync"
)

// Action names the kind of update that produced a Change.
type Action string

const (
	ActionSet            Action = "set"
	ActionPreset         Action = "preset"
	ActionSlider         Action = "slider"
	ActionDifficultyMode Action = "difficulty_mode"
	ActionDifficultyStep Action = "difficulty_step"
	ActionQuestionStyle  Action = "question_style"
	ActionReset          Action = "reset"
)

// Change is delivered to subscribers after every update.
type Change struct {
	Action      Action
	Detail      string
	Preferences FeedPreferences
}

// Update is a partial preference update. Fields left nil are kept. Use
// ClearDifficulty / ClearQuestionStyle to move back to automatic / any.
type Update struct {
	Difficulty         *float64
	ClearDifficulty    bool
	ContentMix         *ContentMix
	QuestionStyle      *QuestionStyle
	ClearQuestionStyle bool
}

func (u Update) apply(p *FeedPreferences) {
	switch {
	case u.ClearDifficulty:
		p.Difficulty = nil
	case u.Difficulty != nil:
		d := *u.Difficulty
		p.Difficulty = &d
	}
	if u.ContentMix != nil {
		p.ContentMix = *u.ContentMix
	}
	switch {
	case u.ClearQuestionStyle:
		p.QuestionStyle = nil
	case u.QuestionStyle != nil:
		s := *u.QuestionStyle
		p.QuestionStyle = &s
	}
}

// Store holds the current FeedPreferences. The tuning sheet is its only
// writer; the feed request builder and views read from it. Every update
// replaces the whole preferences value.
type Store struct {
	mu        sync.RWMutex
	prefs     FeedPreferences
	listeners map[int]func(Change)
	nextID    int
}

// NewStore creates a Store holding a copy of initial.
func NewStore(initial FeedPreferences) *Store {
	return &Store{
		prefs:     initial.Clone(),
		listeners: make(map[int]func(Change)),
	}
}

// Preferences returns a copy of the current preferences.
func (s *Store) Preferences() FeedPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Clone()
}

// ActivePreset detects the preset matching the current mix.
func (s *Store) ActivePreset() PresetKey {
	return s.Preferences().ActivePreset()
}

// IsNonDefault reports whether the reset affordance should be offered.
func (s *Store) IsNonDefault() bool {
	return s.Preferences().IsNonDefault()
}

// Subscribe registers fn to be called after each update. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetPreferences applies a partial update.
func (s *Store) SetPreferences(u Update) {
	s.update(ActionSet, "", func(p *FeedPreferences) bool {
		u.apply(p)
		return true
	})
}

// Replace swaps in a whole preferences value, e.g. one loaded from disk.
func (s *Store) Replace(p FeedPreferences) {
	next := p.Clone()
	s.update(ActionSet, "replace", func(cur *FeedPreferences) bool {
		*cur = next
		return true
	})
}

// SelectPreset overwrites the slider values with the preset's, keeping the
// resource card proportion. PresetCustom and unknown keys leave the mix
// untouched and return false.
func (s *Store) SelectPreset(key PresetKey) bool {
	preset, ok := LookupPreset(key)
	if !ok {
		return false
	}
	s.update(ActionPreset, string(key), func(p *FeedPreferences) bool {
		p.ContentMix = preset.Apply(p.ContentMix)
		return true
	})
	return true
}

// ApplySlider runs the mix reconciliation for one slider drag and returns
// the resulting mix. value must already be clamped to [0, 1].
func (s *Store) ApplySlider(card CardType, value float64) ContentMix {
	var out ContentMix
	s.update(ActionSlider, fmt.Sprintf("%s=%.2f", card, value), func(p *FeedPreferences) bool {
		next := ApplySliderChange(p.ContentMix, card, value)
		out = next
		if next == p.ContentMix {
			return false
		}
		p.ContentMix = next
		return true
	})
	return out
}

// ToggleDifficultyMode switches between automatic and manual difficulty.
// Entering manual mode starts at DefaultManualDifficulty; leaving it forgets
// the manual value.
func (s *Store) ToggleDifficultyMode() {
	s.update(ActionDifficultyMode, "", func(p *FeedPreferences) bool {
		if p.Difficulty == nil {
			p.Difficulty = Float(DefaultManualDifficulty)
		} else {
			p.Difficulty = nil
		}
		return true
	})
}

// SetDifficultyStep sets difficulty to one of the catalog steps. It is
// ignored in automatic mode and for values that are not steps.
func (s *Store) SetDifficultyStep(step float64) bool {
	if !IsDifficultyStep(step) {
		return false
	}
	applied := false
	s.update(ActionDifficultyStep, fmt.Sprintf("%.1f", step), func(p *FeedPreferences) bool {
		if p.Difficulty == nil {
			return false
		}
		p.Difficulty = Float(step)
		applied = true
		return true
	})
	return applied
}

// SetQuestionStyle sets the style; nil means any.
func (s *Store) SetQuestionStyle(style *QuestionStyle) {
	s.update(ActionQuestionStyle, StyleLabel(style), func(p *FeedPreferences) bool {
		if style == nil {
			p.QuestionStyle = nil
			return true
		}
		qs := *style
		p.QuestionStyle = &qs
		return true
	})
}

// Reset restores DefaultPreferences.
func (s *Store) Reset() {
	s.update(ActionReset, "", func(p *FeedPreferences) bool {
		*p = DefaultPreferences()
		return true
	})
}

// update runs fn on a working copy and, if fn reports a change, swaps it in
// and notifies subscribers outside the lock.
func (s *Store) update(action Action, detail string, fn func(*FeedPreferences) bool) {
	s.mu.Lock()
	next := s.prefs.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return
	}
	s.prefs = next
	listeners := make([]func(Change), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	change := Change{Action: action, Detail: detail, Preferences: next.Clone()}
	for _, l := range listeners {
		l(change)
	}
}
