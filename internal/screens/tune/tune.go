// Package tune is the feed tuning sheet: preset chips, difficulty, question
// style and the custom content mix sliders.
package tune

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/screen"
	"github.com/abhisek/feedtune/internal/ui/components"
	"github.com/abhisek/feedtune/internal/ui/layout"
	"github.com/abhisek/feedtune/internal/ui/theme"
)

type rowKind int

const (
	rowPresets rowKind = iota
	rowDifficultyMode
	rowDifficultySteps
	rowStyle
	rowSlider
	rowReset
)

type row struct {
	kind rowKind
	card prefs.CardType // rowSlider only
}

// TuneScreen lets the learner shape the feed.
type TuneScreen struct {
	sheet  *Sheet
	cursor int

	editing bool
	input   components.PercentInput
	notice  string
}

var _ screen.Screen = (*TuneScreen)(nil)
var _ screen.KeyHintProvider = (*TuneScreen)(nil)
var _ screen.InputCapturer = (*TuneScreen)(nil)

// New creates a TuneScreen over store. sliderStep is the nudge size.
func New(store *prefs.Store, sliderStep float64) *TuneScreen {
	return &TuneScreen{sheet: NewSheet(store, sliderStep)}
}

func (s *TuneScreen) Init() tea.Cmd {
	return nil
}

func (s *TuneScreen) Title() string {
	return "Tune Feed"
}

// CapturesInput is true while the exact percentage field is open.
func (s *TuneScreen) CapturesInput() bool {
	return s.editing
}

func (s *TuneScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		hint(keys.Up),
		hint(keys.Left),
	}
	if s.current().kind == rowSlider {
		hints = append(hints, hint(keys.Exact))
	}
	if s.sheet.CanReset() {
		hints = append(hints, hint(keys.Reset))
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

// rows lists the visible rows for the current state.
func (s *TuneScreen) rows() []row {
	p := s.sheet.Preferences()
	rows := []row{{kind: rowPresets}, {kind: rowDifficultyMode}}
	if p.Difficulty != nil {
		rows = append(rows, row{kind: rowDifficultySteps})
	}
	rows = append(rows, row{kind: rowStyle})
	if s.sheet.ShowCustom() {
		for _, c := range prefs.SliderCards {
			rows = append(rows, row{kind: rowSlider, card: c})
		}
	}
	if s.sheet.CanReset() {
		rows = append(rows, row{kind: rowReset})
	}
	return rows
}

func (s *TuneScreen) current() row {
	rows := s.rows()
	if s.cursor >= len(rows) {
		s.cursor = len(rows) - 1
	}
	return rows[s.cursor]
}

func (s *TuneScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if s.editing {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}
	if s.editing {
		return s.updateEditing(kmsg)
	}

	s.notice = ""
	cur := s.current()
	switch {
	case key.Matches(kmsg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(kmsg, keys.Down):
		if s.cursor < len(s.rows())-1 {
			s.cursor++
		}
	case key.Matches(kmsg, keys.Left):
		s.adjust(cur, -1)
	case key.Matches(kmsg, keys.Right):
		s.adjust(cur, +1)
	case key.Matches(kmsg, keys.Select):
		s.activate(cur)
	case key.Matches(kmsg, keys.Exact):
		if cur.kind == rowSlider {
			return s, s.openInput(cur.card)
		}
	case key.Matches(kmsg, keys.Reset):
		if s.sheet.CanReset() {
			s.sheet.Reset()
			s.cursor = 0
		}
	}
	return s, nil
}

func (s *TuneScreen) adjust(r row, dir int) {
	switch r.kind {
	case rowPresets:
		s.sheet.ShiftPreset(dir)
	case rowDifficultyMode:
		s.sheet.ToggleDifficultyMode()
	case rowDifficultySteps:
		s.sheet.ShiftDifficulty(dir)
	case rowStyle:
		s.sheet.ShiftStyle(dir)
	case rowSlider:
		if !s.sheet.Nudge(r.card, dir) {
			s.notice = lockedNotice(r.card)
		}
	}
}

func (s *TuneScreen) activate(r row) {
	switch r.kind {
	case rowPresets:
		// Enter on the preset row toggles the custom sliders.
		if s.sheet.ShowCustom() {
			s.sheet.SelectPreset(s.sheet.Preferences().ActivePreset())
		} else {
			s.sheet.SelectPreset(prefs.PresetCustom)
		}
	case rowDifficultyMode:
		s.sheet.ToggleDifficultyMode()
	case rowReset:
		s.sheet.Reset()
		s.cursor = 0
	}
}

func (s *TuneScreen) openInput(card prefs.CardType) tea.Cmd {
	if s.sheet.Locked(card) {
		s.notice = lockedNotice(card)
		return nil
	}
	s.input = components.NewPercentInput(s.sheet.Preferences().ContentMix.Percent(card))
	s.editing = true
	return s.input.Init()
}

func (s *TuneScreen) updateEditing(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		s.editing = false
		pct, err := s.input.Percent()
		if errors.Is(err, components.ErrNoPercent) {
			return s, nil
		}
		if err != nil {
			s.notice = "Enter a whole number from 0 to 100."
			return s, nil
		}
		cur := s.current()
		if cur.kind == rowSlider && !s.sheet.SetSlider(cur.card, pct) {
			s.notice = lockedNotice(cur.card)
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return s, cmd
}

func lockedNotice(card prefs.CardType) string {
	return fmt.Sprintf("%s is locked: raise another card type above 0%% first.", card.Label())
}

func (s *TuneScreen) View(width, height int) string {
	p := s.sheet.Preferences()
	rows := s.rows()
	cur := s.current()
	cw := components.ContentWidth(width)

	var sections []string
	for i, r := range rows {
		focused := i == s.cursor
		switch r.kind {
		case rowPresets:
			sections = append(sections, field("Mix", s.renderPresets(), focused))
		case rowDifficultyMode:
			sections = append(sections, field("Difficulty", renderModeToggle(p.Difficulty == nil), focused))
		case rowDifficultySteps:
			sections = append(sections, field("", renderSteps(p.Difficulty), focused))
		case rowStyle:
			sections = append(sections, field("Style", renderStyles(p.QuestionStyle), focused))
		case rowSlider:
			line := components.Slider{
				Label:   r.card.Label(),
				Value:   p.ContentMix.Get(r.card),
				Width:   cw,
				Focused: focused,
				Locked:  s.sheet.Locked(r.card),
			}.View()
			if focused && s.editing {
				line += "\n  " + s.input.View()
			}
			sections = append(sections, line)
		case rowReset:
			sections = append(sections, "", components.Pill("RESET TO DEFAULTS", focused, 24))
		}
	}

	if cur.kind == rowSlider && s.sheet.Locked(cur.card) && s.notice == "" {
		sections = append(sections, "", theme.Locked.Render(lockedNotice(cur.card)))
	}
	if s.notice != "" {
		sections = append(sections, "", theme.Locked.Render(s.notice))
	}

	sections = append(sections, "", theme.Hint.Render(fmt.Sprintf(
		"Resources stay at %d%% of the feed.", p.ContentMix.Percent(prefs.CardResource))))

	content := components.Panel(strings.Join(sections, "\n"), cw+4)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func field(label, value string, focused bool) string {
	marker := "  "
	labelStyle := lipgloss.NewStyle().Foreground(theme.TextDim).Width(12)
	if focused {
		marker = lipgloss.NewStyle().Foreground(theme.Primary).Render("▸ ")
		labelStyle = labelStyle.Foreground(theme.Primary).Bold(true)
	}
	return marker + labelStyle.Render(label) + value
}

func chip(label string, active bool) string {
	if active {
		return theme.ChipActive.Render(label)
	}
	return theme.Chip.Render(label)
}

func (s *TuneScreen) renderPresets() string {
	active := s.sheet.HighlightedPreset()
	var chips []string
	for _, k := range prefs.PresetKeys() {
		chips = append(chips, chip(prefs.PresetLabel(k), k == active))
	}
	return strings.Join(chips, " ")
}

func renderModeToggle(auto bool) string {
	return chip("Auto", auto) + " " + chip("Manual", !auto)
}

func renderSteps(d *float64) string {
	active, _ := prefs.ActiveDifficultyStep(d)
	var chips []string
	for _, st := range prefs.DifficultySteps() {
		chips = append(chips, chip(st.Label, st == active))
	}
	return strings.Join(chips, " ")
}

func renderStyles(cur *prefs.QuestionStyle) string {
	var chips []string
	for _, o := range styleOptions() {
		active := (o == nil && cur == nil) || (o != nil && cur != nil && *o == *cur)
		chips = append(chips, chip(prefs.StyleLabel(o), active))
	}
	return strings.Join(chips, " ")
}
