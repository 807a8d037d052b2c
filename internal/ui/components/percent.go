package components

import (
	"errors"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/feedtune/internal/ui/theme"
)

// ErrNoPercent is returned by PercentInput.Percent when nothing was typed.
var ErrNoPercent = errors.New("no percentage entered")

// PercentInput is a three-digit field for typing an exact slider share.
// The current share is shown as the placeholder.
type PercentInput struct {
	model textinput.Model
}

// NewPercentInput creates a focused input showing current as its placeholder.
func NewPercentInput(current int) PercentInput {
	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(current)
	ti.CharLimit = 3
	ti.Prompt = ""
	ti.Focus()
	return PercentInput{model: ti}
}

func (p PercentInput) Init() tea.Cmd {
	return p.model.Focus()
}

// Update forwards everything except printable non-digit keys.
func (p PercentInput) Update(msg tea.Msg) (PercentInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.Text != "" {
		for _, r := range k.Text {
			if r < '0' || r > '9' {
				return p, nil
			}
		}
	}
	var cmd tea.Cmd
	p.model, cmd = p.model.Update(msg)
	return p, cmd
}

// SetValue replaces the typed text.
func (p *PercentInput) SetValue(v string) {
	p.model.SetValue(v)
}

// Percent returns the typed value capped at 100.
func (p PercentInput) Percent() (int, error) {
	v := strings.TrimSpace(p.model.Value())
	if v == "" {
		return 0, ErrNoPercent
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return min(n, 100), nil
}

func (p PercentInput) View() string {
	return theme.Hint.Render("New share: ") + p.model.View() + theme.Hint.Render(" %")
}
