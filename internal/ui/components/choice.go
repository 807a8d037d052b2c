package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/ui/theme"
)

var choiceKeys = struct {
	Up, Down, Pick key.Binding
}{
	Up:   key.NewBinding(key.WithKeys("up", "k")),
	Down: key.NewBinding(key.WithKeys("down", "j")),
	Pick: key.NewBinding(key.WithKeys("enter")),
}

// Choice answers a multiple choice question. Options can be picked with the
// cursor or by typing their letter. Once answered it ignores input.
type Choice struct {
	Question string
	Options  []string
	correct  int
	cursor   int
	chosen   int
}

func NewChoice(question string, options []string, correct int) Choice {
	return Choice{Question: question, Options: options, correct: correct, chosen: -1}
}

// Answered reports whether an option has been picked.
func (c Choice) Answered() bool { return c.chosen >= 0 }

// Correct reports whether the picked option is the right one.
func (c Choice) Correct() bool { return c.Answered() && c.chosen == c.correct }

func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || c.Answered() {
		return c, nil
	}
	switch {
	case key.Matches(k, choiceKeys.Up):
		c.cursor = max(c.cursor-1, 0)
	case key.Matches(k, choiceKeys.Down):
		c.cursor = min(c.cursor+1, len(c.Options)-1)
	case key.Matches(k, choiceKeys.Pick):
		c.chosen = c.cursor
	default:
		if i, ok := letterIndex(k.Text); ok && i < len(c.Options) {
			c.cursor, c.chosen = i, i
		}
	}
	return c, nil
}

func letterIndex(text string) (int, bool) {
	if len(text) != 1 {
		return 0, false
	}
	r := text[0] | 0x20 // lower case
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return int(r - 'a'), true
}

func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		marker := "  "
		if i == c.cursor && !c.Answered() {
			marker = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", marker, 'A'+rune(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.Answered() && i == c.correct:
			style = style.Foreground(theme.Success).Bold(true)
		case c.Answered() && i == c.chosen:
			style = style.Foreground(theme.Error).Bold(true)
		case c.Answered():
			style = style.Foreground(theme.TextDim)
		case i == c.cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
