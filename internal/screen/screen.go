// Package screen defines what the router needs from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/feedtune/internal/ui/layout"
)

// Screen is one full-page view. The app draws the header and footer; View
// renders only the area between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	Title() string
}

// KeyHintProvider screens supply their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer screens sometimes own the keyboard, e.g. while a text field
// is focused. While CapturesInput is true esc goes to the screen instead of
// navigating back.
type InputCapturer interface {
	CapturesInput() bool
}

// Resumer screens are told when a screen pushed over them is popped, so they
// can react to preference changes made meanwhile.
type Resumer interface {
	Resumed() tea.Cmd
}
