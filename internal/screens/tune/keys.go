package tune

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Exact  key.Binding
	Reset  key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑↓", "Navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←→", "Adjust"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("Enter", "Select"),
	),
	Exact: key.NewBinding(
		key.WithKeys("="),
		key.WithHelp("=", "Exact %"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("R", "Reset"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Cancel"),
	),
}
