package app

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/logger"
	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/router"
	"github.com/abhisek/feedtune/internal/screen"
	"github.com/abhisek/feedtune/internal/screens/home"
	"github.com/abhisek/feedtune/internal/screens/welcome"
	"github.com/abhisek/feedtune/internal/ui/layout"
)

// Options holds dependencies for the application.
type Options struct {
	Home        home.Deps
	SkipWelcome bool
	Log         *logger.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	prefs  *prefs.Store
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome splash, or
// directly at home when SkipWelcome is set.
func newAppModel(opts Options) AppModel {
	homeFactory := func() screen.Screen { return home.New(opts.Home) }

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = homeFactory()
	} else {
		initial = welcome.New(homeFactory)
	}
	return AppModel{
		router: router.New(initial),
		prefs:  opts.Home.Prefs,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

var globalKeys = struct {
	Quit, Back key.Binding
}{
	Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit")),
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyPressMsg:
		if key.Matches(msg, globalKeys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, globalKeys.Back) && !m.capturing() {
			if m.router.Depth() == 1 {
				return m, nil
			}
			return m, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return m, m.router.Update(msg)
}

// capturing reports whether the active screen wants esc for its own input.
func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.InputCapturer)
	return ok && c.CapturesInput()
}

// status is the right side of the header.
func (m AppModel) status() string {
	if m.prefs == nil {
		return ""
	}
	p := m.prefs.Preferences()
	return fmt.Sprintf("▤ %s   ▲ %s",
		prefs.PresetLabel(p.ActivePreset()),
		prefs.DifficultyLabel(p.Difficulty))
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func (m AppModel) footerHints() []layout.KeyHint {
	var hints []layout.KeyHint
	switch p, ok := m.router.Active().(screen.KeyHintProvider); {
	case ok:
		hints = p.KeyHints()
	case m.router.Depth() > 1:
		hints = []layout.KeyHint{hint(globalKeys.Back)}
	default:
		hints = []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}}
	}
	return append(hints, hint(globalKeys.Quit))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
		return v
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	body := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	v.SetContent(layout.RenderFrame(header, m.router.View(m.width, body), footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	log.Info("tui started", "profile", opts.Home.Profile, "offline", opts.Home.Backend == nil)

	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		log.Error("tui exited with error", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	log.Info("tui stopped")
	return nil
}
