package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/feedtune/internal/prefs"
	"github.com/abhisek/feedtune/internal/router"
	"github.com/abhisek/feedtune/internal/screen"
	feedscreen "github.com/abhisek/feedtune/internal/screens/feed"
	"github.com/abhisek/feedtune/internal/screens/history"
	"github.com/abhisek/feedtune/internal/screens/preview"
	"github.com/abhisek/feedtune/internal/screens/tune"
	"github.com/abhisek/feedtune/internal/store"
	"github.com/abhisek/feedtune/internal/ui/components"
)

// Deps are the collaborators the home menu hands to the screens it opens.
// Backend and ChangeRepo may be nil; their menu entries are then disabled.
type Deps struct {
	Prefs      *prefs.Store
	Backend    feedscreen.Backend
	ChangeRepo store.ChangeRepo
	Profile    string
	Topic      string
	SliderStep float64
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: factory()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "START FEED", Disabled: deps.Backend == nil, Action: push(func() screen.Screen {
			return feedscreen.New(deps.Backend, deps.Prefs, deps.Topic, deps.SliderStep)
		})},
		{Label: "TUNE FEED", Action: push(func() screen.Screen {
			return tune.New(deps.Prefs, deps.SliderStep)
		})},
		{Label: "REQUEST PREVIEW", Action: push(func() screen.Screen {
			return preview.New(deps.Prefs)
		})},
		{Label: "HISTORY", Disabled: deps.ChangeRepo == nil, Action: push(func() screen.Screen {
			return history.New(deps.ChangeRepo, deps.Profile)
		})},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)
	p := h.deps.Prefs.Preferences()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatusBar(p, cw, compact))
	if !compact {
		sections = append(sections, renderMixBars(p.ContentMix, cw))
	}
	if h.deps.Backend == nil {
		sections = append(sections, renderOfflineBanner(cw))
	}
	sections = append(sections, renderArcadeMenu(h.menu.Items, h.menu.Selected, cw, compact))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
