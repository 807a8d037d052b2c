package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/feedtune/internal/ui/theme"
)

const bannerArt = `
 ███████╗███████╗███████╗██████╗ ████████╗██╗   ██╗███╗   ██╗███████╗
 ██╔════╝██╔════╝██╔════╝██╔══██╗╚══██╔══╝██║   ██║████╗  ██║██╔════╝
 █████╗  █████╗  █████╗  ██║  ██║   ██║   ██║   ██║██╔██╗ ██║█████╗
 ██╔══╝  ██╔══╝  ██╔══╝  ██║  ██║   ██║   ██║   ██║██║╚██╗██║██╔══╝
 ██║     ███████╗███████╗██████╔╝   ██║   ╚██████╔╝██║ ╚████║███████╗
 ╚═╝     ╚══════╝╚══════╝╚═════╝    ╚═╝    ╚═════╝ ╚═╝  ╚═══╝╚══════╝`

const bannerCompact = "F E E D T U N E"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 72

// RenderBanner returns the banner styled in the primary color, or a compact
// fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
