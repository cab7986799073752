package log

import (
	"fmt"

	"nft-wallet-tui/helpers"
	"nft-wallet-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Height returns how many log lines fit under the panels. The log takes at
// most a third of the screen and never more than 12 lines.
func Height(screenHeight, reserved int) int {
	available := helpers.Max(3, screenHeight-reserved)
	return helpers.Max(3, helpers.Min(available, helpers.Min(screenHeight/3, 12)))
}

// Render renders the log panel. vp must already have its height set.
func Render(width int, logReady bool, logSpinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(vp.Height + 1)

	if !logReady {
		return border.Render(title + "\n" + logSpinnerView + " initializing...")
	}

	// scroll position once the content overflows
	if vp.TotalLineCount() > vp.Height {
		title += lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + "\n" + vp.View())
}
