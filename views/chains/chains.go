package chains

import (
	"fmt"
	"strings"

	"nft-wallet-tui/chains"
	"nft-wallet-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the chain selector
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " select",
		styles.Key("Enter") + " switch",
		styles.Key("Esc") + " close",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the configured chains, marking the active one
func Render(list []chains.Chain, activeID int64, selectedIdx int) string {
	h := styles.TitleStyle.Render("Switch Chain")

	lines := []string{h, ""}

	if len(list) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CMuted).Render("No chains configured."))
		return strings.Join(lines, "\n")
	}

	for i, c := range list {
		var marker string
		if c.ID == activeID {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		} else {
			marker = lipgloss.NewStyle().Foreground(styles.CMuted).Render("○ ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := lipgloss.NewStyle().Foreground(styles.CMuted)

		if i == selectedIdx {
			nameStyle = nameStyle.Foreground(styles.CAccent2).Bold(true)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		lines = append(lines, marker+nameStyle.Render(fmt.Sprintf("%s (%d)", c.Name, c.ID)))
		lines = append(lines, "  "+urlStyle.Render(c.RPCURL))
	}

	return strings.Join(lines, "\n")
}
