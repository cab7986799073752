package connectors

import (
	"strings"

	"nft-wallet-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the key hints for the connector panel. selected is the
// display name of the highlighted connector.
func Nav(selected string) []string {
	connect := styles.Key("Enter") + " " + styles.HotkeyStyle.Render("connect")
	if selected != "" {
		connect += " " + styles.HotkeyStyle.Render(selected)
	}
	return []string{
		styles.Key("←/→") + " " + styles.HotkeyStyle.Render("select"),
		connect,
	}
}

// Render renders one button per connector, labelled with its id. Duplicate
// ids render as separate buttons.
func Render(ids []string, selectedIdx int, focused bool) string {
	h := styles.TitleStyle.Render("Connectors")

	if len(ids) == 0 {
		msg := lipgloss.NewStyle().Foreground(styles.CMuted).Render("No connectors configured.")
		return h + "\n\n" + msg
	}

	// rows of two keep the panel narrow
	var rows []string
	for i := 0; i < len(ids); i += 2 {
		var row []string
		for j := i; j < min(i+2, len(ids)); j++ {
			row = append(row, styles.Button(ids[j], focused && j == selectedIdx))
		}
		rows = append(rows, strings.Join(row, " "))
	}

	return h + "\n\n" + strings.Join(rows, "\n")
}
