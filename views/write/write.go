package write

import (
	"strings"

	"nft-wallet-tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	TempContractAddress string
	TempTokenID         string
)

// Nav returns the key hints for the write panel
func Nav(formOpen bool) []string {
	if formOpen {
		return []string{
			styles.Key("Enter") + " next/submit",
			styles.Key("Esc") + " cancel",
		}
	}
	return []string{
		styles.Key("Enter") + " transfer nft",
		styles.Key("y") + " copy hash",
	}
}

// CreateForm creates the NFT transfer form
func CreateForm() *huh.Form {
	TempContractAddress = "0x..."
	TempTokenID = ""

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("contractAddress").
				Title("Smart contract address:").
				Value(&TempContractAddress),

			huh.NewInput().
				Key("tokenId").
				Title("Token ID:").
				Value(&TempTokenID),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)

	form.Init()
	return form
}

// Render renders the write panel with the form when open
func Render(form *huh.Form, hash string, focused bool) string {
	h := styles.TitleStyle.Render("Write Contract (Transfer NFT)")

	var body string
	if form != nil {
		body = form.View()
	} else {
		body = strings.Join([]string{
			styles.LabelStyle.Render("Smart contract address, Token ID"),
			"",
			styles.Button("Submit", focused),
		}, "\n")
	}

	hashLine := styles.Field("Transaction hash", hash)
	if hash == "" {
		hashLine = lipgloss.NewStyle().Foreground(styles.CMuted).Render("Transaction hash:")
	}

	return h + "\n\n" + body + "\n\n" + hashLine
}
