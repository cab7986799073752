package transfer

import (
	"strings"

	"nft-wallet-tui/styles"

	"github.com/charmbracelet/huh"
)

// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	TempContractAddress string
	TempAmount          string
)

// Nav returns the key hints for the transfer panel
func Nav(formOpen bool) []string {
	if formOpen {
		return []string{
			styles.Key("Enter") + " next/submit",
			styles.Key("Esc") + " cancel",
		}
	}
	return []string{styles.Key("Enter") + " send funds"}
}

// CreateForm creates the native transfer form
func CreateForm(symbol string) *huh.Form {
	TempContractAddress = "0x..."
	TempAmount = "1"

	if symbol == "" {
		symbol = "ETH"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("contractAddress").
				Title("Smart contract address:").
				Value(&TempContractAddress),

			huh.NewInput().
				Key("amount").
				Title("Amount (in "+symbol+"):").
				Value(&TempAmount),
		),
	).WithTheme(huh.ThemeCatppuccin()).WithShowHelp(false)

	form.Init()
	return form
}

// Render renders the transfer panel with the form when open
func Render(form *huh.Form, focused bool) string {
	h := styles.TitleStyle.Render("Send Transaction (Transfer Funds)")

	if form != nil {
		return h + "\n\n" + form.View()
	}

	body := strings.Join([]string{
		styles.LabelStyle.Render("Smart contract address, Amount"),
		"",
		styles.Button("Submit", focused),
	}, "\n")
	return h + "\n\n" + body
}
