package read

import (
	"fmt"
	"strings"

	"nft-wallet-tui/styles"
)

// Nav returns the key hints for the read panel
func Nav() []string {
	return []string{styles.Key("r") + " refresh"}
}

// Render renders the NFT collection details. data holds the decoded
// name, total supply and caller balance in that order; missing entries
// render empty.
func Render(contractAddress string, data []any, loading bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Read Contract (Get NFT Details)")
	if loading {
		h += " " + spinnerView
	}

	lines := []string{
		h,
		"",
		styles.Field("Collection name", at(data, 0)),
		styles.Field("Contract address", contractAddress),
		styles.Field("Total supply", at(data, 1)),
		styles.Field("User's balance", at(data, 2)),
	}
	return strings.Join(lines, "\n")
}

func at(data []any, i int) string {
	if i >= len(data) || data[i] == nil {
		return ""
	}
	return fmt.Sprint(data[i])
}
