package account

import (
	"encoding/json"
	"fmt"
	"strings"

	"nft-wallet-tui/styles"
	"nft-wallet-tui/wallet"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mdp/qrterminal/v3"
	"github.com/samber/lo"
)

// Props is everything the account panel shows
type Props struct {
	State             wallet.State
	Balance           *wallet.Balance
	ExplorerURL       string // base explorer url of the active chain
	DisconnectFocused bool
	ShowQR            bool
	CopiedMsg         string
}

// Nav returns the key hints for the account panel
func Nav(connected bool) []string {
	if !connected {
		return nil
	}
	return []string{
		styles.Key("Enter") + " disconnect",
		styles.Key("c") + " copy address",
		styles.Key("x") + " qr",
	}
}

// AddressesJSON renders addresses as a JSON array of checksummed strings.
// nil renders as nothing.
func AddressesJSON(addrs []common.Address) string {
	if addrs == nil {
		return ""
	}
	hex := lo.Map(addrs, func(a common.Address, _ int) string { return a.Hex() })
	out, _ := json.Marshal(hex)
	return string(out)
}

// ChainLine renders "name (id)", leaving out what is unknown
func ChainLine(st wallet.State) string {
	var name, id string
	if st.Chain != nil {
		name = st.Chain.Name
	}
	if st.ChainID != 0 {
		id = fmt.Sprint(st.ChainID)
	}
	return name + " (" + id + ")"
}

// BalanceLine renders "formatted symbol", or nothing while unknown
func BalanceLine(b *wallet.Balance) string {
	if b == nil {
		return ""
	}
	return b.Formatted + " " + b.Symbol
}

// Render renders the account panel
func Render(p Props) string {
	h := styles.TitleStyle.Render("Account")

	addrs := AddressesJSON(p.State.Addresses)
	if first, ok := p.State.Address(); ok && p.ExplorerURL != "" {
		// OSC 8 hyperlink on the JSON array pointing at the first address
		url := strings.TrimRight(p.ExplorerURL, "/") + "/address/" + first.Hex()
		addrs = fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, addrs)
	}

	lines := []string{
		h,
		"",
		styles.Field("Status", string(p.State.Status)),
		styles.LabelStyle.Render("Addresses:") + " " + addrs,
		styles.Field("Chain", ChainLine(p.State)),
		styles.Field("Balance", BalanceLine(p.Balance)),
	}

	if p.CopiedMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CAccent).Render(p.CopiedMsg))
	}

	if p.State.Status == wallet.StatusConnected {
		lines = append(lines, "", styles.Button("Disconnect", p.DisconnectFocused))

		if first, ok := p.State.Address(); ok && p.ShowQR {
			lines = append(lines, "", QR(first.Hex()))
		}
	}

	return strings.Join(lines, "\n")
}

// QR renders text as a half-block terminal QR code
func QR(text string) string {
	var b strings.Builder
	qrterminal.GenerateHalfBlock(text, qrterminal.L, &b)
	return strings.TrimRight(b.String(), "\n")
}
