package chains

import (
	"testing"

	"nft-wallet-tui/chains"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	list := []chains.Chain{chains.Mainnet, chains.Anvil}
	out := ansi.Strip(Render(list, chains.Anvil.ID, 0))

	assert.Contains(t, out, "▶ Ethereum (1)")
	assert.Contains(t, out, "● Anvil (31337)")
	assert.Contains(t, out, chains.Anvil.RPCURL)
}

func TestRenderEmpty(t *testing.T) {
	assert.Contains(t, ansi.Strip(Render(nil, 0, 0)), "No chains configured.")
}

func TestNav(t *testing.T) {
	out := ansi.Strip(Nav(60))
	assert.Contains(t, out, "Enter switch")
	assert.Contains(t, out, "Esc close")
}
