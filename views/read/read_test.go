package read

import (
	"math/big"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

const contract = "0x930558574Ad29f697407c57506A427C85243247E"

func TestRender(t *testing.T) {
	out := ansi.Strip(Render(contract, []any{"MyCollection", big.NewInt(100), big.NewInt(3)}, false, ""))

	assert.Contains(t, out, "Collection name: MyCollection")
	assert.Contains(t, out, "Contract address: "+contract)
	assert.Contains(t, out, "Total supply: 100")
	assert.Contains(t, out, "User's balance: 3")
}

func TestRenderWithoutCallerBalance(t *testing.T) {
	out := ansi.Strip(Render(contract, []any{"MyCollection", big.NewInt(100)}, false, ""))

	assert.Contains(t, out, "Total supply: 100")
	assert.True(t, strings.HasSuffix(out, "User's balance: "), out)
}

func TestRenderNoData(t *testing.T) {
	out := ansi.Strip(Render(contract, nil, true, "…"))

	assert.Contains(t, out, "Collection name: \n")
	assert.Contains(t, out, "Contract address: "+contract)
}
