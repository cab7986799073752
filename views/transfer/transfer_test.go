package transfer

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestCreateFormDefaults(t *testing.T) {
	form := CreateForm("POL")
	assert.Equal(t, "0x...", TempContractAddress)
	assert.Equal(t, "1", TempAmount)
	assert.Contains(t, ansi.Strip(form.View()), "POL")
}

func TestRenderHasNoHash(t *testing.T) {
	out := ansi.Strip(Render(nil, false))
	assert.Contains(t, out, "Send Transaction (Transfer Funds)")
	assert.NotContains(t, out, "Transaction hash")
}
