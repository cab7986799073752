package chains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	c, ok := Lookup(11155111)
	assert.True(t, ok)
	assert.Equal(t, "Sepolia", c.Name)
	assert.Equal(t, "ETH", c.Currency.Symbol)

	_, ok = Lookup(424242)
	assert.False(t, ok)
}

func TestByIDKeepsFirstMatch(t *testing.T) {
	custom := Chain{ID: 1, Name: "My Node", Currency: Mainnet.Currency, RPCURL: "http://node:8545"}
	c, ok := ByID([]Chain{custom, Mainnet}, 1)
	assert.True(t, ok)
	assert.Equal(t, "My Node", c.Name)
}

func TestKnownIDsAreUnique(t *testing.T) {
	seen := map[int64]bool{}
	for _, c := range Known {
		assert.False(t, seen[c.ID], c.Name)
		seen[c.ID] = true
	}
}
