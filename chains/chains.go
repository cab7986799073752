package chains

import (
	"github.com/samber/lo"
)

// NativeCurrency describes a chain's base currency
type NativeCurrency struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// Chain is a network the wallet layer can talk to
type Chain struct {
	ID       int64
	Name     string
	Currency NativeCurrency
	RPCURL   string
	Explorer string
}

var ether = NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18}

// Known networks with their public defaults
var (
	Mainnet   = Chain{ID: 1, Name: "Ethereum", Currency: ether, RPCURL: "https://ethereum-rpc.publicnode.com", Explorer: "https://etherscan.io"}
	Sepolia   = Chain{ID: 11155111, Name: "Sepolia", Currency: NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18}, RPCURL: "https://ethereum-sepolia.publicnode.com", Explorer: "https://sepolia.etherscan.io"}
	Holesky   = Chain{ID: 17000, Name: "Holesky", Currency: NativeCurrency{Name: "Holesky Ether", Symbol: "ETH", Decimals: 18}, RPCURL: "https://ethereum-holesky.publicnode.com", Explorer: "https://holesky.etherscan.io"}
	Base      = Chain{ID: 8453, Name: "Base", Currency: ether, RPCURL: "https://mainnet.base.org", Explorer: "https://basescan.org"}
	Optimism  = Chain{ID: 10, Name: "OP Mainnet", Currency: ether, RPCURL: "https://mainnet.optimism.io", Explorer: "https://optimistic.etherscan.io"}
	Arbitrum  = Chain{ID: 42161, Name: "Arbitrum One", Currency: ether, RPCURL: "https://arb1.arbitrum.io/rpc", Explorer: "https://arbiscan.io"}
	Polygon   = Chain{ID: 137, Name: "Polygon", Currency: NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18}, RPCURL: "https://polygon-rpc.com", Explorer: "https://polygonscan.com"}
	Localhost = Chain{ID: 1337, Name: "Localhost", Currency: ether, RPCURL: "http://127.0.0.1:8545"}
	Anvil     = Chain{ID: 31337, Name: "Anvil", Currency: ether, RPCURL: "http://127.0.0.1:8545"}
)

// Known lists every built-in chain
var Known = []Chain{Mainnet, Sepolia, Holesky, Base, Optimism, Arbitrum, Polygon, Localhost, Anvil}

// ByID looks a chain up in the given list
func ByID(list []Chain, id int64) (Chain, bool) {
	return lo.Find(list, func(c Chain) bool { return c.ID == id })
}

// Lookup returns metadata for a built-in chain id
func Lookup(id int64) (Chain, bool) {
	return ByID(Known, id)
}
