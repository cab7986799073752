package wallet

import (
	"math/big"

	"nft-wallet-tui/chains"

	"github.com/ethereum/go-ethereum/common"
)

// Status is the connection status of the store
type Status string

const (
	StatusConnecting   Status = "connecting"
	StatusReconnecting Status = "reconnecting"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

// State is a snapshot of the account the store is connected with.
// Addresses is nil while disconnected. During a connect attempt it keeps
// the addresses of the connection in place, if any.
type State struct {
	Status    Status
	Addresses []common.Address
	ChainID   int64
	Chain     *chains.Chain // nil when ChainID is not a configured chain
	Connector string        // id of the connector in use
}

// Address returns the active address, the first one the connector exposed
func (s State) Address() (common.Address, bool) {
	if len(s.Addresses) == 0 {
		return common.Address{}, false
	}
	return s.Addresses[0], true
}

// Balance is a native balance on the active chain
type Balance struct {
	Value     *big.Int
	Decimals  uint8
	Symbol    string
	Formatted string
}
