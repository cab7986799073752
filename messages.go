package main

import (
	"nft-wallet-tui/wallet"

	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// stateChangedMsg carries a state pushed by the wallet store.
// ok is false once the subscription is closed.
type stateChangedMsg struct {
	state wallet.State
	ok    bool
}

// connectedMsg contains result of a connect or reconnect attempt
type connectedMsg struct {
	connector string
	reconnect bool
	err       error
}

// disconnectedMsg contains result of a disconnect
type disconnectedMsg struct {
	err error
}

// chainSwitchedMsg contains result of a chain switch
type chainSwitchedMsg struct {
	chainID int64
	err     error
}

// balanceLoadedMsg contains the native balance of the active address
type balanceLoadedMsg struct {
	address common.Address
	balance wallet.Balance
	err     error
}

// contractsReadMsg contains the NFT collection details in read order
type contractsReadMsg struct {
	data []any
	err  error
}

// contractWrittenMsg contains result of the NFT transfer
type contractWrittenMsg struct {
	hash common.Hash
	err  error
}

// transactionSentMsg contains result of the native transfer
type transactionSentMsg struct {
	hash common.Hash
	err  error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
	err  error
}

// clearClipboardMsg clears the copy feedback
type clearClipboardMsg struct{}
