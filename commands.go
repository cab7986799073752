package main

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"nft-wallet-tui/config"
	"nft-wallet-tui/helpers"
	"nft-wallet-tui/wallet"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

const (
	connectTimeout = 8 * time.Second
	readTimeout    = 12 * time.Second
	writeTimeout   = 30 * time.Second
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// waitForState blocks until the store publishes a new state
func waitForState(updates <-chan wallet.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-updates
		return stateChangedMsg{state: st, ok: ok}
	}
}

// connectWallet connects with c, or reconnects when restoring a session
func connectWallet(w walletLayer, c wallet.Connector, reconnect bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		var err error
		if reconnect {
			err = w.Reconnect(ctx, c)
		} else {
			err = w.Connect(ctx, c)
		}
		return connectedMsg{connector: c.ID(), reconnect: reconnect, err: err}
	}
}

// disconnectWallet closes the session
func disconnectWallet(w walletLayer) tea.Cmd {
	return func() tea.Msg {
		return disconnectedMsg{err: w.Disconnect()}
	}
}

// switchChain changes the active chain
func switchChain(w walletLayer, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return chainSwitchedMsg{chainID: id, err: w.SwitchChain(ctx, id)}
	}
}

// loadBalance fetches the native balance of addr
func loadBalance(w walletLayer, addr common.Address) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()

		b, err := w.Balance(ctx, addr)
		return balanceLoadedMsg{address: addr, balance: b, err: err}
	}
}

// nftReads lists the collection reads. The caller balance is only read
// when a wallet address is known.
func nftReads(contract common.Address, holder *common.Address) []wallet.ContractCall {
	calls := []wallet.ContractCall{
		{Address: contract, ABI: wallet.ERC721, FunctionName: "name"},
		{Address: contract, ABI: wallet.ERC721, FunctionName: "totalSupply"},
	}
	if holder != nil {
		calls = append(calls, wallet.ContractCall{
			Address:      contract,
			ABI:          wallet.ERC721,
			FunctionName: "balanceOf",
			Args:         []any{*holder},
		})
	}
	return calls
}

// readNFT reads name, total supply and the holder's balance in one batch
func readNFT(w walletLayer, contract common.Address, holder *common.Address) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()

		res, err := w.ReadContracts(ctx, nftReads(contract, holder), false)
		if err != nil {
			return contractsReadMsg{err: err}
		}
		data := lo.Map(res, func(r wallet.CallResult, _ int) any { return r.Result })
		return contractsReadMsg{data: data}
	}
}

// transferNFT calls transferFrom(sender, contractAddress, tokenId) on
// contractAddress. Inputs are coerced, not validated.
func transferNFT(w walletLayer, sender common.Address, contractAddress, tokenID string) tea.Cmd {
	return func() tea.Msg {
		id, err := parseTokenID(tokenID)
		if err != nil {
			return contractWrittenMsg{err: err}
		}
		addr := common.HexToAddress(strings.TrimSpace(contractAddress))

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		hash, err := w.WriteContract(ctx, wallet.WriteRequest{
			Address:      addr,
			ABI:          wallet.ERC721,
			FunctionName: "transferFrom",
			Args:         []any{sender, addr, id},
		})
		return contractWrittenMsg{hash: hash, err: err}
	}
}

// parseTokenID reads a token id the way a JavaScript BigInt does: blank is
// zero, 0x/0o/0b select the base, anything else is decimal
func parseTokenID(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(big.Int), nil
	}

	base, digits := 10, s
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, digits = 16, s[2:]
		case 'o', 'O':
			base, digits = 8, s[2:]
		case 'b', 'B':
			base, digits = 2, s[2:]
		}
	}

	id, ok := new(big.Int).SetString(digits, base)
	if !ok || id.Sign() < 0 || strings.ContainsAny(digits, "+-_") {
		return nil, fmt.Errorf("token id %q is not an integer", s)
	}
	return id, nil
}

// sendFunds sends amount of the native currency to the given address.
// decimals is the currency's precision, 18 for ether.
func sendFunds(w walletLayer, to, amount string, decimals uint8) tea.Cmd {
	return func() tea.Msg {
		value, err := wallet.ParseUnits(amount, decimals)
		if err != nil {
			return transactionSentMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		hash, err := w.SendTransaction(ctx, wallet.SendRequest{
			To:    common.HexToAddress(strings.TrimSpace(to)),
			Value: value,
		})
		return transactionSentMsg{hash: hash, err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{what: what, err: clipboard.WriteAll(text)}
	}
}

// clearClipboard waits 2 seconds then clears clipboard feedback
func clearClipboard() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearClipboardMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------
// These methods help with state management and command generation

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}

	m.logViewport.SetContent(m.logBuffer.String())
	// Scroll to bottom to show latest entries
	m.logViewport.GotoBottom()
}

// saveConfig persists the config, logging failures
func (m *model) saveConfig() {
	if m.configPath == "" {
		return
	}
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", err.Error())
	}
}

// refresh refetches the balance and the collection reads for the
// current address
func (m *model) refresh() tea.Cmd {
	m.reading = true
	addr, ok := m.state.Address()
	if !ok {
		m.balance = nil
		return readNFT(m.wallet, m.contract, nil)
	}
	return tea.Batch(
		loadBalance(m.wallet, addr),
		readNFT(m.wallet, m.contract, &addr),
	)
}

// formOpen returns true if a write or transfer form is taking input
func (m *model) formOpen() bool {
	return m.writeForm != nil || m.transferForm != nil
}

// submitWrite sends the NFT transfer from the connected address
func (m *model) submitWrite(contractAddress, tokenID string) tea.Cmd {
	sender, _ := m.state.Address()
	m.addLog("info", fmt.Sprintf("Transferring token `%s` on `%s`", tokenID, helpers.ShortenAddr(contractAddress)))
	return transferNFT(m.wallet, sender, contractAddress, tokenID)
}

// submitTransfer sends funds in the active chain's currency
func (m *model) submitTransfer(to, amount string) tea.Cmd {
	decimals := uint8(wallet.EtherDecimals)
	symbol := "ETH"
	if ch, ok := m.wallet.ActiveChain(); ok {
		decimals = ch.Currency.Decimals
		symbol = ch.Currency.Symbol
	}
	m.addLog("info", fmt.Sprintf("Sending %s %s to `%s`", amount, symbol, helpers.ShortenAddr(to)))
	return sendFunds(m.wallet, to, amount, decimals)
}
