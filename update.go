package main

import (
	"errors"
	"fmt"

	"nft-wallet-tui/chains"
	"nft-wallet-tui/helpers"
	"nft-wallet-tui/views/transfer"
	"nft-wallet-tui/views/write"
	"nft-wallet-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

// -------------------- UPDATE --------------------

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		// Create logger that writes to our buffer
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(cError).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		if m.logEnabled {
			// Width accounts for border and padding
			m.logViewport.Width = max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		// Update log spinner too if log is enabled but not ready
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case stateChangedMsg:
		if !msg.ok {
			return m, nil
		}
		prev := m.state
		m.state = msg.state
		m.addLog("debug", fmt.Sprintf("Status `%s`", msg.state.Status))

		cmds := []tea.Cmd{waitForState(m.updates)}
		prevAddr, _ := prev.Address()
		addr, _ := msg.state.Address()
		if prevAddr != addr || prev.ChainID != msg.state.ChainID {
			cmds = append(cmds, m.refresh())
		}
		if m.connectorIdx >= len(m.wallet.Connectors()) {
			m.connectorIdx = 0
		}
		return m, tea.Batch(cmds...)

	case connectedMsg:
		if msg.err != nil {
			verb := "Connection"
			if msg.reconnect {
				verb = "Reconnection"
			}
			m.addLog("error", fmt.Sprintf("%s with `%s` failed: %s", verb, msg.connector, msg.err.Error()))
			if errors.Is(msg.err, wallet.ErrNoAccounts) {
				m.addLog("warning", "Connector exposes no accounts")
			}
			return m, nil
		}
		addr, _ := m.wallet.State().Address()
		m.addLog("success", fmt.Sprintf("Connected with `%s` as `%s`", msg.connector, helpers.ShortenAddr(addr.Hex())))
		if m.cfg.LastConnector != msg.connector {
			m.cfg.LastConnector = msg.connector
			m.saveConfig()
		}
		return m, nil

	case disconnectedMsg:
		if msg.err != nil {
			m.addLog("warning", "Disconnect: "+msg.err.Error())
		} else {
			m.addLog("info", "Disconnected")
		}
		m.showQR = false
		m.cfg.LastConnector = ""
		m.saveConfig()
		return m, nil

	case chainSwitchedMsg:
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Switching to chain `%d` failed: %s", msg.chainID, msg.err.Error()))
			return m, nil
		}
		name := fmt.Sprint(msg.chainID)
		if ch, ok := chains.ByID(m.wallet.Chains(), msg.chainID); ok {
			name = ch.Name
		}
		m.addLog("success", fmt.Sprintf("Switched to `%s`", name))
		m.cfg.SetActiveChain(msg.chainID)
		m.saveConfig()
		m.readData = nil
		return m, m.refresh()

	case balanceLoadedMsg:
		addr, ok := m.state.Address()
		if !ok || addr != msg.address {
			// stale answer for an address no longer active
			return m, nil
		}
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Failed to load balance for `%s`: %s", helpers.ShortenAddr(addr.Hex()), msg.err.Error()))
			return m, nil
		}
		b := msg.balance
		m.balance = &b
		m.addLog("success", fmt.Sprintf("Balance of `%s`: %s %s", helpers.ShortenAddr(addr.Hex()), b.Formatted, b.Symbol))
		return m, nil

	case contractsReadMsg:
		m.reading = false
		if msg.err != nil {
			m.readData = nil
			m.addLog("error", "Contract read failed: "+msg.err.Error())
			return m, nil
		}
		m.readData = msg.data
		m.addLog("success", fmt.Sprintf("Read %d values from `%s`", len(msg.data), helpers.ShortenAddr(m.contract.Hex())))
		return m, nil

	case contractWrittenMsg:
		if msg.err != nil {
			m.addLog("error", "NFT transfer failed: "+msg.err.Error())
			return m, nil
		}
		m.writeHash = msg.hash.Hex()
		m.lastHash = m.writeHash
		m.addLog("success", fmt.Sprintf("NFT transfer sent: `%s`", m.writeHash))
		return m, nil

	case transactionSentMsg:
		if msg.err != nil {
			m.addLog("error", "Transfer failed: "+msg.err.Error())
			return m, nil
		}
		m.lastHash = msg.hash.Hex()
		m.addLog("success", fmt.Sprintf("Transfer sent: `%s`", m.lastHash))
		return m, nil

	case clipboardCopiedMsg:
		if msg.err != nil {
			m.addLog("error", "Clipboard: "+msg.err.Error())
			return m, nil
		}
		m.copiedMsg = "Copied " + msg.what
		m.copiedMsgTime = timeNow()
		m.addLog("info", "Copied "+msg.what+" to clipboard")
		return m, clearClipboard()

	case clearClipboardMsg:
		if timeNow().Sub(m.copiedMsgTime) >= clipboardFeedback {
			m.copiedMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// anything else belongs to an open form
	return m.updateForms(msg)
}

// handleKey routes a key press to the popup, the open form, or the
// focused panel
func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.formOpen() {
		switch key {
		case "ctrl+c":
			return m, m.quit()
		case "esc":
			m.writeForm = nil
			m.transferForm = nil
			return m, nil
		}
		return m.updateForms(msg)
	}

	if m.showChains {
		list := m.wallet.Chains()
		switch key {
		case "up", "k":
			if m.chainIdx > 0 {
				m.chainIdx--
			}
		case "down", "j":
			if m.chainIdx < len(list)-1 {
				m.chainIdx++
			}
		case "enter":
			m.showChains = false
			if m.chainIdx >= 0 && m.chainIdx < len(list) {
				return m, switchChain(m.wallet, list[m.chainIdx].ID)
			}
		case "esc", "n":
			m.showChains = false
		case "ctrl+c":
			return m, m.quit()
		}
		return m, nil
	}

	// global keys
	switch key {
	case "ctrl+c", "q":
		return m, m.quit()

	case "tab":
		m.focus = (m.focus + 1) % panelCount
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + panelCount - 1) % panelCount
		return m, nil

	case "l", "L":
		return m, m.toggleLogger()

	case "n":
		list := m.wallet.Chains()
		active, _ := m.wallet.ActiveChain()
		m.chainIdx = max(0, lo.IndexOf(lo.Map(list, func(c chains.Chain, _ int) int64 { return c.ID }), active.ID))
		m.showChains = true
		return m, nil

	case "r":
		m.addLog("info", "Refreshing")
		return m, m.refresh()

	case "c":
		if addr, ok := m.state.Address(); ok {
			return m, copyToClipboard(addr.Hex(), "address")
		}
		return m, nil

	case "y":
		if m.lastHash != "" {
			return m, copyToClipboard(m.lastHash, "transaction hash")
		}
		return m, nil

	case "x":
		m.showQR = !m.showQR
		return m, nil

	case "pgup", "pgdown":
		if !m.logEnabled {
			return m, nil
		}
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}

	return m.handlePanelKey(key)
}

// handlePanelKey handles keys that act on the focused panel
func (m *model) handlePanelKey(key string) (tea.Model, tea.Cmd) {
	switch m.focus {
	case panelConnectors:
		conns := m.wallet.Connectors()
		switch key {
		case "left", "up", "h", "k":
			if m.connectorIdx > 0 {
				m.connectorIdx--
			}
		case "right", "down", "j":
			if m.connectorIdx < len(conns)-1 {
				m.connectorIdx++
			}
		case "enter", " ":
			if m.connectorIdx >= 0 && m.connectorIdx < len(conns) {
				c := conns[m.connectorIdx]
				m.addLog("info", fmt.Sprintf("Connecting with `%s`", c.ID()))
				return m, connectWallet(m.wallet, c, false)
			}
		}

	case panelAccount:
		if key == "enter" && m.state.Status == wallet.StatusConnected {
			return m, disconnectWallet(m.wallet)
		}

	case panelWrite:
		if key == "enter" {
			m.writeForm = write.CreateForm()
		}

	case panelTransfer:
		if key == "enter" {
			symbol := ""
			if ch, ok := m.wallet.ActiveChain(); ok {
				symbol = ch.Currency.Symbol
			}
			m.transferForm = transfer.CreateForm(symbol)
		}
	}
	return m, nil
}

// updateForms forwards msg to the open form and submits it once completed
func (m *model) updateForms(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch {
	case m.writeForm != nil:
		form, cmd := m.writeForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.writeForm = f
			switch f.State {
			case huh.StateCompleted:
				m.writeForm = nil
				return m, m.submitWrite(write.TempContractAddress, write.TempTokenID)
			case huh.StateAborted:
				m.writeForm = nil
				return m, nil
			}
		}
		return m, cmd

	case m.transferForm != nil:
		form, cmd := m.transferForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.transferForm = f
			switch f.State {
			case huh.StateCompleted:
				m.transferForm = nil
				return m, m.submitTransfer(transfer.TempContractAddress, transfer.TempAmount)
			case huh.StateAborted:
				m.transferForm = nil
				return m, nil
			}
		}
		return m, cmd
	}
	return m, nil
}

// toggleLogger enables or disables the log panel and persists the choice
func (m *model) toggleLogger() tea.Cmd {
	m.logEnabled = !m.logEnabled
	m.cfg.Logger = m.logEnabled
	if m.logEnabled {
		if m.w > 0 {
			m.logViewport.Width = m.w - 6
		}
		m.logReady = false
		m.saveConfig()
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}

	// Clear logs and de-initialize when disabling
	if m.logBuffer != nil {
		m.logBuffer.Reset()
	}
	m.logger = nil
	m.logReady = false
	m.saveConfig()
	return nil
}

// quit stops the state feed and exits
func (m *model) quit() tea.Cmd {
	if m.stopUpdates != nil {
		m.stopUpdates()
		m.stopUpdates = nil
	}
	return tea.Quit
}
