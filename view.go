package main

import (
	"strings"

	"nft-wallet-tui/helpers"
	"nft-wallet-tui/styles"
	"nft-wallet-tui/views/account"
	chainview "nft-wallet-tui/views/chains"
	"nft-wallet-tui/views/connectors"
	logview "nft-wallet-tui/views/log"
	"nft-wallet-tui/views/read"
	"nft-wallet-tui/views/transfer"
	"nft-wallet-tui/views/write"
	"nft-wallet-tui/wallet"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// -------------------- VIEW --------------------

// wideLayout is the width from which the panels sit in two columns
const wideLayout = 100

func (m *model) renderChainPopup() string {
	var (
		dialogBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#874BFD")).
				Padding(1, 2).
				Background(cPanel)
	)

	activeID := int64(0)
	if ch, ok := m.wallet.ActiveChain(); ok {
		activeID = ch.ID
	}
	list := chainview.Render(m.wallet.Chains(), activeID, m.chainIdx)

	help := chainview.Nav(max(lipgloss.Width(list), 40))

	dialog := dialogBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, list, "", help))

	// Center the dialog on screen
	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialog,
	)
}

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	var addrDisplay string
	if addr, ok := m.state.Address(); ok {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Address: " + helpers.FadeString(helpers.ShortenAddr(addr.Hex()), "#F25D94", "#EDFF82"))
	} else {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Address: Not connected")
	}

	// Chain status with a dot following the connection status
	statusIcon := "○"
	statusColor := lipgloss.Color("#c01c28")
	statusText := "No chain"
	if ch, ok := m.wallet.ActiveChain(); ok {
		statusText = ch.Name
	}
	switch m.state.Status {
	case wallet.StatusConnected:
		statusIcon = "●"
		statusColor = cAccent
	case wallet.StatusConnecting, wallet.StatusReconnecting:
		statusColor = cWarn
		statusText += " (" + string(m.state.Status) + "...)"
	}

	chainDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString("nft wallet", "#7EE787", "#82CFFD"))

	addrWidth := lipgloss.Width(addrDisplay)
	chainWidth := lipgloss.Width(chainDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := addrWidth + chainWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = addrDisplay + "\n" + titleText + "\n" + chainDisplay
	} else {
		// Three-column layout: Address | Title (centered) | Chain
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		leftSpacer := strings.Repeat(" ", max(1, leftPadding))
		rightSpacer := strings.Repeat(" ", max(1, rightPadding))

		headerLine = addrDisplay + leftSpacer + titleText + rightSpacer + chainDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// panels renders the five panels in display order
func (m *model) panels(width int) []string {
	ids := lo.Map(m.wallet.Connectors(), func(c wallet.Connector, _ int) string { return c.ID() })

	explorer := ""
	if m.state.Chain != nil {
		explorer = m.state.Chain.Explorer
	}

	return []string{
		styles.Panel(connectors.Render(ids, m.connectorIdx, m.focus == panelConnectors), width, m.focus == panelConnectors),
		styles.Panel(account.Render(account.Props{
			State:             m.state,
			Balance:           m.balance,
			ExplorerURL:       explorer,
			DisconnectFocused: m.focus == panelAccount,
			ShowQR:            m.showQR,
			CopiedMsg:         m.copiedMsg,
		}), width, m.focus == panelAccount),
		styles.Panel(read.Render(m.contract.Hex(), m.readData, m.reading, m.spin.View()), width, m.focus == panelRead),
		styles.Panel(write.Render(m.writeForm, m.writeHash, m.focus == panelWrite), width, m.focus == panelWrite),
		styles.Panel(transfer.Render(m.transferForm, m.focus == panelTransfer), width, m.focus == panelTransfer),
	}
}

// navBar renders the focused panel's hints followed by the global ones
func (m *model) navBar() string {
	var hints []string
	switch m.focus {
	case panelConnectors:
		name := ""
		if conns := m.wallet.Connectors(); m.connectorIdx >= 0 && m.connectorIdx < len(conns) {
			name = conns[m.connectorIdx].Name()
		}
		hints = connectors.Nav(name)
	case panelAccount:
		hints = account.Nav(m.state.Status == wallet.StatusConnected)
	case panelRead:
		hints = read.Nav()
	case panelWrite:
		hints = write.Nav(m.writeForm != nil)
	case panelTransfer:
		hints = transfer.Nav(m.transferForm != nil)
	}

	if !m.formOpen() {
		hints = append(hints,
			key("Tab")+" next panel",
			key("n")+" chain",
			key("l")+" log",
			key("q")+" quit",
		)
	}

	right := ""
	if m.logEnabled {
		right = helpRightStyle.Render("PgUp/PgDn scroll log")
	}

	left := strings.Join(hints, "   ")
	gap := max(1, m.w-4-lipgloss.Width(left)-lipgloss.Width(right))
	return navStyle.Width(max(0, m.w-2)).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) View() string {
	if m.showChains {
		return m.renderChainPopup()
	}

	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var pageContent string
	if m.w >= wideLayout {
		colWidth := (m.w - 6) / 2
		ps := m.panels(colWidth)
		left := lipgloss.JoinVertical(lipgloss.Left, ps[0], ps[1])
		right := lipgloss.JoinVertical(lipgloss.Left, ps[2], ps[3], ps[4])
		pageContent = lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	} else {
		pageContent = lipgloss.JoinVertical(lipgloss.Left, m.panels(max(0, m.w-4))...)
	}

	nav := m.navBar()

	if !m.logEnabled {
		return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav))
	}

	reserved := lipgloss.Height(headerPanel) + lipgloss.Height(pageContent) + lipgloss.Height(nav) + 2
	m.logViewport.Height = logview.Height(m.h, reserved)
	logPanel := logview.Render(m.w, m.logReady, m.logSpinner.View(), m.logViewport)

	content := lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav, logPanel)
	return appStyle.Render(content)
}

func key(s string) string {
	return styles.Key(s)
}
