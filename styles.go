package main

import (
	"time"

	"nft-wallet-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- THEME (Lip Gloss) --------------------
// Styles now come from the styles package

var (
	cPanel   = styles.CPanel
	cBorder  = styles.CBorder
	cMuted   = styles.CMuted
	cText    = styles.CText
	cAccent  = styles.CAccent
	cAccent2 = styles.CAccent2
	cWarn    = styles.CWarn
	cError   = styles.CError

	appStyle       = styles.AppStyle
	panelStyle     = styles.PanelStyle
	navStyle       = styles.NavStyle
	helpRightStyle = lipgloss.NewStyle().Foreground(styles.CMuted)
)

// how long the "Copied" feedback stays visible
const clipboardFeedback = 2 * time.Second

// timeNow is replaced in tests
var timeNow = time.Now
