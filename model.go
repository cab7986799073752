package main

import (
	"context"
	"strings"
	"time"

	"nft-wallet-tui/chains"
	"nft-wallet-tui/config"
	"nft-wallet-tui/styles"
	"nft-wallet-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// walletLayer is the wallet integration the panels consume. *wallet.Store
// implements it.
type walletLayer interface {
	Connectors() []wallet.Connector
	Chains() []chains.Chain
	ActiveChain() (chains.Chain, bool)
	State() wallet.State
	Subscribe() (<-chan wallet.State, func())
	Connect(ctx context.Context, c wallet.Connector) error
	Reconnect(ctx context.Context, c wallet.Connector) error
	Disconnect() error
	SwitchChain(ctx context.Context, id int64) error
	Balance(ctx context.Context, addr common.Address) (wallet.Balance, error)
	ReadContracts(ctx context.Context, calls []wallet.ContractCall, allowFailure bool) ([]wallet.CallResult, error)
	WriteContract(ctx context.Context, req wallet.WriteRequest) (common.Hash, error)
	SendTransaction(ctx context.Context, req wallet.SendRequest) (common.Hash, error)
}

var _ walletLayer = (*wallet.Store)(nil)

// panel identifies a focusable panel
type panel int

const (
	panelConnectors panel = iota
	panelAccount
	panelRead
	panelWrite
	panelTransfer
	panelCount
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	// wallet integration and its state feed
	wallet      walletLayer
	updates     <-chan wallet.State
	stopUpdates func()

	cfg        config.Config
	configPath string
	contract   common.Address // NFT collection shown by the read panel

	focus panel

	// connector selector
	connectorIdx int

	// account panel
	state   wallet.State
	balance *wallet.Balance
	showQR  bool

	// read panel
	readData []any
	reading  bool

	// write and transfer panels
	writeForm    *huh.Form
	transferForm *huh.Form
	writeHash    string
	lastHash     string // last hash from either panel, for clipboard

	// chain selector popup
	showChains bool
	chainIdx   int

	// clipboard feedback
	copiedMsg     string
	copiedMsgTime time.Time

	spin spinner.Model

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel creates the model over a wallet layer and subscribes to it
func newModel(w walletLayer, cfg config.Config, configPath string) model {
	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 10) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	updates, stop := w.Subscribe()

	return model{
		wallet:      w,
		updates:     updates,
		stopUpdates: stop,
		cfg:         cfg,
		configPath:  configPath,
		contract:    common.HexToAddress(cfg.NFTContract),
		focus:       panelConnectors,
		state:       w.State(),
		spin:        sp,
		logEnabled:  cfg.Logger,
		logViewport: vp,
		logBuffer:   &strings.Builder{},
		logSpinner:  logSpin,
	}
}

// Init implements tea.Model interface and returns initial commands
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spin.Tick,
		waitForState(m.updates),
		readNFT(m.wallet, m.contract, nil),
	}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	// restore the previous session
	if c, ok := m.lastConnector(); ok {
		cmds = append(cmds, connectWallet(m.wallet, c, true))
	}
	return tea.Batch(cmds...)
}

// lastConnector finds the first connector with the persisted id
func (m model) lastConnector() (wallet.Connector, bool) {
	if m.cfg.LastConnector == "" {
		return nil, false
	}
	return lo.Find(m.wallet.Connectors(), func(c wallet.Connector) bool {
		return c.ID() == m.cfg.LastConnector
	})
}
