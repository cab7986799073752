package wallet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"nft-wallet-tui/chains"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

var (
	ErrNotConnected    = errors.New("wallet not connected")
	ErrUnknownChain    = errors.New("chain not configured")
	ErrNoAccounts      = errors.New("connector exposes no accounts")
	ErrReadFailed      = errors.New("contract read failed")
	ErrAccountNotFound = errors.New("account not in connected addresses")
	errChainSwitched   = errors.New("active chain changed while dialing")
)

// Config configures a Store
type Config struct {
	Chains         []chains.Chain
	Connectors     []Connector
	InitialChainID int64    // defaults to the first chain
	Dial           DialFunc // defaults to DialRPC
	Logger         *log.Logger
}

// Store owns the wallet connection, the active chain and the RPC backend.
// Every method is safe for concurrent use.
type Store struct {
	chains     []chains.Chain
	connectors []Connector
	dial       DialFunc
	log        *log.Logger

	mu      sync.Mutex
	chainID int64
	conn    *Conn
	session Session
	state   State

	subMu sync.Mutex
	subs  map[int]chan State
	next  int
}

// NewStore creates a disconnected store
func NewStore(cfg Config) *Store {
	s := &Store{
		chains:     cfg.Chains,
		connectors: cfg.Connectors,
		dial:       cfg.Dial,
		log:        cfg.Logger,
		chainID:    cfg.InitialChainID,
		state:      State{Status: StatusDisconnected},
		subs:       make(map[int]chan State),
	}
	if s.dial == nil {
		s.dial = DialRPC
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if _, ok := chains.ByID(s.chains, s.chainID); !ok && len(s.chains) > 0 {
		s.chainID = s.chains[0].ID
	}
	return s
}

// Connectors returns the configured connectors in order
func (s *Store) Connectors() []Connector {
	return append([]Connector(nil), s.connectors...)
}

// Chains returns the configured chains in order
func (s *Store) Chains() []chains.Chain {
	return append([]chains.Chain(nil), s.chains...)
}

// ActiveChain returns the chain reads and writes go to
func (s *Store) ActiveChain() (chains.Chain, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return chains.ByID(s.chains, s.chainID)
}

// State returns the current connection snapshot
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel receiving every state change and a func to
// stop the subscription. A slow reader only sees the latest state.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.subMu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.subMu.Unlock()

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
}

func (s *Store) publish(st State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

func (s *Store) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.publish(st)
}

// Connect opens a session with c and moves the store to connected
func (s *Store) Connect(ctx context.Context, c Connector) error {
	return s.connect(ctx, c, StatusConnecting)
}

// Reconnect is Connect for a connector restored from a previous run
func (s *Store) Reconnect(ctx context.Context, c Connector) error {
	return s.connect(ctx, c, StatusReconnecting)
}

func (s *Store) connect(ctx context.Context, c Connector, status Status) error {
	s.log.Debug("connecting", "connector", c.ID(), "uid", c.UID(), "status", status)

	// the current connection stays visible while the attempt runs
	s.mu.Lock()
	prev := s.state
	s.mu.Unlock()
	if prev.Status != StatusConnected {
		prev = State{Status: StatusDisconnected}
	}
	pending := prev
	pending.Status = status
	if prev.Status != StatusConnected {
		pending.Connector = c.ID()
	}
	s.setState(pending)

	session, err := c.Connect(ctx)
	if err != nil {
		s.restore(prev)
		return fmt.Errorf("connect %s: %w", c.ID(), err)
	}

	addrs := session.Accounts()
	if len(addrs) == 0 {
		_ = session.Close()
		s.restore(prev)
		return fmt.Errorf("connect %s: %w", c.ID(), ErrNoAccounts)
	}

	conn, err := s.backend(ctx)
	if err != nil {
		_ = session.Close()
		s.restore(prev)
		return fmt.Errorf("connect %s: %w", c.ID(), err)
	}

	id, err := conn.ChainID(ctx)
	if err != nil {
		_ = session.Close()
		s.restore(prev)
		return fmt.Errorf("connect %s: chain id: %w", c.ID(), err)
	}

	st := State{
		Status:    StatusConnected,
		Addresses: addrs,
		ChainID:   id.Int64(),
		Connector: c.ID(),
	}
	if ch, ok := chains.ByID(s.chains, st.ChainID); ok {
		st.Chain = &ch
	}

	s.mu.Lock()
	old := s.session
	s.session = session
	s.state = st
	s.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	s.publish(st)
	s.log.Debug("connected", "connector", c.ID(), "accounts", len(addrs), "chain", st.ChainID)
	return nil
}

// restore puts back the state from before a failed attempt. The session
// of a previous connection is left open.
func (s *Store) restore(prev State) {
	s.mu.Lock()
	if prev.Status != StatusConnected && s.session != nil {
		// a disconnected store holds no session
		_ = s.session.Close()
		s.session = nil
	}
	s.state = prev
	s.mu.Unlock()
	s.publish(prev)
}

// Disconnect closes the session. The RPC backend stays open for reads.
func (s *Store) Disconnect() error {
	s.mu.Lock()
	session := s.session
	s.session = nil
	s.state = State{Status: StatusDisconnected}
	st := s.state
	s.mu.Unlock()

	var err error
	if session != nil {
		err = session.Close()
	}
	s.publish(st)
	s.log.Debug("disconnected")
	return err
}

// SwitchChain makes id the active chain. A connected session stays
// connected and its state moves to the new chain.
func (s *Store) SwitchChain(ctx context.Context, id int64) error {
	if _, ok := chains.ByID(s.chains, id); !ok {
		return fmt.Errorf("switch chain %d: %w", id, ErrUnknownChain)
	}

	s.mu.Lock()
	old := s.conn
	s.conn = nil
	s.chainID = id
	connected := s.state.Status == StatusConnected
	s.mu.Unlock()
	old.close()

	if !connected {
		return nil
	}

	conn, err := s.backend(ctx)
	if err != nil {
		return fmt.Errorf("switch chain %d: %w", id, err)
	}
	got, err := conn.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("switch chain %d: chain id: %w", id, err)
	}

	s.mu.Lock()
	if s.state.Status != StatusConnected {
		s.mu.Unlock()
		return nil
	}
	st := s.state
	st.ChainID = got.Int64()
	st.Chain = nil
	if ch, ok := chains.ByID(s.chains, st.ChainID); ok {
		st.Chain = &ch
	}
	s.state = st
	s.mu.Unlock()

	s.publish(st)
	s.log.Debug("switched chain", "chain", st.ChainID)
	return nil
}

// backend returns the connection to the active chain, dialing it on first use
func (s *Store) backend(ctx context.Context) (*Conn, error) {
	s.mu.Lock()
	if s.conn != nil {
		c := s.conn
		s.mu.Unlock()
		return c, nil
	}
	id := s.chainID
	s.mu.Unlock()

	chain, ok := chains.ByID(s.chains, id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, id)
	}

	c, err := s.dial(ctx, chain)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", chain.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.chainID != id:
		c.close()
		return nil, errChainSwitched
	case s.conn != nil:
		c.close()
		return s.conn, nil
	}
	s.conn = c
	s.log.Debug("dialed", "chain", chain.Name, "rpc", chain.RPCURL)
	return c, nil
}

// Close disconnects and releases the RPC backend
func (s *Store) Close() error {
	err := s.Disconnect()

	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()
	conn.close()

	s.subMu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.subMu.Unlock()
	return err
}

// Balance returns the native balance of addr on the active chain
func (s *Store) Balance(ctx context.Context, addr common.Address) (Balance, error) {
	conn, err := s.backend(ctx)
	if err != nil {
		return Balance{}, fmt.Errorf("balance: %w", err)
	}
	chain, ok := s.ActiveChain()
	if !ok {
		return Balance{}, fmt.Errorf("balance: %w", ErrUnknownChain)
	}

	wei, err := conn.BalanceAt(ctx, addr, nil)
	if err != nil {
		return Balance{}, fmt.Errorf("balance of %s: %w", addr.Hex(), err)
	}
	return Balance{
		Value:     wei,
		Decimals:  chain.Currency.Decimals,
		Symbol:    chain.Currency.Symbol,
		Formatted: FormatUnits(wei, chain.Currency.Decimals),
	}, nil
}

// sender returns the open session and the address it sends from
func (s *Store) sender(account *common.Address) (Session, common.Address, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.state.Address()
	if s.session == nil || s.state.Status != StatusConnected || !ok {
		return nil, common.Address{}, 0, ErrNotConnected
	}
	if account != nil {
		if !lo.Contains(s.state.Addresses, *account) {
			return nil, common.Address{}, 0, fmt.Errorf("%w: %s", ErrAccountNotFound, account.Hex())
		}
		from = *account
	}
	return s.session, from, s.state.ChainID, nil
}
