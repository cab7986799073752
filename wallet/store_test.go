package wallet

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"nft-wallet-tui/chains"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nftContract = common.HexToAddress("0x930558574Ad29f697407c57506A427C85243247E")

// fakeBackend answers ERC-721 view calls and records sent transactions
type fakeBackend struct {
	mu      sync.Mutex
	chainID int64
	revert  map[string]bool // function names that fail
	calls   []string
	sent    []*types.Transaction
}

func newFakeBackend(chainID int64) *fakeBackend {
	return &fakeBackend{chainID: chainID, revert: map[string]bool{}}
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(f.chainID), nil
}

func (f *fakeBackend) BalanceAt(context.Context, common.Address, *big.Int) (*big.Int, error) {
	return big.NewInt(2_500_000_000_000_000_000), nil
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	return f.answer(msg.Data)
}

func (f *fakeBackend) answer(data []byte) ([]byte, error) {
	method, err := ERC721.MethodById(data[:4])
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.calls = append(f.calls, method.Name)
	f.mu.Unlock()

	if f.revert[method.Name] {
		return nil, errors.New("execution reverted")
	}
	switch method.Name {
	case "name":
		return method.Outputs.Pack("MyCollection")
	case "totalSupply":
		return method.Outputs.Pack(big.NewInt(100))
	case "balanceOf":
		return method.Outputs.Pack(big.NewInt(3))
	}
	return nil, errors.New("unexpected call " + method.Name)
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 7, nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{BaseFee: big.NewInt(2_000_000_000)}, nil
}

func (f *fakeBackend) EstimateGas(context.Context, ethereum.CallMsg) (uint64, error) {
	return 90_000, nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

// BatchCallContext makes the fake usable as a batching transport
func (f *fakeBackend) BatchCallContext(_ context.Context, elems []gethrpc.BatchElem) error {
	for i, e := range elems {
		arg := e.Args[0].(map[string]interface{})
		out, err := f.answer(arg["data"].(hexutil.Bytes))
		if err != nil {
			elems[i].Error = err
			continue
		}
		*e.Result.(*hexutil.Bytes) = out
	}
	return nil
}

func newTestStore(t *testing.T, backend *fakeBackend, batched bool) *Store {
	t.Helper()
	return NewStore(Config{
		Chains:     []chains.Chain{chains.Localhost, chains.Anvil},
		Connectors: []Connector{NewPrivateKeyConnector(devKey0)},
		Dial: func(context.Context, chains.Chain) (*Conn, error) {
			conn := &Conn{Backend: backend}
			if batched {
				conn.Batch = backend
			}
			return conn, nil
		},
	})
}

func nftReads(wallet *common.Address) []ContractCall {
	calls := []ContractCall{
		{Address: nftContract, ABI: ERC721, FunctionName: "name"},
		{Address: nftContract, ABI: ERC721, FunctionName: "totalSupply"},
	}
	if wallet != nil {
		calls = append(calls, ContractCall{Address: nftContract, ABI: ERC721, FunctionName: "balanceOf", Args: []any{*wallet}})
	}
	return calls
}

func TestConnectAndDisconnect(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	updates, stop := s.Subscribe()
	defer stop()

	assert.Equal(t, StatusDisconnected, s.State().Status)

	require.NoError(t, s.Connect(context.Background(), s.Connectors()[0]))
	st := s.State()
	assert.Equal(t, StatusConnected, st.Status)
	assert.Equal(t, []common.Address{devAddr0}, st.Addresses)
	assert.Equal(t, int64(1337), st.ChainID)
	require.NotNil(t, st.Chain)
	assert.Equal(t, "Localhost", st.Chain.Name)
	assert.Equal(t, PrivateKeyID, st.Connector)
	assert.Equal(t, StatusConnected, (<-updates).Status)

	require.NoError(t, s.Disconnect())
	st = s.State()
	assert.Equal(t, StatusDisconnected, st.Status)
	assert.Nil(t, st.Addresses)
	assert.Equal(t, StatusDisconnected, (<-updates).Status)
}

func TestReconnectReportsReconnecting(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	updates, stop := s.Subscribe()
	defer stop()

	blocker := &blockingConnector{PrivateKeyConnector: NewPrivateKeyConnector(devKey0), release: make(chan struct{})}
	done := make(chan error)
	go func() { done <- s.Reconnect(context.Background(), blocker) }()

	assert.Equal(t, StatusReconnecting, (<-updates).Status)
	close(blocker.release)
	require.NoError(t, <-done)
	assert.Equal(t, StatusConnected, s.State().Status)
}

type blockingConnector struct {
	*PrivateKeyConnector
	release chan struct{}
}

func (c *blockingConnector) Connect(ctx context.Context) (Session, error) {
	<-c.release
	return c.PrivateKeyConnector.Connect(ctx)
}

func TestConnectFailureReturnsToDisconnected(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	err := s.Connect(context.Background(), NewPrivateKeyConnector("0xnope"))
	require.Error(t, err)
	assert.Equal(t, StatusDisconnected, s.State().Status)
}

func TestFailedConnectKeepsConnection(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	require.NoError(t, s.Connect(context.Background(), s.Connectors()[0]))

	err := s.Connect(context.Background(), NewPrivateKeyConnector("0xnope"))
	require.Error(t, err)

	st := s.State()
	assert.Equal(t, StatusConnected, st.Status)
	assert.Equal(t, []common.Address{devAddr0}, st.Addresses)
	assert.Equal(t, PrivateKeyID, st.Connector)

	// the previous session still signs
	_, from, _, err := s.sender(nil)
	require.NoError(t, err)
	assert.Equal(t, devAddr0, from)
}

func TestConnectingKeepsAddresses(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	require.NoError(t, s.Connect(context.Background(), s.Connectors()[0]))
	updates, stop := s.Subscribe()
	defer stop()

	blocker := &blockingConnector{PrivateKeyConnector: NewPrivateKeyConnector(devKey1), release: make(chan struct{})}
	done := make(chan error)
	go func() { done <- s.Connect(context.Background(), blocker) }()

	pending := <-updates
	assert.Equal(t, StatusConnecting, pending.Status)
	assert.Equal(t, []common.Address{devAddr0}, pending.Addresses)

	close(blocker.release)
	require.NoError(t, <-done)
	assert.Equal(t, []common.Address{devAddr1}, s.State().Addresses)
}

func TestConnectUnknownChainID(t *testing.T) {
	s := newTestStore(t, newFakeBackend(99), false)
	require.NoError(t, s.Connect(context.Background(), s.Connectors()[0]))
	st := s.State()
	assert.Equal(t, int64(99), st.ChainID)
	assert.Nil(t, st.Chain)
}

func TestReadContracts(t *testing.T) {
	for _, batched := range []bool{false, true} {
		name := "sequential"
		if batched {
			name = "batched"
		}
		t.Run(name, func(t *testing.T) {
			backend := newFakeBackend(1337)
			s := newTestStore(t, backend, batched)

			res, err := s.ReadContracts(context.Background(), nftReads(&devAddr0), false)
			require.NoError(t, err)
			require.Len(t, res, 3)
			assert.Equal(t, "MyCollection", res[0].Result)
			assert.Equal(t, big.NewInt(100), res[1].Result)
			assert.Equal(t, big.NewInt(3), res[2].Result)
			assert.Equal(t, []string{"name", "totalSupply", "balanceOf"}, backend.calls)
		})
	}
}

func TestReadContractsWithoutWallet(t *testing.T) {
	backend := newFakeBackend(1337)
	s := newTestStore(t, backend, true)

	res, err := s.ReadContracts(context.Background(), nftReads(nil), false)
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, []string{"name", "totalSupply"}, backend.calls)
}

func TestReadContractsFailure(t *testing.T) {
	backend := newFakeBackend(1337)
	backend.revert["totalSupply"] = true
	s := newTestStore(t, backend, true)

	_, err := s.ReadContracts(context.Background(), nftReads(&devAddr0), false)
	assert.ErrorIs(t, err, ErrReadFailed)

	res, err := s.ReadContracts(context.Background(), nftReads(&devAddr0), true)
	require.NoError(t, err)
	assert.Equal(t, "MyCollection", res[0].Result)
	assert.Error(t, res[1].Err)
	assert.Nil(t, res[1].Result)
	assert.Equal(t, big.NewInt(3), res[2].Result)
}

func TestReadContractsPackError(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	calls := []ContractCall{{Address: nftContract, ABI: ERC721, FunctionName: "balanceOf", Args: []any{"not an address"}}}

	_, err := s.ReadContracts(context.Background(), calls, false)
	assert.ErrorIs(t, err, ErrReadFailed)

	res, err := s.ReadContracts(context.Background(), calls, true)
	require.NoError(t, err)
	assert.Error(t, res[0].Err)
}

func TestWriteContractRequiresConnection(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	_, err := s.WriteContract(context.Background(), WriteRequest{
		Address:      nftContract,
		ABI:          ERC721,
		FunctionName: "transferFrom",
		Args:         []any{devAddr0, nftContract, big.NewInt(1)},
	})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestWriteContract(t *testing.T) {
	backend := newFakeBackend(1337)
	s := newTestStore(t, backend, false)
	require.NoError(t, s.Connect(context.Background(), s.Connectors()[0]))

	hash, err := s.WriteContract(context.Background(), WriteRequest{
		Address:      nftContract,
		ABI:          ERC721,
		FunctionName: "transferFrom",
		Args:         []any{devAddr0, nftContract, big.NewInt(42)},
	})
	require.NoError(t, err)
	require.Len(t, backend.sent, 1)

	tx := backend.sent[0]
	assert.Equal(t, tx.Hash(), hash)
	assert.Equal(t, nftContract, *tx.To())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(90_000), tx.Gas())
	assert.Equal(t, big.NewInt(5_000_000_000), tx.GasFeeCap())
	assert.Equal(t, big.NewInt(1337), tx.ChainId())

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	require.NoError(t, err)
	assert.Equal(t, devAddr0, from)

	method, err := ERC721.MethodById(tx.Data()[:4])
	require.NoError(t, err)
	assert.Equal(t, "transferFrom", method.Name)
	args, err := method.Inputs.Unpack(tx.Data()[4:])
	require.NoError(t, err)
	assert.Equal(t, []any{devAddr0, nftContract, big.NewInt(42)}, args)
}

func TestSendTransactionUnknownAccount(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	require.NoError(t, s.Connect(context.Background(), s.Connectors()[0]))

	_, err := s.SendTransaction(context.Background(), SendRequest{To: devAddr1, Account: &devAddr1})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSendTransactionSimulated(t *testing.T) {
	fund, ok := new(big.Int).SetString("10000000000000000000", 10)
	require.True(t, ok)
	sim := simulated.NewBackend(types.GenesisAlloc{devAddr0: {Balance: fund}})
	defer sim.Close()

	s := NewStore(Config{
		Chains:     []chains.Chain{chains.Localhost},
		Connectors: []Connector{NewPrivateKeyConnector(devKey0)},
		Dial: func(context.Context, chains.Chain) (*Conn, error) {
			return &Conn{Backend: sim.Client()}, nil
		},
	})
	ctx := context.Background()
	require.NoError(t, s.Connect(ctx, s.Connectors()[0]))

	value, err := ParseEther("1.5")
	require.NoError(t, err)
	hash, err := s.SendTransaction(ctx, SendRequest{To: devAddr1, Value: value})
	require.NoError(t, err)
	sim.Commit()

	receipt, err := sim.Client().TransactionReceipt(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, types.ReceiptStatusSuccessful, receipt.Status)

	bal, err := s.Balance(ctx, devAddr1)
	require.NoError(t, err)
	assert.Equal(t, "1.5", bal.Formatted)
	assert.Equal(t, "ETH", bal.Symbol)
	assert.Equal(t, uint8(18), bal.Decimals)
}

func TestSwitchChain(t *testing.T) {
	backends := map[int64]*fakeBackend{1337: newFakeBackend(1337), 31337: newFakeBackend(31337)}
	s := NewStore(Config{
		Chains:     []chains.Chain{chains.Localhost, chains.Anvil},
		Connectors: []Connector{NewPrivateKeyConnector(devKey0)},
		Dial: func(_ context.Context, c chains.Chain) (*Conn, error) {
			return &Conn{Backend: backends[c.ID]}, nil
		},
	})
	ctx := context.Background()

	assert.ErrorIs(t, s.SwitchChain(ctx, 1), ErrUnknownChain)

	require.NoError(t, s.SwitchChain(ctx, 31337))
	active, ok := s.ActiveChain()
	require.True(t, ok)
	assert.Equal(t, "Anvil", active.Name)

	require.NoError(t, s.Connect(ctx, s.Connectors()[0]))
	assert.Equal(t, int64(31337), s.State().ChainID)

	require.NoError(t, s.SwitchChain(ctx, 1337))
	st := s.State()
	assert.Equal(t, StatusConnected, st.Status)
	assert.Equal(t, int64(1337), st.ChainID)
	assert.Equal(t, "Localhost", st.Chain.Name)
}

func TestBalanceFormatsWithChainCurrency(t *testing.T) {
	s := newTestStore(t, newFakeBackend(1337), false)
	bal, err := s.Balance(context.Background(), devAddr0)
	require.NoError(t, err)
	assert.Equal(t, "2.5", bal.Formatted)
	assert.Equal(t, "ETH", bal.Symbol)
}

func TestNoChainsConfigured(t *testing.T) {
	s := NewStore(Config{})
	_, err := s.Balance(context.Background(), devAddr0)
	assert.ErrorIs(t, err, ErrUnknownChain)
}
