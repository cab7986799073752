package wallet

import (
	"context"
	"math/big"

	"nft-wallet-tui/chains"
	"nft-wallet-tui/rpc"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend is the chain access the store needs. *rpc.Client and the
// simulated backend client both satisfy it.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Conn is an open connection to one chain
type Conn struct {
	Backend
	// Batch sends several eth_call requests in one round trip. When nil,
	// reads fall back to one CallContract per call.
	Batch rpc.BatchCaller
	// Close releases the connection, may be nil
	Close func()
}

func (c *Conn) close() {
	if c != nil && c.Close != nil {
		c.Close()
	}
}

// DialFunc opens a connection to a chain
type DialFunc func(ctx context.Context, chain chains.Chain) (*Conn, error)

// DialRPC connects to the chain's JSON-RPC endpoint
func DialRPC(ctx context.Context, chain chains.Chain) (*Conn, error) {
	res := rpc.ConnectContext(ctx, chain.RPCURL)
	if res.Error != nil {
		return nil, res.Error
	}
	c := res.Client
	return &Conn{Backend: c, Batch: c, Close: c.Close}, nil
}
