package rpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// BatchCaller sends several JSON-RPC requests in one round trip
type BatchCaller interface {
	BatchCallContext(ctx context.Context, b []gethrpc.BatchElem) error
}

// Connect attempts to connect to an Ethereum RPC endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout attempts to connect with a custom timeout
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return ConnectContext(ctx, url)
}

// ConnectContext dials url and bounds the attempt by ctx
func ConnectContext(ctx context.Context, url string) ConnectResult {
	if url == "" {
		return ConnectResult{Error: errors.New("empty RPC URL")}
	}

	raw, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	return ConnectResult{
		Client: &Client{
			Client: ethclient.NewClient(raw),
			URL:    url,
		},
		Error: nil,
	}
}

// BatchCallContext forwards a batch to the underlying JSON-RPC client
func (c *Client) BatchCallContext(ctx context.Context, b []gethrpc.BatchElem) error {
	return c.Client.Client().BatchCallContext(ctx, b)
}

// BatchEthCall runs every call as eth_call against the latest block in a single
// batch request. The outer error is a transport failure; per-call failures are
// reported in errs at the same index as the call.
func BatchEthCall(ctx context.Context, b BatchCaller, calls []ethereum.CallMsg) (out [][]byte, errs []error, err error) {
	results := make([]hexutil.Bytes, len(calls))
	elems := make([]gethrpc.BatchElem, len(calls))
	for i, call := range calls {
		elems[i] = gethrpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{toCallArg(call), "latest"},
			Result: &results[i],
		}
	}

	if err := b.BatchCallContext(ctx, elems); err != nil {
		return nil, nil, fmt.Errorf("batch eth_call: %w", err)
	}

	out = make([][]byte, len(calls))
	errs = make([]error, len(calls))
	for i := range elems {
		out[i] = results[i]
		errs[i] = elems[i].Error
	}
	return out, errs, nil
}

func toCallArg(msg ethereum.CallMsg) interface{} {
	arg := map[string]interface{}{
		"to": msg.To,
	}
	if msg.From != (common.Address{}) {
		arg["from"] = msg.From
	}
	if len(msg.Data) > 0 {
		arg["data"] = hexutil.Bytes(msg.Data)
	}
	if msg.Value != nil {
		arg["value"] = (*hexutil.Big)(msg.Value)
	}
	if msg.Gas != 0 {
		arg["gas"] = hexutil.Uint64(msg.Gas)
	}
	return arg
}
