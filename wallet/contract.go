package wallet

import (
	"context"
	"fmt"

	"nft-wallet-tui/rpc"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ContractCall is one view function call
type ContractCall struct {
	Address      common.Address
	ABI          *abi.ABI
	FunctionName string
	Args         []any
}

// CallResult is the decoded output of a ContractCall. Result holds the
// single return value, or the whole []any when the function returns several.
type CallResult struct {
	Result any
	Err    error
}

// ReadContracts runs calls against the latest block as one batch when the
// backend supports it. With allowFailure false the first failing call fails
// the whole read with ErrReadFailed. Otherwise failures land in each Err.
func (s *Store) ReadContracts(ctx context.Context, calls []ContractCall, allowFailure bool) ([]CallResult, error) {
	results := make([]CallResult, len(calls))
	if len(calls) == 0 {
		return results, nil
	}

	msgs := make([]ethereum.CallMsg, 0, len(calls))
	index := make([]int, 0, len(calls))
	for i, call := range calls {
		data, err := call.ABI.Pack(call.FunctionName, call.Args...)
		if err != nil {
			if !allowFailure {
				return nil, fmt.Errorf("%w: pack %s: %w", ErrReadFailed, call.FunctionName, err)
			}
			results[i].Err = fmt.Errorf("pack %s: %w", call.FunctionName, err)
			continue
		}
		to := call.Address
		msgs = append(msgs, ethereum.CallMsg{To: &to, Data: data})
		index = append(index, i)
	}

	conn, err := s.backend(ctx)
	if err != nil {
		return nil, fmt.Errorf("read contracts: %w", err)
	}

	out, errs, err := s.call(ctx, conn, msgs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailed, err)
	}

	for j, i := range index {
		call := calls[i]
		if errs[j] != nil {
			if !allowFailure {
				return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, call.FunctionName, errs[j])
			}
			results[i].Err = errs[j]
			continue
		}

		values, err := call.ABI.Unpack(call.FunctionName, out[j])
		if err != nil {
			if !allowFailure {
				return nil, fmt.Errorf("%w: unpack %s: %w", ErrReadFailed, call.FunctionName, err)
			}
			results[i].Err = fmt.Errorf("unpack %s: %w", call.FunctionName, err)
			continue
		}

		if len(values) == 1 {
			results[i].Result = values[0]
		} else {
			results[i].Result = values
		}
	}

	s.log.Debug("read contracts", "calls", len(calls), "batched", conn.Batch != nil)
	return results, nil
}

func (s *Store) call(ctx context.Context, conn *Conn, msgs []ethereum.CallMsg) ([][]byte, []error, error) {
	if conn.Batch != nil {
		return rpc.BatchEthCall(ctx, conn.Batch, msgs)
	}

	out := make([][]byte, len(msgs))
	errs := make([]error, len(msgs))
	for i, msg := range msgs {
		out[i], errs[i] = conn.CallContract(ctx, msg, nil)
	}
	return out, errs, nil
}
