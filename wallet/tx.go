package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// WriteRequest is a state-changing contract call
type WriteRequest struct {
	Address      common.Address
	ABI          *abi.ABI
	FunctionName string
	Args         []any
	Account      *common.Address // nil sends from the active address
	Value        *big.Int
}

// SendRequest is a plain transaction, usually a native value transfer
type SendRequest struct {
	To      common.Address
	Value   *big.Int
	Data    []byte
	Account *common.Address
}

// WriteContract encodes the call, signs it with the connected session and
// broadcasts it. It returns as soon as the node accepts the transaction.
func (s *Store) WriteContract(ctx context.Context, req WriteRequest) (common.Hash, error) {
	data, err := req.ABI.Pack(req.FunctionName, req.Args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("write %s: %w", req.FunctionName, err)
	}
	hash, err := s.sendTx(ctx, req.Account, req.Address, req.Value, data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("write %s: %w", req.FunctionName, err)
	}
	return hash, nil
}

// SendTransaction signs and broadcasts a transaction to req.To
func (s *Store) SendTransaction(ctx context.Context, req SendRequest) (common.Hash, error) {
	hash, err := s.sendTx(ctx, req.Account, req.To, req.Value, req.Data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("send transaction: %w", err)
	}
	return hash, nil
}

func (s *Store) sendTx(ctx context.Context, account *common.Address, to common.Address, value *big.Int, data []byte) (common.Hash, error) {
	session, from, chainID, err := s.sender(account)
	if err != nil {
		return common.Hash{}, err
	}
	conn, err := s.backend(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	if value == nil {
		value = new(big.Int)
	}

	nonce, err := conn.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("nonce: %w", err)
	}
	tip, err := conn.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gas tip: %w", err)
	}
	head, err := conn.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("latest header: %w", err)
	}

	// fee cap is tip + 2*baseFee
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	gas, err := conn.EstimateGas(ctx, ethereum.CallMsg{
		From:      from,
		To:        &to,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Value:     value,
		Data:      data,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}

	cid := big.NewInt(chainID)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   cid,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &to,
		Value:     value,
		Data:      data,
	})

	signed, err := session.SignTx(from, tx, cid)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign: %w", err)
	}
	if err := conn.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("broadcast: %w", err)
	}

	s.log.Debug("sent transaction", "hash", signed.Hash().Hex(), "from", from.Hex(), "to", to.Hex(), "nonce", nonce)
	return signed.Hash(), nil
}
