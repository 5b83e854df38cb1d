// Package chaintest provides an in-memory chain.Provider for tests.
package chaintest

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"fundsplit/pkg/chain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Call records one provider invocation in order.
type Call struct {
	Method string
	Addr   common.Address
}

// FakeProvider keeps balances in memory and applies a transfer as soon as it is confirmed.
// Errors can be injected per recipient address.
type FakeProvider struct {
	Balances map[common.Address]*big.Int
	Nonces   map[common.Address]uint64

	NonceErr   map[common.Address]error
	SubmitErr  map[common.Address]error
	ConfirmErr map[common.Address]error
	BalanceErr map[common.Address]error

	Calls     []Call
	Submitted []chain.TransferRequest

	block   uint64
	pending map[common.Hash]chain.TransferRequest
}

var _ chain.Provider = (*FakeProvider)(nil)

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Balances:   make(map[common.Address]*big.Int),
		Nonces:     make(map[common.Address]uint64),
		NonceErr:   make(map[common.Address]error),
		SubmitErr:  make(map[common.Address]error),
		ConfirmErr: make(map[common.Address]error),
		BalanceErr: make(map[common.Address]error),
		block:      100,
		pending:    make(map[common.Hash]chain.TransferRequest),
	}
}

// Count returns how many times method was called.
func (f *FakeProvider) Count(method string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Targets returns the addresses passed to method, in call order.
func (f *FakeProvider) Targets(method string) []common.Address {
	var out []common.Address
	for _, c := range f.Calls {
		if c.Method == method {
			out = append(out, c.Addr)
		}
	}
	return out
}

func (f *FakeProvider) Nonce(ctx context.Context, addr common.Address) (uint64, error) {
	f.Calls = append(f.Calls, Call{Method: "Nonce", Addr: addr})
	if err := f.NonceErr[addr]; err != nil {
		return 0, err
	}
	return f.Nonces[addr], nil
}

func (f *FakeProvider) Submit(ctx context.Context, req chain.TransferRequest) (common.Hash, error) {
	f.Calls = append(f.Calls, Call{Method: "Submit", Addr: req.To})
	if err := f.SubmitErr[req.To]; err != nil {
		return common.Hash{}, err
	}
	f.Submitted = append(f.Submitted, req)
	f.Nonces[req.From] = req.Nonce + 1

	hash := crypto.Keccak256Hash(req.From.Bytes(), req.To.Bytes(), new(big.Int).SetUint64(req.Nonce).Bytes())
	f.pending[hash] = req
	return hash, nil
}

func (f *FakeProvider) AwaitConfirmation(ctx context.Context, hash common.Hash, confirmations uint64, timeout time.Duration) (*types.Receipt, error) {
	req, ok := f.pending[hash]
	if !ok {
		return nil, fmt.Errorf("unknown transaction %s", hash.Hex())
	}
	f.Calls = append(f.Calls, Call{Method: "AwaitConfirmation", Addr: req.To})
	delete(f.pending, hash)
	if err := f.ConfirmErr[req.To]; err != nil {
		return nil, err
	}

	f.block++
	bal := f.Balances[req.To]
	if bal == nil {
		bal = new(big.Int)
	}
	f.Balances[req.To] = new(big.Int).Add(bal, req.Value)

	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      hash,
		BlockNumber: new(big.Int).SetUint64(f.block),
	}, nil
}

func (f *FakeProvider) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	f.Calls = append(f.Calls, Call{Method: "Balance", Addr: addr})
	if err := f.BalanceErr[addr]; err != nil {
		return nil, err
	}
	if bal, ok := f.Balances[addr]; ok {
		return new(big.Int).Set(bal), nil
	}
	return new(big.Int), nil
}

// Address builds a deterministic test address from n.
func Address(n int) common.Address {
	return common.BigToAddress(big.NewInt(int64(0x1000 + n)))
}
