package chain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	ErrConfirmationTimeout = errors.New("timed out waiting for confirmations")
	ErrTxReverted          = errors.New("transaction reverted")
	ErrSenderMismatch      = errors.New("request sender does not match signing identity")
)

// TransferRequest is a plain value transfer. Gas and fee fields are filled in by the Provider.
type TransferRequest struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Nonce uint64
}

// BalanceReader is the read-only part of a Provider.
type BalanceReader interface {
	Balance(ctx context.Context, addr common.Address) (*big.Int, error)
}

// Provider is the RPC and signing capability the transfer and balance commands run against.
type Provider interface {
	BalanceReader

	// Nonce returns the next sequence number for addr, including pending transactions.
	Nonce(ctx context.Context, addr common.Address) (uint64, error)

	// Submit signs and broadcasts req, returning the transaction hash.
	Submit(ctx context.Context, req TransferRequest) (common.Hash, error)

	// AwaitConfirmation blocks until the transaction is buried under the requested
	// number of blocks (the including block counts as the first) or timeout elapses.
	AwaitConfirmation(ctx context.Context, hash common.Hash, confirmations uint64, timeout time.Duration) (*types.Receipt, error)
}

type providerKey struct{}

func WithProvider(ctx context.Context, p Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

func ProviderFromContext(ctx context.Context) (Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(Provider)
	return p, ok
}
