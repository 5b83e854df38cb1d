package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ReceiptReader is the subset of ethclient.Client needed to follow a transaction to confirmation.
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// WaitForConfirmations polls r until hash is included and the chain head is at least
// confirmations-1 blocks past the including block. A zero timeout waits until ctx is done.
func WaitForConfirmations(ctx context.Context, r ReceiptReader, hash common.Hash, confirmations uint64, timeout, poll time.Duration) (*types.Receipt, error) {
	if confirmations == 0 {
		confirmations = 1
	}
	if poll <= 0 {
		poll = time.Second
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		receipt, err := r.TransactionReceipt(ctx, hash)
		switch {
		case err == nil && receipt != nil && receipt.BlockNumber != nil:
			head, err := r.BlockNumber(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil, waitError(ctx, hash, timeout)
				}
				return nil, fmt.Errorf("failed to fetch block number: %w", err)
			}
			if head+1 >= receipt.BlockNumber.Uint64()+confirmations {
				if receipt.Status == types.ReceiptStatusFailed {
					return receipt, fmt.Errorf("%w: %s", ErrTxReverted, hash.Hex())
				}
				return receipt, nil
			}
		case err == nil, errors.Is(err, ethereum.NotFound):
			// not mined yet
		default:
			if ctx.Err() != nil {
				return nil, waitError(ctx, hash, timeout)
			}
			return nil, fmt.Errorf("failed to fetch receipt for %s: %w", hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return nil, waitError(ctx, hash, timeout)
		case <-ticker.C:
		}
	}
}

func waitError(ctx context.Context, hash common.Hash, timeout time.Duration) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s (tx %s)", ErrConfirmationTimeout, timeout, hash.Hex())
	}
	return ctx.Err()
}
