package chain

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/time/rate"
)

// RateLimited throttles the request-issuing calls of a Provider.
// AwaitConfirmation is passed through since the wrapped provider paces its own polling.
type RateLimited struct {
	next    Provider
	limiter *rate.Limiter
}

var _ Provider = (*RateLimited)(nil)

// WithRateLimit returns p unchanged when perSecond is not positive.
func WithRateLimit(p Provider, perSecond float64, burst int) Provider {
	if perSecond <= 0 {
		return p
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    p,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (r *RateLimited) Nonce(ctx context.Context, addr common.Address) (uint64, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	return r.next.Nonce(ctx, addr)
}

func (r *RateLimited) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.next.Balance(ctx, addr)
}

func (r *RateLimited) Submit(ctx context.Context, req TransferRequest) (common.Hash, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return common.Hash{}, err
	}
	return r.next.Submit(ctx, req)
}

func (r *RateLimited) AwaitConfirmation(ctx context.Context, hash common.Hash, confirmations uint64, timeout time.Duration) (*types.Receipt, error) {
	return r.next.AwaitConfirmation(ctx, hash, confirmations, timeout)
}
