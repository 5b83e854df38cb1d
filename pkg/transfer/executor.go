package transfer

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"fundsplit/pkg/chain"
	"fundsplit/pkg/common/iface"

	"github.com/ethereum/go-ethereum/common"
)

// Stage names where a per-recipient transfer stopped.
const (
	StageNonce   = "nonce"
	StageSubmit  = "submit"
	StageConfirm = "confirm"
)

type Config struct {
	Amount        *big.Int
	Confirmations uint64
	Timeout       time.Duration
	// Pause is slept between recipients, after successes and failures alike.
	Pause time.Duration
}

// Result is the outcome for a single recipient.
type Result struct {
	Recipient   common.Address
	Nonce       uint64
	TxHash      common.Hash
	BlockNumber uint64
	Stage       string
	Err         error
}

func (r Result) Succeeded() bool {
	return r.Err == nil
}

type Summary struct {
	Sent   int
	Failed int
}

// Executor sends the same amount to each recipient, one at a time. Nonces are
// fetched fresh before every send so no two in-flight transfers can share one.
type Executor struct {
	provider chain.Provider
	sender   common.Address
	cfg      Config
	logger   iface.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewExecutor(provider chain.Provider, sender common.Address, cfg Config, logger iface.Logger) *Executor {
	if cfg.Amount == nil {
		cfg.Amount = new(big.Int)
	}
	return &Executor{
		provider: provider,
		sender:   sender,
		cfg:      cfg,
		logger:   logger,
		sleep:    sleepContext,
	}
}

// Run attempts one transfer per recipient in order. Per-recipient failures are
// reported and never stop the loop; only context cancellation does.
func (e *Executor) Run(ctx context.Context, recipients []common.Address) ([]Result, Summary) {
	results := make([]Result, 0, len(recipients))
	var summary Summary

	for i, recipient := range recipients {
		if ctx.Err() != nil {
			e.logger.WarnWithActor(iface.ActorSender, "⚠️  Interrupted, %d recipient(s) not attempted", len(recipients)-len(results))
			break
		}

		res := e.send(ctx, recipient)
		results = append(results, res)
		if res.Succeeded() {
			summary.Sent++
		} else {
			summary.Failed++
		}

		if i < len(recipients)-1 {
			// cancellation is picked up at the top of the loop
			_ = e.sleep(ctx, e.cfg.Pause)
		}
	}

	return results, summary
}

func (e *Executor) send(ctx context.Context, recipient common.Address) Result {
	res := Result{Recipient: recipient}
	e.logger.InfoWithActor(iface.ActorSender, "→ Sending to %s", recipient.Hex())

	nonce, err := e.provider.Nonce(ctx, e.sender)
	if err != nil {
		res.Stage, res.Err = StageNonce, fmt.Errorf("failed to fetch nonce: %w", err)
		e.logger.ErrorWithActor(iface.ActorSender, "   ❌ Transaction error: %v", res.Err)
		return res
	}
	res.Nonce = nonce

	req := chain.TransferRequest{
		From:  e.sender,
		To:    recipient,
		Value: e.cfg.Amount,
		Nonce: nonce,
	}
	e.logger.DebugWithActor(iface.ActorSender, "submitting nonce=%d value=%s", nonce, e.cfg.Amount)

	hash, err := e.provider.Submit(ctx, req)
	if err != nil {
		res.Stage, res.Err = StageSubmit, err
		e.logger.ErrorWithActor(iface.ActorSender, "   ❌ Transaction error: %v", err)
		return res
	}
	res.TxHash = hash
	e.logger.DebugWithActor(iface.ActorChain, "waiting for %d confirmation(s) of %s", e.cfg.Confirmations, hash.Hex())

	receipt, err := e.provider.AwaitConfirmation(ctx, hash, e.cfg.Confirmations, e.cfg.Timeout)
	if err != nil {
		res.Stage, res.Err = StageConfirm, err
		e.logger.ErrorWithActor(iface.ActorChain, "   ❌ Pending tx error: %v", err)
		return res
	}
	if receipt != nil && receipt.BlockNumber != nil {
		res.BlockNumber = receipt.BlockNumber.Uint64()
	}

	e.logger.InfoWithActor(iface.ActorSender, "   ✅ Tx Hash: %s", hash.Hex())
	return res
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
