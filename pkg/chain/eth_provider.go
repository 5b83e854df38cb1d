package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/ethereum/go-ethereum/rpc"
)

var _ Provider = (*EthProvider)(nil)

// EthProvider implements Provider on top of a JSON-RPC endpoint, signing locally with identity.
type EthProvider struct {
	client       *ethclient.Client
	identity     *Identity
	chainID      *big.Int
	signer       types.Signer
	pollInterval time.Duration
}

// EthProviderOptions tunes how EthProvider talks to the endpoint.
type EthProviderOptions struct {
	// PollInterval is how often receipts and the chain head are polled while waiting.
	PollInterval time.Duration
	// RequestTimeout bounds a single HTTP round trip.
	RequestTimeout time.Duration
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{
		MaxIdleConns:        16,
		MaxIdleConnsPerHost: 16,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// DialEthProvider connects to rpcURL and resolves the chain id. An endpoint that
// cannot be reached or does not answer eth_chainId is an error.
func DialEthProvider(ctx context.Context, rpcURL string, identity *Identity, opts EthProviderOptions) (*EthProvider, error) {
	rpcClient, err := rpc.DialOptions(ctx, rpcURL, rpc.WithHTTPClient(newHTTPClient(opts.RequestTimeout)))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rpc client: %w", err)
	}

	p, err := NewEthProvider(ctx, rpcClient, identity, opts)
	if err != nil {
		rpcClient.Close()
		return nil, err
	}
	return p, nil
}

// NewEthProvider wraps an existing rpc client.
func NewEthProvider(ctx context.Context, rpcClient *rpc.Client, identity *Identity, opts EthProviderOptions) (*EthProvider, error) {
	if identity == nil {
		return nil, errors.New("signing identity is required")
	}

	client := ethclient.NewClient(rpcClient)
	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain id: %w", err)
	}

	poll := opts.PollInterval
	if poll <= 0 {
		poll = 2 * time.Second
	}

	return &EthProvider{
		client:       client,
		identity:     identity,
		chainID:      chainID,
		signer:       types.LatestSignerForChainID(chainID),
		pollInterval: poll,
	}, nil
}

func (p *EthProvider) ChainID() *big.Int {
	return new(big.Int).Set(p.chainID)
}

func (p *EthProvider) Nonce(ctx context.Context, addr common.Address) (uint64, error) {
	return p.client.PendingNonceAt(ctx, addr)
}

func (p *EthProvider) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	return p.client.BalanceAt(ctx, addr, nil)
}

// Submit fills gas and fees, signs with the provider identity and broadcasts the transaction.
// Chains reporting a base fee get a dynamic fee transaction, others a legacy one.
func (p *EthProvider) Submit(ctx context.Context, req TransferRequest) (common.Hash, error) {
	if req.From != p.identity.Address() {
		return common.Hash{}, fmt.Errorf("%w: %s", ErrSenderMismatch, req.From.Hex())
	}

	to := req.To
	value := req.Value
	if value == nil {
		value = new(big.Int)
	}

	gas, err := p.client.EstimateGas(ctx, ethereum.CallMsg{From: req.From, To: &to, Value: value})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
	}
	if gas < params.TxGas {
		gas = params.TxGas
	}

	head, err := p.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to fetch latest header: %w", err)
	}

	var txData types.TxData
	if head.BaseFee != nil {
		tip, err := p.client.SuggestGasTipCap(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to get gas tip cap: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		txData = &types.DynamicFeeTx{
			ChainID:   p.chainID,
			Nonce:     req.Nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        &to,
			Value:     value,
		}
	} else {
		gasPrice, err := p.client.SuggestGasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to get gas price: %w", err)
		}
		txData = &types.LegacyTx{
			Nonce:    req.Nonce,
			GasPrice: gasPrice,
			Gas:      gas,
			To:       &to,
			Value:    value,
		}
	}

	signedTx, err := types.SignNewTx(p.identity.Key(), p.signer, txData)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := p.client.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, err
	}
	return signedTx.Hash(), nil
}

func (p *EthProvider) AwaitConfirmation(ctx context.Context, hash common.Hash, confirmations uint64, timeout time.Duration) (*types.Receipt, error) {
	return WaitForConfirmations(ctx, p.client, hash, confirmations, timeout, p.pollInterval)
}

func (p *EthProvider) Close() {
	p.client.Close()
}
