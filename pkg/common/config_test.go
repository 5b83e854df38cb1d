package common

import (
	"testing"

	"fundsplit/pkg/chain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(EnvRPCURL, "https://mainnet.base.org")
	t.Setenv(EnvPrivateKey, testKey)

	cfg, err := LoadEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://mainnet.base.org", cfg.RPCURL)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), cfg.Identity.Address())
}

func TestParseEnvConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rpcURL  string
		key     string
		wantErr error
		mention string
	}{
		{"missing rpc url", "", testKey, ErrMissingEnv, EnvRPCURL},
		{"blank rpc url", "   ", testKey, ErrMissingEnv, EnvRPCURL},
		{"missing key", "http://localhost:8545", "", ErrMissingEnv, EnvPrivateKey},
		{"bad key", "http://localhost:8545", "0x1234", chain.ErrInvalidPrivateKey, EnvPrivateKey},
		{"bad scheme", "ftp://localhost:8545", testKey, ErrInvalidRPCURL, "ftp"},
		{"no host", "http://", testKey, ErrInvalidRPCURL, "host"},
		{"garbage url", "::not a url", testKey, ErrInvalidRPCURL, "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEnvConfig(tt.rpcURL, tt.key)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.mention)
		})
	}
}

func TestValidateRPCURL(t *testing.T) {
	for _, raw := range []string{"http://127.0.0.1:8545", "https://rpc.example.org/v1/key", "wss://rpc.example.org", "WS://node:8546"} {
		assert.NoError(t, ValidateRPCURL(raw), raw)
	}
}
