package common

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"fundsplit/pkg/chain"
)

var (
	ErrMissingEnv    = errors.New("missing required environment variable")
	ErrInvalidRPCURL = errors.New("invalid RPC URL")
)

// EnvConfig is the process-level configuration every command needs before it runs.
type EnvConfig struct {
	RPCURL   string
	Identity *chain.Identity
}

// LoadEnvConfig reads RPC_URL and MAIN_PRIVATE_KEY from the environment.
func LoadEnvConfig() (*EnvConfig, error) {
	return ParseEnvConfig(os.Getenv(EnvRPCURL), os.Getenv(EnvPrivateKey))
}

func ParseEnvConfig(rpcURL, privateKey string) (*EnvConfig, error) {
	rpcURL = strings.TrimSpace(rpcURL)
	if rpcURL == "" {
		return nil, fmt.Errorf("%w %s", ErrMissingEnv, EnvRPCURL)
	}
	if strings.TrimSpace(privateKey) == "" {
		return nil, fmt.Errorf("%w %s", ErrMissingEnv, EnvPrivateKey)
	}

	identity, err := chain.NewIdentity(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvPrivateKey, err)
	}

	if err := ValidateRPCURL(rpcURL); err != nil {
		return nil, err
	}

	return &EnvConfig{
		RPCURL:   rpcURL,
		Identity: identity,
	}, nil
}

// ValidateRPCURL accepts absolute http(s) and ws(s) URLs.
func ValidateRPCURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidRPCURL, raw, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("%w %q: unsupported scheme %q", ErrInvalidRPCURL, raw, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w %q: missing host", ErrInvalidRPCURL, raw)
	}
	return nil
}
